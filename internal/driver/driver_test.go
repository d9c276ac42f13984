package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"nova/internal/diag"
	"nova/internal/observ"
	"nova/internal/project"
	"nova/internal/source"
	"nova/internal/token"
	"nova/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.nova", "let s = \"open")
	res, err := Tokenize(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Nil(t, res.Fatal)
	require.Equal(t, token.EOF, res.Tokens[len(res.Tokens)-1].Kind)
	require.True(t, res.Bag.HasErrors())
	require.Equal(t, diag.LexUnterminatedString, res.Bag.Items()[0].Code)
}

func TestTokenizeMissingFile(t *testing.T) {
	_, err := Tokenize(context.Background(), filepath.Join(t.TempDir(), "nope.nova"), Options{})
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestTokenizeSizeLimitIsFatal(t *testing.T) {
	path := writeFile(t, t.TempDir(), "big.nova", strings.Repeat("x ", 64))
	res, err := Tokenize(context.Background(), path, Options{Limits: project.Limits{MaxSourceSize: 16}})
	require.NoError(t, err)
	require.True(t, IsFatal(res.Fatal))
	require.True(t, errors.Is(res.Fatal, diag.ErrSourceTooLarge))
	require.Empty(t, res.Tokens)
	require.Equal(t, diag.LexSourceTooLarge, res.Bag.Items()[0].Code)
}

func TestTokenizeNestingLimitDropsPartialStream(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer cache.Close()

	path := writeFile(t, dir, "deep.nova", "let x = 1; "+strings.Repeat("/*", 300))
	for _, opts := range []Options{{}, {KeepTrivia: true}, {Cache: cache}} {
		res, err := Tokenize(context.Background(), path, opts)
		require.NoError(t, err)
		require.ErrorIs(t, res.Fatal, diag.ErrNestingTooDeep)
		require.Nil(t, res.Tokens)
		require.Nil(t, res.Trivia)
		require.False(t, res.CacheHit)
		require.Equal(t, diag.LexNestingTooDeep, res.Bag.Items()[res.Bag.Len()-1].Code)
	}
}

func TestTokenizeUsesDiskCache(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer cache.Close()

	path := writeFile(t, dir, "a.nova", "fn main() { let a = 'ab'; }")
	opts := Options{Cache: cache}

	first, err := Tokenize(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := Tokenize(context.Background(), path, opts)
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Equal(t, first.Tokens, second.Tokens)
	require.Equal(t, first.Bag.Items(), second.Bag.Items())

	// другие лимиты дают другой ключ
	third, err := Tokenize(context.Background(), path, Options{Cache: cache, Limits: project.Limits{MaxNestingDepth: 3}})
	require.NoError(t, err)
	require.False(t, third.CacheHit)

	require.NoError(t, cache.DropAll())
	fourth, err := Tokenize(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, fourth.CacheHit)
}

func TestCacheEntryRejectsCorruptSpans(t *testing.T) {
	file, err := source.NewFile("a.nova", []byte("let x;"))
	require.NoError(t, err)

	e := &CacheEntry{Schema: diskCacheSchemaVersion, Tokens: []uint32{uint32(token.Ident), 5, 2}}
	_, _, err = e.Restore(file)
	require.Error(t, err)

	e.Tokens = []uint32{1, 2}
	_, _, err = e.Restore(file)
	require.Error(t, err)

	// спан за концом файла
	e.Tokens = []uint32{uint32(token.Ident), 4, 40}
	_, _, err = e.Restore(file)
	require.Error(t, err)

	e.Tokens = []uint32{uint32(token.Ident), 4, 5}
	e.Diags = []cachedDiag{{Code: uint16(diag.SynUnexpectedToken), Labels: []cachedLabel{{Span: cachedSpan{Start: 0, End: 99}}}}}
	_, _, err = e.Restore(file)
	require.Error(t, err)
}

func TestCacheEntryRejectsUnknownKinds(t *testing.T) {
	file, err := source.NewFile("a.nova", []byte("let x;"))
	require.NoError(t, err)

	for _, k := range []uint32{200, 255} {
		e := &CacheEntry{Schema: diskCacheSchemaVersion, Tokens: []uint32{k, 0, 3}}
		_, _, err := e.Restore(file)
		require.Error(t, err, "kind %d", k)
	}

	good := NewCacheEntry([]token.Token{{Kind: token.Ident, Span: source.MustSpan(4, 5)}}, nil)
	toks, _, err := good.Restore(file)
	require.NoError(t, err)
	require.Equal(t, token.Ident, toks[0].Kind)
}

func TestTokenizeTreatsCorruptCacheAsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	require.NoError(t, err)
	defer cache.Close()

	path := writeFile(t, dir, "a.nova", "let x;")
	opts := Options{Cache: cache}
	first, err := Tokenize(context.Background(), path, opts)
	require.NoError(t, err)

	// подменяем запись мусорным видом токена
	bad := &CacheEntry{Schema: diskCacheSchemaVersion, Tokens: []uint32{250, 0, 3}}
	require.NoError(t, cache.Put(cacheKey(first.File, opts.Limits), bad))

	second, err := Tokenize(context.Background(), path, opts)
	require.NoError(t, err)
	require.False(t, second.CacheHit)
	require.Equal(t, first.Tokens, second.Tokens)
}

func TestParseRecordsTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.nova", "fn main() { let a = 1 let b = 2; }")
	timer := observ.NewTimer()
	res, err := Parse(context.Background(), path, Options{Timer: timer})
	require.NoError(t, err)
	require.Nil(t, res.Fatal)
	require.Equal(t, 1, res.Bag.Len())
	require.Equal(t, diag.SynExpectSemicolon, res.Bag.Items()[0].Code)

	names := map[string]bool{}
	for _, ph := range timer.Report().Phases {
		names[ph.Name] = true
	}
	require.True(t, names["load"])
	require.True(t, names["parse"])
}

func TestParseFatalKeepsLimitDiagnostic(t *testing.T) {
	src := "fn f() { " + strings.Repeat("(", 20) + "1" + strings.Repeat(")", 20) + " }"
	path := writeFile(t, t.TempDir(), "deep.nova", src)
	res, err := Parse(context.Background(), path, Options{Limits: project.Limits{MaxExprDepth: 8}})
	require.NoError(t, err)
	require.True(t, errors.Is(res.Fatal, diag.ErrNestingTooDeep))
	require.Equal(t, 1, res.Bag.Len())
	require.Equal(t, diag.SynNestingTooDeep, res.Bag.Items()[0].Code)
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func TestParseDirKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.nova", "fn a() {}"),
		writeFile(t, dir, "b.nova", "fn b() { let x = 1 }"),
		filepath.Join(dir, "missing.nova"),
		writeFile(t, dir, "c.nova", "struct C;"),
	}

	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)
	sink := &recordingSink{}
	fs, results, err := ParseDir(ctx, files, Options{Jobs: 2, Progress: sink})
	require.NoError(t, err)
	require.Len(t, results, 4)
	require.Equal(t, 4, fs.Len())

	for i, r := range results {
		require.Equal(t, files[i], r.Path)
	}
	require.False(t, results[0].Bag.HasErrors())
	require.True(t, results[1].Bag.HasErrors())
	require.Error(t, results[2].LoadErr)
	require.Nil(t, results[2].ParseResult)
	require.Len(t, results[3].Builder.Files.Get(results[3].FileID).Items, 1)

	merged := Merged(results)
	require.Equal(t, results[1].Bag.Len()+1, merged.Len())
	var hasIO bool
	for _, d := range merged.Items() {
		if d.Code == diag.IOLoadFileError {
			hasIO = true
			require.Equal(t, results[2].SourceID, d.File)
		}
	}
	require.True(t, hasIO)

	var done, failed int
	for _, ev := range sink.events {
		switch ev.Status {
		case StatusDone:
			done++
		case StatusError:
			failed++
		}
	}
	require.Equal(t, 2, done)
	require.Equal(t, 2, failed)

	var sawPass bool
	for _, ev := range ring.Snapshot() {
		if ev.Name == "parse_dir" {
			sawPass = true
		}
	}
	require.True(t, sawPass)
}

func TestParseDirCancelled(t *testing.T) {
	dir := t.TempDir()
	files := []string{writeFile(t, dir, "a.nova", "fn a() {}")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := ParseDir(ctx, files, Options{})
	require.ErrorIs(t, err, context.Canceled)
}
