package driver

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"nova/internal/diag"
	"nova/internal/project"
	"nova/internal/source"
	"nova/internal/token"
)

// Current schema version - increment when CacheEntry format changes
const diskCacheSchemaVersion uint16 = 1

var errSchemaMismatch = errors.New("cache schema mismatch")

// DiskCache хранит результат лексера по хешу содержимого файла и лимитов.
// Записи: msgpack, сжатый zstd. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// CacheEntry is the on-disk form of one tokenized file. Spans are stored as
// raw offsets since source.Span keeps its fields private.
type CacheEntry struct {
	Schema uint16
	// Tokens: тройки kind, start, end.
	Tokens []uint32
	Diags  []cachedDiag
}

type cachedSpan struct{ Start, End uint32 }

type cachedLabel struct {
	Span  cachedSpan
	Style uint8
	Text  string
}

type cachedNote struct {
	Severity uint8
	Msg      string
}

type cachedEdit struct {
	Span    cachedSpan
	NewText string
	OldText string
}

type cachedFix struct {
	ID            string
	Title         string
	Applicability uint8
	Edits         []cachedEdit
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Message  string
	Labels   []cachedLabel
	Notes    []cachedNote
	Fixes    []cachedFix
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir, enc: enc, dec: dec}, nil
}

// Close releases the zstd decoder.
func (c *DiskCache) Close() {
	if c == nil {
		return
	}
	c.dec.Close()
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp.zst")
}

func cacheKey(file *source.File, limits project.Limits) project.Digest {
	return project.Combine(project.Digest(file.Hash), limits.Digest())
}

// Put serializes and writes an entry to the disk cache.
func (c *DiskCache) Put(key project.Digest, entry *CacheEntry) error {
	if c == nil {
		return nil
	}
	raw, err := msgpack.Marshal(entry)
	if err != nil {
		return err
	}
	packed := c.enc.EncodeAll(raw, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(packed); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads and deserializes an entry. A missing file is a miss, not an error;
// an entry written by another schema is reported as an error.
func (c *DiskCache) Get(key project.Digest, out *CacheEntry) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	packed, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	raw, err := c.dec.DecodeAll(packed, nil)
	if err != nil {
		return false, fmt.Errorf("cache entry %x: %w", key[:4], err)
	}
	if err := msgpack.NewDecoder(bytes.NewReader(raw)).Decode(out); err != nil {
		return false, fmt.Errorf("cache entry %x: %w", key[:4], err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, errSchemaMismatch
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "tokens"))
}

func packSpan(sp source.Span) cachedSpan { return cachedSpan{Start: sp.Start(), End: sp.End()} }

// unpack отвергает спаны за концом файла: такая запись считается промахом.
func (s cachedSpan) unpack(limit uint32) (source.Span, error) {
	if s.End > limit {
		return source.Span{}, fmt.Errorf("span %d..%d exceeds file length %d", s.Start, s.End, limit)
	}
	return source.NewSpan(s.Start, s.End)
}

// NewCacheEntry flattens tokens and diagnostics of one file.
func NewCacheEntry(toks []token.Token, diags []diag.Diagnostic) *CacheEntry {
	e := &CacheEntry{Schema: diskCacheSchemaVersion, Tokens: make([]uint32, 0, 3*len(toks))}
	for _, t := range toks {
		e.Tokens = append(e.Tokens, uint32(t.Kind), t.Span.Start(), t.Span.End())
	}
	for _, d := range diags {
		cd := cachedDiag{Severity: uint8(d.Severity), Code: uint16(d.Code), Message: d.Message}
		for _, l := range d.Labels {
			cd.Labels = append(cd.Labels, cachedLabel{Span: packSpan(l.Span), Style: uint8(l.Style), Text: l.Text})
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, cachedNote{Severity: uint8(n.Severity), Msg: n.Msg})
		}
		for _, f := range d.Fixes {
			cf := cachedFix{ID: f.ID, Title: f.Title, Applicability: uint8(f.Applicability)}
			for _, ed := range f.Edits {
				cf.Edits = append(cf.Edits, cachedEdit{Span: packSpan(ed.Span), NewText: ed.NewText, OldText: ed.OldText})
			}
			cd.Fixes = append(cd.Fixes, cf)
		}
		e.Diags = append(e.Diags, cd)
	}
	return e
}

// Restore rebuilds tokens and diagnostics for file. Corrupt spans or kinds
// are reported as errors so the caller falls back to lexing.
func (e *CacheEntry) Restore(file *source.File) ([]token.Token, []diag.Diagnostic, error) {
	limit := file.Len()
	if len(e.Tokens)%3 != 0 {
		return nil, nil, fmt.Errorf("token stream length %d is not a multiple of 3", len(e.Tokens))
	}
	toks := make([]token.Token, 0, len(e.Tokens)/3)
	for i := 0; i < len(e.Tokens); i += 3 {
		k, err := safecast.Conv[uint8](e.Tokens[i])
		if err != nil {
			return nil, nil, err
		}
		kind := token.Kind(k)
		if !kind.IsValid() {
			return nil, nil, fmt.Errorf("unknown token kind %d", k)
		}
		sp, err := cachedSpan{Start: e.Tokens[i+1], End: e.Tokens[i+2]}.unpack(limit)
		if err != nil {
			return nil, nil, err
		}
		toks = append(toks, token.Token{Kind: kind, Span: sp})
	}
	diags := make([]diag.Diagnostic, 0, len(e.Diags))
	for _, cd := range e.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cd.Severity),
			Code:     diag.Code(cd.Code),
			Message:  cd.Message,
			File:     file.ID,
		}
		for _, l := range cd.Labels {
			sp, err := l.Span.unpack(limit)
			if err != nil {
				return nil, nil, err
			}
			d.Labels = append(d.Labels, diag.Label{Span: sp, Style: diag.LabelStyle(l.Style), Text: l.Text})
		}
		for _, n := range cd.Notes {
			d.Notes = append(d.Notes, diag.Note{Severity: diag.Severity(n.Severity), Msg: n.Msg})
		}
		for _, cf := range cd.Fixes {
			f := diag.Fix{ID: cf.ID, Title: cf.Title, Applicability: diag.Applicability(cf.Applicability)}
			for _, ed := range cf.Edits {
				sp, err := ed.Span.unpack(limit)
				if err != nil {
					return nil, nil, err
				}
				f.Edits = append(f.Edits, diag.FixEdit{Span: sp, NewText: ed.NewText, OldText: ed.OldText})
			}
			d.Fixes = append(d.Fixes, f)
		}
		diags = append(diags, d)
	}
	return toks, diags, nil
}
