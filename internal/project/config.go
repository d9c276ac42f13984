package project

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"

	"nova/internal/lexer"
	"nova/internal/parser"
)

// Config is the parsed nova.toml.
//
//	[package]
//	name = "demo"
//
//	[limits]
//	max_nesting_depth = 256
//	max_expr_depth = 64
//
//	[sources]
//	include = ["src/**/*.nova"]
//	exclude = ["**/testdata/**"]
type Config struct {
	Package PackageConfig `toml:"package"`
	Limits  Limits        `toml:"limits"`
	Sources SourcesConfig `toml:"sources"`

	// Path и Root заполняются Load; в файле их нет.
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// Limits bound the work done on one file. Zero means the built-in default.
type Limits struct {
	MaxNestingDepth int    `toml:"max_nesting_depth"`
	MaxSourceSize   uint64 `toml:"max_source_size"`
	MaxExprDepth    int    `toml:"max_expr_depth"`
	MaxBlockDepth   int    `toml:"max_block_depth"`
	MaxDiagnostics  int    `toml:"max_diagnostics"`
}

type SourcesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// DefaultInclude is used when [sources] has no include patterns.
var DefaultInclude = []string{"**/*.nova"}

var ErrInvalidConfig = errors.New("invalid nova.toml")

// Default is the configuration of a directory without nova.toml.
func Default(root string) Config {
	return Config{Root: root, Sources: SourcesConfig{Include: DefaultInclude}}
}

// Load parses the nova.toml at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: %s: unknown key %q", ErrInvalidConfig, path, undecoded[0].String())
	}
	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	if len(cfg.Sources.Include) == 0 {
		cfg.Sources.Include = DefaultInclude
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, nil
}

// Discover finds nova.toml above startDir and loads it; without one the
// defaults rooted at startDir are returned.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		abs, err := filepath.Abs(startDir)
		if err != nil {
			return Config{}, err
		}
		return Default(abs), nil
	}
	return Load(path)
}

func (c Config) validate() error {
	l := c.Limits
	if l.MaxNestingDepth < 0 || l.MaxExprDepth < 0 || l.MaxBlockDepth < 0 || l.MaxDiagnostics < 0 {
		return errors.New("limits must not be negative")
	}
	for _, pat := range append(append([]string(nil), c.Sources.Include...), c.Sources.Exclude...) {
		if !doublestar.ValidatePattern(pat) {
			return fmt.Errorf("bad glob %q", pat)
		}
	}
	return nil
}

// LexerOptions returns lexer limits; the caller sets the Reporter.
func (l Limits) LexerOptions() lexer.Options {
	return lexer.Options{MaxNestingDepth: l.MaxNestingDepth, MaxSourceSize: l.MaxSourceSize}
}

// ParserOptions returns parser limits including the lexer's.
func (l Limits) ParserOptions() parser.Options {
	opts := parser.Options{
		MaxExprDepth:  l.MaxExprDepth,
		MaxBlockDepth: l.MaxBlockDepth,
		Lexer:         l.LexerOptions(),
	}
	if l.MaxDiagnostics > 0 {
		opts.MaxErrors = uint(l.MaxDiagnostics)
	}
	return opts
}

// Override returns l with the non-zero fields of o applied (CLI flags win over the file).
func (l Limits) Override(o Limits) Limits {
	if o.MaxNestingDepth != 0 {
		l.MaxNestingDepth = o.MaxNestingDepth
	}
	if o.MaxSourceSize != 0 {
		l.MaxSourceSize = o.MaxSourceSize
	}
	if o.MaxExprDepth != 0 {
		l.MaxExprDepth = o.MaxExprDepth
	}
	if o.MaxBlockDepth != 0 {
		l.MaxBlockDepth = o.MaxBlockDepth
	}
	if o.MaxDiagnostics != 0 {
		l.MaxDiagnostics = o.MaxDiagnostics
	}
	return l
}
