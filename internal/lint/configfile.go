package lint

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"lintel/internal/parser"
	"lintel/internal/symbols"
)

// File is a rule configuration file. It is only read when passed explicitly;
// there is no discovery and no merging of several files.
//
//	sourceType = "module"
//	[env]
//	browser = true
//	[rules]
//	semi = ["error", "never"]
//	complexity = ["warn", 5]
type File struct {
	SourceType string          `toml:"sourceType" yaml:"sourceType"`
	Env        map[string]bool `toml:"env" yaml:"env"`
	Rules      map[string]any  `toml:"rules" yaml:"rules"`
	// MaxErrors caps syntax errors per file.
	MaxErrors uint `toml:"maxErrors" yaml:"maxErrors"`
}

// ErrUnknownFormat is returned for config files that are neither TOML nor YAML.
var ErrUnknownFormat = errors.New("unknown config format")

// LoadFile reads a TOML (.toml) or YAML (.yaml, .yml) configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var f File
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%s: %w (use .toml, .yaml or .yml)", path, ErrUnknownFormat)
	}
	return &f, nil
}

// Apply returns c with the file's settings layered on top.
func (f *File) Apply(c Config) (Config, error) {
	if f == nil {
		return c, nil
	}
	out := c
	switch strings.ToLower(f.SourceType) {
	case "":
	case "module":
		out.SourceType = parser.SourceModule
	case "script":
		out.SourceType = parser.SourceScript
	default:
		return c, fmt.Errorf("invalid sourceType %q: expected module or script", f.SourceType)
	}
	for name, on := range f.Env {
		env, err := symbols.ParseEnvs(name)
		if err != nil {
			return c, err
		}
		if on {
			out.Envs |= env
		} else {
			out.Envs &^= env
		}
	}
	if out.Envs == 0 {
		// builtins остаются всегда: нулевая маска у резолвера означает «по умолчанию»
		out.Envs = symbols.EnvES2021
	}
	if f.MaxErrors > 0 {
		out.MaxErrors = f.MaxErrors
	}
	return out.WithOverrides(f.Rules)
}

// ParseSourceType converts the --source-type flag value.
func ParseSourceType(s string) (parser.SourceType, error) {
	switch strings.ToLower(s) {
	case "module", "":
		return parser.SourceModule, nil
	case "script":
		return parser.SourceScript, nil
	}
	return parser.SourceModule, fmt.Errorf("invalid source type %q: expected module or script", s)
}
