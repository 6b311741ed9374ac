package scan

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/modgraph/pkg/errors"
)

// LanguageTypeScript is the only supported language. It covers .js, .jsx,
// .ts and .tsx files.
const LanguageTypeScript = "typescript"

// DefaultExclude lists directory names skipped when no exclude list is set.
var DefaultExclude = []string{"node_modules", "build", "dist"}

// Config describes what to scan.
type Config struct {
	// Title is copied into the generated document.
	Title string `toml:"title"`
	// Path is the root of the source tree. Relative paths are resolved against
	// the directory of the config file by LoadConfig.
	Path string `toml:"path"`
	// Language selects the grammar. Empty means typescript.
	Language string `toml:"language"`
	// Exclude lists directory names that are never entered.
	Exclude []string `toml:"exclude"`
	// ModuleResolution maps import prefixes (path aliases) to directories
	// relative to Path, tried in order.
	ModuleResolution []ModuleResolution `toml:"module_resolution"`
}

// ModuleResolution rewrites import specifiers starting with Pattern by
// replacing Pattern with Replacement.
type ModuleResolution struct {
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// LoadConfig reads a TOML config file, applies defaults and validates it.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file not found: %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, err
	}
	if cfg.Path != "" && !filepath.IsAbs(cfg.Path) {
		cfg.Path = filepath.Join(filepath.Dir(path), cfg.Path)
	}
	return cfg, cfg.Validate()
}

// ParseConfig decodes TOML and applies defaults. Relative paths are kept as
// they are.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.SetDefaults()
	return cfg, nil
}

// SetDefaults fills in the language and exclude list.
func (c *Config) SetDefaults() {
	if c.Language == "" {
		c.Language = LanguageTypeScript
	}
	if c.Exclude == nil {
		c.Exclude = append([]string(nil), DefaultExclude...)
	}
}

// Validate checks that the config can be scanned.
func (c Config) Validate() error {
	if c.Path == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "config: path is required")
	}
	if c.Language != LanguageTypeScript {
		return errors.New(errors.ErrCodeUnsupported, "config: unsupported language %q", c.Language)
	}
	for i, r := range c.ModuleResolution {
		if r.Pattern == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "config: module_resolution[%d] has an empty pattern", i)
		}
	}
	return nil
}
