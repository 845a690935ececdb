package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/pipeline"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// envPrefix prefixes every environment variable the CLI reads.
const envPrefix = "BANNERSMITH_"

// Config holds user defaults. Sources apply in order: built-in defaults,
// the TOML config file, .env files and BANNERSMITH_* variables, then flags.
type Config struct {
	// Format is the default export format.
	Format string `toml:"format" validate:"oneof=png jpeg svg"`
	// Scale is the default pixel ratio.
	Scale int `toml:"scale" validate:"oneof=1 2 4"`
	// OutputDir is where exports are saved when -o names no directory.
	OutputDir string `toml:"output_dir" validate:"required"`
	// Placeholder is shown in the editor preview while the text is empty.
	Placeholder string `toml:"placeholder"`
	// Template is applied to new banners before any style file or flag.
	Template string `toml:"template" validate:"omitempty,template"`
	// Fonts are font files registered at startup.
	Fonts []string `toml:"fonts" validate:"dive,required"`
	// NoCache disables the on-disk artifact cache.
	NoCache bool `toml:"no_cache"`
	// CacheDir overrides the artifact cache location.
	CacheDir string `toml:"cache_dir"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Format:    pipeline.DefaultFormat,
		Scale:     pipeline.DefaultScale,
		OutputDir: ".",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("template", func(fl validator.FieldLevel) bool {
		_, ok := style.FindTemplate(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks the config.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration")
	}
	return nil
}

// configPath returns the default config file using the XDG standard
// (~/.config/bannersmith/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig resolves the configuration. An explicit path must exist; the
// default path is optional.
func loadConfig(path string) (Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		if p, ok := os.LookupEnv(envPrefix + "CONFIG"); ok && p != "" {
			path, explicit = p, true
		} else if p, err := configPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if !explicit && os.IsNotExist(err) {
				err = nil
			}
			if err != nil {
				return cfg, err
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

// applyEnv overlays BANNERSMITH_* variables.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(envPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("FORMAT"); ok {
		c.Format = pipeline.ParseFormat(v)
	}
	if v, ok := get("SCALE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sSCALE must be an integer", envPrefix)
		}
		c.Scale = n
	}
	if v, ok := get("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := get("PLACEHOLDER"); ok {
		c.Placeholder = v
	}
	if v, ok := get("TEMPLATE"); ok {
		c.Template = v
	}
	if v, ok := get("FONTS"); ok {
		c.Fonts = filepath.SplitList(v)
	}
	if v, ok := get("NO_CACHE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%sNO_CACHE must be a boolean", envPrefix)
		}
		c.NoCache = b
	}
	if v, ok := get("CACHE_DIR"); ok {
		c.CacheDir = v
	}
	return nil
}

// String renders the config as TOML.
func (c Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return b.String()
}
