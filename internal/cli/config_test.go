package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	newTestCLI(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Format != "png" || cfg.Scale != 2 || cfg.OutputDir != "." {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	newTestCLI(t)
	path, _ := configPath()
	writeFile(t, path, `
format = "svg"
scale = 4
output_dir = "/tmp/banners"
template = "template-3"
no_cache = true
`)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Format != "svg" || cfg.Scale != 4 || cfg.OutputDir != "/tmp/banners" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Template != "template-3" || !cfg.NoCache {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	newTestCLI(t)
	path, _ := configPath()
	writeFile(t, path, `format = "svg"`)

	t.Setenv("BANNERSMITH_FORMAT", "JPG")
	t.Setenv("BANNERSMITH_SCALE", "1")
	t.Setenv("BANNERSMITH_FONTS", "a.ttf"+string(os.PathListSeparator)+"b.otf")

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Format != "jpeg" {
		t.Errorf("Format = %q, want jpeg", cfg.Format)
	}
	if cfg.Scale != 1 {
		t.Errorf("Scale = %d, want 1", cfg.Scale)
	}
	if len(cfg.Fonts) != 2 || cfg.Fonts[1] != "b.otf" {
		t.Errorf("Fonts = %v", cfg.Fonts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
	}{
		{name: "invalid format", content: `format = "gif"`},
		{name: "invalid scale", content: `scale = 3`},
		{name: "unknown template", content: `template = "template-99"`},
		{name: "unknown key", content: `colour = "red"`},
		{name: "malformed toml", content: `format = `},
		{name: "empty font path", content: `fonts = [""]`},
		{name: "bad env scale", env: map[string]string{"BANNERSMITH_SCALE": "two"}},
		{name: "bad env bool", env: map[string]string{"BANNERSMITH_NO_CACHE": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newTestCLI(t)
			path, _ := configPath()
			writeFile(t, path, tt.content)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := loadConfig("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestLoadConfigExplicitPath(t *testing.T) {
	newTestCLI(t)

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}

	path := writeFile(t, filepath.Join(t.TempDir(), "custom.toml"), `scale = 1`)
	t.Setenv("BANNERSMITH_CONFIG", path)
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Scale != 1 {
		t.Errorf("Scale = %d, want 1", cfg.Scale)
	}
}

func TestConfigString(t *testing.T) {
	s := defaultConfig().String()
	for _, want := range []string{`format = "png"`, `scale = 2`, `output_dir = "."`} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %s:\n%s", want, s)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	c, out := newTestCLI(t)
	t.Setenv("BANNERSMITH_TEMPLATE", "template-4")

	if err := execute(c, "config"); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Configuration", "template-4", "config.toml", "2x"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	out.Reset()
	if err := execute(c, "config", "--toml"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), `template = "template-4"`) {
		t.Errorf("toml output = %s", out.String())
	}
}
