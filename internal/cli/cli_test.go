package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
)

// newTestCLI returns a CLI whose config and cache live in temp dirs.
func newTestCLI(t *testing.T) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, name := range []string{"CONFIG", "FORMAT", "SCALE", "OUTPUT_DIR", "PLACEHOLDER", "TEMPLATE", "FONTS", "NO_CACHE", "CACHE_DIR"} {
		t.Setenv(envPrefix+name, "")
	}

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.Out = &out
	return c, &out
}

func execute(c *CLI, args ...string) error {
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c, _ := newTestCLI(t)
	root := c.RootCommand()

	for _, name := range []string{"render", "edit", "templates", "patterns", "fonts", "config", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := newTestCLI(t)
	if err := execute(c, "completion", "bash"); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Error("completion produced no output")
	}
	if err := execute(c, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell should fail")
	}
}
