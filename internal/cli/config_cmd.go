package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// configCommand prints the resolved configuration.
func (c *CLI) configCommand() *cobra.Command {
	var asTOML bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Show the configuration after applying the config file, .env files and
BANNERSMITH_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if asTOML {
				fmt.Fprint(c.Out, cfg.String())
				return nil
			}

			path := c.configPath
			if path == "" {
				path, _ = configPath()
			}
			fmt.Fprintln(c.Out, StyleTitle.Render("Configuration"))
			printKeyValue(c.Out, "File", path)
			printKeyValue(c.Out, "Format", cfg.Format)
			printKeyValue(c.Out, "Scale", strconv.Itoa(cfg.Scale)+"x")
			printKeyValue(c.Out, "Output dir", cfg.OutputDir)
			printKeyValue(c.Out, "Template", orNone(cfg.Template))
			printKeyValue(c.Out, "Placeholder", orNone(cfg.Placeholder))
			printKeyValue(c.Out, "Fonts", orNone(strings.Join(cfg.Fonts, ", ")))
			cache := "on"
			if cfg.NoCache {
				cache = "off"
			}
			printKeyValue(c.Out, "Cache", cache)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asTOML, "toml", false, "print as TOML")
	return cmd
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
