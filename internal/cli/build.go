package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/emoji"
	"github.com/yildizm/vss-site/internal/site"
	"github.com/yildizm/vss-site/internal/web"
)

var buildOutDir string

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the landing page to a static HTML file",
		Long: `Render the initial state of the landing page to <out>/index.html.

Links and form actions use the configured base path, so the output can be
published under it as is. The contact form needs a running "vss serve" to
accept submissions.`,
		Example: `  # Build into ./dist
  vss build

  # Build into another directory
  vss build --out public`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			page, err := site.Load(cfg.Site.ContentPath)
			if err != nil {
				return err
			}

			path, err := web.Export(buildOutDir, page, cfg.Site.BasePath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Page written to: %s\n", emoji.GetEmoji("success"), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&buildOutDir, "out", "dist", "output directory")

	return cmd
}
