package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/vss-site/internal/formatter"
	"github.com/yildizm/vss-site/internal/site"
)

var contentOutputFile string

func newContentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Print the page content outline",
		Long: `Load and validate the page content and print it in the selected format.

Formats: text (terminal outline), json, markdown and csv.`,
		Example: `  # Outline the built-in content
  vss content

  # Check a content file and export it as JSON
  vss content --config site.yaml --output json --file content.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			page, err := site.Load(cfg.Site.ContentPath)
			if err != nil {
				return err
			}

			f, err := formatter.New(getOutputFormat(cfg), useColor(cfg))
			if err != nil {
				return err
			}
			output, err := f.Format(page)
			if err != nil {
				return fmt.Errorf("failed to format content: %w", err)
			}

			return writeOutput(cmd.OutOrStdout(), output, contentOutputFile)
		},
	}

	cmd.Flags().StringVarP(&contentOutputFile, "file", "f", "", "write output to file instead of stdout")

	return cmd
}

// writeOutput writes output to path, or to w when path is empty
func writeOutput(w io.Writer, output []byte, path string) error {
	if path == "" {
		_, err := w.Write(output)
		return err
	}

	if err := os.WriteFile(filepath.Clean(path), output, 0o600); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", path)
	}
	return nil
}
