package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/metcalfc/shelf/internal/cover"
	"github.com/metcalfc/shelf/internal/reader"
	"github.com/spf13/cobra"
)

const pngDataPrefix = "data:image/png;base64,"

func newCoverCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "cover <title>...",
		Short: "Render a placeholder cover to a PNG file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g := cover.New()
			defer g.Close()

			uri := g.Generate(strings.Join(args, " "))
			encoded, ok := strings.CutPrefix(uri, pngDataPrefix)
			if !ok {
				return fmt.Errorf("cover could not be rendered, fallback is %s", uri)
			}
			data, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return fmt.Errorf("decode cover: %w", err)
			}
			if err := os.WriteFile(out, data, 0644); err != nil {
				return err
			}
			a.logger.Debug("cover written", "path", out, "bytes", len(data))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", okStyle.Render("Wrote"), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "cover.png", "Output file")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List document formats that can be added",
		Args:  cobra.NoArgs,
		// Needs no state.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range reader.SupportedFormats() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("Anything else is read as plain text, pages split on form feeds."))
			return nil
		},
	}
}
