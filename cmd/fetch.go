package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
	"github.com/telhawk-systems/ocsf-protogen/pkg/output"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download and cache an OCSF schema export",
	Long: `Download the OCSF schema export for a version from schema.ocsf.io
and cache it at <cache-dir>/<version>/schema.json.

The response is validated as a parseable schema before it is written.`,
	Example: `  ocsf-protogen fetch --ocsf-version 1.7.0 --cache-dir ./schemas`,
	RunE: func(cmd *cobra.Command, args []string) error {
		version, _ := cmd.Flags().GetString("ocsf-version")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		schemaURL, _ := cmd.Flags().GetString("schema-url")

		if version == "" {
			version = cfg.Schema.Version
		}
		if cacheDir == "" {
			cacheDir = cfg.Schema.CacheDir
		}
		if schemaURL == "" {
			schemaURL = cfg.Schema.URL
		}

		dest := schema.CachePath(cacheDir, version)
		slog.Info("Downloading OCSF schema",
			slog.String("version", version),
			slog.String("url", schemaURL),
			slog.String("dest", dest),
		)

		s, err := schema.Fetch(cmd.Context(), version, schemaURL, dest)
		if err != nil {
			return fmt.Errorf("failed to fetch schema: %w", err)
		}

		output.Success("Saved OCSF v%s (%d classes, %d objects) to %s",
			s.Version, len(s.Classes), len(s.Objects), dest)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().String("ocsf-version", "", "OCSF version to download (default from config: 1.7.0)")
	fetchCmd.Flags().String("cache-dir", "", "directory for cached schema files")
	fetchCmd.Flags().String("schema-url", "", "base URL of the OCSF schema export API")
}
