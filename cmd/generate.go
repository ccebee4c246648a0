package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-protogen/internal/protogen"
	"github.com/telhawk-systems/ocsf-protogen/internal/schema"
	"github.com/telhawk-systems/ocsf-protogen/pkg/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate .proto files from a cached OCSF schema",
	Long: `Generate proto3 definition files for the requested event classes and
every object they transitively reference.

Output is deterministic: re-running with the same schema and class set
produces byte-identical files.`,
	Example: `  ocsf-protogen generate --classes authentication,security_finding
  ocsf-protogen generate --classes all --output-dir ./proto`,
	RunE: func(cmd *cobra.Command, args []string) error {
		classes, _ := cmd.Flags().GetString("classes")
		version, _ := cmd.Flags().GetString("ocsf-version")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		cacheDir, _ := cmd.Flags().GetString("cache-dir")
		jsonSummary, _ := cmd.Flags().GetBool("json")

		if classes == "" {
			return fmt.Errorf("--classes is required (comma-separated names, or \"all\")")
		}
		if version == "" {
			version = cfg.Schema.Version
		}
		if outputDir == "" {
			outputDir = cfg.Output.Dir
		}
		if cacheDir == "" {
			cacheDir = cfg.Schema.CacheDir
		}

		schemaPath := schema.CachePath(cacheDir, version)
		slog.Info("Loading schema", slog.String("path", schemaPath))

		s, err := schema.Load(schemaPath)
		if err != nil {
			return fmt.Errorf("failed to load schema: %w", err)
		}
		output.Info("Loaded OCSF v%s: %d classes, %d objects", s.Version, len(s.Classes), len(s.Objects))

		var classNames []string
		if classes == "all" {
			classNames = s.ClassNames()
		} else {
			for _, name := range strings.Split(classes, ",") {
				classNames = append(classNames, strings.TrimSpace(name))
			}
		}
		output.Info("Generating protos for %d classes", len(classNames))

		stats, err := protogen.Generate(s, classNames, &protogen.DirWriter{Root: outputDir})
		if err != nil {
			return fmt.Errorf("generation failed: %w", err)
		}

		if jsonSummary {
			return output.JSON(stats)
		}

		output.Success("Generated %d classes, %d objects, %d enums",
			stats.ClassesGenerated, stats.ObjectsGenerated, stats.EnumsGenerated)
		if stats.DeprecatedFieldsSkipped > 0 {
			output.Info("Skipped %d deprecated fields", stats.DeprecatedFieldsSkipped)
		}
		if stats.StringEnumFieldsSkipped > 0 {
			output.Info("Skipped %d string-keyed enums (not valid proto enums)", stats.StringEnumFieldsSkipped)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("classes", "c", "", "comma-separated event class names, or \"all\"")
	generateCmd.Flags().String("ocsf-version", "", "OCSF version to generate for")
	generateCmd.Flags().StringP("output-dir", "o", "", "output directory for generated .proto files")
	generateCmd.Flags().String("cache-dir", "", "directory containing cached schema files")
	generateCmd.Flags().Bool("json", false, "print the generation summary as JSON")
}
