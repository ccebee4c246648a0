package cmd

import (
	"github.com/spf13/cobra"

	"github.com/telhawk-systems/ocsf-protogen/internal/config"
	"github.com/telhawk-systems/ocsf-protogen/internal/logging"
	"github.com/telhawk-systems/ocsf-protogen/pkg/output"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "ocsf-protogen",
	Short: "Generate Protocol Buffer definitions from OCSF schema",
	Long: `ocsf-protogen compiles the OCSF cybersecurity event schema into proto3
definition files.

Fetch a versioned schema export from schema.ocsf.io, then generate
deterministic .proto files for selected event classes and the transitive
closure of objects they reference.`,
	Version: "0.1.0",

	// Errors are reported once by main via pkg/output.
	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("init-config")
		if path == "" {
			return cmd.Help()
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		output.Success("Wrote default config to %s", path)
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.Flags().String("init-config", "", "write the default config to the given path and exit")
}

func initConfig() {
	if q, err := rootCmd.PersistentFlags().GetBool("quiet"); err == nil {
		output.SetQuiet(q)
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		output.Warn("Could not load config: %v", err)
		cfg = config.Default()
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level), cfg.Logging.Format).
		With(logging.Component("cli"))
	logging.SetDefault(logger)
}
