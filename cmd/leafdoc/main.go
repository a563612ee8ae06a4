package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/quantmind-br/leafdoc-go/internal/app"
	"github.com/quantmind-br/leafdoc-go/internal/config"
	"github.com/quantmind-br/leafdoc-go/internal/leafdoc"
	"github.com/quantmind-br/leafdoc-go/internal/utils"
	"github.com/quantmind-br/leafdoc-go/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var (
	cfgFile string
	verbose bool
	jsonOut bool
	log     *utils.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "leafdoc [flags] [files|dirs...]",
	Short: "Generate API documentation from 🍂 comments",
	Long: `Leafdoc reads documentation directives from comments in source files
and plain .leafdoc files, and renders them as one HTML page.

Directories are walked for files with a configured extension; files given
explicitly are always read. JSON, YAML and Markdown output are also available.`,
	Version:       version.Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./leafdoc.yaml or ~/.leafdoc/leafdoc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	rootCmd.Flags().StringP("template", "t", "", "Directory with *.tmpl files overriding the built-in templates")
	rootCmd.Flags().StringP("character", "c", "🍂", "Leading character for directives")
	rootCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	rootCmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "Write JSON instead of HTML (same as --format json)")
	rootCmd.Flags().StringP("format", "f", config.DefaultFormat, "Output format: html, json, yaml or markdown")
	rootCmd.Flags().BoolP("empty", "e", false, "Show inherited sections even when the class declares none of that kind")
	rootCmd.Flags().StringSlice("ext", config.DefaultExtensions, "File extensions read from directories")
	rootCmd.Flags().Bool("cache", false, "Cache tokenized comments between runs")
	rootCmd.Flags().Int("workers", config.DefaultWorkers, "Number of concurrent file readers")

	_ = viper.BindPFlag("output.template_dir", rootCmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("leafdoc.leading_character", rootCmd.Flags().Lookup("character"))
	_ = viper.BindPFlag("output.file", rootCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("output.format", rootCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("leafdoc.show_inheritances_when_empty", rootCmd.Flags().Lookup("empty"))
	_ = viper.BindPFlag("sources.extensions", rootCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("cache.enabled", rootCmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("concurrency.workers", rootCmd.Flags().Lookup("workers"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dumpConfigCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if jsonOut {
		cfg.Output.Format = leafdoc.FormatJSON
	}

	log = utils.NewLogger(utils.LoggerOptions{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cmd.ErrOrStderr(),
		Verbose: verbose,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			log.Info().Msg("Shutting down gracefully...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return generate(ctx, cfg, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// generate runs one documentation pass over inputs
func generate(ctx context.Context, cfg *config.Config, inputs []string, stdout, stderr io.Writer) error {
	orchestrator, err := app.NewOrchestrator(app.OrchestratorOptions{
		Config:   cfg,
		Verbose:  verbose,
		Logger:   log,
		Stdout:   stdout,
		Progress: stderr,
	})
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Close()

	return orchestrator.Run(ctx, inputs)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

var dumpConfigCmd = &cobra.Command{
	Use:   "dump-config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return dumpConfig(cmd.OutOrStdout(), cfg)
	},
}

func dumpConfig(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	_, err = w.Write(data)
	return err
}
