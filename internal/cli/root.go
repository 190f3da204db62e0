// Package cli implements the setup command: environment check, product data
// ingestion and a retrieval smoke test.
package cli

import (
	"fmt"
	"io"
	"os"

	"product-chatbot-be/internal/config"
	"product-chatbot-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	verbose bool

	cfg       *config.Config
	appLogger logger.ILogger
)

var rootCmd = &cobra.Command{
	Use:   "setup",
	Short: "Populate the product vector store for the chatbot",
	Long: `setup prepares the Product Information Bot backend.

Run without a subcommand it checks the environment, ingests the product
review CSV and runs a retrieval smoke test.

Example usage:
  setup                       # check-env, ingest, verify
  setup check-env             # only report missing variables
  setup ingest data/extra.csv # ingest a specific file
  setup verify                # query the store with a sample question`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			if err := os.Setenv("CONFIG_PATH", cfgFile); err != nil {
				return err
			}
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := zapcore.WarnLevel
		if verbose {
			level = zapcore.DebugLevel
		}
		appLogger = logger.NewConsoleLogger(level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if appLogger != nil {
			_ = appLogger.Sync()
		}
	},
	RunE: runAll,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (default is $CONFIG_PATH or config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline details")
}

func runAll(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	header(out, "🤖 Product Chatbot Setup")

	step(out, "Checking environment...")
	if err := checkEnv(cfg, out); err != nil {
		fail(out, "Setup failed. Please configure your environment variables.")
		return err
	}

	step(out, "Populating vector database...")
	if err := ingest(cmd, cfg.App.ProductDataPath); err != nil {
		fail(out, "Setup failed. Could not populate database.")
		return err
	}

	step(out, "Testing retriever...")
	if err := verify(cmd); err != nil {
		color.New(color.FgYellow).Fprintln(out, "⚠️  Retriever test failed, but the database was populated.")
		fmt.Fprintln(out, "   You may still be able to use the chatbot.")
	}

	color.New(color.FgGreen, color.Bold).Fprintln(out, "\n🎉 Setup complete! The chatbot now has product information.")
	fmt.Fprintln(out, "💡 Start the API with: go run ./cmd/rest")
	return nil
}

func header(out io.Writer, title string) {
	color.New(color.FgCyan, color.Bold).Fprintln(out, title)
	fmt.Fprintln(out, "========================================")
}

func step(out io.Writer, msg string) {
	color.New(color.FgYellow).Fprintf(out, "\n%s\n", msg)
}

func ok(out io.Writer, format string, a ...interface{}) {
	color.New(color.FgGreen).Fprintf(out, "✅ "+format+"\n", a...)
}

func fail(out io.Writer, format string, a ...interface{}) {
	color.New(color.FgRed).Fprintf(out, "❌ "+format+"\n", a...)
}
