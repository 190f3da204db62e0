package cli

import (
	"errors"
	"fmt"
	"io"

	"product-chatbot-be/internal/config"

	"github.com/spf13/cobra"
)

var checkEnvCmd = &cobra.Command{
	Use:   "check-env",
	Short: "Report environment variables the configured providers need",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkEnv(cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkEnvCmd)
}

func checkEnv(cfg *config.Config, out io.Writer) error {
	err := cfg.Keys.Require(cfg.RequiredEnv()...)
	if err == nil {
		ok(out, "All environment variables are set.")
		return nil
	}

	var missing *config.MissingEnvError
	if !errors.As(err, &missing) {
		return err
	}
	fail(out, "Missing environment variables:")
	for _, name := range missing.Names {
		fmt.Fprintf(out, "   - %s\n", name)
	}
	fmt.Fprintln(out, "\n📝 Please create a .env file with your credentials.")
	fmt.Fprintln(out, "   You can use .env.example as a reference.")
	return err
}
