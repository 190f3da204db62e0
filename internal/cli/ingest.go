package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"product-chatbot-be/internal/bootstrap"
	"product-chatbot-be/internal/service"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [csv]",
	Short: "Embed the product review CSV and write it to the vector store",
	Long: `Load the product review CSV, embed every row and write the documents
to the configured vector store.

The CSV must contain the columns product_id, product_title, rating,
summary and review. Defaults to $PRODUCT_DATA_PATH.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.App.ProductDataPath
		if len(args) > 0 {
			path = args[0]
		}
		return ingest(cmd, path)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func ingest(cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()

	if err := checkEnv(cfg, io.Discard); err != nil {
		fail(out, "%v", err)
		return err
	}
	models, err := bootstrap.NewModelLoader(cfg)
	if err != nil {
		fail(out, "%v", err)
		return err
	}
	store, err := bootstrap.NewVectorStore(cfg)
	if err != nil {
		fail(out, "%v", err)
		return err
	}

	svc := service.NewIngestionService(store, models.Embedder(), appLogger)
	n, err := runIngestion(cmd.Context(), svc, path, out)
	if err != nil {
		fail(out, "Error during data ingestion: %v", err)
		return err
	}
	ok(out, "Indexed %d products into %q.", n, cfg.Settings.VectorStore.CollectionName)
	return nil
}

func runIngestion(ctx context.Context, svc service.IIngestionService, path string, out io.Writer) (int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	fmt.Fprintf(out, "🚀 Ingesting %s...\n", path)

	var (
		bar *progressbar.ProgressBar
		mu  sync.Mutex
	)
	progress := func(done, total int) {
		mu.Lock()
		defer mu.Unlock()
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Embedding[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)
		}
		_ = bar.Set(done)
	}

	return svc.Run(ctx, path, service.WithProgress(progress))
}
