package cli

import (
	"context"
	"fmt"
	"io"

	"product-chatbot-be/internal/bootstrap"
	"product-chatbot-be/internal/constant"
	"product-chatbot-be/internal/repository/contract"
	"product-chatbot-be/pkg/rag/retriever"

	"github.com/spf13/cobra"
)

const sampleLength = 100

var verifyQuery string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a sample question against the vector store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return verify(cmd)
	},
}

func init() {
	verifyCmd.Flags().StringVarP(&verifyQuery, "query", "q", constant.VerifyQuery, "question to retrieve documents for")
	rootCmd.AddCommand(verifyCmd)
}

func verify(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	models, err := bootstrap.NewModelLoader(cfg)
	if err != nil {
		fail(out, "Retriever test failed: %v", err)
		return err
	}
	store, err := bootstrap.NewVectorStore(cfg)
	if err != nil {
		fail(out, "Retriever test failed: %v", err)
		return err
	}

	query := verifyQuery
	if query == "" {
		query = constant.VerifyQuery
	}
	r := retriever.New(store, models.Embedder(), cfg.Settings.TopK())
	return runVerify(cmd.Context(), store, r, query, out)
}

func runVerify(ctx context.Context, store contract.ProductDocumentRepository, r *retriever.Retriever, query string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if n, err := store.Count(ctx); err == nil {
		fmt.Fprintf(out, "📦 Collection holds %d documents.\n", n)
	}

	fmt.Fprintf(out, "🔍 Query: %q\n", query)
	docs, err := r.Invoke(ctx, query)
	if err != nil {
		fail(out, "Retriever test failed: %v", err)
		return err
	}

	ok(out, "Retriever test successful! Found %d documents.", len(docs))
	if len(docs) > 0 {
		sample := []rune(docs[0].Content)
		if len(sample) > sampleLength {
			sample = sample[:sampleLength]
		}
		fmt.Fprintf(out, "📄 Sample result: %s...\n", string(sample))
	}
	return nil
}
