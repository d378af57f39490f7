package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/index/jsonl"
	"github.com/custodia-labs/corpus-cli/internal/core/domain"
	"github.com/custodia-labs/corpus-cli/internal/core/services"
)

var (
	queryTopK      int
	queryBudget    int
	queryIndexPath string
	queryJSON      bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Retrieve a context block for a question",
	Long: `Embeds the question, searches the vector index and assembles a
deduplicated, budget-limited context block. The index is reloaded
automatically if it changed on disk since the last query.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of candidate chunks (default from config)")
	queryCmd.Flags().IntVar(&queryBudget, "budget", 0, "context character budget (default from config)")
	queryCmd.Flags().StringVar(&queryIndexPath, "index-path", "", "index file path (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output result as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	question := args[0]
	cfg := configStore.Config()

	indexPath := queryIndexPath
	if indexPath == "" {
		indexPath = cfg.Paths.IndexPath
	}

	retrieval := cfg.RetrievalSettings()
	if queryTopK > 0 {
		retrieval.TopK = queryTopK
	}
	if queryBudget > 0 {
		retrieval.MaxContextChars = queryBudget
	}

	index, err := jsonl.NewStore(indexPath)
	if err != nil {
		return fmt.Errorf("opening index: %w", err)
	}

	embedder, err := newEmbeddingService()
	if err != nil {
		return err
	}
	defer embedder.Close()

	retriever := services.NewRetrievalService(index, embedder)

	result, err := retriever.AssembleContext(cmd.Context(), question, retrieval.TopK, retrieval.MaxContextChars)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}
	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result *domain.ContextResult) error {
	payload := struct {
		Block   string   `json:"block"`
		Sources []string `json:"sources"`
	}{
		Block:   result.Block,
		Sources: result.Sources,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result *domain.ContextResult) error {
	if result.Block == "" {
		cmd.Println("No context available. Run 'corpus ingest' first.")
		return nil
	}

	cmd.Println(result.Block)
	cmd.Println()
	cmd.Println("Sources:")
	for _, title := range result.Sources {
		cmd.Printf("  - %s\n", title)
	}
	return nil
}
