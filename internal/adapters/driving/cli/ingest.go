package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/index/jsonl"
	"github.com/custodia-labs/corpus-cli/internal/core/services"
	"github.com/custodia-labs/corpus-cli/internal/normalisers"
	"github.com/custodia-labs/corpus-cli/internal/normalisers/docx"
	"github.com/custodia-labs/corpus-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/corpus-cli/internal/postprocessors"
)

var (
	ingestDocsDir       string
	ingestIndexPath     string
	ingestTargetTokens  int
	ingestOverlapTokens int
	ingestBatchSize     int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index documents into the local vector index",
	Long: `Walks the documents directory, extracts text from PDF and DOCX
files, chunks it, embeds every chunk and rewrites the index file
wholesale. A document that fails to parse is skipped; a failed
embedding batch aborts the run and the previous index is kept.`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDocsDir, "docs-dir", "", "documents directory (default from config)")
	ingestCmd.Flags().StringVar(&ingestIndexPath, "index-path", "", "index file path (default from config)")
	ingestCmd.Flags().IntVar(&ingestTargetTokens, "target-tokens", 0, "approximate tokens per chunk (default from config)")
	ingestCmd.Flags().IntVar(&ingestOverlapTokens, "overlap-tokens", 0, "approximate overlap tokens between chunks (default from config)")
	ingestCmd.Flags().IntVar(&ingestBatchSize, "batch", 0, "chunk texts per embedding batch (default from config)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, _ []string) error {
	cfg := configStore.Config()

	docsDir := ingestDocsDir
	if docsDir == "" {
		docsDir = cfg.Paths.DocsDir
	}
	indexPath := ingestIndexPath
	if indexPath == "" {
		indexPath = cfg.Paths.IndexPath
	}

	chunking := cfg.ChunkingSettings()
	if ingestTargetTokens > 0 {
		chunking.TargetTokens = ingestTargetTokens
	}
	// Changed-detection rather than a zero guard: --overlap-tokens 0 is
	// a valid request for no overlap.
	if cmd.Flags().Changed("overlap-tokens") && ingestOverlapTokens >= 0 {
		chunking.OverlapTokens = ingestOverlapTokens
	}

	batchSize := cfg.Embedding.BatchSize
	if ingestBatchSize > 0 {
		batchSize = ingestBatchSize
	}

	embedder, err := newEmbeddingService()
	if err != nil {
		return err
	}
	defer embedder.Close()

	registry := normalisers.NewRegistry()
	registry.Register(pdf.New())
	registry.Register(docx.New())

	processors := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(processors)
	chunkerProc, err := processors.Build("chunker", map[string]any{
		"target_tokens":  chunking.TargetTokens,
		"overlap_tokens": chunking.OverlapTokens,
	})
	if err != nil {
		return fmt.Errorf("building chunker: %w", err)
	}

	orchestrator := services.NewIngestOrchestrator(
		registry,
		postprocessors.NewPipeline(chunkerProc),
		embedder,
		jsonl.NewWriter(indexPath),
		services.WithBatchSize(batchSize),
		services.WithProgress(cmd.OutOrStdout()),
	)

	report, err := orchestrator.Ingest(cmd.Context(), docsDir)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	cmd.Printf("Indexed %d documents (%d skipped) into %s: %d chunks, %d dimensions\n",
		report.Documents, report.Skipped, indexPath, report.Chunks, report.Dimensions)
	return nil
}
