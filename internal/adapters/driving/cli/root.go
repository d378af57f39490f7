// Package cli implements the corpus command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/corpus-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/corpus-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagConfigDir string
	flagVerbose   bool

	configStore *file.ConfigStore
)

var rootCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Index local documents and retrieve context for questions",
	Long: `Corpus ingests a directory of PDF and DOCX documents into a local
vector index and assembles bounded-size context blocks for queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		store, err := file.NewConfigStore(flagConfigDir)
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		configStore = store
		logger.Debug("Loaded configuration from %s", store.Path())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.corpus)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newEmbeddingService builds and validates the configured embedding
// backend. Both ingestion and retrieval require it.
func newEmbeddingService() (driven.EmbeddingService, error) {
	settings := configStore.Config().EmbeddingSettings()
	return ai.CreateAndValidateEmbeddingService(&settings)
}
