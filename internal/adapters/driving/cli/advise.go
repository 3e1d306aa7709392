package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/knowbase-cli/internal/core/domain"
)

var adviseCmd = &cobra.Command{
	Use:   "advise [question]",
	Short: "Ask a question answered from your knowledge base",
	Long: `Searches the knowledge base for context and asks a local LLM to
answer the question grounded on what you have saved. Requires a
running Ollama instance (see the [ollama] config section).`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	question := args[0]

	if advisorService == nil {
		return errors.New("advisor service not configured")
	}

	advice, err := advisorService.Advise(cmd.Context(), question)
	if err != nil {
		if errors.Is(err, domain.ErrLLMUnavailable) {
			return errors.New("no LLM configured; enable the [ollama] section in the config file")
		}
		return fmt.Errorf("advising: %w", err)
	}

	cmd.Println(advice.Answer)

	if len(advice.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range advice.Sources {
			cmd.Printf("  - %s\n", src.Metadata.Title)
		}
	}
	return nil
}
