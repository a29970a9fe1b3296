package cli

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gridiron-labs/huddle-cli/internal/connectors/filesystem"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check data files and backend connectivity",
	Long: `Checks every configured piece without building anything: each source
CSV is loaded and counted, the embedding and LLM backends are pinged, and
the league configuration is reported.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	ctx := cmd.Context()

	ok := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()

	failed := false
	for _, status := range filesystem.VerifySources(tableProvider.Sources()) {
		if status.Err != nil {
			failed = true
			cmd.Printf("%s %s (%s): %v\n", fail("✗"), status.Source.Path, status.Source.Category, status.Err)
			continue
		}
		cmd.Printf("%s %s (%s): %d rows\n", ok("✓"), status.Source.Path, status.Source.Category, status.Rows)
	}

	if err := embeddingService.Ping(ctx); err != nil {
		failed = true
		cmd.Printf("%s embedding backend (%s): %v\n", fail("✗"), embeddingService.ModelName(), err)
	} else {
		cmd.Printf("%s embedding backend (%s)\n", ok("✓"), embeddingService.ModelName())
	}

	if err := llmService.Ping(ctx); err != nil {
		failed = true
		cmd.Printf("%s llm backend (%s): %v\n", fail("✗"), llmService.ModelName(), err)
	} else {
		cmd.Printf("%s llm backend (%s)\n", ok("✓"), llmService.ModelName())
	}

	if leagueClient == nil {
		cmd.Println("- yahoo league: not configured (live data disabled)")
	} else if _, err := leagueClient.LeagueInfo(ctx); err != nil {
		failed = true
		cmd.Printf("%s yahoo league: %v\n", fail("✗"), err)
	} else {
		cmd.Printf("%s yahoo league (%s)\n", ok("✓"), cfg.Yahoo.LeagueKey)
	}

	if failed {
		cmd.Println("\nsome checks failed")
	} else {
		cmd.Println("\nall checks passed")
	}
	return nil
}
