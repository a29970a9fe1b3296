package cli

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question and exit",
	Long: `Answers a single question from the indexed player data and, when the
question asks for it, live league data. Builds or restores the index first
if none is loaded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	question := strings.Join(args, " ")
	answer, err := assistantService.Ask(ctx, question)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)
	printNotes(cmd, answer.Notes)
	return nil
}

// printNotes renders degradation notes dimmed, after the answer.
func printNotes(cmd *cobra.Command, notes []string) {
	if len(notes) == 0 {
		return
	}
	dim := color.New(color.Faint).SprintFunc()
	cmd.Println()
	for _, note := range notes {
		cmd.Println(dim("note: " + note))
	}
}
