package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/gridiron-labs/huddle-cli/internal/logger"
)

var flagWatch bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Starts a conversational session over the indexed player data. The
assistant remembers earlier turns in the session.

Commands inside the session:
  /reset   clear the conversation history
  quit     exit (also: exit, Ctrl+D)`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&flagWatch, "watch", false, "rebuild the index when a source CSV changes")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	if flagWatch {
		stop, err := watchSources(ctx)
		if err != nil {
			return err
		}
		defer stop()
	}

	prompt := color.New(color.FgGreen, color.Bold).SprintFunc()
	reply := color.New(color.FgCyan, color.Bold).SprintFunc()

	cmd.Printf("huddle chat. %d documents indexed. Type a question, /reset, or quit.\n", indexService.Size())
	cmd.Println("Try: \"How fast did Saquon Barkley run the 40?\" or \"Who on my roster has an injury history?\"")
	cmd.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(prompt("you: "))
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "/reset":
			assistantService.ResetHistory()
			cmd.Println("history cleared")
			continue
		}

		answer, err := assistantService.Ask(ctx, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		fmt.Print(reply("huddle: "))
		cmd.Println(answer.Text)
		printNotes(cmd, answer.Notes)
		cmd.Println()
	}
}

// watchSources rebuilds the index when a configured CSV changes. Readers
// keep the old index until the rebuild finishes, so a mid-session rebuild
// never leaves a question without an index.
func watchSources(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	for _, src := range tableProvider.Sources() {
		if err := watcher.Add(src.Path); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching %s: %w", src.Path, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				logger.Info("%s changed, rebuilding index", event.Name)
				if err := indexService.Rebuild(ctx); err != nil {
					logger.Warn("rebuild failed, keeping previous index: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
