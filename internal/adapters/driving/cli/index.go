package cli

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the semantic index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index from the source tables",
	RunE:  runIndexBuild,
}

var indexRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the index, replacing the stored snapshot",
	RunE:  runIndexBuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored index snapshot",
	RunE:  runIndexStatus,
}

func init() {
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexRebuildCmd)
	indexCmd.AddCommand(indexStatusCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	if err := indexService.Build(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("indexed %d documents\n", indexService.Size())
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if err := bootstrap(); err != nil {
		return err
	}
	if err := indexer.LoadSnapshot(cmd.Context()); err != nil {
		cmd.Printf("no usable snapshot: %v\n", err)
		cmd.Println("run 'huddle index build' to create one")
		return nil
	}
	cmd.Printf("snapshot loaded: %d documents (model %s)\n", indexService.Size(), embeddingService.ModelName())
	return nil
}
