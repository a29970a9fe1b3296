// Package cli wires the application together and exposes it as cobra
// commands. Commands reach the core only through the driving ports; the
// concrete adapters are chosen here, from configuration.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridiron-labs/huddle-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/gridiron-labs/huddle-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/gridiron-labs/huddle-cli/internal/adapters/driven/embedding/openai"
	llmollama "github.com/gridiron-labs/huddle-cli/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/gridiron-labs/huddle-cli/internal/adapters/driven/llm/openai"
	"github.com/gridiron-labs/huddle-cli/internal/adapters/driven/snapshot/sqlite"
	"github.com/gridiron-labs/huddle-cli/internal/connectors/filesystem"
	"github.com/gridiron-labs/huddle-cli/internal/connectors/yahoo"
	"github.com/gridiron-labs/huddle-cli/internal/core/domain"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driven"
	"github.com/gridiron-labs/huddle-cli/internal/core/ports/driving"
	"github.com/gridiron-labs/huddle-cli/internal/core/services"
	"github.com/gridiron-labs/huddle-cli/internal/logger"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers/combine"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers/injury"
	"github.com/gridiron-labs/huddle-cli/internal/normalisers/rushing"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

// Package-level services, wired by bootstrap. Tests swap these for mocks.
var (
	cfg              file.Config
	tableProvider    *filesystem.Provider
	embeddingService driven.EmbeddingService
	llmService       driven.LLMService
	leagueClient     driven.LeagueClient
	indexService     driving.IndexService
	assistantService driving.AssistantService
	indexer          *services.Indexer
	closers          []func() error
)

var rootCmd = &cobra.Command{
	Use:   "huddle",
	Short: "Fantasy football assistant grounded in your player data",
	Long: `huddle answers fantasy football questions from your own stat tables.

It builds a semantic index over combine, injury and rushing data, retrieves
the most relevant player notes for each question, and asks an LLM to answer
from them. With Yahoo league credentials configured it also folds your live
roster, the waiver wire and standings into the conversation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.huddle/config.toml)")
	rootCmd.Version = version
	cobra.OnInitialize(func() {
		logger.SetVerbose(flagVerbose)
	})
}

// Execute runs the CLI.
func Execute() error {
	defer closeAll()
	return rootCmd.Execute()
}

// bootstrap builds the full service graph from configuration. Idempotent;
// the first command that needs services calls it.
func bootstrap() error {
	if assistantService != nil {
		return nil
	}

	var err error
	cfg, err = file.Load(flagConfig)
	if err != nil {
		return err
	}

	tableProvider = filesystem.NewProvider([]filesystem.Source{
		{Category: domain.CategoryCombine, Path: cfg.Data.CombineCSV},
		{Category: domain.CategoryInjury, Path: cfg.Data.InjuryCSV},
		{Category: domain.CategoryRushing, Path: cfg.Data.RushingCSV},
	})

	embeddingService, err = buildEmbedding(cfg.Embedding)
	if err != nil {
		return err
	}
	closers = append(closers, embeddingService.Close)

	llmService, err = buildLLM(cfg.LLM)
	if err != nil {
		return err
	}
	closers = append(closers, llmService.Close)

	var store driven.SnapshotStore
	if cfg.Index.SnapshotPath != "" {
		sqlStore, err := sqlite.NewStore(cfg.Index.SnapshotPath)
		if err != nil {
			return fmt.Errorf("opening snapshot store: %w", err)
		}
		closers = append(closers, sqlStore.Close)
		store = sqlStore
	}

	if cfg.Yahoo.Configured() {
		client := yahoo.NewClient(yahoo.Config{
			ClientID:     cfg.Yahoo.ClientID,
			ClientSecret: cfg.Yahoo.ClientSecret,
			RefreshToken: cfg.Yahoo.RefreshToken,
			LeagueKey:    cfg.Yahoo.LeagueKey,
			TeamKey:      cfg.Yahoo.TeamKey,
		})
		closers = append(closers, client.Close)
		leagueClient = client
	} else {
		logger.Debug("yahoo league not configured, live data disabled")
	}

	holder := services.NewIndexHolder()
	indexer = services.NewIndexer(
		tableProvider,
		map[domain.Category]driven.TableNormaliser{
			domain.CategoryCombine: combine.New(),
			domain.CategoryInjury:  injury.New(),
			domain.CategoryRushing: rushing.New(),
		},
		embeddingService,
		store,
		holder,
		cfg.Index.Workers,
	)
	indexService = indexer
	assistantService = services.NewAssistant(holder, llmService, leagueClient, cfg.Index.TopK)
	return nil
}

func buildEmbedding(pc file.ProviderConfig) (driven.EmbeddingService, error) {
	switch pc.Provider {
	case "", "ollama":
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    pc.BaseURL,
			Model:      pc.Model,
			Dimensions: pc.Dimensions,
		}), nil
	case "openai":
		return embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey:     pc.APIKey,
			BaseURL:    pc.BaseURL,
			Model:      pc.Model,
			Dimensions: pc.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", pc.Provider)
	}
}

func buildLLM(pc file.ProviderConfig) (driven.LLMService, error) {
	switch pc.Provider {
	case "", "ollama":
		return llmollama.NewLLMService(llmollama.Config{
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
		}), nil
	case "openai":
		return llmopenai.NewLLMService(llmopenai.Config{
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", pc.Provider)
	}
}

// ensureIndex makes an index available: a compatible snapshot if one
// exists, a fresh build otherwise.
func ensureIndex(ctx context.Context) error {
	if indexService.Size() > 0 {
		return nil
	}
	if indexer != nil {
		err := indexer.LoadSnapshot(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSnapshotIncompatible) {
			return err
		}
		if errors.Is(err, domain.ErrSnapshotIncompatible) {
			logger.Warn("stored snapshot does not match the configured embedding model, rebuilding")
		}
	}
	logger.Info("building index from source tables")
	return indexService.Build(ctx)
}

func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Warn("closing resource: %v", err)
		}
	}
	closers = nil
}
