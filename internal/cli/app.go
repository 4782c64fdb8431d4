// Package cli implements the reportgen command-line interface.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/data2paper/reportgen/internal/config"
	"github.com/data2paper/reportgen/internal/db"
	"github.com/data2paper/reportgen/internal/docgen"
	"github.com/data2paper/reportgen/internal/history"
	"github.com/data2paper/reportgen/internal/llm"
	"github.com/data2paper/reportgen/internal/narrative"
	"github.com/data2paper/reportgen/internal/pipeline"
	"github.com/data2paper/reportgen/internal/stats"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config *config.Config
	store  *db.Store
	root   *cobra.Command
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg}

	a.root = &cobra.Command{
		Use:   "reportgen",
		Short: "Generate productivity reports from task history",
		Long: `Reportgen turns a user's task history into productivity reports.

It aggregates task statistics over daily, weekly, monthly, or custom
windows, writes a narrative summary (via a generative service when
configured, a deterministic template otherwise), and can render the
result as a document file.`,
		SilenceUsage: true,
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.generateCmd())
	a.root.AddCommand(a.recentCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

// ensureStore opens the database on first use.
func (a *App) ensureStore(ctx context.Context) error {
	if a.store != nil {
		return nil
	}
	store, err := db.Open(ctx, a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.store = store
	return nil
}

// generator wires the report pipeline against the open store.
func (a *App) generator() *pipeline.Generator {
	var client llm.Client
	if a.config.LLM.Enabled {
		c, err := llm.NewClient(a.config.LLM.Provider, a.config.LLM.Model, a.config.LLM.BaseURL)
		if err != nil {
			fmt.Printf("%s external generation unavailable: %v\n", warnLabel(), err)
		} else {
			client = c
		}
	}

	resolver := history.NewResolver(a.store)
	synth := narrative.NewSynthesizer(client, time.Duration(a.config.LLM.TimeoutSeconds)*time.Second)

	return pipeline.NewGenerator(
		a.store,
		a.store,
		resolver,
		stats.NewAggregator(resolver),
		synth,
		docgen.NewAssembler(a.config.Output.Dir),
		a.store,
	)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("reportgen %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases the database if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
