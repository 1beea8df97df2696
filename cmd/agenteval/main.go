package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"agenteval/adapters/agent"
	"agenteval/adapters/dataset"
	"agenteval/adapters/evaluators"
	"agenteval/adapters/metadata"
	"agenteval/app"
	"agenteval/domain/core"
	"agenteval/domain/score"
	"agenteval/internal"
	"agenteval/internal/analysis"
	"agenteval/internal/config"
	"agenteval/internal/render"
	"agenteval/ports"
	"agenteval/ui"
)

func main() {
	// Missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "agenteval",
		Short: "Statistical comparison of AI agent variants",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every agent variant against the input dataset and write the markdown summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			service, req, err := buildService(cfg)
			if err != nil {
				return err
			}

			out, err := service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			return writeSummary(out.Markdown, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "summary output path (defaults to GITHUB_STEP_SUMMARY, then stdout)")

	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the evaluation and serve the summary over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			service, req, err := buildService(cfg)
			if err != nil {
				return err
			}

			out, err := service.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			server := ui.NewServer(cfg.Server.GinMode)
			server.SetOutput(out)
			internal.DefaultLogger.Info("serving evaluation summary on :%s", cfg.Server.Port)
			return server.Start(":" + cfg.Server.Port)
		},
	}
}

// buildService wires the configured dataset source, the LLM-backed simulator
// and evaluator set, and the renderer into an evaluation service
func buildService(cfg *config.Config) (*app.EvaluationService, app.RunRequest, error) {
	var req app.RunRequest

	meta, err := metadata.Load(cfg.Data.MetadataPath)
	if err != nil {
		return nil, req, err
	}

	source, err := datasetSource(cfg, meta)
	if err != nil {
		return nil, req, err
	}

	client, err := agent.NewClient(agent.Config{
		APIKey:      cfg.AI.APIKey,
		BaseURL:     cfg.AI.BaseURL,
		Timeout:     cfg.AI.Timeout,
		Temperature: cfg.AI.Temperature,
	})
	if err != nil {
		return nil, req, err
	}

	evaluatorSet, err := evaluators.NewRegistry().Build(
		meta.EvaluatorClasses(),
		ports.EvaluatorConfig{Client: client, Model: cfg.AI.JudgeModel},
		meta,
	)
	if err != nil {
		return nil, req, err
	}

	thresholds := analysis.Thresholds{
		MinSampleSize: cfg.Analysis.MinSampleSize,
		Alpha:         cfg.Analysis.Alpha,
	}
	renderer := render.NewRendererWith(
		analysis.NewComparisonEngineWithThresholds(thresholds),
		analysis.NewIntervalCalculator(),
		internal.DefaultLogger,
	)

	view, err := score.ParseResultView(cfg.Analysis.View)
	if err != nil {
		return nil, req, err
	}

	agents := make([]core.Agent, 0, len(cfg.Agents.IDs))
	for _, id := range cfg.Agents.IDs {
		agents = append(agents, core.Agent{ID: core.AgentID(id), Name: id})
	}
	req = app.RunRequest{
		Agents:       agents,
		Baseline:     core.AgentID(cfg.Agents.BaselineID),
		View:         view,
		AgentBaseURL: cfg.Agents.BaseURL,
	}

	service := app.NewEvaluationService(source, agent.NewSimulator(client), evaluatorSet, renderer, meta)
	return service, req, nil
}

func datasetSource(cfg *config.Config, meta score.Metadata) (ports.DatasetSource, error) {
	if cfg.Data.DatabaseURL != "" {
		db, err := dataset.Connect(context.Background(), cfg.Data.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return dataset.NewPostgresSource(db, cfg.Data.DatasetName, meta), nil
	}

	switch strings.ToLower(filepath.Ext(cfg.Data.Path)) {
	case ".xlsx":
		name := strings.TrimSuffix(filepath.Base(cfg.Data.Path), filepath.Ext(cfg.Data.Path))
		return dataset.NewExcelSource(cfg.Data.Path, name, meta.EvaluatorClasses(), meta), nil
	default:
		return dataset.NewJSONSource(cfg.Data.Path, meta), nil
	}
}

// writeSummary sends the markdown to the requested destination: an explicit
// path, the CI step summary file, or stdout
func writeSummary(markdown, outPath string) error {
	if outPath == "" {
		outPath = os.Getenv("GITHUB_STEP_SUMMARY")
	}
	if outPath == "" {
		fmt.Println(markdown)
		return nil
	}

	f, err := os.OpenFile(outPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open summary output %s: %w", outPath, err)
	}
	defer f.Close()
	if _, err := f.WriteString(markdown + "\n"); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}
