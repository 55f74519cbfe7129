// Package main provides the ContentSage API entrypoint.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/contentsage/contentsage-api/internal/config"
	"github.com/contentsage/contentsage-api/internal/domain/content"
	"github.com/contentsage/contentsage-api/internal/infrastructure/server"
	"github.com/contentsage/contentsage-api/pkg/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "contentsage",
		Short:         "ContentSage content generation service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(serveCmd(), generateCmd(), modelsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel, cfg.LogFormat)
			logger.Info(cmd.Context(), "starting ContentSage API", "default_backend", cfg.DefaultBackend)
			return server.New(cfg).Run()
		},
	}
}

// loadCLI loads config for one-shot commands: logs go to stderr so stdout
// stays machine-readable, and history is never written.
func loadCLI() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.InitWithWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	cfg.HistoryEnabled = false
	return cfg, nil
}

func generateCmd() *cobra.Command {
	var (
		kind    string
		topic   string
		backend string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one piece of content and print it as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := content.ParseKind(kind)
			if err != nil {
				return err
			}
			settings, err := parseSets(sets)
			if err != nil {
				return err
			}
			cfg, err := loadCLI()
			if err != nil {
				return err
			}
			if backend != "" {
				cfg.DefaultBackend = backend
			}

			ctx := cmd.Context()
			app, err := server.Bootstrap(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close(context.Background()) }()

			res, err := app.Orchestrator.Generate(ctx, topic, k, settings)
			if encErr := printJSON(res); encErr != nil {
				return encErr
			}
			return err
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "product", "content kind: product, social, blog or marketing")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic or product description")
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "backend id (defaults to CS_DEFAULT_BACKEND)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "setting as key=value, repeatable")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func modelsCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the backend catalog with availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCLI()
			if err != nil {
				return err
			}
			app, err := server.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close(context.Background()) }()

			models := app.Orchestrator.Models()
			if asJSON {
				return printJSON(models)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tFAMILY\tAVAILABLE\tCURRENT")
			for _, m := range models {
				fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%t\n", m.ID, m.Name, m.Family, m.Available, m.Current)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func parseSets(sets []string) (map[string]any, error) {
	out := make(map[string]any, len(sets))
	for _, kv := range sets {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --set %q, expected key=value", kv)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
