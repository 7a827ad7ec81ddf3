package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/ayur-ai/ayurflow/pkg/ayurflow/agents"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/agents/gemma"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/config"
	"github.com/ayur-ai/ayurflow/pkg/ayurflow/pipeline"
)

var (
	cfgPath  string
	verbose  bool
	jsonOut  bool
	inputSrc string

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ayurflow",
	Short: "ayurflow - Ayurveda consultation pipeline",
	Long: `ayurflow runs patient input through the five-stage consultation
pipeline: symptom analysis, dosha assessment, guidance generation,
safety review, and response formatting.

The safety stage gates everything: no recommendation reaches the output
unless it was explicitly marked safe to recommend.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if cfg.Logging.Format == "text" {
			zcfg.Encoding = "console"
		}
		zcfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Logging.Level))
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [input]",
	Short: "Run one consultation",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args)
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}

		rec := engine.Run(cmd.Context(), raw)
		if jsonOut {
			return printJSON(rec)
		}
		fmt.Println(rec.FinalResponse)
		return nil
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run one consultation per line of an input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputSrc == "" {
			return fmt.Errorf("batch requires --file")
		}
		lines, err := readLines(inputSrc)
		if err != nil {
			return err
		}

		engine, err := buildEngine(cmd.Context())
		if err != nil {
			return err
		}

		// Invocations are independent: each gets its own Record and the
		// engine holds no mutable state between them.
		responses := make([]string, len(lines))
		g, ctx := errgroup.WithContext(cmd.Context())
		g.SetLimit(cfg.Batch.Concurrency)
		for i, line := range lines {
			g.Go(func() error {
				rec := engine.Run(ctx, line)
				responses[i] = rec.FinalResponse
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		for i, resp := range responses {
			fmt.Printf("--- consultation %d ---\n%s\n\n", i+1, resp)
		}
		return nil
	},
}

func buildEngine(ctx context.Context) (*pipeline.Engine, error) {
	opts := agents.Options{Disclaimer: cfg.Disclaimer}

	if cfg.Guidance.Provider == "gemma" {
		apiKey := os.Getenv(cfg.Guidance.APIKeyEnv)
		client, err := gemma.NewClient(ctx, apiKey, cfg.Guidance.Model)
		if err != nil {
			return nil, err
		}
		opts.Guidance = client.Guidance()
		logger.Info("using model-backed guidance", zap.String("model", cfg.Guidance.Model))
	}

	return pipeline.New(agents.Default(opts), pipeline.WithLogger(logger))
}

func readInput(args []string) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	if inputSrc != "" {
		data, err := os.ReadFile(inputSrc)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", fmt.Errorf("provide input text as an argument or via --file")
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full record as JSON")
	runCmd.Flags().StringVar(&inputSrc, "file", "", "read input text from a file")
	batchCmd.Flags().StringVar(&inputSrc, "file", "", "file with one consultation input per line")

	rootCmd.AddCommand(runCmd, batchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
