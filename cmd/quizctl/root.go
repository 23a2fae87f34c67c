package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"hangul-quiz/internal/adapter/llm"
	"hangul-quiz/internal/adapter/quizgen"
	"hangul-quiz/internal/config"
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/logger"
	"hangul-quiz/internal/repository"
	"hangul-quiz/internal/service"

	"github.com/spf13/cobra"
)

// cliEnv holds what every subcommand resolves from the persistent flags.
type cliEnv struct {
	cfg  *config.Config
	bank *repository.FileBankRepository
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "quizctl",
		Short:         "Manage the hangul-quiz question bank",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Directory containing config.yaml")
	root.PersistentFlags().String("questions", "", "Path to the question bank (overrides storage.questions_path)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Write logs to stdout")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newMergeCmd())
	root.AddCommand(newStatsCmd())
	return root
}

// loadEnv resolves configuration, logging and the bank store for cmd.
func loadEnv(cmd *cobra.Command) (*cliEnv, error) {
	var paths []string
	if dir, _ := cmd.Flags().GetString("config"); dir != "" {
		paths = append(paths, dir)
	}
	cfg, err := config.LoadConfig(paths...)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("questions"); p != "" {
		cfg.Storage.QuestionsPath = p
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		if err := logger.Initialize(cfg.Logger); err != nil {
			return nil, err
		}
	}
	return &cliEnv{
		cfg:  cfg,
		bank: repository.NewFileBankRepository(cfg.Storage.QuestionsPath, logger.Get()),
	}, nil
}

// questionService wires a QuestionService. withGenerator builds the completion
// provider from configuration.
func (e *cliEnv) questionService(ctx context.Context, withGenerator bool) (service.QuestionService, error) {
	var generator service.QuestionGenerator
	if withGenerator {
		textGenerator, err := llm.NewTextGenerator(ctx, e.cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to create completion provider: %w", err)
		}
		generator = quizgen.NewGenerator(textGenerator, e.cfg.LLM.Timeout, logger.Get())
	}
	return service.NewQuestionService(e.bank, generator, nil), nil
}

func readPayload(path string) (any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", path, err)
	}
	return payload, nil
}

func modeFlag(cmd *cobra.Command) (domain.GenerationMode, error) {
	raw, _ := cmd.Flags().GetString("mode")
	return domain.ParseGenerationMode(raw)
}

func printCounts(cmd *cobra.Command, prefix string, c domain.LevelCounts) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s beginner=%d intermediate=%d advanced=%d\n",
		prefix, c.Beginner, c.Intermediate, c.Advanced)
}
