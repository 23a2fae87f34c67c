package main

import (
	"hangul-quiz/internal/service"
	"hangul-quiz/internal/validation"

	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate questions with the configured completion provider and merge them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			perLevel, _ := cmd.Flags().GetInt("per-level")
			if perLevel == 0 {
				perLevel = env.cfg.Generation.DefaultPerLevel
			}
			prompt, _ := cmd.Flags().GetString("prompt")
			replace, _ := cmd.Flags().GetBool("replace")

			if errs := validation.NewValidator(env.cfg.Generation.MaxPerLevel).ValidateGenerateRequest(perLevel, prompt); len(errs) > 0 {
				return errs
			}

			svc, err := env.questionService(cmd.Context(), true)
			if err != nil {
				return err
			}
			result, err := svc.Generate(cmd.Context(), service.GenerateRequest{
				Mode:     mode,
				Replace:  replace,
				PerLevel: perLevel,
				Prompt:   prompt,
			})
			if err != nil {
				return err
			}
			printCounts(cmd, "saved:", result.Counts)
			return nil
		},
	}
	cmd.Flags().String("mode", "fill_blank", "Question style: fill_blank or dialogue")
	cmd.Flags().Int("per-level", 0, "Questions to request per level (default from config)")
	cmd.Flags().String("prompt", "", "Custom prompt sent instead of the built-in one")
	cmd.Flags().Bool("replace", false, "Replace the bank instead of merging into it")
	return cmd
}
