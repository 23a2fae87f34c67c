package main

import (
	"hangul-quiz/internal/domain"
	"hangul-quiz/internal/validation"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a JSON question payload against the question shape rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			minimum, _ := cmd.Flags().GetInt("min")

			payload, err := readPayload(args[0])
			if err != nil {
				return err
			}
			if err := validation.ValidatePayload(payload, mode, validation.ExpectPerLevel(minimum)); err != nil {
				return err
			}

			var counts domain.LevelCounts
			root := payload.(map[string]any)
			for _, l := range domain.Levels {
				counts.Set(l, len(root[string(l)].([]any)))
			}
			printCounts(cmd, "valid:", counts)
			return nil
		},
	}
	cmd.Flags().String("mode", "fill_blank", "Question style: fill_blank or dialogue")
	cmd.Flags().Int("min", 1, "Minimum items required per level")
	return cmd
}
