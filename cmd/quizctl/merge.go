package main

import (
	"github.com/spf13/cobra"
)

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge FILE",
		Short: "Merge a JSON question payload into the bank without calling a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			mode, err := modeFlag(cmd)
			if err != nil {
				return err
			}
			replace, _ := cmd.Flags().GetBool("replace")

			payload, err := readPayload(args[0])
			if err != nil {
				return err
			}
			svc, err := env.questionService(cmd.Context(), false)
			if err != nil {
				return err
			}
			result, err := svc.Import(cmd.Context(), payload, mode, replace)
			if err != nil {
				return err
			}
			printCounts(cmd, "saved:", result.Counts)
			return nil
		},
	}
	cmd.Flags().String("mode", "fill_blank", "Question style: fill_blank or dialogue")
	cmd.Flags().Bool("replace", false, "Replace the bank instead of merging into it")
	return cmd
}
