package main

import (
	"encoding/json"
	"fmt"

	"hangul-quiz/internal/domain"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type statsReport struct {
	Path   string             `json:"path" yaml:"path"`
	Counts domain.LevelCounts `json:"counts" yaml:"counts"`
	Total  int                `json:"total" yaml:"total"`
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-level question counts of the stored bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			bank, err := env.bank.Load(cmd.Context(), true)
			if err != nil {
				return err
			}
			report := statsReport{Path: env.bank.Path(), Counts: bank.Counts(), Total: bank.Total()}

			out := cmd.OutOrStdout()
			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(report)
			case "text", "":
				fmt.Fprintf(out, "%s\n", report.Path)
				for _, l := range domain.Levels {
					fmt.Fprintf(out, "  %-12s %d\n", l, report.Counts.Get(l))
				}
				fmt.Fprintf(out, "  %-12s %d\n", "total", report.Total)
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}
		},
	}
	cmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	return cmd
}
