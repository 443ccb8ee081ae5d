package cmd

import (
	"fmt"

	"github.com/danielpatrickdp/stagecraft/internal/replay"
	"github.com/spf13/cobra"
)

var replayFixture string

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Regenerate a fixture's stage attempts and diff against expectations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		fixture, err := replay.LoadFixture(replayFixture)
		if err != nil {
			return err
		}

		results, summary, err := replay.Replay(fixture, cfg.Generator)
		if err != nil {
			return err
		}

		for _, res := range results {
			status := "OK"
			if !res.Match {
				status = "DIFF " + res.Diff
			}
			fmt.Printf("stage %-4d seed %-20d %s  %s\n", res.Stage, res.Seed, res.Pattern.ID, status)
		}
		fmt.Printf("\n%d attempts: %d match, %d mismatch\n", summary.Total, summary.Matches, summary.Mismatches)

		if summary.Mismatches > 0 {
			return fmt.Errorf("replay: %d mismatch(es)", summary.Mismatches)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayFixture, "fixture", "", "path to fixture JSON")
	replayCmd.MarkFlagRequired("fixture")
	rootCmd.AddCommand(replayCmd)
}
