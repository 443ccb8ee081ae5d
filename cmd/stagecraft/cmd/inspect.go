package cmd

import (
	"fmt"

	"github.com/danielpatrickdp/stagecraft/internal/storage"
	"github.com/spf13/cobra"
)

var inspectPlayer string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump stored learning data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		data, err := store.LoadAll()
		if err != nil {
			return err
		}

		fmt.Printf("profiles: %d, sessions: %d\n\n", len(data.Profiles), len(data.Sessions))
		for playerID, p := range data.Profiles {
			if inspectPlayer != "" && playerID != inspectPlayer {
				continue
			}
			fmt.Printf("player %s\n", playerID)
			fmt.Printf("  games=%d playtime=%.0fs adaptability=%.2f max_complexity=%.2f\n",
				p.GamesPlayed, p.TotalPlayTime, p.AdaptabilityScore, p.MaxHandledComplexity)
			fmt.Printf("  style=%s progression=%s strong=%v weak=%v\n",
				p.Style, p.Progression, p.StrongTags, p.WeakTags)
			fmt.Printf("  recommend: difficulty=%.2f hints=%.2f complexity=%.2f\n",
				p.Recommend.DifficultyMultiplier, p.Recommend.HintFrequency, p.Recommend.ComplexityLimit)
			for id, exp := range p.Experience {
				fmt.Printf("    %-22s encounters=%-3d success=%.2f mastery=%s\n",
					id, exp.Encounters, exp.SuccessRate, exp.Mastery)
			}

			insights, err := store.InsightsFor(playerID)
			if err != nil {
				return err
			}
			for _, in := range insights {
				fmt.Printf("  insight [%s] %.2f: %s\n", in.Type, in.Confidence, in.Description)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectPlayer, "player", "", "limit to one player id")
	rootCmd.AddCommand(inspectCmd)
}
