package cmd

import (
	"bufio"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/danielpatrickdp/stagecraft/internal/bus"
	"github.com/danielpatrickdp/stagecraft/internal/collector"
	"github.com/danielpatrickdp/stagecraft/internal/engine"
	"github.com/danielpatrickdp/stagecraft/internal/storage"
	"github.com/spf13/cobra"
)

var (
	runPlayer string
	runStage  int
	runSeed   int64
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Interactive session simulator",
	Long: `Starts a session for a player and generates stages interactively.
After each stage, report the outcome as "win <seconds> [hints] [mistakes]"
or "loss <seconds> [hints] [mistakes]". Type "end" to finish the session.`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().StringVar(&runPlayer, "player", "player-1", "player id")
	runCmd.Flags().IntVar(&runStage, "stage", 1, "first stage number")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "generation seed (0 = time-based)")
	rootCmd.AddCommand(runCmd)
}

// #region run

func runSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	eng, err := engine.New(cfg, store)
	if err != nil {
		return err
	}

	eng.Bus.Subscribe(bus.TopicInsightGenerated, func(ev bus.Event) {
		fmt.Printf("  [insight] %v\n", ev.Payload)
	})

	sessionID, err := eng.Collector.StartSession(runPlayer)
	if err != nil {
		return err
	}
	fmt.Printf("session %s started for %s (db: %s)\n", sessionID, runPlayer, cfg.DBPath)

	seed := runSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	seedRng := rand.New(rand.NewSource(seed))

	scanner := bufio.NewScanner(os.Stdin)
	stage := runStage

	for {
		stageSeed := seedRng.Int63()
		result, err := eng.GenerateStage(runPlayer, stage, stageSeed)
		if err != nil {
			return err
		}
		pattern := result.Pattern

		fmt.Printf("\nstage %d (%s band, budget %.2f): %s\n",
			stage, result.Requirement.Band, result.Budget, pattern.ID)
		for _, prim := range pattern.Primitives {
			fmt.Printf("  - %-20s difficulty=%.2f learnability=%.2f\n",
				prim.ID, prim.BaseDifficulty, prim.Learnability)
		}
		if result.Repairs.Repaired() {
			fmt.Printf("  repairs: %s\n", strings.Join(result.Repairs.Actions, "; "))
		}

		fmt.Print("outcome> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "end" || line == "quit" {
			break
		}

		success, metrics, err := parseOutcome(line)
		if err != nil {
			fmt.Println(err)
			continue
		}

		if err := eng.Collector.RecordPatternPerformance(pattern, success, metrics); err != nil {
			log.Printf("record performance: %v", err)
		}
		score := 0
		if success {
			score = 100 * stage
		}
		if err := eng.Collector.RecordStageCompletion(stage, success, score, metrics.CompletionTime); err != nil {
			log.Printf("record stage: %v", err)
		}
		stage++
	}

	session, insights, err := eng.FinishSession()
	if err != nil {
		return err
	}
	fmt.Printf("\nsession %s ended: %d stages, engagement %.2f, %d insight(s)\n",
		session.ID, len(session.Stages), session.Metrics.EngagementLevel, len(insights))
	return nil
}

// parseOutcome parses "win|loss <seconds> [hints] [mistakes]".
func parseOutcome(line string) (bool, collector.OutcomeMetrics, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return false, collector.OutcomeMetrics{}, fmt.Errorf("usage: win|loss <seconds> [hints] [mistakes]")
	}

	var success bool
	switch fields[0] {
	case "win", "w":
		success = true
	case "loss", "l":
		success = false
	default:
		return false, collector.OutcomeMetrics{}, fmt.Errorf("unknown outcome %q", fields[0])
	}

	m := collector.OutcomeMetrics{Attempts: 1}
	if _, err := fmt.Sscanf(fields[1], "%f", &m.CompletionTime); err != nil {
		return false, m, fmt.Errorf("bad seconds %q", fields[1])
	}
	if len(fields) > 2 {
		fmt.Sscanf(fields[2], "%d", &m.HintsUsed)
	}
	if len(fields) > 3 {
		fmt.Sscanf(fields[3], "%d", &m.Mistakes)
	}
	return success, m, nil
}

// #endregion run
