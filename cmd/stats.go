package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the wallet and best score per game",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalogue: %w", err)
		}
		st, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		events := st.EventRepo()
		totals, err := events.RewardTotals(ctx)
		if err != nil {
			return fmt.Errorf("reward totals: %w", err)
		}
		best, err := events.BestScores(ctx)
		if err != nil {
			return fmt.Errorf("best scores: %w", err)
		}

		fmt.Printf("🪙 %d coins   ✨ %d XP   🏅 %d badges\n\n", totals.Coins, totals.XP, totals.Badges)

		fmt.Printf("%-32s  %-8s  %-6s  %s\n", "Game", "Best", "Passed", "Accuracy")
		fmt.Println(strings.Repeat("─", 62))

		played := 0
		for _, g := range cat.All() {
			score, ok := best[g.ID]
			if !ok {
				continue
			}
			played++
			acc, err := events.GameAccuracy(ctx, g.ID)
			if err != nil {
				cliLogger(cfg).Warn("accuracy lookup failed", "game", g.ID, "err", err)
			}
			passed := ""
			if score >= g.Threshold() {
				passed = "✓"
			}
			fmt.Printf("%-32s  %-8s  %-6s  %3.0f%%\n",
				g.Title, fmt.Sprintf("%d/%d", score, len(g.Questions)), passed, acc*100)
		}

		fmt.Printf("\n%d of %d games played\n", played, cat.Len())
		return nil
	},
}
