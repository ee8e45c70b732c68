package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently finished games",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		limit, _ := cmd.Flags().GetInt("n")
		if limit < 0 {
			return fmt.Errorf("-n must not be negative")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, _, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		titles := func(id string) string { return id }
		if cat, err := loadCatalog(cfg); err == nil {
			titles = func(id string) string {
				if g, err := cat.Game(id); err == nil {
					return g.Title
				}
				return id
			}
		} else {
			cliLogger(cfg).Warn("catalogue unavailable, showing game ids", "err", err)
		}

		runs, err := st.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No games played yet.")
			return nil
		}

		fmt.Printf("%-16s  %-32s  %-7s  %-6s  %-5s  %s\n", "When", "Game", "Score", "Time", "Coins", "Passed")
		fmt.Println(strings.Repeat("─", 84))
		for _, r := range runs {
			passed := ""
			if r.Passed {
				passed = "✓"
			}
			fmt.Printf("%-16s  %-32s  %-7s  %-6s  %5d  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04"),
				titles(r.GameID),
				fmt.Sprintf("%d/%d", r.Correct, r.Questions),
				fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
				r.Coins, passed)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("n", "n", 20, "Number of runs to show (0 for all)")
}
