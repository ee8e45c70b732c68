package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/quiz"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List games (optionally filtered by topic)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cat, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalogue: %w", err)
		}

		topic, _ := cmd.Flags().GetString("topic")
		var games []quiz.Game
		if topic != "" {
			games = cat.ByTopic(topic)
			if len(games) == 0 {
				return fmt.Errorf("no games found for topic %q (topics: %s)",
					topic, strings.Join(cat.Topics(), ", "))
			}
		} else {
			games = cat.All()
		}

		// Header.
		fmt.Printf("%-22s  %-32s  %-10s  %9s  %s\n", "ID", "Title", "Type", "Questions", "Badge")
		fmt.Println(strings.Repeat("─", 92))

		for _, g := range games {
			title := g.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			fmt.Printf("%-22s  %-32s  %-10s  %9d  %s\n",
				g.ID, title, g.Kind.DisplayName(), len(g.Questions), g.Badge)
		}

		fmt.Printf("\n%d games\n", len(games))
		return nil
	},
}

func init() {
	listCmd.Flags().String("topic", "", "Only list games of this topic")
}
