package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizbox/internal/app"
	"github.com/abhisek/quizbox/internal/clock"
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/rewards"
	"github.com/abhisek/quizbox/internal/screens/play"
	"github.com/abhisek/quizbox/internal/shell"
)

// runApp opens the store, builds dependencies, and launches the TUI. A
// non-empty gameID sends the player straight into that game.
func runApp(cmd *cobra.Command, gameID string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("load catalogue: %w", err)
	}

	opts := app.Options{Catalog: cat}
	if gameID != "" {
		g, err := cat.Game(gameID)
		if err != nil {
			return fmt.Errorf("%w (run `quizbox list` to see game ids)", err)
		}
		opts.StartGame = &g
	}

	st, dbPath, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	logger, closeLog, err := logging.OpenFile(filepath.Dir(dbPath), cfg.Level())
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "config", cfg.Source, "db", dbPath, "games", cat.Len())

	events := st.EventRepo()
	host := shell.New(cat, rewards.NewService(events, logger), events, st.SnapshotRepo(), logger)
	opts.Logger = logger
	opts.Env = &play.Env{
		Host:         host,
		AdvanceDelay: cfg.Timing.AdvanceDelay,
		RoundTime:    cfg.Timing.RoundTime,
		Feedback: feedback.Config{
			FlashDuration:    cfg.Feedback.FlashDuration,
			ConfettiDuration: cfg.Feedback.ConfettiDuration,
			FlashTotalCoins:  cfg.Feedback.FlashTotalCoins,
		},
		Scheduler: clock.Real(),
		Logger:    logger,
	}

	return app.Run(opts)
}
