package cli

import (
	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Leaderboard commands (authority shard only)",
	}

	cmd.AddCommand(newLeaderboardShowCmd())
	cmd.AddCommand(newLeaderboardResetCmd())

	return cmd
}

func newLeaderboardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLeaderboardResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the leaderboard and notify all participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/leaderboard/reset", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Leaderboard reset")
			return nil
		},
	}
}
