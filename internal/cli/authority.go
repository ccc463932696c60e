package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthorityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authority",
		Short: "Authority shard configuration",
	}

	cmd.AddCommand(newAuthoritySetCmd())
	cmd.AddCommand(newAuthorityShowCmd())

	return cmd
}

func newAuthoritySetCmd() *cobra.Command {
	var shard string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Configure which shard holds the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shard == "" {
				return fmt.Errorf("--shard is required")
			}

			req := map[string]string{"authority_shard_id": shard}
			var result Role

			if err := client.Post("/api/v1/authority", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&shard, "shard", "", "Authority shard ID (required)")
	_ = cmd.MarkFlagRequired("shard")

	return cmd
}

func newAuthorityShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show this shard's role",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Role

			if err := client.Get("/api/v1/authority", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
