package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) recentCmd() *cobra.Command {
	var (
		userID int64
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List a user's most recent reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if userID <= 0 {
				return fmt.Errorf("a positive --user id is required")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			summaries, err := a.store.RecentReports(ctx, userID, limit)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No reports found.")
				return nil
			}

			for _, s := range summaries {
				fmt.Printf("%s  %s  %s\n",
					formatHeader(string(s.Type)),
					s.GeneratedAt.Format("2006-01-02 15:04"),
					formatMuted(s.UUID))
				if s.Preview != "" {
					fmt.Printf("  %s\n", s.Preview)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID to list reports for (required)")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of reports to list")

	return cmd
}
