package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/data2paper/reportgen/internal/pipeline"
	"github.com/data2paper/reportgen/internal/report"
	"github.com/data2paper/reportgen/internal/task"
)

func (a *App) generateCmd() *cobra.Command {
	var (
		userID   int64
		writeDoc bool
		params   []string
	)

	cmd := &cobra.Command{
		Use:   "generate [daily|weekly|monthly|custom]",
		Short: "Generate a productivity report",
		Long: `Generate a productivity report for a user over the given window.

Examples:
  reportgen generate daily --user 1
  reportgen generate weekly --user 1 --doc
  reportgen generate custom --user 1 --param status=Completed --param project=alpha`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, err := report.ParseType(args[0])
			if err != nil {
				return err
			}
			if userID <= 0 {
				return fmt.Errorf("a positive --user id is required")
			}

			parameters, err := parseParams(params)
			if err != nil {
				return err
			}
			if typ != report.TypeCustom && len(parameters) > 0 {
				return fmt.Errorf("--param only applies to custom reports")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			rep, err := a.generator().Generate(ctx, userID, typ, pipeline.GenerateOptions{
				Parameters:    parameters,
				WriteDocument: writeDoc,
			})
			if err != nil {
				return err
			}

			printReport(rep)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "User ID to report on (required)")
	cmd.Flags().BoolVar(&writeDoc, "doc", false, "Also write the report as a document file")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Custom report parameter as key=value (repeatable)")

	return cmd
}

// parseParams converts repeated key=value flags into a map.
func parseParams(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(raw))
	for _, p := range raw {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q, expected key=value", p)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

func printReport(rep *report.Report) {
	fmt.Println(formatHeader(fmt.Sprintf("%s report %s", rep.Type, rep.UUID)))
	fmt.Printf("Generated at %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	if st := rep.Stats; st != nil {
		fmt.Printf("\nTasks: %d total, %d completed (%.2f%%)\n",
			st.TotalTasks, st.CompletedTasks, st.CompletionRate)
		for _, s := range []task.Status{task.StatusPending, task.StatusInProgress, task.StatusCompleted, task.StatusOverdue} {
			if c, ok := st.StatusDistribution[s]; ok {
				fmt.Printf("  %s: %d\n", formatStatus(s), c)
			}
		}
	}

	fmt.Println()
	fmt.Println(rep.Summary)

	if rep.DocumentPath != "" {
		fmt.Printf("\nDocument written to %s\n", rep.DocumentPath)
	}
}
