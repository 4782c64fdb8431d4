package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/data2paper/reportgen/internal/task"
	"github.com/data2paper/reportgen/internal/user"
)

// importFile is the JSON export format accepted by the import command.
type importFile struct {
	Users   []user.Raw     `json:"users"`
	Tasks   []task.RawTask `json:"tasks"`
	History []task.RawEvent `json:"history"`
}

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file.json]",
		Short: "Import users, tasks, and status history from a JSON export",
		Long: `Import records from a JSON export into the database.

The file holds three arrays: "users", "tasks", and "history". Records
are validated on the way in; malformed tasks and unorderable history
events are skipped with a warning rather than aborting the import.

Example:
  reportgen import export.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if err := a.ensureStore(ctx); err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import file: %w", err)
			}

			var file importFile
			if err := json.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("parsing import file: %w", err)
			}

			users, tasks, events, err := a.importRecords(ctx, file)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d users, %d tasks, %d history events from %s\n",
				users, tasks, events, args[0])
			return nil
		},
	}

	return cmd
}

// importRecords parses and stores an export. Per-record validation
// failures are logged and skipped; storage failures abort.
func (a *App) importRecords(ctx context.Context, file importFile) (users, tasks, events int, err error) {
	for _, raw := range file.Users {
		u, err := user.Parse(raw)
		if err != nil {
			log.Printf("import: skipping user: %v", err)
			continue
		}
		if err := a.store.CreateUser(ctx, u); err != nil {
			return users, tasks, events, err
		}
		users++
	}

	imported := make(map[int64]bool)
	for _, raw := range file.Tasks {
		t, err := task.ParseRecord(raw)
		if err != nil {
			log.Printf("import: skipping task: %v", err)
			continue
		}
		if err := a.store.CreateTask(ctx, t); err != nil {
			return users, tasks, events, err
		}
		imported[t.ID] = true
		tasks++
	}

	for _, raw := range file.History {
		e, err := task.ParseEvent(raw)
		if err != nil {
			log.Printf("import: skipping history event: %v", err)
			continue
		}
		if !imported[e.TaskID] {
			if _, err := a.store.GetTask(ctx, e.TaskID); err != nil {
				log.Printf("import: skipping history event for unknown task %d", e.TaskID)
				continue
			}
		}
		if err := a.store.AddEvent(ctx, e); err != nil {
			return users, tasks, events, err
		}
		events++
	}

	return users, tasks, events, nil
}
