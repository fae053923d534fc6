package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwojnar/cybercoach/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect recorded training sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			sessions, err := st.Sessions().List()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEXERCISE\tSTARTED\tREPS\tCOMPLETE\tAVG ROM")
			for _, s := range sessions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\n",
					s.ID, s.ExerciseName, s.StartedAt.Format(time.RFC3339),
					s.TotalReps, s.CompleteReps, s.AvgROM)
			}
			return w.Flush()
		})
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show one session with its repetitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(st *store.Store) error {
			session, err := st.Sessions().GetByID(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %s\n", session.ID)
			fmt.Fprintf(out, "Exercise: %s\n", session.ExerciseName)
			fmt.Fprintf(out, "Started:  %s\n", session.StartedAt.Format(time.RFC3339))
			if session.EndedAt != nil {
				fmt.Fprintf(out, "Ended:    %s\n", session.EndedAt.Format(time.RFC3339))
			}
			fmt.Fprintf(out, "Reps:     %d total, %d complete, %d incomplete\n",
				session.TotalReps, session.CompleteReps, session.IncompleteReps)
			if session.ConfirmedReps > 0 {
				fmt.Fprintf(out, "Confirmed by both views: %d\n", session.ConfirmedReps)
			}

			reps, err := st.Repetitions().ListBySession(session.ID)
			if err != nil {
				return err
			}
			if len(reps) == 0 {
				return nil
			}

			fmt.Fprintln(out)
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VIEW\tFRAMES\tROM\tCOMPLETE\tERRORS")
			for _, r := range reps {
				fmt.Fprintf(w, "%s\t%d..%d\t%.1f\t%v\t%s\n",
					r.View, r.StartFrame, r.EndFrame, r.ROM, r.IsComplete,
					strings.Join(r.Errors, "; "))
			}
			return w.Flush()
		})
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
}

// withStore opens the default database, runs fn, and closes it.
func withStore(fn func(*store.Store) error) error {
	dbPath, err := defaultDBPath()
	if err != nil {
		return fmt.Errorf("data directory: %w", err)
	}
	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	return fn(st)
}
