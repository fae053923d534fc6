package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jwojnar/cybercoach/internal/server"
	"github.com/jwojnar/cybercoach/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the session API without a camera",
	Long: `Serve the read-only session API over the existing database. Useful
for browsing past sessions and repetitions when no training is running.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		dbPath, _ := cmd.Flags().GetString("db")

		if dbPath == "" {
			var err error
			dbPath, err = defaultDBPath()
			if err != nil {
				return fmt.Errorf("data directory: %w", err)
			}
		}
		st, err := store.New(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		srv := server.New(server.Config{Store: st})
		log.Printf("Session API listening on %s", addr)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "HTTP listen address")
	serveCmd.Flags().String("db", "", "Session database path (default: ~/.cybercoach/cybercoach.db)")
}
