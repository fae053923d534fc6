// Package cli implements the cybercoach command line interface.
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "cybercoach",
	Short: "cybercoach — camera-based workout form coaching",
	Long: `cybercoach watches an exercise through one or two cameras, counts
repetitions, and scores each one against the exercise's technique rules.

Session history is stored in ~/.cybercoach/cybercoach.db (SQLite) and
per-session reports are written as JSON and CSV.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
}

// defaultDataDir returns ~/.cybercoach, creating it if needed.
func defaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(homeDir, ".cybercoach")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// defaultDBPath returns the path of the session database.
func defaultDBPath() (string, error) {
	dir, err := defaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cybercoach.db"), nil
}
