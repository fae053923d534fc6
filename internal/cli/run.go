package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jwojnar/cybercoach/internal/app"
	"github.com/jwojnar/cybercoach/internal/capture"
	"github.com/jwojnar/cybercoach/internal/exercise"
	"github.com/jwojnar/cybercoach/internal/server"
	"github.com/jwojnar/cybercoach/internal/store"
	"github.com/jwojnar/cybercoach/internal/tray"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start a training session",
	Long: `Start a training session with one or two camera views.

Each view source is a webcam index ("0"), a video file path, or an
IP Webcam base URL ("http://192.168.0.12:8080"). With both --front and
--side configured, repetitions are cross-checked between the views and
only count as confirmed when both agree the form was correct.`,
	RunE: runSession,
}

func init() {
	runCmd.Flags().String("front", "0", "Front view source (webcam index, video file, or phone URL)")
	runCmd.Flags().String("side", "", "Side view source (webcam index, video file, or phone URL)")
	runCmd.Flags().String("exercise", "", "Exercise definition YAML (default: built-in shoulder press)")
	runCmd.Flags().String("addr", ":8080", "HTTP listen address for the dashboard API")
	runCmd.Flags().String("db", "", "Session database path (default: ~/.cybercoach/cybercoach.db)")
	runCmd.Flags().String("report-dir", "", "Directory for session reports (default: ~/.cybercoach/reports)")
	runCmd.Flags().Bool("tray", false, "Run with a system tray icon instead of starting immediately")
}

func runSession(cmd *cobra.Command, args []string) error {
	frontSrc, _ := cmd.Flags().GetString("front")
	sideSrc, _ := cmd.Flags().GetString("side")
	exercisePath, _ := cmd.Flags().GetString("exercise")
	addr, _ := cmd.Flags().GetString("addr")
	dbPath, _ := cmd.Flags().GetString("db")
	reportDir, _ := cmd.Flags().GetString("report-dir")
	useTray, _ := cmd.Flags().GetBool("tray")

	def, err := loadExercise(exercisePath)
	if err != nil {
		return err
	}

	sources, err := buildSources(frontSrc, sideSrc)
	if err != nil {
		return err
	}

	if dbPath == "" {
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

	if reportDir == "" {
		dataDir, err := defaultDataDir()
		if err != nil {
			return err
		}
		reportDir = filepath.Join(dataDir, "reports")
	}

	live := server.NewLiveHandler()

	application, err := app.New(app.Config{
		Store:     st,
		Exercise:  def,
		Sources:   sources,
		ReportDir: reportDir,
		Live:      live,
	})
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Store:  st,
		Camera: sources[0].Camera,
		Live:   live,
	})
	go func() {
		log.Printf("Dashboard API listening on %s", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			log.Printf("HTTP server stopped: %v", err)
		}
	}()

	if err := application.Start(); err != nil {
		return err
	}
	defer application.Stop()

	if useTray {
		runWithTray(application)
		return nil
	}

	application.SetEnabled(true)
	log.Printf("Analyzing %s, press Ctrl-C to finish the session", def.Name)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	return nil
}

// runWithTray blocks inside the systray loop; the session is toggled
// from the menu and the counter refreshes once a second.
func runWithTray(application *app.App) {
	t := tray.New()
	t.OnToggle(application.SetEnabled)
	t.OnQuit(func() {})

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				summary := application.Summary()
				t.SetRepCount(summary.TotalReps, summary.CompleteReps)
			}
		}
	}()

	t.Run()
	close(done)
}

// loadExercise returns the built-in shoulder press or the YAML file's definition.
func loadExercise(path string) (*exercise.Definition, error) {
	if path == "" {
		return exercise.ShoulderPress(), nil
	}
	return exercise.Load(path)
}

// buildSources turns the --front/--side flag values into view sources.
func buildSources(frontSrc, sideSrc string) ([]app.ViewSource, error) {
	var sources []app.ViewSource

	add := func(view, src string) error {
		if src == "" {
			return nil
		}
		camera, err := openSource(src)
		if err != nil {
			return fmt.Errorf("view %s: %w", view, err)
		}
		sources = append(sources, app.ViewSource{View: view, Camera: camera})
		return nil
	}

	if err := add(exercise.ViewFront, frontSrc); err != nil {
		return nil, err
	}
	if err := add(exercise.ViewSide, sideSrc); err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one of --front or --side is required")
	}
	return sources, nil
}

// openSource maps a source string to a camera implementation.
func openSource(src string) (capture.Camera, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return capture.NewPhoneCamera(src), nil
	}
	if id, err := strconv.Atoi(src); err == nil {
		return capture.NewCamera(id), nil
	}
	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("source %q is neither a device index, a readable file, nor a URL", src)
	}
	return capture.NewVideoFile(src), nil
}
