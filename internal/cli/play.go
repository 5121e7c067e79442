package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"apple-quiz/internal/app"
	"apple-quiz/internal/config"
	"apple-quiz/internal/countdown"
	"apple-quiz/internal/infra/memory"
	"apple-quiz/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewPlayCmd builds the CLI subcommand that runs a quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var quizID string
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), cmd.OutOrStdout(), *configPath, quizID)
		},
	}
	cmd.Flags().StringVar(&quizID, "quiz", "", "built-in quiz id (defaults to quiz.id from config)")
	return cmd
}

func runPlay(ctx context.Context, out io.Writer, configPath, quizFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog, err := setupLogging(cfg.Log.File)
	if err != nil {
		return err
	}
	defer closeLog()

	quizID := quizFlag
	if quizID == "" {
		quizID = cfg.Quiz.ID
	}

	service := app.NewQuizService(memory.NewBuiltinQuizLoader(), sessionConfig(cfg, countdown.NewRealScheduler()))
	session, quiz, err := service.NewAttempt(ctx, quizID)
	if err != nil {
		return err
	}
	defer session.Close()

	title := cfg.UI.Title
	if title == "" {
		title = quiz.Title
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UseAltScreen() {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(tui.New(session, title), opts...)

	events, cancel := session.Subscribe()
	defer cancel()

	var g errgroup.Group
	g.Go(func() error {
		for ev := range events {
			app.LogEvent(ev)
			program.Send(tui.EventMsg(ev))
		}
		return nil
	})
	g.Go(func() error {
		defer session.Close()
		_, err := program.Run()
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("run quiz: %w", err)
	}

	res, finished := session.Result()
	if !finished {
		log.Printf("attempt %s abandoned", session.ID())
		return nil
	}
	_, err = fmt.Fprintf(out, "%s: %s\n", title, tui.ResultText(res))
	return err
}

func sessionConfig(cfg config.Config, sched countdown.Scheduler) app.SessionConfig {
	return app.SessionConfig{
		Seconds:       cfg.Quiz.Seconds,
		TickInterval:  config.Duration(cfg.Quiz.TickInterval, app.DefaultTickInterval),
		FeedbackDelay: config.Duration(cfg.Quiz.FeedbackDelay, app.DefaultFeedbackDelay),
		Scheduler:     sched,
	}
}

// setupLogging sends the standard logger to path, since the terminal belongs
// to the UI. An empty path discards log output.
func setupLogging(path string) (func(), error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "quiz")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
