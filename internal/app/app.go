package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/ghflow/internal/auth"
	"github.com/atomicstack/ghflow/internal/backend"
	"github.com/atomicstack/ghflow/internal/github"
	"github.com/atomicstack/ghflow/internal/logging"
	"github.com/atomicstack/ghflow/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

const startupTimeout = 10 * time.Second

// Config describes user-provided application options.
type Config struct {
	Repo                 string
	PR                   string
	MergeMethod          string
	TickRate             time.Duration
	NotificationDuration time.Duration
	TaskTimeout          time.Duration
	AutoRefresh          time.Duration
	Throttle             time.Duration
}

// InitError marks a failure that prevents the program from starting.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	if err := github.CheckCLI(); err != nil {
		return &InitError{Err: err}
	}
	cred, err := auth.Resolve(ctx, auth.Options{})
	if err != nil {
		return &InitError{Err: err}
	}
	logging.Info("credential resolved", "source", cred.Source)

	selector, err := github.ParsePRSelector(cfg.PR)
	if err != nil {
		return &InitError{Err: err}
	}
	repo, err := ResolveRepo(ctx, cfg.Repo, selector, github.DetectRepository)
	if err != nil {
		return &InitError{Err: err}
	}
	logging.Info("repository resolved", "repo", repo.String())

	client := github.NewClient(repo, cred.Token)
	disp := backend.NewDispatcher(client, backend.Options{
		Timeout:  cfg.TaskTimeout,
		Throttle: cfg.Throttle,
	})
	defer func() {
		disp.Stop()
		disp.Wait()
	}()

	model := ui.NewModel(ui.Options{
		Dispatcher:           disp,
		Repo:                 repo.String(),
		InitialPR:            selector.Number,
		MergeMethod:          cfg.MergeMethod,
		TickRate:             cfg.TickRate,
		NotificationDuration: cfg.NotificationDuration,
		AutoRefresh:          cfg.AutoRefresh,
	})

	logging.SetConsole(false)
	defer logging.SetConsole(true)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

type repoDetector func(ctx context.Context, dir string) (github.Repo, error)

// ResolveRepo picks the repository in order: explicit setting, the
// repository of a pull request URL, the origin remote of the working
// directory.
func ResolveRepo(ctx context.Context, explicit string, selector github.PRSelector, detect repoDetector) (github.Repo, error) {
	if explicit != "" {
		repo, err := github.ParseRepo(explicit)
		if err != nil {
			return github.Repo{}, err
		}
		if !selector.Repo.IsZero() && selector.Repo != repo {
			return github.Repo{}, fmt.Errorf("pull request URL is for %s, not %s", selector.Repo, repo)
		}
		return repo, nil
	}
	if !selector.Repo.IsZero() {
		return selector.Repo, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return github.Repo{}, fmt.Errorf("resolve working directory: %w", err)
	}
	repo, err := detect(ctx, dir)
	if err != nil {
		return github.Repo{}, fmt.Errorf("could not determine repository (use --repo owner/name): %w", err)
	}
	return repo, nil
}
