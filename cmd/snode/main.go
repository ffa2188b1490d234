package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/common/version"

	"github.com/HaPhanBaoMinh/snode/help"
	"github.com/HaPhanBaoMinh/snode/internal/app"
	"github.com/HaPhanBaoMinh/snode/internal/config"
	"github.com/HaPhanBaoMinh/snode/internal/domain"
	"github.com/HaPhanBaoMinh/snode/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/snode/internal/infrastructure/scontrol"
	"github.com/HaPhanBaoMinh/snode/internal/infrastructure/slurmrest"
	"github.com/HaPhanBaoMinh/snode/internal/pkg/log"
	"github.com/HaPhanBaoMinh/snode/internal/ui/styles"
)

const (
	exitOK    = 0
	exitSetup = 1
	exitUsage = 2
	exitJobs  = 254
	exitNodes = 255
)

// flags holds command line values; empty values leave the config file (or
// its defaults) in charge.
type flags struct {
	configPath  string
	backend     string
	useMock     bool
	interactive bool
	color       string

	logLevel, logFormat, logOutput, logFile string

	scontrolPath string

	restURL, restUser, restToken, restVersion string
	restTimeout                               time.Duration

	jobsMaxWidth int
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var f flags
	a := kingpin.New(filepath.Base(os.Args[0]), "Print a one-shot snapshot of Slurm node usage and the jobs running on each node.")
	a.HelpFlag.Short('h')
	a.Flag("config", "YAML config file (default ~/.config/snode/config.yaml).").Short('c').Envar("SNODE_CONFIG").PlaceHolder("PATH").StringVar(&f.configPath)
	a.Flag("backend", "Where cluster state is read from, one of [scontrol, slurmrestd, mock].").Envar("SNODE_BACKEND").EnumVar(&f.backend, config.BackendScontrol, config.BackendSlurmrest, config.BackendMock)
	a.Flag("mock", "Use the built-in demo cluster (same as --backend=mock).").BoolVar(&f.useMock)
	a.Flag("interactive", "Browse the snapshot in a table instead of printing it.").Short('i').BoolVar(&f.interactive)
	a.Flag("color", "Colorize output, one of [auto, always, never].").Envar("SNODE_COLOR").EnumVar(&f.color, "auto", "always", "never")
	a.Flag("log.level", "Log level, one of [debug, info, warn, error].").Envar("SNODE_LOG_LEVEL").EnumVar(&f.logLevel, "debug", "info", "warn", "error")
	a.Flag("log.format", "Log format, one of [text, json].").Envar("SNODE_LOG_FORMAT").EnumVar(&f.logFormat, "text", "json")
	a.Flag("log.output", "Log output, one of [stdout, stderr, file].").Envar("SNODE_LOG_OUTPUT").EnumVar(&f.logOutput, "stdout", "stderr", "file")
	a.Flag("log.file", "Log file path when --log.output=file.").Envar("SNODE_LOG_FILE").PlaceHolder("PATH").StringVar(&f.logFile)
	a.Flag("scontrol.path", "scontrol binary.").Envar("SNODE_SCONTROL_PATH").PlaceHolder("PATH").StringVar(&f.scontrolPath)
	a.Flag("slurmrest.url", "slurmrestd base URL, e.g. http://slurmctl:6820.").Envar("SNODE_SLURMREST_URL").StringVar(&f.restURL)
	a.Flag("slurmrest.user", "X-SLURM-USER-NAME for slurmrestd.").Envar("SNODE_SLURMREST_USER").StringVar(&f.restUser)
	a.Flag("slurmrest.token", "X-SLURM-USER-TOKEN for slurmrestd (falls back to $SLURM_JWT).").Envar("SNODE_SLURMREST_TOKEN").StringVar(&f.restToken)
	a.Flag("slurmrest.api-version", "slurmrestd OpenAPI version, e.g. v0.0.40.").Envar("SNODE_SLURMREST_API_VERSION").StringVar(&f.restVersion)
	a.Flag("slurmrest.timeout", "Timeout of each slurmrestd request (Go duration).").Envar("SNODE_SLURMREST_TIMEOUT").DurationVar(&f.restTimeout)
	a.Flag("jobs.max-width", "Cap the JOBID column at this many characters, 0 for no cap.").Envar("SNODE_JOBS_MAX_WIDTH").IntVar(&f.jobsMaxWidth)
	a.Version(version.Print("snode"))

	if _, err := a.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("failed to parse commandline arguments: %w", err))
		a.Usage(args)
		return exitUsage
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitSetup
	}

	logger, logClose, err := log.NewLogger(cfg.Log.Output, cfg.Log.Format, cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		return exitSetup
	}
	defer logClose()

	styles.SetColor(cfg.Color)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := newRepo(cfg, logger)
	rows, err := app.Snapshot(ctx, repo, app.Options{Logger: logger, MaxJobsLen: cfg.Jobs.MaxWidth, Diag: os.Stderr})
	if err != nil {
		logger.Error("snapshot failed", "backend", cfg.Backend, "err", err)
		fmt.Fprintln(os.Stderr, err)
		var se *app.SnapshotError
		if errors.As(err, &se) && se.Kind == app.JobsSnapshot {
			return exitJobs
		}
		return exitNodes
	}

	if f.interactive {
		if _, err := tea.NewProgram(app.NewBrowser(cfg.Backend, rows), tea.WithAltScreen()).Run(); err != nil {
			logger.Error("interactive view failed", "err", err)
			return exitSetup
		}
		return exitOK
	}
	if err := app.Render(os.Stdout, rows); err != nil {
		logger.Error("failed to write snapshot", "err", err)
		return exitSetup
	}
	return exitOK
}

// loadConfig reads the config file and lays the command line over it.
func loadConfig(f flags) (*config.Config, error) {
	path, missingOK := f.configPath, false
	if path == "" {
		path, missingOK = config.DefaultPath(), true
	}
	cfg, err := config.Load(path, missingOK)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Backend, f.backend)
	if f.useMock {
		cfg.Backend = config.BackendMock
	}
	set(&cfg.Color, f.color)
	set(&cfg.Log.Level, f.logLevel)
	set(&cfg.Log.Format, f.logFormat)
	set(&cfg.Log.Output, f.logOutput)
	set(&cfg.Log.File, f.logFile)
	set(&cfg.Scontrol.Path, f.scontrolPath)
	set(&cfg.Slurmrest.URL, f.restURL)
	set(&cfg.Slurmrest.User, f.restUser)
	set(&cfg.Slurmrest.Token, f.restToken)
	set(&cfg.Slurmrest.APIVersion, f.restVersion)
	if cfg.Slurmrest.Token == "" {
		cfg.Slurmrest.Token = help.LookupEnv("SLURM_JWT")
	}
	if cfg.Slurmrest.User == "" {
		cfg.Slurmrest.User = help.LookupEnv("USER")
	}
	if f.restTimeout > 0 {
		cfg.Slurmrest.Timeout = f.restTimeout
	}
	if f.jobsMaxWidth > 0 {
		cfg.Jobs.MaxWidth = f.jobsMaxWidth
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRepo(cfg *config.Config, logger *slog.Logger) domain.ClusterRepo {
	switch cfg.Backend {
	case config.BackendMock:
		return mock.New(time.Now())
	case config.BackendSlurmrest:
		return slurmrest.New(http.DefaultClient, slurmrest.Config{
			URL:        cfg.Slurmrest.URL,
			User:       cfg.Slurmrest.User,
			Token:      cfg.Slurmrest.Token,
			APIVersion: cfg.Slurmrest.APIVersion,
			Timeout:    cfg.Slurmrest.Timeout,
		}, logger)
	}
	return scontrol.New(cfg.Scontrol.Path, logger)
}
