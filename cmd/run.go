package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/app"
	"github.com/abhisek/mindcheck/internal/assessor"
	"github.com/abhisek/mindcheck/internal/coach"
	"github.com/abhisek/mindcheck/internal/config"
	"github.com/abhisek/mindcheck/internal/llm"
	"github.com/abhisek/mindcheck/internal/logger"
	"github.com/abhisek/mindcheck/internal/store"
)

// env bundles the dependencies every command shares.
type env struct {
	cfg     config.Config
	log     *zap.Logger
	store   *store.Store
	svc     *assessor.Service
	closers []func()
}

// Close releases everything opened by setup, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

// Repo returns the event repository, or nil when history is disabled.
func (e *env) Repo() store.EventRepo {
	if e.store == nil {
		return nil
	}
	return e.store.EventRepo()
}

// loadConfig merges defaults, the env file, MINDCHECK_* variables and flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}

	overrides := map[string]*string{
		"strategy":   &cfg.Strategy,
		"content":    &cfg.ContentSet,
		"model-dir":  &cfg.ModelDir,
		"log-level":  &cfg.LogLevel,
		"log-format": &cfg.LogFormat,
	}
	for name, dst := range overrides {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			*dst = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// setupOpts selects which optional collaborators setup wires.
type setupOpts struct {
	store   bool // open the history store
	service bool // build the assessment service
	logFile string
}

// setup loads configuration and builds the requested dependencies.
func setup(cmd *cobra.Command, opts setupOpts) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logOut := cfg.LogFile
	if logOut == "" {
		logOut = opts.logFile
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, "mindcheck", logOut)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, log: log}
	e.closers = append(e.closers, func() { _ = log.Sync() })

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if opts.store && !noHistory {
		dbPath, err := resolveDBPath(cmd, cfg.DB)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			e.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.store = st
		e.closers = append(e.closers, func() { _ = st.Close() })
		log.Debug("history store opened", zap.String("dialect", st.Dialect()))
	}

	if opts.service {
		svc, err := e.buildService(cmd.Context())
		if err != nil {
			e.Close()
			return nil, err
		}
		e.svc = svc
	}

	return e, nil
}

func (e *env) buildService(ctx context.Context) (*assessor.Service, error) {
	strategy, err := assessor.NewStrategy(e.cfg.Strategy, e.cfg.ModelDir)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}
	table, err := advice.Lookup(e.cfg.ContentSet)
	if err != nil {
		return nil, err
	}

	opts := []assessor.Option{assessor.WithLogger(e.log)}
	if repo := e.Repo(); repo != nil {
		opts = append(opts, assessor.WithRecorder(repo))
	}
	if e.cfg.Coach {
		if noter := e.buildCoach(ctx); noter != nil {
			opts = append(opts, assessor.WithCoach(noter))
		}
	}

	return assessor.NewService(strategy, table, opts...), nil
}

// buildCoach wires the optional note writer. Failures disable notes without
// stopping the command.
func (e *env) buildCoach(ctx context.Context) *coach.Service {
	llmCfg := llm.ConfigFromEnv()
	if os.Getenv("MINDCHECK_LLM_PROVIDER") == "" {
		if discovered, ok := llm.DiscoverConfig(); ok {
			llmCfg = discovered
		}
	}
	if err := llmCfg.Validate(); err != nil {
		e.log.Warn("coach notes disabled", zap.Error(err))
		return nil
	}

	provider, err := llm.NewProvider(ctx, llmCfg, e.Repo(), e.log)
	if err != nil {
		e.log.Warn("coach notes disabled", zap.Error(err))
		return nil
	}

	var cache coach.KVStore
	if addr := e.cfg.Redis.Addr; addr != "" {
		client, err := coach.DialRedis(ctx, addr, e.cfg.Redis.Password, e.cfg.Redis.DB)
		if err != nil {
			e.log.Warn("coach cache unavailable", zap.String("addr", addr), zap.Error(err))
		} else {
			cache = coach.NewRedisKVStore(client)
			e.closers = append(e.closers, func() { _ = client.Close() })
		}
	}

	cfg := coach.DefaultConfig()
	cfg.TTL = e.cfg.CoachTTL
	return coach.NewService(provider, cache, cfg, e.log)
}

// runApp builds dependencies and launches the TUI. Logs go to a file so they
// do not corrupt the alt screen.
func runApp(cmd *cobra.Command) error {
	logFile, err := defaultLogFile()
	if err != nil {
		return err
	}
	e, err := setup(cmd, setupOpts{store: true, service: true, logFile: logFile})
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(e.svc, e.Repo(), e.log)
}

// defaultLogFile places TUI logs under the user cache directory.
func defaultLogFile() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve cache dir: %w", err)
	}
	dir = filepath.Join(dir, "mindcheck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "mindcheck.log"), nil
}
