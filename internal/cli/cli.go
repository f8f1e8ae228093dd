package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridshift/pkg/archive"
	"github.com/matzehuels/gridshift/pkg/buildinfo"
	"github.com/matzehuels/gridshift/pkg/cache"
	"github.com/matzehuels/gridshift/pkg/config"
	gserrors "github.com/matzehuels/gridshift/pkg/errors"
	"github.com/matzehuels/gridshift/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gridshift"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gridshift plans data moves across a storage grid",
		Long: `gridshift reads the usage report of a rectangular storage grid and finds the
shortest sequence of whole-node data moves that brings the payload in the
top-right node to the target node (0,0 unless told otherwise).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.viableCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.plansCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	c.cfg = cfg
	c.Logger.Debug("config loaded", "path", c.configPath, "cache", cfg.Cache.Backend, "archive", cfg.Archive.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the loaded config. noCache
// replaces the configured cache with a NullCache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	store, err := c.newArchive(ctx)
	if err != nil {
		ch.Close()
		return nil, err
	}
	runner := pipeline.NewRunner(ch, nil, store, c.Logger)
	if c.cfg.Cache.TTL > 0 {
		runner.PlanTTL = c.cfg.Cache.TTL
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.cfg.Cache
	switch cfg.Backend {
	case config.BackendFile:
		fc, err := cache.NewFileCache(cfg.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Dir, "err", err)
			return cache.NewNullCache(), nil
		}
		return fc, nil
	case config.BackendRedis:
		rc := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cache.WithPrefix(cfg.Redis.Prefix))
		if err := rc.Ping(ctx); err != nil {
			rc.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return rc, nil
	}
	return cache.NewNullCache(), nil
}

// newArchive opens the configured plan archive. It returns a nil store when
// archiving is disabled.
func (c *CLI) newArchive(ctx context.Context) (archive.Store, error) {
	cfg := c.cfg.Archive
	switch cfg.Backend {
	case config.BackendSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
		s, err := archive.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open archive %s: %w", cfg.Path, err)
		}
		return s, nil
	case config.BackendMongo:
		s, err := archive.NewMongoStore(ctx, cfg.URI, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to archive: %w", err)
		}
		return s, nil
	}
	return nil, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// solveFlags are the search flags shared by solve and render.
type solveFlags struct {
	heuristic     string
	maxExpansions int
	timeout       string
	refresh       bool
	noCache       bool
	target        string
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.heuristic, "heuristic", "", "search heuristic: move-cost (default), manhattan")
	cmd.Flags().IntVar(&f.maxExpansions, "max-expansions", 0, "give up after expanding this many states (default from config)")
	cmd.Flags().StringVar(&f.timeout, "timeout", "", "give up after this long, e.g. 90s or 5m (default from config)")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached plans and search again")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.target, "target", "", "target node as x,y (default 0,0)")
}

// options merges the flags over the solver config.
func (f *solveFlags) options(cfg config.SolverConfig) (pipeline.Options, error) {
	opts := pipeline.Options{
		Heuristic:     cfg.Heuristic,
		MaxExpansions: cfg.MaxExpansions,
		Timeout:       cfg.Timeout,
		Refresh:       f.refresh,
	}
	if f.heuristic != "" {
		opts.Heuristic = f.heuristic
	}
	if f.maxExpansions != 0 {
		opts.MaxExpansions = f.maxExpansions
	}
	if f.timeout != "" {
		d, err := parseDuration(f.timeout)
		if err != nil {
			return opts, err
		}
		opts.Timeout = d
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}

// parseTarget parses an "x,y" coordinate pair.
func parseTarget(s string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, gserrors.New(gserrors.ErrCodeInvalidInput, "target %q is not of the form x,y", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if err := errors.Join(errX, errY); err != nil || x < 0 || y < 0 {
		return 0, 0, gserrors.New(gserrors.ErrCodeInvalidInput, "target %q is not a pair of non-negative integers", s)
	}
	return x, y, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output carries a
// format extension, that is stripped too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
