package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/kidquest/internal/app"
	"github.com/abhisek/kidquest/internal/challenges"
	"github.com/abhisek/kidquest/internal/config"
	"github.com/abhisek/kidquest/internal/curriculum"
	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/kv"
	"github.com/abhisek/kidquest/internal/logging"
	"github.com/abhisek/kidquest/internal/progress"
	"github.com/abhisek/kidquest/internal/store"
)

// redisKeyPrefix namespaces progress records in a shared Redis.
const redisKeyPrefix = "kidquest:"

// deps is everything a command needs, built once from config and flags.
type deps struct {
	cfg      config.Config
	logger   *zap.Logger
	store    *store.Store
	progress *progress.Service
	registry *challenges.Registry
	regions  []geo.Region
	// results is nil in ephemeral mode.
	results store.GameResultRepo
	closers []func() error
}

// openDeps loads config, applies flag overrides and opens storage.
func openDeps(cmd *cobra.Command) (*deps, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if v, _ := flags.GetString("subject"); v != "" {
		cfg.Subject = v
	}
	if v, _ := flags.GetInt("year"); v > 0 {
		cfg.Year = v
	}
	if v, _ := flags.GetString("curriculum"); v != "" {
		cfg.CurriculumFile = v
	}
	if v, _ := flags.GetString("geodata"); v != "" {
		cfg.GeodataFile = v
	}
	ephemeral, _ := flags.GetBool("ephemeral")

	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	d := &deps{cfg: cfg, logger: logger}
	d.closers = append(d.closers, func() error {
		_ = logger.Sync()
		return nil
	})

	c, err := loadCurriculum(cfg)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.regions, err = loadRegions(cfg)
	if err != nil {
		d.Close()
		return nil, err
	}

	var records kv.Store
	if ephemeral {
		records = kv.NewMemory()
		logger.Info("ephemeral mode, progress will not be saved")
	} else {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		d.store = st
		d.results = st.GameResults()
		d.closers = append(d.closers, st.Close)
		records = st.KV()

		if cfg.RedisURL != "" {
			rs, err := kv.NewRedis(ctx, cfg.RedisURL, redisKeyPrefix)
			if err != nil {
				d.Close()
				return nil, fmt.Errorf("connect redis: %w", err)
			}
			d.closers = append(d.closers, rs.Close)
			records = rs
			logger.Info("progress records stored in redis")
		}
	}

	d.progress = progress.NewService(records, c, logger)
	d.registry = challenges.DefaultRegistry()
	return d, nil
}

// Close releases everything openDeps acquired, newest first.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}

func loadCurriculum(cfg config.Config) (*curriculum.Curriculum, error) {
	if cfg.CurriculumFile != "" {
		return curriculum.LoadFile(cfg.CurriculumFile)
	}
	if curriculum.Slug(cfg.Subject) == "math" && cfg.Year == 2 {
		return curriculum.Year2Math(), nil
	}
	return nil, fmt.Errorf("no built-in curriculum for %s year %d, pass --curriculum", cfg.Subject, cfg.Year)
}

func loadRegions(cfg config.Config) ([]geo.Region, error) {
	if cfg.GeodataFile == "" {
		return geo.SampleRegions(), nil
	}
	return geo.LoadFile(cfg.GeodataFile)
}

// appOptions maps deps onto the TUI's options.
func (d *deps) appOptions() app.Options {
	return app.Options{
		Progress:       d.progress,
		Registry:       d.registry,
		Regions:        d.regions,
		Results:        d.results,
		Logger:         d.logger,
		CorrectDelay:   d.cfg.CorrectDelay,
		IncorrectDelay: d.cfg.IncorrectDelay,
	}
}

// runApp builds dependencies and launches the TUI. configure, if set,
// adjusts the options before the program starts.
func runApp(cmd *cobra.Command, configure func(*app.Options)) error {
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := d.appOptions()
	if configure != nil {
		configure(&opts)
	}
	return app.Run(opts)
}
