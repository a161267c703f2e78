package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/openbacktest/obt/api"
	"github.com/openbacktest/obt/backtest"
	"github.com/openbacktest/obt/config"
	"github.com/openbacktest/obt/journal"
	"github.com/openbacktest/obt/market"
	"github.com/openbacktest/obt/stats"
	"github.com/openbacktest/obt/strategies"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest from a config file",
	Long: `Replay the configured bar series against the configured strategy and
print the resulting report.

Example:
  obt run --config examples/configs/sma-cross.yaml`,
	RunE: runRun,
}

var runConfigPath string

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runConfigPath, "config", "f", "", "path to config file (YAML or JSON) (required)")
	runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(runConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	series, err := market.LoadCSV(cfg.Data.File, cfg.Data.Pair)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	log.WithFields(logrus.Fields{
		"file": cfg.Data.File,
		"pair": series.Pair(),
		"bars": series.Len(),
	}).Info("loaded bar series")

	st, err := strategies.ByName(cfg.Strategy.Name, strategies.Params{
		Fast:            cfg.Strategy.FastPeriod,
		Slow:            cfg.Strategy.SlowPeriod,
		GridStepPercent: cfg.Strategy.GridStepPercent,
		GridFraction:    cfg.Strategy.GridFraction,
	})
	if err != nil {
		return err
	}

	engine := backtest.New(series, log)
	engine.Register(st)

	opts := backtest.Options{
		Wallet: cfg.Wallet.Settings(),
		Finish: cfg.Run.Finish,
	}

	j, err := newJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}
	meta := journal.RunMeta{Strategy: st.Name, Dataset: cfg.Data.File}

	var server *api.Server

	if cfg.Run.Mode == "flex" {
		res, err := engine.RunFlex(opts)
		if err != nil {
			return err
		}
		rep := stats.ComputeFlex(res)
		fmt.Print(rep.String())

		if j != nil {
			runID, err := journal.RecordFlexRun(j, meta, res, rep)
			if err != nil {
				return err
			}
			log.WithField("run_id", runID).Info("run recorded")
		}
		server = api.NewFlexServer(res, rep, log, cfg.API.Addr)
	} else {
		res, err := engine.Run(opts)
		if err != nil {
			return err
		}
		rep := stats.Compute(res)
		fmt.Print(rep.String())

		if j != nil {
			runID, err := journal.RecordRun(j, meta, res, rep)
			if err != nil {
				return err
			}
			log.WithField("run_id", runID).Info("run recorded")
		}
		server = api.NewServer(res, rep, log, cfg.API.Addr)
	}

	if cfg.API.Enabled {
		return server.Start()
	}
	return nil
}

func newLogger(lc config.LoggingConfig) (*logrus.Logger, error) {
	log := logrus.New()

	if lc.Level != "" {
		level, err := logrus.ParseLevel(lc.Level)
		if err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
		log.SetLevel(level)
	}
	if lc.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log, nil
}

func newJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.Dir)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	}
	return nil, fmt.Errorf("unknown journal type %q", jc.Type)
}
