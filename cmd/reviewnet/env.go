package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/reviewnet/reviewnet-contract/config"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	"github.com/reviewnet/reviewnet-contract/store"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// env is the network opened according to the configuration.
type env struct {
	cfg        config.Config
	log        *zap.Logger
	store      *store.Store
	dispatcher *proxy.Dispatcher
	metrics    *prometheus.Registry
}

func newEnv(c *cli.Context) (*env, error) {
	cfg := config.Default()

	if path := c.GlobalString("config"); path != "" {
		var err error

		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	log, err := cfg.Logger.NewLogger()
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	st, err := store.Open(cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	reg, err := proxy.NewRegistry(reviewnet.New(cfg.Network.CommitteeSize))
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	e := &env{
		cfg:   cfg,
		log:   log,
		store: st,
	}

	opts := []proxy.Option{proxy.WithLogger(log)}
	if c.GlobalBool("metrics") {
		e.metrics = prometheus.NewRegistry()
		opts = append(opts, proxy.WithMetrics(proxy.NewMetrics(e.metrics)))
	}

	e.dispatcher = proxy.NewDispatcher(st, reg, opts...)

	return e, nil
}

func (e *env) close() {
	if e.metrics != nil {
		mfs, err := e.metrics.Gather()
		if err != nil {
			e.log.Warn("failed to gather metrics", zap.Error(err))
		}

		for i := range mfs {
			_, _ = expfmt.MetricFamilyToText(os.Stdout, mfs[i])
		}
	}

	if err := e.store.Close(); err != nil {
		e.log.Warn("failed to close store", zap.Error(err))
	}

	_ = e.log.Sync()
}

// withEnv opens the network for the duration of f.
func withEnv(f func(*cli.Context, *env) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		e, err := newEnv(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		defer e.close()

		err = f(c, e)
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}
