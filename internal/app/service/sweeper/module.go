package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cfgpkg "github.com/clapboard/membership/pkg/config"
	"github.com/clapboard/membership/pkg/metrics"
)

var (
	sweepMetricOnce sync.Once
	sweepHistogram  *prometheus.HistogramVec
)

func observeSweep(start time.Time, res *SweepResult) {
	sweepMetricOnce.Do(func() {
		c := metrics.NewMetric(metrics.MetricsBusinessProcess, "membership")
		if err := prometheus.Register(c); err == nil {
			sweepHistogram = c.(*prometheus.HistogramVec)
		}
	})
	if sweepHistogram != nil {
		sweepHistogram.WithLabelValues("sweep", "expiry").Observe(metrics.MillisecondsSince(start))
	}
}

// registerCron schedules the expiry sweep and ties the cron runner to the fx
// lifecycle.
func registerCron(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, s *Service) error {
	cronLog := cron.PrintfLogger(zap.NewStdLog(log.Desugar()))
	c := cron.New(cron.WithChain(cron.Recover(cronLog)))

	if _, err := c.AddFunc(cfg.Sweep.Schedule, func() {
		if _, err := s.Sweep(context.Background()); err != nil {
			log.Errorf("scheduled sweep failed: %v", err)
		}
	}); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			c.Start()
			log.Infow("expiry sweep scheduled", "schedule", cfg.Sweep.Schedule)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopCtx := c.Stop()
			select {
			case <-stopCtx.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
	return nil
}

var Module = fx.Options(
	fx.Provide(NewService),
	fx.Invoke(registerCron),
)
