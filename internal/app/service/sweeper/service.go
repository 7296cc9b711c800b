package sweeper

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	subsvc "github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/internal/models"
	"github.com/clapboard/membership/pkg/logctx"
	"github.com/clapboard/membership/pkg/types"
)

// Service finds subscriptions whose validity window has elapsed and expires
// them through the shared cascade. It runs on the configured cron schedule
// and is also invocable on demand via the admin API.
type Service struct {
	db   *gorm.DB
	log  *zap.SugaredLogger
	subs *subsvc.Service

	now func() time.Time
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, subs *subsvc.Service) *Service {
	return &Service{db: db, log: log, subs: subs, now: time.Now}
}

type SweepResult struct {
	Due     int `json:"due"`
	Expired int `json:"expired"`
	Failed  int `json:"failed"`
}

// Sweep expires every due subscription. Failures are isolated per row: one
// subscription's cascade failure is logged and the sweep continues. The
// operation is idempotent since the query filter excludes already-expired
// rows.
func (s *Service) Sweep(ctx context.Context) (*SweepResult, error) {
	start := s.now()

	var due []*models.UserSubscription
	if err := s.db.WithContext(ctx).
		Where("is_active = ? AND status = ? AND end_date < ?", true, types.SubscriptionStatusActive, start).
		Find(&due).Error; err != nil {
		return nil, fmt.Errorf("failed to query due subscriptions: %w", err)
	}

	res := &SweepResult{Due: len(due)}
	for _, sub := range due {
		expired, err := s.subs.ExpireIfDue(ctx, sub.ID)
		if err != nil {
			res.Failed++
			logctx.FromCtx(ctx, s.log).Errorw("sweep: cascade failed",
				"subscription_id", sub.ID, "user_id", sub.UserID, "err", err)
			continue
		}
		if expired {
			res.Expired++
		}
	}

	observeSweep(start, res)
	logctx.FromCtx(ctx, s.log).Infow("sweep completed",
		"due", res.Due, "expired", res.Expired, "failed", res.Failed,
		"elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}
