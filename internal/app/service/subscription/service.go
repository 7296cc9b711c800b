package subscription

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clapboard/membership/internal/app/service/directory"
	"github.com/clapboard/membership/internal/models"
)

// Events receives subscription lifecycle notifications. The realtime hub
// implements it; a no-op implementation is fine in tests.
type Events interface {
	// SubscriptionRequested is fanned out to connected administrators.
	SubscriptionRequested(sub *models.UserSubscription)
	// SubscriptionDecided targets the owning user after approval/rejection.
	SubscriptionDecided(sub *models.UserSubscription)
	// SubscriptionExpired targets the owning user after the expiry cascade.
	SubscriptionExpired(sub *models.UserSubscription)
}

// DecisionMailer sends the approval/rejection email. Failures are logged by
// the caller and never fail the state transition.
type DecisionMailer interface {
	SendSubscriptionDecision(ctx context.Context, to, packageName string, approved bool, reason string, endDate *time.Time) error
}

// Service is the subscription state machine. Every transition runs inside a
// single database transaction so the subscription row, payment row, and user
// row commit together.
type Service struct {
	db     *gorm.DB
	log    *zap.SugaredLogger
	dir    *directory.Service
	events Events
	mailer DecisionMailer

	// now is swapped in tests.
	now func() time.Time
}

func NewService(db *gorm.DB, log *zap.SugaredLogger, dir *directory.Service, events Events, mailer DecisionMailer) *Service {
	return &Service{
		db:     db,
		log:    log,
		dir:    dir,
		events: events,
		mailer: mailer,
		now:    time.Now,
	}
}
