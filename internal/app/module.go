package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/clapboard/membership/internal/app/api/server"
	"github.com/clapboard/membership/internal/app/service/benefit"
	"github.com/clapboard/membership/internal/app/service/catalog"
	"github.com/clapboard/membership/internal/app/service/directory"
	"github.com/clapboard/membership/internal/app/service/mailer"
	"github.com/clapboard/membership/internal/app/service/subscription"
	"github.com/clapboard/membership/internal/app/service/sweeper"
	"github.com/clapboard/membership/internal/auth"
	"github.com/clapboard/membership/internal/platform/db"
	"github.com/clapboard/membership/internal/realtime"
	"github.com/clapboard/membership/pkg/config"
	"github.com/clapboard/membership/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	auth.Module,
	realtime.Module,
	directory.Module,
	catalog.Module,
	subscription.Module,
	sweeper.Module,
	benefit.Module,
	mailer.Module,
	server.Module,

	// Bind the hub and mailer to the interfaces the subscription service
	// depends on.
	fx.Provide(
		func(h *realtime.Hub) subscription.Events { return h },
		func(m *mailer.Service) subscription.DecisionMailer { return m },
	),
)
