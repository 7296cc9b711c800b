package mailer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	cfgpkg "github.com/clapboard/membership/pkg/config"
)

func TestSendSubscriptionDecision_MockModeNeverDials(t *testing.T) {
	svc := NewService(&cfgpkg.Config{Mail: cfgpkg.MailConfig{Mode: "mock"}}, zap.NewNop().Sugar())

	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SendSubscriptionDecision(context.Background(), "user@example.com", "Premium", true, "", &end))
	require.NoError(t, svc.SendSubscriptionDecision(context.Background(), "user@example.com", "Premium", false, "payment not received", nil))
}

func TestSendSubscriptionDecision_EmptyHostFallsBackToMock(t *testing.T) {
	svc := NewService(&cfgpkg.Config{Mail: cfgpkg.MailConfig{Mode: "smtp"}}, zap.NewNop().Sugar())
	require.NoError(t, svc.SendSubscriptionDecision(context.Background(), "user@example.com", "Basic", true, "", nil))
}
