package realtime

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClientSendAfterCloseIsNoop(t *testing.T) {
	log := zap.NewNop().Sugar()
	hub := NewHub(log)
	c := newClient(hub, nil, "user-1", false, log)

	c.close()
	// must not panic on the closed channel
	require.NotPanics(t, func() {
		c.Send(NewMessage(EventSubscriptionDecided, map[string]any{"subscription_id": "sub-1"}))
	})
}

func TestClientCloseIsIdempotent(t *testing.T) {
	log := zap.NewNop().Sugar()
	c := newClient(NewHub(log), nil, "user-1", false, log)

	require.NotPanics(t, func() {
		c.close()
		c.close()
	})
}

func TestClientSendQueuesPayload(t *testing.T) {
	log := zap.NewNop().Sugar()
	c := newClient(NewHub(log), nil, "user-1", true, log)

	c.Send(NewMessage(EventSubscriptionRequested, map[string]any{"subscription_id": "sub-1"}))
	select {
	case payload := <-c.send:
		require.Contains(t, string(payload), "subscription.requested")
	default:
		t.Fatal("expected a queued payload")
	}
}
