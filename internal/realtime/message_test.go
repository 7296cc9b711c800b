package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageJSONShape(t *testing.T) {
	msg := NewMessage(EventSubscriptionDecided, map[string]any{"subscription_id": "sub-1", "status": "active"})
	payload, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Equal(t, "subscription.decided", decoded["type"])
	require.NotEmpty(t, decoded["at"])

	data, ok := decoded["data"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "sub-1", data["subscription_id"])
}

func TestMessageOmitsEmptyData(t *testing.T) {
	payload, err := json.Marshal(NewMessage(EventConnected, nil))
	require.NoError(t, err)
	require.NotContains(t, string(payload), `"data"`)
}
