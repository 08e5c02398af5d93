package kafka

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	VisitorID string  `json:"visitor_id"`
	Subtotal  float64 `json:"subtotal"`
}

func TestNewEvent_PopulatesEnvelope(t *testing.T) {
	data := cartPayload{VisitorID: "v-1", Subtotal: 96}

	evt, err := NewEvent("storefront.cart.updated", "v-1", "cart", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, evt.EventID)
	assert.Equal(t, "storefront.cart.updated", evt.EventType)
	assert.Equal(t, "v-1", evt.AggregateID)
	assert.Equal(t, "cart", evt.AggregateType)
	assert.Equal(t, "storefront", evt.Source)
	assert.Equal(t, 1, evt.Version)
	assert.False(t, evt.Timestamp.IsZero())

	var decoded cartPayload
	require.NoError(t, json.Unmarshal(evt.Data, &decoded))
	assert.Equal(t, data, decoded)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	evt, err := NewEvent("storefront.wishlist.updated", "v-2", "wishlist", "storefront",
		map[string]any{"items": []string{"gid://shopify/Product/1"}})
	require.NoError(t, err)
	evt.WithCorrelationID("corr-1").WithMetadata("channel", "web")

	raw, err := evt.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, evt.EventID, got.EventID)
	assert.Equal(t, evt.EventType, got.EventType)
	assert.Equal(t, "corr-1", got.CorrelationID)
	assert.Equal(t, "web", got.Metadata["channel"])
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{{nope"))
	assert.Error(t, err)
}
