package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reviewCreated struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
}

func TestNewEvent(t *testing.T) {
	ev, err := NewEvent("catalog.review.created", "prod-1", "product", "catalog", reviewCreated{ProductID: "prod-1", Rating: 5})
	require.NoError(t, err)

	assert.NotEmpty(t, ev.EventID)
	assert.Equal(t, "catalog.review.created", ev.EventType)
	assert.Equal(t, "prod-1", ev.AggregateID)
	assert.Equal(t, "product", ev.AggregateType)
	assert.Equal(t, 1, ev.Version)
	assert.Equal(t, "catalog", ev.Source)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestNewEvent_UnmarshalableData(t *testing.T) {
	_, err := NewEvent("x", "a", "b", "c", make(chan int))
	assert.Error(t, err)
}

func TestEvent_RoundTrip(t *testing.T) {
	ev, err := NewEvent("catalog.product.updated", "prod-2", "product", "catalog", reviewCreated{ProductID: "prod-2"})
	require.NoError(t, err)
	ev.WithCorrelationID("corr-1").WithMetadata("origin", "admin")

	raw, err := ev.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, "corr-1", decoded.CorrelationID)
	assert.Equal(t, "admin", decoded.Metadata["origin"])

	var payload reviewCreated
	require.NoError(t, decoded.UnmarshalData(&payload))
	assert.Equal(t, "prod-2", payload.ProductID)
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{broken"))
	assert.Error(t, err)
}
