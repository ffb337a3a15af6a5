package kafka

import (
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-analysis-service/internal/domain"
)

func TestMapMessageToRawRecord(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte("2020-01-02T03:04:05.678Z,38.8,-122.8,2.9,1.3,md,,,,,nc,nc1,,Somewhere CA,,earthquake"),
		Topic:     "raw-quake-feed",
		Partition: 2,
		Offset:    42,
		Time:      now,
	}

	r := &Reader{}
	raw := r.mapMessageToRawRecord(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.Equal(t, string(msg.Value), raw.Line)
	assert.Equal(t, "raw-quake-feed", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.NotNil(t, raw.Commit)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.SeismicEvent{
		ID:         "nc72666881",
		EventType:  "earthquake",
		Location:   domain.GeoPoint{Latitude: 38.8232, Longitude: -122.7955, Label: "The Geysers CA"},
		Magnitude:  domain.Magnitude{Value: 1.32, Units: "md", DepthKm: 2.96},
		IngestedAt: now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("nc72666881"), msg.Key)
	assert.Contains(t, string(msg.Value), `"event_type":"earthquake"`)
	assert.Contains(t, string(msg.Value), `"latitude":38.8232`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("earthquake"), msg.Headers[0].Value)
	assert.Equal(t, "ingested_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}
