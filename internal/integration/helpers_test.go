//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

// startKafka launches a single-broker Kafka container and returns its
// bootstrap address. The container is terminated via t.Cleanup.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("quake-test-cluster"))
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err, "resolve kafka brokers")
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic on the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err, "dial broker")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "resolve controller")

	controllerConn, err := kafkago.Dial("tcp",
		net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err, "dial controller")
	defer controllerConn.Close()

	require.NoError(t, controllerConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}), "create topic %s", topic)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// feedLines is a small USGS-format batch: three earthquakes clustered near
// The Geysers, one quarry blast, and one outlier near Yellowstone.
func feedLines() []string {
	return []string{
		"2020-01-02T03:04:05.678Z,38.8232,-122.7955,2.96,1.32,md,15,73,0.0114,0.03,nc,nc72666881,2020-01-02T03:10:00.000Z,The Geysers CA,automatic,earthquake",
		"2020-01-02T04:11:22.000Z,38.8400,-122.8011,1.80,0.98,md,12,88,0.0120,0.04,nc,nc72666890,2020-01-02T04:20:00.000Z,The Geysers CA,automatic,earthquake",
		"2020-01-03T09:30:00.123Z,38.8105,-122.7800,3.10,2.05,md,22,61,0.0100,0.05,nc,nc72666912,2020-01-03T09:40:00.000Z,The Geysers CA,automatic,earthquake",
		"2020-01-03T12:00:00.000Z,37.6305,-118.9100,5.00,1.10,md,10,95,0.0200,0.06,nc,nc72666950,2020-01-03T12:10:00.000Z,Mammoth Lakes CA,automatic,quarry blast",
		"2020-02-10T18:45:30.500Z,44.4280,-110.5885,4.20,2.80,ml,30,55,0.0300,0.07,uu,uu60331342,2020-02-10T18:55:00.000Z,Yellowstone WY,reviewed,earthquake",
	}
}
