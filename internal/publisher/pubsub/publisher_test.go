package pubsub

import (
	"context"
	"encoding/json"
	"testing"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

func newFakeClient(t *testing.T) (*pubsub.Client, *pstest.Server) {
	t.Helper()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)

	client, err := pubsub.NewClient(context.Background(), "areapages-test", option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestPublishSendsJSON(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client, srv := newFakeClient(t)
	_, err := client.CreateTopic(ctx, "content-generated")
	require.NoError(t, err)

	pub := New(client)
	defer pub.Close() //nolint:errcheck

	id, err := pub.Publish(ctx, "content-generated", map[string]any{
		"key": "kent/ashford/bridging-loans",
		"id":  "rec-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "application/json", msgs[0].Attributes["content_type"])

	var body map[string]any
	require.NoError(t, json.Unmarshal(msgs[0].Data, &body))
	require.Equal(t, "kent/ashford/bridging-loans", body["key"])
	require.Equal(t, "rec-1", body["id"])
}

func TestPublishUnknownTopic(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t)
	pub := New(client)
	defer pub.Close() //nolint:errcheck

	_, err := pub.Publish(context.Background(), "missing", map[string]any{"k": "v"})
	require.ErrorContains(t, err, "publish message")
}

func TestPublishValidation(t *testing.T) {
	t.Parallel()

	_, err := (&Publisher{}).Publish(context.Background(), "t", nil)
	require.Error(t, err)

	client, _ := newFakeClient(t)
	_, err = New(client).Publish(context.Background(), " ", nil)
	require.ErrorContains(t, err, "topic is required")

	_, err = New(client).Publish(context.Background(), "t", func() {})
	require.ErrorContains(t, err, "marshal payload")
}

func TestOpenRequiresProject(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "")
	require.Error(t, err)
}
