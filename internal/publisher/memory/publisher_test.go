package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublisherRecordsMessages(t *testing.T) {
	t.Parallel()

	pub := New()
	id1, err := pub.Publish(context.Background(), "content-generated", map[string]any{"key": "kent/ashford/bridging-loans"})
	require.NoError(t, err)
	require.Equal(t, "memory-1", id1)
	id2, err := pub.Publish(context.Background(), "content-audit", "payload")
	require.NoError(t, err)
	require.Equal(t, "memory-2", id2)

	all := pub.Messages("")
	require.Len(t, all, 2)
	require.JSONEq(t, `{"key":"kent/ashford/bridging-loans"}`, string(all[0].Data))
	require.JSONEq(t, `"payload"`, string(all[1].Data))

	generated := pub.Messages("content-generated")
	require.Len(t, generated, 1)
	require.Equal(t, "memory-1", generated[0].ID)

	all[0].Topic = "modified"
	require.Equal(t, "content-generated", pub.Messages("")[0].Topic, "Messages returns a copy")
}

func TestPublisherRejectsUnencodablePayload(t *testing.T) {
	t.Parallel()

	pub := New()
	_, err := pub.Publish(context.Background(), "t", make(chan int))
	require.Error(t, err)
	require.Empty(t, pub.Messages(""))
}
