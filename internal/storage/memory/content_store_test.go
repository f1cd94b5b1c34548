package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/areapages/internal/content"
)

func TestContentStoreFirstWriteWins(t *testing.T) {
	t.Parallel()

	store := NewContentStore()
	ctx := context.Background()
	key := content.Key{CountyKey: "kent", TownKey: "ashford", ServiceKey: "bridging-loans"}

	require.NoError(t, store.WriteContentRecord(ctx, content.Record{ID: "first", Key: key}))
	require.NoError(t, store.WriteContentRecord(ctx, content.Record{ID: "second", Key: key}))

	got, ok := store.Get(key)
	require.True(t, ok)
	require.Equal(t, "first", got.ID)
	require.Equal(t, 1, store.Len())

	keys, err := store.ListExistingKeys(ctx)
	require.NoError(t, err)
	require.Equal(t, content.NewKeySet(key), keys)

	// The snapshot is detached from later writes.
	other := content.Key{CountyKey: "kent", TownKey: "ashford", ServiceKey: "auction-finance"}
	require.NoError(t, store.WriteContentRecord(ctx, content.Record{ID: "third", Key: other}))
	require.False(t, keys.Has(other))
	require.NoError(t, store.Close())
}

func TestContentStoreRejectsMissingID(t *testing.T) {
	t.Parallel()

	require.Error(t, NewContentStore().WriteContentRecord(context.Background(), content.Record{}))
}
