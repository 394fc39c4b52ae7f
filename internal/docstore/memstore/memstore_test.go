package memstore_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"taskflow/internal/docstore"
	"taskflow/internal/docstore/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAndLoadAll(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t1", []byte(`{"title":"one"}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t2", []byte(`{"title":"two"}`)))

	docs, err := store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "t1", docs[0].ID)
	assert.Equal(t, "t2", docs[1].ID)
}

func TestLoadAllEmptyCollection(t *testing.T) {
	store := memstore.New()
	docs, err := store.LoadAll(context.Background(), "never_written")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestPutReplacesKeepingOrder(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	require.NoError(t, store.Put(ctx, docstore.CollectionUsers, "u1", []byte(`{"name":"a"}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionUsers, "u2", []byte(`{"name":"b"}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionUsers, "u1", []byte(`{"name":"c"}`)))

	docs, err := store.LoadAll(ctx, docstore.CollectionUsers)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "u1", docs[0].ID)
	assert.Equal(t, []byte(`{"name":"c"}`), docs[0].Data)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t1", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, docstore.CollectionTasks, "t1"))

	docs, err := store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	assert.Empty(t, docs)

	// deleting an absent document is a no-op
	assert.NoError(t, store.Delete(ctx, docstore.CollectionTasks, "ghost"))
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("t%d", n)
			_ = store.Put(ctx, docstore.CollectionTasks, id, []byte(`{}`))
			_, _ = store.LoadAll(ctx, docstore.CollectionTasks)
		}(i)
	}
	wg.Wait()

	docs, err := store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	assert.Len(t, docs, 20)
}
