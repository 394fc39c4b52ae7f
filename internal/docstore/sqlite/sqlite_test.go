package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"taskflow/internal/docstore"
	"taskflow/internal/docstore/sqlite"
	"taskflow/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init(true)
	os.Exit(m.Run())
}

func TestOpenInMemory(t *testing.T) {
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	docs, err := store.LoadAll(context.Background(), docstore.CollectionTasks)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.db")
	store, err := sqlite.Open(path)
	require.NoError(t, err)
	store.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPutLoadDelete(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t1", []byte(`{"title":"first"}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t2", []byte(`{"title":"second"}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionUsers, "u1", []byte(`{"name":"a"}`)))

	docs, err := store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "t1", docs[0].ID)
	assert.JSONEq(t, `{"title":"first"}`, string(docs[0].Data))

	// collections are isolated
	users, err := store.LoadAll(ctx, docstore.CollectionUsers)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, store.Delete(ctx, docstore.CollectionTasks, "t1"))
	docs, err = store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "t2", docs[0].ID)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t1", []byte(`{"v":1}`)))
	require.NoError(t, store.Put(ctx, docstore.CollectionTasks, "t1", []byte(`{"v":2}`)))

	docs, err := store.LoadAll(ctx, docstore.CollectionTasks)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.JSONEq(t, `{"v":2}`, string(docs[0].Data))
}
