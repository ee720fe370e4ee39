package content_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/memory"
	"github.com/rpggio/folio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, quota int) (*content.Store, *memory.SlotStore) {
	t.Helper()
	slots := memory.NewSlotStore(quota)
	store := content.NewStore(content.NewAdapter(slots, ""), nil)
	store.Initialize(context.Background())
	return store, slots
}

func TestStore_EmptyStorageYieldsDefaults(t *testing.T) {
	store, _ := newStore(t, 0)
	require.Equal(t, content.Defaults(), store.Current())
}

func TestStore_CorruptedBlobYieldsDefaults(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStore(0)
	require.NoError(t, slots.Put(ctx, content.DefaultSlotKey, []byte(`{"projects":`)))

	store := content.NewStore(content.NewAdapter(slots, ""), nil)
	store.Initialize(ctx)
	require.Equal(t, content.Defaults(), store.Current())
}

func TestStore_LoadFailureYieldsDefaults(t *testing.T) {
	repo := &mocks.SlotRepository{}
	repo.On("Get", mock.Anything, content.DefaultSlotKey).Return(nil, errors.New("unavailable"))

	store := content.NewStore(content.NewAdapter(repo, ""), nil)
	store.Initialize(context.Background())
	require.Equal(t, content.Defaults(), store.Current())
}

func TestStore_PartialBlobFallsBackPerField(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStore(0)
	require.NoError(t, slots.Put(ctx, content.DefaultSlotKey,
		[]byte(`{"contactInfo":{"email":"me@example.com"}}`)))

	store := content.NewStore(content.NewAdapter(slots, ""), nil)
	store.Initialize(ctx)

	doc := store.Current()
	require.Equal(t, "me@example.com", doc.ContactInfo.Email)
	require.Empty(t, doc.ContactInfo.Tagline)
	require.Equal(t, content.Defaults().Projects, doc.Projects)
}

func TestStore_CommitPersistsAndSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t, 0)

	doc := content.Clone(store.Current())
	doc.Projects[0].Title = "B"
	require.NoError(t, store.Commit(ctx, doc))
	require.Equal(t, "B", store.Current().Projects[0].Title)

	doc.Projects[0].Title = "mutated after commit"
	require.Equal(t, "B", store.Current().Projects[0].Title)

	restarted := content.NewStore(content.NewAdapter(slots, ""), nil)
	restarted.Initialize(ctx)
	require.Equal(t, "B", restarted.Current().Projects[0].Title)
}

func TestStore_CommitNilListsMatchesReload(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t, 0)

	require.NoError(t, store.Commit(ctx, content.Document{
		Projects: []content.Entry{{ID: "1", Title: "Only"}},
	}))
	live := store.Current()
	require.NotNil(t, live.Experiments)
	require.Empty(t, live.Experiments)

	restarted := content.NewStore(content.NewAdapter(slots, ""), nil)
	restarted.Initialize(ctx)
	require.Equal(t, live, restarted.Current())
}

func TestStore_ImportedPartialFileMatchesReload(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t, 0)

	doc, err := content.ParseExport([]byte("projects:\n  - id: \"1\"\n    title: Only\n"))
	require.NoError(t, err)
	require.NoError(t, store.Commit(ctx, doc))

	live := store.Current()
	require.Len(t, live.Projects, 1)
	require.Equal(t, content.Defaults().Experiments, live.Experiments)
	require.Equal(t, content.Defaults().ContactInfo, live.ContactInfo)

	restarted := content.NewStore(content.NewAdapter(slots, ""), nil)
	restarted.Initialize(ctx)
	require.Equal(t, live, restarted.Current())
}

func TestStore_WrongFieldTypeDiscardsWholeBlob(t *testing.T) {
	ctx := context.Background()
	slots := memory.NewSlotStore(0)
	require.NoError(t, slots.Put(ctx, content.DefaultSlotKey,
		[]byte(`{"projects":[{"id":"1","year":2023}],"contactInfo":{"email":"me@example.com"}}`)))

	store := content.NewStore(content.NewAdapter(slots, ""), nil)
	store.Initialize(ctx)
	require.Equal(t, content.Defaults(), store.Current())
}

func TestStore_CommitCapacityKeepsLiveDocument(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, 64)
	before := content.Clone(store.Current())

	doc := content.Clone(before)
	doc.Projects[0].ImageURL = "data:image/png;base64,AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	err := store.Commit(ctx, doc)
	require.ErrorIs(t, err, content.ErrCapacityExceeded)
	require.Equal(t, before, store.Current())
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	store, slots := newStore(t, 0)

	doc := content.Clone(store.Current())
	doc.Experiments = nil
	require.NoError(t, store.Commit(ctx, doc))
	require.NoError(t, store.Reset(ctx))
	require.Equal(t, content.Defaults(), store.Current())

	_, err := content.NewAdapter(slots, "").Load(ctx)
	require.ErrorIs(t, err, content.ErrNotFound)
}

func TestStore_ResetFailureKeepsLiveDocument(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.SlotRepository{}
	repo.On("Get", mock.Anything, content.DefaultSlotKey).Return([]byte(`{"projects":[]}`), nil)
	repo.On("Delete", mock.Anything, content.DefaultSlotKey).Return(errors.New("locked"))

	store := content.NewStore(content.NewAdapter(repo, ""), nil)
	store.Initialize(ctx)
	require.Error(t, store.Reset(ctx))
	require.Empty(t, store.Current().Projects)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	store, _ := newStore(t, 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = len(store.Current().Projects)
			}
		}()
	}
	for i := 0; i < 10; i++ {
		doc := content.Clone(store.Current())
		doc.ContactInfo.Email = "x@example.com"
		require.NoError(t, store.Commit(ctx, doc))
	}
	wg.Wait()
}
