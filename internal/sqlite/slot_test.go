package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_PutGetDelete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSlotRepository(db, 0)

	_, err := repo.Get(ctx, "portfolio_data")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Put(ctx, "portfolio_data", []byte(`{"projects":[]}`)))
	require.NoError(t, repo.Put(ctx, "portfolio_data", []byte(`{"experiments":[]}`)))

	value, err := repo.Get(ctx, "portfolio_data")
	require.NoError(t, err)
	require.Equal(t, `{"experiments":[]}`, string(value))

	var rows int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM slots").Scan(&rows))
	require.Equal(t, 1, rows)

	require.NoError(t, repo.Delete(ctx, "portfolio_data"))
	require.NoError(t, repo.Delete(ctx, "portfolio_data"))
	_, err = repo.Get(ctx, "portfolio_data")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSlotRepository_QuotaKeepsOldValue(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewSlotRepository(db, 16)

	require.NoError(t, repo.Put(ctx, "k", []byte("fits")))
	err := repo.Put(ctx, "k", []byte("this value is far too long"))
	require.ErrorIs(t, err, repository.ErrCapacityExceeded)

	value, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "fits", string(value))
}

func TestSlotRepository_ContentRoundTrip(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	adapter := content.NewAdapter(NewSlotRepository(db, 0), "")

	doc := content.Defaults()
	doc.ContactInfo.TaglineZh = "你好"
	require.NoError(t, adapter.Save(ctx, doc))

	stored, err := adapter.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, doc, content.Resolve(stored))
}

func TestIsDiskFull(t *testing.T) {
	require.False(t, isDiskFull(nil))
	require.True(t, isDiskFull(errors.New("database or disk is full (13)")))
	require.True(t, isDiskFull(errors.New("string or blob too big")))
	require.False(t, isDiskFull(errors.New("UNIQUE constraint failed")))
}
