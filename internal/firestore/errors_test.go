package firestore

import (
	"errors"
	"testing"

	"github.com/rpggio/folio/internal/repository"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassify(t *testing.T) {
	require.NoError(t, classify(nil))

	exhausted := classify(status.Error(codes.ResourceExhausted, "quota"))
	require.ErrorIs(t, exhausted, repository.ErrCapacityExceeded)

	tooBig := classify(status.Error(codes.InvalidArgument, "Document exceeds the maximum allowed size"))
	require.ErrorIs(t, tooBig, repository.ErrCapacityExceeded)

	other := errors.New("boom")
	require.Equal(t, other, classify(other))

	invalid := classify(status.Error(codes.InvalidArgument, "bad field path"))
	require.False(t, errors.Is(invalid, repository.ErrCapacityExceeded))
}
