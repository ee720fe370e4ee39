package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/rpggio/folio/internal/domain/gate"
	"github.com/rpggio/folio/internal/memory"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	tools *toolset
	store *content.Store
	slots *memory.SlotStore
}

func newFixture(t *testing.T, quota int) *fixture {
	t.Helper()
	slots := memory.NewSlotStore(quota)
	store := content.NewStore(content.NewAdapter(slots, ""), nil)
	store.Initialize(context.Background())

	pins, err := gate.NewService("1996", nil)
	require.NoError(t, err)
	activitySvc := activity.NewService(memory.NewActivityStore(), nil)
	editorSvc := editor.NewService(store, pins, activitySvc, nil)

	return &fixture{
		tools: newToolset(Services{Content: store, Editor: editorSvc, Activity: activitySvc}, nil),
		store: store,
		slots: slots,
	}
}

func (f *fixture) open(t *testing.T) string {
	t.Helper()
	_, resp, err := f.tools.openSession(context.Background(), nil, OpenSessionParams{PIN: "1996"})
	require.NoError(t, err)
	require.Equal(t, "open", resp.Status)
	return resp.SessionID
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, code, apiErr.Code)
}

func TestTools_ReadContent(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, doc, err := f.tools.getContent(ctx, nil, EmptyParams{})
	require.NoError(t, err)
	require.Len(t, doc.Document.Projects, 4)

	_, nav, err := f.tools.getNavigation(ctx, nil, EmptyParams{})
	require.NoError(t, err)
	require.Len(t, nav.Items, 3)
}

func TestTools_OpenSessionPIN(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	_, _, err := f.tools.openSession(ctx, nil, OpenSessionParams{PIN: "12"})
	requireCode(t, err, CodeMalformedPIN)
	_, _, err = f.tools.openSession(ctx, nil, OpenSessionParams{PIN: "0000"})
	requireCode(t, err, CodeInvalidPIN)

	f.open(t)
	_, _, err = f.tools.openSession(ctx, nil, OpenSessionParams{PIN: "1996"})
	requireCode(t, err, CodeSessionActive)

	_, resp, err := f.tools.openSession(ctx, nil, OpenSessionParams{PIN: "1996", Takeover: true})
	require.NoError(t, err)
	require.NotEmpty(t, resp.SessionID)
}

func TestTools_EditAndCommit(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	id := f.open(t)

	_, entry, err := f.tools.setEntryField(ctx, nil, SetEntryFieldParams{
		SessionID: id, Kind: "works", Index: 0, Field: "title", Value: "Renamed",
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", entry.Entry.Title)
	require.Equal(t, "FinTech Dashboard", f.store.Current().Projects[0].Title)

	_, entry, err = f.tools.setEntryList(ctx, nil, SetEntryListParams{
		SessionID: id, Kind: "projects", Index: 0, Field: "stack", Values: []string{"Go"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Go"}, entry.Entry.Stack)

	_, sess, err := f.tools.setContactField(ctx, nil, SetContactFieldParams{SessionID: id, Field: "email", Value: "a@b.c"})
	require.NoError(t, err)
	require.Equal(t, "a@b.c", sess.Document.ContactInfo.Email)

	_, added, err := f.tools.addEntry(ctx, nil, AddEntryParams{SessionID: id, Kind: "labs"})
	require.NoError(t, err)
	require.Equal(t, "e4", added.Entry.ID)
	require.Equal(t, 3, added.Index)

	_, list, err := f.tools.moveEntry(ctx, nil, MoveEntryParams{SessionID: id, Kind: "labs", Index: 3, Direction: "up"})
	require.NoError(t, err)
	require.Equal(t, []string{"e1", "e2", "e4", "e3"}, list.IDs)

	_, list, err = f.tools.removeEntry(ctx, nil, EntryParams{SessionID: id, Kind: "experiments", Index: 0})
	require.NoError(t, err)
	require.Equal(t, []string{"e2", "e4", "e3"}, list.IDs)

	_, status, err := f.tools.commitSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	require.Equal(t, "committed", status.Status)

	live := f.store.Current()
	require.Equal(t, "Renamed", live.Projects[0].Title)
	require.Equal(t, "a@b.c", live.ContactInfo.Email)
	require.Len(t, live.Experiments, 3)

	_, _, err = f.tools.getSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	_, _, err = f.tools.setContactField(ctx, nil, SetContactFieldParams{SessionID: id, Field: "email", Value: "x"})
	requireCode(t, err, CodeSessionClosed)

	_, recent, err := f.tools.recentActivity(ctx, nil, RecentActivityParams{SessionID: id})
	require.NoError(t, err)
	require.Len(t, recent.Entries, 2)
	require.Equal(t, string(activity.TypeSessionCommitted), recent.Entries[0].Type)
}

func TestTools_Errors(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	id := f.open(t)

	_, _, err := f.tools.setEntryField(ctx, nil, SetEntryFieldParams{SessionID: id, Kind: "blog", Index: 0, Field: "title"})
	requireCode(t, err, CodeUnknownKind)
	_, _, err = f.tools.setEntryField(ctx, nil, SetEntryFieldParams{SessionID: id, Kind: "projects", Index: 0, Field: "colour"})
	requireCode(t, err, CodeUnknownField)
	_, _, err = f.tools.removeEntry(ctx, nil, EntryParams{SessionID: id, Kind: "projects", Index: 10})
	requireCode(t, err, CodeIndexOutOfRange)
	_, _, err = f.tools.moveEntry(ctx, nil, MoveEntryParams{SessionID: id, Kind: "projects", Index: 0, Direction: "left"})
	requireCode(t, err, CodeInvalidInput)
	_, _, err = f.tools.getSession(ctx, nil, SessionParams{SessionID: "nope"})
	requireCode(t, err, CodeSessionNotFound)
	_, _, err = f.tools.getSession(ctx, nil, SessionParams{})
	requireCode(t, err, CodeSessionIDRequired)
	_, _, err = f.tools.resetContent(ctx, nil, ResetContentParams{SessionID: id})
	requireCode(t, err, CodeConfirmRequired)
}

func TestTools_SessionFromContext(t *testing.T) {
	f := newFixture(t, 0)
	id := f.open(t)
	ctx := context.WithValue(context.Background(), editorSessionKey, id)

	_, resp, err := f.tools.getSession(ctx, nil, SessionParams{})
	require.NoError(t, err)
	require.Equal(t, id, resp.SessionID)
}

func TestTools_CommitCapacityFailure(t *testing.T) {
	f := newFixture(t, 512)
	ctx := context.Background()
	id := f.open(t)

	_, _, err := f.tools.setEntryField(ctx, nil, SetEntryFieldParams{
		SessionID: id, Kind: "projects", Index: 0, Field: "imageUrl",
		Value: "data:image/png;base64," + strings.Repeat("A", 1024),
	})
	require.NoError(t, err)

	_, _, err = f.tools.commitSession(ctx, nil, SessionParams{SessionID: id})
	requireCode(t, err, CodeCapacityExceeded)
	require.Equal(t, content.Defaults(), f.store.Current())

	_, resp, err := f.tools.getSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	require.Equal(t, "open", resp.Status)
	require.True(t, strings.HasPrefix(resp.Document.Projects[0].ImageURL, "data:image/png"))
}

func TestTools_ExportAndReset(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()
	id := f.open(t)

	_, export, err := f.tools.exportSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	require.Equal(t, "defaults.yaml", export.Filename)
	require.Contains(t, export.YAML, "FinTech Dashboard")

	_, _, err = f.tools.removeEntry(ctx, nil, EntryParams{SessionID: id, Kind: "projects", Index: 0})
	require.NoError(t, err)
	_, _, err = f.tools.commitSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	require.Len(t, f.store.Current().Projects, 3)

	id = f.open(t)
	_, status, err := f.tools.resetContent(ctx, nil, ResetContentParams{SessionID: id, Confirm: true})
	require.NoError(t, err)
	require.Equal(t, "reset", status.Status)
	require.Len(t, f.store.Current().Projects, 4)

	_, resp, err := f.tools.getSession(ctx, nil, SessionParams{SessionID: id})
	require.NoError(t, err)
	require.Equal(t, "closed", resp.Status)
	_, _, err = f.tools.commitSession(ctx, nil, SessionParams{SessionID: id})
	requireCode(t, err, CodeSessionClosed)
	require.Len(t, f.store.Current().Projects, 4)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("other")))
	apiErr := &APIError{Code: "X", Message: "y"}
	require.Same(t, apiErr, MapError(apiErr))
	require.Equal(t, CodeCapacityExceeded, MapError(content.ErrCapacityExceeded).Code)
}
