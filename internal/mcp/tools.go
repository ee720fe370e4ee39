package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
)

// toolset implements the tool handlers over the domain services.
type toolset struct {
	services Services
	logger   *slog.Logger
}

func newToolset(services Services, logger *slog.Logger) *toolset {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &toolset{services: services, logger: logger}
}

func registerTools(server *sdkmcp.Server, t *toolset) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_content",
		Description: "Get the live portfolio document (projects, experiments, contact info)",
	}, t.getContent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_navigation",
		Description: "Get the static navigation entries",
	}, t.getNavigation)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "open_session",
		Description: "Verify the editor PIN and open an editing session over a private copy of the live document",
	}, t.openSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_session",
		Description: "Get an editing session and its working copy",
	}, t.getSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_entry_field",
		Description: "Set a text field on one project or experiment in the working copy",
	}, t.setEntryField)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_entry_list",
		Description: "Replace the stack or gallery list of one entry in the working copy",
	}, t.setEntryList)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_contact_field",
		Description: "Set a contact info field in the working copy",
	}, t.setContactField)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_entry",
		Description: "Append a placeholder project or experiment with a fresh id",
	}, t.addEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_entry",
		Description: "Remove the entry at index",
	}, t.removeEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_entry",
		Description: "Swap an entry with its neighbour; moving past either end does nothing",
	}, t.moveEntry)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "commit_session",
		Description: "Persist the working copy and make it live; on failure the session stays open",
	}, t.commitSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "discard_session",
		Description: "Close the session and drop its edits",
	}, t.discardSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_session",
		Description: "Render the working copy as a defaults.yaml file",
	}, t.exportSession)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "reset_content",
		Description: "Erase persisted content and fall back to the built-in defaults",
	}, t.resetContent)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_recent_activity",
		Description: "List recent editor activity, newest first",
	}, t.recentActivity)
}

func (t *toolset) getContent(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, ContentResponse, error) {
	return nil, ContentResponse{Document: t.services.Content.Current()}, nil
}

func (t *toolset) getNavigation(_ context.Context, _ *sdkmcp.CallToolRequest, _ EmptyParams) (*sdkmcp.CallToolResult, NavigationResponse, error) {
	return nil, NavigationResponse{Items: t.services.Content.Navigation()}, nil
}

func (t *toolset) openSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in OpenSessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
	sess, err := t.services.Editor.Open(ctx, editor.OpenRequest{PIN: in.PIN, Takeover: in.Takeover})
	if err != nil {
		return nil, SessionResponse{}, toolError(err)
	}
	return nil, sessionResponse(sess.Info()), nil
}

func (t *toolset) getSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
	sess, err := t.session(ctx, in.SessionID)
	if err != nil {
		return nil, SessionResponse{}, err
	}
	return nil, sessionResponse(sess.Info()), nil
}

func (t *toolset) setEntryField(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetEntryFieldParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
	sess, kind, err := t.sessionAndKind(ctx, in.SessionID, in.Kind)
	if err != nil {
		return nil, EntryResponse{}, err
	}
	if err := sess.SetEntryField(kind, in.Index, in.Field, in.Value); err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	return t.entryResult(sess, kind, in.Index)
}

func (t *toolset) setEntryList(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetEntryListParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
	sess, kind, err := t.sessionAndKind(ctx, in.SessionID, in.Kind)
	if err != nil {
		return nil, EntryResponse{}, err
	}
	if err := sess.SetEntryList(kind, in.Index, in.Field, in.Values); err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	return t.entryResult(sess, kind, in.Index)
}

func (t *toolset) setContactField(ctx context.Context, _ *sdkmcp.CallToolRequest, in SetContactFieldParams) (*sdkmcp.CallToolResult, SessionResponse, error) {
	sess, err := t.session(ctx, in.SessionID)
	if err != nil {
		return nil, SessionResponse{}, err
	}
	if err := sess.SetContactField(in.Field, in.Value); err != nil {
		return nil, SessionResponse{}, toolError(err)
	}
	return nil, sessionResponse(sess.Info()), nil
}

func (t *toolset) addEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in AddEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
	sess, kind, err := t.sessionAndKind(ctx, in.SessionID, in.Kind)
	if err != nil {
		return nil, EntryResponse{}, err
	}
	entry, index, err := sess.Add(kind)
	if err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	return nil, EntryResponse{SessionID: sess.ID(), Kind: string(kind), Index: index, Entry: entry}, nil
}

func (t *toolset) removeEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in EntryParams) (*sdkmcp.CallToolResult, ListResponse, error) {
	sess, kind, err := t.sessionAndKind(ctx, in.SessionID, in.Kind)
	if err != nil {
		return nil, ListResponse{}, err
	}
	if err := sess.Remove(kind, in.Index); err != nil {
		return nil, ListResponse{}, toolError(err)
	}
	return t.listResult(sess, kind)
}

func (t *toolset) moveEntry(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveEntryParams) (*sdkmcp.CallToolResult, ListResponse, error) {
	sess, kind, err := t.sessionAndKind(ctx, in.SessionID, in.Kind)
	if err != nil {
		return nil, ListResponse{}, err
	}
	switch strings.ToLower(in.Direction) {
	case "up":
		err = sess.MoveUp(kind, in.Index)
	case "down":
		err = sess.MoveDown(kind, in.Index)
	default:
		return nil, ListResponse{}, &APIError{
			Code:         CodeInvalidInput,
			Message:      fmt.Sprintf("unknown direction %q", in.Direction),
			RecoveryHint: "Use up or down",
		}
	}
	if err != nil {
		return nil, ListResponse{}, toolError(err)
	}
	return t.listResult(sess, kind)
}

func (t *toolset) commitSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
	id, err := t.sessionID(ctx, in.SessionID)
	if err != nil {
		return nil, StatusResponse{}, err
	}
	if err := t.services.Editor.Commit(ctx, id); err != nil {
		if apiErr := MapError(err); apiErr != nil {
			return nil, StatusResponse{}, apiErr
		}
		return nil, StatusResponse{}, &APIError{
			Code:         CodeCommitFailed,
			Message:      err.Error(),
			RecoveryHint: "The session is still open; fix the problem and commit again",
		}
	}
	return nil, StatusResponse{SessionID: id, Status: "committed"}, nil
}

func (t *toolset) discardSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
	id, err := t.sessionID(ctx, in.SessionID)
	if err != nil {
		return nil, StatusResponse{}, err
	}
	if err := t.services.Editor.Discard(ctx, id); err != nil {
		return nil, StatusResponse{}, toolError(err)
	}
	return nil, StatusResponse{SessionID: id, Status: "discarded"}, nil
}

func (t *toolset) exportSession(ctx context.Context, _ *sdkmcp.CallToolRequest, in SessionParams) (*sdkmcp.CallToolResult, ExportResponse, error) {
	id, err := t.sessionID(ctx, in.SessionID)
	if err != nil {
		return nil, ExportResponse{}, err
	}
	data, err := t.services.Editor.Export(id)
	if err != nil {
		return nil, ExportResponse{}, toolError(err)
	}
	return nil, ExportResponse{SessionID: id, Filename: "defaults.yaml", YAML: string(data)}, nil
}

func (t *toolset) resetContent(ctx context.Context, _ *sdkmcp.CallToolRequest, in ResetContentParams) (*sdkmcp.CallToolResult, StatusResponse, error) {
	if !in.Confirm {
		return nil, StatusResponse{}, toolError(ErrConfirmationRequired)
	}
	id, err := t.sessionID(ctx, in.SessionID)
	if err != nil {
		return nil, StatusResponse{}, err
	}
	if err := t.services.Editor.Reset(ctx, id); err != nil {
		return nil, StatusResponse{}, toolError(err)
	}
	return nil, StatusResponse{SessionID: id, Status: "reset"}, nil
}

func (t *toolset) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, ActivityResponse, error) {
	if t.services.Activity == nil {
		return nil, ActivityResponse{Entries: []ActivityEntryResponse{}}, nil
	}
	opts := activity.ListActivityOptions{Limit: in.Limit}
	if in.SessionID != "" {
		opts.SessionID = &in.SessionID
	}
	entries, err := t.services.Activity.GetRecentActivity(ctx, opts)
	if err != nil {
		return nil, ActivityResponse{}, err
	}
	return nil, activityResponse(entries), nil
}

func (t *toolset) sessionID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if id := editorSessionFromContext(ctx); id != "" {
		return id, nil
	}
	return "", toolError(ErrSessionIDRequired)
}

func (t *toolset) session(ctx context.Context, explicit string) (*editor.Session, error) {
	id, err := t.sessionID(ctx, explicit)
	if err != nil {
		return nil, err
	}
	sess, err := t.services.Editor.Get(id)
	if err != nil {
		return nil, toolError(err)
	}
	return sess, nil
}

func (t *toolset) sessionAndKind(ctx context.Context, explicit, rawKind string) (*editor.Session, content.Kind, error) {
	kind, err := content.ParseKind(rawKind)
	if err != nil {
		return nil, "", toolError(err)
	}
	sess, err := t.session(ctx, explicit)
	if err != nil {
		return nil, "", err
	}
	return sess, kind, nil
}

func (t *toolset) entryResult(sess *editor.Session, kind content.Kind, index int) (*sdkmcp.CallToolResult, EntryResponse, error) {
	doc, err := sess.Document()
	if err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	entries, err := doc.Entries(kind)
	if err != nil {
		return nil, EntryResponse{}, toolError(err)
	}
	if index < 0 || index >= len(entries) {
		return nil, EntryResponse{}, toolError(fmt.Errorf("%w: %d", editor.ErrIndexOutOfRange, index))
	}
	return nil, EntryResponse{SessionID: sess.ID(), Kind: string(kind), Index: index, Entry: entries[index]}, nil
}

func (t *toolset) listResult(sess *editor.Session, kind content.Kind) (*sdkmcp.CallToolResult, ListResponse, error) {
	doc, err := sess.Document()
	if err != nil {
		return nil, ListResponse{}, toolError(err)
	}
	entries, err := doc.Entries(kind)
	if err != nil {
		return nil, ListResponse{}, toolError(err)
	}
	return nil, ListResponse{SessionID: sess.ID(), Kind: string(kind), IDs: entryIDs(entries)}, nil
}
