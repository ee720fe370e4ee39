// Package testserver runs the full HTTP stack over an in-memory SQLite
// database for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/rpggio/folio/internal/domain/gate"
	"github.com/rpggio/folio/internal/mcp"
	"github.com/rpggio/folio/internal/sqlite"
	"github.com/rpggio/folio/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	DB       *sqlite.DB
	Store    *content.Store
	Editor   *editor.Service
	Activity *activity.Service
	PIN      string
}

// New starts a server whose storage slot holds at most quota bytes.
// A quota of zero disables the limit.
func New(t *testing.T, quota int) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	slots := sqlite.NewSlotRepository(db, quota)
	activityRepo := sqlite.NewActivityRepository(db)

	store := content.NewStore(content.NewAdapter(slots, content.DefaultSlotKey), nil)
	store.Initialize(context.Background())

	pins, err := gate.NewService(gate.DefaultPIN, nil)
	require.NoError(t, err)
	activitySvc := activity.NewService(activityRepo, nil)
	editorSvc := editor.NewService(store, pins, activitySvc, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Content:  store,
			Editor:   editorSvc,
			Activity: activitySvc,
		},
		TransportMode: "http",
		Version:       "test",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		nil,
	)

	server := httptest.NewServer(transport.NewServer(transport.Deps{
		Content:  store,
		Editor:   editorSvc,
		Activity: activitySvc,
		MCP:      mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Store:    store,
		Editor:   editorSvc,
		Activity: activitySvc,
		PIN:      gate.DefaultPIN,
	}
}

// Restart builds a fresh content store over the same database, as a new
// process would on startup.
func (ts *TestServer) Restart(t *testing.T) *content.Store {
	t.Helper()
	store := content.NewStore(content.NewAdapter(sqlite.NewSlotRepository(ts.DB, 0), content.DefaultSlotKey), nil)
	store.Initialize(context.Background())
	return store
}
