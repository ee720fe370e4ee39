package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// EditorSessionHeader carries a default editing session id over HTTP.
const EditorSessionHeader = "X-Folio-Session"

type contextKey int

const editorSessionKey contextKey = iota

// editorSessionFromContext returns the session id injected by middleware.
func editorSessionFromContext(ctx context.Context) string {
	v, _ := ctx.Value(editorSessionKey).(string)
	return v
}

// editorSessionMiddleware extracts a default editing session id from the
// X-Folio-Session header (HTTP) or _meta.folio_session (stdio). Tools fall
// back to it when session_id is omitted.
func editorSessionMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var sessionID string

			extra := req.GetExtra()
			if extra != nil && extra.Header != nil {
				sessionID = extra.Header.Get(EditorSessionHeader)
			}

			// Some notifications carry nil params whose GetMeta panics.
			if sessionID == "" {
				if params := req.GetParams(); params != nil {
					func() {
						defer func() { recover() }()
						if meta := params.GetMeta(); meta != nil {
							if sid, ok := meta["folio_session"].(string); ok {
								sessionID = sid
							}
						}
					}()
				}
			}

			if sessionID != "" {
				ctx = context.WithValue(ctx, editorSessionKey, sessionID)
			}
			return next(ctx, method, req)
		}
	}
}
