package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `folio serves a bilingual (en/zh) portfolio document and a PIN-gated editor.

Reading needs no session: call get_content or get_navigation.

Editing works on a private copy:
1) open_session with the 4 digit PIN. Only one session may be open; pass takeover=true to replace it.
2) Edit with set_entry_field, set_entry_list, set_contact_field, add_entry, remove_entry, move_entry.
   Edits are invisible to readers until commit.
3) commit_session to persist and publish, or discard_session to drop the edits.
   A failed commit leaves the session open with its edits.
4) export_session returns a defaults.yaml that can be shipped as the built-in content.

Pass session_id on every session tool, or set the X-Folio-Session header (HTTP)
or _meta.folio_session (stdio) once.

Docs: folio://docs/editing
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "folio://docs/editing",
		Name:        "docs_editing",
		Title:       "folio editing guide",
		Description: "Document layout, field names, list rules and commit failure handling.",
		Content: `# folio: editing guide

## Document

- projects: list of works, shown on the Works page
- experiments: list of playground entries ("labs")
- contactInfo: tagline, tagline_zh, email, resumeUrl

Every text field has an English value and, where it is shown to readers, a
"_zh" companion.

## Entry fields

Text: id, title, title_zh, category, category_zh, description, description_zh,
imageUrl, year, link, role, role_zh, client, fullDescription, fullDescription_zh.

Lists: stack, gallery. set_entry_list replaces the whole list. set_entry_field
on a list field splits the value on commas and newlines, trims each item and
drops empty ones.

## Positions

Entries are addressed by zero-based index. Indices shift after remove_entry
and move_entry, so re-read with get_session when unsure. move_entry up at
index 0, or down at the last index, does nothing.

## New entries

add_entry appends a placeholder ("New Project" / "New Experiment") with the
current year. Project ids are numbers and experiment ids are "e" plus a
number. The first free number starting from the list length plus one is used.

## Commit failures

CAPACITY_EXCEEDED means the serialized document is larger than the storage
quota. Large embedded data: URLs are the usual cause. Replace them with links,
or export_session and ship the file as defaults instead. The session stays open
with its edits either way.

## Reset

reset_content with confirm=true erases persisted content. Readers see the
built-in defaults afterwards. The session used for the reset is closed; open a
new one to edit the defaults.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
