package editor

import (
	"sort"
	"strings"

	"github.com/rpggio/folio/internal/domain/content"
)

var entryTextFields = map[string]func(*content.Entry) *string{
	"id":                 func(e *content.Entry) *string { return &e.ID },
	"title":              func(e *content.Entry) *string { return &e.Title },
	"title_zh":           func(e *content.Entry) *string { return &e.TitleZh },
	"category":           func(e *content.Entry) *string { return &e.Category },
	"category_zh":        func(e *content.Entry) *string { return &e.CategoryZh },
	"description":        func(e *content.Entry) *string { return &e.Description },
	"description_zh":     func(e *content.Entry) *string { return &e.DescriptionZh },
	"imageUrl":           func(e *content.Entry) *string { return &e.ImageURL },
	"year":               func(e *content.Entry) *string { return &e.Year },
	"link":               func(e *content.Entry) *string { return &e.Link },
	"role":               func(e *content.Entry) *string { return &e.Role },
	"role_zh":            func(e *content.Entry) *string { return &e.RoleZh },
	"client":             func(e *content.Entry) *string { return &e.Client },
	"fullDescription":    func(e *content.Entry) *string { return &e.FullDescription },
	"fullDescription_zh": func(e *content.Entry) *string { return &e.FullDescriptionZh },
}

var entryListFields = map[string]func(*content.Entry) *[]string{
	"stack":   func(e *content.Entry) *[]string { return &e.Stack },
	"gallery": func(e *content.Entry) *[]string { return &e.Gallery },
}

var contactFields = map[string]func(*content.ContactInfo) *string{
	"tagline":    func(c *content.ContactInfo) *string { return &c.Tagline },
	"tagline_zh": func(c *content.ContactInfo) *string { return &c.TaglineZh },
	"email":      func(c *content.ContactInfo) *string { return &c.Email },
	"resumeUrl":  func(c *content.ContactInfo) *string { return &c.ResumeURL },
}

// IsListField reports whether field holds a list of strings.
func IsListField(field string) bool {
	_, ok := entryListFields[field]
	return ok
}

// EntryFields lists every editable entry field name.
func EntryFields() []string {
	names := make([]string, 0, len(entryTextFields)+len(entryListFields))
	for name := range entryTextFields {
		names = append(names, name)
	}
	for name := range entryListFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContactFields lists every editable contact field name.
func ContactFields() []string {
	names := make([]string, 0, len(contactFields))
	for name := range contactFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SplitList splits comma or newline separated text into trimmed, non-empty
// items.
func SplitList(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool { return r == ',' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
