package content

import (
	"encoding/json"
)

// StoredDocument is a persisted document before fallback is applied.
// A nil field was absent or null in the stored blob.
type StoredDocument struct {
	Projects    *[]Entry     `json:"projects"`
	Experiments *[]Entry     `json:"experiments"`
	ContactInfo *ContactInfo `json:"contactInfo"`
}

// decodeStored parses a persisted blob. Unknown keys are ignored.
func decodeStored(data []byte) (StoredDocument, error) {
	var stored StoredDocument
	if err := json.Unmarshal(data, &stored); err != nil {
		return StoredDocument{}, &ParseError{Err: err}
	}
	return stored, nil
}

// Resolve fills every top-level field the stored document does not supply
// with its default. Supplied fields are used as-is, including empty lists.
func Resolve(stored StoredDocument) Document {
	doc := Defaults()
	if stored.Projects != nil {
		doc.Projects = cloneEntries(*stored.Projects)
		if doc.Projects == nil {
			doc.Projects = []Entry{}
		}
	}
	if stored.Experiments != nil {
		doc.Experiments = cloneEntries(*stored.Experiments)
		if doc.Experiments == nil {
			doc.Experiments = []Entry{}
		}
	}
	if stored.ContactInfo != nil {
		doc.ContactInfo = *stored.ContactInfo
	}
	return doc
}

// normalize replaces nil lists with empty ones so a saved document reloads
// as the same value instead of falling back to defaults.
func normalize(doc Document) Document {
	if doc.Projects == nil {
		doc.Projects = []Entry{}
	}
	if doc.Experiments == nil {
		doc.Experiments = []Entry{}
	}
	return doc
}
