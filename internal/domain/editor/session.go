package editor

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rpggio/folio/internal/domain/content"
)

const (
	projectImagePlaceholder    = "https://picsum.photos/800/600"
	experimentImagePlaceholder = "https://picsum.photos/600/600"
)

func newSession(id string, live content.Document, now func() time.Time) *Session {
	t := now()
	return &Session{
		id:           id,
		createdAt:    t,
		now:          now,
		status:       StatusOpen,
		lastActivity: t,
		working:      content.Clone(live),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Status returns the session status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Info returns a snapshot of the session including a copy of its working
// document.
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionInfo{
		SessionID:    s.id,
		Status:       s.status,
		CreatedAt:    s.createdAt,
		LastActivity: s.lastActivity,
		ClosedAt:     s.closedAt,
		Document:     content.Clone(s.working),
	}
}

// Document returns a copy of the working document.
func (s *Session) Document() (content.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusOpen {
		return content.Document{}, ErrSessionClosed
	}
	return content.Clone(s.working), nil
}

// SetEntryField sets a text field on one entry.
func (s *Session) SetEntryField(kind content.Kind, index int, field, value string) error {
	accessor, ok := entryTextFields[field]
	if !ok {
		if IsListField(field) {
			return s.SetEntryList(kind, index, field, SplitList(value))
		}
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.editEntry(kind, index, func(e *content.Entry) {
		*accessor(e) = value
	})
}

// SetEntryList replaces a list field (stack or gallery) on one entry.
func (s *Session) SetEntryList(kind content.Kind, index int, field string, values []string) error {
	accessor, ok := entryListFields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	list := make([]string, len(values))
	copy(list, values)
	return s.editEntry(kind, index, func(e *content.Entry) {
		*accessor(e) = list
	})
}

// SetContactField sets one contact info field.
func (s *Session) SetContactField(field, value string) error {
	accessor, ok := contactFields[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.edit(func(doc *content.Document) error {
		*accessor(&doc.ContactInfo) = value
		return nil
	})
}

// Add appends a placeholder entry to the list and returns it with its index.
func (s *Session) Add(kind content.Kind) (content.Entry, int, error) {
	var added content.Entry
	var index int
	err := s.edit(func(doc *content.Document) error {
		entries, err := doc.Entries(kind)
		if err != nil {
			return err
		}
		added = newEntry(kind, entries, s.now())
		entries = append(entries, added)
		index = len(entries) - 1
		return doc.SetEntries(kind, entries)
	})
	if err != nil {
		return content.Entry{}, 0, err
	}
	return content.CloneEntry(added), index, nil
}

// Remove deletes the entry at index.
func (s *Session) Remove(kind content.Kind, index int) error {
	return s.edit(func(doc *content.Document) error {
		entries, err := doc.Entries(kind)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		next := make([]content.Entry, 0, len(entries)-1)
		next = append(next, entries[:index]...)
		next = append(next, entries[index+1:]...)
		return doc.SetEntries(kind, next)
	})
}

// MoveUp swaps the entry with its predecessor. Moving the first entry is a
// no-op.
func (s *Session) MoveUp(kind content.Kind, index int) error {
	return s.swap(kind, index, index-1)
}

// MoveDown swaps the entry with its successor. Moving the last entry is a
// no-op.
func (s *Session) MoveDown(kind content.Kind, index int) error {
	return s.swap(kind, index, index+1)
}

func (s *Session) swap(kind content.Kind, index, target int) error {
	return s.edit(func(doc *content.Document) error {
		entries, err := doc.Entries(kind)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		if target < 0 || target >= len(entries) {
			return nil
		}
		entries[index], entries[target] = entries[target], entries[index]
		return nil
	})
}

func (s *Session) editEntry(kind content.Kind, index int, fn func(*content.Entry)) error {
	return s.edit(func(doc *content.Document) error {
		entries, err := doc.Entries(kind)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(entries) {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
		}
		fn(&entries[index])
		return nil
	})
}

// Replace swaps the whole working copy for a private copy of doc.
func (s *Session) Replace(doc content.Document) error {
	return s.edit(func(d *content.Document) error {
		*d = content.Clone(doc)
		return nil
	})
}

// edit runs fn against the working copy while the session is open.
func (s *Session) edit(fn func(*content.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusOpen {
		return ErrSessionClosed
	}
	if err := fn(&s.working); err != nil {
		return err
	}
	s.lastActivity = s.now()
	return nil
}

// closeLocked marks the session closed. Callers hold s.mu.
func (s *Session) closeLocked() {
	t := s.now()
	s.status = StatusClosed
	s.closedAt = &t
	s.lastActivity = t
}

func newEntry(kind content.Kind, existing []content.Entry, now time.Time) content.Entry {
	year := strconv.Itoa(now.Year())
	if kind == content.KindExperiments {
		return content.Entry{
			ID:            uniqueID("e", existing),
			Title:         "New Experiment",
			TitleZh:       "新实验",
			Category:      "Experiment",
			CategoryZh:    "实验",
			Description:   "Description",
			DescriptionZh: "描述",
			ImageURL:      experimentImagePlaceholder,
			Year:          year,
		}
	}
	return content.Entry{
		ID:            uniqueID("", existing),
		Title:         "New Project",
		TitleZh:       "新项目",
		Category:      "Category",
		CategoryZh:    "类别",
		Description:   "Description",
		DescriptionZh: "描述",
		ImageURL:      projectImagePlaceholder,
		Year:          year,
	}
}

// uniqueID returns prefix+N for the smallest N >= len(existing)+1 not
// already used in the list.
func uniqueID(prefix string, existing []content.Entry) string {
	used := make(map[string]struct{}, len(existing))
	for _, e := range existing {
		used[e.ID] = struct{}{}
	}
	for n := len(existing) + 1; ; n++ {
		id := prefix + strconv.Itoa(n)
		if _, taken := used[id]; !taken {
			return id
		}
	}
}
