package editor_test

import (
	"context"
	"testing"
	"time"

	"github.com/rpggio/folio/internal/domain/content"
	"github.com/rpggio/folio/internal/domain/editor"
	"github.com/stretchr/testify/require"
)

func openSession(t *testing.T, doc content.Document) *editor.Session {
	t.Helper()
	svc := editor.NewService(&fakeStore{live: doc}, nil, nil, nil)
	svc.SetClock(func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) })
	sess, err := svc.Open(context.Background(), editor.OpenRequest{})
	require.NoError(t, err)
	return sess
}

func titles(t *testing.T, sess *editor.Session, kind content.Kind) []string {
	t.Helper()
	doc, err := sess.Document()
	require.NoError(t, err)
	entries, err := doc.Entries(kind)
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

func threeProjects() content.Document {
	return content.Document{
		Projects: []content.Entry{
			{ID: "1", Title: "p1"},
			{ID: "2", Title: "p2"},
			{ID: "3", Title: "p3"},
		},
		Experiments: []content.Entry{},
	}
}

func TestSession_MoveBoundaries(t *testing.T) {
	sess := openSession(t, threeProjects())

	require.NoError(t, sess.MoveUp(content.KindProjects, 0))
	require.Equal(t, []string{"p1", "p2", "p3"}, titles(t, sess, content.KindProjects))

	require.NoError(t, sess.MoveDown(content.KindProjects, 2))
	require.Equal(t, []string{"p1", "p2", "p3"}, titles(t, sess, content.KindProjects))

	require.NoError(t, sess.MoveDown(content.KindProjects, 0))
	require.Equal(t, []string{"p2", "p1", "p3"}, titles(t, sess, content.KindProjects))

	require.NoError(t, sess.MoveUp(content.KindProjects, 2))
	require.Equal(t, []string{"p2", "p3", "p1"}, titles(t, sess, content.KindProjects))
}

func TestSession_MoveOutOfRange(t *testing.T) {
	sess := openSession(t, threeProjects())
	require.ErrorIs(t, sess.MoveUp(content.KindProjects, 3), editor.ErrIndexOutOfRange)
	require.ErrorIs(t, sess.MoveDown(content.KindProjects, -1), editor.ErrIndexOutOfRange)
	require.ErrorIs(t, sess.MoveUp(content.KindExperiments, 0), editor.ErrIndexOutOfRange)
}

func TestSession_RemoveMiddle(t *testing.T) {
	sess := openSession(t, threeProjects())
	require.NoError(t, sess.Remove(content.KindProjects, 1))
	require.Equal(t, []string{"p1", "p3"}, titles(t, sess, content.KindProjects))
	require.ErrorIs(t, sess.Remove(content.KindProjects, 2), editor.ErrIndexOutOfRange)
}

func TestSession_AddAssignsUniqueIDs(t *testing.T) {
	doc := content.Document{
		Projects:    []content.Entry{{ID: "2"}, {ID: "3"}},
		Experiments: []content.Entry{{ID: "e2"}},
	}
	sess := openSession(t, doc)

	added, index, err := sess.Add(content.KindProjects)
	require.NoError(t, err)
	require.Equal(t, 2, index)
	require.Equal(t, "4", added.ID)
	require.Equal(t, "New Project", added.Title)
	require.Equal(t, "新项目", added.TitleZh)
	require.Equal(t, "2025", added.Year)
	require.Equal(t, "https://picsum.photos/800/600", added.ImageURL)

	exp, _, err := sess.Add(content.KindExperiments)
	require.NoError(t, err)
	require.Equal(t, "e3", exp.ID)
	require.Equal(t, "Experiment", exp.Category)

	exp2, _, err := sess.Add(content.KindExperiments)
	require.NoError(t, err)
	require.Equal(t, "e4", exp2.ID)

	current, err := sess.Document()
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, e := range current.Projects {
		require.False(t, seen[e.ID], e.ID)
		seen[e.ID] = true
	}
}

func TestSession_AddSkipsCollidingID(t *testing.T) {
	sess := openSession(t, content.Document{Projects: []content.Entry{{ID: "2"}}})
	added, _, err := sess.Add(content.KindProjects)
	require.NoError(t, err)
	require.Equal(t, "3", added.ID)
}

func TestSession_SetFields(t *testing.T) {
	sess := openSession(t, content.Defaults())

	require.NoError(t, sess.SetEntryField(content.KindProjects, 0, "title_zh", "新标题"))
	require.NoError(t, sess.SetEntryField(content.KindExperiments, 2, "link", "https://example.com"))
	require.NoError(t, sess.SetEntryList(content.KindProjects, 1, "gallery", []string{"a.png"}))
	require.NoError(t, sess.SetEntryField(content.KindProjects, 1, "stack", " Go, , SQLite\nchi "))
	require.NoError(t, sess.SetContactField("email", "new@example.com"))

	doc, err := sess.Document()
	require.NoError(t, err)
	require.Equal(t, "新标题", doc.Projects[0].TitleZh)
	require.Equal(t, "https://example.com", doc.Experiments[2].Link)
	require.Equal(t, []string{"a.png"}, doc.Projects[1].Gallery)
	require.Equal(t, []string{"Go", "SQLite", "chi"}, doc.Projects[1].Stack)
	require.Equal(t, "new@example.com", doc.ContactInfo.Email)

	require.ErrorIs(t, sess.SetEntryField(content.KindProjects, 0, "colour", "red"), editor.ErrUnknownField)
	require.ErrorIs(t, sess.SetEntryList(content.KindProjects, 0, "title", nil), editor.ErrUnknownField)
	require.ErrorIs(t, sess.SetContactField("phone", "1"), editor.ErrUnknownField)
	require.ErrorIs(t, sess.SetEntryField(content.KindProjects, 99, "title", "x"), editor.ErrIndexOutOfRange)
}

func TestSession_DocumentIsCopy(t *testing.T) {
	sess := openSession(t, threeProjects())
	doc, err := sess.Document()
	require.NoError(t, err)
	doc.Projects[0].Title = "mutated"
	require.Equal(t, "p1", titles(t, sess, content.KindProjects)[0])
}

func TestSession_Replace(t *testing.T) {
	sess := openSession(t, threeProjects())
	next := content.Document{Projects: []content.Entry{{ID: "9", Title: "only", Stack: []string{"Go"}}}}

	require.NoError(t, sess.Replace(next))
	next.Projects[0].Stack[0] = "mutated"

	doc, err := sess.Document()
	require.NoError(t, err)
	require.Equal(t, []string{"only"}, titles(t, sess, content.KindProjects))
	require.Equal(t, []string{"Go"}, doc.Projects[0].Stack)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b", "c"}, editor.SplitList("a, b,,c ,"))
	require.Equal(t, []string{"x", "y"}, editor.SplitList("x\n y\n"))
	require.Empty(t, editor.SplitList(" , "))
}

func TestFieldNames(t *testing.T) {
	require.Contains(t, editor.EntryFields(), "fullDescription_zh")
	require.Contains(t, editor.EntryFields(), "gallery")
	require.Equal(t, []string{"email", "resumeUrl", "tagline", "tagline_zh"}, editor.ContactFields())
	require.True(t, editor.IsListField("stack"))
	require.False(t, editor.IsListField("title"))
}
