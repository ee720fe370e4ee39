package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaults_FreshCopies(t *testing.T) {
	a := Defaults()
	require.Len(t, a.Projects, 4)
	require.Len(t, a.Experiments, 3)
	require.Equal(t, "hello@yuhang.design", a.ContactInfo.Email)
	require.Equal(t, "FinTech Dashboard", a.Projects[0].Title)
	require.Equal(t, []string{"Figma", "React", "D3.js"}, a.Projects[0].Stack)
	require.Equal(t, "e1", a.Experiments[0].ID)

	a.Projects[0].Title = "changed"
	a.Projects[0].Stack[0] = "changed"
	b := Defaults()
	require.Equal(t, "FinTech Dashboard", b.Projects[0].Title)
	require.Equal(t, "Figma", b.Projects[0].Stack[0])
}

func TestNavigation(t *testing.T) {
	nav := Navigation()
	require.Len(t, nav, 3)
	require.Equal(t, NavItem{ID: "works", Label: "Works", LabelZh: "作品", Href: "#works"}, nav[1])

	nav[0].Label = "changed"
	require.Equal(t, "About", Navigation()[0].Label)
}

func TestResolve_PerFieldFallback(t *testing.T) {
	stored, err := decodeStored([]byte(`{"projects":[{"id":"9","title":"Only"}]}`))
	require.NoError(t, err)

	doc := Resolve(stored)
	require.Len(t, doc.Projects, 1)
	require.Equal(t, "Only", doc.Projects[0].Title)
	require.Empty(t, doc.Projects[0].Category)
	require.Equal(t, Defaults().Experiments, doc.Experiments)
	require.Equal(t, Defaults().ContactInfo, doc.ContactInfo)
}

func TestResolve_EmptyListIsSupplied(t *testing.T) {
	stored, err := decodeStored([]byte(`{"projects":[],"experiments":null}`))
	require.NoError(t, err)

	doc := Resolve(stored)
	require.NotNil(t, doc.Projects)
	require.Empty(t, doc.Projects)
	require.Len(t, doc.Experiments, 3)
}

func TestResolve_NullDocumentUsesDefaults(t *testing.T) {
	stored, err := decodeStored([]byte(`null`))
	require.NoError(t, err)
	require.Equal(t, Defaults(), Resolve(stored))
}

func TestDecodeStored_Malformed(t *testing.T) {
	for _, blob := range []string{
		`{not json`,
		`[1,2,3]`,
		`"text"`,
		`{"projects":"nope"}`,
		`{"contactInfo":[]}`,
		`{"projects":[{"id":"1","year":2023}],"contactInfo":{"email":"me@example.com"}}`,
	} {
		_, err := decodeStored([]byte(blob))
		require.ErrorIs(t, err, ErrParse, blob)
		var perr *ParseError
		require.ErrorAs(t, err, &perr)
	}
}

func TestClone_Independent(t *testing.T) {
	orig := Document{
		Projects:    []Entry{{ID: "1", Stack: []string{"Go"}, Gallery: []string{}}},
		Experiments: nil,
	}
	cp := Clone(orig)
	require.Equal(t, orig, cp)
	require.Nil(t, cp.Experiments)
	require.NotNil(t, cp.Projects[0].Gallery)

	cp.Projects[0].Stack[0] = "Rust"
	cp.Projects = append(cp.Projects, Entry{ID: "2"})
	require.Equal(t, "Go", orig.Projects[0].Stack[0])
	require.Len(t, orig.Projects, 1)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{
		"projects":    KindProjects,
		"works":       KindProjects,
		"Experiments": KindExperiments,
		"labs":        KindExperiments,
	} {
		got, err := ParseKind(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseKind("blog")
	require.ErrorIs(t, err, ErrUnknownKind)
}
