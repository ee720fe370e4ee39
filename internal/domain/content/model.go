package content

import "strings"

// Kind names one of the two entry lists in a Document.
type Kind string

const (
	KindProjects    Kind = "projects"
	KindExperiments Kind = "experiments"
)

// ParseKind accepts the canonical list names and the editor tab aliases
// ("works", "labs").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "projects", "works":
		return KindProjects, nil
	case "experiments", "labs", "playground":
		return KindExperiments, nil
	default:
		return "", ErrUnknownKind
	}
}

// Entry is one portfolio work or experiment.
type Entry struct {
	ID                string   `json:"id" yaml:"id"`
	Title             string   `json:"title" yaml:"title"`
	TitleZh           string   `json:"title_zh" yaml:"title_zh"`
	Category          string   `json:"category" yaml:"category"`
	CategoryZh        string   `json:"category_zh" yaml:"category_zh"`
	Description       string   `json:"description" yaml:"description"`
	DescriptionZh     string   `json:"description_zh" yaml:"description_zh"`
	ImageURL          string   `json:"imageUrl" yaml:"imageUrl"`
	Year              string   `json:"year" yaml:"year"`
	Link              string   `json:"link,omitempty" yaml:"link,omitempty"`
	Role              string   `json:"role,omitempty" yaml:"role,omitempty"`
	RoleZh            string   `json:"role_zh,omitempty" yaml:"role_zh,omitempty"`
	Client            string   `json:"client,omitempty" yaml:"client,omitempty"`
	Stack             []string `json:"stack,omitempty" yaml:"stack,omitempty"`
	FullDescription   string   `json:"fullDescription,omitempty" yaml:"fullDescription,omitempty"`
	FullDescriptionZh string   `json:"fullDescription_zh,omitempty" yaml:"fullDescription_zh,omitempty"`
	Gallery           []string `json:"gallery,omitempty" yaml:"gallery,omitempty"`
}

// ContactInfo is the singleton contact block shown in the footer.
type ContactInfo struct {
	Tagline   string `json:"tagline" yaml:"tagline"`
	TaglineZh string `json:"tagline_zh" yaml:"tagline_zh"`
	Email     string `json:"email" yaml:"email"`
	ResumeURL string `json:"resumeUrl" yaml:"resumeUrl"`
}

// NavItem is a static navigation entry.
type NavItem struct {
	ID      string `json:"id" yaml:"id"`
	Label   string `json:"label" yaml:"label"`
	LabelZh string `json:"label_zh" yaml:"label_zh"`
	Href    string `json:"href" yaml:"href"`
}

// Document is the unit that is persisted and served. It is always complete:
// missing parts are filled from defaults before anyone sees it.
type Document struct {
	Projects    []Entry     `json:"projects" yaml:"projects"`
	Experiments []Entry     `json:"experiments" yaml:"experiments"`
	ContactInfo ContactInfo `json:"contactInfo" yaml:"contactInfo"`
}

// Entries returns the list for kind. The returned slice aliases the document.
func (d *Document) Entries(kind Kind) ([]Entry, error) {
	switch kind {
	case KindProjects:
		return d.Projects, nil
	case KindExperiments:
		return d.Experiments, nil
	default:
		return nil, ErrUnknownKind
	}
}

// SetEntries replaces the list for kind.
func (d *Document) SetEntries(kind Kind, entries []Entry) error {
	switch kind {
	case KindProjects:
		d.Projects = entries
	case KindExperiments:
		d.Experiments = entries
	default:
		return ErrUnknownKind
	}
	return nil
}
