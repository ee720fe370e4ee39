package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// File is the on-disk layout of defaults.yaml. Export writes the same shape.
type File struct {
	Navigation  []NavItem   `yaml:"navigation"`
	Projects    []Entry     `yaml:"projects"`
	Experiments []Entry     `yaml:"experiments"`
	ContactInfo ContactInfo `yaml:"contactInfo"`
}

var loadDefaults = sync.OnceValue(func() File {
	f, err := parseFile(defaultsYAML)
	if err != nil {
		panic(fmt.Sprintf("content: embedded defaults: %v", err))
	}
	return f
})

func parseFile(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing defaults: %w", err)
	}
	return f, nil
}

// Defaults returns a fresh copy of the built-in document.
func Defaults() Document {
	f := loadDefaults()
	return Clone(Document{
		Projects:    f.Projects,
		Experiments: f.Experiments,
		ContactInfo: f.ContactInfo,
	})
}

// Navigation returns the static navigation entries.
func Navigation() []NavItem {
	nav := loadDefaults().Navigation
	out := make([]NavItem, len(nav))
	copy(out, nav)
	return out
}
