package content

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

const exportHeader = "# Exported portfolio content. Replace internal/domain/content/defaults.yaml\n# with this file to ship it as the built-in defaults.\n"

// ExportYAML renders doc in the defaults.yaml layout.
func ExportYAML(doc Document) ([]byte, error) {
	file := File{
		Navigation:  Navigation(),
		Projects:    doc.Projects,
		Experiments: doc.Experiments,
		ContactInfo: doc.ContactInfo,
	}
	if file.Projects == nil {
		file.Projects = []Entry{}
	}
	if file.Experiments == nil {
		file.Experiments = []Entry{}
	}

	var buf bytes.Buffer
	buf.WriteString(exportHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return buf.Bytes(), nil
}

// exportFile is an exported file before fallback. A nil field was absent
// or null in the file.
type exportFile struct {
	Projects    *[]Entry     `yaml:"projects"`
	Experiments *[]Entry     `yaml:"experiments"`
	ContactInfo *ContactInfo `yaml:"contactInfo"`
}

// ParseExport decodes an exported file back into a document. Keys the file
// leaves out take their defaults, as with a stored blob.
func ParseExport(data []byte) (Document, error) {
	var f exportFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Document{}, fmt.Errorf("parsing export: %w", err)
	}
	return Resolve(StoredDocument{
		Projects:    f.Projects,
		Experiments: f.Experiments,
		ContactInfo: f.ContactInfo,
	}), nil
}
