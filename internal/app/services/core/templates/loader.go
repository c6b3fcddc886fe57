package templates

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"konsulin-assessment-engine/internal/app/models"
	"konsulin-assessment-engine/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath maps a file extension to a definition format.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", exceptions.ErrUnsupportedDefinitionFormat(ext)
	}
}

// ParseDefinition decodes a definition document in the given format.
func ParseDefinition(data []byte, format string) (*models.TemplateDefinition, error) {
	var def models.TemplateDefinition
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, exceptions.ErrCannotParseYAML(err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
	default:
		return nil, exceptions.ErrUnsupportedDefinitionFormat(format)
	}
	return &def, nil
}

func LoadDefinitionFile(path string) (*models.TemplateDefinition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, exceptions.ErrCannotReadFile(err, path)
	}
	return ParseDefinition(data, format)
}

// LoadTemplateFile loads a definition file and validates it.
func LoadTemplateFile(path string) (*Template, error) {
	def, err := LoadDefinitionFile(path)
	if err != nil {
		return nil, err
	}
	return NewTemplate(*def)
}

// LoadDefinitionDir loads every definition file directly under dir, sorted by
// file name. Files with other extensions are ignored.
func LoadDefinitionDir(dir string) ([]models.TemplateDefinition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, exceptions.ErrCannotReadFile(err, dir)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, err := FormatFromPath(entry.Name()); err != nil {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	definitions := make([]models.TemplateDefinition, 0, len(names))
	for _, name := range names {
		def, err := LoadDefinitionFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, *def)
	}
	return definitions, nil
}
