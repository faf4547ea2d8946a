package catalog

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Declaration file schema:
//
//	capabilities:
//	  - name: create_event
//	    description: Create a new event
//	    input:
//	      - name: title
//	        type: string
//	        description: Event title
//	      - name: status
//	        type: enum
//	        values: [going, maybe, declined]
//	        optional: true
//	      - name: tags
//	        type: array
//	        elem:
//	          type: string

type declFile struct {
	Capabilities []capabilityDecl `yaml:"capabilities"`
}

type capabilityDecl struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Input       []fieldDecl `yaml:"input"`
}

type fieldDecl struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Values      []string  `yaml:"values"`
	Elem        *typeDecl `yaml:"elem"`
	Description string    `yaml:"description"`
	Optional    bool      `yaml:"optional"`
}

type typeDecl struct {
	Type   string    `yaml:"type"`
	Values []string  `yaml:"values"`
	Elem   *typeDecl `yaml:"elem"`
}

// Load parses a YAML capability declaration and builds a validated Catalog.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeclaration, err)
	}

	var file declFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeclaration, err)
	}
	if len(file.Capabilities) == 0 {
		return nil, fmt.Errorf("%w: declaration lists no capabilities", ErrDeclaration)
	}

	caps := make([]Capability, len(file.Capabilities))
	for i, d := range file.Capabilities {
		decl := Capability{
			Name:        d.Name,
			Description: d.Description,
			Input:       make([]Field, len(d.Input)),
		}
		for j, fd := range d.Input {
			t, err := resolveType(fd.Type, fd.Values, fd.Elem)
			if err != nil {
				return nil, fmt.Errorf("%w: capability %q: field %q: %v", ErrDeclaration, d.Name, fd.Name, err)
			}
			decl.Input[j] = Field{
				Name:        fd.Name,
				Type:        t,
				Description: fd.Description,
				Optional:    fd.Optional,
			}
		}
		caps[i] = decl
	}
	return New(caps)
}

// LoadFile reads and parses a YAML capability declaration file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeclaration, err)
	}
	defer f.Close()
	return Load(f)
}

func resolveType(name string, values []string, elem *typeDecl) (FieldType, error) {
	switch name {
	case "string":
		return String(), nil
	case "number", "integer":
		return Number(), nil
	case "boolean":
		return Boolean(), nil
	case "object":
		return Object(), nil
	case "opaque", "":
		return Opaque(), nil
	case "enum":
		return Enum(values...), nil
	case "array":
		if elem == nil {
			return FieldType{}, fmt.Errorf("array type has no element type")
		}
		et, err := resolveType(elem.Type, elem.Values, elem.Elem)
		if err != nil {
			return FieldType{}, err
		}
		return Array(et), nil
	default:
		return FieldType{}, fmt.Errorf("unknown field type %q", name)
	}
}
