package surface

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonwraymond/codemode/catalog"
)

// DefaultProxyName is the global identifier the executed program reaches
// capabilities through. It must match the name the execution engine injects.
const DefaultProxyName = "proxy"

// Surface holds the two artifacts derived from a catalog.
type Surface struct {
	// TypeDeclaration is the TypeScript declaration of the global proxy
	// object, suitable for inclusion in a code-generation prompt.
	TypeDeclaration string

	// Descriptions is one line per capability, "- name: description", in
	// catalog order, for system prompts.
	Descriptions string
}

// Generator renders surfaces from catalogs. The zero value is ready to use
// and renders the proxy under DefaultProxyName.
//
// Contract:
// - Purity: output depends only on the catalog content and ProxyName;
//   the same inputs yield byte-identical output.
// - Concurrency: safe for concurrent use.
type Generator struct {
	// ProxyName overrides the name of the declared global proxy object.
	ProxyName string
}

// Generate renders both artifacts.
func (g Generator) Generate(c *catalog.Catalog) Surface {
	return Surface{
		TypeDeclaration: g.TypeDeclaration(c),
		Descriptions:    g.DescriptionList(c),
	}
}

// TypeDeclaration renders the typed proxy declaration. For each capability
// it emits an input interface (field order matches declaration order,
// optional fields marked with "?", enums inlined as literal unions) followed
// by a proxy member name(input: Shape): Promise<unknown> annotated with the
// capability description.
func (g Generator) TypeDeclaration(c *catalog.Catalog) string {
	proxy := g.ProxyName
	if proxy == "" {
		proxy = DefaultProxyName
	}
	title := cases.Title(language.English)

	var b strings.Builder
	for _, decl := range c.List() {
		if len(decl.Input) == 0 {
			continue
		}
		b.WriteString("interface ")
		b.WriteString(inputTypeName(title, decl.Name))
		b.WriteString(" {\n")
		for _, f := range decl.Input {
			if f.Description != "" {
				b.WriteString("  /** ")
				b.WriteString(f.Description)
				b.WriteString(" */\n")
			}
			b.WriteString("  ")
			b.WriteString(f.Name)
			if f.Optional {
				b.WriteString("?")
			}
			b.WriteString(": ")
			b.WriteString(tsType(f.Type))
			b.WriteString(";\n")
		}
		b.WriteString("}\n\n")
	}

	b.WriteString("declare const ")
	b.WriteString(proxy)
	b.WriteString(": {\n")
	for _, decl := range c.List() {
		if decl.Description != "" {
			b.WriteString("  /** ")
			b.WriteString(decl.Description)
			b.WriteString(" */\n")
		}
		b.WriteString("  ")
		b.WriteString(decl.Name)
		if len(decl.Input) == 0 {
			b.WriteString("(): Promise<unknown>;\n")
		} else {
			b.WriteString("(input: ")
			b.WriteString(inputTypeName(title, decl.Name))
			b.WriteString("): Promise<unknown>;\n")
		}
	}
	b.WriteString("};\n")
	return b.String()
}

// DescriptionList renders one line per capability in catalog order.
func (g Generator) DescriptionList(c *catalog.Catalog) string {
	var b strings.Builder
	for _, decl := range c.List() {
		b.WriteString("- ")
		b.WriteString(decl.Name)
		if decl.Description != "" {
			b.WriteString(": ")
			b.WriteString(decl.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// inputTypeName maps a capability name to its input interface name:
// create_event -> CreateEventInput.
func inputTypeName(title cases.Caser, name string) string {
	var b strings.Builder
	for _, seg := range strings.Split(name, "_") {
		if seg == "" {
			continue
		}
		b.WriteString(title.String(seg))
	}
	b.WriteString("Input")
	return b.String()
}

// tsType renders a field type. Unrepresentable kinds degrade to "unknown"
// rather than failing generation.
func tsType(t catalog.FieldType) string {
	switch t.Kind {
	case catalog.KindString:
		return "string"
	case catalog.KindNumber:
		return "number"
	case catalog.KindBoolean:
		return "boolean"
	case catalog.KindEnum:
		quoted := make([]string, len(t.Enum))
		for i, v := range t.Enum {
			quoted[i] = `"` + v + `"`
		}
		return strings.Join(quoted, " | ")
	case catalog.KindArray:
		if t.Elem == nil {
			return "unknown[]"
		}
		elem := tsType(*t.Elem)
		if t.Elem.Kind == catalog.KindEnum {
			elem = "(" + elem + ")"
		}
		return elem + "[]"
	case catalog.KindObject:
		return "Record<string, unknown>"
	default:
		return "unknown"
	}
}
