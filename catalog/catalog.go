package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrDeclaration indicates a malformed capability declaration. It is only
// returned at construction time; a Catalog that was built successfully can
// never produce it.
var ErrDeclaration = errors.New("invalid capability declaration")

// Kind identifies the variant of a FieldType.
type Kind int

// Field type variants. KindOpaque marks a field whose shape is not statically
// known; surface generators render it as an opaque type marker rather than
// failing generation.
const (
	KindOpaque Kind = iota
	KindString
	KindNumber
	KindBoolean
	KindEnum
	KindArray
	KindObject
)

// String returns the declaration-file spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindEnum:
		return "enum"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "opaque"
	}
}

// FieldType is a closed tagged variant describing the type of one input
// field. Exactly one interpretation applies per Kind: Enum carries the
// literal set for KindEnum, Elem carries the element type for KindArray, and
// both are nil otherwise.
type FieldType struct {
	Kind Kind

	// Enum lists the allowed string literals for KindEnum.
	Enum []string

	// Elem is the element type for KindArray.
	Elem *FieldType
}

// Convenience constructors for the common field types.

func String() FieldType  { return FieldType{Kind: KindString} }
func Number() FieldType  { return FieldType{Kind: KindNumber} }
func Boolean() FieldType { return FieldType{Kind: KindBoolean} }
func Object() FieldType  { return FieldType{Kind: KindObject} }
func Opaque() FieldType  { return FieldType{Kind: KindOpaque} }

// Enum returns an enum-of-literals field type.
func Enum(values ...string) FieldType {
	return FieldType{Kind: KindEnum, Enum: values}
}

// Array returns an array-of field type.
func Array(elem FieldType) FieldType {
	return FieldType{Kind: KindArray, Elem: &elem}
}

// Field is one named input field of a capability.
type Field struct {
	// Name is the field's key in the arguments object. Must be a valid
	// identifier.
	Name string

	// Type is the field's declared type.
	Type FieldType

	// Description is an optional one-line human description.
	Description string

	// Optional marks the field as not required.
	Optional bool
}

// Capability is one named, typed backend operation. The output type is
// always an opaque structured object; the backend's result shape is not
// statically known.
type Capability struct {
	// Name is the unique capability key. It becomes a property on the
	// generated proxy, so it must be a valid identifier.
	Name string

	// Description is a one-line human description.
	Description string

	// Input is the ordered list of input fields.
	Input []Field
}

// Catalog is the immutable, ordered set of capabilities. Safe for concurrent
// use without locking once constructed.
type Catalog struct {
	caps        []Capability
	byName      map[string]int
	fingerprint string
}

// identRe matches names that are safe as property access targets inside
// sandboxed code.
var identRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// New builds a Catalog from an ordered declaration. It returns an error
// wrapping ErrDeclaration if any name is duplicated or not a valid
// identifier, or if a field type is internally inconsistent (an enum with no
// literals, an array with no element type).
func New(caps []Capability) (*Catalog, error) {
	byName := make(map[string]int, len(caps))
	owned := make([]Capability, len(caps))

	for i, decl := range caps {
		if !identRe.MatchString(decl.Name) {
			return nil, fmt.Errorf("%w: capability name %q is not a valid identifier", ErrDeclaration, decl.Name)
		}
		if _, dup := byName[decl.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate capability name %q", ErrDeclaration, decl.Name)
		}
		for _, f := range decl.Input {
			if !identRe.MatchString(f.Name) {
				return nil, fmt.Errorf("%w: capability %q: field name %q is not a valid identifier", ErrDeclaration, decl.Name, f.Name)
			}
			if err := validateType(f.Type); err != nil {
				return nil, fmt.Errorf("%w: capability %q: field %q: %v", ErrDeclaration, decl.Name, f.Name, err)
			}
		}
		byName[decl.Name] = i
		owned[i] = copyCapability(decl)
	}

	c := &Catalog{caps: owned, byName: byName}
	c.fingerprint = computeFingerprint(owned)
	return c, nil
}

func validateType(t FieldType) error {
	switch t.Kind {
	case KindEnum:
		if len(t.Enum) == 0 {
			return errors.New("enum type has no literal values")
		}
		for _, v := range t.Enum {
			if v == "" {
				return errors.New("enum type has an empty literal")
			}
		}
	case KindArray:
		if t.Elem == nil {
			return errors.New("array type has no element type")
		}
		return validateType(*t.Elem)
	}
	return nil
}

// List returns the capabilities in declaration order. The returned slice is
// a caller-owned copy.
func (c *Catalog) List() []Capability {
	out := make([]Capability, len(c.caps))
	for i, decl := range c.caps {
		out[i] = copyCapability(decl)
	}
	return out
}

// Get returns the named capability and whether it exists.
func (c *Catalog) Get(name string) (Capability, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Capability{}, false
	}
	return copyCapability(c.caps[i]), true
}

// Has reports whether the named capability is declared.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns the capability names in declaration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.caps))
	for i, decl := range c.caps {
		out[i] = decl.Name
	}
	return out
}

// Len returns the number of declared capabilities.
func (c *Catalog) Len() int {
	return len(c.caps)
}

// Fingerprint returns a stable content hash of the declaration. Two catalogs
// built from equal declarations share a fingerprint; any change to a name,
// field, type, or description changes it. Callers use it as an explicit
// cache key for derived artifacts.
func (c *Catalog) Fingerprint() string {
	return c.fingerprint
}

func copyCapability(decl Capability) Capability {
	out := decl
	out.Input = make([]Field, len(decl.Input))
	for i, f := range decl.Input {
		out.Input[i] = copyField(f)
	}
	return out
}

func copyField(f Field) Field {
	out := f
	out.Type = copyType(f.Type)
	return out
}

func copyType(t FieldType) FieldType {
	out := t
	if t.Enum != nil {
		out.Enum = append([]string(nil), t.Enum...)
	}
	if t.Elem != nil {
		elem := copyType(*t.Elem)
		out.Elem = &elem
	}
	return out
}

// computeFingerprint hashes a canonical rendering of the declaration. The
// rendering uses unit separators so that field boundaries cannot collide
// with content.
func computeFingerprint(caps []Capability) string {
	h := sha256.New()
	var b strings.Builder
	for _, decl := range caps {
		b.Reset()
		b.WriteString(decl.Name)
		b.WriteByte(0x1f)
		b.WriteString(decl.Description)
		for _, f := range decl.Input {
			b.WriteByte(0x1e)
			b.WriteString(f.Name)
			b.WriteByte(0x1f)
			writeTypeCanonical(&b, f.Type)
			b.WriteByte(0x1f)
			b.WriteString(f.Description)
			if f.Optional {
				b.WriteString("\x1fopt")
			}
		}
		b.WriteByte(0x1d)
		h.Write([]byte(b.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeTypeCanonical(b *strings.Builder, t FieldType) {
	b.WriteString(t.Kind.String())
	switch t.Kind {
	case KindEnum:
		for _, v := range t.Enum {
			b.WriteByte(0x1c)
			b.WriteString(v)
		}
	case KindArray:
		b.WriteByte('[')
		if t.Elem != nil {
			writeTypeCanonical(b, *t.Elem)
		}
		b.WriteByte(']')
	}
}
