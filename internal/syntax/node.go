package syntax

import "fmt"

// Location is a single point in assembler source.
type Location struct {
	Line   int `json:"line" yaml:"line"`     // 1-based line number
	Column int `json:"column" yaml:"column"` // column of the point within its line
	Offset int `json:"offset" yaml:"offset"` // 0-based absolute character offset
}

// String renders the location as line:column.
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Span is the source range a node was parsed from.
// Either end may be nil when the parser failed to record it.
type Span struct {
	Start *Location
	End   *Location
}

// Kind tags a node with its case in the taxonomy.
type Kind int

const (
	KindNumber Kind = iota + 1
	KindString
	KindType
	KindHandle
	KindEnum
	KindAnnotation
	KindAnnotationParam
	KindArgs
	KindIdentifier
	KindAccessMods
	KindAccessMod
	KindSignature
	KindThrows
)

var kindNames = map[Kind]string{
	KindNumber:          "number",
	KindString:          "string",
	KindType:            "type",
	KindHandle:          "handle",
	KindEnum:            "enum",
	KindAnnotation:      "annotation",
	KindAnnotationParam: "annotation_param",
	KindArgs:            "args",
	KindIdentifier:      "identifier",
	KindAccessMods:      "access_mods",
	KindAccessMod:       "access_mod",
	KindSignature:       "signature",
	KindThrows:          "throws",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindByName resolves the serialized name of a kind.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Node is implemented by every syntax-tree node. The set of implementations
// is closed: only the types in this file satisfy it.
type Node interface {
	Kind() Kind
	Text() string
	Span() Span
	node()
}

// Number is a numeric literal. The parser has already decided its width and
// float-ness and parsed the value into Int or Float accordingly.
//
// Int and Float are already in range for the literal's width.
type Number struct {
	SpanVal  Span
	Raw      string
	Floating bool
	Wide     bool
	Int      int64
	Float    float64
}

// String is a quoted string literal. Raw holds the content with escapes
// still in place.
type String struct {
	SpanVal Span
	Raw     string
}

// Identifier is a bare word: keywords such as true or NaN, char literals
// like 'x', or plain names.
type Identifier struct {
	SpanVal Span
	Raw     string
}

// Type is a type literal carrying a field, method or internal-name descriptor.
type Type struct {
	SpanVal    Span
	Raw        string
	Descriptor string
}

// Handle is a method-handle literal such as
// `handle invokestatic java/lang/Math.max (II)I`.
type Handle struct {
	SpanVal    Span
	Raw        string
	HandleType string
	Name       string // owner.name, or the combined owner.name(desc) form
	Descriptor string
}

// Enum is an enum constant reference inside an annotation.
type Enum struct {
	SpanVal    Span
	Raw        string
	Descriptor string
	Constant   string
}

// Annotation is an annotation declaration or a nested annotation value.
type Annotation struct {
	SpanVal   Span
	Raw       string
	Invisible bool
	Class     string
	Params    []*AnnotationParam
}

// AnnotationParam is one name = value pair of an annotation.
type AnnotationParam struct {
	SpanVal Span
	Raw     string
	Name    string
	Value   Node
}

// Args is a braced list of values, used for array-valued parameters.
type Args struct {
	SpanVal  Span
	Raw      string
	Children []Node
}

// AccessMods is the modifier list in front of a declaration.
type AccessMods struct {
	SpanVal Span
	Raw     string
	Mods    []*AccessMod
}

// AccessMod is one modifier token, possibly written with a trailing dot.
type AccessMod struct {
	SpanVal Span
	Raw     string
}

// Signature is a generic signature directive.
type Signature struct {
	SpanVal    Span
	Raw        string
	Descriptor string
}

// Throws is a thrown-exception directive.
type Throws struct {
	SpanVal   Span
	Raw       string
	ClassName string
}

func (n *Number) Kind() Kind          { return KindNumber }
func (n *String) Kind() Kind          { return KindString }
func (n *Identifier) Kind() Kind      { return KindIdentifier }
func (n *Type) Kind() Kind            { return KindType }
func (n *Handle) Kind() Kind          { return KindHandle }
func (n *Enum) Kind() Kind            { return KindEnum }
func (n *Annotation) Kind() Kind      { return KindAnnotation }
func (n *AnnotationParam) Kind() Kind { return KindAnnotationParam }
func (n *Args) Kind() Kind            { return KindArgs }
func (n *AccessMods) Kind() Kind      { return KindAccessMods }
func (n *AccessMod) Kind() Kind       { return KindAccessMod }
func (n *Signature) Kind() Kind       { return KindSignature }
func (n *Throws) Kind() Kind          { return KindThrows }

func (n *Number) Text() string          { return n.Raw }
func (n *String) Text() string          { return n.Raw }
func (n *Identifier) Text() string      { return n.Raw }
func (n *Type) Text() string            { return n.Raw }
func (n *Handle) Text() string          { return n.Raw }
func (n *Enum) Text() string            { return n.Raw }
func (n *Annotation) Text() string      { return n.Raw }
func (n *AnnotationParam) Text() string { return n.Raw }
func (n *Args) Text() string            { return n.Raw }
func (n *AccessMods) Text() string      { return n.Raw }
func (n *AccessMod) Text() string       { return n.Raw }
func (n *Signature) Text() string       { return n.Raw }
func (n *Throws) Text() string          { return n.Raw }

func (n *Number) Span() Span          { return n.SpanVal }
func (n *String) Span() Span          { return n.SpanVal }
func (n *Identifier) Span() Span      { return n.SpanVal }
func (n *Type) Span() Span            { return n.SpanVal }
func (n *Handle) Span() Span          { return n.SpanVal }
func (n *Enum) Span() Span            { return n.SpanVal }
func (n *Annotation) Span() Span      { return n.SpanVal }
func (n *AnnotationParam) Span() Span { return n.SpanVal }
func (n *Args) Span() Span            { return n.SpanVal }
func (n *AccessMods) Span() Span      { return n.SpanVal }
func (n *AccessMod) Span() Span       { return n.SpanVal }
func (n *Signature) Span() Span       { return n.SpanVal }
func (n *Throws) Span() Span          { return n.SpanVal }

func (*Number) node()          {}
func (*String) node()          {}
func (*Identifier) node()      {}
func (*Type) node()            {}
func (*Handle) node()          {}
func (*Enum) node()            {}
func (*Annotation) node()      {}
func (*AnnotationParam) node() {}
func (*Args) node()            {}
func (*AccessMods) node()      {}
func (*AccessMod) node()       {}
func (*Signature) node()       {}
func (*Throws) node()          {}

// IsNil reports whether n is a nil interface or a typed nil pointer.
func IsNil(n Node) bool {
	switch v := n.(type) {
	case nil:
		return true
	case *Number:
		return v == nil
	case *String:
		return v == nil
	case *Identifier:
		return v == nil
	case *Type:
		return v == nil
	case *Handle:
		return v == nil
	case *Enum:
		return v == nil
	case *Annotation:
		return v == nil
	case *AnnotationParam:
		return v == nil
	case *Args:
		return v == nil
	case *AccessMods:
		return v == nil
	case *AccessMod:
		return v == nil
	case *Signature:
		return v == nil
	case *Throws:
		return v == nil
	default:
		return false
	}
}
