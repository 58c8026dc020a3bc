// Package descriptor models JVM type descriptors.
//
// Descriptors are parsed strictly. Anything that would not be accepted in a
// class file (unterminated class names, void parameters, trailing input)
// yields an *Error carrying the offending text.
package descriptor

import (
	"fmt"
	"strings"
)

// Sort is the category of a Type.
type Sort int

const (
	Void Sort = iota
	Boolean
	Char
	Byte
	Short
	Int
	Float
	Long
	Double
	Array
	Object
	Method
)

var sortNames = [...]string{
	Void:    "void",
	Boolean: "boolean",
	Char:    "char",
	Byte:    "byte",
	Short:   "short",
	Int:     "int",
	Float:   "float",
	Long:    "long",
	Double:  "double",
	Array:   "array",
	Object:  "object",
	Method:  "method",
}

func (s Sort) String() string {
	if s >= 0 && int(s) < len(sortNames) {
		return sortNames[s]
	}
	return fmt.Sprintf("sort(%d)", int(s))
}

var primitiveSorts = map[byte]Sort{
	'V': Void,
	'Z': Boolean,
	'C': Char,
	'B': Byte,
	'S': Short,
	'I': Int,
	'F': Float,
	'J': Long,
	'D': Double,
}

// MaxArrayDimensions is the class-file limit on array dimensions.
const MaxArrayDimensions = 255

// Type is a parsed JVM type. The zero value is the void type.
type Type struct {
	sort Sort
	desc string
	dims int
	args []Type
	ret  *Type
}

// VoidType returns the void type. Lowering an empty type literal produces it.
func VoidType() Type {
	return Type{sort: Void, desc: "V"}
}

// Sort returns the type category.
func (t Type) Sort() Sort { return t.sort }

// Descriptor returns the descriptor text, e.g. Ljava/lang/String; or (I)V.
func (t Type) Descriptor() string {
	if t.desc == "" && t.sort == Void {
		return "V"
	}
	return t.desc
}

// Dimensions returns the number of array dimensions, zero for non-arrays.
func (t Type) Dimensions() int { return t.dims }

// Elem returns the element type of an array.
func (t Type) Elem() (Type, bool) {
	if t.sort != Array {
		return Type{}, false
	}
	elem, err := ParseField(t.desc[t.dims:])
	if err != nil {
		return Type{}, false
	}
	return elem, true
}

// InternalName returns the internal name of an object type (java/lang/String)
// or the descriptor of an array type, as used in class references.
func (t Type) InternalName() string {
	switch t.sort {
	case Object:
		return t.desc[1 : len(t.desc)-1]
	case Array:
		return t.desc
	default:
		return ""
	}
}

// Args returns the parameter types of a method type.
func (t Type) Args() []Type {
	if t.sort != Method {
		return nil
	}
	out := make([]Type, len(t.args))
	copy(out, t.args)
	return out
}

// Return returns the return type of a method type.
func (t Type) Return() (Type, bool) {
	if t.sort != Method || t.ret == nil {
		return Type{}, false
	}
	return *t.ret, true
}

// IsPrimitive reports whether t is one of the primitive sorts (void included).
func (t Type) IsPrimitive() bool {
	return t.sort <= Double
}

// String returns the descriptor text.
func (t Type) String() string {
	return t.Descriptor()
}

// Equal reports whether both types have the same descriptor.
func (t Type) Equal(o Type) bool {
	return t.Descriptor() == o.Descriptor()
}

// Error is a malformed descriptor.
type Error struct {
	Text   string // the descriptor as written
	Reason string
	Err    error // underlying grammar error, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid descriptor %q: %s", e.Text, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ObjectType builds the type named by an internal name (java/lang/String),
// an array descriptor ([I), or a class descriptor (Ljava/lang/String;).
//
// An L-prefixed name without the trailing ';' is read as an internal name,
// so Ljava/lang/String is the class String in package Ljava/lang. ParseField
// is the strict form that rejects it as unterminated.
func ObjectType(name string) (Type, error) {
	switch {
	case strings.HasPrefix(name, "["):
		return ParseField(name)
	case strings.HasPrefix(name, "L") && strings.HasSuffix(name, ";"):
		return ParseField(name)
	}
	if err := checkInternalName(name); err != nil {
		return Type{}, err
	}
	return Type{sort: Object, desc: "L" + name + ";"}, nil
}

// ParseField parses a field descriptor.
func ParseField(desc string) (Type, error) {
	parsed, err := fieldParser.ParseString("", desc)
	if err != nil {
		return Type{}, &Error{Text: desc, Reason: grammarReason(err), Err: err}
	}
	t, err := parsed.toType(desc)
	if err != nil {
		return Type{}, err
	}
	if t.sort == Void {
		return Type{}, &Error{Text: desc, Reason: "void is not a field type"}
	}
	return t, nil
}

// ParseMethod parses a method descriptor.
func ParseMethod(desc string) (Type, error) {
	parsed, err := methodParser.ParseString("", desc)
	if err != nil {
		return Type{}, &Error{Text: desc, Reason: grammarReason(err), Err: err}
	}

	args := make([]Type, 0, len(parsed.Params))
	for _, p := range parsed.Params {
		arg, err := p.toType(desc)
		if err != nil {
			return Type{}, err
		}
		if arg.sort == Void {
			return Type{}, &Error{Text: desc, Reason: "void is not a parameter type"}
		}
		args = append(args, arg)
	}
	ret, err := parsed.Return.toType(desc)
	if err != nil {
		return Type{}, err
	}
	return Type{sort: Method, desc: desc, args: args, ret: &ret}, nil
}

// Parse parses either form: method descriptors start with '('.
func Parse(desc string) (Type, error) {
	if strings.HasPrefix(desc, "(") {
		return ParseMethod(desc)
	}
	return ParseField(desc)
}
