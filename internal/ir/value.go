package ir

import (
	"github.com/roach88/jasmir/internal/descriptor"
)

// AnnoValue is a sealed interface over everything an annotation argument
// can carry: the literal Values plus *Annotation, Enum and AnnoList.
type AnnoValue interface {
	annoValue() // Sealed
}

// Value is a sealed interface over literal constants.
// Only Int, Long, Float, Double, String, Char, Bool, Null, TypeValue and
// Handle implement it.
type Value interface {
	AnnoValue
	value()
}

// Int is a 32-bit integer constant.
type Int int32

// Long is a 64-bit integer constant.
type Long int64

// Float is a 32-bit IEEE constant.
type Float float32

// Double is a 64-bit IEEE constant.
type Double float64

// String is a string constant. The content is kept as written, escapes
// included.
type String string

// Char is a char constant.
type Char rune

// Bool is a boolean constant.
type Bool bool

// Null is the null reference.
type Null struct{}

// TypeValue is a class, array or method type constant.
type TypeValue struct {
	Type descriptor.Type
}

// Handle is a resolved method handle constant, ready for a constant pool.
type Handle struct {
	Kind       HandleKind
	Owner      string
	Name       string
	Descriptor string
	Interface  bool
}

// Enum is an enum constant argument.
type Enum struct {
	Descriptor string
	Constant   string
}

// AnnoList is an array-valued argument, in source order.
type AnnoList []*AnnoArg

func (Int) value()       {}
func (Long) value()      {}
func (Float) value()     {}
func (Double) value()    {}
func (String) value()    {}
func (Char) value()      {}
func (Bool) value()      {}
func (Null) value()      {}
func (TypeValue) value() {}
func (Handle) value()    {}

func (Int) annoValue()         {}
func (Long) annoValue()        {}
func (Float) annoValue()       {}
func (Double) annoValue()      {}
func (String) annoValue()      {}
func (Char) annoValue()        {}
func (Bool) annoValue()        {}
func (Null) annoValue()        {}
func (TypeValue) annoValue()   {}
func (Handle) annoValue()      {}
func (*Annotation) annoValue() {}
func (Enum) annoValue()        {}
func (AnnoList) annoValue()    {}
