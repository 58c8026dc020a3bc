package ir

import "fmt"

// ArgType classifies a lowered literal or annotation argument.
// The zero value means the value has no tag (null, bare identifiers).
type ArgType int

const (
	ArgInteger ArgType = iota + 1
	ArgLong
	ArgFloat
	ArgDouble
	ArgString
	ArgChar
	ArgBoolean
	ArgTypeDesc
	ArgHandle
	ArgAnno
	ArgAnnoList
	ArgEnum
)

var argTypeNames = map[ArgType]string{
	ArgInteger:  "INTEGER",
	ArgLong:     "LONG",
	ArgFloat:    "FLOAT",
	ArgDouble:   "DOUBLE",
	ArgString:   "STRING",
	ArgChar:     "CHAR",
	ArgBoolean:  "BOOLEAN",
	ArgTypeDesc: "TYPE",
	ArgHandle:   "HANDLE",
	ArgAnno:     "ANNO",
	ArgAnnoList: "ANNO_LIST",
	ArgEnum:     "ENUM",
}

func (t ArgType) String() string {
	if name, ok := argTypeNames[t]; ok {
		return name
	}
	if t == 0 {
		return "NONE"
	}
	return fmt.Sprintf("ArgType(%d)", int(t))
}

// IsValid reports whether t is one of the defined tags.
func (t ArgType) IsValid() bool {
	_, ok := argTypeNames[t]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (t ArgType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid ArgType %d", int(t))
	}
	return []byte(t.String()), nil
}

// ParseArgType resolves a tag name such as "ANNO_LIST".
func ParseArgType(name string) (ArgType, bool) {
	for t, n := range argTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// TypeOf returns the tag matching the shape of v, or zero for values that
// have no tag (Null, nil).
func TypeOf(v AnnoValue) ArgType {
	switch v.(type) {
	case Int:
		return ArgInteger
	case Long:
		return ArgLong
	case Float:
		return ArgFloat
	case Double:
		return ArgDouble
	case String:
		return ArgString
	case Char:
		return ArgChar
	case Bool:
		return ArgBoolean
	case TypeValue:
		return ArgTypeDesc
	case Handle:
		return ArgHandle
	case *Annotation:
		return ArgAnno
	case AnnoList:
		return ArgAnnoList
	case Enum:
		return ArgEnum
	default:
		return 0
	}
}

// Matches reports whether v has the shape t promises.
func (t ArgType) Matches(v AnnoValue) bool {
	return t.IsValid() && TypeOf(v) == t
}
