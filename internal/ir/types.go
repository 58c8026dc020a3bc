package ir

import (
	"fmt"
	"strings"
)

// Signature is a generic signature attribute. The text is not validated.
type Signature struct {
	Position
	Descriptor string
}

// ThrownException is one entry of a throws clause.
type ThrownException struct {
	Position
	ClassName string
}

// HandleKind is a JVM method-handle reference kind.
type HandleKind int

const (
	HandleGetField HandleKind = iota + 1
	HandleGetStatic
	HandlePutField
	HandlePutStatic
	HandleInvokeVirtual
	HandleInvokeStatic
	HandleInvokeSpecial
	HandleNewInvokeSpecial
	HandleInvokeInterface
)

var handleKindNames = map[HandleKind]string{
	HandleGetField:         "getfield",
	HandleGetStatic:        "getstatic",
	HandlePutField:         "putfield",
	HandlePutStatic:        "putstatic",
	HandleInvokeVirtual:    "invokevirtual",
	HandleInvokeStatic:     "invokestatic",
	HandleInvokeSpecial:    "invokespecial",
	HandleNewInvokeSpecial: "newinvokespecial",
	HandleInvokeInterface:  "invokeinterface",
}

func (k HandleKind) String() string {
	if name, ok := handleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("handlekind(%d)", int(k))
}

// IsField reports whether the kind references a field rather than a method.
func (k HandleKind) IsField() bool {
	return k >= HandleGetField && k <= HandlePutStatic
}

// HandleKindByName resolves a handle keyword. Case, an H_ prefix, dashes
// and underscores are ignored, so invokestatic, invoke-static and
// H_INVOKESTATIC all name the same kind.
func HandleKindByName(name string) (HandleKind, bool) {
	key := strings.ToLower(name)
	key = strings.TrimPrefix(key, "h_")
	key = strings.NewReplacer("-", "", "_", "").Replace(key)
	for k, n := range handleKindNames {
		if n == key {
			return k, true
		}
	}
	return 0, false
}

// HandleInfo is a method-handle reference as written in source: the kind
// keyword is kept verbatim.
type HandleInfo struct {
	Position
	Kind       string
	Owner      string
	Name       string
	Descriptor string
}

// ToHandle resolves the kind keyword and returns the runtime handle.
func (h *HandleInfo) ToHandle() (Handle, error) {
	kind, ok := HandleKindByName(h.Kind)
	if !ok {
		return Handle{}, fmt.Errorf("unknown handle kind %q", h.Kind)
	}
	return Handle{
		Kind:       kind,
		Owner:      h.Owner,
		Name:       h.Name,
		Descriptor: h.Descriptor,
		Interface:  kind == HandleInvokeInterface,
	}, nil
}

// Annotation is a lowered annotation.
type Annotation struct {
	Position
	Visible    bool
	Descriptor string
	Args       *ArgMap
}

// AnnoArg is one tagged annotation argument.
type AnnoArg struct {
	Position
	Type  ArgType
	Value AnnoValue
}

// Constant is a standalone literal. Type is zero when the literal has no
// tag, which is the case for null and for bare identifiers.
type Constant struct {
	Position
	Type  ArgType
	Value Value
}

// ArgMap holds annotation arguments by name. Put replaces an existing entry
// in place, so a name keeps the slot of its first insertion and only the
// last value written under it survives.
type ArgMap struct {
	keys []string
	args map[string]*AnnoArg
}

// NewArgMap returns an empty map.
func NewArgMap() *ArgMap {
	return &ArgMap{args: make(map[string]*AnnoArg)}
}

// Put inserts or replaces the argument stored under name.
func (m *ArgMap) Put(name string, arg *AnnoArg) {
	if _, exists := m.args[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.args[name] = arg
}

// Get returns the argument stored under name.
func (m *ArgMap) Get(name string) (*AnnoArg, bool) {
	if m == nil {
		return nil, false
	}
	arg, ok := m.args[name]
	return arg, ok
}

// Len returns the number of names.
func (m *ArgMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in first-insertion order.
func (m *ArgMap) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values returns the arguments in first-insertion order of their names.
func (m *ArgMap) Values() []*AnnoArg {
	if m == nil {
		return nil
	}
	out := make([]*AnnoArg, len(m.keys))
	for i, k := range m.keys {
		out[i] = m.args[k]
	}
	return out
}
