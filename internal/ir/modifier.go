package ir

import (
	"fmt"
	"slices"
)

// Modifier is a JVM access modifier.
type Modifier int

const (
	ModPublic Modifier = iota + 1
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModSynchronized
	ModSuper
	ModVolatile
	ModBridge
	ModTransient
	ModVarargs
	ModNative
	ModInterface
	ModAbstract
	ModStrict
	ModSynthetic
	ModAnnotation
	ModEnum
	ModModule
	ModMandated
)

type modifierInfo struct {
	name string
	flag int
}

// Several modifiers share a flag bit; which one applies depends on whether
// the flags belong to a class, field or method.
var modifiers = map[Modifier]modifierInfo{
	ModPublic:       {"public", 0x0001},
	ModPrivate:      {"private", 0x0002},
	ModProtected:    {"protected", 0x0004},
	ModStatic:       {"static", 0x0008},
	ModFinal:        {"final", 0x0010},
	ModSynchronized: {"synchronized", 0x0020},
	ModSuper:        {"super", 0x0020},
	ModVolatile:     {"volatile", 0x0040},
	ModBridge:       {"bridge", 0x0040},
	ModTransient:    {"transient", 0x0080},
	ModVarargs:      {"varargs", 0x0080},
	ModNative:       {"native", 0x0100},
	ModInterface:    {"interface", 0x0200},
	ModAbstract:     {"abstract", 0x0400},
	ModStrict:       {"strict", 0x0800},
	ModSynthetic:    {"synthetic", 0x1000},
	ModAnnotation:   {"annotation", 0x2000},
	ModEnum:         {"enum", 0x4000},
	ModModule:       {"module", 0x8000},
	ModMandated:     {"mandated", 0x8000},
}

var modifiersByName = func() map[string]Modifier {
	out := make(map[string]Modifier, len(modifiers))
	for m, info := range modifiers {
		out[info.name] = m
	}
	return out
}()

// ModifierByName resolves a modifier keyword such as "public".
func ModifierByName(name string) (Modifier, bool) {
	m, ok := modifiersByName[name]
	return m, ok
}

func (m Modifier) String() string {
	if info, ok := modifiers[m]; ok {
		return info.name
	}
	return fmt.Sprintf("modifier(%d)", int(m))
}

// Flag returns the access-flag bit of the modifier.
func (m Modifier) Flag() int {
	return modifiers[m].flag
}

// Modifiers is the set of access modifiers of a declaration.
// Duplicates collapse; iteration order is the declaration order of the
// Modifier constants, not source order.
type Modifiers struct {
	Position
	mods []Modifier
}

// NewModifiers builds a modifier set.
func NewModifiers(pos Position, mods ...Modifier) *Modifiers {
	set := slices.Clone(mods)
	slices.Sort(set)
	return &Modifiers{Position: pos, mods: slices.Compact(set)}
}

// Has reports whether m is in the set.
func (s *Modifiers) Has(m Modifier) bool {
	_, found := slices.BinarySearch(s.mods, m)
	return found
}

// Len returns the number of distinct modifiers.
func (s *Modifiers) Len() int {
	return len(s.mods)
}

// List returns the modifiers in stable order.
func (s *Modifiers) List() []Modifier {
	return slices.Clone(s.mods)
}

// Names returns the modifier keywords in stable order.
func (s *Modifiers) Names() []string {
	names := make([]string, len(s.mods))
	for i, m := range s.mods {
		names[i] = m.String()
	}
	return names
}

// Flags returns the OR of the access-flag bits.
func (s *Modifiers) Flags() int {
	flags := 0
	for _, m := range s.mods {
		flags |= m.Flag()
	}
	return flags
}
