package compiler

import (
	"math"
	"unicode/utf16"

	"github.com/roach88/jasmir/internal/ir"
	"github.com/roach88/jasmir/internal/syntax"
)

// literal is what an identifier token means as a constant. A zero tag marks
// a token that lowers to a value but has no ArgType (null).
type literal struct {
	tag   ir.ArgType
	value ir.Value
}

// identifierLiterals is shared by ArgType and Convert so the two cannot
// disagree on a keyword.
var identifierLiterals = map[string]literal{
	"true":       {ir.ArgBoolean, ir.Bool(true)},
	"false":      {ir.ArgBoolean, ir.Bool(false)},
	"null":       {0, ir.Null{}},
	"NaN":        {ir.ArgDouble, ir.Double(math.NaN())},
	"Infinity":   {ir.ArgDouble, ir.Double(math.Inf(1))},
	"-Infinity":  {ir.ArgDouble, ir.Double(math.Inf(-1))},
	"NaNf":       {ir.ArgFloat, ir.Float(float32(math.NaN()))},
	"Infinityf":  {ir.ArgFloat, ir.Float(float32(math.Inf(1)))},
	"-Infinityf": {ir.ArgFloat, ir.Float(float32(math.Inf(-1)))},
}

// identifierLiteral resolves a char literal such as 'x' or one of the
// keyword constants.
func identifierLiteral(text string) (literal, bool) {
	if r, ok := charLiteral(text); ok {
		return literal{ir.ArgChar, ir.Char(r)}, true
	}
	lit, ok := identifierLiterals[text]
	return lit, ok
}

// charLiteral matches exactly one UTF-16 code unit between single quotes.
// A supplementary character needs a surrogate pair and is not a char.
func charLiteral(text string) (rune, bool) {
	runes := []rune(text)
	if len(runes) == 3 && runes[0] == '\'' && runes[2] == '\'' && utf16.RuneLen(runes[1]) == 1 {
		return runes[1], true
	}
	return 0, false
}

// numberInRange reports whether a number node holds a value its width can
// represent. Nodes built from documents always do. Infinities are spelled
// as identifiers, never as numbers.
func numberInRange(n *syntax.Number) bool {
	switch {
	case n.Floating && n.Wide:
		return !math.IsInf(n.Float, 0)
	case n.Floating:
		return !math.IsInf(float64(float32(n.Float)), 0)
	case n.Wide:
		return true
	default:
		return n.Int >= math.MinInt32 && n.Int <= math.MaxInt32
	}
}
