package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// descLexer tokenizes field and method descriptors. A class name token must
// be terminated by ';' and may not contain empty path segments.
var descLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Object", Pattern: `L[^;\[\]().<>/]+(/[^;\[\]().<>/]+)*;`},
	{Name: "Prim", Pattern: `[VZCBSIFJD]`},
	{Name: "Punct", Pattern: `[\[()]`},
})

// nameLexer tokenizes internal names such as java/lang/String.
var nameLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[^;\[\]().<>/]+`},
	{Name: "Slash", Pattern: `/`},
})

//nolint:govet // participle grammar tags are not standard struct tags
type fieldGrammar struct {
	Dims []string     `( @"[" )*`
	Elem *elemGrammar `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type elemGrammar struct {
	Object string `  @Object`
	Prim   string `| @Prim`
}

//nolint:govet // participle grammar tags are not standard struct tags
type methodGrammar struct {
	Params []*fieldGrammar `"(" @@* ")"`
	Return *fieldGrammar   `@@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type internalNameGrammar struct {
	Segments []string `@Ident ( "/" @Ident )*`
}

var (
	fieldParser  = participle.MustBuild[fieldGrammar](participle.Lexer(descLexer))
	methodParser = participle.MustBuild[methodGrammar](participle.Lexer(descLexer))
	nameParser   = participle.MustBuild[internalNameGrammar](participle.Lexer(nameLexer))
)

func (g *fieldGrammar) toType(text string) (Type, error) {
	dims := len(g.Dims)
	if dims > MaxArrayDimensions {
		return Type{}, &Error{Text: text, Reason: fmt.Sprintf("array has %d dimensions, limit is %d", dims, MaxArrayDimensions)}
	}

	var elem Type
	if g.Elem.Object != "" {
		elem = Type{sort: Object, desc: g.Elem.Object}
	} else {
		elem = Type{sort: primitiveSorts[g.Elem.Prim[0]], desc: g.Elem.Prim}
	}

	if dims == 0 {
		return elem, nil
	}
	if elem.sort == Void {
		return Type{}, &Error{Text: text, Reason: "array of void"}
	}
	return Type{sort: Array, desc: strings.Repeat("[", dims) + elem.desc, dims: dims}, nil
}

func checkInternalName(name string) error {
	if _, err := nameParser.ParseString("", name); err != nil {
		return &Error{Text: name, Reason: grammarReason(err), Err: err}
	}
	return nil
}

// grammarReason renders a participle failure without the synthetic filename.
func grammarReason(err error) string {
	var perr participle.Error
	if errors.As(err, &perr) {
		return fmt.Sprintf("%s at offset %d", perr.Message(), perr.Position().Offset)
	}
	return err.Error()
}
