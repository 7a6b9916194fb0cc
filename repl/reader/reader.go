// Package reader parses one form of input text at a time. It knows
// nothing about directive semantics; it only produces forms.
package reader

import (
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"replsession.dev/repl"
)

type astSeq struct {
	Items []*astForm `parser:"@@*"`
}

type astForm struct {
	Str    *string  `parser:"@String"`
	Int    *int     `parser:"| @Int"`
	Kw     *string  `parser:"| @Keyword"`
	Quoted *astForm `parser:"| QUOTE @@"`
	List   *astSeq  `parser:"| LP @@ RP"`
	Vec    *astSeq  `parser:"| LS @@ RS"`
	Sym    *string  `parser:"| @Symbol"`
}

type astUnit struct {
	Form *astForm `parser:"@@"`
}

var scanner = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Whitespace", Pattern: `[ \t\r\n,]+`},
		{Name: "Comment", Pattern: `;.*`},
		{Name: "String", Pattern: `"(\\.|[^"])*"`},
		{Name: "Int", Pattern: `[-]?[0-9]+`},
		{Name: "Keyword", Pattern: `:[^\s()\[\]{}"';:,]+`},
		{Name: "QUOTE", Pattern: `'`},
		{Name: "LP", Pattern: `\(`},
		{Name: "RP", Pattern: `\)`},
		{Name: "LS", Pattern: `\[`},
		{Name: "RS", Pattern: `\]`},
		{Name: "Symbol", Pattern: `[^\s()\[\]{}"';:,0-9][^\s()\[\]{}"';:,]*`},
	},
})

var parser = participle.MustBuild[astUnit](participle.Lexer(scanner),
	participle.Elide("Whitespace", "Comment"))

type Reader struct{}

func New() *Reader {
	return &Reader{}
}

func (r *Reader) Parse(text string) (repl.Form, error) {
	unit, err := parser.ParseString("repl", text)
	if err != nil {
		return nil, err
	}
	return convert(unit.Form)
}

func convert(a *astForm) (repl.Form, error) {
	switch {
	case a.Str != nil:
		s, err := strconv.Unquote(*a.Str)
		if err != nil {
			return nil, err
		}
		return repl.Str(s), nil
	case a.Int != nil:
		return repl.Int(*a.Int), nil
	case a.Kw != nil:
		return repl.Keyword((*a.Kw)[1:]), nil
	case a.Quoted != nil:
		inner, err := convert(a.Quoted)
		if err != nil {
			return nil, err
		}
		return repl.Quote(inner), nil
	case a.List != nil:
		items, err := convertSeq(a.List)
		if err != nil {
			return nil, err
		}
		return repl.NewList(items...), nil
	case a.Vec != nil:
		items, err := convertSeq(a.Vec)
		if err != nil {
			return nil, err
		}
		return repl.Vector(items), nil
	case a.Sym != nil:
		return repl.Symbol(*a.Sym), nil
	}
	return nil, nil
}

func convertSeq(seq *astSeq) ([]repl.Form, error) {
	var items []repl.Form
	for _, it := range seq.Items {
		f, err := convert(it)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, nil
}
