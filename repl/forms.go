package repl

import (
	"strconv"
	"strings"
)

// Form is one immediate value produced by the reader. Forms render to
// their canonical printed representation via String.
type Form interface {
	String() string
}

type Symbol string

func (s Symbol) String() string {
	return string(s)
}

// Name returns the symbol without its namespace qualifier.
func (s Symbol) Name() string {
	if i := strings.LastIndexByte(string(s), '/'); i > 0 && i < len(s)-1 {
		return string(s)[i+1:]
	}
	return string(s)
}

// Qualifier returns the namespace part of a qualified symbol, or "".
func (s Symbol) Qualifier() string {
	if i := strings.LastIndexByte(string(s), '/'); i > 0 && i < len(s)-1 {
		return string(s)[:i]
	}
	return ""
}

type Keyword string

func (k Keyword) String() string {
	return ":" + string(k)
}

type Str string

func (s Str) String() string {
	return strconv.Quote(string(s))
}

type Int int64

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Text is preformatted output, such as documentation or a stack trace.
// Unlike Str it renders without quoting.
type Text string

func (t Text) String() string {
	return string(t)
}

type Vector []Form

func (v Vector) String() string {
	return "[" + joinForms(v) + "]"
}

// FormMeta marks a synthesized form as a mergeable namespace header
// positioned at the start of the input stream.
type FormMeta struct {
	Merge  bool
	Line   int
	Column int
}

type List struct {
	Items []Form
	Meta  *FormMeta
}

func NewList(items ...Form) *List {
	return &List{Items: items}
}

func (l *List) String() string {
	return "(" + joinForms(l.Items) + ")"
}

func (l *List) First() Form {
	if len(l.Items) == 0 {
		return nil
	}
	return l.Items[0]
}

func joinForms(fs []Form) string {
	var sb strings.Builder
	for i, f := range fs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if f == nil {
			sb.WriteString("nil")
		} else {
			sb.WriteString(f.String())
		}
	}
	return sb.String()
}

// Quote wraps a form as (quote f).
func Quote(f Form) *List {
	return NewList(Symbol("quote"), f)
}

func unquote(f Form) (Form, bool) {
	l, ok := f.(*List)
	if !ok || len(l.Items) != 2 {
		return nil, false
	}
	if sym, ok := l.First().(Symbol); !ok || sym != "quote" {
		return nil, false
	}
	return l.Items[1], true
}

func isHistoryRef(f Form) bool {
	sym, ok := f.(Symbol)
	if !ok {
		return false
	}
	switch sym {
	case "*1", "*2", "*3", "*e":
		return true
	}
	return false
}

func isNsDecl(f Form) bool {
	l, ok := f.(*List)
	if !ok {
		return false
	}
	sym, ok := l.First().(Symbol)
	return ok && sym == "ns"
}
