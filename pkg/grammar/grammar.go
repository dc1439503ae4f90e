package grammar

import "strings"

// Import represents a single import declaration
type Import struct {
	Path   Path
	Static bool // import static ...
	Star   bool // trailing .* wildcard
}

// String renders the import as a source line without a trailing newline
func (i Import) String() string {
	if len(i.Path) == 0 {
		panic("grammar: import with an empty path")
	}

	var b strings.Builder
	b.WriteString("import ")
	if i.Static {
		b.WriteString("static ")
	}
	b.WriteString(i.Path.String())
	if i.Star {
		b.WriteString(".*")
	}
	b.WriteString(";")
	return b.String()
}

// Wildcard distinguishes the forms a generic type argument can take
type Wildcard int

const (
	NoWildcard Wildcard = iota
	WildcardAny         // ?
	WildcardExtends     // ? extends T
	WildcardSuper       // ? super T
)

// Type is a type usage: a name plus its generic arguments. Name is empty
// only for an unbounded wildcard argument.
type Type struct {
	Annotations []Type
	Name        Path
	Params      []Type
	Wildcard    Wildcard
	Dims        int // array dimensions
}

// String renders the type roughly as it appears in source
func (t Type) String() string {
	var b strings.Builder
	switch t.Wildcard {
	case WildcardAny:
		return "?"
	case WildcardExtends:
		b.WriteString("? extends ")
	case WildcardSuper:
		b.WriteString("? super ")
	}
	b.WriteString(t.Name.String())
	if len(t.Params) > 0 {
		b.WriteString("<")
		for i, param := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(param.String())
		}
		b.WriteString(">")
	}
	for i := 0; i < t.Dims; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

// TypeParam is a declared generic parameter such as `T extends Comparable<T>`
type TypeParam struct {
	Name   string
	Bounds []Type
}

// SymbolSoup is an unordered bag of identifiers harvested from a region the
// parser does not model (method bodies, initializers, annotation arguments).
type SymbolSoup struct {
	Idents []string
}

// Add records an identifier
func (s *SymbolSoup) Add(ident string) {
	s.Idents = append(s.Idents, ident)
}

// Contains reports whether ident was harvested
func (s SymbolSoup) Contains(ident string) bool {
	for _, id := range s.Idents {
		if id == ident {
			return true
		}
	}
	return false
}

// ClassKind is the keyword that introduced a class-like declaration
type ClassKind int

const (
	KindClass ClassKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
)

var classKindNames = [...]string{"class", "interface", "enum", "record", "@interface"}

func (k ClassKind) String() string {
	if int(k) < len(classKindNames) {
		return classKindNames[k]
	}
	return "unknown"
}

// Class is the header of a class-like declaration together with the
// headers of its members.
type Class struct {
	Annotations []Type
	Kind        ClassKind
	Name        string
	TypeParams  []TypeParam
	Supertypes  []Type // extends, implements and permits clauses
	Constants   []string
	Fields      []Field
	Methods     []Method
	Classes     []Class // nested declarations
	Soup        SymbolSoup
}

// Field is a field header. Record components are reported as fields too.
type Field struct {
	Annotations []Type
	Name        string
	Type        Type
	Value       SymbolSoup
}

// Method is a method or constructor header
type Method struct {
	Annotations []Type
	Name        string
	ReturnType  Type // zero for constructors
	Constructor bool
	TypeParams  []TypeParam
	Args        []Arg
	Throws      []Type
	Body        SymbolSoup
}

// Arg is a formal parameter
type Arg struct {
	Annotations []Type
	Name        string
	Type        Type
	Varargs     bool
}

// Span is a half-open byte range [Start, End) of the source text
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered
func (s Span) Len() int {
	return s.End - s.Start
}

// Parse is the result of parsing one source file. Strings inside it share
// memory with Source.
type Parse struct {
	Source     string
	Package    Path
	Imports    []Import
	ImportSpan Span
	Classes    []Class
}

// ClassNames returns the names of every class declared in the file,
// including nested ones, in declaration order.
func (p *Parse) ClassNames() []string {
	var names []string
	var walk func(classes []Class)
	walk = func(classes []Class) {
		for _, class := range classes {
			names = append(names, class.Name)
			walk(class.Classes)
		}
	}
	walk(p.Classes)
	return names
}
