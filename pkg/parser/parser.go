// Package parser turns Java source text into a grammar.Parse.
//
// Only the package declaration, the import list and class headers are
// modeled. Method bodies, initializers and annotation arguments are skipped
// as balanced regions whose identifiers are collected into symbol soups.
package parser

import (
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
	"github.com/siyuan-infoblox/java-imports-group/pkg/scanner"
)

type options struct {
	headerOnly bool
}

// Option configures ParseFile
type Option func(*options)

// HeaderOnly stops parsing after the import list. Class headers are left
// empty and the rest of the file is not validated.
func HeaderOnly() Option {
	return func(o *options) {
		o.headerOnly = true
	}
}

type parser struct {
	s    *scanner.Scanner
	soup *grammar.SymbolSoup // receives identifiers of the enclosing declaration
}

// ParseFile parses a compilation unit. The returned Parse shares memory
// with source.
func ParseFile(source string, opts ...Option) (*grammar.Parse, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{s: scanner.New(source)}
	result, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	if o.headerOnly {
		return result, nil
	}

	for !p.s.Finished() {
		if p.s.Skip(";") {
			continue
		}
		var pending grammar.SymbolSoup
		p.soup = &pending
		annotations, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		class, err := p.parseTypeDecl(annotations, pending)
		if err != nil {
			return nil, err
		}
		result.Classes = append(result.Classes, class)
	}
	return result, nil
}

// parseHeader handles the package declaration and the import list
func (p *parser) parseHeader() (*grammar.Parse, error) {
	s := p.s
	s.SkipWhitespace()
	if err := s.ExpectKeyword("package"); err != nil {
		return nil, err
	}
	pkg, err := p.parsePath()
	if err != nil {
		return nil, err
	}
	if err := s.ExpectOnly(";"); err != nil {
		return nil, err
	}

	s.SkipBlanks()
	start := s.Cursor()
	s.SkipWhitespace()
	if s.CheckKeyword("import") {
		start = s.Cursor()
	}
	end := start

	var imports []grammar.Import
	for s.SkipKeyword("import") {
		static := s.SkipKeyword("static")
		path, star, err := p.parseImportPath()
		if err != nil {
			return nil, err
		}
		if err := s.ExpectOnly(";"); err != nil {
			return nil, err
		}
		imports = append(imports, grammar.Import{Path: path, Static: static, Star: star})

		s.SkipBlanks()
		end = s.Cursor()
		s.SkipWhitespace()
	}

	return &grammar.Parse{
		Source:     s.Source(),
		Package:    pkg,
		Imports:    imports,
		ImportSpan: grammar.Span{Start: start, End: end},
	}, nil
}

// parsePath reads identifiers separated by dots
func (p *parser) parsePath() (grammar.Path, error) {
	var path grammar.Path
	for {
		ident, err := p.s.ExpectIdent()
		if err != nil {
			return nil, err
		}
		path = append(path, ident)
		if !p.s.Skip(".") {
			return path, nil
		}
	}
}

// parseImportPath is parsePath that may end in a `.*` wildcard. The star
// is consumed without the whitespace after it.
func (p *parser) parseImportPath() (grammar.Path, bool, error) {
	var path grammar.Path
	for {
		ident, err := p.s.ExpectIdent()
		if err != nil {
			return nil, false, err
		}
		path = append(path, ident)
		if !p.s.Skip(".") {
			return path, false, nil
		}
		if p.s.SkipOnly("*") {
			return path, true, nil
		}
	}
}

// parseTypePath is parsePath that stops in front of a varargs ellipsis
func (p *parser) parseTypePath() (grammar.Path, error) {
	var path grammar.Path
	for {
		ident, err := p.s.ExpectIdent()
		if err != nil {
			return nil, err
		}
		path = append(path, ident)
		if p.s.Check("...") || !p.s.Skip(".") {
			return path, nil
		}
	}
}

var modifiers = []string{
	"public", "protected", "private", "static", "final", "abstract", "native",
	"synchronized", "transient", "volatile", "strictfp", "default", "sealed",
}

// parseModifiers consumes annotations and modifier keywords in any order
// and returns the annotations.
func (p *parser) parseModifiers() ([]grammar.Type, error) {
	var annotations []grammar.Type
	for {
		if p.s.Check("@") && !p.s.Check("@interface") {
			annotation, err := p.parseAnnotation()
			if err != nil {
				return nil, err
			}
			annotations = append(annotations, annotation)
			continue
		}
		if p.s.Skip("non-sealed") || p.skipModifier() {
			continue
		}
		return annotations, nil
	}
}

func (p *parser) skipModifier() bool {
	for _, modifier := range modifiers {
		if p.s.SkipKeyword(modifier) {
			return true
		}
	}
	return false
}

// parseAnnotation reads `@Name` and skips its arguments, if any
func (p *parser) parseAnnotation() (grammar.Type, error) {
	if err := p.s.Expect("@"); err != nil {
		return grammar.Type{}, err
	}
	name, err := p.parseTypePath()
	if err != nil {
		return grammar.Type{}, err
	}
	if p.s.Check("(") {
		if err := p.s.SkipAround('(', ')', p.soup); err != nil {
			return grammar.Type{}, err
		}
	}
	return grammar.Type{Name: name}, nil
}

// checkTypeDecl reports whether a class-like declaration starts at the
// cursor, and which kind.
func (p *parser) checkTypeDecl() (grammar.ClassKind, bool) {
	switch {
	case p.s.CheckKeyword("class"):
		return grammar.KindClass, true
	case p.s.CheckKeyword("interface"):
		return grammar.KindInterface, true
	case p.s.CheckKeyword("enum"):
		return grammar.KindEnum, true
	case p.s.CheckKeyword("record"):
		return grammar.KindRecord, true
	case p.s.Check("@interface"):
		return grammar.KindAnnotation, true
	}
	return 0, false
}

// parseTypeDecl parses a class-like declaration whose annotations and
// modifiers were already consumed.
func (p *parser) parseTypeDecl(annotations []grammar.Type, pending grammar.SymbolSoup) (grammar.Class, error) {
	s := p.s
	kind, ok := p.checkTypeDecl()
	if !ok {
		return grammar.Class{}, s.Fail("class, interface, enum or record")
	}
	s.Skip(kind.String())

	class := grammar.Class{Annotations: annotations, Kind: kind, Soup: pending}
	outer := p.soup
	p.soup = &class.Soup
	defer func() { p.soup = outer }()

	var err error
	if class.Name, err = s.ExpectIdent(); err != nil {
		return grammar.Class{}, err
	}
	if s.Check("<") {
		if class.TypeParams, err = p.parseTypeParams(); err != nil {
			return grammar.Class{}, err
		}
	}
	if kind == grammar.KindRecord {
		components, err := p.parseArgs(p.soup)
		if err != nil {
			return grammar.Class{}, err
		}
		for _, component := range components {
			class.Fields = append(class.Fields, grammar.Field{
				Annotations: component.Annotations,
				Name:        component.Name,
				Type:        component.Type,
			})
		}
	}
	for s.SkipKeyword("extends") || s.SkipKeyword("implements") || s.SkipKeyword("permits") {
		types, err := p.parseTypeList()
		if err != nil {
			return grammar.Class{}, err
		}
		class.Supertypes = append(class.Supertypes, types...)
	}

	if err := p.parseClassBody(&class); err != nil {
		return grammar.Class{}, err
	}
	return class, nil
}

func (p *parser) parseClassBody(class *grammar.Class) error {
	s := p.s
	if err := s.Expect("{"); err != nil {
		return err
	}
	if class.Kind == grammar.KindEnum {
		if err := p.parseEnumConstants(class); err != nil {
			return err
		}
	}
	for !s.Skip("}") {
		if s.Finished() {
			return s.Fail("}")
		}
		if s.Skip(";") {
			continue
		}
		if err := p.parseMember(class); err != nil {
			return err
		}
	}
	return nil
}

// parseEnumConstants reads the constant list at the top of an enum body.
// Constants become fields typed by the enum itself.
func (p *parser) parseEnumConstants(class *grammar.Class) error {
	s := p.s
	for {
		if s.Skip(";") || s.Check("}") {
			return nil
		}
		annotations, err := p.parseModifiers()
		if err != nil {
			return err
		}
		name, err := s.ExpectIdent()
		if err != nil {
			return err
		}
		field := grammar.Field{
			Annotations: annotations,
			Name:        name,
			Type:        grammar.Type{Name: grammar.Path{class.Name}},
		}
		if s.Check("(") {
			if err := s.SkipAround('(', ')', &field.Value); err != nil {
				return err
			}
		}
		if s.Check("{") {
			if err := s.SkipAround('{', '}', &field.Value); err != nil {
				return err
			}
		}
		class.Constants = append(class.Constants, name)
		class.Fields = append(class.Fields, field)

		if !s.Skip(",") {
			if s.Skip(";") {
				return nil
			}
			if !s.Check("}") {
				return s.Fail(";")
			}
			return nil
		}
	}
}

func (p *parser) parseMember(class *grammar.Class) error {
	s := p.s
	annotations, err := p.parseModifiers()
	if err != nil {
		return err
	}

	if s.Check("{") {
		return s.SkipAround('{', '}', &class.Soup)
	}
	if _, ok := p.checkTypeDecl(); ok {
		nested, err := p.parseTypeDecl(annotations, grammar.SymbolSoup{})
		if err != nil {
			return err
		}
		class.Classes = append(class.Classes, nested)
		return nil
	}

	var typeParams []grammar.TypeParam
	if s.Check("<") {
		if typeParams, err = p.parseTypeParams(); err != nil {
			return err
		}
	}

	typ, err := p.parseType()
	if err != nil {
		return err
	}

	if isConstructor(class, typ, s) {
		method := grammar.Method{
			Annotations: annotations,
			Name:        typ.Name[0],
			Constructor: true,
			TypeParams:  typeParams,
		}
		return p.parseMethodRest(class, method)
	}

	name, err := s.ExpectIdent()
	if err != nil {
		return err
	}
	if s.Check("(") {
		method := grammar.Method{
			Annotations: annotations,
			Name:        name,
			ReturnType:  typ,
			TypeParams:  typeParams,
		}
		return p.parseMethodRest(class, method)
	}
	return p.parseFieldRest(class, annotations, typ, name)
}

func isConstructor(class *grammar.Class, typ grammar.Type, s *scanner.Scanner) bool {
	if len(typ.Name) != 1 || len(typ.Params) > 0 || typ.Dims > 0 || typ.Name[0] != class.Name {
		return false
	}
	// records may declare a compact constructor without a parameter list
	return s.Check("(") || (class.Kind == grammar.KindRecord && s.Check("{"))
}

func (p *parser) parseMethodRest(class *grammar.Class, method grammar.Method) error {
	s := p.s
	if s.Check("(") {
		args, err := p.parseArgs(&method.Body)
		if err != nil {
			return err
		}
		method.Args = args
	}
	if err := p.skipDims(nil); err != nil {
		return err
	}
	if s.SkipKeyword("throws") {
		throws, err := p.parseTypeList()
		if err != nil {
			return err
		}
		method.Throws = throws
	}
	if s.SkipKeyword("default") {
		if err := s.SkipUntil(";", &method.Body); err != nil {
			return err
		}
	}
	if s.Check("{") {
		if err := s.SkipAround('{', '}', &method.Body); err != nil {
			return err
		}
	} else if err := s.Expect(";"); err != nil {
		return err
	}
	class.Methods = append(class.Methods, method)
	return nil
}

func (p *parser) parseFieldRest(class *grammar.Class, annotations []grammar.Type, typ grammar.Type, name string) error {
	s := p.s
	for {
		field := grammar.Field{Annotations: annotations, Name: name, Type: typ}
		if err := p.skipDims(&field.Type); err != nil {
			return err
		}
		if s.Skip("=") {
			if err := p.skipInitializer(&field.Value); err != nil {
				return err
			}
		}
		class.Fields = append(class.Fields, field)

		if !s.Skip(",") {
			return s.Expect(";")
		}
		var err error
		if name, err = s.ExpectIdent(); err != nil {
			return err
		}
	}
}

// skipInitializer skips a field initializer up to the `,` or `;` ending its
// declarator. A comma only ends the declarator when another declarator
// follows it, so type arguments like `new HashMap<K, V>()` stay intact.
func (p *parser) skipInitializer(soup *grammar.SymbolSoup) error {
	s := p.s
	for {
		if err := s.SkipUntil(",;", soup); err != nil {
			return err
		}
		if !s.Check(",") || declaratorFollows(s.Source(), s.Cursor()+1) {
			return nil
		}
		s.SkipOnly(",")
	}
}

// declaratorFollows reports whether `ident =`, `ident ,`, `ident ;` or
// `ident [` starts at offset, ignoring blanks.
func declaratorFollows(source string, offset int) bool {
	i := skipBlanks(source, offset)
	start := i
	for i < len(source) && scanner.IsIdentChar(source[i]) {
		i++
	}
	if i == start || !scanner.IsIdentStart(source[start]) {
		return false
	}
	i = skipBlanks(source, i)
	if i >= len(source) {
		return false
	}
	switch source[i] {
	case '=', ',', ';', '[':
		return true
	}
	return false
}

func skipBlanks(source string, i int) int {
	for i < len(source) {
		switch source[i] {
		case ' ', '\t', '\r', '\n', '\f':
			i++
		default:
			return i
		}
	}
	return i
}

// parseArgs reads a parenthesized formal parameter list. Annotation
// arguments go to soup.
func (p *parser) parseArgs(soup *grammar.SymbolSoup) ([]grammar.Arg, error) {
	s := p.s
	if err := s.Expect("("); err != nil {
		return nil, err
	}
	if s.Skip(")") {
		return nil, nil
	}

	outer := p.soup
	p.soup = soup
	defer func() { p.soup = outer }()

	var args []grammar.Arg
	for {
		annotations, err := p.parseModifiers()
		if err != nil {
			return nil, err
		}
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		arg := grammar.Arg{Annotations: annotations, Type: typ}
		arg.Varargs = s.Skip("...")
		if arg.Name, err = s.ExpectIdent(); err != nil {
			return nil, err
		}
		if err := p.skipDims(&arg.Type); err != nil {
			return nil, err
		}
		args = append(args, arg)

		if !s.Skip(",") {
			return args, s.Expect(")")
		}
	}
}

// skipDims consumes `[]` pairs, counting them on typ when it is not nil
func (p *parser) skipDims(typ *grammar.Type) error {
	for p.s.Skip("[") {
		if err := p.s.Expect("]"); err != nil {
			return err
		}
		if typ != nil {
			typ.Dims++
		}
	}
	return nil
}

// parseType reads a type usage including type annotations, generic
// arguments and array dimensions.
func (p *parser) parseType() (grammar.Type, error) {
	s := p.s
	var typ grammar.Type
	for s.Check("@") && !s.Check("@interface") {
		annotation, err := p.parseAnnotation()
		if err != nil {
			return grammar.Type{}, err
		}
		typ.Annotations = append(typ.Annotations, annotation)
	}

	if s.Skip("?") {
		wildcard := grammar.WildcardAny
		switch {
		case s.SkipKeyword("extends"):
			wildcard = grammar.WildcardExtends
		case s.SkipKeyword("super"):
			wildcard = grammar.WildcardSuper
		default:
			typ.Wildcard = wildcard
			return typ, nil
		}
		bound, err := p.parseType()
		if err != nil {
			return grammar.Type{}, err
		}
		bound.Annotations = append(typ.Annotations, bound.Annotations...)
		bound.Wildcard = wildcard
		return bound, nil
	}

	for {
		name, err := p.parseTypePath()
		if err != nil {
			return grammar.Type{}, err
		}
		typ.Name = append(typ.Name, name...)
		if s.Check("<") {
			params, err := p.parseTypeArgs()
			if err != nil {
				return grammar.Type{}, err
			}
			typ.Params = append(typ.Params, params...)
		}
		// Outer<T>.Inner continues the name after the arguments
		if s.Check("...") || !s.Skip(".") {
			break
		}
	}

	if err := p.skipDims(&typ); err != nil {
		return grammar.Type{}, err
	}
	return typ, nil
}

func (p *parser) parseTypeArgs() ([]grammar.Type, error) {
	s := p.s
	if err := s.Expect("<"); err != nil {
		return nil, err
	}
	if s.Skip(">") {
		return nil, nil
	}
	var params []grammar.Type
	for {
		param, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !s.Skip(",") {
			return params, s.Expect(">")
		}
	}
}

func (p *parser) parseTypeList() ([]grammar.Type, error) {
	var types []grammar.Type
	for {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)
		if !p.s.Skip(",") {
			return types, nil
		}
	}
}

// parseTypeParams reads a declared generic parameter list such as
// `<K, V extends Comparable<V> & Serializable>`.
func (p *parser) parseTypeParams() ([]grammar.TypeParam, error) {
	s := p.s
	if err := s.Expect("<"); err != nil {
		return nil, err
	}
	var params []grammar.TypeParam
	for {
		if _, err := p.parseModifiers(); err != nil {
			return nil, err
		}
		name, err := s.ExpectIdent()
		if err != nil {
			return nil, err
		}
		param := grammar.TypeParam{Name: name}
		if s.SkipKeyword("extends") {
			for {
				bound, err := p.parseType()
				if err != nil {
					return nil, err
				}
				param.Bounds = append(param.Bounds, bound)
				if !s.Skip("&") {
					break
				}
			}
		}
		params = append(params, param)
		if !s.Skip(",") {
			return params, s.Expect(">")
		}
	}
}
