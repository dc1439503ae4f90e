package resolver

import (
	"sort"

	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
)

// References returns every external type name used in the class headers of
// parse, sorted and without duplicates. A name is external unless its
// leading segment is a class declared in the file or a type parameter in
// scope.
func References(parse *grammar.Parse) []grammar.Path {
	c := &collector{
		own:  make(map[string]bool),
		seen: make(map[string]bool),
	}
	for _, name := range parse.ClassNames() {
		c.own[name] = true
	}
	for _, class := range parse.Classes {
		c.class(class, nil)
	}

	sort.Slice(c.refs, func(i, j int) bool {
		return c.refs[i].String() < c.refs[j].String()
	})
	return c.refs
}

type collector struct {
	own  map[string]bool
	seen map[string]bool
	refs []grammar.Path
}

// scope is the set of type variables visible at some point
type scope map[string]bool

func (s scope) with(params []grammar.TypeParam) scope {
	if len(params) == 0 {
		return s
	}
	inner := make(scope, len(s)+len(params))
	for name := range s {
		inner[name] = true
	}
	for _, param := range params {
		inner[param.Name] = true
	}
	return inner
}

func (c *collector) class(class grammar.Class, outer scope) {
	sc := outer.with(class.TypeParams)

	c.types(class.Annotations, sc)
	c.typeParams(class.TypeParams, sc)
	c.types(class.Supertypes, sc)

	for _, field := range class.Fields {
		c.types(field.Annotations, sc)
		c.typ(field.Type, sc)
	}

	for _, method := range class.Methods {
		msc := sc.with(method.TypeParams)
		c.types(method.Annotations, msc)
		c.typeParams(method.TypeParams, msc)
		if !method.Constructor {
			c.typ(method.ReturnType, msc)
		}
		for _, arg := range method.Args {
			c.types(arg.Annotations, msc)
			c.typ(arg.Type, msc)
		}
		c.types(method.Throws, msc)
	}

	for _, nested := range class.Classes {
		c.class(nested, sc)
	}
}

func (c *collector) typeParams(params []grammar.TypeParam, sc scope) {
	for _, param := range params {
		c.types(param.Bounds, sc)
	}
}

func (c *collector) types(types []grammar.Type, sc scope) {
	for _, typ := range types {
		c.typ(typ, sc)
	}
}

func (c *collector) typ(typ grammar.Type, sc scope) {
	c.types(typ.Annotations, sc)
	if lead := typ.Name.First(); lead != "" && !c.own[lead] && !sc[lead] {
		key := typ.Name.String()
		if !c.seen[key] {
			c.seen[key] = true
			c.refs = append(c.refs, typ.Name)
		}
	}
	c.types(typ.Params, sc)
}

// SoupIdents returns every identifier harvested from the unmodeled regions
// of parse: method bodies, initializers and annotation arguments.
func SoupIdents(parse *grammar.Parse) map[string]bool {
	idents := make(map[string]bool)
	add := func(soup grammar.SymbolSoup) {
		for _, ident := range soup.Idents {
			idents[ident] = true
		}
	}

	var walk func(classes []grammar.Class)
	walk = func(classes []grammar.Class) {
		for _, class := range classes {
			add(class.Soup)
			for _, field := range class.Fields {
				add(field.Value)
			}
			for _, method := range class.Methods {
				add(method.Body)
			}
			walk(class.Classes)
		}
	}
	walk(parse.Classes)
	return idents
}
