// Package resolver decides whether the imports of a file cover every type
// name its class headers reference, using the whole project as symbol
// table.
package resolver

import (
	"sort"
	"strings"

	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
	"github.com/siyuan-infoblox/java-imports-group/pkg/project"
	"github.com/siyuan-infoblox/java-imports-group/pkg/std"
)

// Unresolved is a referenced type name that no import, same-package class
// or builtin satisfies.
type Unresolved struct {
	Reference grammar.Path
	// Candidates are the project classes named like the leading segment,
	// fewest segments first, then alphabetically.
	Candidates []grammar.Path
}

// Known reports whether some project file declares the name
func (u Unresolved) Known() bool {
	return len(u.Candidates) > 0
}

// Ambiguous reports whether the two best candidates are equally short
func (u Unresolved) Ambiguous() bool {
	return len(u.Candidates) > 1 && len(u.Candidates[0]) == len(u.Candidates[1])
}

// Suggestion returns the import that would satisfy the reference
func (u Unresolved) Suggestion() (grammar.Import, bool) {
	if !u.Known() || u.Ambiguous() {
		return grammar.Import{}, false
	}
	return grammar.Import{Path: u.Candidates[0]}, true
}

// Result is the outcome of resolving one file
type Result struct {
	Referenced []grammar.Path
	Unresolved []Unresolved
	Unused     []grammar.Import
}

// Option configures a Resolver
type Option func(*Resolver)

// WithBuiltins adds names that never need an import
func WithBuiltins(names ...string) Option {
	return func(r *Resolver) {
		for _, name := range names {
			r.builtins[name] = true
		}
	}
}

// Resolver answers import questions against a project. It never modifies
// the project and can be shared between goroutines.
type Resolver struct {
	project  *project.Project
	builtins map[string]bool
}

// New creates a Resolver over p
func New(p *project.Project, opts ...Option) *Resolver {
	r := &Resolver{
		project:  p,
		builtins: make(map[string]bool, len(std.Builtins)),
	}
	for name := range std.Builtins {
		r.builtins[name] = true
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve checks the imports of target. target does not need to be part of
// the project.
func (r *Resolver) Resolve(target *grammar.Parse) Result {
	refs := References(target)
	result := Result{Referenced: refs}

	simpleNames := make(map[string]bool)
	fullNames := make(map[string]bool)
	for _, imp := range target.Imports {
		if imp.Star {
			continue
		}
		simpleNames[imp.Path.Last()] = true
		fullNames[imp.Path.String()] = true
	}

	samePackage := make(map[string]bool)
	for name := range r.project.PackageClasses(target.Package) {
		samePackage[name] = true
	}
	for _, class := range target.Classes {
		samePackage[class.Name] = true
	}

	for _, ref := range refs {
		lead := ref.First()
		if simpleNames[lead] || samePackage[lead] || r.builtins[lead] || fullNames[ref.String()] {
			continue
		}
		if isQualified(ref) || r.viaWildcard(target.Imports, lead) {
			continue
		}
		result.Unresolved = append(result.Unresolved, Unresolved{
			Reference:  ref,
			Candidates: r.candidates(lead),
		})
	}

	used := SoupIdents(target)
	for _, ref := range refs {
		used[ref.First()] = true
	}
	for _, imp := range target.Imports {
		if imp.Star || imp.Static {
			continue
		}
		if !used[imp.Path.Last()] {
			result.Unused = append(result.Unused, imp)
		}
	}

	return result
}

// isQualified reports whether ref looks like a fully qualified name such as
// java.util.List, which needs no import. Package names start lower case.
func isQualified(ref grammar.Path) bool {
	if len(ref) < 2 {
		return false
	}
	lead := ref.First()
	return lead[0] >= 'a' && lead[0] <= 'z'
}

// viaWildcard reports whether a wildcard import brings a project class
// called name into scope.
func (r *Resolver) viaWildcard(imports []grammar.Import, name string) bool {
	for _, imp := range imports {
		if imp.Star && r.project.Declares(imp.Path.Child(name)) {
			return true
		}
	}
	return false
}

func (r *Resolver) candidates(name string) []grammar.Path {
	declared := r.project.Declarations(name)
	if len(declared) == 0 {
		return nil
	}
	candidates := make([]grammar.Path, len(declared))
	copy(candidates, declared)
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) < len(candidates[j])
		}
		return candidates[i].String() < candidates[j].String()
	})
	return candidates
}

// Policy selects which corrections Apply performs
type Policy struct {
	AddMissing   bool
	RemoveUnused bool
}

// Apply returns imports corrected by the result: unused imports dropped and
// unambiguous suggestions added. Unknown and ambiguous names are left for
// the caller to report. imports is not modified.
func (res Result) Apply(imports []grammar.Import, policy Policy) []grammar.Import {
	unused := make(map[string]bool, len(res.Unused))
	if policy.RemoveUnused {
		for _, imp := range res.Unused {
			unused[imp.String()] = true
		}
	}

	fixed := make([]grammar.Import, 0, len(imports))
	present := make(map[string]bool, len(imports))
	for _, imp := range imports {
		if unused[imp.String()] {
			continue
		}
		fixed = append(fixed, imp)
		present[imp.String()] = true
	}

	if policy.AddMissing {
		for _, u := range res.Unresolved {
			suggestion, ok := u.Suggestion()
			if !ok || present[suggestion.String()] {
				continue
			}
			fixed = append(fixed, suggestion)
			present[suggestion.String()] = true
		}
	}
	return fixed
}

// Kind classifies a Diagnostic
type Kind string

const (
	KindMissingImport   Kind = "missing-import"
	KindAmbiguousSymbol Kind = "ambiguous-symbol"
	KindUnknownSymbol   Kind = "unknown-symbol"
	KindUnusedImport    Kind = "unused-import"
)

// Diagnostic is one finding about a file's imports
type Diagnostic struct {
	Kind   Kind
	Symbol string
	Detail string
}

// Diagnostics lists the findings of the result, sorted by kind and symbol.
// References sharing a leading segment are reported once.
func (res Result) Diagnostics() []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]bool)
	for _, u := range res.Unresolved {
		lead := u.Reference.First()
		if seen[lead] {
			continue
		}
		seen[lead] = true

		switch {
		case !u.Known():
			diags = append(diags, Diagnostic{
				Kind:   KindUnknownSymbol,
				Symbol: u.Reference.String(),
				Detail: "not declared in the project",
			})
		case u.Ambiguous():
			names := make([]string, len(u.Candidates))
			for i, candidate := range u.Candidates {
				names[i] = candidate.String()
			}
			diags = append(diags, Diagnostic{
				Kind:   KindAmbiguousSymbol,
				Symbol: lead,
				Detail: "candidates: " + strings.Join(names, ", "),
			})
		default:
			suggestion, _ := u.Suggestion()
			diags = append(diags, Diagnostic{
				Kind:   KindMissingImport,
				Symbol: lead,
				Detail: suggestion.String(),
			})
		}
	}
	for _, imp := range res.Unused {
		diags = append(diags, Diagnostic{
			Kind:   KindUnusedImport,
			Symbol: imp.Path.String(),
			Detail: imp.String(),
		})
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Kind != diags[j].Kind {
			return diags[i].Kind < diags[j].Kind
		}
		return diags[i].Symbol < diags[j].Symbol
	})
	return diags
}
