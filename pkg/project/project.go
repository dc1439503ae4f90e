// Package project holds every parsed file of a Java project for the
// duration of a resolution pass, together with the symbol indexes the
// resolver queries.
package project

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/hashicorp/go-multierror"
	slogctx "github.com/veqryn/slog-context"
	"golang.org/x/sync/errgroup"

	"github.com/siyuan-infoblox/java-imports-group/pkg/config"
	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
	"github.com/siyuan-infoblox/java-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
)

// Source is a file identity and its text, as handed over by a loader
type Source struct {
	Name string
	Text string
}

// File is a successfully parsed project file
type File struct {
	Name  string
	Parse *grammar.Parse
}

// Project is an ordered, read-only collection of parsed files. It owns the
// source texts every Parse points into.
type Project struct {
	Files []File

	failures     *multierror.Error
	packages     map[string]map[string]bool // package -> top-level class names
	declarations map[string][]grammar.Path  // simple name -> qualified names
	qualified    map[string]bool
}

// New indexes files. The order of files is kept.
func New(files []File) *Project {
	p := &Project{
		Files:        files,
		packages:     make(map[string]map[string]bool),
		declarations: make(map[string][]grammar.Path),
		qualified:    make(map[string]bool),
	}
	for _, file := range files {
		p.index(file.Parse)
	}
	return p
}

func (p *Project) index(parse *grammar.Parse) {
	pkg := parse.Package.String()
	names := p.packages[pkg]
	if names == nil {
		names = make(map[string]bool)
		p.packages[pkg] = names
	}

	var walk func(parent grammar.Path, classes []grammar.Class)
	walk = func(parent grammar.Path, classes []grammar.Class) {
		for _, class := range classes {
			path := parent.Child(class.Name)
			key := path.String()
			if !p.qualified[key] {
				p.qualified[key] = true
				p.declarations[class.Name] = append(p.declarations[class.Name], path)
			}
			walk(path, class.Classes)
		}
	}
	for _, class := range parse.Classes {
		names[class.Name] = true
	}
	walk(parse.Package, parse.Classes)
}

// Parse parses sources in parallel. Files that fail to parse are left out
// of the project and reported by Err. The returned error is only set when
// ctx is cancelled.
func Parse(ctx context.Context, sources []Source) (*Project, error) {
	parses := make([]*grammar.Parse, len(sources))
	failures := make([]error, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parse, err := parser.ParseFile(source.Text)
			if err != nil {
				failures[i] = fmt.Errorf("%s: %w", source.Name, err)
				return nil
			}
			parses[i] = parse
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merr *multierror.Error
	files := make([]File, 0, len(sources))
	for i, source := range sources {
		if failures[i] != nil {
			merr = multierror.Append(merr, failures[i])
			continue
		}
		files = append(files, File{Name: source.Name, Parse: parses[i]})
	}

	p := New(files)
	p.failures = merr
	slogctx.Debug(ctx, "parsed project", "files", len(files), "failures", len(sources)-len(files))
	return p, nil
}

// Load discovers every Java file under root, honouring the exclude globs
// of cfg, and parses them.
func Load(ctx context.Context, root string, cfg *config.Config) (*Project, error) {
	excludeDirs, err := utils.CompileGlobs(cfg.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	excludeFiles, err := utils.CompileGlobs(cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	paths, err := utils.FindJavaFiles(root, excludeDirs, excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindJavaFiles, err)
	}
	sort.Strings(paths)

	var readFailures *multierror.Error
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			readFailures = multierror.Append(readFailures, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err))
			continue
		}
		sources = append(sources, Source{Name: path, Text: string(data)})
	}

	p, err := Parse(ctx, sources)
	if err != nil {
		return nil, err
	}
	if readFailures != nil {
		p.failures = multierror.Append(readFailures, p.failures.WrappedErrors()...)
	}
	slogctx.Info(ctx, "loaded project", "root", root, "files", len(p.Files))
	return p, nil
}

// Err returns the accumulated load failures, or nil
func (p *Project) Err() error {
	return p.failures.ErrorOrNil()
}

// PackageClasses returns the top-level class names declared in pkg. The
// map must not be modified.
func (p *Project) PackageClasses(pkg grammar.Path) map[string]bool {
	return p.packages[pkg.String()]
}

// Declarations returns the qualified names of every class, nested ones
// included, whose simple name is name.
func (p *Project) Declarations(name string) []grammar.Path {
	return p.declarations[name]
}

// Declares reports whether the project declares a class with exactly this
// qualified name.
func (p *Project) Declares(path grammar.Path) bool {
	return p.qualified[path.String()]
}

// File returns the parsed file called name
func (p *Project) File(name string) (File, bool) {
	for _, file := range p.Files {
		if file.Name == name {
			return file, true
		}
	}
	return File{}, false
}
