package formatter

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	slogctx "github.com/veqryn/slog-context"

	"github.com/siyuan-infoblox/java-imports-group/pkg/config"
	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/grammar"
	"github.com/siyuan-infoblox/java-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/java-imports-group/pkg/project"
	"github.com/siyuan-infoblox/java-imports-group/pkg/resolver"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
)

type FormatterConfig struct {
	FilePath    string         // path to the Java source file
	ProjectRoot string         // optional project root override used by Fix
	InPlace     bool           // whether to modify the file in place
	Fix         bool           // whether to add missing and drop unused imports
	Settings    *config.Config // nil means config.Default()
	Out         io.Writer      // nil means os.Stdout
}

// formatter handles the import grouping logic
type formatter struct {
	config   FormatterConfig
	resolver *resolver.Resolver
}

// New creates a new formatter
func New(config FormatterConfig) *formatter {
	return &formatter{
		config: config,
	}
}

func (g *formatter) getFilePath() string {
	return g.config.FilePath
}

func (g *formatter) getInPlace() bool {
	return g.config.InPlace
}

func (g *formatter) getSettings() *config.Config {
	if g.config.Settings == nil {
		return config.Default()
	}
	return g.config.Settings
}

func (g *formatter) getOut() io.Writer {
	if g.config.Out == nil {
		return os.Stdout
	}
	return g.config.Out
}

func (g *formatter) getProjectRoot() string {
	if g.config.ProjectRoot == "" {
		// If no project root is specified, try to infer it from the file path
		path := g.getFilePath()
		if path == "" {
			path = "."
		}
		return utils.FindProjectRoot(path)
	}
	return g.config.ProjectRoot
}

func (g *formatter) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(g.getOut(), format, args...)
}

// getResolver loads the project on first use
func (g *formatter) getResolver(ctx context.Context) (*resolver.Resolver, error) {
	if g.resolver != nil {
		return g.resolver, nil
	}
	settings := g.getSettings()
	p, err := project.Load(ctx, g.getProjectRoot(), settings)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadProject, err)
	}
	if err := p.Err(); err != nil {
		slogctx.Warn(ctx, "skipped unparsable project files", "error", err)
	}
	g.resolver = resolver.New(p, resolver.WithBuiltins(settings.Resolve.Builtins...))
	return g.resolver, nil
}

// groupImports partitions imports into their groups, keeping the original
// order inside each group
func groupImports(imports []grammar.Import) [groupCount][]grammar.Import {
	var grouped [groupCount][]grammar.Import
	for _, imp := range imports {
		group := Classify(imp)
		grouped[group] = append(grouped[group], imp)
	}
	return grouped
}

// renderGroup renders the imports of one group as sorted, unique lines
func renderGroup(imports []grammar.Import) []string {
	lines := make([]string, 0, len(imports))
	for _, imp := range imports {
		lines = append(lines, imp.String())
	}
	sort.Strings(lines)

	unique := lines[:0]
	for i, line := range lines {
		if i > 0 && line == lines[i-1] {
			continue
		}
		unique = append(unique, line)
	}
	return unique
}

// FormatImports renders the canonical import block: every non-empty group
// as newline terminated lines followed by one blank line.
func FormatImports(imports []grammar.Import) string {
	var b strings.Builder
	for _, group := range groupImports(imports) {
		if len(group) == 0 {
			continue
		}
		for _, line := range renderGroup(group) {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Splice replaces span of source with block
func Splice(source string, span grammar.Span, block string) string {
	return source[:span.Start] + block + source[span.End:]
}

// Format rewrites the import block of source. With Fix set the imports are
// first corrected against the project.
func (g *formatter) Format(ctx context.Context, source string) (string, error) {
	var opts []parser.Option
	if !g.config.Fix {
		opts = append(opts, parser.HeaderOnly())
	}
	parse, err := parser.ParseFile(source, opts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	imports := parse.Imports
	if g.config.Fix {
		if imports, err = g.fixImports(ctx, parse); err != nil {
			return "", err
		}
	}

	return Splice(source, parse.ImportSpan, FormatImports(imports)), nil
}

func (g *formatter) fixImports(ctx context.Context, parse *grammar.Parse) ([]grammar.Import, error) {
	r, err := g.getResolver(ctx)
	if err != nil {
		return nil, err
	}
	result := r.Resolve(parse)
	for _, diag := range result.Diagnostics() {
		switch diag.Kind {
		case resolver.KindUnknownSymbol, resolver.KindAmbiguousSymbol:
			slogctx.Warn(ctx, "cannot import symbol", "file", g.getFilePath(), "kind", diag.Kind, "symbol", diag.Symbol, "detail", diag.Detail)
		default:
			slogctx.Debug(ctx, "fixing import", "file", g.getFilePath(), "kind", diag.Kind, "symbol", diag.Symbol)
		}
	}

	settings := g.getSettings()
	return result.Apply(parse.Imports, resolver.Policy{
		AddMissing:   *settings.Resolve.AddMissing,
		RemoveUnused: *settings.Resolve.RemoveUnused,
	}), nil
}

// ProcessReader formats source read from r and prints the whole result
func (g *formatter) ProcessReader(ctx context.Context, r io.Reader) error {
	src, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadStdin, err)
	}
	output, err := g.Format(ctx, string(src))
	if err != nil {
		return err
	}
	g.printf("%s", output)
	return nil
}

// ProcessFileWithOutput processes a Java source file with optional output control
func (g *formatter) ProcessFileWithOutput(ctx context.Context, verbose bool) error {
	src, err := os.ReadFile(g.getFilePath())
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	output, err := g.Format(ctx, string(src))
	if err != nil {
		return err
	}

	if g.getInPlace() {
		if output == string(src) {
			return nil
		}
		if err := os.WriteFile(g.getFilePath(), []byte(output), 0644); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWriteFile, err)
		}
		return nil
	}

	if verbose {
		g.printf("%s", output)
	}
	return nil
}

// ProcessFile processes a Java source file and groups its imports
func (g *formatter) ProcessFile(ctx context.Context) error {
	return g.ProcessFileWithOutput(ctx, true)
}

// ProcessFiles processes multiple Java source files and groups their imports
func (g *formatter) ProcessFiles(ctx context.Context, filePaths []string) error {
	processedCount := 0
	errorCount := 0

	for _, filePath := range filePaths {
		g.config.FilePath = filePath
		if err := g.ProcessFileWithOutput(ctx, false); err != nil {
			slogctx.Error(ctx, "error processing file", "file", filePath, "error", err)
			errorCount++
		} else {
			processedCount++
			if g.getInPlace() {
				g.printf(errors.InfoMsgProcessedFiles+"\n", filePath)
			}
		}
	}

	g.printf(errors.InfoMsgProcessedCount, processedCount)
	if errorCount > 0 {
		g.printf(errors.InfoMsgErrorCount, errorCount)
	}
	g.printf("\n")

	if errorCount > 0 {
		return fmt.Errorf(errors.ErrMsgFilesFailedToProcess, errorCount)
	}
	return nil
}

// ProcessPath processes a file or directory path
func (g *formatter) ProcessPath(ctx context.Context, path string) error {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		g.config.FilePath = path
		return g.ProcessFile(ctx)
	}

	// When processing directories, in-place mode is recommended
	if !g.getInPlace() {
		g.printf(errors.WarnMsgProcessingDirWithoutInPlace + "\n")
		g.printf(errors.InfoMsgUseInPlaceFlag + "\n\n")
	}

	javaFiles, err := g.findJavaFiles(path)
	if err != nil {
		return err
	}

	if len(javaFiles) == 0 {
		g.printf(errors.InfoMsgNoJavaFilesFound+"\n", path)
		return nil
	}

	g.printf(errors.InfoMsgFoundJavaFiles+"\n\n", len(javaFiles), path)
	if g.config.ProjectRoot == "" {
		g.config.ProjectRoot = utils.FindProjectRoot(path)
	}

	return g.ProcessFiles(ctx, javaFiles)
}

// findJavaFiles lists the Java files under dir, honouring the exclude globs
func (g *formatter) findJavaFiles(dir string) ([]string, error) {
	settings := g.getSettings()
	excludeDirs, err := utils.CompileGlobs(settings.Exclude.Dirs)
	if err != nil {
		return nil, err
	}
	excludeFiles, err := utils.CompileGlobs(settings.Exclude.Files)
	if err != nil {
		return nil, err
	}

	javaFiles, err := utils.FindJavaFiles(dir, excludeDirs, excludeFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToFindJavaFiles, err)
	}
	return javaFiles, nil
}
