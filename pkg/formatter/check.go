package formatter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	slogctx "github.com/veqryn/slog-context"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/parser"
	"github.com/siyuan-infoblox/java-imports-group/pkg/report"
	"github.com/siyuan-infoblox/java-imports-group/pkg/resolver"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
)

// Reset drops the loaded project so the next resolution reloads it
func (g *formatter) Reset() {
	g.resolver = nil
}

// CheckFile resolves the imports of the file at FilePath against the
// project without modifying anything
func (g *formatter) CheckFile(ctx context.Context) ([]resolver.Diagnostic, error) {
	src, err := os.ReadFile(g.getFilePath())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToReadFile, err)
	}

	parse, err := parser.ParseFile(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToParseFile, err)
	}

	r, err := g.getResolver(ctx)
	if err != nil {
		return nil, err
	}
	return r.Resolve(parse).Diagnostics(), nil
}

// CheckFiles checks every file into a report. Files that cannot be checked
// are left out of the report and returned as a combined error.
func (g *formatter) CheckFiles(ctx context.Context, filePaths []string) (*report.Report, error) {
	var merr *multierror.Error
	rep := &report.Report{}

	for _, filePath := range filePaths {
		g.config.FilePath = filePath
		diags, err := g.CheckFile(ctx)
		if err != nil {
			slogctx.Error(ctx, "error checking file", "file", filePath, "error", err)
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", filePath, err))
			continue
		}
		rep.Add(filePath, diags)
	}

	slogctx.Debug(ctx, "checked files", "files", rep.Files, "issues", rep.Len())
	return rep, merr.ErrorOrNil()
}

// CheckPath checks a file or every Java file below a directory
func (g *formatter) CheckPath(ctx context.Context, path string) (*report.Report, error) {
	isDir, err := utils.IsDirectory(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToCheckPath, err)
	}

	if !isDir {
		return g.CheckFiles(ctx, []string{path})
	}

	javaFiles, err := g.findJavaFiles(path)
	if err != nil {
		return nil, err
	}
	if g.config.ProjectRoot == "" {
		g.config.ProjectRoot = utils.FindProjectRoot(path)
	}
	return g.CheckFiles(ctx, javaFiles)
}
