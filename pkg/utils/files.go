package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
)

// IsJavaFile checks if a file is a Java source file
func IsJavaFile(filename string) bool {
	return strings.HasSuffix(filename, ".java")
}

// CompileGlobs compiles exclude patterns such as "target" or ".*"
func CompileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf(errors.ErrMsgInvalidExcludePattern+": %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// MatchesAny reports whether name matches one of globs
func MatchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// FindJavaFiles recursively finds all Java source files under root in
// lexical order. Directories and files whose base name matches one of the
// exclude globs are skipped; root itself is never excluded.
func FindJavaFiles(root string, excludeDirs, excludeFiles []glob.Glob) ([]string, error) {
	var javaFiles []string

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		name := filepath.Base(path)
		if info.IsDir() {
			if path != root && MatchesAny(excludeDirs, name) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsJavaFile(name) && !MatchesAny(excludeFiles, name) {
			javaFiles = append(javaFiles, path)
		}

		return nil
	})

	return javaFiles, err
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
