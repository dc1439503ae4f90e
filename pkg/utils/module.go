package utils

import (
	"os"
	"path/filepath"
)

// ProjectMarkers are the files whose presence marks a project root
var ProjectMarkers = []string{"pom.xml", "build.gradle", "build.gradle.kts", "settings.gradle", "settings.gradle.kts", ".git"}

// FindProjectRoot climbs from path to the nearest directory containing one
// of ProjectMarkers. It falls back to the directory of path itself.
func FindProjectRoot(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	start := absPath
	if isDir, err := IsDirectory(absPath); err != nil || !isDir {
		start = filepath.Dir(absPath)
	}

	dir := start
	iterations := 0
	maxIterations := 64 // Prevent infinite loop

	for iterations < maxIterations {
		iterations++

		for _, marker := range ProjectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return start
}
