package errors

import "fmt"

// Error message constants for the java-imports-group application
const (
	// File processing errors
	ErrMsgFailedToReadFile   = "failed to read file"
	ErrMsgFailedToParseFile  = "failed to parse file"
	ErrMsgFailedToWriteFile  = "failed to write file"
	ErrMsgFailedToReadStdin  = "failed to read stdin"
	ErrMsgFailedToLoadConfig = "failed to load config"

	// Directory processing errors
	ErrMsgFailedToCheckPath     = "failed to check path"
	ErrMsgFailedToFindJavaFiles = "failed to find Java files in directory"
	ErrMsgFilesFailedToProcess  = "%d files failed to process"
	ErrMsgFailedToLoadProject   = "failed to load project"
	ErrMsgInvalidExcludePattern = "invalid exclude pattern %q"

	// Resolution errors
	ErrMsgImportIssuesFound = "%d import issues found"

	// Watch errors
	ErrMsgFailedToStartWatcher = "failed to start watcher"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoJavaFilesFound            = "No Java files found in directory: %s"
	InfoMsgFoundJavaFiles              = "Found %d Java files in directory: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
	InfoMsgNoIssues                    = "No import issues found"
)

// EndOfInput is reported as the found token when the scanner ran out of source
const EndOfInput = "end of input"

// SyntaxError is returned when an expected literal, keyword or identifier is
// absent. Line and Column are 1-based.
type SyntaxError struct {
	Offset   int
	Line     int
	Column   int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	if e.Found == EndOfInput {
		return fmt.Sprintf("%d:%d: expected `%s` but reached the end of input", e.Line, e.Column, e.Expected)
	}
	return fmt.Sprintf("%d:%d: expected `%s` but found `%s`", e.Line, e.Column, e.Expected, e.Found)
}
