// Package report collects resolver diagnostics across files and prints
// them as a table.
package report

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/resolver"
)

// Entry is a diagnostic attributed to a file
type Entry struct {
	File       string
	Diagnostic resolver.Diagnostic
}

// Report accumulates the findings of a check run
type Report struct {
	Entries []Entry
	Files   int // number of files checked, clean ones included
}

// Add records the diagnostics of one checked file
func (r *Report) Add(file string, diags []resolver.Diagnostic) {
	r.Files++
	for _, diag := range diags {
		r.Entries = append(r.Entries, Entry{File: file, Diagnostic: diag})
	}
}

// Len returns the number of issues found
func (r *Report) Len() int {
	return len(r.Entries)
}

// Counts returns the number of issues per kind
func (r *Report) Counts() map[resolver.Kind]int {
	counts := make(map[resolver.Kind]int)
	for _, entry := range r.Entries {
		counts[entry.Diagnostic.Kind]++
	}
	return counts
}

// Render writes the report to w, sorted by file
func (r *Report) Render(w io.Writer) error {
	if r.Len() == 0 {
		_, err := fmt.Fprintf(w, "%s (%d files)\n", errors.InfoMsgNoIssues, r.Files)
		return err
	}

	entries := make([]Entry, len(r.Entries))
	copy(entries, r.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].File < entries[j].File
	})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Kind", "Symbol", "Detail"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
	})

	files := make(map[string]bool)
	for _, entry := range entries {
		files[entry.File] = true
		table.Append([]string{
			entry.File,
			string(entry.Diagnostic.Kind),
			entry.Diagnostic.Symbol,
			entry.Diagnostic.Detail,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Files %d/%d", len(files), r.Files),
		"",
		"",
		fmt.Sprintf("%d issues", len(entries)),
	})

	table.Render()
	_, err := w.Write(tableBuffer.Bytes())
	return err
}
