package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/java-imports-group/pkg/report"
)

var checkCmd = &cobra.Command{
	Use:   "check [PATH]",
	Short: "Report missing and unused imports without modifying files",
	Long: `check resolves the imports of every Java file under PATH (default: the
current directory) against the project and prints the findings as a table.
It exits with an error when any issue is found.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runCheck,
	SilenceUsage: true,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	root := resolveRoot(path)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	g := formatter.New(formatter.FormatterConfig{
		ProjectRoot: root,
		Settings:    cfg,
		Out:         cmd.OutOrStdout(),
	})
	rep, checkErr := g.CheckPath(cmd.Context(), path)
	if rep == nil {
		return checkErr
	}
	return renderReport(cmd, rep, checkErr)
}

// renderReport prints rep and turns findings into the command's error
func renderReport(cmd *cobra.Command, rep *report.Report, checkErr error) error {
	if err := rep.Render(cmd.OutOrStdout()); err != nil {
		return err
	}
	if checkErr != nil {
		return checkErr
	}
	if rep.Len() > 0 {
		return fmt.Errorf(errors.ErrMsgImportIssuesFound, rep.Len())
	}
	return nil
}
