package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/siyuan-infoblox/java-imports-group/pkg/config"
	"github.com/siyuan-infoblox/java-imports-group/pkg/errors"
	"github.com/siyuan-infoblox/java-imports-group/pkg/formatter"
	"github.com/siyuan-infoblox/java-imports-group/pkg/logging"
	"github.com/siyuan-infoblox/java-imports-group/pkg/utils"
)

const (
	UseDescription   = "jig [flags] [PATH]"
	ShortDescription = "Java imports grouper - A tool to group and sort Java imports"
	LongDescription  = `jig is a command-line tool that groups and sorts Java imports.

It organizes imports into groups, each followed by a blank line:
1. Everything outside the Java platform (third-party and project packages)
2. javax packages
3. java packages
4. Static imports

With --fix the whole project is parsed first, so that imports for classes
declared elsewhere in the project are added and unused imports removed.

PATH can be either a single Java file or a directory. When a directory is
specified, all Java source files in the directory and subdirectories will be
processed recursively. Without PATH the source is read from stdin and the
result written to stdout.`
)

var (
	inPlace     bool
	fix         bool
	projectRoot string
	configPath  string
	logLevel    string
	noColor     bool
	showVersion bool
	versionStr  string
)

var rootCmd = &cobra.Command{
	Use:               UseDescription,
	Short:             ShortDescription,
	Long:              LongDescription,
	Args:              validateArgs,
	PersistentPreRunE: setupLogging,
	RunE:              run,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&inPlace, "in-place", false, "Modify the file in place instead of printing to stdout")
	rootCmd.PersistentFlags().BoolVar(&fix, "fix", false, "Add missing and remove unused imports using the project's declarations")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "Root of the Java project (default: nearest directory with pom.xml, build.gradle or .git)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: "+config.FileName+" in the project root)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.AddCommand(checkCmd, watchCmd, versionCmd)
}

func validateArgs(cmd *cobra.Command, args []string) error {
	// If version flag is set, we don't need file arguments
	if showVersion {
		return nil
	}
	return cobra.MaximumNArgs(1)(cmd, args)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	cmd.SetContext(logging.Setup(cmd.Context(), cmd.ErrOrStderr(), level, !noColor))
	return nil
}

// resolveRoot returns the project root for path, honouring --project-root
func resolveRoot(path string) string {
	if projectRoot != "" {
		return projectRoot
	}
	if path == "" {
		path = "."
	}
	return utils.FindProjectRoot(path)
}

func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath, root)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errors.ErrMsgFailedToLoadConfig, err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	// Handle version flag
	if showVersion {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Java Imports Group (JIG) version %s\n", versionStr)
		return nil
	}

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	root := resolveRoot(path)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	g := formatter.New(formatter.FormatterConfig{
		FilePath:    path, // This will be updated for each file when processing directories
		ProjectRoot: root,
		InPlace:     inPlace,
		Fix:         fix,
		Settings:    cfg,
		Out:         cmd.OutOrStdout(),
	})
	if path == "" {
		return g.ProcessReader(cmd.Context(), cmd.InOrStdin())
	}
	return g.ProcessPath(cmd.Context(), path)
}

func Execute(version string) error {
	versionStr = version
	return rootCmd.Execute()
}
