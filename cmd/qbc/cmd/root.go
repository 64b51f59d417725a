package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "qbc",
	Short: "QBasic-to-flat-form compiler",
	Long: `qbc translates QBasic source into a flat, label-addressed statement form
and can run the result directly through a small trampoline runtime.

The pipeline is: lexer -> parser -> semantic analyzer -> code generator.
Each stage is also exposed as its own subcommand for inspection.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}

func readSource(filename string) string {
	content, err := os.ReadFile(filename)
	if err != nil {
		exitWithError("failed to read file %s: %v", filename, err)
	}
	return string(content)
}
