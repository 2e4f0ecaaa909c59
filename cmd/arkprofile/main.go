// Command arkprofile is the CLI front-end for the arkprofile codec:
// extract, build, verify, and (stubbed) gui subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "arkprofile",
		Short: "Inspect and rebuild Ark: Survival Ascended PlayerLocalData.arkprofile files",
		Long: `arkprofile converts between the ASA PlayerLocalData.arkprofile binary
format and a JSON document, and verifies a file's declared sizes without
trusting the primary parser.`,
	}

	root.AddCommand(newExtractCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newVerifyCmd())
	gui := newGUICmd()
	root.AddCommand(gui)
	root.RunE = gui.RunE // gui is the default when no subcommand is given

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
