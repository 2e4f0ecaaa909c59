package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:    "gui",
		Short:  "Launch the graphical profile editor (not implemented)",
		Hidden: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("The graphical editor is not part of this tool.")
			fmt.Println("Use 'arkprofile extract', 'arkprofile build', or 'arkprofile verify' instead.")
			return fmt.Errorf("gui subcommand not implemented")
		},
	}
}
