package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	arkprofile "github.com/ark-tools/arkprofile"
)

func newExtractCmd() *cobra.Command {
	var output string
	var indent int

	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Extract a .arkprofile file to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}

			p, err := arkprofile.Load(data)
			if err != nil {
				return fmt.Errorf("parse %s: %w", input, err)
			}

			out := output
			if out == "" {
				out = input + ".json"
			}

			prefix := ""
			pad := strings.Repeat(" ", max(indent, 0))
			raw, err := json.MarshalIndent(p.ToDocument(), prefix, pad)
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}

			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Printf("Extracted %s -> %s\n", input, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON path (default: <input>.json)")
	cmd.Flags().IntVar(&indent, "indent", 2, "JSON indent width")
	return cmd
}
