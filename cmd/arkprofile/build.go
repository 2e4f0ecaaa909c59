package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	arkprofile "github.com/ark-tools/arkprofile"
)

func newBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build <file.json>",
		Short: "Rebuild a .arkprofile file from JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			raw, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read %s: %w", input, err)
			}

			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", input, err)
			}

			p, err := arkprofile.FromDocument(doc)
			if err != nil {
				return fmt.Errorf("build profile from %s: %w", input, err)
			}

			out := output
			if out == "" {
				out = defaultBuildOutput(input)
			}

			saved, err := p.Save()
			if err != nil {
				return fmt.Errorf("save profile from %s: %w", input, err)
			}
			if err := os.WriteFile(out, saved, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Printf("Built %s from %s\n", out, input)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output .arkprofile path")
	return cmd
}

func defaultBuildOutput(input string) string {
	if strings.HasSuffix(input, ".arkprofile.json") {
		return strings.TrimSuffix(input, ".json")
	}
	if ext := strings.LastIndex(input, "."); ext >= 0 {
		return input[:ext] + ".arkprofile"
	}
	return input + ".arkprofile"
}
