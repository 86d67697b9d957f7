package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tokenlistConverter/internal/config"
)

func runSources(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, name := range config.PresetNames() {
		fmt.Fprintf(out, "%-16s %s\n", name, config.Presets[name])
	}
	return nil
}
