package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ludo-technologies/larascan/internal/preset"
	"github.com/ludo-technologies/larascan/service"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available presets",
		Long: `List every preset with the namespaces it scans. Namespace overrides from
the config file are applied. Use --steps to show each predicate.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("path", "p", ".", "Laravel project root")
	cmd.Flags().StringP("config", "c", "", "Path to config file")
	cmd.Flags().Bool("steps", false, "Show the predicates of each preset")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	configPath, _ := cmd.Flags().GetString("config")
	showSteps, _ := cmd.Flags().GetBool("steps")

	loader := service.NewConfigurationLoader()
	cfg, err := loader.LoadConfig(configPath, path)
	if err != nil {
		return err
	}

	table := preset.Build(loader.PresetOptions(cfg, ""))
	enabled := make(map[string]bool, len(cfg.Presets.Enabled))
	for _, name := range cfg.Presets.Enabled {
		enabled[strings.ToLower(name)] = true
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tENABLED\tSCOPE\tDESCRIPTION")
	for _, name := range table.Names() {
		p, err := table.Get(name)
		if err != nil {
			return err
		}

		on := "yes"
		if len(enabled) > 0 && !enabled[name] {
			on = "no"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, on, strings.Join(p.Namespaces(), ", "), p.Description)

		if showSteps {
			for i, step := range p.Steps {
				fmt.Fprintf(w, "\t\t  %d. %s\t%s\n", i+1, step.Predicate.ID, step.Predicate.Description)
			}
		}
	}
	return w.Flush()
}
