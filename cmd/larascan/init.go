package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ludo-technologies/larascan/internal/config"
	"github.com/ludo-technologies/larascan/internal/constants"
)

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a larascan configuration file",
		Long: `Generate a documented larascan.yaml with sensible defaults.

Examples:
  # Create larascan.yaml in the current directory
  larascan init

  # Livewire application with every violation reported
  larascan init --project livewire --strictness strict

  # Custom output path
  larascan init --config config/larascan.yaml

  # Overwrite an existing file
  larascan init --force

  # Interactive setup wizard
  larascan init -i`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	cmd.Flags().StringP("config", "c", constants.DefaultConfigFile,
		"Output path for the config file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing config file")
	cmd.Flags().Bool("minimal", false,
		"Generate minimal config with essential options only")
	cmd.Flags().String("project", string(config.ProjectTypeStandard),
		"Project type: standard, livewire, api")
	cmd.Flags().String("strictness", string(config.StrictnessStandard),
		"Strictness: relaxed, standard, strict")
	cmd.Flags().BoolP("interactive", "i", false,
		"Interactive setup wizard")

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	force, _ := cmd.Flags().GetBool("force")
	minimal, _ := cmd.Flags().GetBool("minimal")
	interactive, _ := cmd.Flags().GetBool("interactive")
	project, _ := cmd.Flags().GetString("project")
	strict, _ := cmd.Flags().GetString("strictness")

	choice := initChoice{
		projectType: config.ProjectType(project),
		strictness:  config.Strictness(strict),
		configPath:  configPath,
	}
	if _, ok := config.GetProjectPresets()[choice.projectType]; !ok {
		return fmt.Errorf("unknown project type %q (must be one of: standard, livewire, api)", project)
	}
	if _, ok := config.GetStrictnessPresets()[choice.strictness]; !ok {
		return fmt.Errorf("unknown strictness %q (must be one of: relaxed, standard, strict)", strict)
	}

	if interactive {
		var err error
		choice, err = runInteractiveSetup(cmd.OutOrStdout(), configPath)
		if err != nil {
			return err
		}
	}
	configPath = choice.configPath

	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
		}
	}

	dir := filepath.Dir(configPath)
	if dir != "." && dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("directory does not exist: %s", dir)
		}
	}

	var content string
	if minimal {
		content = config.GetMinimalConfigTemplate()
	} else {
		content = config.GetFullConfigTemplate(choice.projectType, choice.strictness, choice.scanMode)
	}

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	displayPath := configPath
	if absPath, err := filepath.Abs(configPath); err == nil {
		displayPath = absPath
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", displayPath)
	fmt.Fprintln(out, "\nRun 'larascan check' to check your project.")

	return nil
}

type initChoice struct {
	projectType config.ProjectType
	strictness  config.Strictness
	scanMode    string
	configPath  string
}

func runInteractiveSetup(out io.Writer, defaultConfigPath string) (initChoice, error) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "larascan Configuration Setup")
	fmt.Fprintln(out, "============================")
	fmt.Fprintln(out)

	projectTypes := []struct {
		Label string
		Value config.ProjectType
	}{
		{"Standard Laravel application", config.ProjectTypeStandard},
		{"Livewire application", config.ProjectTypeLivewire},
		{"API only", config.ProjectTypeAPI},
	}

	projectPrompt := promptui.Select{
		Label: "What type of project is this?",
		Items: projectTypes,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ .Label | cyan }}",
			Inactive: "  {{ .Label | white }}",
			Selected: "{{ .Label | green }}",
		},
	}

	projectIdx, _, err := projectPrompt.Run()
	if err != nil {
		return initChoice{}, fmt.Errorf("project selection cancelled: %w", err)
	}

	strictnessLevels := []struct {
		Label       string
		Description string
		Value       config.Strictness
	}{
		{"Standard (recommended)", "Every preset for the project type", config.StrictnessStandard},
		{"Relaxed", "Commands, jobs, models, events and listeners only", config.StrictnessRelaxed},
		{"Strict", "Every preset, reporting all violations", config.StrictnessStrict},
	}

	strictnessPrompt := promptui.Select{
		Label: "How strict should the checks be?",
		Items: strictnessLevels,
		Templates: &promptui.SelectTemplates{
			Label:    "{{ . }}",
			Active:   "> {{ .Label | cyan }} - {{ .Description | faint }}",
			Inactive: "  {{ .Label | white }} - {{ .Description | faint }}",
			Selected: "{{ .Label | green }}",
		},
	}

	strictnessIdx, _, err := strictnessPrompt.Run()
	if err != nil {
		return initChoice{}, fmt.Errorf("strictness selection cancelled: %w", err)
	}

	modePrompt := promptui.Select{
		Label: "How should dependencies be detected?",
		Items: []string{"ast - parsed imports and calls", "text - raw source, including comments"},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return initChoice{}, fmt.Errorf("scan mode selection cancelled: %w", err)
	}
	scanMode := "ast"
	if modeIdx == 1 {
		scanMode = "text"
	}

	outputPrompt := promptui.Prompt{
		Label:   "Output file path",
		Default: defaultConfigPath,
	}
	outputPath, err := outputPrompt.Run()
	if err != nil {
		return initChoice{}, fmt.Errorf("output path input cancelled: %w", err)
	}
	if outputPath == "" {
		outputPath = defaultConfigPath
	}

	fmt.Fprintln(out)
	return initChoice{
		projectType: projectTypes[projectIdx].Value,
		strictness:  strictnessLevels[strictnessIdx].Value,
		scanMode:    scanMode,
		configPath:  outputPath,
	}, nil
}
