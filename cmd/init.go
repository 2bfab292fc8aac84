package cmd

import (
	"fmt"
	"os"

	"github.com/ThomasCrouzet/compose2easypanel/internal/config"
	"github.com/ThomasCrouzet/compose2easypanel/internal/ui"
	"github.com/ThomasCrouzet/compose2easypanel/internal/wizard"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a " + config.FileName + " config file interactively",
	Long: `Scan the working directory for compose files, Jinja2 compose templates
and .env files, then generate a config file through an interactive wizard.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath := config.FileName

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		fmt.Printf("%s already exists.\n", configPath)
		fmt.Print("Overwrite? [y/N] ")
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	// Detect compose files, templates and env files
	fmt.Println(ui.Bold("Scanning working directory..."))
	detection := wizard.Detect(nil)
	reportDetection(detection)

	// Run wizard
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	answers, err := wizard.Run(detection, wd)
	if err != nil {
		return fmt.Errorf("wizard: %w", err)
	}

	// Generate config
	content, err := wizard.GenerateConfig(*answers)
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	// Write config file
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	ui.Success(fmt.Sprintf("Created %s", configPath))
	fmt.Println()
	fmt.Printf("Next step: %s\n", ui.Bold("compose2easypanel convert"))
	fmt.Printf("           %s\n", ui.Hint("or edit "+configPath+" to fine-tune your config"))

	return nil
}

// reportDetection lists what the scan found. Detected env files are
// pre-filled as env_files in the wizard.
func reportDetection(d wizard.DetectionResult) {
	for _, f := range d.Findings() {
		ui.ValidationOK(f.Kind, f.Path)
	}
	if len(d.ComposeFiles) == 0 && len(d.TemplateFiles) == 0 {
		ui.Warn("no compose file found in the working directory")
	}
	fmt.Println()
}
