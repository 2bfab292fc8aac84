package cmd

import (
	"fmt"
	"os"

	"github.com/ThomasCrouzet/compose2easypanel/internal/config"
	"github.com/ThomasCrouzet/compose2easypanel/internal/convert"
	"github.com/ThomasCrouzet/compose2easypanel/internal/ui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that a compose file converts cleanly",
	Long: `Load the compose file, optionally check it against the compose
specification (--validate), then run a dry conversion and report every
service that would be dropped. Nothing is written.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addInputFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "check "+config.FileName))
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid flag", err.Error(), ""))
		return err
	}

	fmt.Println(ui.Bold("Validating " + cfg.Input + "..."))

	doc, ambient, err := prepare(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	if cfg.Validate {
		ui.ValidationOK("compose-spec", "document is valid")
	}

	opts, err := conversionOptions(cfg)
	if err != nil {
		ui.ValidationErr("type_overrides", err.Error(), "valid types: app, mysql, postgresql, mongodb, redis, nginx, traefik, custom")
		return err
	}
	opts.Strict = false

	res, err := convert.ConvertDocument(doc, convert.ProjectName(cfg.ProjectName, doc.Name), ambient, opts)
	if err != nil {
		reportError(err)
		return err
	}

	byService := make(map[string][]convert.Diagnostic)
	for _, d := range res.Diagnostics {
		byService[d.Service] = append(byService[d.Service], d)
	}

	converted := make(map[string]string, len(res.Document.Services))
	for _, rec := range res.Document.Services {
		converted[rec.Name()] = string(rec.Type)
	}

	passed, failed, warnings := 0, 0, 0
	for _, sn := range doc.Services {
		kind, ok := converted[sn.Name]
		if ok {
			ui.ValidationOK(sn.Name, "converts as "+kind)
			passed++
		}
		for _, d := range byService[sn.Name] {
			if d.Severity == convert.SeverityError {
				ui.ValidationErr(sn.Name+"."+d.Field, d.Message, "")
				failed++
				continue
			}
			ui.Diagnostic(os.Stdout, string(d.Severity), sn.Name, d.Message)
			warnings++
		}
	}

	fmt.Println()
	if failed == 0 {
		ui.Success(fmt.Sprintf("%d services valid, 0 errors, %d warnings", passed, warnings))
		return nil
	}
	fmt.Printf("%d services valid, %d errors, %d warnings\n", passed, failed, warnings)
	return fmt.Errorf("%d validation errors", failed)
}
