package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ThomasCrouzet/compose2easypanel/internal/compose"
	"github.com/ThomasCrouzet/compose2easypanel/internal/config"
	"github.com/ThomasCrouzet/compose2easypanel/internal/convert"
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/ThomasCrouzet/compose2easypanel/internal/render"
	"github.com/ThomasCrouzet/compose2easypanel/internal/ui"
	"github.com/ThomasCrouzet/compose2easypanel/internal/util"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	inputFile       string
	outputFile      string
	projectName     string
	typeOverrides   []string
	envFiles        []string
	noNetworks      bool
	noVolumes       bool
	noSubstitution  bool
	prettyOutput    bool
	strictMode      bool
	templateInput   bool
	validateCompose bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a compose file into an EasyPanel schema",
	Long: `Read a Docker Compose file, classify and normalize every service, and
write the EasyPanel schema JSON.

Services that fail validation are dropped and reported unless --strict is
set, in which case the first error aborts the run. Use -o - to write the
schema to stdout.`,
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	addInputFlags(convertCmd)

	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output JSON file, - for stdout (default: schema.json)")
	convertCmd.Flags().StringVarP(&projectName, "project-name", "p", "", "EasyPanel project name (default: compose name or my-project)")
	convertCmd.Flags().StringSliceVar(&typeOverrides, "type", nil, "force a service type (format: service:type, names match case-insensitively)")
	convertCmd.Flags().BoolVar(&noNetworks, "no-networks", false, "omit top-level networks")
	convertCmd.Flags().BoolVar(&noVolumes, "no-volumes", false, "omit top-level volumes")
	convertCmd.Flags().BoolVar(&prettyOutput, "pretty", false, "indent the JSON output")
	convertCmd.Flags().BoolVar(&strictMode, "strict", false, "abort on the first invalid service")
}

// addInputFlags registers the flags shared by convert and validate.
func addInputFlags(c *cobra.Command) {
	c.Flags().StringVarP(&inputFile, "input", "i", "", "compose file, - for stdin (default: docker-compose.yml)")
	c.Flags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files used for ${VAR} substitution")
	c.Flags().BoolVar(&noSubstitution, "no-env-substitution", false, "keep ${VAR} references verbatim")
	c.Flags().BoolVar(&templateInput, "template", false, "replace Jinja2 {{ ... }} expressions before parsing")
	c.Flags().BoolVar(&validateCompose, "validate", false, "check the file against the compose specification first")
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "check "+config.FileName))
		return err
	}
	if err := applyFlagOverrides(cmd, cfg); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid flag", err.Error(), ""))
		return err
	}

	doc, ambient, err := prepare(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	opts, err := conversionOptions(cfg)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid type override", err.Error(), ""))
		return err
	}

	name := convert.ProjectName(cfg.ProjectName, doc.Name)
	res, err := convert.ConvertDocument(doc, name, ambient, opts)
	if err != nil {
		reportError(err)
		return err
	}

	out, err := render.JSON(res.Document, cfg.Pretty)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to render schema", err.Error(), ""))
		return err
	}

	toStdout := cfg.Output == "-"
	printDiagnostics(res.Diagnostics)

	if toStdout {
		_, err = os.Stdout.Write(out)
		return err
	}

	output := util.ExpandPath(cfg.Output)
	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError("Failed to create output directory", err.Error(), ""))
			return err
		}
	}
	if err := os.WriteFile(output, out, 0644); err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to write output", err.Error(), ""))
		return err
	}

	for _, rec := range res.Document.Services {
		ui.ServiceLine(rec.Name(), string(rec.Type))
	}
	ui.Success(fmt.Sprintf("Generated %s (project %s, %d services, %d volumes, %d networks)",
		output, name, len(res.Document.Services), len(res.Document.Volumes), len(res.Document.Networks)))
	if dropped := res.Dropped(); len(dropped) > 0 {
		ui.Warn(fmt.Sprintf("%d service(s) dropped: %v", len(dropped), dropped))
	}
	return nil
}

// prepare reads and loads the input, optionally checking it against the
// compose specification, and gathers the substitution variables.
func prepare(ctx context.Context, cfg *config.Config) (*compose.Document, map[string]string, error) {
	data, err := readInput(cfg.Input)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to read input", err.Error(), "pass a compose file with -i"))
		return nil, nil, err
	}
	if cfg.Template {
		data = []byte(util.StripJinja2(string(data)))
	}

	files := make([]string, len(cfg.EnvFiles))
	for i, f := range cfg.EnvFiles {
		files[i] = util.ExpandPath(f)
	}
	ambient, err := compose.AmbientEnv(files...)
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to read env files", err.Error(), ""))
		return nil, nil, err
	}

	if cfg.Validate {
		if err := compose.Validate(ctx, data, inputDir(cfg.Input), ambient); err != nil {
			reportError(err)
			return nil, nil, err
		}
	}

	doc, err := compose.Load(data)
	if err != nil {
		reportError(err)
		return nil, nil, err
	}
	return doc, ambient, nil
}

func conversionOptions(cfg *config.Config) (convert.Options, error) {
	overrides, err := cfg.Overrides()
	if err != nil {
		return convert.Options{}, err
	}
	return convert.Options{
		IncludeNetworks:       cfg.IncludeNetworks,
		IncludeVolumes:        cfg.IncludeVolumes,
		SubstituteEnvironment: cfg.SubstituteEnvironment,
		TypeOverrides:         overrides,
		Strict:                cfg.Strict,
		Logger:                logrus.StandardLogger(),
	}, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if inputFile != "" {
		cfg.Input = inputFile
	}
	if outputFile != "" {
		cfg.Output = outputFile
	}
	if projectName != "" {
		cfg.ProjectName = projectName
	}
	if len(envFiles) > 0 {
		cfg.EnvFiles = append(cfg.EnvFiles, envFiles...)
	}
	if flags.Changed("no-networks") {
		cfg.IncludeNetworks = !noNetworks
	}
	if flags.Changed("no-volumes") {
		cfg.IncludeVolumes = !noVolumes
	}
	if flags.Changed("no-env-substitution") {
		cfg.SubstituteEnvironment = !noSubstitution
	}
	if flags.Changed("pretty") {
		cfg.Pretty = prettyOutput
	}
	if flags.Changed("strict") {
		cfg.Strict = strictMode
	}
	if flags.Changed("template") {
		cfg.Template = templateInput
	}
	if flags.Changed("validate") {
		cfg.Validate = validateCompose
	}
	for _, o := range typeOverrides {
		parts := splitColonPair(o)
		if parts[0] == "" || parts[1] == "" {
			return fmt.Errorf("--type %q: expected service:type", o)
		}
		if _, ok := model.ParseServiceKind(parts[1]); !ok {
			return fmt.Errorf("--type %q: unknown service type %q", o, parts[1])
		}
		if cfg.TypeOverrides == nil {
			cfg.TypeOverrides = make(map[string]string)
		}
		cfg.TypeOverrides[parts[0]] = parts[1]
	}
	return nil
}

func splitColonPair(s string) [2]string {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			return [2]string{s[:i], s[i+1:]}
		}
	}
	return [2]string{s, ""}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(util.ExpandPath(path))
}

func inputDir(path string) string {
	if path == "-" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	return filepath.Dir(util.ExpandPath(path))
}

func printDiagnostics(diags []convert.Diagnostic) {
	for _, d := range diags {
		location := d.Service
		if d.Field != "" {
			location += "." + d.Field
		}
		ui.Diagnostic(os.Stderr, string(d.Severity), location, d.Message)
	}
}

// reportError prints a styled message for the error classes the converter
// returns.
func reportError(err error) {
	var (
		syntaxErr *compose.SyntaxError
		parseErr  *compose.ParseError
		validErr  *convert.ValidationError
	)
	switch {
	case errors.As(err, &syntaxErr):
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid YAML", syntaxErr.Err.Error(), "check indentation and quoting"))
	case errors.As(err, &validErr):
		fmt.Fprint(os.Stderr, ui.FormatError(
			fmt.Sprintf("Service %q is invalid", validErr.Service),
			validErr.Field+": "+validErr.Message,
			"fix the field or rerun without --strict to drop the service",
		))
	case errors.As(err, &parseErr):
		hint := ""
		switch {
		case errors.Is(err, compose.ErrNoServices):
			hint = "add at least one entry under services:"
		case errors.Is(err, compose.ErrInvalidCompose):
			hint = "run without --validate to convert anyway"
		}
		fmt.Fprint(os.Stderr, ui.FormatError("Invalid compose file", parseErr.Error(), hint))
	default:
		fmt.Fprint(os.Stderr, ui.FormatError("Conversion failed", err.Error(), ""))
	}
}
