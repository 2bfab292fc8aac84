package wizard

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/ThomasCrouzet/compose2easypanel/internal/util"
	"github.com/charmbracelet/huh"
)

// Run executes the interactive wizard and returns the user's answers.
func Run(detection DetectionResult, workDir string) (*WizardAnswers, error) {
	input, isTemplate := detection.DefaultInput()
	answers := &WizardAnswers{
		Input:                 input,
		Output:                "schema.json",
		ProjectName:           util.SanitizeName(filepath.Base(workDir)),
		Template:              isTemplate,
		EnvFiles:              detection.EnvFiles,
		IncludeNetworks:       true,
		IncludeVolumes:        true,
		SubstituteEnvironment: true,
		Pretty:                true,
	}

	var hints []string
	if len(detection.ComposeFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Compose files found: %s", strings.Join(detection.ComposeFiles, ", ")))
	}
	if len(detection.TemplateFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Jinja2 templates found: %s", strings.Join(detection.TemplateFiles, ", ")))
	}
	if len(detection.EnvFiles) > 0 {
		hints = append(hints, fmt.Sprintf("Env files found: %s", strings.Join(detection.EnvFiles, ", ")))
	}

	desc := "Path to the compose file to convert."
	if len(hints) > 0 {
		desc += "\n\nAuto-detected:\n  " + strings.Join(hints, "\n  ")
	}

	var (
		envFiles  = strings.Join(answers.EnvFiles, ", ")
		overrides string
		sections  = []string{"networks", "volumes"}
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Compose file").
				Description(desc).
				Value(&answers.Input),
			huh.NewConfirm().
				Title("Is this a Jinja2 template?").
				Description("{{ ... }} expressions are replaced with PLACEHOLDER before parsing").
				Value(&answers.Template),
			huh.NewInput().
				Title("Env files (optional)").
				Description("Comma-separated dotenv files used for ${VAR} substitution").
				Value(&envFiles),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("EasyPanel project name").
				Description("Leave empty to use the compose name or my-project").
				Value(&answers.ProjectName),
			huh.NewInput().
				Title("Output file").
				Value(&answers.Output),
			huh.NewMultiSelect[string]().
				Title("Top-level sections to include").
				Options(
					huh.NewOption("Networks", "networks").Selected(true),
					huh.NewOption("Volumes", "volumes").Selected(true),
				).
				Value(&sections),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Service type overrides (optional)").
				Description("Comma-separated service:type pairs, e.g. cache:redis").
				Validate(validateOverrides).
				Value(&overrides),
			huh.NewConfirm().
				Title("Substitute ${VAR} references?").
				Value(&answers.SubstituteEnvironment),
			huh.NewConfirm().
				Title("Abort on the first invalid service?").
				Description("Otherwise invalid services are dropped and reported").
				Value(&answers.Strict),
			huh.NewConfirm().
				Title("Check against the compose specification first?").
				Value(&answers.Validate),
			huh.NewConfirm().
				Title("Indent the JSON output?").
				Value(&answers.Pretty),
		),
	)

	if err := form.Run(); err != nil {
		return nil, err
	}

	answers.EnvFiles = splitList(envFiles)
	answers.IncludeNetworks = contains(sections, "networks")
	answers.IncludeVolumes = contains(sections, "volumes")
	answers.TypeOverrides, _ = ParseOverrides(overrides)

	return answers, nil
}

// ParseOverrides parses "service:type, service:type" into a map.
func ParseOverrides(s string) (map[string]string, error) {
	items := splitList(s)
	if len(items) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(items))
	for _, item := range items {
		service, kind, ok := strings.Cut(item, ":")
		service, kind = strings.TrimSpace(service), strings.TrimSpace(kind)
		if !ok || service == "" {
			return nil, fmt.Errorf("%q: expected service:type", item)
		}
		parsed, ok := model.ParseServiceKind(kind)
		if !ok {
			return nil, fmt.Errorf("%q: unknown service type %q", item, kind)
		}
		out[service] = string(parsed)
	}
	return out, nil
}

func validateOverrides(s string) error {
	_, err := ParseOverrides(s)
	return err
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func contains(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
