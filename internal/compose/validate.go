package compose

import (
	"context"
	"os"
	"strings"

	"github.com/compose-spec/compose-go/v2/dotenv"
	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// Validate runs the document through the compose-spec loader. It catches
// problems the converter itself tolerates, such as references to undeclared
// networks or unknown service keys.
func Validate(ctx context.Context, input []byte, workingDir string, env map[string]string) error {
	var dict map[string]any
	if err := yaml.Unmarshal(input, &dict); err != nil {
		return &SyntaxError{Err: err}
	}
	if dict == nil {
		return NewParseError("", "compose document is empty", ErrEmptyInput)
	}

	_, err := loader.LoadWithContext(ctx, types.ConfigDetails{
		WorkingDir: workingDir,
		ConfigFiles: []types.ConfigFile{
			{
				Filename: "compose.yml",
				Content:  input,
				Config:   dict,
			},
		},
		Environment: types.Mapping(env),
	}, func(opts *loader.Options) {
		opts.SetProjectName("compose2easypanel", false)
		opts.SkipNormalization = true
		opts.SkipExtends = true
		opts.SkipInclude = true
		opts.SkipResolveEnvironment = true
	})
	if err != nil {
		return NewParseError("", err.Error(), ErrInvalidCompose)
	}
	return nil
}

// ReadEnvFiles reads dotenv files in order; later files override earlier
// ones.
func ReadEnvFiles(files ...string) (map[string]string, error) {
	if len(files) == 0 {
		return map[string]string{}, nil
	}
	return dotenv.Read(files...)
}

// AmbientEnv builds the variable source used for ${VAR} substitution: the
// given env files overlaid by the process environment.
func AmbientEnv(files ...string) (map[string]string, error) {
	vars, err := ReadEnvFiles(files...)
	if err != nil {
		return nil, err
	}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars, nil
}
