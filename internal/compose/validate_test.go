package compose

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	err := Validate(ctx, []byte("services:\n  web:\n    image: nginx\n    ports: [\"8080:80\"]\n"), dir, nil)
	assert.NoError(t, err)

	err = Validate(ctx, []byte("services:\n  web:\n    image: nginx\n    not_a_compose_key: true\n"), dir, nil)
	assert.ErrorIs(t, err, ErrInvalidCompose)

	err = Validate(ctx, []byte(""), dir, nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestReadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "base.env")
	second := filepath.Join(dir, "local.env")
	require.NoError(t, os.WriteFile(first, []byte("A=1\nB=base\n# comment\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("B=local\nC=\"quoted value\"\n"), 0o644))

	vars, err := ReadEnvFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, "1", vars["A"])
	assert.Equal(t, "local", vars["B"])
	assert.Equal(t, "quoted value", vars["C"])

	empty, err := ReadEnvFiles()
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ReadEnvFiles(filepath.Join(dir, "missing.env"))
	assert.Error(t, err)
}

func TestAmbientEnvPrefersProcessEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("C2E_TEST_VAR=from-file\nC2E_ONLY_FILE=yes\n"), 0o644))
	t.Setenv("C2E_TEST_VAR", "from-process")

	vars, err := AmbientEnv(file)
	require.NoError(t, err)
	assert.Equal(t, "from-process", vars["C2E_TEST_VAR"])
	assert.Equal(t, "yes", vars["C2E_ONLY_FILE"])
}
