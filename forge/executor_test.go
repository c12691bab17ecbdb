package forge_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/anvil/forge"
)

func TestExecute_DryRun(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.txt")

	ops := []forge.Operation{forge.At(path, forge.NewGenerate(text("hello")))}

	var buf bytes.Buffer
	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{
		DryRun: true,
		Writer: &buf,
	})
	require.NoError(t, err)

	// File should NOT be created
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "dry run created file")
	assert.Contains(t, buf.String(), "[DRY RUN] Create "+path)
}

func TestExecute_DryRunPreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.txt")
	writeFile(t, path, "GET /\n")

	ops := []forge.Operation{forge.At(path, forge.NewAppend(text("POST /users\n")))}

	var buf bytes.Buffer
	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{
		DryRun:  true,
		Preview: true,
		Writer:  &buf,
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "[DRY RUN] Append to "+path)
	assert.Contains(t, buf.String(), "POST /users")
	assert.Equal(t, "GET /\n", readFile(t, path))
}

func TestExecute_RealRun(t *testing.T) {
	tmpDir := t.TempDir()
	created := filepath.Join(tmpDir, "new.txt")
	appended := filepath.Join(tmpDir, "existing.txt")
	writeFile(t, appended, "Initial content.\n")

	ops := []forge.Operation{
		forge.At(created, forge.NewGenerate(text("Generated content."))),
		forge.At(appended, forge.NewAppend(text("Appended content."))),
	}

	var buf bytes.Buffer
	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &buf})
	require.NoError(t, err)

	assert.Equal(t, "Generated content.", readFile(t, created))
	assert.Equal(t, "Initial content.\nAppended content.", readFile(t, appended))
	assert.Contains(t, buf.String(), "✓ Create "+created)
	assert.Contains(t, buf.String(), "✓ Append to "+appended)
}

func TestExecute_ValidationFailureRunsNothing(t *testing.T) {
	tmpDir := t.TempDir()
	fresh := filepath.Join(tmpDir, "fresh.txt")
	existing := filepath.Join(tmpDir, "existing.txt")
	writeFile(t, existing, "old")

	ops := []forge.Operation{
		forge.At(fresh, forge.NewGenerate(text("new"))),
		forge.At(existing, forge.NewGenerate(text("new"))),
	}

	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.Contains(t, err.Error(), "validation failed")

	_, statErr := os.Stat(fresh)
	assert.True(t, os.IsNotExist(statErr), "no operation should run when validation fails")
	assert.Equal(t, "old", readFile(t, existing))
}

func TestExecute_AppendToMissingFileFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	ops := []forge.Operation{forge.At(path, forge.NewAppend(text("x")))}
	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestExecute_RollsBackOnFailure(t *testing.T) {
	tmpDir := t.TempDir()
	created := filepath.Join(tmpDir, "created.txt")
	appended := filepath.Join(tmpDir, "appended.txt")
	failing := filepath.Join(tmpDir, "failing.txt")
	writeFile(t, appended, "base\n")

	ops := []forge.Operation{
		forge.At(created, forge.NewGenerate(text("created"))),
		forge.At(appended, forge.NewAppend(text("more\n"))),
		forge.At(failing, forge.NewGenerate(broken{prefix: "half"})),
	}

	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
	assert.Contains(t, err.Error(), "execution failed")

	for _, path := range []string{created, failing} {
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), "%s should be rolled back", path)
	}
	assert.Equal(t, "base\n", readFile(t, appended))
}

func TestExecute_GenerateThenAppendSameFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.go")

	ops := []forge.Operation{
		forge.At(path, forge.NewGenerate(text("package routes\n"))),
		forge.At(path, forge.NewAppend(text("GET /users\n"))),
	}

	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.Equal(t, "package routes\nGET /users\n", readFile(t, path))
}

func TestExecute_GenerateThenAppendRollsBackTogether(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "routes.go")

	ops := []forge.Operation{
		forge.At(path, forge.NewGenerate(text("package routes\n"))),
		forge.At(path, forge.NewAppend(text("GET /users\n"))),
		forge.At(filepath.Join(tmpDir, "bad.go"), forge.NewGenerate(broken{})),
	}

	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, errBroken)
	assert.NoFileExists(t, path)
}

func TestExecute_GenerateTwiceInOneRunFailsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.go")

	ops := []forge.Operation{
		forge.At(path, forge.NewGenerate(text("a"))),
		forge.At(filepath.Join(filepath.Dir(path), ".", "model.go"), forge.NewGenerate(text("b"))),
	}

	err := forge.Execute(context.Background(), ops, forge.ExecuteOptions{Writer: &bytes.Buffer{}})
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.NoFileExists(t, path)
}
