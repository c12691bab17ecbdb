package forge_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/anvil/forge"
)

// text is a payload that writes itself verbatim.
type text string

func (t text) Anvil(w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

// broken writes a prefix and then fails.
type broken struct{ prefix string }

var errBroken = errors.New("payload broke")

func (b broken) Anvil(w io.Writer) error {
	if _, err := io.WriteString(w, b.prefix); err != nil {
		return err
	}
	return errBroken
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestAppend_FailsIfFileDoesNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my-temporary-note.txt")

	err := forge.NewAppend(text("Appended content.")).Forge(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "append must not create the file")
}

func TestAppend_AppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my-temporary-note.txt")
	writeFile(t, path, "Initial content.\n")

	err := forge.NewAppend(text("Appended content.")).Forge(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Initial content.\nAppended content.", readFile(t, path))
}

func TestAppend_PayloadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	writeFile(t, path, "keep\n")

	err := forge.NewAppend(broken{}).Forge(context.Background(), path)
	assert.ErrorIs(t, err, errBroken)
	assert.Equal(t, "keep\n", readFile(t, path))
}

func TestGenerate_FailsIfPathAlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my-temporary-note.txt")
	writeFile(t, path, "Initial content.\n")

	err := forge.NewGenerate(text("Generated content.")).Forge(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrExist)

	assert.Equal(t, "Initial content.\n", readFile(t, path))
}

func TestGenerate_GeneratesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my-temporary-note.txt")

	err := forge.NewGenerate(text("Generated content.")).Forge(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Generated content.", readFile(t, path))
}

func TestGenerate_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal", "models", "user.go")

	err := forge.NewGenerate(text("package models\n")).Forge(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "package models\n", readFile(t, path))
}

func TestGenerate_RemovesFileOnPayloadError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.txt")

	err := forge.NewGenerate(broken{prefix: "half"}).Forge(context.Background(), path)
	assert.ErrorIs(t, err, errBroken)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "partial file should be removed")
}

func TestGenerate_WithMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")

	err := forge.NewGenerate(text("#!/bin/sh\n")).WithMode(0755).Forge(context.Background(), path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0100, "owner execute bit should be set")
}

func TestForge_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "never.txt")
	err := forge.NewGenerate(text("x")).Forge(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSteps_KindAndPayload(t *testing.T) {
	a := forge.NewAppend(text("a"))
	g := forge.NewGenerate(text("g"))

	assert.Equal(t, forge.KindAppend, a.Kind())
	assert.Equal(t, forge.KindGenerate, g.Kind())
	assert.Equal(t, text("a"), a.Payload())
	assert.Equal(t, text("g"), g.Payload())
}
