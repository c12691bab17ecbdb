package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		want    Data
	}{
		{"yaml", "data.yaml", "name: blog_post\nfields:\n  - title\n", Data{"name": "blog_post", "fields": []any{"title"}}},
		{"yml", "data.yml", "count: 3\n", Data{"count": 3}},
		{"json", "data.json", `{"name": "user"}`, Data{"name": "user"}},
		{"env", "app.env", "APP_NAME=shop\n# comment\nPORT=8080\n", Data{"APP_NAME": "shop", "PORT": "8080"}},
		{"dotenv", ".env", "APP_NAME=shop\n", Data{"APP_NAME": "shop"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadFile(write(t, dir, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(write(t, dir, "data.toml", "a = 1"))
	assert.ErrorContains(t, err, "unsupported data file")

	_, err = LoadFile(write(t, dir, "bad.yaml", "a: [1, 2"))
	assert.Error(t, err)
}

func TestParseInline(t *testing.T) {
	got, err := ParseInline([]string{"name=user", "route=/a=b", " spaced =x"})
	require.NoError(t, err)
	assert.Equal(t, Data{"name": "user", "route": "/a=b", "spaced": "x"}, got)

	_, err = ParseInline([]string{"novalue"})
	assert.Error(t, err)

	_, err = ParseInline([]string{"=x"})
	assert.Error(t, err)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	first := write(t, dir, "a.yaml", "name: first\nkeep: true\n")
	second := write(t, dir, "b.env", "name=second\n")

	got, err := Load([]string{first, "", second}, []string{"extra=1"})
	require.NoError(t, err)

	assert.Equal(t, "second", got["name"])
	assert.Equal(t, true, got["keep"])
	assert.Equal(t, "1", got["extra"])
}
