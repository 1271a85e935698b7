package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExporter_ExportJSON(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("error creating exporter: %v", err)
	}

	type row struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	path, err := exporter.ExportJSON("cars", []row{{1, "Argo"}, {2, "Onix"}})
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "cars_"))
	assert.True(t, strings.HasSuffix(path, ".json"))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)

	var decoded []row
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "Onix", decoded[1].Name)
}

func TestExporter_ExportCSV(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	if err != nil {
		t.Fatalf("error creating exporter: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		path, err := exporter.ExportCSV("fleet",
			[]string{"id", "plate"},
			[][]string{{"1", "ABC1234"}, {"2", "ABC1D23"}},
		)
		assert.NoError(t, err)

		raw, err := os.ReadFile(path)
		assert.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, "id,plate", lines[0])
	})

	t.Run("EmptyRows", func(t *testing.T) {
		_, err := exporter.ExportCSV("fleet", []string{"id"}, nil)
		assert.Error(t, err)
	})
}

func TestNewExporter_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")
	_, err := NewExporter(dir)
	assert.NoError(t, err)

	info, err := os.Stat(dir)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}
