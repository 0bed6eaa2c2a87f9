package waste

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTablesEmptyPath(t *testing.T) {
	tables, fromFile, err := LoadTables("  ")
	require.NoError(t, err)
	assert.False(t, fromFile)
	if diff := cmp.Diff(DefaultTables(), tables); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDefaultRulesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "rules.json")
	created, err := WriteDefaultRules(path)
	require.NoError(t, err)
	assert.True(t, created)

	tables, fromFile, err := LoadTables(path)
	require.NoError(t, err)
	assert.True(t, fromFile)
	if diff := cmp.Diff(DefaultTables(), tables); diff != "" {
		t.Fatalf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteDefaultRulesKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	custom := []byte(`{"mappings":[{"key":"widget","category":"E-waste"}]}`)
	require.NoError(t, os.WriteFile(path, custom, 0o644))

	created, err := WriteDefaultRules(path)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestLoadTablesPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "mappings": [
    {"key": "widget", "category": "e_waste"},
    {"key": "compost heap", "category": "Organic / Compost"}
  ]
}`), 0o644))

	tables, fromFile, err := LoadTables(path)
	require.NoError(t, err)
	assert.True(t, fromFile)
	want := []Mapping{{Key: "widget", Category: EWaste}, {Key: "compost heap", Category: Organic}}
	if diff := cmp.Diff(want, tables.Mappings); diff != "" {
		t.Fatalf("mappings mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultTables().Keywords, tables.Keywords); diff != "" {
		t.Fatalf("keywords should fall back to defaults (-want +got):\n%s", diff)
	}

	r, fromFile, err := LoadResolver(path)
	require.NoError(t, err)
	assert.True(t, fromFile)
	assert.Equal(t, EWaste, r.Resolve("Widget"))
	// "water bottle" is no longer a mapping key, but "bottle" is still a Plastic keyword.
	assert.Equal(t, PassKeyword, r.Explain("water bottle").Pass)
	assert.Equal(t, Plastic, r.Resolve("water bottle"))
}

func TestLoadTablesExplicitEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mappings": [], "keywords": [{"keywords": ["thing"], "category": "metal"}]}`), 0o644))
	r, _, err := LoadResolver(path)
	require.NoError(t, err)
	assert.Empty(t, r.Tables().Mappings)
	assert.Equal(t, Metal, r.Resolve("some thing"))
	assert.Equal(t, NonRecyclable, r.Resolve("banana"))
}

func TestLoadTablesInvalidCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mappings":[{"key":"x","category":"Lava"}]}`), 0o644))
	_, fromFile, err := LoadTables(path)
	assert.ErrorContains(t, err, "decode rules")
	assert.False(t, fromFile)

	r, _, err := LoadResolver(path)
	assert.Error(t, err)
	assert.Same(t, DefaultResolver(), r)
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, _, err := LoadTables(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read rules")
}

func TestWriteDefaultRulesEmptyPath(t *testing.T) {
	_, err := WriteDefaultRules("")
	assert.Error(t, err)
}
