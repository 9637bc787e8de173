package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Toplogic-Inc/log-surgeon-go/lserr"
)

const sampleSchema = `
timestamp:
  - "\\d{4}-\\d{2}-\\d{2}T\\d{2}:\\d{2}:\\d{2}\\.\\d{2}"
variables:
  int: "\\-{0,1}\\d+"
  hex: "(0x){0,1}([\\da-f]+|[\\dA-F]+)"
delimiters: " ,:"
`

func writeSchema(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadValidSchema(t *testing.T) {
	path := writeSchema(t, sampleSchema)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.TSPatterns, 1)
	assert.Equal(t, []string{"int", "hex"}, cfg.VarNames)
	assert.True(t, cfg.Delimiters[' '])
	assert.True(t, cfg.Delimiters[','])
	assert.True(t, cfg.Delimiters[':'])
	assert.True(t, cfg.Delimiters['\n'], "newline must always be forced in")
	assert.False(t, cfg.Delimiters['x'])
}

func TestVariableOrderPreserved(t *testing.T) {
	path := writeSchema(t, `
timestamp: []
variables:
  zeta: "z"
  alpha: "a"
  middle: "m"
delimiters: " "
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "middle"}, cfg.VarNames)
}

func TestMissingKeyErrors(t *testing.T) {
	cases := []string{
		"variables: {}\ndelimiters: \" \"\n",
		"timestamp: []\ndelimiters: \" \"\n",
		"timestamp: []\nvariables: {}\n",
	}
	for _, contents := range cases {
		path := writeSchema(t, contents)
		_, err := Load(path)
		require.Error(t, err)
		assert.True(t, lserr.Is(err, lserr.MissingSchemaKey))
	}
}

func TestInvalidYAMLSurfacesYAMLParse(t *testing.T) {
	path := writeSchema(t, "timestamp: [\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, lserr.Is(err, lserr.YAMLParse))
}

func TestBadPatternPropagatesRegexKind(t *testing.T) {
	path := writeSchema(t, `
timestamp: []
variables:
  broken: "[^a]"
delimiters: " "
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, lserr.Is(err, lserr.NegatedClass))
}

func TestNonASCIIDelimiterRejected(t *testing.T) {
	path := writeSchema(t, "timestamp: []\nvariables: {}\ndelimiters: \"\xc3\xa9\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, lserr.Is(err, lserr.NonASCIICharacter))
}
