package place

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const typesYAML = `
groups:
  - key: ADM
    name: Administrative
types:
  - id: -1001
    name: Landkreis
    groups: [Region, ADM]
  - id: -1002
    name: City
    groups: [Place]
  - id: -1003
    name: Flur
    hidden: true
`

func TestLoadTypesYAML(t *testing.T) {
	require := require.New(t)
	reg := NewRegistry()

	n, err := reg.LoadTypesYAML([]byte(typesYAML))
	require.NoError(err)
	require.Equal(3, n)

	adm, ok := reg.LookupGroup("administrative")
	require.True(ok)
	require.Equal(Group(1)<<6, adm)

	lk := reg.Resolve(-1001)
	require.Equal("Landkreis", lk.Name)
	require.Equal(GroupRegion|adm, lk.Groups)
	require.Equal("City1002", reg.Resolve(-1002).Name)
	require.False(reg.Resolve(-1003).Visible)

	n, err = reg.LoadTypesYAML([]byte(typesYAML))
	require.NoError(err)
	require.Equal(0, n)
}

func TestLoadTypesYAMLErrors(t *testing.T) {
	reg := NewRegistry()
	for _, in := range []string{
		"types: [{id: 5, name: Fifth}]",
		"types: [{id: -5, name: A}, {id: -5, name: B}]",
		"groups: [{name: Keyless}]",
		"types: nope",
	} {
		_, err := reg.LoadTypesYAML([]byte(in))
		require.Error(t, err, in)
	}
}

func TestLoadTypesDir(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()
	require.NoError(os.MkdirAll(filepath.Join(dir, "de"), 0o755))
	require.NoError(os.WriteFile(filepath.Join(dir, "de", "kreise.yml"), []byte(typesYAML), 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, "nl.yaml"), []byte("types: [{id: -2001, name: Gemeente}]"), 0o600))
	require.NoError(os.WriteFile(filepath.Join(dir, "README.md"), []byte("not yaml: ["), 0o600))

	reg := NewRegistry()
	n, err := reg.LoadTypes(dir)
	require.NoError(err)
	require.Equal(4, n)
	got, ok := reg.Lookup("Gemeente")
	require.True(ok)
	require.Equal(-2001, got.Value)
}
