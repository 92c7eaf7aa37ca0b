package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drakedevel/eagle-tools/pkg/eagle"
)

func TestExtractLibrariesRejectsTraversingNames(t *testing.T) {
	input := `<eagle version="9.6.2"><drawing><schematic>
		<libraries>
			<library name="../evil">
				<devicesets/>
			</library>
		</libraries>
		<parts/>
	</schematic></drawing></eagle>`

	doc, err := eagle.Parse(strings.NewReader(input))
	require.NoError(t, err)

	parent := t.TempDir()
	out := filepath.Join(parent, "out")
	err = extractLibraries(doc, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"../evil"`)

	// Nothing may appear outside the output directory.
	_, statErr := os.Stat(filepath.Join(parent, "evil.lbr"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractPath(t *testing.T) {
	path, err := extractPath("out", "passives")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "passives.lbr"), path)

	for _, name := range []string{"", ".", "..", "../evil", "a/b", `a\b`} {
		_, err := extractPath("out", name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestWriteLibrary(t *testing.T) {
	doc, err := eagle.Parse(strings.NewReader(testSchematic))
	require.NoError(t, err)
	lib := doc.Schematic.Libraries[eagle.LibraryRef{Name: "passives"}]
	require.NotNil(t, lib)

	path := filepath.Join(t.TempDir(), "passives.lbr")
	require.NoError(t, writeLibrary(path, doc.Version, lib))

	// The extracted file is a standalone library document that parses on
	// its own and carries the same device sets.
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	extracted, err := eagle.Parse(f)
	require.NoError(t, err)
	require.Equal(t, eagle.KindLibrary, extracted.Kind)
	assert.Equal(t, "9.6.2", extracted.Version)
	assert.Contains(t, extracted.Library.DeviceSets, "R?")

	ds := extracted.Library.DeviceSets["R?"]
	require.Contains(t, ds.Devices, "-0603")
	assert.Equal(t, map[string]string{"MPN": "X1", "TOL": "1%"},
		ds.Devices["-0603"].Technologies["1%"].Attributes)
}
