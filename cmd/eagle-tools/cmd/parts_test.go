package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/drakedevel/eagle-tools/pkg/eagle"
)

const testSchematic = `<eagle version="9.6.2">
  <drawing>
    <schematic>
      <libraries>
        <library name="passives">
          <devicesets>
            <deviceset name="R?">
              <devices>
                <device name="-0603" package="0603">
                  <technologies>
                    <technology name="1%">
                      <attribute name="MPN" value="X1"/>
                      <attribute name="TOL" value="1%"/>
                    </technology>
                  </technologies>
                </device>
              </devices>
            </deviceset>
          </devicesets>
        </library>
      </libraries>
      <parts>
        <part name="R2" library="passives" deviceset="R?" device="-0603" technology="1%"/>
        <part name="R1" library="passives" deviceset="R?" device="-0603" technology="1%">
          <attribute name="MPN" value="X2"/>
        </part>
      </parts>
    </schematic>
  </drawing>
</eagle>`

func parseTestSchematic(t *testing.T) *eagle.Schematic {
	t.Helper()
	doc, err := eagle.Parse(strings.NewReader(testSchematic))
	require.NoError(t, err)
	require.Equal(t, eagle.KindSchematic, doc.Kind)
	return doc.Schematic
}

func TestBuildPartRows(t *testing.T) {
	rows, err := buildPartRows(parseTestSchematic(t), false)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by part name.
	assert.Equal(t, "R1", rows[0].Part)
	assert.Equal(t, "R2", rows[1].Part)
	assert.Equal(t, "passives", rows[0].Library)
	assert.Equal(t, "R-06031%", rows[0].Device)
	assert.Nil(t, rows[0].Attributes)
}

func TestBuildPartRowsResolved(t *testing.T) {
	rows, err := buildPartRows(parseTestSchematic(t), true)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, map[string]string{"MPN": "X2", "TOL": "1%"}, rows[0].Attributes)
	assert.Equal(t, map[string]string{"MPN": "X1", "TOL": "1%"}, rows[1].Attributes)
}

func TestBuildPartRowsUnresolved(t *testing.T) {
	sch := parseTestSchematic(t)
	sch.Parts["R1"].Technology = "10%"

	_, err := buildPartRows(sch, true)
	require.ErrorIs(t, err, eagle.ErrUnresolvedReference)
}

func TestWriteYAML(t *testing.T) {
	rows, err := buildPartRows(parseTestSchematic(t), true)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeYAML(&buf, rows))

	var decoded []partRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rows, decoded)
}

func TestWriteYAMLPropagatesWriteErrors(t *testing.T) {
	rows, err := buildPartRows(parseTestSchematic(t), false)
	require.NoError(t, err)

	require.Error(t, writeYAML(failWriter{}, rows))
}

type failWriter struct{}

func (failWriter) Write(p []byte) (int, error) {
	return 0, errors.New("write failed")
}

func TestFormatAttributes(t *testing.T) {
	assert.Equal(t, "", formatAttributes(nil))
	assert.Equal(t, "MPN=X2,TOL=1%", formatAttributes(map[string]string{"TOL": "1%", "MPN": "X2"}))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "", summary(""))
	assert.Equal(t, "one line", summary("one line"))
	assert.Equal(t, "first ...", summary("first\nsecond"))
	assert.Equal(t, "first ...", summary("\n\n  first  \nsecond"))
}
