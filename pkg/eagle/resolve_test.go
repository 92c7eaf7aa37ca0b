package eagle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePart(t *testing.T) {
	sch := parseSchematicDoc(t)

	resolved, err := sch.ResolvePart(sch.Parts["R1"])
	require.NoError(t, err)
	assert.Same(t, sch.Libraries[LibraryRef{Name: "passives"}], resolved.Library)
	assert.Equal(t, "R?", resolved.DeviceSet.Name)
	assert.Equal(t, "-0603", resolved.Device.Name)
	assert.Equal(t, "1%", resolved.Technology.Name)
	assert.Equal(t, "R-06031%", resolved.Name())
}

func TestResolvePartByURN(t *testing.T) {
	sch := parseSchematicDoc(t)

	resolved, err := sch.ResolvePart(sch.Parts["C1"])
	require.NoError(t, err)
	assert.Equal(t, "urn:adsk.eagle:library:2", resolved.Library.URN)
	assert.Equal(t, "C?", resolved.DeviceSet.Name)
	assert.Equal(t, "", resolved.Technology.Name)
	assert.Equal(t, "C-0603", resolved.Name())
}

func TestResolvePartMissingLibrary(t *testing.T) {
	sch := parseSchematicDoc(t)

	// U1 references a library the schematic does not embed; parsing
	// succeeded anyway, only resolution fails.
	_, err := sch.ResolvePart(sch.Parts["U1"])
	require.ErrorIs(t, err, ErrUnresolvedReference)
	assert.Contains(t, err.Error(), `library "logic"`)
}

func TestResolvePartMissingSegments(t *testing.T) {
	sch := parseSchematicDoc(t)
	base := *sch.Parts["R1"]

	tests := []struct {
		name    string
		mutate  func(p *Part)
		segment string
	}{
		{name: "deviceset", mutate: func(p *Part) { p.DeviceSet = "L?" }, segment: `deviceset "L?"`},
		{name: "device", mutate: func(p *Part) { p.Device = "-1206" }, segment: `device "-1206"`},
		{name: "technology", mutate: func(p *Part) { p.Technology = "10%" }, segment: `technology "10%"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			part := base
			tt.mutate(&part)
			_, err := sch.ResolvePart(&part)
			require.ErrorIs(t, err, ErrUnresolvedReference)
			assert.Contains(t, err.Error(), tt.segment)
		})
	}
}

func TestEffectiveAttributes(t *testing.T) {
	sch := parseSchematicDoc(t)

	resolved, err := sch.ResolvePart(sch.Parts["R1"])
	require.NoError(t, err)

	// Technology {MPN: X1, TOL: 1%} overlaid by part {MPN: X2}.
	assert.Equal(t, map[string]string{"MPN": "X2", "TOL": "1%"}, resolved.EffectiveAttributes())

	// The shared technology attributes are untouched by the overlay.
	assert.Equal(t, map[string]string{"MPN": "X1", "TOL": "1%"}, resolved.Technology.Attributes)
}

func TestEffectiveAttributesWithoutOverrides(t *testing.T) {
	sch := parseSchematicDoc(t)

	resolved, err := sch.ResolvePart(sch.Parts["C1"])
	require.NoError(t, err)
	assert.Empty(t, resolved.EffectiveAttributes())
}
