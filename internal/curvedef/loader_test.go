package curvedef

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validYAML = `name: test curve
formula: y=f(x)
decimals: 2
points:
  - {x: 0, y: 200}
  - {x: 2, y: 300}
  - {x: 4, y: 400}
  - {x: 6, y: 700}
  - {x: 8, y: 1000000000}
`

func TestLoadYAML_Valid(t *testing.T) {
	def, err := LoadYAML(writeFile(t, "curve.yaml", validYAML))
	require.NoError(t, err)

	assert.Equal(t, "test curve", def.Name)
	assert.Equal(t, "y=f(x)", def.Formula)
	assert.Equal(t, uint8(2), def.Decimals)
	require.Len(t, def.Points, 5)
	assert.Equal(t, Point{X: 8, Y: 1_000_000_000}, def.Points[4])
}

func TestLoadYAML_ParamsMatchGeometry(t *testing.T) {
	def, err := LoadYAML(writeFile(t, "curve.yaml", validYAML))
	require.NoError(t, err)

	params, err := def.Params()
	require.NoError(t, err)
	require.NoError(t, curve.CheckParams(params))

	assert.Equal(t, uint32(0), params.X0)
	assert.Equal(t, uint32(2), params.XStep)
	assert.Equal(t, uint8(5), params.YCount)
	assert.Equal(t, uint32(700), params.Y[3])
}

func TestLoadYAML_SchemaRejectsBadShape(t *testing.T) {
	cases := map[string]string{
		"decimals out of range": strings.Replace(validYAML, "decimals: 2", "decimals: 12", 1),
		"negative x":            strings.Replace(validYAML, "{x: 0, y: 200}", "{x: -1, y: 200}", 1),
		"non-numeric y":         strings.Replace(validYAML, "y: 300", "y: some", 1),
		"missing points":        "name: a\ndecimals: 2\n",
	}
	for name, content := range cases {
		_, err := LoadYAML(writeFile(t, "curve.yaml", content))
		assert.Error(t, err, name)
	}
}

func TestLoadYAML_ValidatorRejectsOverlongName(t *testing.T) {
	content := strings.Replace(validYAML, "test curve", strings.Repeat("n", 17), 1)
	_, err := LoadYAML(writeFile(t, "curve.yaml", content))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "points.csv", "x,f_x\n0,200\n2,300\n4,400\n")

	points, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 200}, {2, 300}, {4, 400}}, points)
}

func TestLoadCSV_NoHeader(t *testing.T) {
	points, err := LoadCSV(writeFile(t, "points.csv", "0,200\n2,300\n"))
	require.NoError(t, err)
	assert.Len(t, points, 2)
}

func TestParams_RejectsTooFewPoints(t *testing.T) {
	def := &Definition{Name: "a", Points: []Point{{0, 1}}}
	_, err := def.Params()
	assert.ErrorIs(t, err, ErrTooFewPoints)
}

func TestParams_RejectsTooManyPoints(t *testing.T) {
	// One point past the limit: rejected, never truncated.
	def := &Definition{Name: "a"}
	for i := 0; i <= curve.MaxYCount; i++ {
		def.Points = append(def.Points, Point{X: uint32(i), Y: 1})
	}
	_, err := def.Params()
	assert.ErrorIs(t, err, ErrTooManyPoints)
}

func TestParams_RejectsNonUniformSpacing(t *testing.T) {
	def := &Definition{Name: "a", Points: []Point{{0, 1}, {2, 2}, {5, 3}}}
	_, err := def.Params()
	assert.ErrorIs(t, err, ErrNonUniform)

	def = &Definition{Name: "a", Points: []Point{{4, 1}, {2, 2}}}
	_, err = def.Params()
	assert.ErrorIs(t, err, ErrNonUniform)
}

func TestParams_MaximumPointCount(t *testing.T) {
	def := &Definition{Name: "full", Decimals: 0}
	for i := 0; i < curve.MaxYCount; i++ {
		def.Points = append(def.Points, Point{X: uint32(10 * i), Y: uint32(i)})
	}

	params, err := def.Params()
	require.NoError(t, err)
	assert.Equal(t, uint8(curve.MaxYCount), params.YCount)
	require.NoError(t, curve.CheckParams(params))
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	def, err := Load(writeFile(t, "curve.yml", validYAML))
	require.NoError(t, err)
	assert.Equal(t, "test curve", def.Name)

	def, err = Load(writeFile(t, "points.csv", "0,200\n2,300\n"))
	require.NoError(t, err)
	assert.Len(t, def.Points, 2)

	_, err = Load(writeFile(t, "curve.json", "{}"))
	assert.Error(t, err)
}

func TestFromRecord_RoundTripsThroughLoadYAML(t *testing.T) {
	def, err := LoadYAML(writeFile(t, "curve.yaml", validYAML))
	require.NoError(t, err)
	params, err := def.Params()
	require.NoError(t, err)

	record, err := curve.NewRecord(params, acct.Address{0x01})
	require.NoError(t, err)

	out, err := FromRecord(record).Marshal()
	require.NoError(t, err)

	back, err := LoadYAML(writeFile(t, "exported.yaml", string(out)))
	require.NoError(t, err)
	assert.Equal(t, def, back)
}
