// Package curvedef loads curve definitions from operator-supplied files and
// turns them into validated curve parameters.
//
// YAML definitions are unified with an embedded CUE schema before decoding,
// so shape errors are reported against the schema rather than surfacing as
// half-decoded structs. Two-column CSV files are supported for parity with
// spreadsheet exports.
//
// Definitions with fewer than 2 or more than 130 points are rejected
// outright - never silently truncated - as are point lists whose x spacing
// is not uniform.
package curvedef

import (
	"encoding/csv"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/curvyfi/curvy/internal/curve"
)

//go:embed schema.cue
var schemaCUE string

var (
	// ErrTooFewPoints is returned for definitions with under 2 points.
	ErrTooFewPoints = errors.New("curve definition needs at least 2 points")

	// ErrTooManyPoints is returned instead of silently truncating long
	// point lists.
	ErrTooManyPoints = fmt.Errorf("curve definition exceeds %d points", curve.MaxYCount)

	// ErrNonUniform is returned when x spacing varies between points.
	ErrNonUniform = errors.New("curve points are not uniformly spaced")
)

// Point is one (x, y) sample in raw scaled units.
type Point struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
}

// Definition is a decoded curve definition file.
type Definition struct {
	Name     string  `json:"name" validate:"required,max=16"`
	Formula  string  `json:"formula" validate:"max=16"`
	Decimals uint8   `json:"decimals" validate:"lte=9"`
	Points   []Point `json:"points" validate:"required"`
}

var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Load reads a definition from path, picking the format by extension:
// .yaml/.yml (schema-checked) or .csv (points only; name, formula and
// decimals must then come from elsewhere).
func Load(path string) (*Definition, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return LoadYAML(path)
	case ".csv":
		points, err := LoadCSV(path)
		if err != nil {
			return nil, err
		}
		return &Definition{Points: points}, nil
	default:
		return nil, fmt.Errorf("unsupported definition format %q", ext)
	}
}

// LoadYAML parses a YAML definition and validates it against the embedded
// CUE schema before decoding.
func LoadYAML(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	cuectx := cuecontext.New()

	schema := cuectx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile definition schema: %w", err)
	}
	defSchema := schema.LookupPath(cue.ParsePath("#Definition"))
	if err := defSchema.Err(); err != nil {
		return nil, fmt.Errorf("lookup definition schema: %w", err)
	}

	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return nil, fmt.Errorf("parse definition %s: %w", path, err)
	}
	value := cuectx.BuildFile(file)
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("build definition %s: %w", path, err)
	}

	unified := defSchema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("definition %s does not match schema: %w", path, err)
	}

	var def Definition
	if err := unified.Decode(&def); err != nil {
		return nil, fmt.Errorf("decode definition %s: %w", path, err)
	}

	if err := structValidator.Struct(&def); err != nil {
		return nil, fmt.Errorf("definition %s: %w", path, err)
	}

	return &def, nil
}

// LoadCSV parses a two-column x,y file. A non-numeric first row is treated
// as a header and skipped.
func LoadCSV(path string) ([]Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read points: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse points %s: %w", path, err)
	}

	points := make([]Point, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("points %s: row %d has %d columns, want 2", path, i+1, len(row))
		}
		x, errX := strconv.ParseUint(strings.TrimSpace(row[0]), 10, 32)
		y, errY := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 32)
		if errX != nil || errY != nil {
			if i == 0 {
				// Header row.
				continue
			}
			return nil, fmt.Errorf("points %s: row %d is not numeric", path, i+1)
		}
		points = append(points, Point{X: uint32(x), Y: uint32(y)})
	}

	return points, nil
}

// Params derives curve parameters from the definition: x0 from the first
// point, x_step from the first gap. The point count and spacing are gated
// here; the geometry itself still goes through curve.CheckParams before any
// commit.
func (d *Definition) Params() (curve.Params, error) {
	if len(d.Points) < 2 {
		return curve.Params{}, ErrTooFewPoints
	}
	if len(d.Points) > curve.MaxYCount {
		return curve.Params{}, ErrTooManyPoints
	}

	x0 := d.Points[0].X
	if d.Points[1].X <= x0 {
		return curve.Params{}, fmt.Errorf("%w: x must be strictly increasing", ErrNonUniform)
	}
	step := d.Points[1].X - x0

	params := curve.Params{
		Name:     d.Name,
		Formula:  d.Formula,
		X0:       x0,
		XStep:    step,
		YCount:   uint8(len(d.Points)),
		Decimals: d.Decimals,
	}

	for i, pt := range d.Points {
		expected := uint64(x0) + uint64(i)*uint64(step)
		if uint64(pt.X) != expected {
			return curve.Params{}, fmt.Errorf("%w: point %d has x=%d, want %d",
				ErrNonUniform, i, pt.X, expected)
		}
		params.Y[i] = pt.Y
	}

	return params, nil
}

// FromRecord rebuilds the definition a stored record would round-trip
// through Params. Point x values are regenerated from the uniform grid.
func FromRecord(r *curve.Record) *Definition {
	def := &Definition{
		Name:     curve.UnpackLabel(r.Name),
		Formula:  curve.UnpackLabel(r.Formula),
		Decimals: r.Decimals,
		Points:   make([]Point, 0, r.YCount),
	}
	for i, y := range r.Samples() {
		def.Points = append(def.Points, Point{
			X: r.X0 + uint32(i)*r.XStep,
			Y: y,
		})
	}
	return def
}

// Marshal renders the definition as YAML accepted by LoadYAML.
func (d *Definition) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	return data, nil
}
