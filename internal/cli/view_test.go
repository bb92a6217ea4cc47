package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
)

func goldenTester(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCurveView_Render(t *testing.T) {
	owner := acct.Address{0x01}
	record, err := curve.NewRecord(curve.Params{
		Name:     "test curve",
		Formula:  "y=f(x)",
		X0:       0,
		XStep:    2,
		YCount:   5,
		Decimals: 2,
		Y:        [curve.MaxYCount]uint32{200, 300, 400, 700, 1000000000},
	}, owner)
	require.NoError(t, err)

	view := NewCurveView(acct.Address{0xaa}, record)
	goldenTester(t).Assert(t, "curve_view", []byte(view.String()))
}

func TestCurveView_WrapsLongSampleList(t *testing.T) {
	var y [curve.MaxYCount]uint32
	for i := 0; i < 12; i++ {
		y[i] = uint32(i + 1)
	}
	record, err := curve.NewRecord(curve.Params{
		Name:     "wide",
		X0:       0,
		XStep:    1,
		YCount:   12,
		Decimals: 0,
		Y:        y,
	}, acct.Address{0x01})
	require.NoError(t, err)

	view := NewCurveView(acct.Address{0xaa}, record)
	goldenTester(t).Assert(t, "curve_view_wrapped", []byte(view.String()))
}

func TestCurvesView_Empty(t *testing.T) {
	require.Equal(t, "no curves", CurvesView{}.String())
}
