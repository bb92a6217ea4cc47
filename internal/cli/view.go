package cli

import (
	"fmt"
	"strings"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
)

// CurveView is the rendered form of a stored curve.
type CurveView struct {
	Address  string   `json:"address"`
	Name     string   `json:"name"`
	Formula  string   `json:"formula"`
	Decimals uint8    `json:"decimals"`
	X0       uint32   `json:"x0"`
	XStep    uint32   `json:"x_step"`
	YCount   uint8    `json:"y_count"`
	Y        []uint32 `json:"y"`
}

// NewCurveView builds a view from an address and its decoded record.
func NewCurveView(addr acct.Address, r *curve.Record) CurveView {
	return CurveView{
		Address:  addr.String(),
		Name:     curve.UnpackLabel(r.Name),
		Formula:  curve.UnpackLabel(r.Formula),
		Decimals: r.Decimals,
		X0:       r.X0,
		XStep:    r.XStep,
		YCount:   r.YCount,
		Y:        r.Samples(),
	}
}

// samplesPerLine controls the wrap width of the y[] block.
const samplesPerLine = 11

func (v CurveView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Address : %s\n", v.Address)
	fmt.Fprintf(&b, "Name    : %s\n", v.Name)
	fmt.Fprintf(&b, "Formula : %s\n", v.Formula)
	fmt.Fprintf(&b, "decimals: %d\n", v.Decimals)
	fmt.Fprintf(&b, "x0      : %d\n", v.X0)
	fmt.Fprintf(&b, "x_step  : %d\n", v.XStep)
	fmt.Fprintf(&b, "y_count : %d\n", v.YCount)
	b.WriteString("y[]     : \n          ")
	for i, y := range v.Y {
		fmt.Fprintf(&b, "%d, ", y)
		if (i+1)%samplesPerLine == 0 && i != len(v.Y)-1 {
			b.WriteString("\n          ")
		}
	}
	return b.String()
}

// CurvesView renders a list of curves separated by blank lines.
type CurvesView struct {
	Curves []CurveView `json:"curves"`
}

func (v CurvesView) String() string {
	if len(v.Curves) == 0 {
		return "no curves"
	}
	parts := make([]string, len(v.Curves))
	for i, c := range v.Curves {
		parts[i] = c.String()
	}
	return strings.Join(parts, "\n\n")
}

// KeygenView reports a freshly generated keypair.
type KeygenView struct {
	Address string `json:"address"`
	Path    string `json:"path"`
}

func (v KeygenView) String() string {
	return fmt.Sprintf("Address : %s\nKeyfile : %s", v.Address, v.Path)
}

// FundView reports a wallet balance after an airdrop.
type FundView struct {
	Wallet  string `json:"wallet"`
	Balance int64  `json:"balance"`
}

func (v FundView) String() string {
	return fmt.Sprintf("Wallet  : %s\nBalance : %d", v.Wallet, v.Balance)
}

// OpView reports the outcome of a lifecycle instruction.
type OpView struct {
	Op    string `json:"op"`
	Curve string `json:"curve"`
}

func (v OpView) String() string {
	return fmt.Sprintf("%s %s", v.Op, v.Curve)
}

// CalcView reports an interpolated value.
type CalcView struct {
	Curve string `json:"curve"`
	X     string `json:"x"`
	Y     string `json:"y"`
}

func (v CalcView) String() string {
	return fmt.Sprintf("y(%s) = %s", v.X, v.Y)
}
