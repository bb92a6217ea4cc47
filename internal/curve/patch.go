package curve

// Patch carries optional per-field overrides for an existing record. Fields
// left nil keep the record's current value. A patch is always applied as a
// whole and the merged result validated as a whole - never field by field.
type Patch struct {
	Name     *string
	Formula  *string
	X0       *uint32
	XStep    *uint32
	YCount   *uint8
	Decimals *uint8
	Y        *[MaxYCount]uint32
}

// Apply merges the patch onto the record's current parameters and returns
// the fully merged set. The record itself is not modified.
func (p Patch) Apply(r *Record) Params {
	params := r.Params()

	if p.Name != nil {
		params.Name = *p.Name
	}
	if p.Formula != nil {
		params.Formula = *p.Formula
	}
	if p.X0 != nil {
		params.X0 = *p.X0
	}
	if p.XStep != nil {
		params.XStep = *p.XStep
	}
	if p.YCount != nil {
		params.YCount = *p.YCount
	}
	if p.Decimals != nil {
		params.Decimals = *p.Decimals
	}
	if p.Y != nil {
		params.Y = *p.Y
	}

	return params
}

// IsEmpty reports whether the patch overrides nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Formula == nil && p.X0 == nil && p.XStep == nil &&
		p.YCount == nil && p.Decimals == nil && p.Y == nil
}
