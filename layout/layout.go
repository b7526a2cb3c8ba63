// Package layout declares the field arrangements of the supported launch
// monitor display surfaces and maps ordered numeric sequences onto them.
//
// A layout is an ordered field list: position i on the display corresponds to
// position i in the recognized sequence. The order is fixed per display
// variant and is never rearranged at runtime; it is the implicit contract
// between the physical display formatting and field assignment.
package layout

// Field identifies one telemetry value shown on a display.
type Field string

const (
	BallSpeed     Field = "ball_speed"
	ClubHeadSpeed Field = "club_head_speed"
	SmashFactor   Field = "smash_factor"
	CarryDistance Field = "carry_distance"
	TotalDistance Field = "total_distance"
	LaunchAngle   Field = "launch_angle"
	SpinRate      Field = "spin_rate"
	SideSpin      Field = "side_spin"
	AngleOfAttack Field = "angle_of_attack"
	ClubPath      Field = "club_path"
	FaceAngle     Field = "face_angle"
	DynamicLoft   Field = "dynamic_loft"
	ImpactHeight  Field = "impact_height"
	ImpactToe     Field = "impact_toe"
	BallHeight    Field = "ball_height"
	DescentAngle  Field = "descent_angle"
)

// DisplayLayout is the ordered list of fields expected, in reading order, on
// one display surface.
type DisplayLayout struct {
	name   string
	fields []Field
}

var oledFields = []Field{
	BallSpeed, ClubHeadSpeed, CarryDistance, TotalDistance,
}

var tabletFields = []Field{
	BallSpeed, ClubHeadSpeed, SmashFactor, CarryDistance,
	TotalDistance, LaunchAngle, SpinRate, SideSpin,
	AngleOfAttack, ClubPath, FaceAngle, DynamicLoft,
	ImpactHeight, ImpactToe, BallHeight, DescentAngle,
}

// OLED is the on-device panel layout: the four basic metrics.
func OLED() DisplayLayout {
	return DisplayLayout{name: "oled", fields: oledFields}
}

// Tablet is the companion app layout: the full sixteen-metric readout.
func Tablet() DisplayLayout {
	return DisplayLayout{name: "tablet", fields: tabletFields}
}

// ByName resolves a display selector ("oled" or "tablet") to its layout.
func ByName(name string) (DisplayLayout, bool) {
	switch name {
	case "oled":
		return OLED(), true
	case "tablet":
		return Tablet(), true
	}
	return DisplayLayout{}, false
}

// Name returns the display selector this layout belongs to.
func (l DisplayLayout) Name() string { return l.name }

// Len returns the number of expected fields.
func (l DisplayLayout) Len() int { return len(l.fields) }

// Fields returns a copy of the ordered field list.
func (l DisplayLayout) Fields() []Field {
	return append([]Field(nil), l.fields...)
}

// Map assigns the sequence onto the layout positionally: the i-th field
// receives the i-th value if present, nil otherwise. Every field of the
// layout appears as a key. Values are passed through unvalidated; range
// checking is a concern of whoever persists the reading.
func Map(seq []float64, l DisplayLayout) map[Field]*float64 {
	out := make(map[Field]*float64, len(l.fields))
	for i, f := range l.fields {
		if i < len(seq) {
			v := seq[i]
			out[f] = &v
		} else {
			out[f] = nil
		}
	}
	return out
}

// Populated counts the non-nil values in a mapped reading.
func Populated(m map[Field]*float64) int {
	n := 0
	for _, v := range m {
		if v != nil {
			n++
		}
	}
	return n
}

// Confidence is the fraction of expected fields that were populated, capped
// at 1. It measures coverage, not correctness: a fully populated but
// misrecognized reading still scores 1.
func Confidence(populated, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	c := float64(populated) / float64(expected)
	if c > 1 {
		return 1
	}
	return c
}
