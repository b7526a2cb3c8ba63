package layout

import "testing"

func TestMapCoversExactlyLayoutFields(t *testing.T) {
	for _, l := range []DisplayLayout{OLED(), Tablet()} {
		m := Map([]float64{1, 2}, l)
		if len(m) != l.Len() {
			t.Fatalf("%s: expected %d keys, got %d", l.Name(), l.Len(), len(m))
		}
		for _, f := range l.Fields() {
			if _, ok := m[f]; !ok {
				t.Fatalf("%s: missing field %s", l.Name(), f)
			}
		}
	}
}

func TestMapPositionalAssignment(t *testing.T) {
	seq := []float64{85.3, 112.0, 140.5}
	m := Map(seq, OLED())
	if m[BallSpeed] == nil || *m[BallSpeed] != 85.3 {
		t.Fatalf("unexpected ball_speed: %v", m[BallSpeed])
	}
	if m[ClubHeadSpeed] == nil || *m[ClubHeadSpeed] != 112.0 {
		t.Fatalf("unexpected club_head_speed: %v", m[ClubHeadSpeed])
	}
	if m[CarryDistance] == nil || *m[CarryDistance] != 140.5 {
		t.Fatalf("unexpected carry_distance: %v", m[CarryDistance])
	}
	if m[TotalDistance] != nil {
		t.Fatalf("expected nil total_distance, got %v", *m[TotalDistance])
	}
}

func TestMapFullSequence(t *testing.T) {
	l := Tablet()
	seq := make([]float64, l.Len())
	for i := range seq {
		seq[i] = float64(i + 1)
	}
	m := Map(seq, l)
	for i, f := range l.Fields() {
		if m[f] == nil || *m[f] != float64(i+1) {
			t.Fatalf("field %s: expected %d, got %v", f, i+1, m[f])
		}
	}
	if c := Confidence(Populated(m), l.Len()); c != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", c)
	}
}

func TestMapEmptySequence(t *testing.T) {
	l := Tablet()
	m := Map(nil, l)
	for f, v := range m {
		if v != nil {
			t.Fatalf("field %s: expected nil, got %v", f, *v)
		}
	}
	if c := Confidence(Populated(m), l.Len()); c != 0.0 {
		t.Fatalf("expected confidence 0.0, got %v", c)
	}
}

func TestConfidenceBounds(t *testing.T) {
	cases := []struct {
		populated, expected int
		want                float64
	}{
		{0, 4, 0},
		{2, 4, 0.5},
		{4, 4, 1},
		{8, 4, 1}, // duplicated extraction can overshoot; capped
		{0, 0, 0},
	}
	for _, c := range cases {
		got := Confidence(c.populated, c.expected)
		if got != c.want {
			t.Fatalf("Confidence(%d, %d) = %v, want %v", c.populated, c.expected, got, c.want)
		}
		if got < 0 || got > 1 {
			t.Fatalf("confidence out of range: %v", got)
		}
	}
}

func TestByName(t *testing.T) {
	if l, ok := ByName("oled"); !ok || l.Len() != 4 {
		t.Fatalf("unexpected oled lookup: %v %v", l, ok)
	}
	if l, ok := ByName("tablet"); !ok || l.Len() != 16 {
		t.Fatalf("unexpected tablet lookup: %v %v", l, ok)
	}
	if _, ok := ByName("watch"); ok {
		t.Fatalf("expected unknown display to miss")
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	l := OLED()
	fs := l.Fields()
	fs[0] = "tampered"
	if got := l.Fields()[0]; got != BallSpeed {
		t.Fatalf("layout order was mutated: %s", got)
	}
}
