package bubble

import (
	"math"
	"testing"
)

func TestStyle_ParseRoundtrip(t *testing.T) {
	for _, name := range []string{"oval", "cloud", "rect", "spiky", "text", "scrim", "caption"} {
		s, err := ParseStyle(name)
		if err != nil {
			t.Fatalf("ParseStyle(%q): %v", name, err)
		}
		if s.String() != name {
			t.Errorf("String() = %q, want %q", s.String(), name)
		}
	}
	if _, err := ParseStyle("blob"); err == nil {
		t.Error("ParseStyle accepted unknown style")
	}
}

func TestStyle_HasTail(t *testing.T) {
	tests := []struct {
		style Style
		want  bool
	}{
		{StyleOval, true},
		{StyleCloud, true},
		{StyleSpiky, true},
		{StyleRect, false},
		{StyleText, false},
		{StyleScrim, false},
		{StyleCaption, false},
	}
	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			if got := tt.style.HasTail(); got != tt.want {
				t.Errorf("HasTail() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBodyPath_ContainsCenter(t *testing.T) {
	r := RectCentered(Point{}, 220, 130)
	for _, style := range []Style{StyleOval, StyleCloud, StyleRect, StyleSpiky, StyleText, StyleScrim, StyleCaption} {
		t.Run(style.String(), func(t *testing.T) {
			p := BodyPath(style, r)
			if !p.Contains(r.Center()) {
				t.Errorf("%v body does not contain its centre", style)
			}
			if p.Contains(Pt(500, 500)) {
				t.Errorf("%v body contains a far outside point", style)
			}
		})
	}
}

func TestSpikyPath_SpikesExceedValleys(t *testing.T) {
	r := RectCentered(Point{}, 200, 200)
	p := spikyPath(r)
	// A valley point at 64% radius lies inside; a point past the valley but
	// between two spikes does not.
	if !p.Contains(Pt(0, 0)) {
		t.Error("centre not inside starburst")
	}
	bbox := p.BoundingBox()
	// Tip variation reaches up to 1.22x the half extent.
	if bbox.Max.X < 100 || bbox.Max.X > 100*1.23 {
		t.Errorf("starburst extent %v out of expected range", bbox.Max.X)
	}
}

func TestCloudEdgeDistance_MatchesLinearScan(t *testing.T) {
	r := RectCentered(Point{}, 220, 130)
	c := r.Center()
	cloud := CloudPath(r)

	for i := 0; i < 8; i++ {
		angle := 2 * math.Pi * float64(i) / 8
		tip := c.Add(Pt(math.Cos(angle), math.Sin(angle)).Mul(300))

		got := CloudEdgeDistance(r, tip)

		// Linear reference scan for the exit distance along the same ray.
		u := tip.Sub(c).Normalize()
		exit := 0.0
		for d := 0.0; d < 300; d += 0.25 {
			if cloud.Contains(c.Add(u.Mul(d))) {
				exit = d
			}
		}

		if math.Abs(got-(exit+6)) > 1.0 {
			t.Errorf("angle %d: edge = %.2f, linear scan + gap = %.2f", i, got, exit+6)
		}
	}
}

func TestThoughtDots(t *testing.T) {
	r := RectCentered(Point{}, 220, 130)

	t.Run("tip inside cloud yields none", func(t *testing.T) {
		if dots := ThoughtDots(r, r.Center().Add(Pt(5, 5))); dots != nil {
			t.Errorf("got %d dots, want none", len(dots))
		}
	})

	t.Run("longer tail yields more dots", func(t *testing.T) {
		near := ThoughtDots(r, Pt(0, 130))
		far := ThoughtDots(r, Pt(0, 320))
		if len(far) <= len(near) {
			t.Errorf("near %d dots, far %d dots", len(near), len(far))
		}
		if len(far) > 5 {
			t.Errorf("got %d dots, max is 5", len(far))
		}
	})

	t.Run("radii shrink toward tip and floor at 2", func(t *testing.T) {
		dots := ThoughtDots(r, Pt(0, 400))
		for i := 1; i < len(dots); i++ {
			if dots[i].Radius > dots[i-1].Radius {
				t.Errorf("dot %d radius %v > previous %v", i, dots[i].Radius, dots[i-1].Radius)
			}
		}
		for _, d := range dots {
			if d.Radius < 2 {
				t.Errorf("radius %v below floor", d.Radius)
			}
		}
	})

	t.Run("dots stay clear of the tip", func(t *testing.T) {
		tip := Pt(0, 250)
		c := r.Center()
		dist := tip.Sub(c).Length()
		for _, d := range ThoughtDots(r, tip) {
			if d.Center.Sub(c).Length()+d.Radius > dist-5+epsilon {
				t.Errorf("dot at %v overlaps the tip margin", d.Center)
			}
		}
	})
}

func TestTailWedge_DegenerateTip(t *testing.T) {
	r := RectCentered(Point{}, 100, 100)
	p := TailWedge(r, r.Center())
	if p.IsEmpty() {
		t.Fatal("degenerate wedge is empty")
	}
	bbox := p.BoundingBox()
	if bbox.Width() <= 0 && bbox.Height() <= 0 {
		t.Error("degenerate wedge has no extent")
	}
}
