package media

import "testing"

func TestEdits_TrimClamps(t *testing.T) {
	e := NewEdits(100)

	e.SetTrimOut(80)
	e.SetTrimIn(90) // beyond trimOut, clamps down
	if e.TrimIn() != 80 {
		t.Errorf("TrimIn = %d, want 80", e.TrimIn())
	}

	e.Reset()
	e.SetTrimIn(-5)
	if e.TrimIn() != 0 {
		t.Errorf("TrimIn = %d, want 0", e.TrimIn())
	}
	e.SetTrimOut(500)
	if e.TrimOut() != 99 {
		t.Errorf("TrimOut = %d, want 99", e.TrimOut())
	}
	e.SetTrimIn(40)
	e.SetTrimOut(20) // below trimIn, clamps up
	if e.TrimOut() != 40 {
		t.Errorf("TrimOut = %d, want 40", e.TrimOut())
	}
}

func TestEdits_AddCutNormalizes(t *testing.T) {
	e := NewEdits(100)
	e.AddCut(30, 20)
	cuts := e.Cuts()
	if len(cuts) != 1 || cuts[0] != [2]int{20, 30} {
		t.Errorf("cuts = %v, want [[20 30]]", cuts)
	}

	e.AddCut(-10, 500)
	cuts = e.Cuts()
	if cuts[1] != [2]int{0, 99} {
		t.Errorf("cut clamped to %v, want [0 99]", cuts[1])
	}
}

func TestEdits_ExportFrames(t *testing.T) {
	t.Run("trim plus cut", func(t *testing.T) {
		e := NewEdits(120)
		e.SetTrimOut(90)
		e.SetTrimIn(10)
		e.AddCut(20, 30)

		frames := e.ExportFrames()
		// [10..19] then [31..90]
		if len(frames) != 10+60 {
			t.Fatalf("len = %d, want 70", len(frames))
		}
		if frames[0] != 10 || frames[9] != 19 {
			t.Errorf("head = %d..%d, want 10..19", frames[0], frames[9])
		}
		if frames[10] != 31 || frames[len(frames)-1] != 90 {
			t.Errorf("tail = %d..%d, want 31..90", frames[10], frames[len(frames)-1])
		}
	})

	t.Run("cut covering whole trim range is ignored", func(t *testing.T) {
		e := NewEdits(50)
		e.AddCut(0, 49)
		frames := e.ExportFrames()
		if len(frames) != 50 {
			t.Errorf("len = %d, want full range 50", len(frames))
		}
	})

	t.Run("reversed", func(t *testing.T) {
		e := NewEdits(10)
		e.ToggleReverse()
		frames := e.ExportFrames()
		if frames[0] != 9 || frames[9] != 0 {
			t.Errorf("frames = %v, want descending", frames)
		}
	})

	t.Run("reverse applies after cuts", func(t *testing.T) {
		e := NewEdits(10)
		e.AddCut(4, 6)
		e.ToggleReverse()
		frames := e.ExportFrames()
		want := []int{9, 8, 7, 3, 2, 1, 0}
		if len(frames) != len(want) {
			t.Fatalf("frames = %v, want %v", frames, want)
		}
		for i := range want {
			if frames[i] != want[i] {
				t.Fatalf("frames = %v, want %v", frames, want)
			}
		}
	})
}

func TestEdits_ClearAndReset(t *testing.T) {
	e := NewEdits(60)
	e.SetTrimIn(10)
	e.SetTrimOut(50)
	e.AddCut(20, 25)
	e.ToggleReverse()

	e.ClearCuts()
	if len(e.Cuts()) != 0 {
		t.Error("cuts survived ClearCuts")
	}
	if !e.Reversed() {
		t.Error("ClearCuts touched reverse state")
	}

	e.Reset()
	if e.TrimIn() != 0 || e.TrimOut() != 59 || e.Reversed() {
		t.Errorf("reset state: in=%d out=%d rev=%v", e.TrimIn(), e.TrimOut(), e.Reversed())
	}
}
