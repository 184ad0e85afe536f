package core

import "testing"

func TestRectOverlaps(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"inside", Rect{2, 2, 1, 1}, true},
		{"partial", Rect{9, 9, 5, 5}, true},
		{"touching edge", Rect{10, 0, 5, 5}, false},
		{"outside", Rect{-5, -5, 2, 2}, false},
		{"covering", Rect{-1, -1, 20, 20}, true},
	}
	for _, tt := range tests {
		if got := r.Overlaps(tt.o); got != tt.want {
			t.Errorf("%s: Overlaps(%+v) = %v, want %v", tt.name, tt.o, got, tt.want)
		}
	}
}

func TestRectGrowKeepsCenter(t *testing.T) {
	r := RectCentered(5, 5, 4, 2).Grow(8)
	if r.Width != 12 || r.Height != 10 {
		t.Fatalf("Expected 12x10, got %vx%v", r.Width, r.Height)
	}
	if cx := r.X + r.Width/2; cx != 5 {
		t.Errorf("Expected center x 5, got %v", cx)
	}
	if !r.Contains(5, 5) || r.Contains(12, 5) {
		t.Errorf("Contains mismatch for %+v", r)
	}
}

func TestPointWorld(t *testing.T) {
	v := Point{3, 4}.World(8)
	if v.X != 24 || v.Y != 32 {
		t.Errorf("Expected (24,32), got %+v", v)
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#d99d73")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c != (RGB{0xd9, 0x9d, 0x73}) {
		t.Errorf("Expected d9/9d/73, got %+v", c)
	}
	if c.Hex() != "#d99d73" {
		t.Errorf("Hex round trip: %s", c.Hex())
	}

	for _, bad := range []string{"", "#fff", "#gggggg", "1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestRGBBlend(t *testing.T) {
	dst := RGBBlack
	if got := dst.Blend(RGBWhite, 1); got != RGBWhite {
		t.Errorf("alpha 1: got %+v", got)
	}
	if got := dst.Blend(RGBWhite, 0); got != RGBBlack {
		t.Errorf("alpha 0: got %+v", got)
	}
	if got := dst.Blend(RGBWhite, 0.5); got.R != 127 {
		t.Errorf("alpha 0.5: got %+v", got)
	}
}
