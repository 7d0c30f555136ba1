package geometry

import "testing"

func TestOverlapFraction(t *testing.T) {
	zone := Rect{Top: 100, Height: 100} // spans 100-200

	tests := []struct {
		name   string
		target Rect
		want   float64
	}{
		{
			name:   "fully inside zone",
			target: Rect{Top: 120, Height: 40},
			want:   1.0,
		},
		{
			name:   "straddles zone top",
			target: Rect{Top: 90, Height: 70}, // 90-160, 60 of 70 inside
			want:   60.0 / 70.0,
		},
		{
			name:   "straddles zone bottom",
			target: Rect{Top: 150, Height: 100}, // 150-250, 50 of 100 inside
			want:   0.5,
		},
		{
			name:   "entirely above zone",
			target: Rect{Top: 0, Height: 50},
			want:   0,
		},
		{
			name:   "entirely below zone",
			target: Rect{Top: 200, Height: 50},
			want:   0,
		},
		{
			name:   "touching zone edge only",
			target: Rect{Top: 50, Height: 50}, // bottom == zone top
			want:   0,
		},
		{
			name:   "zero height target",
			target: Rect{Top: 150, Height: 0},
			want:   0,
		},
		{
			name:   "negative height target",
			target: Rect{Top: 150, Height: -10},
			want:   0,
		},
		{
			name:   "taller than zone",
			target: Rect{Top: 50, Height: 200}, // covers whole zone
			want:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverlapFraction(tt.target, zone)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("OverlapFraction(%+v) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestQualifiesInclusiveBoundary(t *testing.T) {
	if !Qualifies(0.5, 0.5) {
		t.Error("Qualifies(0.5, 0.5) = false, want true (boundary is inclusive)")
	}
	if Qualifies(0.4999, 0.5) {
		t.Error("Qualifies(0.4999, 0.5) = true, want false")
	}
	if !Qualifies(1.0, 0.9) {
		t.Error("Qualifies(1.0, 0.9) = false, want true")
	}
	if Qualifies(0, 0.1) {
		t.Error("Qualifies(0, 0.1) = true, want false")
	}
}
