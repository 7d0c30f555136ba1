package session

import (
	"errors"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr bool
	}{
		{"valid", []string{"intro", "usage", "api"}, false},
		{"single target", []string{"intro"}, false},
		{"empty", nil, true},
		{"duplicate id", []string{"intro", "usage", "intro"}, true},
		{"blank id", []string{"intro", "  "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{TargetIDs: tt.ids}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ce *ConfigError
				if !errors.As(err, &ce) {
					t.Errorf("Validate() error type = %T, want *ConfigError", err)
				}
			}
		})
	}
}

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name      string
		threshold float64
		want      float64
		wantErr   bool
	}{
		{"zero uses default", 0, DefaultThreshold, false},
		{"lower bound", 0.1, 0.1, false},
		{"upper bound", 0.9, 0.9, false},
		{"below range", 0.05, 0, true},
		{"above range", 0.95, 0, true},
		{"negative", -0.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt, err := NewTarget("a", tt.threshold)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTarget() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tgt.EntryThreshold != tt.want {
				t.Errorf("EntryThreshold = %v, want %v", tgt.EntryThreshold, tt.want)
			}
		})
	}
}

func TestZoneSpecResolveRows(t *testing.T) {
	tests := []struct {
		name     string
		zone     ZoneSpec
		viewport int
		want     int
	}{
		{"default is half viewport", ZoneSpec{}, 40, 20},
		{"fixed rows", ZoneSpec{Rows: 8}, 40, 8},
		{"percent", ZoneSpec{Percent: 25}, 40, 10},
		{"never below one row", ZoneSpec{Percent: 1}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.zone.ResolveRows(tt.viewport); got != tt.want {
				t.Errorf("ResolveRows(%d) = %d, want %d", tt.viewport, got, tt.want)
			}
		})
	}
}

func TestZoneSpecValidate(t *testing.T) {
	if err := (ZoneSpec{Rows: 5, Percent: 50}).Validate(); err == nil {
		t.Error("rows+percent should be rejected")
	}
	if err := (ZoneSpec{Offset: -1}).Validate(); err == nil {
		t.Error("negative offset should be rejected")
	}
	if err := (ZoneSpec{Percent: 120}).Validate(); err == nil {
		t.Error("percent > 100 should be rejected")
	}
	if err := (ZoneSpec{}).Validate(); err != nil {
		t.Errorf("zero value should be valid, got %v", err)
	}
}

func TestVisibilityMapEqual(t *testing.T) {
	a := VisibilityMap{"x": true, "y": false}
	b := VisibilityMap{"x": true, "y": false}
	c := VisibilityMap{"x": true, "y": true}
	d := VisibilityMap{"x": true}

	if !a.Equal(b) {
		t.Error("identical maps should be equal")
	}
	if a.Equal(c) {
		t.Error("maps with different values should differ")
	}
	if a.Equal(d) {
		t.Error("maps with different domains should differ")
	}

	clone := a.Clone()
	clone["x"] = false
	if !a["x"] {
		t.Error("Clone() must not alias the original")
	}
}
