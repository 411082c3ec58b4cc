package zaehlerstand

import (
	"math"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestBerechneVerbrauch(t *testing.T) {
	v, ok := BerechneVerbrauch(f(100.0), f(342.5))
	if !ok {
		t.Fatal("expected consumption to be computable")
	}
	if v != 242.5 {
		t.Errorf("expected 242.5, got %v", v)
	}
}

func TestBerechneVerbrauch_Rundung(t *testing.T) {
	v, ok := BerechneVerbrauch(f(0.1), f(0.305))
	if !ok {
		t.Fatal("expected consumption to be computable")
	}
	if v != 0.21 {
		t.Errorf("expected 0.21 after rounding, got %v", v)
	}
}

func TestBerechneVerbrauch_NegativErlaubt(t *testing.T) {
	v, ok := BerechneVerbrauch(f(500.0), f(12.3))
	if !ok {
		t.Fatal("expected consumption to be computable")
	}
	if v != -487.7 {
		t.Errorf("expected -487.7, got %v", v)
	}
}

func TestBerechneVerbrauch_Teilweise(t *testing.T) {
	if _, ok := BerechneVerbrauch(f(100.0), nil); ok {
		t.Error("expected not computable with missing endwert")
	}
	if _, ok := BerechneVerbrauch(nil, f(100.0)); ok {
		t.Error("expected not computable with missing startwert")
	}
	if _, ok := BerechneVerbrauch(nil, nil); ok {
		t.Error("expected not computable with both values missing")
	}
}

func TestBerechneVerbrauch_NichtEndlich(t *testing.T) {
	if _, ok := BerechneVerbrauch(f(math.NaN()), f(1)); ok {
		t.Error("expected NaN startwert to be rejected")
	}
	if _, ok := BerechneVerbrauch(f(1), f(math.Inf(1))); ok {
		t.Error("expected infinite endwert to be rejected")
	}
}
