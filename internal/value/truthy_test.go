package value

import (
	"math"
	"testing"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		name        string
		value       Value
		includeZero bool
		want        bool
	}{
		{"null", Null(), false, false},
		{"null include zero", Null(), true, false},
		{"true", Bool(true), false, true},
		{"false", Bool(false), false, false},
		{"false include zero", Bool(false), true, false},
		{"nan", Number(math.NaN()), false, false},
		{"nan include zero", Number(math.NaN()), true, false},
		{"zero", Number(0), false, false},
		{"zero include zero", Number(0), true, true},
		{"negative zero include zero", Number(math.Copysign(0, -1)), true, true},
		{"positive", Number(99), false, true},
		{"negative", Number(-0.5), false, true},
		{"infinity", Number(math.Inf(1)), false, true},
		{"empty string", String(""), false, false},
		{"string", String("0"), false, true},
		{"empty array", Array(), false, false},
		{"array of falsy", Array(Null(), Bool(false)), false, true},
		{"empty object", Object(map[string]Value{}), false, false},
		{"nil object", Object(nil), false, false},
		{"object", Object(map[string]Value{"a": Null()}), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.value, tt.includeZero); got != tt.want {
				t.Errorf("Truthy(%v, %v) = %v, want %v", tt.value.Kind(), tt.includeZero, got, tt.want)
			}
			if got := tt.value.Truthy(tt.includeZero); got != tt.want {
				t.Errorf("Value.Truthy(%v) = %v, want %v", tt.includeZero, got, tt.want)
			}
		})
	}
}

func TestTruthyNonZeroIgnoresIncludeZero(t *testing.T) {
	for _, n := range []float64{1, -1, 0.0001, 1e300, math.Inf(-1)} {
		if !Truthy(Number(n), false) || !Truthy(Number(n), true) {
			t.Errorf("Truthy(%v) should be true for both includeZero settings", n)
		}
	}
}

func TestTruthyZeroValueIsNull(t *testing.T) {
	var v Value
	if v.Kind() != KindNull {
		t.Fatalf("zero Value kind = %v, want null", v.Kind())
	}
	if Truthy(v, true) {
		t.Error("zero Value should be falsy")
	}
}

func TestTruthyIsRepeatable(t *testing.T) {
	v := Object(map[string]Value{"n": Number(0)})
	first := Truthy(v.Get("n"), true)
	for i := 0; i < 10; i++ {
		if Truthy(v.Get("n"), true) != first {
			t.Fatal("Truthy returned different results for the same input")
		}
	}
}
