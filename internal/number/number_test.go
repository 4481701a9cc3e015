package number_test

import (
	"math/big"
	"testing"

	"github.com/eir-lang/eirc/internal/number"
)

func TestSmallPathArithmetic(t *testing.T) {
	a := number.FromInt64(40)
	b := number.FromInt64(2)
	if got := a.Add(b).String(); got != "42" {
		t.Errorf("Add = %s, want 42", got)
	}
	if got := a.Sub(b).String(); got != "38" {
		t.Errorf("Sub = %s, want 38", got)
	}
	if got := a.Mul(b).String(); got != "80" {
		t.Errorf("Mul = %s, want 80", got)
	}
}

func TestOverflowPromotesToBig(t *testing.T) {
	huge := number.FromInt64(1 << 61)
	sum := huge.Add(huge)
	want := new(big.Int).Lsh(big.NewInt(1), 62).String()
	if got := sum.String(); got != want {
		t.Errorf("overflowing Add = %s, want %s", got, want)
	}
}

func TestParseRadix(t *testing.T) {
	tests := []struct {
		s     string
		radix int
		want  string
	}{
		{"ff", 16, "255"},
		{"101", 2, "5"},
		{"42", 10, "42"},
	}
	for _, tt := range tests {
		got, ok := number.Parse(tt.s, tt.radix)
		if !ok {
			t.Fatalf("Parse(%q, %d) failed", tt.s, tt.radix)
		}
		if got.String() != tt.want {
			t.Errorf("Parse(%q, %d) = %s, want %s", tt.s, tt.radix, got.String(), tt.want)
		}
	}
	if _, ok := number.Parse("xyz", 10); ok {
		t.Error("Parse of invalid digits should fail")
	}
}

func TestCmpTotalOrdering(t *testing.T) {
	small := number.FromInt64(5)
	bigV, _ := number.Parse("999999999999999999999999999999", 10)
	if small.Cmp(bigV) >= 0 {
		t.Errorf("small.Cmp(big) should be negative")
	}
	if bigV.Cmp(small) <= 0 {
		t.Errorf("big.Cmp(small) should be positive")
	}
	if small.Cmp(number.FromInt64(5)) != 0 {
		t.Errorf("small.Cmp(equal small) should be zero")
	}
}

func TestFloat64LossyConversion(t *testing.T) {
	if got := number.FromInt64(42).Float64(); got != 42.0 {
		t.Errorf("Float64 = %v, want 42.0", got)
	}
}

func TestIsZero(t *testing.T) {
	if !number.FromInt64(0).IsZero() {
		t.Error("FromInt64(0) should be zero")
	}
	if number.FromInt64(1).IsZero() {
		t.Error("FromInt64(1) should not be zero")
	}
}
