package utils

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCellDecimal(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"123.45", "123.45", true},
		{" 123.45 ", "123.45", true},
		{"$1,234.50", "1234.5", true},
		{"-10", "-10", true},
		{"", "0", false},
		{"  ", "0", false},
		{"n/a", "0", false},
	}
	for _, c := range cases {
		got, ok := CellDecimal(c.raw)
		if ok != c.ok {
			t.Fatalf("CellDecimal(%q) ok = %v, want %v", c.raw, ok, c.ok)
		}
		if ok && !got.Equal(decimal.RequireFromString(c.want)) {
			t.Fatalf("CellDecimal(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestRatioPct(t *testing.T) {
	got := RatioPct(decimal.NewFromInt(50), decimal.NewFromInt(200))
	if !got.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("RatioPct = %s, want 25", got)
	}
	if !RatioPct(decimal.NewFromInt(50), decimal.Zero).IsZero() {
		t.Fatal("zero denominator must yield zero")
	}
}

func TestRatioPctPtr(t *testing.T) {
	if got := RatioPctPtr(decimal.NewFromInt(50), decimal.Zero); got != nil {
		t.Fatalf("zero denominator must yield nil, got %s", got)
	}
	got := RatioPctPtr(decimal.NewFromInt(1), decimal.NewFromInt(3))
	if got == nil || !got.Equal(decimal.RequireFromString("33.3")) {
		t.Fatalf("RatioPctPtr = %v, want 33.3", got)
	}
}

func TestMeanDecimal(t *testing.T) {
	values := []decimal.Decimal{
		decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.NewFromInt(300),
	}
	if got := MeanDecimal(values); !got.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("MeanDecimal = %s, want 200", got)
	}
	if !MeanDecimal(nil).IsZero() {
		t.Fatal("mean of nothing is zero")
	}
}

func TestSchemaError(t *testing.T) {
	err := NewSchemaError("inventory ledger", "column %q is missing", "Qty")
	if !IsSchemaError(err) {
		t.Fatal("NewSchemaError must satisfy IsSchemaError")
	}
	if IsSchemaError(nil) {
		t.Fatal("nil is not a schema error")
	}
}
