package value

import (
	"math/big"
	"testing"

	"github.com/cwbudde/egg/internal/types"
)

func TestArithmeticPromotion(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		wantKind Kind
	}{
		{"int+int", IntFromInt64(2), IntFromInt64(3), KindInt},
		{"int+float", IntFromInt64(2), Float(1.5), KindFloat},
		{"float+float", Float(1.5), Float(2.5), KindFloat},
		{"string+string", String("foo"), String("bar"), KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Add(tt.a, tt.b)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if got.Kind() != tt.wantKind {
				t.Fatalf("kind = %v, want %v", got.Kind(), tt.wantKind)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := Div(IntFromInt64(1), IntFromInt64(0))
	if err != ErrDivisionByZero {
		t.Fatalf("err = %v, want ErrDivisionByZero", err)
	}
}

func TestIntDivisionTruncatesRatherThanPromotingToFloat(t *testing.T) {
	got, err := Div(IntFromInt64(7), IntFromInt64(2))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got.Kind() != KindInt {
		t.Fatalf("kind = %v, want KindInt", got.Kind())
	}
	if got.CompatibleWith(types.INT).Kind() != KindInt {
		t.Fatalf("7/2 = %v is not compatible with an int-typed slot", got)
	}
	want := big.NewInt(3)
	if got.AsInt().Cmp(want) != 0 {
		t.Fatalf("7/2 = %v, want 3", got)
	}
}

func TestEqualNumericPromotion(t *testing.T) {
	if !Equal(IntFromInt64(2), Float(2.0)) {
		t.Fatalf("expected 2 == 2.0")
	}
	if Equal(IntFromInt64(2), Float(2.5)) {
		t.Fatalf("expected 2 != 2.5")
	}
}

func TestSameRequiresEqualKind(t *testing.T) {
	if Same(IntFromInt64(2), Float(2.0)) {
		t.Fatalf("same should require equal Kind")
	}
	if !Same(IntFromInt64(2), IntFromInt64(2)) {
		t.Fatalf("expected same ints to be same")
	}
}

func TestCompatibleWithPromotesIntToFloat(t *testing.T) {
	v := IntFromInt64(7).CompatibleWith(types.FLOAT)
	if v.Kind() != KindFloat {
		t.Fatalf("expected promotion to float, got %v", v.Kind())
	}
	if v.AsFloat() != 7.0 {
		t.Fatalf("value = %v, want 7.0", v.AsFloat())
	}
}

func TestCompatibleWithIncompatibleIsVoid(t *testing.T) {
	v := String("x").CompatibleWith(types.INT)
	if !v.IsVoid() {
		t.Fatalf("expected Void for incompatible value")
	}
}

func TestFormatFloatPreservesDotZero(t *testing.T) {
	if got := FormatFloat(3.0); got != "3.0" {
		t.Fatalf("FormatFloat(3.0) = %q, want 3.0", got)
	}
	if got := FormatFloat(3.25); got != "3.25" {
		t.Fatalf("FormatFloat(3.25) = %q, want 3.25", got)
	}
}

func TestValueMapChronologicalOrder(t *testing.T) {
	m := NewValueMap()
	m.Set(String("b"), IntFromInt64(2))
	m.Set(String("a"), IntFromInt64(1))
	entries := m.Chronological()
	if len(entries) != 2 || entries[0].Key.AsString() != "b" || entries[1].Key.AsString() != "a" {
		t.Fatalf("unexpected chronological order: %+v", entries)
	}
}

func TestVanillaArrayLengthGrowPads(t *testing.T) {
	arr := NewVanillaArray([]Value{IntFromInt64(1)})
	if err := arr.SetProperty("length", IntFromInt64(3)); err != nil {
		t.Fatalf("SetProperty: %v", err)
	}
	if len(arr.Elements) != 3 {
		t.Fatalf("length = %d, want 3", len(arr.Elements))
	}
	if !arr.Elements[1].IsNull() || !arr.Elements[2].IsNull() {
		t.Fatalf("expected padded elements to be null")
	}
}

func TestVanillaArrayIndexOutOfRange(t *testing.T) {
	arr := NewVanillaArray(nil)
	_, err := arr.GetIndex(Int(big.NewInt(0)))
	if err == nil {
		t.Fatalf("expected out-of-range error")
	}
}
