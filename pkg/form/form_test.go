package form

import (
	"encoding/json"
	"strings"
	"testing"
)

func decode(t *testing.T, body string) Input {
	t.Helper()
	var in Input
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
	return in
}

func TestValueUnmarshal(t *testing.T) {
	in := decode(t, `{"s":" a ","n":180,"f":72.5,"b":true,"z":null,"l":["Pfeife","Zigaretten"]}`)

	cases := map[string]struct {
		text string
		null bool
	}{
		"s":       {" a ", false},
		"n":       {"180", false},
		"f":       {"72.5", false},
		"b":       {"true", false},
		"z":       {"", true},
		"l":       {"Pfeife,Zigaretten", false},
		"missing": {"", true},
	}
	for name, want := range cases {
		got := in.Get(name)
		if got.IsNull() != want.null || got.String() != want.text {
			t.Errorf("%s: got (%q, null=%v), want (%q, null=%v)", name, got.String(), got.IsNull(), want.text, want.null)
		}
	}
}

func TestValueUnmarshalRejectsObjects(t *testing.T) {
	var in Input
	if err := json.Unmarshal([]byte(`{"a":{"b":1}}`), &in); err == nil {
		t.Fatal("expected an error for an object value")
	}
}

func TestNullIfEmpty(t *testing.T) {
	tests := []struct {
		in   Value
		want *string
	}{
		{Value{}, nil},
		{Text(""), nil},
		{Text("   "), nil},
		{Text(" Berlin "), strPtr("Berlin")},
	}
	for _, tt := range tests {
		got := NullIfEmpty(tt.in)
		if !equalStr(got, tt.want) {
			t.Errorf("NullIfEmpty(%q) = %v, want %v", tt.in.String(), deref(got), deref(tt.want))
		}
	}
}

func TestIntOrNull(t *testing.T) {
	tests := []struct {
		in   string
		want *int64
	}{
		{"", nil},
		{"  ", nil},
		{"12", intPtr(12)},
		{" 12 ", intPtr(12)},
		{"-3", intPtr(-3)},
		{"12.0", intPtr(12)},
		{"12.5", nil},
		{"12abc", nil},
		{"abc", nil},
		{"99999999999999999999999", nil},
		{"1e5", intPtr(100000)},
		{"1e50000000", nil},
		{"1e-50000000", nil},
		{"0e2000000000", nil},
	}
	for _, tt := range tests {
		got := IntOrNull(Text(tt.in))
		if !equalInt(got, tt.want) {
			t.Errorf("IntOrNull(%q) = %v, want %v", tt.in, derefInt(got), derefInt(tt.want))
		}
	}
	if IntOrNull(Value{}) != nil {
		t.Error("IntOrNull(null) should be nil")
	}
}

func TestNumberOrNull(t *testing.T) {
	tests := []struct {
		in   string
		want *int64
	}{
		{"", nil},
		{"180", intPtr(180)},
		{"72.4", intPtr(72)},
		{"72.5", intPtr(73)},
		{"-2.5", intPtr(-3)},
		{"1e2", intPtr(100)},
		{"schwer", nil},
		{"1e50000000", nil},
		{"-5e-50000000", nil},
	}
	for _, tt := range tests {
		got := NumberOrNull(Text(tt.in))
		if !equalInt(got, tt.want) {
			t.Errorf("NumberOrNull(%q) = %v, want %v", tt.in, derefInt(got), derefInt(tt.want))
		}
	}
}

func TestPositiveID(t *testing.T) {
	tests := []struct {
		in   Value
		want int64
		ok   bool
	}{
		{Text("7"), 7, true},
		{Text(" 7 "), 7, true},
		{Text("0"), 0, false},
		{Text("-1"), 0, false},
		{Text("1.5"), 0, false},
		{Text("x"), 0, false},
		{Value{}, 0, false},
		{Text("1e50000000"), 0, false},
		{Text("1" + strings.Repeat("0", 100)), 0, false},
	}
	for _, tt := range tests {
		got, ok := PositiveID(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("PositiveID(%q) = (%d, %v), want (%d, %v)", tt.in.String(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestHugeExponentFromJSONNumber(t *testing.T) {
	in := decode(t, `{"patientId": 1e50000000, "groesse": 2e-40000000}`)

	if _, ok := PositiveID(in.Get("patientId")); ok {
		t.Error("expected huge exponent to be rejected")
	}
	if NumberOrNull(in.Get("groesse")) != nil {
		t.Error("expected tiny exponent to be rejected")
	}
}

func TestNormalize(t *testing.T) {
	in := decode(t, `{"groesse":"180.6","alterBeginn":"17.5","studienzentrum":"  ","datum":"2024-01-02","ignored":"x"}`)
	vs := Normalize(in, []Field{
		{Name: "groesse", Kind: KindNumber},
		{Name: "alterBeginn", Kind: KindInt},
		{Name: "studienzentrum", Kind: KindText},
		{Name: "datum", Kind: KindDate},
	})

	if got := vs.Int("groesse"); !equalInt(got, intPtr(181)) {
		t.Errorf("groesse = %v", derefInt(got))
	}
	if vs.Int("alterBeginn") != nil {
		t.Error("alterBeginn should be null")
	}
	if vs.Present("studienzentrum") {
		t.Error("studienzentrum should be null")
	}
	if got := vs.Text("datum"); !equalStr(got, strPtr("2024-01-02")) {
		t.Errorf("datum = %v", deref(got))
	}
	if vs.Present("ignored") {
		t.Error("unlisted fields must be dropped")
	}
}

func strPtr(s string) *string { return &s }
func intPtr(n int64) *int64   { return &n }

func equalStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalInt(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func deref(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func derefInt(n *int64) interface{} {
	if n == nil {
		return nil
	}
	return *n
}
