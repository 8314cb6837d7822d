package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"12,50", 1250, false},
		{"12.50", 1250, false},
		{"12", 1200, false},
		{"0,05", 5, false},
		{"12.345", 1235, false},
		{"12.346", 1235, false},
		{" 7,00 ", 700, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"0", 0, true},
		{"1.2.3", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseDecimalToCents(%q) expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDecimalToCents(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseNonNegativeDecimalToCents(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"0", 0, false},
		{"0,00", 0, false},
		{"12,50", 1250, false},
		{"-5", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseNonNegativeDecimalToCents(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseNonNegativeDecimalToCents(%q) expected error, got %d", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNonNegativeDecimalToCents(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNonNegativeDecimalToCents(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatCents(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{1250, "12,50"},
		{5, "0,05"},
		{0, "0,00"},
		{-1250, "-12,50"},
		{100000, "1000,00"},
	}
	for _, tc := range cases {
		if got := FormatCents(tc.in); got != tc.want {
			t.Errorf("FormatCents(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMoneyUnmarshalCoercion(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int64
	}{
		{"number", `1250`, 1250},
		{"string", `"1250"`, 1250},
		{"null", `null`, 0},
		{"float", `1250.0`, 1250},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Money
			if err := json.Unmarshal([]byte(tc.in), &m); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if m.Cents != tc.want {
				t.Fatalf("got %d, want %d", m.Cents, tc.want)
			}
		})
	}

	var m Money
	if err := json.Unmarshal([]byte(`"12,50"`), &m); err == nil {
		t.Fatalf("expected error for non-numeric string, got %d", m.Cents)
	}
}

func TestMoneyRoundTrip(t *testing.T) {
	in := Money{Cents: 4321}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "4321" {
		t.Fatalf("marshal = %s, want 4321", data)
	}
	var out Money
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out != in {
		t.Fatalf("round trip = %+v, want %+v", out, in)
	}
}
