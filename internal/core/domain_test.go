package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in  string
		out Date
		ok  bool
	}{
		{"2024-03-15", NewDate(2024, 3, 15), true},
		{" 2024-03-15 ", NewDate(2024, 3, 15), true},
		{"2024-02-29", NewDate(2024, 2, 29), true}, // leap day
		{"2023-02-29", Date{}, false},
		{"15/03/2024", Date{}, false},
		{"", Date{}, false},
	}
	for i, tc := range cases {
		got, err := ParseDate(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(tc.out) {
				t.Fatalf("case %d: got %v (err=%v), want %v", i, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("case %d: expected error for %q", i, tc.in)
		}
	}
}

func TestDateAddDays(t *testing.T) {
	d := NewDate(2024, 3, 1)
	if got := d.AddDays(-1); !got.Equal(NewDate(2024, 2, 29)) {
		t.Fatalf("leap rollover: got %v", got)
	}
	if got := d.AddDays(-30); !got.Equal(NewDate(2024, 1, 31)) {
		t.Fatalf("30-day step: got %v", got)
	}
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"", "00:00", "09:15", "23:59"}
	invalid := []string{"24:00", "9am", "12:60", "xx:yy", "noon"}
	for _, s := range valid {
		if !ValidTimeOfDay(s) {
			t.Fatalf("%q should be valid", s)
		}
	}
	for _, s := range invalid {
		if ValidTimeOfDay(s) {
			t.Fatalf("%q should be invalid", s)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err != nil {
		t.Fatalf("zero amounts are allowed, got %v", err)
	}
	if err := (Money{Cents: -1}).Validate(); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2025, 1, 1),
		Description: "ok",
		Amount:      Money{Cents: 100},
		Category:    "food",
		TimeOfDay:   "09:15",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Expense{
		{Date: Date{Time: time.Time{}}, Description: "a", Amount: Money{Cents: 1}, Category: "c"}, // zero date
		{Date: NewDate(2025, 1, 1), Description: "", Amount: Money{Cents: 1}, Category: "c"},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: Money{Cents: -1}, Category: "c"},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: Money{Cents: 1}, Category: ""},
		{Date: NewDate(2025, 1, 1), Description: "a", Amount: Money{Cents: 1}, Category: "c", TimeOfDay: "25:99"},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Account{
		{Username: "", Email: "a@b.c", PasswordHash: "x"},
		{Username: "a", Email: "not-an-email", PasswordHash: "x"},
		{Username: "a", Email: "a@b.c", PasswordHash: ""},
	}
	for i, a := range bads {
		if err := a.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}
