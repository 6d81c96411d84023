package utils

import (
	"testing"
	"time"
)

func TestParseFlexibleDate_ISO(t *testing.T) {
	got, err := ParseFlexibleDate("2024-04-03")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.April || got.Day() != 3 {
		t.Fatalf("wrong date: %v", got)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParseFlexibleDate_ISODatetimeKeepsWallClockDate(t *testing.T) {
	// Komponen tanggal mengikuti jam dinding lokal setelah konversi,
	// bukan field mentah dari string.
	got, err := ParseFlexibleDate("2024-04-03T15:30:00")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if FormatDate(got) != "2024-04-03" {
		t.Fatalf("wrong date: %v", got)
	}
}

func TestParseFlexibleDate_SlashDayFirstDefault(t *testing.T) {
	// 03/04/2024 ambigu; default day-first -> 3 April.
	got, err := ParseFlexibleDate("03/04/2024")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Day() != 3 || got.Month() != time.April {
		t.Fatalf("expected 3 April, got %v", got)
	}
}

func TestParseFlexibleDate_SlashMagnitudeDisambiguation(t *testing.T) {
	// 04/25/2024: komponen kedua > 12, jadi pasti hari.
	got, err := ParseFlexibleDate("04/25/2024")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Day() != 25 || got.Month() != time.April {
		t.Fatalf("expected 25 April, got %v", got)
	}

	got, err = ParseFlexibleDate("25/04/2024")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Day() != 25 || got.Month() != time.April {
		t.Fatalf("expected 25 April, got %v", got)
	}
}

func TestParseFlexibleDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "bukan tanggal", "13/13/2024", "31/02/2024", "2024-99-99"} {
		if _, err := ParseFlexibleDate(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in     string
		hour   int
		minute int
		ok     bool
	}{
		{"10:30 AM", 10, 30, true},
		{"10:30 PM", 22, 30, true},
		{"12:00 AM", 0, 0, true},
		{"12:00 PM", 12, 0, true},
		{"1:05 pm", 13, 5, true},
		{"14:45", 14, 45, true},
		{"14:45:30", 14, 45, true},
		{"0:00", 0, 0, true},
		{"25:00", 0, 0, false},
		{"10:75", 0, 0, false},
		{"siang", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, c := range cases {
		got, ok := ParseClock(c.in)
		if ok != c.ok {
			t.Fatalf("%q: ok=%v, expected %v", c.in, ok, c.ok)
		}
		if got.Hour != c.hour || got.Minute != c.minute {
			t.Fatalf("%q: got %02d:%02d", c.in, got.Hour, got.Minute)
		}
	}
}

func TestCombineLocal(t *testing.T) {
	date, err := ParseFlexibleDate("2024-04-03")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	got := CombineLocal(date, ClockTime{Hour: 14, Minute: 30})
	if got.Year() != 2024 || got.Month() != time.April || got.Day() != 3 {
		t.Fatalf("wrong date: %v", got)
	}
	if got.Hour() != 14 || got.Minute() != 30 {
		t.Fatalf("wrong clock: %v", got)
	}
	if got.Location() != time.Local {
		t.Fatalf("expected local tz, got %v", got.Location())
	}
}
