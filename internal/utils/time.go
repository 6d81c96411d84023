package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	layoutDate     = "2006-01-02"
	layoutDateTime = "2006-01-02 15:04:05"
)

var (
	isoDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	slashRe    = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	clock12hRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?$`)
	clock24hRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// ParseDateTime parses "YYYY-MM-DD HH:MM:SS" in local timezone.
func ParseDateTime(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDateTime, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatDateTime formats time to "YYYY-MM-DD HH:MM:SS" in local timezone.
func FormatDateTime(t time.Time) string {
	return t.In(time.Local).Format(layoutDateTime)
}

// ParseFlexibleDate normalizes the date shapes that arrive from booking
// imports and the return form into a local calendar date (midnight, local tz).
//
// Accepted, in priority order:
//  1. YYYY-MM-DD            -> exact calendar date, no tz conversion
//  2. ISO datetime with 'T' -> calendar date of the LOCAL wall clock
//  3. D/M/YYYY or M/D/YYYY  -> magnitude disambiguation, day-first when
//     both components are <= 12
//  4. a few legacy layouts  -> "YYYY-MM-DD HH:MM:SS", "2 Jan 2006", ...
//
// Anything else is rejected; callers must not continue costing with an
// unparseable date.
func ParseFlexibleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("tanggal kosong")
	}

	if isoDateRe.MatchString(s) {
		return time.ParseInLocation(layoutDate, s, time.Local)
	}

	if strings.ContainsRune(s, 'T') {
		// Ambil tanggal dari jam dinding lokal, bukan field UTC,
		// supaya tidak geser sehari untuk zona di barat/timur UTC.
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return midnightLocal(t.In(time.Local)), nil
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
			return midnightLocal(t), nil
		}
		if t, err := time.ParseInLocation("2006-01-02T15:04", s, time.Local); err == nil {
			return midnightLocal(t), nil
		}
		return time.Time{}, fmt.Errorf("format datetime tidak dikenali: %q", s)
	}

	if m := slashRe.FindStringSubmatch(s); m != nil {
		first, _ := strconv.Atoi(m[1])
		second, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])

		day, month := first, second
		if first > 12 && second > 12 {
			return time.Time{}, fmt.Errorf("tanggal tidak valid: %q", s)
		}
		if second > 12 {
			// komponen kedua pasti hari
			day, month = second, first
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return time.Time{}, fmt.Errorf("tanggal tidak valid: %q", s)
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		if t.Day() != day || t.Month() != time.Month(month) {
			// time.Date menormalisasi 31/02 dst, tolak sebagai input salah
			return time.Time{}, fmt.Errorf("tanggal tidak valid: %q", s)
		}
		return t, nil
	}

	for _, layout := range []string{layoutDateTime, "2 Jan 2006", "Jan 2, 2006", "02-01-2006"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return midnightLocal(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("format tanggal tidak dikenali: %q", s)
}

// ClockTime is a wall-clock hour/minute pair without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses "H:MM AM/PM" (12h) or "H:MM[:SS]" (24h). Unrecognized
// input falls back to midnight with ok=false; duration is still meaningful
// relative to a known date, so a bad time never fails the whole calculation.
func ParseClock(s string) (ClockTime, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ClockTime{}, false
	}

	if m := clock12hRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return ClockTime{}, false
		}
		if hour == 12 {
			hour = 0
		}
		if strings.EqualFold(m[3], "p") {
			hour += 12
		}
		return ClockTime{Hour: hour, Minute: minute}, true
	}

	if m := clock24hRe.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return ClockTime{}, false
		}
		return ClockTime{Hour: hour, Minute: minute}, true
	}

	return ClockTime{}, false
}

// CombineLocal builds a single local instant from a calendar date and a
// clock time. Pure wall-clock assembly, no timezone arithmetic.
func CombineLocal(date time.Time, c ClockTime) time.Time {
	d := date.In(time.Local)
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour, c.Minute, 0, 0, time.Local)
}

func midnightLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
