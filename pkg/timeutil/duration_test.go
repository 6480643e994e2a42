package timeutil

import (
	"testing"
	"time"
)

func TestParseLengthDefault(t *testing.T) {
	dur, label, err := ParseLength("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dur != time.Hour {
		t.Fatalf("expected 1h, got %v", dur)
	}
	if label != "01H 00M" {
		t.Fatalf("unexpected label %s", label)
	}
}

func TestParseLengthComposite(t *testing.T) {
	dur, label, err := ParseLength("1d2h30m")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 26*time.Hour + 30*time.Minute
	if dur != want {
		t.Fatalf("expected %v, got %v", want, dur)
	}
	if label != "01D 02H 30M" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseLengthInvalid(t *testing.T) {
	if _, _, err := ParseLength("noop"); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestFormatLengthDropsLeadingUnits(t *testing.T) {
	cases := map[time.Duration]string{
		0:                            "00M",
		45 * time.Minute:             "45M",
		3*time.Hour + 5*time.Minute:  "03H 05M",
		49*time.Hour + 1*time.Minute: "02D 01H 01M",
	}
	for d, want := range cases {
		if got := FormatLength(d); got != want {
			t.Errorf("FormatLength(%v) = %q want %q", d, got, want)
		}
	}
}

func TestSpan(t *testing.T) {
	start := time.Date(2025, time.March, 18, 10, 0, 0, 0, time.UTC)
	if got := Span(start, start.Add(48*time.Hour)); got != "Mar 18 - 20" {
		t.Fatalf("same month span %q", got)
	}
	if got := Span(start, start.AddDate(0, 1, 0)); got != "Mar 18 - Apr 18" {
		t.Fatalf("cross month span %q", got)
	}
}
