package codec_test

import (
	"context"
	"testing"
	"time"

	onboarding "github.com/reoring/onboarding"
	"github.com/reoring/onboarding/codec"
)

func TestDate_DecodeUsesClockLocation(t *testing.T) {
	loc := time.FixedZone("X", 9*3600)
	ctx := onboarding.WithClock(context.Background(), onboarding.FixedClock(time.Date(2026, 10, 19, 12, 0, 0, 0, loc)))
	got, err := codec.Date().Decode(ctx, "2000-02-29")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Location() != loc || got.Year() != 2000 || got.Month() != time.February || got.Day() != 29 || got.Hour() != 0 {
		t.Fatalf("unexpected decoded date: %v", got)
	}
	s, err := codec.Date().Encode(ctx, got)
	if err != nil || s != "2000-02-29" {
		t.Fatalf("encode: %q %v", s, err)
	}
}

func TestDate_DecodeTimestampKeepsCalendarDate(t *testing.T) {
	got, err := codec.Date().Decode(context.Background(), "2026-11-01T23:30:00Z")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Day() != 1 || got.Month() != time.November {
		t.Fatalf("unexpected date: %v", got)
	}
}

func TestDate_DecodeInvalid(t *testing.T) {
	_, err := codec.Date().Decode(context.Background(), "31/12/2000")
	iss, ok := onboarding.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != onboarding.CodeInvalidFormat {
		t.Fatalf("expected invalid_format issue, got %v", err)
	}
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	ctx := context.Background()
	d, err := codec.TimeOfDay().Decode(ctx, "09:30")
	if err != nil || d != 9*time.Hour+30*time.Minute {
		t.Fatalf("decode: %v %v", d, err)
	}
	s, err := codec.TimeOfDay().Encode(ctx, d)
	if err != nil || s != "09:30" {
		t.Fatalf("encode: %q %v", s, err)
	}
	if _, err := codec.TimeOfDay().Decode(ctx, "25:00"); err == nil {
		t.Fatalf("expected 25:00 to be rejected")
	}
	if _, err := codec.TimeOfDay().Encode(ctx, 24*time.Hour); err == nil {
		t.Fatalf("expected 24h to be rejected")
	}
}

func TestCanonicalForms(t *testing.T) {
	ctx := onboarding.WithClock(context.Background(), onboarding.FixedClock(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)))
	dates := map[string]string{
		"1990-05-01":           "1990-05-01",
		" 1990-05-01 ":         "1990-05-01",
		"1990-05-01T00:00:00Z": "1990-05-01",
		"05/01/1990":           "05/01/1990",
	}
	for in, want := range dates {
		if got := codec.CanonicalDate(ctx, in); got != want {
			t.Fatalf("CanonicalDate(%q) = %q, want %q", in, got, want)
		}
	}
	times := map[string]string{
		"9:00":     "09:00",
		" 17:30 ":  "17:30",
		"08:15:00": "08:15",
		"08:15:30": "08:15:30",
		"noon":     "noon",
	}
	for in, want := range times {
		if got := codec.CanonicalTime(ctx, in); got != want {
			t.Fatalf("CanonicalTime(%q) = %q, want %q", in, got, want)
		}
	}
}
