package domain

import (
	"errors"
	"math"
	coreerrors "presencewatch/internal/core/errors"
	"testing"
	"time"
)

func TestParseState_AcceptsBothStatesCaseInsensitive(t *testing.T) {
	cases := map[string]State{
		"online":   Online,
		"ONLINE":   Online,
		" offline": Offline,
		"Offline":  Offline,
	}
	for raw, want := range cases {
		got, err := ParseState(raw)
		if err != nil {
			t.Fatalf("ParseState(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Errorf("ParseState(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestParseState_RejectsUnknown(t *testing.T) {
	if _, err := ParseState("true"); !errors.Is(err, coreerrors.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSessionEndAt_OpenSessionUsesAsOf(t *testing.T) {
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s := Session{DeviceID: "d", Start: start, Open: true}

	asOf := start.Add(90 * time.Minute)
	if got := s.EndAt(asOf); !got.Equal(asOf) {
		t.Fatalf("expected open session to end at asOf %v, got %v", asOf, got)
	}
	// asOf before the start never ends the session before it began
	if got := s.EndAt(start.Add(-time.Hour)); !got.Equal(start) {
		t.Fatalf("expected end clamped to start %v, got %v", start, got)
	}
}

func TestSessionOverlap_ClipsBothSides(t *testing.T) {
	start := time.Date(2025, 1, 1, 22, 0, 0, 0, time.UTC)
	s := Session{Start: start, End: start.Add(4 * time.Hour)}

	dayStart := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	got := s.Overlap(dayStart, dayStart.Add(24*time.Hour), dayStart)
	if got != 2*time.Hour {
		t.Fatalf("expected 2h overlap, got %v", got)
	}

	if got := s.Overlap(dayStart.Add(24*time.Hour), dayStart.Add(48*time.Hour), dayStart); got != 0 {
		t.Fatalf("expected no overlap, got %v", got)
	}
}

func TestSummarize_ComputesCountMeanAndMax(t *testing.T) {
	daily := []DailyStat{
		{OnlineHours: 2, Online: true},
		{OnlineHours: 0, Online: false},
		{OnlineHours: 7, Online: true},
	}

	got := Summarize(daily)
	if got.TotalOnlineDays != 2 {
		t.Errorf("expected TotalOnlineDays=2, got %d", got.TotalOnlineDays)
	}
	if math.Abs(got.AverageHoursPerDay-3.0) > 0.0001 {
		t.Errorf("expected average 3, got %f", got.AverageHoursPerDay)
	}
	if got.MaxHoursOnline != 7 {
		t.Errorf("expected max 7, got %f", got.MaxHoursOnline)
	}
}

func TestSummarize_EmptyIsZero(t *testing.T) {
	if got := Summarize(nil); got != (PersonSummary{}) {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}
