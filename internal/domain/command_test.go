package domain

import (
	"testing"
	"time"
)

func TestCommandEventValidate(t *testing.T) {
	t.Parallel()

	valid := CommandEvent{CommandName: "dye", UserID: "u"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got %v", err)
	}
	for _, e := range []CommandEvent{
		{},
		{CommandName: "dye"},
		{UserID: "u"},
		{CommandName: "  ", UserID: "u"},
	} {
		if err := e.Validate(); err != ErrInvalidInput {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", e, err)
		}
	}
}

func TestDayBucketAndBounds(t *testing.T) {
	t.Parallel()

	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2026, 7, 31, 23, 30, 0, 0, loc)

	if got := DayBucket(ts); got != "2026-08-01" {
		t.Fatalf("expected UTC bucket 2026-08-01, got %q", got)
	}

	start, end := DayBounds(ts)
	if !start.Equal(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day start: %v", start)
	}
	if !end.Equal(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected day end: %v", end)
	}
}
