package memory

import (
	"strconv"
	"testing"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/domain"
)

func TestRingLogOverwritesOldest(t *testing.T) {
	t.Parallel()

	r := newRingLog(1000)
	for i := 0; i <= 1000; i++ {
		r.push(domain.CommandEvent{CommandName: strconv.Itoa(i), UserID: "u"})
	}

	events := r.snapshot()
	if len(events) != 1000 {
		t.Fatalf("expected 1000 retained events, got %d", len(events))
	}
	// Item 0 was overwritten; items 1..1000 survive in insertion order.
	if events[0].CommandName != "1" {
		t.Fatalf("expected oldest surviving item 1, got %s", events[0].CommandName)
	}
	if events[999].CommandName != "1000" {
		t.Fatalf("expected newest item 1000, got %s", events[999].CommandName)
	}
	for i := 1; i < len(events); i++ {
		prev, _ := strconv.Atoi(events[i-1].CommandName)
		cur, _ := strconv.Atoi(events[i].CommandName)
		if cur != prev+1 {
			t.Fatalf("order broken at index %d: %d then %d", i, prev, cur)
		}
	}
}

func TestRingLogPartialFill(t *testing.T) {
	t.Parallel()

	r := newRingLog(10)
	for i := 0; i < 4; i++ {
		r.push(domain.CommandEvent{CommandName: strconv.Itoa(i), UserID: "u"})
	}
	events := r.snapshot()
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	for i, e := range events {
		if e.CommandName != strconv.Itoa(i) {
			t.Fatalf("expected insertion order, got %v at %d", e.CommandName, i)
		}
	}
}

func TestRingLogClear(t *testing.T) {
	t.Parallel()

	r := newRingLog(5)
	for i := 0; i < 7; i++ {
		r.push(domain.CommandEvent{CommandName: strconv.Itoa(i), UserID: "u"})
	}
	r.clear()
	if r.len() != 0 {
		t.Fatalf("expected empty log after clear, got %d", r.len())
	}
	if got := r.snapshot(); len(got) != 0 {
		t.Fatalf("expected empty snapshot after clear, got %d", len(got))
	}

	r.push(domain.CommandEvent{CommandName: "fresh", UserID: "u"})
	events := r.snapshot()
	if len(events) != 1 || events[0].CommandName != "fresh" {
		t.Fatalf("expected single fresh event after clear")
	}
}
