package cache

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDecodeStoredEntry(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(storedEntry{
		Value:    []byte(`{"itemId":5729}`),
		StoredAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	entry, err := decodeStoredEntry(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if string(entry.Value) != `{"itemId":5729}` {
		t.Fatalf("unexpected value: %s", entry.Value)
	}
}

func TestDecodeStoredEntryRejectsMalformedData(t *testing.T) {
	t.Parallel()

	// Bytes written by another process without the envelope must error so the
	// read path can delete the key and report a miss.
	for _, raw := range [][]byte{
		[]byte("not json at all"),
		[]byte(`"bare string"`),
		[]byte(`{"value":"not base64!!"}`),
		{},
	} {
		if _, err := decodeStoredEntry(raw); err == nil {
			t.Fatalf("expected decode error for %q", raw)
		}
	}
}
