package blob

import (
	"bytes"
	"context"
	"testing"
)

func TestLocalStore(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewLocalStore failed: %v", err)
	}
	ctx := context.Background()

	t.Run("put and get round-trip", func(t *testing.T) {
		data := []byte("spreadsheet bytes")
		if err := store.Put(ctx, "tenant-1/2026-W30-upload-123.xlsx", data); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := store.Get(ctx, "tenant-1/2026-W30-upload-123.xlsx")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("expected %q, got %q", data, got)
		}
	})

	t.Run("overwrite replaces the object", func(t *testing.T) {
		if err := store.Put(ctx, "tenant-1/file", []byte("v1")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Put(ctx, "tenant-1/file", []byte("v2")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, "tenant-1/file")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v2" {
			t.Errorf("expected v2, got %q", got)
		}
	})

	t.Run("missing key is an error", func(t *testing.T) {
		if _, err := store.Get(ctx, "tenant-1/nope"); err == nil {
			t.Error("expected error for missing key")
		}
	})

	t.Run("keys cannot escape the root", func(t *testing.T) {
		for _, key := range []string{"../outside", "a/../../outside", "/etc/passwd"} {
			if err := store.Put(ctx, key, []byte("x")); err == nil {
				t.Errorf("key %q: expected rejection", key)
			}
			if _, err := store.Get(ctx, key); err == nil {
				t.Errorf("key %q: expected rejection", key)
			}
		}
	})
}
