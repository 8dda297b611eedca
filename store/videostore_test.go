package store

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) VideoStore {
	t.Helper()

	videos, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := videos.Init(); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() { _ = videos.Close() })
	return videos
}

func TestOpen_RejectsUnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "dsn"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestCreateVideo_PopulatesRecord(t *testing.T) {
	videos := newTestStore(t)

	record, err := videos.CreateVideo(context.Background(),
		"demo", "a clip", "vid_1", "1048576", "524288", 12.5)
	if err != nil {
		t.Fatalf("CreateVideo error: %v", err)
	}
	if record.ID == "" {
		t.Error("expected a generated ID")
	}
	if record.Title != "demo" || record.PublicID != "vid_1" {
		t.Errorf("unexpected record fields: %+v", record)
	}
	if record.CompressedSize != "524288" || record.OriginalSize != "1048576" {
		t.Errorf("unexpected size fields: %+v", record)
	}
	if record.Duration != 12.5 {
		t.Errorf("expected duration 12.5, got %v", record.Duration)
	}
	if record.CreatedAt.IsZero() {
		t.Error("expected a creation timestamp")
	}
}

func TestListVideos_NewestFirst(t *testing.T) {
	videos := newTestStore(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := videos.CreateVideo(context.Background(), title, "", "vid_"+title, "1", "1", 0); err != nil {
			t.Fatalf("CreateVideo(%s) error: %v", title, err)
		}
		// Distinct timestamps so ordering is unambiguous.
		time.Sleep(2 * time.Millisecond)
	}

	records, err := videos.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Title != "third" || records[1].Title != "second" || records[2].Title != "first" {
		t.Errorf("expected newest-first ordering, got %q %q %q",
			records[0].Title, records[1].Title, records[2].Title)
	}
	for i := 0; i < len(records)-1; i++ {
		if records[i].CreatedAt.Before(records[i+1].CreatedAt) {
			t.Errorf("record %d created before record %d", i, i+1)
		}
	}

	// A fresh insert lands at the top on re-query.
	if _, err := videos.CreateVideo(context.Background(), "fourth", "", "vid_fourth", "1", "1", 0); err != nil {
		t.Fatalf("CreateVideo(fourth) error: %v", err)
	}
	records, err = videos.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if records[0].Title != "fourth" {
		t.Errorf("expected fourth first, got %q", records[0].Title)
	}
}

// Back-to-back inserts land within the same timestamp granularity;
// insertion order must still decide who lists first.
func TestListVideos_SameTimestampKeepsInsertionOrder(t *testing.T) {
	videos := newTestStore(t)

	for i := 0; i < 5; i++ {
		title := "clip-" + string(rune('a'+i))
		if _, err := videos.CreateVideo(context.Background(), title, "", "vid_"+title, "1", "1", 0); err != nil {
			t.Fatalf("CreateVideo(%s) error: %v", title, err)
		}
	}

	records, err := videos.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}
	for i, want := range []string{"clip-e", "clip-d", "clip-c", "clip-b", "clip-a"} {
		if records[i].Title != want {
			t.Errorf("position %d: expected %q, got %q", i, want, records[i].Title)
		}
	}
}

func TestListVideos_EmptyStore(t *testing.T) {
	videos := newTestStore(t)

	records, err := videos.ListVideos(context.Background())
	if err != nil {
		t.Fatalf("ListVideos error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}
