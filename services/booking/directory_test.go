package booking

import (
	"context"
	"reflect"
	"testing"
)

func TestGetDirectoryGroupsProviders(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers",
		directoryRow(2, "Center", "A"),
		directoryRow(3, "Center", "B"),
		directoryRow(4, "North", "C"),
	)

	svc := newTestService(store)

	dir, err := svc.GetDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(dir["Center"], []string{"A", "B"}) {
		t.Fatalf("expected providers in sheet order, got %v", dir["Center"])
	}
	if !reflect.DeepEqual(dir["North"], []string{"C"}) {
		t.Fatalf("unexpected providers for North: %v", dir["North"])
	}
}

func TestGetDirectorySkipsIncompleteRows(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers",
		directoryRow(2, "Center", "A"),
		directoryRow(3, "", "B"),
		directoryRow(4, "North", ""),
	)

	svc := newTestService(store)

	dir, err := svc.GetDirectory(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(dir) != 1 {
		t.Fatalf("expected incomplete rows to be skipped, got %v", dir)
	}
}

func TestGetDirectoryCached(t *testing.T) {
	store := newFakeStore()
	store.addSheet("Providers", directoryRow(2, "Center", "A"))

	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.GetDirectory(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	reads := store.readCalls

	if _, err := svc.GetDirectory(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.readCalls != reads {
		t.Fatalf("expected cached directory to avoid store reads, got %d more", store.readCalls-reads)
	}
}

func TestGetDirectoryMissingSheet(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	if _, err := svc.GetDirectory(context.Background()); err == nil {
		t.Fatalf("expected an error for a missing directory sheet")
	}
}
