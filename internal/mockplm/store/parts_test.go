package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

var _ store.PartStore = (*store.SQLitePartStore)(nil)

func TestPartCreateAndSearch(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	rev, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: "SEAT-010", Name: "Front seat"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rev.Version != "A" || !rev.CheckedOut {
		t.Errorf("revision = %+v, want version A checked out", rev)
	}

	masters, err := s.Parts.Search(ctx, "wks-test", "SEAT", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(masters) != 1 {
		t.Fatalf("search results = %d, want 1", len(masters))
	}
	if masters[0].Number != "SEAT-010" {
		t.Errorf("number = %q, want %q", masters[0].Number, "SEAT-010")
	}
	if masters[0].LastRevision == nil || masters[0].LastRevision.Version != "A" {
		t.Errorf("last revision = %+v, want version A", masters[0].LastRevision)
	}
}

func TestPartCreateDuplicateConflict(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	part := plm.PartCreation{Number: "SEAT-010"}
	if _, err := s.Parts.Create(ctx, "wks-test", "rob", part); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := s.Parts.Create(ctx, "wks-test", "rob", part)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestPartSearchLimit(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	for _, number := range []string{"BOLT-001", "BOLT-002", "BOLT-003"} {
		if _, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: number}); err != nil {
			t.Fatalf("create %s: %v", number, err)
		}
	}

	masters, err := s.Parts.Search(ctx, "wks-test", "BOLT", 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(masters) != 2 {
		t.Errorf("search results = %d, want 2", len(masters))
	}
}

func TestPartAssemblyLifecycle(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	for _, number := range []string{"SEAT-010", "CAR-001"} {
		if _, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: number}); err != nil {
			t.Fatalf("create %s: %v", number, err)
		}
		if err := s.Parts.CheckIn(ctx, "wks-test", number, "A", "rob"); err != nil {
			t.Fatalf("check in %s: %v", number, err)
		}
	}

	if err := s.Parts.CheckOut(ctx, "wks-test", "CAR-001", "A", "rob"); err != nil {
		t.Fatalf("check out: %v", err)
	}
	rev, err := s.Parts.GetRevision(ctx, "wks-test", "CAR-001", "A")
	if err != nil {
		t.Fatalf("get revision: %v", err)
	}

	it := *rev.LastIteration()
	it.Components = []plm.PartUsageLink{{
		Component:    plm.Component{Number: "SEAT-010"},
		Amount:       2,
		CADInstances: []plm.CADInstance{{TX: -0.4}, {TX: 0.4}},
	}}
	if err := s.Parts.UpdateIteration(ctx, "wks-test", "rob", it); err != nil {
		t.Fatalf("update iteration: %v", err)
	}
	if err := s.Parts.CheckIn(ctx, "wks-test", "CAR-001", "A", "rob"); err != nil {
		t.Fatalf("check in assembly: %v", err)
	}

	rev, err = s.Parts.GetRevision(ctx, "wks-test", "CAR-001", "A")
	if err != nil {
		t.Fatalf("reload revision: %v", err)
	}
	last := rev.LastIteration()
	if last.Iteration != 2 {
		t.Fatalf("last iteration = %d, want 2", last.Iteration)
	}
	if len(last.Components) != 1 || last.Components[0].Amount != 2 {
		t.Errorf("components = %+v, want one link with amount 2", last.Components)
	}
}

func TestPartConversionPendingThenDone(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	if _, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: "SEAT-010"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Parts.AddFile(ctx, "wks-test", "SEAT-010", "A", 1, "nativecad", "seat.obj", 42); err != nil {
		t.Fatalf("add file: %v", err)
	}

	status, err := s.Parts.ConversionStatus(ctx, "wks-test", "SEAT-010", "A", 1)
	if err != nil {
		t.Fatalf("first poll: %v", err)
	}
	if status.Status != plm.ConversionPending {
		t.Errorf("first poll status = %q, want %q", status.Status, plm.ConversionPending)
	}

	status, err = s.Parts.ConversionStatus(ctx, "wks-test", "SEAT-010", "A", 1)
	if err != nil {
		t.Fatalf("second poll: %v", err)
	}
	if status.Status != plm.ConversionDone {
		t.Errorf("second poll status = %q, want %q", status.Status, plm.ConversionDone)
	}
}

func TestPartConversionAttachedFileNotTracked(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	if _, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: "SEAT-010"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Parts.AddFile(ctx, "wks-test", "SEAT-010", "A", 1, "attached", "notes.txt", 10); err != nil {
		t.Fatalf("add file: %v", err)
	}

	_, err := s.Parts.ConversionStatus(ctx, "wks-test", "SEAT-010", "A", 1)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
