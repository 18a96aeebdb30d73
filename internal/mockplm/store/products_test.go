package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/openplm/plmseed/internal/mockplm/store"
	"github.com/openplm/plmseed/internal/plm"
)

var _ store.ProductStore = (*store.SQLiteProductStore)(nil)

// seedAssembly creates CAR-001 with two SEAT-010 children, checked in.
func seedAssembly(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	for _, number := range []string{"SEAT-010", "CAR-001"} {
		if _, err := s.Parts.Create(ctx, "wks-test", "rob", plm.PartCreation{Number: number}); err != nil {
			t.Fatalf("create %s: %v", number, err)
		}
	}

	rev, err := s.Parts.GetRevision(ctx, "wks-test", "CAR-001", "A")
	if err != nil {
		t.Fatalf("get revision: %v", err)
	}
	it := *rev.LastIteration()
	it.Components = []plm.PartUsageLink{{
		Component: plm.Component{Number: "SEAT-010"},
		Amount:    2,
	}}
	if err := s.Parts.UpdateIteration(ctx, "wks-test", "rob", it); err != nil {
		t.Fatalf("update iteration: %v", err)
	}
	for _, number := range []string{"SEAT-010", "CAR-001"} {
		if err := s.Parts.CheckIn(ctx, "wks-test", number, "A", "rob"); err != nil {
			t.Fatalf("check in %s: %v", number, err)
		}
	}
}

func TestProductCreateMissingRootPart(t *testing.T) {
	s := setupWorkspace(t)
	ctx := context.Background()

	err := s.Products.Create(ctx, "wks-test", plm.ConfigurationItem{ID: "CityCar", DesignItemNumber: "CAR-001"})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestProductStructurePaths(t *testing.T) {
	s := setupWorkspace(t)
	seedAssembly(t, s)
	ctx := context.Background()

	if err := s.Products.Create(ctx, "wks-test", plm.ConfigurationItem{ID: "CityCar", DesignItemNumber: "CAR-001"}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	root, err := s.Products.Structure(ctx, "wks-test", "CityCar")
	if err != nil {
		t.Fatalf("structure: %v", err)
	}
	if root.Number != "CAR-001" || root.Path != "CAR-001" {
		t.Errorf("root = %+v, want CAR-001 at path CAR-001", root)
	}
	if len(root.Components) != 1 {
		t.Fatalf("components = %d, want 1", len(root.Components))
	}
	child := root.Components[0]
	if child.Number != "SEAT-010" || child.Path != "CAR-001/SEAT-010" {
		t.Errorf("child = %+v, want SEAT-010 at path CAR-001/SEAT-010", child)
	}
}

func TestProductDuplicateConflict(t *testing.T) {
	s := setupWorkspace(t)
	seedAssembly(t, s)
	ctx := context.Background()

	item := plm.ConfigurationItem{ID: "CityCar", DesignItemNumber: "CAR-001"}
	if err := s.Products.Create(ctx, "wks-test", item); err != nil {
		t.Fatalf("create product: %v", err)
	}
	err := s.Products.Create(ctx, "wks-test", item)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestProductBaselinesAndInstances(t *testing.T) {
	s := setupWorkspace(t)
	seedAssembly(t, s)
	ctx := context.Background()

	if err := s.Products.Create(ctx, "wks-test", plm.ConfigurationItem{ID: "CityCar", DesignItemNumber: "CAR-001"}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	created, err := s.Products.CreateBaseline(ctx, "wks-test", plm.Baseline{
		ConfigurationItemID: "CityCar",
		Name:                "CityCar-1.0",
		Type:                plm.BaselineLatest,
	})
	if err != nil {
		t.Fatalf("create baseline: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a generated baseline id")
	}

	baselines, err := s.Products.Baselines(ctx, "wks-test", "CityCar")
	if err != nil {
		t.Fatalf("list baselines: %v", err)
	}
	if len(baselines) != 1 || baselines[0].Name != "CityCar-1.0" {
		t.Fatalf("baselines = %+v, want CityCar-1.0", baselines)
	}

	err = s.Products.CreateInstance(ctx, "wks-test", plm.ProductInstance{
		ConfigurationItemID: "CityCar",
		SerialNumber:        "CITYCAR-0001",
		BaselineID:          created.ID,
	})
	if err != nil {
		t.Fatalf("create instance: %v", err)
	}

	// An instance cannot reference a baseline that does not exist.
	err = s.Products.CreateInstance(ctx, "wks-test", plm.ProductInstance{
		ConfigurationItemID: "CityCar",
		SerialNumber:        "CITYCAR-0002",
		BaselineID:          9999,
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestProductPathToPathLink(t *testing.T) {
	s := setupWorkspace(t)
	seedAssembly(t, s)
	ctx := context.Background()

	if err := s.Products.Create(ctx, "wks-test", plm.ConfigurationItem{ID: "CityCar", DesignItemNumber: "CAR-001"}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	link := plm.PathToPathLink{Type: "mechanical", SourcePath: "CAR-001/SEAT-010", TargetPath: "CAR-001"}
	if err := s.Products.CreatePathToPathLink(ctx, "wks-test", "CityCar", link); err != nil {
		t.Fatalf("create link: %v", err)
	}

	err := s.Products.CreatePathToPathLink(ctx, "wks-test", "NoSuchProduct", link)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
