package rdb

import (
	"context"
	"errors"
	"testing"

	"github.com/naccdata/flywheel-extensions/domain/model"
)

func openTestDB(t *testing.T) (*GroupRepository, *ProjectRepository) {
	t.Helper()
	db, err := OpenFromURL("sqlite::memory:")
	if err != nil {
		t.Fatalf("OpenFromURL: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return NewGroupRepository(db), NewProjectRepository(db)
}

func TestOpenFromURL_UnsupportedScheme(t *testing.T) {
	if _, err := OpenFromURL("postgres://localhost/db"); err == nil {
		t.Fatalf("expected error for unsupported scheme")
	}
}

func TestGroupRepository(t *testing.T) {
	ctx := context.Background()
	groups, _ := openTestDB(t)

	if _, err := groups.Get(ctx, "alpha-adrc"); !errors.Is(err, model.ErrGroupNotFound) {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
	g := &model.Group{ID: "alpha-adrc", Label: "Alpha ADRC"}
	if err := groups.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not populated")
	}
	if err := groups.Create(ctx, &model.Group{ID: "alpha-adrc", Label: "Again"}); !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("expected conflict, got %v", err)
	}
	got, err := groups.Get(ctx, "alpha-adrc")
	if err != nil || got.Label != "Alpha ADRC" {
		t.Fatalf("Get = %+v, %v", got, err)
	}
}

func TestProjectRepository(t *testing.T) {
	ctx := context.Background()
	groups, projects := openTestDB(t)

	d := &model.ProjectDescriptor{Group: "alpha-adrc", Label: "ingest-form", Info: map[string]string{"datatype": "form"}}
	if _, err := projects.Create(ctx, d); !errors.Is(err, model.ErrProjectNotFound) {
		t.Fatalf("expected 404 for missing group, got %v", err)
	}
	if err := groups.Create(ctx, &model.Group{ID: "alpha-adrc", Label: "Alpha ADRC"}); err != nil {
		t.Fatalf("group Create: %v", err)
	}

	p, err := projects.Create(ctx, d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Info["datatype"] != "form" || p.Group != "alpha-adrc" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if _, err := projects.Create(ctx, d); model.KindOf(err) != model.ErrorKindAPI || !errors.Is(err, model.ErrAlreadyExists) {
		t.Fatalf("expected 409 ApiError, got %v", err)
	}

	got, err := projects.Lookup(ctx, "alpha-adrc", "ingest-form")
	if err != nil || got.ID != p.ID || got.Info["datatype"] != "form" {
		t.Fatalf("Lookup = %+v, %v", got, err)
	}
	if _, err := projects.Lookup(ctx, "alpha-adrc", "accepted"); !errors.Is(err, model.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	if _, err := projects.Create(ctx, &model.ProjectDescriptor{Group: "alpha-adrc", Label: "accepted"}); err != nil {
		t.Fatalf("Create accepted: %v", err)
	}
	list, err := projects.List(ctx, "alpha-adrc")
	if err != nil || len(list) != 2 || list[0].Label != "accepted" {
		t.Fatalf("List = %+v, %v", list, err)
	}
}
