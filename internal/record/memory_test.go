package record

import (
	"context"
	"strings"
	"testing"

	"lifehub-service/internal/apperror"
)

func TestMemoryServiceCRUD(t *testing.T) {
	svc := NewMemoryService("notes")
	ctx := context.Background()

	created, err := svc.Create(ctx, 7, "default", map[string]interface{}{"title": "First"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(created.ID, "rec_") {
		t.Fatalf("ID = %q, want rec_ prefix", created.ID)
	}
	if created.ModuleType != "notes" || created.UserID != 7 {
		t.Fatalf("unexpected record scope: %+v", created)
	}

	updated, err := svc.Update(ctx, 7, "default", created.ID, map[string]interface{}{"pinned": true})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Data["title"] != "First" {
		t.Fatal("update dropped existing fields")
	}
	if updated.Data["pinned"] != true {
		t.Fatal("update did not merge new field")
	}

	if err := svc.Delete(ctx, 7, "default", created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	records, err := svc.List(ctx, 7, "default", ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("got %d records after delete, want 0", len(records))
	}
}

func TestMemoryServiceScopesByUser(t *testing.T) {
	svc := NewMemoryService("notes")
	ctx := context.Background()

	mine, err := svc.Create(ctx, 1, "default", map[string]interface{}{"title": "Mine"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, 2, "default", mine.ID, map[string]interface{}{"title": "Stolen"}); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("cross-user update error = %v, want not found", err)
	}
	if err := svc.Delete(ctx, 2, "default", mine.ID); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("cross-user delete error = %v, want not found", err)
	}

	records, err := svc.List(ctx, 2, "default", ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("user 2 sees %d foreign records, want 0", len(records))
	}
}

func TestResolver(t *testing.T) {
	r := NewResolver()
	notes := NewMemoryService("notes")
	r.Register("notes", notes)

	got, ok := r.Lookup("notes")
	if !ok || got != Service(notes) {
		t.Fatal("Lookup did not return the registered service")
	}
	if _, ok := r.Lookup("tasks"); ok {
		t.Fatal("Lookup returned a service for an unbound name")
	}

	r.Register("tasks", NewMemoryService("tasks"))
	names := r.Names()
	if len(names) != 2 || names[0] != "notes" || names[1] != "tasks" {
		t.Fatalf("Names = %v, want [notes tasks]", names)
	}
}
