package moduleconfig

import (
	"testing"

	"lifehub-service/internal/apperror"
)

func TestRegistryRoundTrip(t *testing.T) {
	reg := NewRegistry()
	cfg := &ModuleConfig{ModuleType: "tasks", DisplayName: "Task"}

	reg.Register(cfg)

	got, err := reg.GetModuleConfig("tasks")
	if err != nil {
		t.Fatalf("GetModuleConfig: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want the registered config", got)
	}
}

func TestRegistryUnknownModule(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.GetModuleConfig("spaceships")
	if err == nil {
		t.Fatal("expected error for unknown module type")
	}
	if apperror.CodeOf(err) != apperror.CodeConfiguration {
		t.Fatalf("code = %q, want %q", apperror.CodeOf(err), apperror.CodeConfiguration)
	}
	want := `module "spaceships" is not registered`
	if apperror.MessageOf(err) != want {
		t.Fatalf("message = %q, want %q", apperror.MessageOf(err), want)
	}
}

func TestRegistryLastWriteWins(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&ModuleConfig{ModuleType: "tasks", DisplayName: "First"})
	reg.Register(&ModuleConfig{ModuleType: "tasks", DisplayName: "Second"})

	got, err := reg.GetModuleConfig("tasks")
	if err != nil {
		t.Fatalf("GetModuleConfig: %v", err)
	}
	if got.DisplayName != "Second" {
		t.Fatalf("DisplayName = %q, want %q", got.DisplayName, "Second")
	}
	if reg.Count() != 1 {
		t.Fatalf("Count = %d, want 1", reg.Count())
	}
}

func TestRegistryModuleTypesSorted(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&ModuleConfig{ModuleType: "notes"})
	reg.Register(&ModuleConfig{ModuleType: "books"})
	reg.Register(&ModuleConfig{ModuleType: "tasks"})

	got := reg.ModuleTypes()
	want := []string{"books", "notes", "tasks"}
	if len(got) != len(want) {
		t.Fatalf("ModuleTypes = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ModuleTypes = %v, want %v", got, want)
		}
	}
}

func TestRegistryHas(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&ModuleConfig{ModuleType: "habits"})

	if !reg.Has("habits") {
		t.Fatal("Has(habits) = false, want true")
	}
	if reg.Has("moods") {
		t.Fatal("Has(moods) = true, want false")
	}
}
