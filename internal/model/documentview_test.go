package model

import (
	"testing"

	"lifehub-service/internal/apperror"
)

func sampleDocumentView() *DocumentView {
	return &DocumentView{
		UserID:     1,
		ModuleType: "tasks",
		DatabaseID: "default",
		Properties: PropertyList{
			{ID: "title", Name: "Title", Required: true, Frozen: true},
			{ID: "status", Name: "Status", Required: true, Frozen: true},
			{ID: "notes", Name: "Notes"},
		},
		Views: ViewList{
			{ID: "main", Name: "Main", IsDefault: true},
			{ID: "pinned", Name: "Pinned", Config: JSONMap{"isSystemView": true}},
			{ID: "scratch", Name: "Scratch"},
		},
		RequiredProperties: StringList{"title", "status"},
		FrozenProperties:   StringList{"title", "status"},
	}
}

func TestDefaultViewFallback(t *testing.T) {
	dv := sampleDocumentView()
	if got := dv.DefaultView(); got == nil || got.ID != "main" {
		t.Fatalf("DefaultView = %+v, want main", got)
	}

	// Without an explicit default the first view wins.
	dv.Views[0].IsDefault = false
	if got := dv.DefaultView(); got == nil || got.ID != "main" {
		t.Fatalf("DefaultView = %+v, want first view", got)
	}

	dv.Views = nil
	if got := dv.DefaultView(); got != nil {
		t.Fatalf("DefaultView = %+v, want nil", got)
	}
}

func TestIsSystemView(t *testing.T) {
	tests := []struct {
		name string
		view View
		want bool
	}{
		{"nil config", View{}, false},
		{"flag set", View{Config: JSONMap{"isSystemView": true}}, true},
		{"flag false", View{Config: JSONMap{"isSystemView": false}}, false},
		{"flag not boolean", View{Config: JSONMap{"isSystemView": "yes"}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.view.IsSystemView(); got != tc.want {
				t.Fatalf("IsSystemView = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRemoveViewRules(t *testing.T) {
	dv := sampleDocumentView()

	if err := dv.RemoveView("main"); !apperror.Is(err, apperror.CodeInvariantViolation) {
		t.Fatalf("removing default view: %v, want invariant violation", err)
	}
	if err := dv.RemoveView("pinned"); !apperror.Is(err, apperror.CodeInvariantViolation) {
		t.Fatalf("removing system view: %v, want invariant violation", err)
	}
	if err := dv.RemoveView("missing"); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("removing missing view: %v, want not found", err)
	}
	if len(dv.Views) != 3 {
		t.Fatalf("failed removals changed the view list: %+v", dv.Views)
	}

	if err := dv.RemoveView("scratch"); err != nil {
		t.Fatalf("RemoveView(scratch): %v", err)
	}
	if len(dv.Views) != 2 || dv.ViewByID("scratch") != nil {
		t.Fatalf("scratch not removed: %+v", dv.Views)
	}
}

func TestRemovePropertyRules(t *testing.T) {
	dv := sampleDocumentView()

	if err := dv.RemoveProperty("title"); !apperror.Is(err, apperror.CodeInvariantViolation) {
		t.Fatalf("removing required property: %v, want invariant violation", err)
	}
	if err := dv.RemoveProperty("missing"); !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("removing missing property: %v, want not found", err)
	}
	if err := dv.RemoveProperty("notes"); err != nil {
		t.Fatalf("RemoveProperty(notes): %v", err)
	}
	if dv.HasProperty("notes") {
		t.Fatal("notes still present")
	}
}

func TestGuardUnfreeze(t *testing.T) {
	dv := sampleDocumentView()
	no := false
	yes := true

	if err := dv.GuardUnfreeze("title", &no); !apperror.Is(err, apperror.CodeInvariantViolation) {
		t.Fatalf("unfreezing system property: %v, want invariant violation", err)
	}
	if err := dv.GuardUnfreeze("title", &yes); err != nil {
		t.Fatalf("re-freezing: %v", err)
	}
	if err := dv.GuardUnfreeze("title", nil); err != nil {
		t.Fatalf("patch without frozen: %v", err)
	}
	if err := dv.GuardUnfreeze("notes", &no); err != nil {
		t.Fatalf("unfreezing user property: %v", err)
	}
}

func TestStringListScan(t *testing.T) {
	var fromBytes StringList
	if err := fromBytes.Scan([]byte(`["a","b"]`)); err != nil {
		t.Fatalf("Scan bytes: %v", err)
	}
	if len(fromBytes) != 2 || !fromBytes.Contains("b") {
		t.Fatalf("scanned = %v", fromBytes)
	}

	var fromString StringList
	if err := fromString.Scan(`["c"]`); err != nil {
		t.Fatalf("Scan string: %v", err)
	}
	if !fromString.Contains("c") {
		t.Fatalf("scanned = %v", fromString)
	}

	value, err := StringList(nil).Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if string(value.([]byte)) != "[]" {
		t.Fatalf("nil list serialized as %s, want []", value)
	}
}
