package documentview

import (
	"context"
	"testing"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
)

func TestListProperties(t *testing.T) {
	svc, _ := newTestService(t)

	props, err := svc.ListProperties(context.Background(), 1, "tasks", "")
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 2 || props[0].ID != "title" || props[1].ID != "status" {
		t.Fatalf("unexpected properties: %+v", props)
	}
}

func TestAddPropertyFillsDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	prop, err := svc.AddProperty(context.Background(), 1, "tasks", "", PropertyInput{})
	if err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	if prop.ID == "" {
		t.Fatal("id not assigned")
	}
	if prop.Name != "New Property" {
		t.Fatalf("name = %q, want New Property", prop.Name)
	}
	if prop.Type != model.PropertyTypeText {
		t.Fatalf("type = %q, want text", prop.Type)
	}
	if prop.Required || prop.Frozen {
		t.Fatalf("required/frozen should default false: %+v", prop)
	}
	if !prop.Visible {
		t.Fatal("visible should default true")
	}
	if prop.Order != 2 {
		t.Fatalf("order = %d, want current property count 2", prop.Order)
	}
	if prop.Width != 150 {
		t.Fatalf("width = %d, want 150", prop.Width)
	}
}

func TestAddPropertyAppearsInDefaultView(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	prop, err := svc.AddProperty(ctx, 1, "tasks", "", PropertyInput{ID: "dueDate", Name: "Due Date", Type: model.PropertyTypeDate})
	if err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	def, err := svc.GetDefaultView(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("GetDefaultView: %v", err)
	}
	if !def.ShowsProperty(prop.ID) {
		t.Fatalf("default view does not show %q: %+v", prop.ID, def.VisibleProperties)
	}
}

func TestAddPropertyRejectsDuplicateID(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProperty(ctx, 1, "tasks", "", PropertyInput{ID: "title"})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}

	props, listErr := svc.ListProperties(ctx, 1, "tasks", "")
	if listErr != nil {
		t.Fatalf("ListProperties: %v", listErr)
	}
	if len(props) != 2 {
		t.Fatalf("property set changed after rejected add: %+v", props)
	}
}

func TestAddPropertyRejectsUnknownType(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddProperty(context.Background(), 1, "tasks", "", PropertyInput{Type: "geolocation"})
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestUpdatePropertyCannotUnfreeze(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	frozen := false
	_, err := svc.UpdateProperty(ctx, 1, "tasks", "", "title", PropertyPatch{Frozen: &frozen})
	if !apperror.Is(err, apperror.CodeInvariantViolation) {
		t.Fatalf("err = %v, want invariant violation", err)
	}

	// Other fields of the same frozen property stay editable.
	width := 200
	prop, err := svc.UpdateProperty(ctx, 1, "tasks", "", "title", PropertyPatch{Width: &width})
	if err != nil {
		t.Fatalf("UpdateProperty(width): %v", err)
	}
	if prop.Width != 200 {
		t.Fatalf("width = %d, want 200", prop.Width)
	}
	if !prop.Frozen {
		t.Fatal("frozen flag must survive an unrelated update")
	}
}

func TestUpdatePropertyAllowsRefreezing(t *testing.T) {
	svc, _ := newTestService(t)

	// frozen:true on a frozen property is a no-op, not a violation.
	frozen := true
	prop, err := svc.UpdateProperty(context.Background(), 1, "tasks", "", "title", PropertyPatch{Frozen: &frozen})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if !prop.Frozen {
		t.Fatal("frozen flag cleared")
	}
}

func TestUpdatePropertyUnfreezesUserProperty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddProperty(ctx, 1, "tasks", "", PropertyInput{ID: "notes", Frozen: true}); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	// The guard only covers properties in the document view's frozen list;
	// a user-frozen property may be unfrozen again.
	frozen := false
	prop, err := svc.UpdateProperty(ctx, 1, "tasks", "", "notes", PropertyPatch{Frozen: &frozen})
	if err != nil {
		t.Fatalf("UpdateProperty: %v", err)
	}
	if prop.Frozen {
		t.Fatal("user property stayed frozen")
	}
}

func TestUpdatePropertyNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	width := 100
	_, err := svc.UpdateProperty(context.Background(), 1, "tasks", "", "nope", PropertyPatch{Width: &width})
	if !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestDeletePropertyProtectsRequiredAndFrozen(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, id := range []string{"title", "status"} {
		removed, err := svc.DeleteProperty(ctx, 1, "tasks", "", id)
		if err != nil {
			t.Fatalf("DeleteProperty(%s): %v", id, err)
		}
		if removed {
			t.Fatalf("DeleteProperty(%s) = true, want false", id)
		}
	}

	props, err := svc.ListProperties(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("protected properties were removed: %+v", props)
	}
}

func TestDeletePropertyRemovesUserProperty(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.AddProperty(ctx, 1, "tasks", "", PropertyInput{ID: "scratch"}); err != nil {
		t.Fatalf("AddProperty: %v", err)
	}

	removed, err := svc.DeleteProperty(ctx, 1, "tasks", "", "scratch")
	if err != nil {
		t.Fatalf("DeleteProperty: %v", err)
	}
	if !removed {
		t.Fatal("DeleteProperty = false, want true")
	}

	props, err := svc.ListProperties(ctx, 1, "tasks", "")
	if err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if len(props) != 2 {
		t.Fatalf("got %d properties, want 2 after removal", len(props))
	}
}

func TestDeletePropertyNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.DeleteProperty(context.Background(), 1, "tasks", "", "nope")
	if !apperror.Is(err, apperror.CodeNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestFrozenConfigAccessor(t *testing.T) {
	svc, _ := newTestService(t)

	fc, err := svc.FrozenConfig("tasks")
	if err != nil {
		t.Fatalf("FrozenConfig: %v", err)
	}
	if len(fc.Properties) != 2 {
		t.Fatalf("got %d rules, want 2", len(fc.Properties))
	}
	for _, rule := range fc.Properties {
		if rule.Reason != "System property" {
			t.Fatalf("rule reason = %q, want System property", rule.Reason)
		}
		if rule.AllowEdit || rule.AllowHide || rule.AllowDelete {
			t.Fatalf("synthesized rules must deny everything: %+v", rule)
		}
	}

	if _, err := svc.FrozenConfig("spaceships"); !apperror.Is(err, apperror.CodeConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}
