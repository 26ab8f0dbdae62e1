package documentview

import (
	"context"
	"fmt"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
)

// PropertyInput is the caller-supplied part of a new property. An explicit
// id is honored when it does not collide; omitted fields get documented
// defaults.
type PropertyInput struct {
	ID           string                    `json:"id"`
	Name         string                    `json:"name"`
	Type         model.PropertyType        `json:"type"`
	Required     bool                      `json:"required"`
	Frozen       bool                      `json:"frozen"`
	Visible      *bool                     `json:"visible"`
	Order        *int                      `json:"order"`
	Width        *int                      `json:"width"`
	DefaultValue interface{}               `json:"defaultValue"`
	Options      []model.PropertyOption    `json:"options"`
	Validation   *model.PropertyValidation `json:"validation"`
}

// PropertyPatch is a partial property update. Nil fields are left untouched.
type PropertyPatch struct {
	Name         *string                   `json:"name"`
	Type         *model.PropertyType       `json:"type"`
	Required     *bool                     `json:"required"`
	Frozen       *bool                     `json:"frozen"`
	Visible      *bool                     `json:"visible"`
	Order        *int                      `json:"order"`
	Width        *int                      `json:"width"`
	DefaultValue interface{}               `json:"defaultValue"`
	Options      *[]model.PropertyOption   `json:"options"`
	Validation   *model.PropertyValidation `json:"validation"`
}

// ListProperties returns the module's live property set.
func (s *Service) ListProperties(ctx context.Context, userID uint, moduleType, databaseID string) ([]model.Property, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	return dv.Properties, nil
}

// AddProperty appends a property and makes it visible in the default view.
// Explicit ids that collide with an existing property are rejected.
func (s *Service) AddProperty(ctx context.Context, userID uint, moduleType, databaseID string, input PropertyInput) (*model.Property, error) {
	if input.Type != "" && !model.ValidPropertyType(input.Type) {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown property type %q", input.Type))
	}

	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	if input.ID != "" && dv.HasProperty(input.ID) {
		return nil, apperror.NewValidation(fmt.Sprintf("property %q already exists", input.ID))
	}

	prop := model.Property{
		ID:           input.ID,
		Name:         input.Name,
		Type:         input.Type,
		Required:     input.Required,
		Frozen:       input.Frozen,
		Visible:      true,
		Order:        len(dv.Properties),
		Width:        150,
		DefaultValue: input.DefaultValue,
		Options:      input.Options,
		Validation:   input.Validation,
	}
	if prop.ID == "" {
		prop.ID = model.NewSecureID("prop_")
	}
	if prop.Name == "" {
		prop.Name = "New Property"
	}
	if prop.Type == "" {
		prop.Type = model.PropertyTypeText
	}
	if input.Visible != nil {
		prop.Visible = *input.Visible
	}
	if input.Order != nil {
		prop.Order = *input.Order
	}
	if input.Width != nil {
		prop.Width = *input.Width
	}

	dv.Properties = append(dv.Properties, prop)

	// Adding a property makes it visible in the default view automatically.
	if def := dv.DefaultView(); def != nil && !def.ShowsProperty(prop.ID) {
		def.VisibleProperties = append(def.VisibleProperties, prop.ID)
	}

	if err := s.save(ctx, dv, userID); err != nil {
		return nil, err
	}
	return dv.PropertyByID(prop.ID), nil
}

// UpdateProperty merges the patch over the stored property. A property
// listed in the document view's frozen set may have other fields edited but
// can never have its frozen flag cleared.
func (s *Service) UpdateProperty(ctx context.Context, userID uint, moduleType, databaseID, propertyID string, patch PropertyPatch) (*model.Property, error) {
	if patch.Type != nil && !model.ValidPropertyType(*patch.Type) {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown property type %q", *patch.Type))
	}

	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	prop := dv.PropertyByID(propertyID)
	if prop == nil {
		return nil, apperror.NewNotFound("property", propertyID)
	}
	if err := dv.GuardUnfreeze(propertyID, patch.Frozen); err != nil {
		return nil, err
	}

	if patch.Name != nil {
		prop.Name = *patch.Name
	}
	if patch.Type != nil {
		prop.Type = *patch.Type
	}
	if patch.Required != nil {
		prop.Required = *patch.Required
	}
	if patch.Frozen != nil {
		prop.Frozen = *patch.Frozen
	}
	if patch.Visible != nil {
		prop.Visible = *patch.Visible
	}
	if patch.Order != nil {
		prop.Order = *patch.Order
	}
	if patch.Width != nil {
		prop.Width = *patch.Width
	}
	if patch.DefaultValue != nil {
		prop.DefaultValue = patch.DefaultValue
	}
	if patch.Options != nil {
		prop.Options = *patch.Options
	}
	if patch.Validation != nil {
		prop.Validation = patch.Validation
	}

	if err := s.save(ctx, dv, userID); err != nil {
		return nil, err
	}
	return prop, nil
}

// DeleteProperty removes a property. Required and frozen properties are
// kept and reported as false rather than an error; a missing id is still
// not found.
func (s *Service) DeleteProperty(ctx context.Context, userID uint, moduleType, databaseID, propertyID string) (bool, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return false, err
	}
	if err := dv.RemoveProperty(propertyID); err != nil {
		if apperror.Is(err, apperror.CodeInvariantViolation) {
			return false, nil
		}
		return false, err
	}
	if err := s.save(ctx, dv, userID); err != nil {
		return false, err
	}
	return true, nil
}
