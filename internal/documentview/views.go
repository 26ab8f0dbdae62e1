package documentview

import (
	"context"
	"fmt"
	"time"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/model"
)

// CreateViewInput is the caller-supplied part of a new view. Every omitted
// field gets a documented default.
type CreateViewInput struct {
	Name              string                 `json:"name"`
	Type              model.ViewType         `json:"type"`
	IsPublic          bool                   `json:"isPublic"`
	Filters           []model.ViewFilter     `json:"filters"`
	Sorts             []model.ViewSort       `json:"sorts"`
	GroupBy           string                 `json:"groupBy"`
	VisibleProperties []string               `json:"visibleProperties"`
	CustomProperties  []model.Property       `json:"customProperties"`
	Config            model.JSONMap          `json:"config"`
	Permissions       []model.ViewPermission `json:"permissions"`
}

// ViewPatch is a partial view update. Nil fields are left untouched; views
// carry no field-level immutability.
type ViewPatch struct {
	Name              *string                 `json:"name"`
	Type              *model.ViewType         `json:"type"`
	IsDefault         *bool                   `json:"isDefault"`
	IsPublic          *bool                   `json:"isPublic"`
	Filters           *[]model.ViewFilter     `json:"filters"`
	Sorts             *[]model.ViewSort       `json:"sorts"`
	GroupBy           *string                 `json:"groupBy"`
	VisibleProperties *[]string               `json:"visibleProperties"`
	CustomProperties  *[]model.Property       `json:"customProperties"`
	Config            model.JSONMap           `json:"config"`
	Permissions       *[]model.ViewPermission `json:"permissions"`
}

// ListViews returns the module's views, resolving the document view first.
func (s *Service) ListViews(ctx context.Context, userID uint, moduleType, databaseID string) ([]model.View, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	return dv.Views, nil
}

// GetView returns one view by id.
func (s *Service) GetView(ctx context.Context, userID uint, moduleType, databaseID, viewID string) (*model.View, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	view := dv.ViewByID(viewID)
	if view == nil {
		return nil, apperror.NewNotFound("view", viewID)
	}
	return view, nil
}

// GetDefaultView returns the first view marked default, else the first view.
func (s *Service) GetDefaultView(ctx context.Context, userID uint, moduleType, databaseID string) (*model.View, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	view := dv.DefaultView()
	if view == nil {
		return nil, apperror.NewNotFound("view", "default")
	}
	return view, nil
}

// CreateView appends a new view to the document view. The id is always
// freshly assigned; a created view is never the default.
func (s *Service) CreateView(ctx context.Context, userID uint, moduleType, databaseID string, input CreateViewInput) (*model.View, error) {
	if input.Type != "" && !model.ValidViewType(input.Type) {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown view type %q", input.Type))
	}

	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	view := model.View{
		ID:                model.NewSecureID("view_"),
		Name:              input.Name,
		Type:              input.Type,
		IsDefault:         false,
		IsPublic:          input.IsPublic,
		Filters:           input.Filters,
		Sorts:             input.Sorts,
		GroupBy:           input.GroupBy,
		VisibleProperties: input.VisibleProperties,
		CustomProperties:  input.CustomProperties,
		Config:            input.Config,
		Permissions:       input.Permissions,
		CreatedBy:         userID,
		LastEditedBy:      userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if view.Name == "" {
		view.Name = "New View"
	}
	if view.Type == "" {
		view.Type = model.ViewTypeTable
	}
	if view.Filters == nil {
		view.Filters = []model.ViewFilter{}
	}
	if view.Sorts == nil {
		view.Sorts = []model.ViewSort{}
	}
	if view.VisibleProperties == nil {
		view.VisibleProperties = []string{}
	}
	if view.Config == nil {
		view.Config = model.JSONMap{}
	}

	dv.Views = append(dv.Views, view)
	if err := s.save(ctx, dv, userID); err != nil {
		return nil, err
	}
	return dv.ViewByID(view.ID), nil
}

// UpdateView merges the patch over the stored view.
func (s *Service) UpdateView(ctx context.Context, userID uint, moduleType, databaseID, viewID string, patch ViewPatch) (*model.View, error) {
	if patch.Type != nil && !model.ValidViewType(*patch.Type) {
		return nil, apperror.NewValidation(fmt.Sprintf("unknown view type %q", *patch.Type))
	}

	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	view := dv.ViewByID(viewID)
	if view == nil {
		return nil, apperror.NewNotFound("view", viewID)
	}

	if patch.Name != nil {
		view.Name = *patch.Name
	}
	if patch.Type != nil {
		view.Type = *patch.Type
	}
	if patch.IsDefault != nil {
		view.IsDefault = *patch.IsDefault
	}
	if patch.IsPublic != nil {
		view.IsPublic = *patch.IsPublic
	}
	if patch.Filters != nil {
		view.Filters = *patch.Filters
	}
	if patch.Sorts != nil {
		view.Sorts = *patch.Sorts
	}
	if patch.GroupBy != nil {
		view.GroupBy = *patch.GroupBy
	}
	if patch.VisibleProperties != nil {
		view.VisibleProperties = *patch.VisibleProperties
	}
	if patch.CustomProperties != nil {
		view.CustomProperties = *patch.CustomProperties
	}
	if patch.Config != nil {
		view.Config = patch.Config
	}
	if patch.Permissions != nil {
		view.Permissions = *patch.Permissions
	}
	view.LastEditedBy = userID
	view.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, dv, userID); err != nil {
		return nil, err
	}
	return view, nil
}

// DeleteView removes a view. Default and system views are protected.
func (s *Service) DeleteView(ctx context.Context, userID uint, moduleType, databaseID, viewID string) error {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return err
	}
	if err := dv.RemoveView(viewID); err != nil {
		return err
	}
	return s.save(ctx, dv, userID)
}

// DuplicateView clones a view under a fresh id. The copy keeps the source's
// filters, sorts and layout but is never the default.
func (s *Service) DuplicateView(ctx context.Context, userID uint, moduleType, databaseID, viewID, newName string) (*model.View, error) {
	dv, err := s.Resolve(ctx, userID, moduleType, databaseID)
	if err != nil {
		return nil, err
	}
	source := dv.ViewByID(viewID)
	if source == nil {
		return nil, apperror.NewNotFound("view", viewID)
	}

	now := time.Now().UTC()
	copied := source.Clone()
	copied.ID = model.NewSecureID("view_")
	copied.IsDefault = false
	copied.CreatedBy = userID
	copied.LastEditedBy = userID
	copied.CreatedAt = now
	copied.UpdatedAt = now
	if newName != "" {
		copied.Name = newName
	} else {
		copied.Name = fmt.Sprintf("%s (Copy)", source.Name)
	}

	dv.Views = append(dv.Views, copied)
	if err := s.save(ctx, dv, userID); err != nil {
		return nil, err
	}
	return dv.ViewByID(copied.ID), nil
}
