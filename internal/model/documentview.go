package model

import (
	"fmt"
	"time"

	"lifehub-service/internal/apperror"
)

// DocumentView is the persisted, per-user-per-module-per-database aggregate
// of a module's live property set and saved views. It is seeded from the
// module registry's defaults on first access and never re-synced afterwards:
// later changes to a module's default schema do not touch existing rows.
// Exactly one row exists per (user, module, database) triple; the composite
// unique index resolves first-access races at the storage layer.
type DocumentView struct {
	ID                 uint           `json:"id" gorm:"primaryKey"`
	UserID             uint           `json:"userId" gorm:"not null;uniqueIndex:idx_document_views_owner"`
	ModuleType         string         `json:"moduleType" gorm:"type:varchar(50);not null;uniqueIndex:idx_document_views_owner"`
	DatabaseID         string         `json:"databaseId" gorm:"type:varchar(100);not null;uniqueIndex:idx_document_views_owner"`
	Name               string         `json:"name" gorm:"type:varchar(100)"`
	Description        string         `json:"description" gorm:"type:text"`
	Icon               string         `json:"icon" gorm:"type:varchar(50)"`
	Properties         PropertyList   `json:"properties" gorm:"type:jsonb"`
	Views              ViewList       `json:"views" gorm:"type:jsonb"`
	RequiredProperties StringList     `json:"requiredProperties" gorm:"type:jsonb"`
	FrozenProperties   StringList     `json:"frozenProperties" gorm:"type:jsonb"`
	Permissions        PermissionList `json:"permissions" gorm:"type:jsonb"`
	IsPublic           bool           `json:"isPublic" gorm:"default:false"`
	IsDefault          bool           `json:"isDefault" gorm:"default:true"`
	Frozen             bool           `json:"frozen" gorm:"default:false"`
	FrozenAt           *time.Time     `json:"frozenAt,omitempty"`
	FrozenBy           *uint          `json:"frozenBy,omitempty"`
	FrozenReason       string         `json:"frozenReason,omitempty" gorm:"type:text"`
	CreatedBy          uint           `json:"createdBy"`
	LastEditedBy       uint           `json:"lastEditedBy"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ViewByID returns the view with the given id, or nil.
func (d *DocumentView) ViewByID(viewID string) *View {
	for i := range d.Views {
		if d.Views[i].ID == viewID {
			return &d.Views[i]
		}
	}
	return nil
}

// DefaultView returns the first view marked default, else the first view,
// else nil. The model does not hard-enforce a single default.
func (d *DocumentView) DefaultView() *View {
	for i := range d.Views {
		if d.Views[i].IsDefault {
			return &d.Views[i]
		}
	}
	if len(d.Views) > 0 {
		return &d.Views[0]
	}
	return nil
}

// PropertyByID returns the property with the given id, or nil.
func (d *DocumentView) PropertyByID(propertyID string) *Property {
	for i := range d.Properties {
		if d.Properties[i].ID == propertyID {
			return &d.Properties[i]
		}
	}
	return nil
}

// HasProperty reports whether a property with the given id exists.
func (d *DocumentView) HasProperty(propertyID string) bool {
	return d.PropertyByID(propertyID) != nil
}

// RemoveView deletes the view with the given id. Default and system views
// are protected.
func (d *DocumentView) RemoveView(viewID string) error {
	for i := range d.Views {
		if d.Views[i].ID != viewID {
			continue
		}
		if d.Views[i].IsDefault {
			return apperror.NewInvariant(fmt.Sprintf("view %q is the default view and cannot be deleted", viewID))
		}
		if d.Views[i].IsSystemView() {
			return apperror.NewInvariant(fmt.Sprintf("view %q is a system view and cannot be deleted", viewID))
		}
		d.Views = append(d.Views[:i], d.Views[i+1:]...)
		return nil
	}
	return apperror.NewNotFound("view", viewID)
}

// RemoveProperty deletes the property with the given id. Required and frozen
// properties can never be removed; this is the single removal rule all
// callers delegate to.
func (d *DocumentView) RemoveProperty(propertyID string) error {
	if d.RequiredProperties.Contains(propertyID) {
		return apperror.NewInvariant(fmt.Sprintf("property %q is required and cannot be removed", propertyID))
	}
	if d.FrozenProperties.Contains(propertyID) {
		return apperror.NewInvariant(fmt.Sprintf("property %q is frozen and cannot be removed", propertyID))
	}
	for i := range d.Properties {
		if d.Properties[i].ID == propertyID {
			d.Properties = append(d.Properties[:i], d.Properties[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("property", propertyID)
}

// GuardUnfreeze rejects any attempt to clear the frozen flag of a property
// listed in the document view's frozen set. Other fields of a frozen
// property stay editable. Centralized here so the invariant cannot drift
// between call sites.
func (d *DocumentView) GuardUnfreeze(propertyID string, patchFrozen *bool) error {
	if patchFrozen == nil || *patchFrozen {
		return nil
	}
	if d.FrozenProperties.Contains(propertyID) {
		return apperror.NewInvariant(fmt.Sprintf("property %q is system-frozen and cannot be unfrozen", propertyID))
	}
	return nil
}

// Touch stamps the audit fields after a mutation.
func (d *DocumentView) Touch(userID uint) {
	d.LastEditedBy = userID
	d.UpdatedAt = time.Now().UTC()
}
