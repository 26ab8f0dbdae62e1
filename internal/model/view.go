package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// ViewType enumerates the supported view layouts.
type ViewType string

const (
	ViewTypeTable ViewType = "TABLE"
	// ViewTypeBoard is the kanban layout.
	ViewTypeBoard    ViewType = "BOARD"
	ViewTypeGallery  ViewType = "GALLERY"
	ViewTypeList     ViewType = "LIST"
	ViewTypeCalendar ViewType = "CALENDAR"
	ViewTypeTimeline ViewType = "TIMELINE"
)

// ValidViewType reports whether t is one of the supported view types.
func ValidViewType(t ViewType) bool {
	switch t {
	case ViewTypeTable, ViewTypeBoard, ViewTypeGallery, ViewTypeList,
		ViewTypeCalendar, ViewTypeTimeline:
		return true
	}
	return false
}

// Filter operators understood by view filters and record listing.
const (
	OperatorEquals    = "eq"
	OperatorNotEquals = "neq"
	OperatorContains  = "contains"
	OperatorGt        = "gt"
	OperatorLt        = "lt"
	OperatorEmpty     = "empty"
	OperatorNotEmpty  = "notEmpty"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// View permissions.
const (
	PermissionRead  = "read"
	PermissionWrite = "write"
	PermissionAdmin = "admin"
)

// ViewFilter is one predicate of a view's saved query.
type ViewFilter struct {
	PropertyID string      `json:"propertyId"`
	Operator   string      `json:"operator"`
	Value      interface{} `json:"value,omitempty"`
	Enabled    bool        `json:"enabled"`
}

// ViewSort is one ordering clause of a view's saved query.
type ViewSort struct {
	PropertyID string `json:"propertyId"`
	Direction  string `json:"direction"`
	Order      int    `json:"order"`
	Enabled    bool   `json:"enabled"`
}

// ViewPermission grants a user access to a view.
type ViewPermission struct {
	UserID     uint   `json:"userId"`
	Permission string `json:"permission"`
}

// View is a saved presentation and query over a module's properties. A view
// marked default, or flagged as a system view through config.isSystemView,
// cannot be deleted.
type View struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Type              ViewType         `json:"type"`
	IsDefault         bool             `json:"isDefault"`
	IsPublic          bool             `json:"isPublic"`
	Filters           []ViewFilter     `json:"filters"`
	Sorts             []ViewSort       `json:"sorts"`
	GroupBy           string           `json:"groupBy,omitempty"`
	VisibleProperties []string         `json:"visibleProperties"`
	CustomProperties  []Property       `json:"customProperties,omitempty"`
	Config            JSONMap          `json:"config,omitempty"`
	Permissions       []ViewPermission `json:"permissions,omitempty"`
	CreatedBy         uint             `json:"createdBy,omitempty"`
	LastEditedBy      uint             `json:"lastEditedBy,omitempty"`
	CreatedAt         time.Time        `json:"createdAt,omitempty"`
	UpdatedAt         time.Time        `json:"updatedAt,omitempty"`
}

// IsSystemView reports whether the view carries the system flag in its
// free-form config.
func (v *View) IsSystemView() bool {
	if v.Config == nil {
		return false
	}
	flag, ok := v.Config["isSystemView"].(bool)
	return ok && flag
}

// ShowsProperty reports whether the property id is already listed in the
// view's visible properties.
func (v *View) ShowsProperty(propertyID string) bool {
	for _, id := range v.VisibleProperties {
		if id == propertyID {
			return true
		}
	}
	return false
}

// ViewList stores a view set as a jsonb column.
type ViewList []View

func (l ViewList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *ViewList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// PermissionList stores document-level permissions as a jsonb column.
type PermissionList []ViewPermission

func (l PermissionList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *PermissionList) Scan(value interface{}) error {
	return scanJSON(value, l)
}
