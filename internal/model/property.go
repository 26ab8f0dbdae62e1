package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// PropertyType enumerates the typed fields a module schema can declare.
type PropertyType string

const (
	PropertyTypeText        PropertyType = "text"
	PropertyTypeNumber      PropertyType = "number"
	PropertyTypeDate        PropertyType = "date"
	PropertyTypeSelect      PropertyType = "select"
	PropertyTypeMultiSelect PropertyType = "multiSelect"
	PropertyTypeCheckbox    PropertyType = "checkbox"
	PropertyTypeURL         PropertyType = "url"
	PropertyTypeEmail       PropertyType = "email"
	PropertyTypePhone       PropertyType = "phone"
	PropertyTypeFile        PropertyType = "file"
	PropertyTypeRelation    PropertyType = "relation"
)

// ValidPropertyType reports whether t is one of the supported property types.
func ValidPropertyType(t PropertyType) bool {
	switch t {
	case PropertyTypeText, PropertyTypeNumber, PropertyTypeDate, PropertyTypeSelect,
		PropertyTypeMultiSelect, PropertyTypeCheckbox, PropertyTypeURL, PropertyTypeEmail,
		PropertyTypePhone, PropertyTypeFile, PropertyTypeRelation:
		return true
	}
	return false
}

// PropertyOption is a selectable value for select and multiSelect properties.
type PropertyOption struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Value string `json:"value"`
}

// PropertyValidation holds the optional value constraints of a property.
type PropertyValidation struct {
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	Pattern string   `json:"pattern,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Property describes one typed field of a module's records. Ids are unique
// within the owning property set. Frozen properties are system-owned: their
// frozen flag can never be cleared through a generic update.
type Property struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Type         PropertyType        `json:"type"`
	Required     bool                `json:"required"`
	Frozen       bool                `json:"frozen"`
	Visible      bool                `json:"visible"`
	Order        int                 `json:"order"`
	Width        int                 `json:"width,omitempty"`
	DefaultValue interface{}         `json:"defaultValue,omitempty"`
	Options      []PropertyOption    `json:"options,omitempty"`
	Validation   *PropertyValidation `json:"validation,omitempty"`
}

// PropertyList stores a property set as a jsonb column.
type PropertyList []Property

func (l PropertyList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *PropertyList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// StringList stores a list of property ids as a jsonb column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// Contains reports whether id is present in the list.
func (l StringList) Contains(id string) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// JSONMap stores free-form structured data as a jsonb column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *JSONMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported jsonb source type")
	}
}
