package moduleconfig

import (
	"lifehub-service/internal/model"
)

// The fixed module-type enumeration. Every caller-supplied module-type
// string is checked against the registry; these are the types the builtin
// configuration registers.
const (
	ModuleTasks     = "tasks"
	ModulePeople    = "people"
	ModuleNotes     = "notes"
	ModuleGoals     = "goals"
	ModuleBooks     = "books"
	ModuleHabits    = "habits"
	ModuleProjects  = "projects"
	ModuleJournals  = "journals"
	ModuleMoods     = "moods"
	ModuleFinance   = "finance"
	ModuleContent   = "content"
	ModuleDatabases = "databases"
)

// ModuleTypes lists every known module type in registration order.
var ModuleTypes = []string{
	ModuleTasks, ModulePeople, ModuleNotes, ModuleGoals, ModuleBooks,
	ModuleHabits, ModuleProjects, ModuleJournals, ModuleMoods,
	ModuleFinance, ModuleContent, ModuleDatabases,
}

// Capabilities are the operations a module allows its owner to perform.
type Capabilities struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
	Share  bool `json:"share"`
	Export bool `json:"export"`
	Import bool `json:"import"`
}

// UISettings carries the feature flags and view types a module's frontend
// surface supports.
type UISettings struct {
	Features        []string         `json:"features"`
	SupportedViews  []model.ViewType `json:"supportedViews"`
	DefaultViewType model.ViewType   `json:"defaultViewType"`
}

// DataSettings holds the default schema a module's document view is seeded
// with on first access, plus the property ids the system owns.
type DataSettings struct {
	DefaultProperties  []model.Property `json:"defaultProperties"`
	DefaultViews       []model.View     `json:"defaultViews"`
	RequiredProperties []string         `json:"requiredProperties"`
	FrozenProperties   []string         `json:"frozenProperties"`
}

// ServiceBindings names the record service serving a module's records. The
// record service itself is a function table registered at startup and looked
// up by RecordService; no code is loaded by path at call time.
type ServiceBindings struct {
	RecordService string `json:"recordService"`
	ModelName     string `json:"modelName"`
	DatabaseID    string `json:"databaseId"`
}

// FrozenPropertyRule spells out what may still be done with one frozen
// property.
type FrozenPropertyRule struct {
	PropertyID  string `json:"propertyId"`
	Reason      string `json:"reason"`
	AllowEdit   bool   `json:"allowEdit"`
	AllowHide   bool   `json:"allowHide"`
	AllowDelete bool   `json:"allowDelete"`
}

// FrozenConfig is the human-readable frozen-property policy of a module.
type FrozenConfig struct {
	Reason     string               `json:"reason,omitempty"`
	Properties []FrozenPropertyRule `json:"properties"`
}

// ModuleConfig is one registry entry. Entries are registered once at startup
// and treated as immutable afterwards.
type ModuleConfig struct {
	ModuleType        string          `json:"moduleType"`
	DisplayName       string          `json:"displayName"`
	DisplayNamePlural string          `json:"displayNamePlural"`
	Description       string          `json:"description"`
	Icon              string          `json:"icon"`
	Capabilities      Capabilities    `json:"capabilities"`
	UI                UISettings      `json:"ui"`
	Data              DataSettings    `json:"data"`
	Services          ServiceBindings `json:"services"`
	FrozenConfig      *FrozenConfig   `json:"frozenConfig,omitempty"`
}

// EffectiveFrozenConfig returns the declared frozen-property policy, or
// synthesizes the default one from the frozen property list: every frozen
// property is a locked system property.
func (c *ModuleConfig) EffectiveFrozenConfig() *FrozenConfig {
	if c.FrozenConfig != nil {
		return c.FrozenConfig
	}
	rules := make([]FrozenPropertyRule, 0, len(c.Data.FrozenProperties))
	for _, id := range c.Data.FrozenProperties {
		rules = append(rules, FrozenPropertyRule{
			PropertyID:  id,
			Reason:      "System property",
			AllowEdit:   false,
			AllowHide:   false,
			AllowDelete: false,
		})
	}
	return &FrozenConfig{Properties: rules}
}
