package model

// Deep-copy helpers. Seeding a document view from module defaults and
// duplicating views must never alias the source slices or maps: the module
// registry's declarations are shared across users and must stay immutable.

func cloneValue(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k, item := range x {
			out[k] = cloneValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, item := range x {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Clone returns a deep copy of the map.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// Clone returns a deep copy of the property.
func (p Property) Clone() Property {
	out := p
	if p.Options != nil {
		out.Options = make([]PropertyOption, len(p.Options))
		copy(out.Options, p.Options)
	}
	if p.Validation != nil {
		v := *p.Validation
		if p.Validation.Min != nil {
			min := *p.Validation.Min
			v.Min = &min
		}
		if p.Validation.Max != nil {
			max := *p.Validation.Max
			v.Max = &max
		}
		out.Validation = &v
	}
	out.DefaultValue = cloneValue(p.DefaultValue)
	return out
}

// Clone returns a deep copy of the list.
func (l PropertyList) Clone() PropertyList {
	if l == nil {
		return nil
	}
	out := make(PropertyList, len(l))
	for i, p := range l {
		out[i] = p.Clone()
	}
	return out
}

// Clone returns a deep copy of the view.
func (v View) Clone() View {
	out := v
	if v.Filters != nil {
		out.Filters = make([]ViewFilter, len(v.Filters))
		for i, f := range v.Filters {
			out.Filters[i] = f
			out.Filters[i].Value = cloneValue(f.Value)
		}
	}
	if v.Sorts != nil {
		out.Sorts = make([]ViewSort, len(v.Sorts))
		copy(out.Sorts, v.Sorts)
	}
	if v.VisibleProperties != nil {
		out.VisibleProperties = make([]string, len(v.VisibleProperties))
		copy(out.VisibleProperties, v.VisibleProperties)
	}
	if v.CustomProperties != nil {
		out.CustomProperties = make([]Property, len(v.CustomProperties))
		for i, p := range v.CustomProperties {
			out.CustomProperties[i] = p.Clone()
		}
	}
	out.Config = v.Config.Clone()
	if v.Permissions != nil {
		out.Permissions = make([]ViewPermission, len(v.Permissions))
		copy(out.Permissions, v.Permissions)
	}
	return out
}

// Clone returns a deep copy of the list.
func (l ViewList) Clone() ViewList {
	if l == nil {
		return nil
	}
	out := make(ViewList, len(l))
	for i, v := range l {
		out[i] = v.Clone()
	}
	return out
}

// Clone returns a copy of the list.
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	out := make(StringList, len(l))
	copy(out, l)
	return out
}

// Clone returns a copy of the list.
func (l PermissionList) Clone() PermissionList {
	if l == nil {
		return nil
	}
	out := make(PermissionList, len(l))
	copy(out, l)
	return out
}

// Clone returns a deep copy of the document view.
func (d *DocumentView) Clone() *DocumentView {
	if d == nil {
		return nil
	}
	out := *d
	out.Properties = d.Properties.Clone()
	out.Views = d.Views.Clone()
	out.RequiredProperties = d.RequiredProperties.Clone()
	out.FrozenProperties = d.FrozenProperties.Clone()
	out.Permissions = d.Permissions.Clone()
	if d.FrozenAt != nil {
		at := *d.FrozenAt
		out.FrozenAt = &at
	}
	if d.FrozenBy != nil {
		by := *d.FrozenBy
		out.FrozenBy = &by
	}
	return &out
}
