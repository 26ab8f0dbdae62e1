package moduleconfig

import (
	"lifehub-service/internal/model"
)

// The builtin module declarations. Each module's default schema is a plain
// data table; first-access seeding deep-copies it into the user's document
// view, so the declarations here are never mutated.

func option(name, color, value string) model.PropertyOption {
	return model.PropertyOption{Name: name, Color: color, Value: value}
}

func property(id, name string, propType model.PropertyType, order int) model.Property {
	return model.Property{
		ID:      id,
		Name:    name,
		Type:    propType,
		Visible: true,
		Order:   order,
		Width:   150,
	}
}

func systemProperty(p model.Property) model.Property {
	p.Required = true
	p.Frozen = true
	return p
}

func selectProperty(id, name string, order int, options ...model.PropertyOption) model.Property {
	p := property(id, name, model.PropertyTypeSelect, order)
	p.Options = options
	return p
}

func tableView(id, name string, visible ...string) model.View {
	return model.View{
		ID:                id,
		Name:              name,
		Type:              model.ViewTypeTable,
		IsDefault:         true,
		Filters:           []model.ViewFilter{},
		Sorts:             []model.ViewSort{},
		VisibleProperties: visible,
		Config:            model.JSONMap{},
	}
}

func boardView(id, name, groupBy string, visible ...string) model.View {
	return model.View{
		ID:                id,
		Name:              name,
		Type:              model.ViewTypeBoard,
		GroupBy:           groupBy,
		Filters:           []model.ViewFilter{},
		Sorts:             []model.ViewSort{},
		VisibleProperties: visible,
		Config:            model.JSONMap{"isSystemView": true},
	}
}

func bindings(moduleType, modelName string) ServiceBindings {
	return ServiceBindings{
		RecordService: moduleType,
		ModelName:     modelName,
		DatabaseID:    "default",
	}
}

var statusOptions = []model.PropertyOption{
	option("To Do", "gray", "todo"),
	option("In Progress", "blue", "in-progress"),
	option("Done", "green", "done"),
}

var contentStatusOptions = []model.PropertyOption{
	option("Idea", "gray", "idea"),
	option("Drafting", "yellow", "drafting"),
	option("Editing", "orange", "editing"),
	option("Published", "green", "published"),
	option("Archived", "brown", "archived"),
}

func builtinModules() []*ModuleConfig {
	allCaps := Capabilities{Create: true, Edit: true, Delete: true, Share: true, Export: true, Import: true}
	ownCaps := Capabilities{Create: true, Edit: true, Delete: true, Export: true}

	return []*ModuleConfig{
		{
			ModuleType:        ModuleTasks,
			DisplayName:       "Task",
			DisplayNamePlural: "Tasks",
			Description:       "Track tasks with status, priority and due dates",
			Icon:              "check-square",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "grouping", "calendar"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeBoard, model.ViewTypeCalendar, model.ViewTypeList},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					systemProperty(selectProperty("status", "Status", 1, statusOptions...)),
					property("dueDate", "Due Date", model.PropertyTypeDate, 2),
					selectProperty("priority", "Priority", 3,
						option("Low", "gray", "low"), option("Medium", "yellow", "medium"), option("High", "red", "high")),
					property("tags", "Tags", model.PropertyTypeMultiSelect, 4),
				},
				DefaultViews: []model.View{
					tableView("all-tasks", "All Tasks", "title", "status", "dueDate", "priority"),
					boardView("tasks-board", "Board", "status", "title", "priority", "dueDate"),
				},
				RequiredProperties: []string{"title", "status"},
				FrozenProperties:   []string{"title", "status"},
			},
			Services: bindings(ModuleTasks, "Task"),
			FrozenConfig: &FrozenConfig{
				Reason: "Task identity and workflow state are managed by the system",
				Properties: []FrozenPropertyRule{
					{PropertyID: "title", Reason: "Every task needs a title", AllowEdit: true},
					{PropertyID: "status", Reason: "Workflow state drives board views", AllowEdit: true},
				},
			},
		},
		{
			ModuleType:        ModulePeople,
			DisplayName:       "Person",
			DisplayNamePlural: "People",
			Description:       "Contacts and relationships",
			Icon:              "users",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeGallery, model.ViewTypeList},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("name", "Name", model.PropertyTypeText, 0)),
					property("email", "Email", model.PropertyTypeEmail, 1),
					property("phone", "Phone", model.PropertyTypePhone, 2),
					property("company", "Company", model.PropertyTypeText, 3),
					property("birthday", "Birthday", model.PropertyTypeDate, 4),
				},
				DefaultViews: []model.View{
					tableView("all-people", "All People", "name", "email", "phone", "company"),
				},
				RequiredProperties: []string{"name"},
				FrozenProperties:   []string{"name"},
			},
			Services: bindings(ModulePeople, "Person"),
		},
		{
			ModuleType:        ModuleNotes,
			DisplayName:       "Note",
			DisplayNamePlural: "Notes",
			Description:       "Freeform notes with tags",
			Icon:              "file-text",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "pinning"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeGallery, model.ViewTypeList},
				DefaultViewType: model.ViewTypeList,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					property("content", "Content", model.PropertyTypeText, 1),
					property("tags", "Tags", model.PropertyTypeMultiSelect, 2),
					property("pinned", "Pinned", model.PropertyTypeCheckbox, 3),
				},
				DefaultViews: []model.View{
					tableView("all-notes", "All Notes", "title", "tags", "pinned"),
				},
				RequiredProperties: []string{"title"},
				FrozenProperties:   []string{"title"},
			},
			Services: bindings(ModuleNotes, "Note"),
		},
		{
			ModuleType:        ModuleGoals,
			DisplayName:       "Goal",
			DisplayNamePlural: "Goals",
			Description:       "Long-term goals with progress tracking",
			Icon:              "target",
			Capabilities:      ownCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "progress"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeBoard, model.ViewTypeTimeline},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					systemProperty(selectProperty("status", "Status", 1, statusOptions...)),
					property("targetDate", "Target Date", model.PropertyTypeDate, 2),
					property("progress", "Progress", model.PropertyTypeNumber, 3),
				},
				DefaultViews: []model.View{
					tableView("all-goals", "All Goals", "title", "status", "targetDate", "progress"),
				},
				RequiredProperties: []string{"title", "status"},
				FrozenProperties:   []string{"title", "status"},
			},
			Services: bindings(ModuleGoals, "Goal"),
		},
		{
			ModuleType:        ModuleBooks,
			DisplayName:       "Book",
			DisplayNamePlural: "Books",
			Description:       "Reading list and library",
			Icon:              "book-open",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "rating"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeGallery, model.ViewTypeBoard},
				DefaultViewType: model.ViewTypeGallery,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					property("author", "Author", model.PropertyTypeText, 1),
					selectProperty("status", "Status", 2,
						option("To Read", "gray", "to-read"), option("Reading", "blue", "reading"), option("Read", "green", "read")),
					property("rating", "Rating", model.PropertyTypeNumber, 3),
					property("finishedDate", "Finished", model.PropertyTypeDate, 4),
				},
				DefaultViews: []model.View{
					tableView("all-books", "All Books", "title", "author", "status", "rating"),
					boardView("books-shelf", "Shelf", "status", "title", "author", "rating"),
				},
				RequiredProperties: []string{"title"},
				FrozenProperties:   []string{"title"},
			},
			Services: bindings(ModuleBooks, "Book"),
		},
		{
			ModuleType:        ModuleHabits,
			DisplayName:       "Habit",
			DisplayNamePlural: "Habits",
			Description:       "Recurring habits with completion tracking",
			Icon:              "repeat",
			Capabilities:      ownCaps,
			UI: UISettings{
				Features:        []string{"streaks", "calendar"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeCalendar, model.ViewTypeList},
				DefaultViewType: model.ViewTypeList,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("name", "Name", model.PropertyTypeText, 0)),
					selectProperty("frequency", "Frequency", 1,
						option("Daily", "blue", "daily"), option("Weekly", "purple", "weekly")),
					selectProperty("color", "Color", 2,
						option("Blue", "blue", "blue"), option("Green", "green", "green"), option("Red", "red", "red")),
					property("archived", "Archived", model.PropertyTypeCheckbox, 3),
				},
				DefaultViews: []model.View{
					tableView("all-habits", "All Habits", "name", "frequency", "color"),
				},
				RequiredProperties: []string{"name"},
				FrozenProperties:   []string{"name"},
			},
			Services: bindings(ModuleHabits, "Habit"),
		},
		{
			ModuleType:        ModuleProjects,
			DisplayName:       "Project",
			DisplayNamePlural: "Projects",
			Description:       "Multi-task initiatives with timelines",
			Icon:              "folder",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "grouping", "timeline"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeBoard, model.ViewTypeTimeline},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("name", "Name", model.PropertyTypeText, 0)),
					systemProperty(selectProperty("status", "Status", 1, statusOptions...)),
					property("startDate", "Start", model.PropertyTypeDate, 2),
					property("endDate", "End", model.PropertyTypeDate, 3),
					property("tasks", "Tasks", model.PropertyTypeRelation, 4),
				},
				DefaultViews: []model.View{
					tableView("all-projects", "All Projects", "name", "status", "startDate", "endDate"),
					boardView("projects-board", "Board", "status", "name", "endDate"),
				},
				RequiredProperties: []string{"name", "status"},
				FrozenProperties:   []string{"name", "status"},
			},
			Services: bindings(ModuleProjects, "Project"),
		},
		{
			ModuleType:        ModuleJournals,
			DisplayName:       "Journal Entry",
			DisplayNamePlural: "Journals",
			Description:       "Dated journal entries",
			Icon:              "book",
			Capabilities:      ownCaps,
			UI: UISettings{
				Features:        []string{"calendar"},
				SupportedViews:  []model.ViewType{model.ViewTypeList, model.ViewTypeCalendar, model.ViewTypeTable},
				DefaultViewType: model.ViewTypeList,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					systemProperty(property("date", "Date", model.PropertyTypeDate, 1)),
					property("content", "Content", model.PropertyTypeText, 2),
					property("tags", "Tags", model.PropertyTypeMultiSelect, 3),
				},
				DefaultViews: []model.View{
					tableView("all-journals", "All Entries", "title", "date", "tags"),
				},
				RequiredProperties: []string{"title", "date"},
				FrozenProperties:   []string{"title", "date"},
			},
			Services: bindings(ModuleJournals, "JournalEntry"),
		},
		{
			ModuleType:        ModuleMoods,
			DisplayName:       "Mood",
			DisplayNamePlural: "Moods",
			Description:       "Daily mood ratings",
			Icon:              "smile",
			Capabilities:      Capabilities{Create: true, Edit: true, Delete: true, Export: true},
			UI: UISettings{
				Features:        []string{"trend", "calendar"},
				SupportedViews:  []model.ViewType{model.ViewTypeCalendar, model.ViewTypeTable},
				DefaultViewType: model.ViewTypeCalendar,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("date", "Date", model.PropertyTypeDate, 0)),
					systemProperty(property("rating", "Rating", model.PropertyTypeNumber, 1)),
					property("note", "Note", model.PropertyTypeText, 2),
				},
				DefaultViews: []model.View{
					tableView("all-moods", "All Moods", "date", "rating", "note"),
				},
				RequiredProperties: []string{"date", "rating"},
				FrozenProperties:   []string{"date", "rating"},
			},
			Services: bindings(ModuleMoods, "Mood"),
			FrozenConfig: &FrozenConfig{
				Reason: "Mood entries are date-keyed measurements",
				Properties: []FrozenPropertyRule{
					{PropertyID: "date", Reason: "Trend analysis is keyed by date"},
					{PropertyID: "rating", Reason: "Trend analysis averages ratings"},
				},
			},
		},
		{
			ModuleType:        ModuleFinance,
			DisplayName:       "Transaction",
			DisplayNamePlural: "Finance",
			Description:       "Income and expense tracking",
			Icon:              "dollar-sign",
			Capabilities:      Capabilities{Create: true, Edit: true, Delete: true, Export: true, Import: true},
			UI: UISettings{
				Features:        []string{"filters", "sorts", "sums"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeList},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("description", "Description", model.PropertyTypeText, 0)),
					systemProperty(property("amount", "Amount", model.PropertyTypeNumber, 1)),
					selectProperty("type", "Type", 2,
						option("Income", "green", "income"), option("Expense", "red", "expense")),
					selectProperty("category", "Category", 3,
						option("Housing", "brown", "housing"), option("Food", "orange", "food"),
						option("Transport", "blue", "transport"), option("Other", "gray", "other")),
					property("date", "Date", model.PropertyTypeDate, 4),
				},
				DefaultViews: []model.View{
					tableView("all-transactions", "All Transactions", "description", "amount", "type", "category", "date"),
				},
				RequiredProperties: []string{"description", "amount"},
				FrozenProperties:   []string{"description", "amount"},
			},
			Services: bindings(ModuleFinance, "Transaction"),
		},
		{
			ModuleType:        ModuleContent,
			DisplayName:       "Content Piece",
			DisplayNamePlural: "Content",
			Description:       "Content pipeline from idea to published",
			Icon:              "pen-tool",
			Capabilities:      allCaps,
			UI: UISettings{
				Features:        []string{"filters", "sorts", "grouping", "pipeline"},
				SupportedViews:  []model.ViewType{model.ViewTypeBoard, model.ViewTypeTable, model.ViewTypeCalendar},
				DefaultViewType: model.ViewTypeBoard,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("title", "Title", model.PropertyTypeText, 0)),
					systemProperty(selectProperty("status", "Status", 1, contentStatusOptions...)),
					selectProperty("platform", "Platform", 2,
						option("Blog", "blue", "blog"), option("Video", "red", "video"), option("Newsletter", "yellow", "newsletter")),
					property("url", "URL", model.PropertyTypeURL, 3),
					property("publishDate", "Publish Date", model.PropertyTypeDate, 4),
				},
				DefaultViews: []model.View{
					tableView("all-content", "All Content", "title", "status", "platform", "publishDate"),
					boardView("content-pipeline", "Pipeline", "status", "title", "platform", "publishDate"),
				},
				RequiredProperties: []string{"title", "status"},
				FrozenProperties:   []string{"title", "status"},
			},
			Services: bindings(ModuleContent, "ContentPiece"),
		},
		{
			ModuleType:        ModuleDatabases,
			DisplayName:       "Database",
			DisplayNamePlural: "Databases",
			Description:       "User-defined record collections",
			Icon:              "database",
			Capabilities:      Capabilities{Create: true, Edit: true, Delete: true, Share: true, Export: true, Import: true},
			UI: UISettings{
				Features:        []string{"filters", "sorts", "grouping", "custom-properties"},
				SupportedViews:  []model.ViewType{model.ViewTypeTable, model.ViewTypeBoard, model.ViewTypeGallery, model.ViewTypeList, model.ViewTypeCalendar, model.ViewTypeTimeline},
				DefaultViewType: model.ViewTypeTable,
			},
			Data: DataSettings{
				DefaultProperties: []model.Property{
					systemProperty(property("name", "Name", model.PropertyTypeText, 0)),
					property("description", "Description", model.PropertyTypeText, 1),
					property("icon", "Icon", model.PropertyTypeText, 2),
				},
				DefaultViews: []model.View{
					tableView("all-databases", "All Databases", "name", "description"),
				},
				RequiredProperties: []string{"name"},
				FrozenProperties:   []string{"name"},
			},
			Services: bindings(ModuleDatabases, "Database"),
		},
	}
}

// RegisterBuiltins registers the twelve builtin modules. Called once from
// main before the registry is handed to the document-view service.
func RegisterBuiltins(reg *Registry) {
	for _, config := range builtinModules() {
		reg.Register(config)
	}
}
