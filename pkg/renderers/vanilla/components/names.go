package components

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput    = "input"
	NameTextarea = "textarea"
	NameSelect   = "select"
	// NameSortable carries the drag-and-drop runtime for section lists.
	NameSortable = "sortable"
)
