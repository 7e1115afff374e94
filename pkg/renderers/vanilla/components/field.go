package components

// Attr is one extra attribute on a control. Order is preserved.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Choice is one select option.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Field is the view of one form control handed to component renderers.
type Field struct {
	ID        string   `json:"id"`
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Component string   `json:"component"`
	Type      string   `json:"type"`
	Value     string   `json:"value"`
	Rows      int      `json:"rows,omitempty"`
	Wide      bool     `json:"wide,omitempty"`
	Hidden    bool     `json:"hidden,omitempty"`
	Container string   `json:"container,omitempty"`
	Choices   []Choice `json:"choices,omitempty"`
	Attrs     []Attr   `json:"attrs,omitempty"`
	Messages  []string `json:"messages,omitempty"`
}

// SetAttr replaces or appends an attribute.
func (f *Field) SetAttr(name, value string) {
	for i := range f.Attrs {
		if f.Attrs[i].Name == name {
			f.Attrs[i].Value = value
			return
		}
	}
	f.Attrs = append(f.Attrs, Attr{Name: name, Value: value})
}

// RemoveAttr drops an attribute if present.
func (f *Field) RemoveAttr(name string) {
	for i := range f.Attrs {
		if f.Attrs[i].Name == name {
			f.Attrs = append(f.Attrs[:i:i], f.Attrs[i+1:]...)
			return
		}
	}
}

// AttrValue returns the attribute value and whether it is set.
func (f Field) AttrValue(name string) (string, bool) {
	for _, a := range f.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
