package controller

import (
	"github.com/goliatone/go-resumegen/pkg/fieldstore"
	"github.com/goliatone/go-resumegen/pkg/model"
	"github.com/goliatone/go-resumegen/pkg/notify"
)

// Event names what produced an Update.
type Event string

const (
	EventLoad           Event = "load"
	EventReset          Event = "reset"
	EventField          Event = "field"
	EventSectionAdded   Event = "section-added"
	EventSectionRemoved Event = "section-removed"
	EventFormat         Event = "format"
	EventReorder        Event = "reorder"
	EventImport         Event = "import"
	EventImportFailed   Event = "import-failed"
	EventClear          Event = "clear"
	EventSaveFailed     Event = "save-failed"
)

// Update is the state as of one event. The JSON form is what the browser
// runtime applies.
type Update struct {
	Event      Event            `json:"event"`
	Target     string           `json:"target,omitempty"`
	Format     model.Format     `json:"format"`
	Visibility model.Visibility `json:"visibility"`
	Preview    string           `json:"preview"`

	// Feedback maps field ids to their inline message; "" clears it.
	Feedback map[string]string `json:"feedback,omitempty"`
	// GradeMax is the max attribute of the grade input paired with Target.
	GradeMax string `json:"gradeMax,omitempty"`

	Order   []string          `json:"order,omitempty"`
	Legends map[string]string `json:"legends,omitempty"`
	Toast   *notify.Toast     `json:"toast,omitempty"`

	// Section is the instance created by EventSectionAdded and Position its
	// place in the kind's display order.
	Section  *fieldstore.Instance `json:"-"`
	Position int                  `json:"-"`

	Data model.ResumeData `json:"-"`
	// Err holds the preview render failure, if any.
	Err error `json:"-"`
}

type subscriber struct {
	id int
	fn func(Update)
}
