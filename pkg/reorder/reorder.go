// Package reorder computes drag-and-drop placement for section fieldsets.
package reorder

import (
	"math"
	"regexp"
	"strconv"
)

// Box is the vertical extent of one sibling fieldset.
type Box struct {
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Midpoint is the vertical centre of the box.
func (b Box) Midpoint() float64 {
	return b.Top + b.Height/2
}

// ExcludeID drops the box with id, typically the one being dragged.
func ExcludeID(boxes []Box, id string) []Box {
	out := make([]Box, 0, len(boxes))
	for _, b := range boxes {
		if b.ID == id {
			continue
		}
		out = append(out, b)
	}
	return out
}

// InsertionAnchor returns the sibling the dragged element is inserted before:
// the one whose midpoint lies below the pointer by the smallest distance.
// ok is false when no sibling lies below the pointer, meaning append.
func InsertionAnchor(pointerY float64, siblings []Box) (string, bool) {
	best := math.Inf(1)
	anchor := ""
	for _, b := range siblings {
		offset := b.Midpoint() - pointerY
		if offset > 0 && offset < best {
			best = offset
			anchor = b.ID
		}
	}
	return anchor, anchor != ""
}

// Apply moves draggedID before anchorID in order. An empty or unknown anchor
// appends. Unknown draggedID leaves the order unchanged.
func Apply(order []string, draggedID, anchorID string) []string {
	found := false
	rest := make([]string, 0, len(order))
	for _, id := range order {
		if id == draggedID {
			found = true
			continue
		}
		rest = append(rest, id)
	}
	if !found {
		return append([]string(nil), order...)
	}
	out := make([]string, 0, len(order))
	placed := false
	for _, id := range rest {
		if !placed && id == anchorID {
			out = append(out, draggedID)
			placed = true
		}
		out = append(out, id)
	}
	if !placed {
		out = append(out, draggedID)
	}
	return out
}

var numberedLabel = regexp.MustCompile(`^(.+) (\d+)$`)

// RenumberLabels rewrites labels shaped like "Project 3" with their 1-based
// position. Other labels are returned untouched.
func RenumberLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		m := numberedLabel.FindStringSubmatch(label)
		if m == nil {
			out[i] = label
			continue
		}
		out[i] = m[1] + " " + strconv.Itoa(i+1)
	}
	return out
}
