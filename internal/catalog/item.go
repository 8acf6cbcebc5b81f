package catalog

import (
	"fmt"
	"slices"
	"time"
)

// Status is the descriptive label a project carries. It is not a workflow
// state; any status may be set at any time.
type Status string

// Project statuses.
const (
	StatusCompleted  Status = "Completed"
	StatusOngoing    Status = "Ongoing"
	StatusTerminated Status = "Terminated"
)

// Statuses lists the valid statuses in display order.
var Statuses = []Status{StatusCompleted, StatusOngoing, StatusTerminated}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Category groups projects into the gallery tabs.
type Category string

// Gallery categories.
const (
	CategoryCoding Category = "coding"
	CategoryMedia  Category = "media"
	CategoryOthers Category = "others"
)

// Categories lists the gallery tabs in display order.
var Categories = []Category{CategoryCoding, CategoryMedia, CategoryOthers}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

// Label is the tab caption shown in the gallery.
func (c Category) Label() string {
	switch c {
	case CategoryCoding:
		return "Coding"
	case CategoryMedia:
		return "Media"
	case CategoryOthers:
		return "Others"
	default:
		return string(c)
	}
}

// Kind tells where an item's record lives.
type Kind int

// Item provenances.
const (
	KindBuiltin Kind = iota + 1
	KindUploaded
)

func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindUploaded:
		return "uploaded"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "builtin":
		*k = KindBuiltin
	case "uploaded":
		*k = KindUploaded
	default:
		*k = 0
	}
	return nil
}

// Links are optional external references shown on a project card.
type Links struct {
	GitHub  string `json:"github,omitempty"`
	Demo    string `json:"demo,omitempty"`
	Behance string `json:"behance,omitempty"`
}

// CatalogItem is one entry of the merged project list.
type CatalogItem struct {
	ID          int64    `json:"id"`
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Tags        []string `json:"tags"`
	Status      Status   `json:"status"`
	Category    Category `json:"category"`
	MediaRef    string   `json:"mediaRef"`
	CoverRef    string   `json:"coverRef,omitempty"`
	Links       Links    `json:"links"`
}

// IsVideo reports whether the item's media should be rendered as a video.
func (c CatalogItem) IsVideo() bool {
	return hasVideoExt(c.MediaRef)
}

func (c CatalogItem) clone() CatalogItem {
	c.Tech = slices.Clone(c.Tech)
	c.Tags = slices.Clone(c.Tags)
	return c
}

// UploadedItem is a user-created project. Its whole record is persisted.
type UploadedItem struct {
	CatalogItem
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MIMEType   string    `json:"mimeType,omitempty"`
	UploadedAt time.Time `json:"uploadDate"`
}

// Patch holds the fields an edit changes; nil fields are left alone. The
// overlay persisted for a built-in item is a Patch too.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tech        *[]string `json:"tech,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Category    *Category `json:"category,omitempty"`
	MediaRef    *string   `json:"mediaRef,omitempty"`
}

// IsZero reports whether p changes nothing.
func (p Patch) IsZero() bool {
	return p == Patch{}
}

// apply returns a copy of item with p's fields laid over it.
func (p Patch) apply(item CatalogItem) CatalogItem {
	item = item.clone()
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Tech != nil {
		item.Tech = slices.Clone(*p.Tech)
	}
	if p.Tags != nil {
		item.Tags = slices.Clone(*p.Tags)
	}
	if p.Status != nil {
		item.Status = *p.Status
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.MediaRef != nil {
		item.MediaRef = *p.MediaRef
	}
	return item
}

// merge returns p with every field set in next replacing p's value.
func (p Patch) merge(next Patch) Patch {
	if next.Title != nil {
		p.Title = next.Title
	}
	if next.Description != nil {
		p.Description = next.Description
	}
	if next.Tech != nil {
		p.Tech = next.Tech
	}
	if next.Tags != nil {
		p.Tags = next.Tags
	}
	if next.Status != nil {
		p.Status = next.Status
	}
	if next.Category != nil {
		p.Category = next.Category
	}
	if next.MediaRef != nil {
		p.MediaRef = next.MediaRef
	}
	return p
}

// normalize validates p and trims its list fields.
func (p Patch) normalize() (Patch, error) {
	if p.Title != nil && *p.Title == "" {
		return p, &ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if p.Status != nil && !p.Status.Valid() {
		return p, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", *p.Status)}
	}
	if p.Category != nil && !p.Category.Valid() {
		return p, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", *p.Category)}
	}
	if p.Tech != nil {
		tech := cleanList(*p.Tech)
		p.Tech = &tech
	}
	if p.Tags != nil {
		tags := cleanList(*p.Tags)
		p.Tags = &tags
	}
	return p, nil
}

// Entry is an item together with its provenance. Upload is set only for
// KindUploaded entries.
type Entry struct {
	Kind   Kind
	Item   CatalogItem
	Upload *UploadedItem
}

// InCategory returns the items whose category is c, preserving order.
func InCategory(items []CatalogItem, c Category) []CatalogItem {
	out := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}
