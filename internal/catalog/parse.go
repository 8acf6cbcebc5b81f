package catalog

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallbacks used when an upload leaves the technology or tag field blank.
var (
	DefaultTech = []string{"Video Editing"}
	DefaultTags = []string{"User Upload"}
)

// MaxMediaSize is the largest accepted upload (3 GiB).
const MaxMediaSize int64 = 3 << 30

// allowedMediaTypes is the MIME allow-list for uploads.
var allowedMediaTypes = map[string]bool{
	"video/mp4":       true,
	"video/mov":       true,
	"video/avi":       true,
	"video/quicktime": true,
	"video/x-msvideo": true,
	"video/webm":      true,
	"video/mkv":       true,
}

// allowedMediaExts is accepted when the browser reports an unhelpful MIME type.
var allowedMediaExts = []string{".mp4", ".mov", ".avi", ".webm", ".mkv"}

var titleCaser = cases.Title(language.English)

// ParseList splits a comma-separated string into trimmed, non-empty tokens.
// A blank result yields a copy of fallback.
func ParseList(s string, fallback []string) []string {
	out := cleanList(strings.Split(s, ","))
	if len(out) == 0 {
		return slices.Clone(fallback)
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, tok := range in {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// ParseStatus accepts a status in any letter case.
func ParseStatus(s string) (Status, error) {
	st := Status(titleCaser.String(strings.ToLower(strings.TrimSpace(s))))
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
	return st, nil
}

// ParseCategory accepts a category id or its tab label in any letter case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "design":
		c = CategoryMedia
	case "programming":
		c = CategoryCoding
	}
	if !c.Valid() {
		return "", &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
	}
	return c, nil
}

// ValidateMedia checks an upload's metadata against the size ceiling and the
// type allow-list. The type passes if either the MIME type or the file
// extension is recognised.
func ValidateMedia(name string, size int64, mimeType string) error {
	if size <= 0 {
		return &ValidationError{Field: "media", Message: "file is empty"}
	}
	if size > MaxMediaSize {
		return &ValidationError{
			Field:   "media",
			Message: fmt.Sprintf("file too large: maximum size is %s, got %s", FormatSize(MaxMediaSize), FormatSize(size)),
		}
	}

	return ValidateMediaType(name, mimeType)
}

// ValidateMediaType applies only the type allow-list, so a streamed upload can
// be rejected before its size is known.
func ValidateMediaType(name, mimeType string) error {
	base, _, _ := strings.Cut(mimeType, ";")
	if !allowedMediaTypes[strings.ToLower(strings.TrimSpace(base))] && !hasVideoExt(name) {
		return &ValidationError{
			Field:   "media",
			Message: "unsupported file type: upload an MP4, MOV, AVI, WebM or MKV video",
		}
	}
	return nil
}

func hasVideoExt(name string) bool {
	return slices.Contains(allowedMediaExts, strings.ToLower(filepath.Ext(name)))
}

// FormatSize renders a byte count the way the upload page shows it,
// e.g. "1.5 GB".
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	units := []string{"Bytes", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
	return s + " " + units[i]
}
