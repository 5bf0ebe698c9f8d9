package content

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	ErrEmptyPath   = errors.New("field path is empty")
	ErrInvalidPath = errors.New("field path contains an empty segment")
)

// Document is the open content object stored per page. Keys follow naming
// conventions (hero, mainContent, tables, heroImage, image1, ...) rather than
// a fixed schema; any key may be present or absent.
type Document map[string]any

// PreviewSuffix marks transient client-side keys that hold a data-URI preview
// for a staged image. These keys must never reach the backend.
const PreviewSuffix = "_preview"

var imageKeyPattern = regexp.MustCompile(`^image(\d+|_[A-Za-z0-9-]+)$`)

// IsImageKey reports whether key names an image reference per the document
// convention: heroImage, image<digits> or image_<token>.
func IsImageKey(key string) bool {
	if key == "heroImage" {
		return true
	}
	return imageKeyPattern.MatchString(key)
}

// IsPreviewKey reports whether key is a transient preview shadow field.
func IsPreviewKey(key string) bool {
	return strings.HasSuffix(key, PreviewSuffix)
}

// ImageKeys returns the set of keys in doc that name an image reference and
// currently hold a non-empty string value.
func ImageKeys(doc Document) map[string]struct{} {
	keys := make(map[string]struct{})
	for key, value := range doc {
		if !IsImageKey(key) {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			keys[key] = struct{}{}
		}
	}
	return keys
}

// Clone deep-copies a document through a JSON round trip so nested maps and
// slices do not alias the source.
func Clone(doc Document) Document {
	if doc == nil {
		return Document{}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		// Documents come from JSON in the first place; a marshal failure
		// means a caller stored an unserializable value.
		panic("content: document is not JSON-serializable: " + err.Error())
	}
	out := Document{}
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("content: document clone failed: " + err.Error())
	}
	return out
}

// SetField writes value at a dot-separated path such as "hero.title",
// creating intermediate objects as needed. An intermediate value that is not
// an object is replaced. Paths with empty segments are rejected.
func SetField(doc Document, path string, value any) error {
	segments, err := splitPath(path)
	if err != nil {
		return err
	}

	current := doc
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			next = map[string]any{}
			current[segment] = next
		}
		current = next
	}
	current[segments[len(segments)-1]] = value
	return nil
}

// Field reads the value at a dot-separated path.
func Field(doc Document, path string) (any, bool) {
	segments, err := splitPath(path)
	if err != nil {
		return nil, false
	}

	current := map[string]any(doc)
	for _, segment := range segments[:len(segments)-1] {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	value, ok := current[segments[len(segments)-1]]
	return value, ok
}

// StringField reads the value at path and returns it when it is a non-empty
// string.
func StringField(doc Document, path string) (string, bool) {
	value, ok := Field(doc, path)
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func splitPath(path string) ([]string, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return nil, ErrInvalidPath
		}
	}
	return segments, nil
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}
