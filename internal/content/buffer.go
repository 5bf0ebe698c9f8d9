package content

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrNotImageKey = errors.New("key does not name an image field")
	ErrEmptyFile   = errors.New("staged file is empty")
)

// StagedFile is a binary upload selected during an edit session but not yet
// sent to the server.
type StagedFile struct {
	Name string
	Data []byte
}

// EditBuffer holds a mutable working copy of one page's content document,
// isolated from the fetched original so in-progress edits are discardable.
// It is not safe for concurrent use.
type EditBuffer struct {
	original Document
	doc      Document
	staged   map[string]StagedFile
	slots    map[string]struct{}
}

// NewEditBuffer deep-clones original into a fresh working buffer and records
// which image keys the original document already held.
func NewEditBuffer(original Document) *EditBuffer {
	snapshot := Clone(original)
	return &EditBuffer{
		original: snapshot,
		doc:      Clone(snapshot),
		staged:   make(map[string]StagedFile),
		slots:    ImageKeys(snapshot),
	}
}

// Document exposes the working copy. Mutating it directly bypasses the
// buffer's bookkeeping; prefer SetField and the image operations.
func (b *EditBuffer) Document() Document {
	return b.doc
}

// Original returns the snapshot taken when the session started.
func (b *EditBuffer) Original() Document {
	return b.original
}

// SetField overwrites the leaf value at a dot-separated path in the working
// copy.
func (b *EditBuffer) SetField(path string, value any) error {
	return SetField(b.doc, path, value)
}

// SetJSONField parses raw as JSON and stores the result at path. A parse
// failure leaves the buffer untouched and is reported to the caller.
func (b *EditBuffer) SetJSONField(path, raw string) error {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("invalid JSON for %s: %w", path, err)
	}
	return SetField(b.doc, path, value)
}

// StageImage records a binary file for key and writes a data-URI preview
// into the shadow <key>_preview field. If the working copy's current value at
// key is itself a preview (never a stored path), it is dropped so a data-URI
// cannot leak into the persisted field.
func (b *EditBuffer) StageImage(key, filename string, data []byte) error {
	if !IsImageKey(key) {
		return ErrNotImageKey
	}
	if len(data) == 0 {
		return ErrEmptyFile
	}

	b.staged[key] = StagedFile{Name: filename, Data: data}
	b.slots[key] = struct{}{}

	preview := dataURI(data)
	if err := SetField(b.doc, key+PreviewSuffix, preview); err != nil {
		return err
	}

	if current, ok := b.doc[key].(string); ok && strings.HasPrefix(current, "data:") {
		delete(b.doc, key)
	}
	return nil
}

// RemoveImage models explicit user-initiated deletion of an image field,
// distinct from a field that was never touched. The key, its preview shadow
// and any pending upload are all dropped.
func (b *EditBuffer) RemoveImage(key string) {
	delete(b.doc, key)
	delete(b.doc, key+PreviewSuffix)
	delete(b.staged, key)
}

// AddImageSlot reserves a fresh dynamic image key with no value yet, for the
// "one more image" action. The key is collision-resistant and matches the
// image naming convention.
func (b *EditBuffer) AddImageSlot() string {
	key := "image_" + uuid.New().String()
	b.slots[key] = struct{}{}
	return key
}

// StagedUploads returns the pending uploads keyed by image field name.
func (b *EditBuffer) StagedUploads() map[string]StagedFile {
	return b.staged
}

func dataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
