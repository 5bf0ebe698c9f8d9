package content

// Reconcile derives the payload to submit from the working copy and the
// original document fetched at session start.
//
// The backend merges field-wise: an absent key leaves the stored value alone,
// an explicit null clears it. A buffer that simply drops a removed image key
// would therefore be read as "unchanged", so every image key that was present
// non-empty in the original but is missing or empty in the buffer is written
// back as an explicit null tombstone. A key with an upload still pending is
// exempt: the replacement file decides its final value.
//
// The original-image-key set is re-derived here from the session's original
// snapshot rather than trusted from incremental bookkeeping, so the result
// stays correct even if the buffer was rebuilt mid-session.
func (b *EditBuffer) Reconcile() (Document, map[string]StagedFile) {
	payload := make(Document, len(b.doc))
	for key, value := range b.doc {
		if IsPreviewKey(key) {
			continue
		}
		payload[key] = value
	}

	for key := range ImageKeys(b.original) {
		if _, pending := b.staged[key]; pending {
			continue
		}
		if value, ok := payload[key]; !ok || isEmptyValue(value) {
			payload[key] = nil
		}
	}

	return payload, b.staged
}
