package domain

// ChangeTracker records which fields of an aggregate were modified since it was loaded,
// so repositories only write those columns.
type ChangeTracker struct {
	dirtyFields map[string]bool
}

// NewChangeTracker creates an empty ChangeTracker.
func NewChangeTracker() *ChangeTracker {
	return &ChangeTracker{
		dirtyFields: make(map[string]bool),
	}
}

// MarkDirty marks a field as modified.
func (ct *ChangeTracker) MarkDirty(field string) {
	ct.dirtyFields[field] = true
}

// Dirty checks if a field has been modified.
func (ct *ChangeTracker) Dirty(field string) bool {
	return ct.dirtyFields[field]
}

// HasChanges returns true if any field has been modified.
func (ct *ChangeTracker) HasChanges() bool {
	return len(ct.dirtyFields) > 0
}
