package models

// Sequence is a per-scope monotonic counter backing document numbers
// (JO-/LS-/PO-/DL-). Incremented atomically inside the creating transaction so
// concurrent creations cannot allocate the same number.
type Sequence struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Scope string `gorm:"uniqueIndex;size:40" json:"scope"`
	Value int64  `json:"value"`
}
