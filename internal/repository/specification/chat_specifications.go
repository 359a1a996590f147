package specification

import "gorm.io/gorm"

// BySessionLabel filters messages of one conversation. Always combine
// with UserOwnedBy: labels are only unique per owner.
type BySessionLabel struct {
	Label string
}

func (s BySessionLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_label = ?", s.Label)
}

// BySender filters by sender role ("user" | "bot")
type BySender struct {
	Sender string
}

func (s BySender) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("sender = ?", s.Sender)
}

// WithSessionLabel excludes legacy rows whose label was never assigned;
// those must not surface in session listings.
type WithSessionLabel struct{}

func (s WithSessionLabel) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_label IS NOT NULL AND session_label <> ''")
}
