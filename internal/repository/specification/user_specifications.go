package specification

import "gorm.io/gorm"

type ByCWID struct {
	CWID string
}

func (s ByCWID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("users.cwid = ?", s.CWID)
}

// ByEmail matches case-insensitively; emails are stored lower-cased.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(users.email) = LOWER(?)", s.Email)
}
