package repository

import (
	"strings"

	"gorm.io/gorm"
)

// quote renders an identifier (optionally table qualified) in the dialect of db.
func quote(db *gorm.DB, name string) string {
	var b strings.Builder
	db.Dialector.QuoteTo(&b, name)
	return b.String()
}
