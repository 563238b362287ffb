package store

import (
	"fmt"
	"math/rand"
)

// Id widths per entity. Ids are decimal strings left-padded with zeros; they
// are not guaranteed unique, the stores' existence check at creation time
// rejects collisions.
const (
	UserIDLen     = 10
	CategoryIDLen = 8
	JournalIDLen  = 12
)

func newID(width int) string {
	limit := int64(1)
	for i := 0; i < width; i++ {
		limit *= 10
	}
	return fmt.Sprintf("%0*d", width, rand.Int63n(limit))
}

func NewUserID() string     { return newID(UserIDLen) }
func NewCategoryID() string { return newID(CategoryIDLen) }
func NewJournalID() string  { return newID(JournalIDLen) }
