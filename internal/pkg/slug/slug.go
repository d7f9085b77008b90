package slug

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Make derives a URL-safe identifier from free text: lowercase, characters
// outside {letters, digits, whitespace, hyphen} dropped, runs of whitespace
// and hyphens collapsed to a single hyphen, edge hyphens trimmed. Pure
// function; all-punctuation input yields "" and the caller must handle it.
func Make(text string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingHyphen = true
		}
	}
	return b.String()
}

// Derive returns Make(text), falling back to a random fragment when the text
// reduces to nothing.
func Derive(text string) string {
	if s := Make(text); s != "" {
		return s
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// MakeUnique returns candidate if no live row in table holds it in field,
// otherwise candidate-1, candidate-2, ... until a free slug is found.
// excludeID skips the record's own row so updates don't collide with
// themselves. Read-only; the caller persists the result. The loop is
// unbounded on purpose: it terminates because the table is finite.
func MakeUnique(db *gorm.DB, table, field, candidate, excludeID string) (string, error) {
	current := candidate
	for i := 1; ; i++ {
		taken, err := slugTaken(db, table, field, current, excludeID)
		if err != nil {
			return "", err
		}
		if !taken {
			return current, nil
		}
		current = fmt.Sprintf("%s-%d", candidate, i)
	}
}

func slugTaken(db *gorm.DB, table, field, value, excludeID string) (bool, error) {
	tx := db.Table(table).
		Where(field+" = ?", value).
		Where("deleted_at IS NULL")
	if excludeID != "" {
		tx = tx.Where("id <> ?", excludeID)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
