package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ContentMatchesAny matches rows whose content contains any of the given
// terms (case-insensitive). Used by the keyword and database-fallback
// retrieval tiers.
type ContentMatchesAny struct {
	Terms []string
}

func (s ContentMatchesAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Terms) == 0 {
		// No terms means no rows, not all rows
		return db.Where("1 = 0")
	}

	conditions := make([]string, 0, len(s.Terms))
	args := make([]interface{}, 0, len(s.Terms))
	for _, term := range s.Terms {
		conditions = append(conditions, "content ILIKE ?")
		args = append(args, "%"+term+"%")
	}
	return db.Where(strings.Join(conditions, " OR "), args...)
}

// FaqMatches matches FAQ rows whose question or answer contains the full
// query, or any of its significant keywords.
type FaqMatches struct {
	Query    string
	Keywords []string
}

func (s FaqMatches) Apply(db *gorm.DB) *gorm.DB {
	conditions := []string{"question ILIKE ?", "answer ILIKE ?"}
	pattern := "%" + s.Query + "%"
	args := []interface{}{pattern, pattern}

	for _, keyword := range s.Keywords {
		kw := "%" + keyword + "%"
		conditions = append(conditions, "question ILIKE ?", "answer ILIKE ?")
		args = append(args, kw, kw)
	}
	return db.Where(strings.Join(conditions, " OR "), args...)
}

// ActiveOnly filters FAQ rows that are enabled
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// NameContains filters by a case-insensitive name substring (documents, folders)
type NameContains struct {
	Name string
}

func (s NameContains) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Name + "%"
	return db.Where("name ILIKE ? OR original_name ILIKE ?", pattern, pattern)
}
