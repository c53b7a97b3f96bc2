package specification

import "gorm.io/gorm"

// Specification is a composable query fragment. Repositories apply
// each one to the base query in the order given.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
