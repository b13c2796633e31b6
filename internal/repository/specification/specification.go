package specification

import "gorm.io/gorm"

// Specification is a composable query fragment applied to a gorm query
// before execution. Repositories accept any number of them.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}
