package models

// CategoryOther is the catch-all category returned whenever a strategy
// cannot produce a confident, known label.
const CategoryOther = "other"

// Category is static reference data for a utility problem class.
// Loaded by the seeding process, immutable at runtime.
type Category struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
}
