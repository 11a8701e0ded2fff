package models

// Category represents a category row.
type Category struct {
	CategoryID string `db:"category_id"`
	UserID     string `db:"user_id"`
	Name       string `db:"name"`
	Color      string `db:"color"`
	Icon       string `db:"icon"`
	AuditFields
}
