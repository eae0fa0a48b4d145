// Package models defines the database models
package models

// AllModels returns every model managed by AutoMigrate
func AllModels() []interface{} {
	return []interface{}{
		&Project{},
	}
}
