// Package models holds the gorm entities persisted by the application.
package models

// All lists every model handled by AutoMigrate, parents first.
func All() []any {
	return []any{&Category{}, &Person{}, &Account{}, &Session{}}
}
