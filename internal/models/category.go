package models

import "time"

// Category is a named lookup value referenced by people.
// It is exposed under the /gender routes.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `gorm:"size:55;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }
