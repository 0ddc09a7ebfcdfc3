package models

import "time"

// DateLayout is the wire format of birth dates in forms.
const DateLayout = "2006-01-02"

// Person is the primary managed record. It carries the login credentials
// checked by the login form.
type Person struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	FullName      string    `gorm:"size:55;not null" json:"full_name"`
	CategoryID    uint      `gorm:"index;not null" json:"category_id"`
	Category      *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category,omitempty"`
	BirthDate     time.Time `gorm:"type:date;not null" json:"birth_date"`
	Address       string    `gorm:"size:255;not null" json:"address"`
	ContactNumber string    `gorm:"size:55;not null" json:"contact_number"`
	Email         string    `gorm:"size:55" json:"email,omitempty"`
	Username      string    `gorm:"uniqueIndex;size:55;not null" json:"username"`
	Password      string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
}

func (Person) TableName() string { return "people" }

// BirthDateString formats the birth date for date inputs.
func (p *Person) BirthDateString() string {
	if p == nil || p.BirthDate.IsZero() {
		return ""
	}
	return p.BirthDate.Format(DateLayout)
}

// CategoryName returns the preloaded category name or an empty string.
func (p *Person) CategoryName() string {
	if p == nil || p.Category == nil {
		return ""
	}
	return p.Category.Name
}
