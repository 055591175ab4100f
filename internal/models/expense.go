package models

import "time"

// Expense is a single spend record. Every expense belongs to exactly
// one user; all reads and writes are scoped by UserID.
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:255" json:"title"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	Description string    `gorm:"size:255" json:"description"`
	ExpenseDate time.Time `gorm:"type:date;index;not null" json:"date"`
	CreatedAt   time.Time `json:"created_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name aligned with the stats queries.
func (Expense) TableName() string {
	return "expenses"
}
