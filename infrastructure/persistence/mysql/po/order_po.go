package po

import (
	"time"
)

// OrderPO Order persistence object
// Note: Only used for database mapping, does not contain any business logic
// Orders are written by the checkout flow and read here only for the
// rolling analytics counts, so no domain aggregate backs this table.
type OrderPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"size:64;index;not null"` // Only store ID, no association with User
	CourseID  string    `gorm:"size:64;index;not null"`
	PaymentID string    `gorm:"size:128"`
	Amount    float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// TableName Specify table name
func (OrderPO) TableName() string {
	return "orders"
}
