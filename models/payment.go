package models

import (
	"time"
)

// StatusNotYetPaid обозначает неоплаченный платеж. Любая другая строка в
// поле Status означает способ оплаты, которым платеж был проведен.
const StatusNotYetPaid = "not yet paid"

// Payment представляет платеж жителя по взносу
type Payment struct {
	ID         uint       `gorm:"primaryKey;autoIncrement"`
	FeeID      uint       `gorm:"column:fee_id;not null;index"`
	Fee        Fee        `gorm:"foreignKey:FeeID"`
	ResidentID uint       `gorm:"column:resident_id;not null;index"`
	Resident   Resident   `gorm:"foreignKey:ResidentID"`
	Quantity   int        `gorm:"column:quantity;not null"`
	AmountPaid int        `gorm:"column:amount_paid;not null"`
	Status     string     `gorm:"column:status;not null;size:50;default:'not yet paid'"`
	DatePaid   *time.Time `gorm:"column:date_paid;type:date"` // Дата оплаты, nil пока платеж не оплачен
	CreatedAt  time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Payment
func (Payment) TableName() string {
	return "payments"
}

// IsPaid сообщает, был ли платеж оплачен
func (p *Payment) IsPaid() bool {
	return p.DatePaid != nil
}
