package models

import (
	"time"
)

// Resident представляет жителя квартиры
type Resident struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FullName    string    `gorm:"column:full_name;not null;size:100;index"`
	Email       string    `gorm:"column:email;size:100"`
	Phone       string    `gorm:"column:phone;size:20"`
	Gender      string    `gorm:"column:gender;size:10"`
	ApartmentID uint      `gorm:"column:apartment_id;not null;index"`
	Apartment   Apartment `gorm:"foreignKey:ApartmentID"`
	CreatedAt   time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Resident
func (Resident) TableName() string {
	return "residents"
}
