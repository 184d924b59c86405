package models

import (
	"time"
)

// Apartment представляет квартиру в жилом комплексе
type Apartment struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"`
	Number    string     `gorm:"column:number;unique;not null;size:20"`
	Area      int        `gorm:"column:area;not null"` // Площадь в квадратных метрах
	Residents []Resident `gorm:"foreignKey:ApartmentID"`
	Vehicles  []Vehicle  `gorm:"foreignKey:ApartmentID"`
	CreatedAt time.Time  `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Apartment
func (Apartment) TableName() string {
	return "apartments"
}
