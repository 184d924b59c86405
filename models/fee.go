package models

import (
	"time"
)

// FeeType представляет тип взноса и определяет правило расчета количества
type FeeType string

const (
	FeeTypeArea    FeeType = "area"     // Количество равно площади квартиры
	FeeTypeVehicle FeeType = "vehicle"  // Количество равно числу транспортных средств
	FeeTypePerUnit FeeType = "per-unit" // Количество задается вручную
)

// NormalizeFeeType приводит произвольную строку к известному типу взноса.
// Любое неизвестное значение считается per-unit.
func NormalizeFeeType(raw string) FeeType {
	switch FeeType(raw) {
	case FeeTypeArea:
		return FeeTypeArea
	case FeeTypeVehicle:
		return FeeTypeVehicle
	default:
		return FeeTypePerUnit
	}
}

// Fee представляет взнос за определенный месяц
type Fee struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	Type        FeeType   `gorm:"column:type;type:varchar(20);not null;default:'per-unit'"`
	Amount      int       `gorm:"column:amount;not null"` // Сумма за единицу
	Year        int       `gorm:"column:year;not null"`
	Month       int       `gorm:"column:month;not null"`
	Description string    `gorm:"column:description;size:255"`
	Compulsory  bool      `gorm:"column:compulsory;not null;default:false"`
	Payments    []Payment `gorm:"foreignKey:FeeID"`
	CreatedAt   time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Fee
func (Fee) TableName() string {
	return "fees"
}

// Period возвращает расчетный период в формате "2006-01"
func (f *Fee) Period() string {
	return time.Date(f.Year, time.Month(f.Month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}
