package models

import (
	"time"
)

// VehicleType представляет тип транспортного средства
type VehicleType string

const (
	VehicleTypeCar       VehicleType = "CAR"
	VehicleTypeMotorbike VehicleType = "MOTORBIKE"
	VehicleTypeOther     VehicleType = "OTHER"
)

// Vehicle представляет транспортное средство, закрепленное за квартирой
type Vehicle struct {
	ID          uint        `gorm:"primaryKey;autoIncrement"`
	PlateNumber string      `gorm:"column:plate_number;unique;not null;size:20"`
	Type        VehicleType `gorm:"column:type;type:varchar(20);not null;default:'OTHER'"`
	ApartmentID uint        `gorm:"column:apartment_id;not null;index"`
	CreatedAt   time.Time   `gorm:"column:created_at;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;default:CURRENT_TIMESTAMP"`
}

// TableName возвращает имя таблицы для модели Vehicle
func (Vehicle) TableName() string {
	return "vehicles"
}
