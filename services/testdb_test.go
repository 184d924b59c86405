package services

import (
	"fmt"
	"strings"
	"testing"

	"communityBilling/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB создает изолированную базу данных в памяти для одного теста
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("не удалось открыть тестовую базу данных: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Apartment{},
		&models.Resident{},
		&models.Vehicle{},
		&models.Fee{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("не удалось выполнить миграцию тестовой базы данных: %v", err)
	}

	return db
}

// seedApartment создает квартиру с жителем и заданным транспортом
func seedApartment(t *testing.T, db *gorm.DB, number string, area int, vehicleTypes ...models.VehicleType) (*models.Apartment, *models.Resident) {
	t.Helper()

	apartment := &models.Apartment{Number: number, Area: area}
	if err := db.Create(apartment).Error; err != nil {
		t.Fatalf("не удалось создать квартиру: %v", err)
	}

	for i, vt := range vehicleTypes {
		vehicle := &models.Vehicle{
			PlateNumber: fmt.Sprintf("%s-%d", number, i),
			Type:        vt,
			ApartmentID: apartment.ID,
		}
		if err := db.Create(vehicle).Error; err != nil {
			t.Fatalf("не удалось создать транспортное средство: %v", err)
		}
	}

	resident := &models.Resident{
		FullName:    "Житель " + number,
		Email:       "",
		ApartmentID: apartment.ID,
	}
	if err := db.Create(resident).Error; err != nil {
		t.Fatalf("не удалось создать жителя: %v", err)
	}

	return apartment, resident
}

// seedFee создает взнос
func seedFee(t *testing.T, db *gorm.DB, feeType models.FeeType, amount, year, month int, compulsory bool) *models.Fee {
	t.Helper()

	fee := &models.Fee{
		Type:        feeType,
		Amount:      amount,
		Year:        year,
		Month:       month,
		Description: "Тестовый взнос",
		Compulsory:  compulsory,
	}
	if err := db.Create(fee).Error; err != nil {
		t.Fatalf("не удалось создать взнос: %v", err)
	}
	return fee
}
