package services

import (
	"testing"
	"time"

	"communityBilling/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestCreateAreaFeePayment(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "101", 80)
	fee := seedFee(t, db, models.FeeTypeArea, 5000, 2024, 6, true)

	// Переданное количество игнорируется: для площади оно всегда равно
	// площади квартиры
	payment, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(3),
	})
	require.NoError(t, err)

	assert.Equal(t, 80, payment.Quantity)
	assert.Equal(t, 400000, payment.AmountPaid)
	assert.Equal(t, models.StatusNotYetPaid, payment.Status)
	assert.Nil(t, payment.DatePaid)
}

func TestCreatePaidPaymentStampsDate(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "101", 80)
	fee := seedFee(t, db, models.FeeTypeArea, 5000, 2024, 6, true)

	payment, err := service.Create(CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "cash", payment.Status)
	require.NotNil(t, payment.DatePaid)
	assert.Equal(t, time.Now().Format("2006-01-02"), payment.DatePaid.Format("2006-01-02"))
}

func TestCreatePerUnitPayment(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "102", 50)
	fee := seedFee(t, db, models.FeeTypePerUnit, 100000, 2024, 6, false)

	payment, err := service.Create(CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		Quantity:      intPtr(3),
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, payment.Quantity)
	assert.Equal(t, 300000, payment.AmountPaid)
	assert.Equal(t, "transfer", payment.Status)
	assert.NotNil(t, payment.DatePaid)
}

func TestCreateVehicleFeeManualPath(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "103", 60, models.VehicleTypeCar, models.VehicleTypeCar)
	fee := seedFee(t, db, models.FeeTypeVehicle, 50000, 2024, 6, false)

	// При ручном создании транспортный взнос считается по сумме взноса,
	// тарифы применяются только при автоматическом начислении
	payment, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, payment.Quantity)
	assert.Equal(t, 100000, payment.AmountPaid)
}

func TestCreateDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "104", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	payment, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, payment.Quantity)
	assert.Equal(t, 70000, payment.AmountPaid)
}

func TestCreateRejectsNegativeQuantity(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "105", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	_, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(-1),
	})
	assert.ErrorIs(t, err, ErrNegativeQuantity)

	// Платеж не должен быть создан
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateNotFoundErrors(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "106", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	_, err := service.Create(CreatePaymentDTO{FeeID: 999, ResidentID: resident.ID})
	assert.ErrorIs(t, err, ErrFeeNotFound)

	_, err = service.Create(CreatePaymentDTO{FeeID: fee.ID, ResidentID: 999})
	assert.ErrorIs(t, err, ErrResidentNotFound)
}

func TestStatusDateLaw(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "107", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	// Статус-сентинел и дата оплаты всегда согласованы после создания
	for _, method := range []string{"", "   ", "cash", "transfer", "card"} {
		payment, err := service.Create(CreatePaymentDTO{
			FeeID:         fee.ID,
			ResidentID:    resident.ID,
			PaymentMethod: method,
		})
		require.NoError(t, err)

		if payment.Status == models.StatusNotYetPaid {
			assert.Nil(t, payment.DatePaid)
		} else {
			assert.NotNil(t, payment.DatePaid)
		}
	}
}

func TestAutoGenerateVehicleFee(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, seeded := seedApartment(t, db, "108", 60,
		models.VehicleTypeCar, models.VehicleTypeCar, models.VehicleTypeMotorbike)
	fee := seedFee(t, db, models.FeeTypeVehicle, 50000, 2024, 6, true)

	resident, err := service.getResident(db, seeded.ID)
	require.NoError(t, err)

	// Два автомобиля и один мотоцикл: 1200000 + 1200000 + 70000
	payment, err := service.AutoGenerate(db, fee, resident)
	require.NoError(t, err)
	require.NotNil(t, payment)

	assert.Equal(t, 3, payment.Quantity)
	assert.Equal(t, 2470000, payment.AmountPaid)
	assert.Equal(t, models.StatusNotYetPaid, payment.Status)
	assert.Nil(t, payment.DatePaid)
}

func TestAutoGenerateSkipsZeroVehicles(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, seeded := seedApartment(t, db, "109", 60)
	fee := seedFee(t, db, models.FeeTypeVehicle, 50000, 2024, 6, true)

	resident, err := service.getResident(db, seeded.ID)
	require.NoError(t, err)

	payment, err := service.AutoGenerate(db, fee, resident)
	require.NoError(t, err)
	assert.Nil(t, payment)

	// Платеж не должен быть сохранен
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestAutoGenerateAreaAndPerUnit(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, seeded := seedApartment(t, db, "110", 75)
	resident, err := service.getResident(db, seeded.ID)
	require.NoError(t, err)

	areaFee := seedFee(t, db, models.FeeTypeArea, 4000, 2024, 6, true)
	payment, err := service.AutoGenerate(db, areaFee, resident)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, 75, payment.Quantity)
	assert.Equal(t, 300000, payment.AmountPaid)

	perUnitFee := seedFee(t, db, models.FeeTypePerUnit, 60000, 2024, 6, true)
	payment, err = service.AutoGenerate(db, perUnitFee, resident)
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, 1, payment.Quantity)
	assert.Equal(t, 60000, payment.AmountPaid)
}

func TestUpdatePreservesDatePaid(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "111", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	datePaid := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	seeded := &models.Payment{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   1,
		AmountPaid: 70000,
		Status:     "cash",
		DatePaid:   &datePaid,
	}
	require.NoError(t, db.Create(seeded).Error)

	// Смена способа оплаты у оплаченного платежа не сдвигает дату оплаты.
	// Это унаследованное правило: дата фиксирует первый факт оплаты.
	updated, err := service.Update(seeded.ID, CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		Quantity:      intPtr(1),
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, "transfer", updated.Status)
	require.NotNil(t, updated.DatePaid)
	assert.True(t, updated.DatePaid.Equal(datePaid))

	// Повторное обновление с теми же данными не меняет дату
	updated, err = service.Update(seeded.ID, CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		Quantity:      intPtr(1),
		PaymentMethod: "transfer",
	})
	require.NoError(t, err)
	require.NotNil(t, updated.DatePaid)
	assert.True(t, updated.DatePaid.Equal(datePaid))
}

func TestUpdateBlankMethodClearsDate(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "112", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	created, err := service.Create(CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		PaymentMethod: "cash",
	})
	require.NoError(t, err)
	require.NotNil(t, created.DatePaid)

	// Пустой способ оплаты возвращает платеж в неоплаченное состояние
	updated, err := service.Update(created.ID, CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(1),
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusNotYetPaid, updated.Status)
	assert.Nil(t, updated.DatePaid)
}

func TestUpdateFirstPaymentStampsDate(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "113", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	created, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
	})
	require.NoError(t, err)
	require.Nil(t, created.DatePaid)

	updated, err := service.Update(created.ID, CreatePaymentDTO{
		FeeID:         fee.ID,
		ResidentID:    resident.ID,
		Quantity:      intPtr(1),
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, "cash", updated.Status)
	require.NotNil(t, updated.DatePaid)
	assert.Equal(t, time.Now().Format("2006-01-02"), updated.DatePaid.Format("2006-01-02"))
}

func TestUpdateAreaFeeRecalculatesQuantity(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "114", 90)
	perUnitFee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)
	areaFee := seedFee(t, db, models.FeeTypeArea, 5000, 2024, 6, false)

	created, err := service.Create(CreatePaymentDTO{
		FeeID:      perUnitFee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(2),
	})
	require.NoError(t, err)

	// При смене взноса на тип "area" количество пересчитывается по площади
	updated, err := service.Update(created.ID, CreatePaymentDTO{
		FeeID:      areaFee.ID,
		ResidentID: resident.ID,
		Quantity:   intPtr(2),
	})
	require.NoError(t, err)

	assert.Equal(t, 90, updated.Quantity)
	assert.Equal(t, 450000, updated.AmountPaid)
}

func TestUpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "115", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	_, err := service.Update(999, CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
	})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestSearchPayments(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	apartment, _ := seedApartment(t, db, "116", 60)
	resident := &models.Resident{
		FullName:    "Ivan Petrov",
		ApartmentID: apartment.ID,
	}
	require.NoError(t, db.Create(resident).Error)

	fee := &models.Fee{
		Description: "Parking Fee",
		Type:        models.FeeTypePerUnit,
		Amount:      70000,
		Year:        2024,
		Month:       6,
	}
	require.NoError(t, db.Create(fee).Error)

	_, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
	})
	require.NoError(t, err)

	// Поиск по имени жителя без учета регистра
	payments, total, err := service.Search("ivan", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, payments, 1)

	// Поиск по описанию взноса
	_, total, err = service.Search("parking", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// Ничего не найдено
	_, total, err = service.Search("garbage", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestDeletePayment(t *testing.T) {
	db := newTestDB(t)
	service := NewPaymentService(db, nil)

	_, resident := seedApartment(t, db, "117", 60)
	fee := seedFee(t, db, models.FeeTypePerUnit, 70000, 2024, 6, false)

	created, err := service.Create(CreatePaymentDTO{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(created.ID))
	assert.ErrorIs(t, service.Delete(created.ID), ErrPaymentNotFound)
}
