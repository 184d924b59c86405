package services

import (
	"errors"
	"strings"
	"time"

	"communityBilling/models"
	"communityBilling/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Ошибки доменного уровня. Контроллеры отображают их в HTTP статусы.
var (
	ErrFeeNotFound      = errors.New("взнос не найден")
	ErrResidentNotFound = errors.New("житель не найден")
	ErrPaymentNotFound  = errors.New("платеж не найден")
	ErrNegativeQuantity = errors.New("количество не может быть отрицательным")
)

// CreatePaymentDTO представляет данные для создания или обновления платежа
type CreatePaymentDTO struct {
	FeeID         uint   `json:"fee_id" validate:"required"`
	ResidentID    uint   `json:"resident_id" validate:"required"`
	Quantity      *int   `json:"quantity"`
	PaymentMethod string `json:"payment_method"`
}

// PaymentResponseDTO представляет ответ с данными платежа
type PaymentResponseDTO struct {
	ID         uint       `json:"id"`
	FeeID      uint       `json:"fee_id"`
	ResidentID uint       `json:"resident_id"`
	Quantity   int        `json:"quantity"`
	AmountPaid int        `json:"amount_paid"`
	Status     string     `json:"status"`
	DatePaid   *time.Time `json:"date_paid,omitempty"`
}

// PaymentService предоставляет методы для расчета и учета платежей
type PaymentService struct {
	db             *gorm.DB
	validator      *validator.Validate
	email          *EmailService
	vehicleTariffs map[models.VehicleType]int
}

// DefaultVehicleTariffs возвращает фиксированные тарифы за транспортное
// средство. Взносы типа "vehicle" при автоматическом начислении
// рассчитываются по этим тарифам, а не по сумме взноса.
func DefaultVehicleTariffs() map[models.VehicleType]int {
	return map[models.VehicleType]int{
		models.VehicleTypeCar:       1200000,
		models.VehicleTypeMotorbike: 70000,
		models.VehicleTypeOther:     70000,
	}
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(db *gorm.DB, email *EmailService) *PaymentService {
	return &PaymentService{
		db:             db,
		validator:      validator.New(),
		email:          email,
		vehicleTariffs: DefaultVehicleTariffs(),
	}
}

// notifyPaid отправляет жителю подтверждение оплаты, если платеж оплачен
// и у жителя указан email
func (s *PaymentService) notifyPaid(payment *models.Payment, resident *models.Resident) {
	if s.email == nil || !payment.IsPaid() || resident.Email == "" {
		return
	}
	if err := s.email.SendPaymentConfirmation(resident.Email, payment); err != nil {
		// Логируем ошибку, но не прерываем операцию
		utils.LogError("Ошибка при отправке подтверждения оплаты: %v", err)
	}
}

// vehicleTariff возвращает тариф для типа транспортного средства.
// Неизвестный тип тарифицируется как OTHER.
func (s *PaymentService) vehicleTariff(t models.VehicleType) int {
	if tariff, ok := s.vehicleTariffs[t]; ok {
		return tariff
	}
	return s.vehicleTariffs[models.VehicleTypeOther]
}

// resolveQuantity выводит количество для ручного создания/обновления платежа.
// Для взносов типа "area" количество всегда равно площади квартиры,
// переданное значение игнорируется.
func (s *PaymentService) resolveQuantity(fee *models.Fee, resident *models.Resident, requested *int) (int, error) {
	if fee.Type == models.FeeTypeArea {
		return resident.Apartment.Area, nil
	}
	if requested == nil {
		return 1, nil
	}
	if *requested < 0 {
		return 0, ErrNegativeQuantity
	}
	return *requested, nil
}

// applyStatus применяет правило перехода статуса и даты оплаты.
// Пустой способ оплаты означает неоплаченный платеж: статус-сентинел и
// отсутствие даты. Непустой способ сохраняется как есть, а дата оплаты
// проставляется только если ее еще не было: смена способа оплаты у уже
// оплаченного платежа не сдвигает дату.
func (s *PaymentService) applyStatus(payment *models.Payment, method string) {
	method = strings.TrimSpace(method)
	if method == "" {
		payment.Status = models.StatusNotYetPaid
		payment.DatePaid = nil
		return
	}

	payment.Status = method
	if payment.DatePaid == nil {
		now := time.Now()
		payment.DatePaid = &now
	}
}

// getFee загружает взнос по ID
func (s *PaymentService) getFee(tx *gorm.DB, id uint) (*models.Fee, error) {
	var fee models.Fee
	if err := tx.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}
	return &fee, nil
}

// getResident загружает жителя вместе с квартирой и ее транспортом
func (s *PaymentService) getResident(tx *gorm.DB, id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := tx.Preload("Apartment.Vehicles").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return &resident, nil
}

// toResponseDTO конвертирует модель Payment в DTO
func (s *PaymentService) toResponseDTO(payment *models.Payment) *PaymentResponseDTO {
	return &PaymentResponseDTO{
		ID:         payment.ID,
		FeeID:      payment.FeeID,
		ResidentID: payment.ResidentID,
		Quantity:   payment.Quantity,
		AmountPaid: payment.AmountPaid,
		Status:     payment.Status,
		DatePaid:   payment.DatePaid,
	}
}

// Create рассчитывает и создает новый платеж
func (s *PaymentService) Create(dto CreatePaymentDTO) (*PaymentResponseDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Загружаем жителя и взнос
	resident, err := s.getResident(tx, dto.ResidentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	fee, err := s.getFee(tx, dto.FeeID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Выводим количество и сумму
	quantity, err := s.resolveQuantity(fee, resident, dto.Quantity)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	payment := &models.Payment{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Quantity:   quantity,
		AmountPaid: fee.Amount * quantity,
	}

	// Применяем правило статуса и даты оплаты
	s.applyStatus(payment, dto.PaymentMethod)

	// Сохраняем платеж
	if err := tx.Create(payment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании платежа")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	utils.GetMetrics().RecordPaymentCreated()
	if payment.IsPaid() {
		utils.GetMetrics().RecordPaymentPaid()
	}
	s.notifyPaid(payment, resident)

	return s.toResponseDTO(payment), nil
}

// Update пересчитывает и обновляет существующий платеж
func (s *PaymentService) Update(id uint, dto CreatePaymentDTO) (*PaymentResponseDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Загружаем платеж
	var payment models.Payment
	if err := tx.First(&payment, id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, errors.New("ошибка при получении платежа")
	}

	// Загружаем жителя и взнос
	resident, err := s.getResident(tx, dto.ResidentID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	fee, err := s.getFee(tx, dto.FeeID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Пересчитываем количество и сумму
	quantity, err := s.resolveQuantity(fee, resident, dto.Quantity)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	payment.FeeID = fee.ID
	payment.ResidentID = resident.ID
	payment.Quantity = quantity
	payment.AmountPaid = fee.Amount * quantity

	wasPaid := payment.IsPaid()

	// Применяем правило статуса: существующая дата оплаты сохраняется,
	// пустой способ оплаты возвращает платеж в неоплаченное состояние
	s.applyStatus(&payment, dto.PaymentMethod)

	// Сохраняем изменения
	if err := tx.Save(&payment).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при обновлении платежа")
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	// Уведомляем только при первом переходе в оплаченное состояние
	if !wasPaid && payment.IsPaid() {
		utils.GetMetrics().RecordPaymentPaid()
		s.notifyPaid(&payment, resident)
	}

	return s.toResponseDTO(&payment), nil
}

// AutoGenerate создает неоплаченный платеж по взносу для жителя.
// Используется при введении обязательного взноса: каждый житель получает
// платеж по умолчанию. Если расчетное количество равно нулю (например, у
// квартиры нет транспорта при взносе типа "vehicle"), платеж не создается.
func (s *PaymentService) AutoGenerate(tx *gorm.DB, fee *models.Fee, resident *models.Resident) (*models.Payment, error) {
	if tx == nil {
		tx = s.db
	}

	payment := &models.Payment{
		FeeID:      fee.ID,
		ResidentID: resident.ID,
		Status:     models.StatusNotYetPaid,
		DatePaid:   nil,
	}

	switch fee.Type {
	case models.FeeTypeArea:
		payment.Quantity = resident.Apartment.Area
		payment.AmountPaid = fee.Amount * payment.Quantity
	case models.FeeTypeVehicle:
		// Транспортный взнос считается по тарифам за каждое транспортное
		// средство, сумма взноса при этом не используется
		payment.Quantity = len(resident.Apartment.Vehicles)
		amountPaid := 0
		for _, vehicle := range resident.Apartment.Vehicles {
			amountPaid += s.vehicleTariff(vehicle.Type)
		}
		payment.AmountPaid = amountPaid
	default:
		payment.Quantity = 1
		payment.AmountPaid = fee.Amount * payment.Quantity
	}

	// Нулевое количество означает, что начислять нечего
	if payment.Quantity == 0 {
		return nil, nil
	}

	if err := tx.Create(payment).Error; err != nil {
		return nil, errors.New("ошибка при создании платежа")
	}

	utils.GetMetrics().RecordPaymentGenerated()

	return payment, nil
}

// GetByID возвращает платеж по ID
func (s *PaymentService) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.Preload("Fee").Preload("Resident.Apartment").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// List возвращает страницу платежей
func (s *PaymentService) List(page, size int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	if err := s.db.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.db.Preload("Fee").Preload("Resident").
		Order("payments.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Search ищет платежи по имени жителя или описанию взноса
func (s *PaymentService) Search(search string, page, size int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	pattern := "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
	query := s.db.Model(&models.Payment{}).
		Joins("JOIN residents ON residents.id = payments.resident_id").
		Joins("JOIN fees ON fees.id = payments.fee_id").
		Where("LOWER(residents.full_name) LIKE ? OR LOWER(fees.description) LIKE ?", pattern, pattern)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Fee").Preload("Resident").
		Order("payments.created_at DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// Delete удаляет платеж по ID
func (s *PaymentService) Delete(id uint) error {
	result := s.db.Delete(&models.Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
