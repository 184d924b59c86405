package services

import (
	"errors"

	"communityBilling/models"
	"communityBilling/utils"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// FeeDTO представляет данные для создания или обновления взноса
type FeeDTO struct {
	Type        string `json:"type"`
	Amount      int    `json:"amount" validate:"gte=0"`
	Year        int    `json:"year" validate:"required,gte=2000"`
	Month       int    `json:"month" validate:"required,gte=1,lte=12"`
	Description string `json:"description"`
	Compulsory  bool   `json:"compulsory"`
}

// FeeResponseDTO представляет ответ с данными взноса
type FeeResponseDTO struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Month       string `json:"month"` // Расчетный период в формате "2006-01"
	Description string `json:"description"`
	Compulsory  bool   `json:"compulsory"`
}

// FeeService предоставляет методы для работы со взносами
type FeeService struct {
	db             *gorm.DB
	validator      *validator.Validate
	paymentService *PaymentService
	email          *EmailService
}

// NewFeeService создает новый экземпляр FeeService
func NewFeeService(db *gorm.DB, paymentService *PaymentService, email *EmailService) *FeeService {
	return &FeeService{
		db:             db,
		validator:      validator.New(),
		paymentService: paymentService,
		email:          email,
	}
}

// toResponseDTO конвертирует модель Fee в DTO
func (s *FeeService) toResponseDTO(fee *models.Fee) *FeeResponseDTO {
	return &FeeResponseDTO{
		ID:          fee.ID,
		Type:        string(fee.Type),
		Amount:      fee.Amount,
		Month:       fee.Period(),
		Description: fee.Description,
		Compulsory:  fee.Compulsory,
	}
}

// Create создает новый взнос. Для обязательного взноса каждому жителю
// сразу начисляется неоплаченный платеж по умолчанию.
func (s *FeeService) Create(dto FeeDTO) (*FeeResponseDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	fee := &models.Fee{
		Type:        models.NormalizeFeeType(dto.Type),
		Amount:      dto.Amount,
		Year:        dto.Year,
		Month:       dto.Month,
		Description: dto.Description,
		Compulsory:  dto.Compulsory,
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, errors.New("ошибка при начале транзакции")
	}

	// Сохраняем взнос
	if err := tx.Create(fee).Error; err != nil {
		tx.Rollback()
		return nil, errors.New("ошибка при создании взноса")
	}

	var notified []models.Resident

	// Начисляем платежи по обязательному взносу
	if fee.Compulsory {
		var residents []models.Resident
		if err := tx.Preload("Apartment.Vehicles").Find(&residents).Error; err != nil {
			tx.Rollback()
			return nil, errors.New("ошибка при получении списка жителей")
		}

		for i := range residents {
			payment, err := s.paymentService.AutoGenerate(tx, fee, &residents[i])
			if err != nil {
				tx.Rollback()
				return nil, err
			}
			if payment != nil {
				notified = append(notified, residents[i])
			}
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, errors.New("ошибка при подтверждении транзакции")
	}

	// Рассылаем уведомления о новом начислении
	if s.email != nil {
		for _, resident := range notified {
			if resident.Email == "" {
				continue
			}
			if err := s.email.SendFeeNotification(resident.Email, fee); err != nil {
				// Логируем ошибку, но не прерываем операцию
				utils.LogError("Ошибка при отправке уведомления жителю %d: %v", resident.ID, err)
			}
		}
	}

	return s.toResponseDTO(fee), nil
}

// Update обновляет существующий взнос
func (s *FeeService) Update(id uint, dto FeeDTO) (*FeeResponseDTO, error) {
	// Валидируем DTO
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var fee models.Fee
	if err := s.db.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}

	fee.Type = models.NormalizeFeeType(dto.Type)
	fee.Amount = dto.Amount
	fee.Year = dto.Year
	fee.Month = dto.Month
	fee.Description = dto.Description
	fee.Compulsory = dto.Compulsory

	if err := s.db.Save(&fee).Error; err != nil {
		return nil, errors.New("ошибка при обновлении взноса")
	}

	return s.toResponseDTO(&fee), nil
}

// GetByID возвращает взнос по ID
func (s *FeeService) GetByID(id uint) (*FeeResponseDTO, error) {
	var fee models.Fee
	if err := s.db.First(&fee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, err
	}
	return s.toResponseDTO(&fee), nil
}

// List возвращает страницу взносов
func (s *FeeService) List(page, size int) ([]FeeResponseDTO, int64, error) {
	var fees []models.Fee
	var total int64

	if err := s.db.Model(&models.Fee{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.db.Order("year DESC, month DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&fees).Error; err != nil {
		return nil, 0, err
	}

	dtos := make([]FeeResponseDTO, len(fees))
	for i := range fees {
		dtos[i] = *s.toResponseDTO(&fees[i])
	}
	return dtos, total, nil
}

// GetByMonth возвращает все взносы за указанный месяц
func (s *FeeService) GetByMonth(year, month int) ([]FeeResponseDTO, error) {
	var fees []models.Fee
	if err := s.db.Where("year = ? AND month = ?", year, month).
		Order("id ASC").
		Find(&fees).Error; err != nil {
		return nil, err
	}

	dtos := make([]FeeResponseDTO, len(fees))
	for i := range fees {
		dtos[i] = *s.toResponseDTO(&fees[i])
	}
	return dtos, nil
}

// SearchByType возвращает страницу взносов указанного типа
func (s *FeeService) SearchByType(feeType string, page, size int) ([]FeeResponseDTO, int64, error) {
	var fees []models.Fee
	var total int64

	query := s.db.Model(&models.Fee{}).Where("type = ?", models.NormalizeFeeType(feeType))

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("year DESC, month DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&fees).Error; err != nil {
		return nil, 0, err
	}

	dtos := make([]FeeResponseDTO, len(fees))
	for i := range fees {
		dtos[i] = *s.toResponseDTO(&fees[i])
	}
	return dtos, total, nil
}

// Delete удаляет взнос по ID
func (s *FeeService) Delete(id uint) error {
	result := s.db.Delete(&models.Fee{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFeeNotFound
	}
	return nil
}
