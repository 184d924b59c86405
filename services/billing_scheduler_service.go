package services

import (
	"errors"
	"time"

	"communityBilling/models"
	"communityBilling/utils"
	"gorm.io/gorm"
)

// BillingSchedulerService периодически доначисляет платежи по обязательным
// взносам текущего месяца: жители, добавленные после создания взноса,
// тоже должны получить платеж по умолчанию.
type BillingSchedulerService struct {
	db             *gorm.DB
	paymentService *PaymentService
}

// NewBillingSchedulerService создает новый экземпляр BillingSchedulerService
func NewBillingSchedulerService(db *gorm.DB, paymentService *PaymentService) *BillingSchedulerService {
	return &BillingSchedulerService{
		db:             db,
		paymentService: paymentService,
	}
}

// Start запускает планировщик начислений
func (s *BillingSchedulerService) Start() {
	// Запускаем доначисление каждые 12 часов
	ticker := time.NewTicker(12 * time.Hour)
	go func() {
		for {
			select {
			case <-ticker.C:
				now := time.Now()
				if err := s.ProcessPeriod(now.Year(), int(now.Month())); err != nil {
					utils.LogError("Ошибка при доначислении платежей: %v", err)
				}
			}
		}
	}()
}

// ProcessPeriod доначисляет платежи по всем обязательным взносам указанного
// расчетного периода
func (s *BillingSchedulerService) ProcessPeriod(year, month int) (err error) {
	start := time.Now()
	defer func() { utils.LogOperation("доначисление платежей", start, err) }()

	// Начинаем транзакцию
	tx := s.db.Begin()
	if tx.Error != nil {
		return errors.New("ошибка при начале транзакции")
	}

	// Получаем обязательные взносы периода
	var fees []models.Fee
	if err := tx.Where("compulsory = ? AND year = ? AND month = ?", true, year, month).
		Find(&fees).Error; err != nil {
		tx.Rollback()
		return errors.New("ошибка при получении обязательных взносов")
	}

	for i := range fees {
		if err := s.processFee(tx, &fees[i]); err != nil {
			tx.Rollback()
			return err
		}
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return errors.New("ошибка при подтверждении транзакции")
	}

	return nil
}

// processFee начисляет платежи по одному взносу жителям, у которых платежа
// по нему еще нет
func (s *BillingSchedulerService) processFee(tx *gorm.DB, fee *models.Fee) error {
	// Получаем жителей без платежа по этому взносу
	var residents []models.Resident
	if err := tx.Preload("Apartment.Vehicles").
		Where("id NOT IN (?)", tx.Model(&models.Payment{}).
			Select("resident_id").
			Where("fee_id = ?", fee.ID)).
		Find(&residents).Error; err != nil {
		return errors.New("ошибка при получении жителей без начисления")
	}

	for i := range residents {
		if _, err := s.paymentService.AutoGenerate(tx, fee, &residents[i]); err != nil {
			return err
		}
	}

	return nil
}
