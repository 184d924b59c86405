package services

import (
	"errors"
	"strings"

	"communityBilling/models"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

var (
	ErrApartmentNotFound = errors.New("квартира не найдена")
	ErrVehicleNotFound   = errors.New("транспортное средство не найдено")
)

// CreateApartmentDTO представляет данные для создания квартиры
type CreateApartmentDTO struct {
	Number string `json:"number" validate:"required,max=20"`
	Area   int    `json:"area" validate:"required,gt=0"`
}

// CreateResidentDTO представляет данные для создания или обновления жителя
type CreateResidentDTO struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Gender      string `json:"gender" validate:"omitempty,oneof=male female"`
	ApartmentID uint   `json:"apartment_id" validate:"required"`
}

// CreateVehicleDTO представляет данные для регистрации транспортного средства
type CreateVehicleDTO struct {
	PlateNumber string `json:"plate_number" validate:"required,max=20"`
	Type        string `json:"type" validate:"required,oneof=CAR MOTORBIKE OTHER"`
}

// ResidentService предоставляет методы для работы с жителями и квартирами
type ResidentService struct {
	db        *gorm.DB
	validator *validator.Validate
}

// NewResidentService создает новый экземпляр ResidentService
func NewResidentService(db *gorm.DB) *ResidentService {
	return &ResidentService{
		db:        db,
		validator: validator.New(),
	}
}

// CreateApartment создает новую квартиру
func (s *ResidentService) CreateApartment(dto CreateApartmentDTO) (*models.Apartment, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	apartment := &models.Apartment{
		Number: dto.Number,
		Area:   dto.Area,
	}
	if err := s.db.Create(apartment).Error; err != nil {
		return nil, errors.New("ошибка при создании квартиры")
	}
	return apartment, nil
}

// GetApartmentByID возвращает квартиру вместе с жителями и транспортом
func (s *ResidentService) GetApartmentByID(id uint) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.db.Preload("Residents").Preload("Vehicles").First(&apartment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return &apartment, nil
}

// ListApartments возвращает страницу квартир
func (s *ResidentService) ListApartments(page, size int) ([]models.Apartment, int64, error) {
	var apartments []models.Apartment
	var total int64

	if err := s.db.Model(&models.Apartment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := s.db.Preload("Residents").Preload("Vehicles").
		Order("number ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&apartments).Error; err != nil {
		return nil, 0, err
	}

	return apartments, total, nil
}

// AddVehicle регистрирует транспортное средство за квартирой
func (s *ResidentService) AddVehicle(apartmentID uint, dto CreateVehicleDTO) (*models.Vehicle, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	// Проверяем существование квартиры
	var apartment models.Apartment
	if err := s.db.First(&apartment, apartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	vehicle := &models.Vehicle{
		PlateNumber: dto.PlateNumber,
		Type:        models.VehicleType(dto.Type),
		ApartmentID: apartment.ID,
	}
	if err := s.db.Create(vehicle).Error; err != nil {
		return nil, errors.New("ошибка при регистрации транспортного средства")
	}
	return vehicle, nil
}

// DeleteVehicle снимает транспортное средство с учета
func (s *ResidentService) DeleteVehicle(id uint) error {
	result := s.db.Delete(&models.Vehicle{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

// Create создает нового жителя
func (s *ResidentService) Create(dto CreateResidentDTO) (*models.Resident, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	// Проверяем существование квартиры
	var apartment models.Apartment
	if err := s.db.First(&apartment, dto.ApartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	resident := &models.Resident{
		FullName:    dto.FullName,
		Email:       dto.Email,
		Phone:       dto.Phone,
		Gender:      dto.Gender,
		ApartmentID: apartment.ID,
	}
	if err := s.db.Create(resident).Error; err != nil {
		return nil, errors.New("ошибка при создании жителя")
	}

	resident.Apartment = apartment
	return resident, nil
}

// Update обновляет данные жителя
func (s *ResidentService) Update(id uint, dto CreateResidentDTO) (*models.Resident, error) {
	if err := s.validator.Struct(dto); err != nil {
		return nil, err
	}

	var resident models.Resident
	if err := s.db.First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}

	// Проверяем существование квартиры
	var apartment models.Apartment
	if err := s.db.First(&apartment, dto.ApartmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}

	resident.FullName = dto.FullName
	resident.Email = dto.Email
	resident.Phone = dto.Phone
	resident.Gender = dto.Gender
	resident.ApartmentID = apartment.ID

	if err := s.db.Save(&resident).Error; err != nil {
		return nil, errors.New("ошибка при обновлении жителя")
	}

	resident.Apartment = apartment
	return &resident, nil
}

// GetByID возвращает жителя вместе с квартирой и ее транспортом
func (s *ResidentService) GetByID(id uint) (*models.Resident, error) {
	var resident models.Resident
	if err := s.db.Preload("Apartment.Vehicles").First(&resident, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResidentNotFound
		}
		return nil, err
	}
	return &resident, nil
}

// List возвращает страницу жителей с фильтрами по имени и полу
func (s *ResidentService) List(search, gender string, page, size int) ([]models.Resident, int64, error) {
	var residents []models.Resident
	var total int64

	query := s.db.Model(&models.Resident{})
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(full_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if gender != "" {
		query = query.Where("gender = ?", gender)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Apartment").
		Order("full_name ASC").
		Offset((page - 1) * size).Limit(size).
		Find(&residents).Error; err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// Delete удаляет жителя по ID
func (s *ResidentService) Delete(id uint) error {
	result := s.db.Delete(&models.Resident{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrResidentNotFound
	}
	return nil
}
