package controllers

import (
	"encoding/json"
	"net/http"

	"communityBilling/database"
	"communityBilling/services"
	"github.com/gorilla/mux"
)

// ResidentController обрабатывает запросы, связанные с жителями и квартирами
type ResidentController struct {
	residentService *services.ResidentService
}

// NewResidentController создает новый экземпляр ResidentController
func NewResidentController(db *database.Database) *ResidentController {
	return &ResidentController{
		residentService: services.NewResidentService(db.DB),
	}
}

// RegisterRoutes регистрирует маршруты жителей и квартир
func (c *ResidentController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/apartments", c.CreateApartment).Methods("POST")
	router.HandleFunc("/apartments", c.GetApartments).Methods("GET")
	router.HandleFunc("/apartments/{id}", c.GetApartment).Methods("GET")
	router.HandleFunc("/apartments/{id}/vehicles", c.AddVehicle).Methods("POST")
	router.HandleFunc("/vehicles/{id}", c.DeleteVehicle).Methods("DELETE")

	router.HandleFunc("/residents", c.CreateResident).Methods("POST")
	router.HandleFunc("/residents", c.GetResidents).Methods("GET")
	router.HandleFunc("/residents/{id}", c.GetResident).Methods("GET")
	router.HandleFunc("/residents/{id}", c.UpdateResident).Methods("PUT")
	router.HandleFunc("/residents/{id}", c.DeleteResident).Methods("DELETE")
}

// CreateApartment обрабатывает запрос на создание квартиры
func (c *ResidentController) CreateApartment(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateApartmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	apartment, err := c.residentService.CreateApartment(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, apartment)
}

// GetApartments обрабатывает запрос на получение списка квартир
func (c *ResidentController) GetApartments(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)

	apartments, total, err := c.residentService.ListApartments(page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{
		Items: apartments,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetApartment обрабатывает запрос на получение квартиры
func (c *ResidentController) GetApartment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
		return
	}

	apartment, err := c.residentService.GetApartmentByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, apartment)
}

// AddVehicle обрабатывает запрос на регистрацию транспортного средства
func (c *ResidentController) AddVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
		return
	}

	var dto services.CreateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	vehicle, err := c.residentService.AddVehicle(id, dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, vehicle)
}

// DeleteVehicle обрабатывает запрос на снятие транспортного средства с учета
func (c *ResidentController) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid vehicle ID", http.StatusBadRequest)
		return
	}

	if err := c.residentService.DeleteVehicle(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateResident обрабатывает запрос на создание жителя
func (c *ResidentController) CreateResident(w http.ResponseWriter, r *http.Request) {
	var dto services.CreateResidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resident, err := c.residentService.Create(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resident)
}

// GetResidents обрабатывает запрос на получение списка жителей с фильтрами
// по имени и полу
func (c *ResidentController) GetResidents(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	search := r.URL.Query().Get("search")
	gender := r.URL.Query().Get("gender")

	residents, total, err := c.residentService.List(search, gender, page, size)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{
		Items: residents,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetResident обрабатывает запрос на получение жителя
func (c *ResidentController) GetResident(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid resident ID", http.StatusBadRequest)
		return
	}

	resident, err := c.residentService.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resident)
}

// UpdateResident обрабатывает запрос на обновление жителя
func (c *ResidentController) UpdateResident(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid resident ID", http.StatusBadRequest)
		return
	}

	var dto services.CreateResidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resident, err := c.residentService.Update(id, dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resident)
}

// DeleteResident обрабатывает запрос на удаление жителя
func (c *ResidentController) DeleteResident(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid resident ID", http.StatusBadRequest)
		return
	}

	if err := c.residentService.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
