package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"communityBilling/database"
	"communityBilling/services"
	"github.com/gorilla/mux"
)

// FeeController обрабатывает запросы, связанные со взносами
type FeeController struct {
	feeService *services.FeeService
}

// NewFeeController создает новый экземпляр FeeController
func NewFeeController(db *database.Database, email *services.EmailService) *FeeController {
	paymentService := services.NewPaymentService(db.DB, email)
	return &FeeController{
		feeService: services.NewFeeService(db.DB, paymentService, email),
	}
}

// RegisterRoutes регистрирует маршруты взносов
func (c *FeeController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/fees", c.CreateFee).Methods("POST")
	router.HandleFunc("/fees", c.GetFees).Methods("GET")
	router.HandleFunc("/fees/month", c.GetFeesByMonth).Methods("GET")
	router.HandleFunc("/fees/{id}", c.GetFee).Methods("GET")
	router.HandleFunc("/fees/{id}", c.UpdateFee).Methods("PUT")
	router.HandleFunc("/fees/{id}", c.DeleteFee).Methods("DELETE")
}

// CreateFee обрабатывает запрос на создание взноса
func (c *FeeController) CreateFee(w http.ResponseWriter, r *http.Request) {
	var dto services.FeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.Create(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fee)
}

// GetFees обрабатывает запрос на получение списка взносов.
// При непустом параметре type выполняется поиск по типу взноса.
func (c *FeeController) GetFees(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	feeType := r.URL.Query().Get("type")

	var err error
	var fees []services.FeeResponseDTO
	var total int64

	if feeType != "" {
		fees, total, err = c.feeService.SearchByType(feeType, page, size)
	} else {
		fees, total, err = c.feeService.List(page, size)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{
		Items: fees,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetFeesByMonth обрабатывает запрос на получение взносов за месяц
func (c *FeeController) GetFeesByMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}

	fees, err := c.feeService.GetByMonth(year, month)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fees)
}

// GetFee обрабатывает запрос на получение взноса
func (c *FeeController) GetFee(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid fee ID", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fee)
}

// UpdateFee обрабатывает запрос на обновление взноса
func (c *FeeController) UpdateFee(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid fee ID", http.StatusBadRequest)
		return
	}

	var dto services.FeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	fee, err := c.feeService.Update(id, dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fee)
}

// DeleteFee обрабатывает запрос на удаление взноса
func (c *FeeController) DeleteFee(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid fee ID", http.StatusBadRequest)
		return
	}

	if err := c.feeService.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
