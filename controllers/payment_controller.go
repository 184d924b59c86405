package controllers

import (
	"encoding/json"
	"net/http"

	"communityBilling/database"
	"communityBilling/services"
	"github.com/gorilla/mux"
)

// PaymentController обрабатывает запросы, связанные с платежами
type PaymentController struct {
	paymentService *services.PaymentService
}

// NewPaymentController создает новый экземпляр PaymentController
func NewPaymentController(db *database.Database, email *services.EmailService) *PaymentController {
	return &PaymentController{
		paymentService: services.NewPaymentService(db.DB, email),
	}
}

// RegisterRoutes регистрирует маршруты платежей
func (c *PaymentController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/payments", c.CreatePayment).Methods("POST")
	router.HandleFunc("/payments", c.GetPayments).Methods("GET")
	router.HandleFunc("/payments/{id}", c.GetPayment).Methods("GET")
	router.HandleFunc("/payments/{id}", c.UpdatePayment).Methods("PUT")
	router.HandleFunc("/payments/{id}", c.DeletePayment).Methods("DELETE")
}

// CreatePayment обрабатывает запрос на создание платежа
func (c *PaymentController) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var dto services.CreatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.Create(dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, payment)
}

// GetPayments обрабатывает запрос на получение списка платежей.
// При непустом параметре search выполняется поиск по имени жителя
// или описанию взноса.
func (c *PaymentController) GetPayments(w http.ResponseWriter, r *http.Request) {
	page, size := parsePagination(r)
	search := r.URL.Query().Get("search")

	var err error
	var payments interface{}
	var total int64

	if search != "" {
		payments, total, err = c.paymentService.Search(search, page, size)
	} else {
		payments, total, err = c.paymentService.List(page, size)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PagedResponse{
		Items: payments,
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetPayment обрабатывает запрос на получение платежа
func (c *PaymentController) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.GetByID(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// UpdatePayment обрабатывает запрос на обновление платежа
func (c *PaymentController) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var dto services.CreatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.Update(id, dto)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payment)
}

// DeletePayment обрабатывает запрос на удаление платежа
func (c *PaymentController) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	if err := c.paymentService.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
