package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"communityBilling/services"
	"github.com/go-playground/validator/v10"
)

// PagedResponse представляет страницу результатов
type PagedResponse struct {
	Items interface{} `json:"items"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
}

// writeJSON отправляет ответ в формате JSON
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeServiceError отображает доменную ошибку в HTTP статус
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrFeeNotFound),
		errors.Is(err, services.ErrResidentNotFound),
		errors.Is(err, services.ErrPaymentNotFound),
		errors.Is(err, services.ErrApartmentNotFound),
		errors.Is(err, services.ErrVehicleNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrNegativeQuantity),
		errors.As(err, &validationErrors):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parsePagination читает параметры страницы из запроса
func parsePagination(r *http.Request) (page, size int) {
	page = 1
	size = 20

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && s > 0 && s <= 100 {
		size = s
	}
	return page, size
}

// parseID читает числовой идентификатор из параметров маршрута
func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
