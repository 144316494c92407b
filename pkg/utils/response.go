package utils

import (
	"encoding/json"
	"net/http"
)

// Envelope is the fixed response shape the UI consumes.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination carries list paging metadata.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// ErrorBody is the fixed error response shape.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewPagination builds paging metadata from a total row count.
func NewPagination(page, perPage, total int) *Pagination {
	if perPage <= 0 {
		perPage = 20
	}
	if page <= 0 {
		page = 1
	}
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	return &Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// JSON writes an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// Success writes {success, data, message}.
func Success(w http.ResponseWriter, status int, data interface{}, message string) {
	JSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// List writes {success, data, pagination}.
func List(w http.ResponseWriter, data interface{}, p *Pagination) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: p})
}

// Error writes {code, message}.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorBody{Code: code, Message: message})
}
