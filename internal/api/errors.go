package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/harshala334/virtual-office/internal/meetingcode"
	"github.com/harshala334/virtual-office/internal/service"
)

// errorResponse is the JSON body returned for failed requests
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps the service error taxonomy onto HTTP statuses
func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, meetingcode.ErrInvalidFormat):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: "invalid meeting code format"})
	case errors.Is(err, meetingcode.ErrChecksumMismatch):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorResponse{Error: "invalid meeting code"})
	case errors.Is(err, service.ErrRoomNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errorResponse{Error: "room not found"})
	case errors.Is(err, service.ErrRoomFull):
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(errorResponse{Error: "room is at capacity"})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(errorResponse{Error: "internal error"})
	}
}
