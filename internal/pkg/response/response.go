package response

import (
	"encoding/json"
	"net/http"

	"github.com/futig/docqa/internal/entity"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Can't change response at this point, just log
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// Payload writes a 200 envelope carrying data
func Payload(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, entity.Envelope{Payload: data})
}

// Error writes an error envelope with the status matching the kind of err
func Error(w http.ResponseWriter, err error) {
	kind := entity.KindOf(err)
	JSON(w, StatusForKind(kind), entity.Envelope{Error: err.Error(), Kind: kind})
}

// StatusForKind maps an error kind to its HTTP status
func StatusForKind(kind entity.ErrorKind) int {
	switch kind {
	case entity.KindInvalidConfig:
		return http.StatusBadRequest
	case entity.KindIndexNotFound:
		return http.StatusNotFound
	case entity.KindRetrieval:
		return http.StatusConflict
	case entity.KindRequestTooLarge:
		return http.StatusRequestEntityTooLarge
	case entity.KindEmbeddingService, entity.KindCompletionService, entity.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
