package common

import (
	"encoding/json"
	"net/http"
	"time"

	"pilotconnect/internal/constants"
	"pilotconnect/internal/logging"
	"pilotconnect/internal/models/dtos"
)

// RespondSuccess writes the ok envelope. The status defaults to 200.
func RespondSuccess(w http.ResponseWriter, initTime time.Time, message string, data any, statusCode ...int) {
	send(w, statusOr(http.StatusOK, statusCode), dtos.APIResponse{
		Status:       string(constants.APIStatusOk),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
		Data:         data,
	})
}

// RespondError writes the error envelope. A non-empty err replaces message,
// so internal failures must be passed with a nil err. The status defaults to 500.
func RespondError(w http.ResponseWriter, initTime time.Time, err error, message string, statusCode ...int) {
	if err != nil && err.Error() != "" {
		message = err.Error()
	}

	send(w, statusOr(http.StatusInternalServerError, statusCode), dtos.APIResponse{
		Status:       string(constants.APIStatusError),
		Message:      message,
		ResponseTime: GetResponseTime(initTime),
	})
}

func statusOr(fallback int, codes []int) int {
	if len(codes) > 0 && codes[0] != 0 {
		return codes[0]
	}
	return fallback
}

func send(w http.ResponseWriter, code int, body dtos.APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	// headers are gone at this point, so a failed encode can only be logged
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logging.Error("response encode failed", "status", code, "error", err)
	}
}
