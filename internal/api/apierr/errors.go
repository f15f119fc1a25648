package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tumbleweed-games/mostwanted/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodePlayerNotFound       = "PLAYER_NOT_FOUND"
	CodeTownNotFound         = "TOWN_NOT_FOUND"
	CodeDuplicateName        = "DUPLICATE_NAME"
	CodeQuorumNotMet         = "QUORUM_NOT_MET"
	CodeGameAlreadyStarted   = "GAME_ALREADY_STARTED"
	CodeRoleAssignmentFailed = "ROLE_ASSIGNMENT_FAILED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map domain errors; anything unmapped is an infrastructure failure
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Game state invalid: missing player, sheriff, or most wanted"}}
	case errors.Is(err, model.ErrTownNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTownNotFound, "Town not found"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateName, "Player name already exists in this town. Please choose another name."}}
	case errors.Is(err, model.ErrQuorumNotMet):
		return &httpError{http.StatusConflict, APIError{CodeQuorumNotMet, "The game requires between 5 and 10 players."}}
	case errors.Is(err, model.ErrGameAlreadyStarted):
		return &httpError{http.StatusConflict, APIError{CodeGameAlreadyStarted, "Game has already started"}}
	case errors.Is(err, model.ErrRoleAssignment):
		return &httpError{http.StatusInternalServerError, APIError{CodeRoleAssignmentFailed, "Roles not assigned correctly. Please try again."}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}
