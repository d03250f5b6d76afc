package httpapi

import (
	"errors"
	"net/http"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/session"
)

var errBadRequest = errors.New("malformed request")

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps domain sentinels onto HTTP statuses. Unknown errors
// are logged and surfaced as a bare 500 so internals never leak.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, entity.ErrInvalidWordText),
		errors.Is(err, session.ErrNotAnswerable):
		status = http.StatusBadRequest
	case errors.Is(err, entity.ErrUserNotFound),
		errors.Is(err, entity.ErrWordNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrRoomNotFound):
		status = http.StatusNotFound
	case errors.Is(err, entity.ErrRoomFull),
		errors.Is(err, entity.ErrRoomUnavailable),
		errors.Is(err, entity.ErrSelfJoin),
		errors.Is(err, entity.ErrNotYourTurn),
		errors.Is(err, entity.ErrNotHost),
		errors.Is(err, entity.ErrRoomCodeTaken):
		status = http.StatusConflict
	case errors.Is(err, entity.ErrInsufficientWords):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, entity.ErrCreationExhausted):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.logger.WithError(err).Error("request failed")
		h.writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	h.writeJSON(w, status, errorBody{Error: err.Error()})
}
