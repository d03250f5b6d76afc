// Package httpapi exposes the trainer over a JSON HTTP surface with
// server-sent events for room watching.
package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/infrastructure/server"
	"github.com/eslsoft/vocduel/internal/usecase"
)

// Handler bundles the usecases behind the route table.
type Handler struct {
	words    usecase.WordUsecase
	practice usecase.PracticeUsecase
	versus   usecase.VersusUsecase
	reverse  usecase.ReverseUsecase

	logger   *logrus.Logger
	metrics  *server.Metrics
	validate *validator.Validate
}

// NewHandler builds the API router.
func NewHandler(
	words usecase.WordUsecase,
	practice usecase.PracticeUsecase,
	versus usecase.VersusUsecase,
	reverse usecase.ReverseUsecase,
	logger *logrus.Logger,
	metrics *server.Metrics,
) http.Handler {
	h := &Handler{
		words:    words,
		practice: practice,
		versus:   versus,
		reverse:  reverse,
		logger:   logger,
		metrics:  metrics,
		validate: validator.New(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/words", h.addWord)
	mux.HandleFunc("GET /api/v1/words", h.listWords)
	mux.HandleFunc("GET /api/v1/users/{userID}/stats", h.userStats)
	mux.HandleFunc("PUT /api/v1/users/{userID}/words/{wordID}/level", h.setLevel)

	mux.HandleFunc("POST /api/v1/practice", h.startPractice)
	mux.HandleFunc("GET /api/v1/practice/{sessionID}", h.getPractice)
	mux.HandleFunc("POST /api/v1/practice/{sessionID}/answers", h.answerPractice)
	mux.HandleFunc("DELETE /api/v1/practice/{sessionID}", h.stopPractice)

	mux.HandleFunc("POST /api/v1/versus", h.createVersus)
	mux.HandleFunc("POST /api/v1/versus/join", h.joinVersus)
	mux.HandleFunc("GET /api/v1/versus/{roomID}", h.getVersus)
	mux.HandleFunc("POST /api/v1/versus/{roomID}/answers", h.answerVersus)
	mux.HandleFunc("POST /api/v1/versus/{roomID}/leave", h.leaveVersus)
	mux.HandleFunc("POST /api/v1/versus/{roomID}/rematch", h.rematchVersus)
	mux.HandleFunc("GET /api/v1/versus/{roomID}/watch", h.watchVersus)

	mux.HandleFunc("POST /api/v1/reverse", h.createReverse)
	mux.HandleFunc("POST /api/v1/reverse/join", h.joinReverse)
	mux.HandleFunc("GET /api/v1/reverse/{roomID}", h.getReverse)
	mux.HandleFunc("POST /api/v1/reverse/{roomID}/start", h.startReverse)
	mux.HandleFunc("POST /api/v1/reverse/{roomID}/answers", h.answerReverse)
	mux.HandleFunc("POST /api/v1/reverse/{roomID}/timeout", h.timeoutReverse)
	mux.HandleFunc("POST /api/v1/reverse/{roomID}/check", h.checkReverse)
	mux.HandleFunc("GET /api/v1/reverse/{roomID}/results", h.reverseResults)
	mux.HandleFunc("GET /api/v1/reverse/{roomID}/watch", h.watchReverse)

	return mux
}

func (h *Handler) decode(r *http.Request, into any) error {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		return errBadRequest
	}
	if err := h.validate.Struct(into); err != nil {
		return errBadRequest
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.WithError(err).Warn("response write failed")
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadRequest
	}
	return id, nil
}
