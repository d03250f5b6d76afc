package httpapi

import (
	"net/http"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/session"
)

type startPracticeRequest struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
}

// practiceView is the JSON shape of a running session. The full plan is
// never exposed, only the current word and the progress counters.
type practiceView struct {
	ID        string           `json:"id"`
	UserID    int64            `json:"user_id"`
	Phase     session.Phase    `json:"phase"`
	Position  int              `json:"position"`
	Total     int              `json:"total"`
	Remaining int              `json:"remaining"`
	Seen      int              `json:"seen"`
	Right     int              `json:"right"`
	Wrong     int              `json:"wrong"`
	Current   *entity.UserWord `json:"current,omitempty"`
}

func viewSession(s *session.Session) practiceView {
	pos, total := s.Progress()
	view := practiceView{
		ID:        s.ID,
		UserID:    s.UserID,
		Phase:     s.Phase(),
		Position:  pos,
		Total:     total,
		Remaining: s.Remaining(),
		Seen:      s.Seen,
		Right:     s.Right,
		Wrong:     s.Wrong,
	}
	if current, ok := s.Current(); ok {
		view.Current = &current
	}
	return view
}

func (h *Handler) startPractice(w http.ResponseWriter, r *http.Request) {
	var req startPracticeRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	sess, err := h.practice.Start(r.Context(), req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.SessionsStarted.Inc()
	h.writeJSON(w, http.StatusCreated, viewSession(sess))
}

func (h *Handler) getPractice(w http.ResponseWriter, r *http.Request) {
	sess, err := h.practice.Get(r.Context(), r.PathValue("sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, viewSession(sess))
}

type practiceAnswerRequest struct {
	Right bool `json:"right"`
}

func (h *Handler) answerPractice(w http.ResponseWriter, r *http.Request) {
	var req practiceAnswerRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	sess, err := h.practice.Answer(r.Context(), r.PathValue("sessionID"), req.Right)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.AnswersSubmitted.WithLabelValues("practice").Inc()
	h.writeJSON(w, http.StatusOK, viewSession(sess))
}

func (h *Handler) stopPractice(w http.ResponseWriter, r *http.Request) {
	if err := h.practice.Stop(r.Context(), r.PathValue("sessionID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
