package httpapi

import "net/http"

type createReverseRequest struct {
	UserID         int64  `json:"user_id" validate:"required,min=1"`
	Name           string `json:"name" validate:"required,max=64"`
	TotalQuestions int32  `json:"total_questions" validate:"min=0,max=50"`
}

func (h *Handler) createReverse(w http.ResponseWriter, r *http.Request) {
	var req createReverseRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.reverse.Create(r.Context(), req.UserID, req.Name, req.TotalQuestions)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.RoomsCreated.WithLabelValues("reverse").Inc()
	h.writeJSON(w, http.StatusCreated, room)
}

type joinReverseRequest struct {
	Code   string `json:"code" validate:"required,len=4"`
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Name   string `json:"name" validate:"required,max=64"`
}

func (h *Handler) joinReverse(w http.ResponseWriter, r *http.Request) {
	var req joinReverseRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.reverse.Join(r.Context(), req.Code, req.UserID, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

func (h *Handler) getReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.reverse.Get(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

type reverseActorRequest struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
}

func (h *Handler) startReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req reverseActorRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.reverse.Start(r.Context(), roomID, req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

type reverseAnswerRequest struct {
	UserID         int64 `json:"user_id" validate:"required,min=1"`
	SelectedWordID int64 `json:"selected_word_id" validate:"required,min=1"`
}

func (h *Handler) answerReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req reverseAnswerRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.reverse.Answer(r.Context(), roomID, req.UserID, req.SelectedWordID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.AnswersSubmitted.WithLabelValues("reverse").Inc()
	h.writeJSON(w, http.StatusOK, room)
}

func (h *Handler) timeoutReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req reverseActorRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.reverse.TimeoutAnswer(r.Context(), roomID, req.UserID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type checkReverseResponse struct {
	AllAnswered bool `json:"all_answered"`
}

func (h *Handler) checkReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	done, err := h.reverse.CheckAllAnswered(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, checkReverseResponse{AllAnswered: done})
}

func (h *Handler) reverseResults(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	results, err := h.reverse.Results(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, results)
}

func (h *Handler) watchReverse(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	snapshots, err := h.reverse.Watch(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	streamEvents(h, w, r, snapshots)
}
