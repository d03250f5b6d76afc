package httpapi

import "net/http"

type createVersusRequest struct {
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Name   string `json:"name" validate:"required,max=64"`
}

func (h *Handler) createVersus(w http.ResponseWriter, r *http.Request) {
	var req createVersusRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.versus.Create(r.Context(), req.UserID, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.RoomsCreated.WithLabelValues("versus").Inc()
	h.writeJSON(w, http.StatusCreated, room)
}

type joinVersusRequest struct {
	Code   string `json:"code" validate:"required,len=4"`
	UserID int64  `json:"user_id" validate:"required,min=1"`
	Name   string `json:"name" validate:"required,max=64"`
}

func (h *Handler) joinVersus(w http.ResponseWriter, r *http.Request) {
	var req joinVersusRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.versus.Join(r.Context(), req.Code, req.UserID, req.Name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

func (h *Handler) getVersus(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.versus.Get(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

type versusAnswerRequest struct {
	UserID  int64 `json:"user_id" validate:"required,min=1"`
	Correct bool  `json:"correct"`
}

func (h *Handler) answerVersus(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req versusAnswerRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.versus.Answer(r.Context(), roomID, req.UserID, req.Correct)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.AnswersSubmitted.WithLabelValues("versus").Inc()
	h.writeJSON(w, http.StatusOK, room)
}

type versusActorRequest struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
}

func (h *Handler) leaveVersus(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req versusActorRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.versus.Leave(r.Context(), roomID, req.UserID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) rematchVersus(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req versusActorRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	room, err := h.versus.Rematch(r.Context(), roomID, req.UserID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, room)
}

func (h *Handler) watchVersus(w http.ResponseWriter, r *http.Request) {
	roomID, err := pathID(r, "roomID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	snapshots, err := h.versus.Watch(r.Context(), roomID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	streamEvents(h, w, r, snapshots)
}
