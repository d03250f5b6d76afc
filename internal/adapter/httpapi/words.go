package httpapi

import (
	"net/http"
	"strconv"

	"github.com/eslsoft/vocduel/internal/entity"
	"github.com/eslsoft/vocduel/internal/repository"
)

type addWordRequest struct {
	Word       string `json:"word" validate:"required,max=128"`
	Hint       string `json:"hint" validate:"max=512"`
	Definition string `json:"definition" validate:"max=2048"`
	ImageURL   string `json:"image_url" validate:"omitempty,url"`
}

func (h *Handler) addWord(w http.ResponseWriter, r *http.Request) {
	var req addWordRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	word, err := h.words.Add(r.Context(), &entity.UserWord{
		Word:       req.Word,
		Hint:       req.Hint,
		Definition: req.Definition,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, word)
}

type listWordsResponse struct {
	Words []entity.UserWord `json:"words"`
	Total int64             `json:"total"`
}

func (h *Handler) listWords(w http.ResponseWriter, r *http.Request) {
	query := &repository.ListWordsQuery{Keyword: r.URL.Query().Get("keyword")}
	query.PageNo = queryInt(r, "page_no")
	query.PageSize = queryInt(r, "page_size")

	words, total, err := h.words.List(r.Context(), query)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if words == nil {
		words = []entity.UserWord{}
	}
	h.writeJSON(w, http.StatusOK, listWordsResponse{Words: words, Total: total})
}

func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	stats, err := h.words.Stats(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

type setLevelRequest struct {
	LevelID int32 `json:"level_id" validate:"required,min=1"`
}

func (h *Handler) setLevel(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	wordID, err := pathID(r, "wordID")
	if err != nil {
		h.writeError(w, err)
		return
	}
	var req setLevelRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.words.SetLevel(r.Context(), userID, wordID, req.LevelID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, name string) int32 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0
	}
	return int32(n)
}
