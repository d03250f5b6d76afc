package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// streamEvents pushes every snapshot from the channel as one server-sent
// event until the client disconnects or the channel closes.
func streamEvents[T any](h *Handler, w http.ResponseWriter, r *http.Request, snapshots <-chan T) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		h.writeError(w, fmt.Errorf("streaming unsupported by connection"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snapshot, open := <-snapshots:
			if !open {
				return
			}
			payload, err := json.Marshal(snapshot)
			if err != nil {
				h.logger.WithError(err).Warn("event encode failed")
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
