package web

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// Flash categories; they double as styling hooks in the layout.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
	FlashDanger  = "danger"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

const flashCookieName = "greenhouse_flash"

// AddFlash queues a message for the next rendered page. Queued messages ride
// across one redirect in a short-lived cookie; calling AddFlash again on the
// same response appends to the queue.
func AddFlash(w http.ResponseWriter, category, message string) {
	flashes := append(pendingFlashes(w), Flash{Category: category, Message: message})
	setFlashCookie(w, flashes)
}

// PopFlashes returns the messages queued by a previous request and clears
// them so they display exactly once.
func PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	flashes, err := decodeFlashes(cookie.Value)
	if err != nil {
		slog.Warn("discarding an unreadable flash cookie", "error", err)
		return nil
	}

	return flashes
}

// pendingFlashes recovers messages already queued on this response so that
// consecutive AddFlash calls accumulate instead of overwriting each other.
func pendingFlashes(w http.ResponseWriter) []Flash {
	for _, line := range w.Header().Values("Set-Cookie") {
		if !strings.HasPrefix(line, flashCookieName+"=") {
			continue
		}

		value := strings.TrimPrefix(line, flashCookieName+"=")
		if i := strings.IndexByte(value, ';'); i >= 0 {
			value = value[:i]
		}
		if value == "" {
			continue
		}

		flashes, err := decodeFlashes(value)
		if err != nil {
			continue
		}
		return flashes
	}

	return nil
}

func setFlashCookie(w http.ResponseWriter, flashes []Flash) {
	// replace any flash cookie already queued on this response
	lines := w.Header().Values("Set-Cookie")
	w.Header().Del("Set-Cookie")
	for _, line := range lines {
		if !strings.HasPrefix(line, flashCookieName+"=") {
			w.Header().Add("Set-Cookie", line)
		}
	}

	encoded, err := json.Marshal(flashes)
	if err != nil {
		slog.Error("failed to encode flash messages", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.URLEncoding.EncodeToString(encoded),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func decodeFlashes(value string) ([]Flash, error) {
	decoded, err := base64.URLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}

	var flashes []Flash
	if err := json.Unmarshal(decoded, &flashes); err != nil {
		return nil, err
	}

	return flashes, nil
}
