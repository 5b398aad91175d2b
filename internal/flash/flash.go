// Package flash carries one-shot user messages across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/fileshare/internal/ctxkeys"
)

const cookieName = "flash"

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Add queues a message for the next page render. Messages already waiting
// in the request's cookie are kept.
func Add(w http.ResponseWriter, r *http.Request, kind Kind, text string) {
	messages := append(read(r), Message{Kind: kind, Text: text})

	data, err := json.Marshal(messages)
	if err != nil {
		slog.Error("failed to encode flash messages", "error", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure(r),
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the pending messages and clears them
func Pop(w http.ResponseWriter, r *http.Request) []Message {
	messages := read(r)
	if _, err := r.Cookie(cookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure(r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return messages
}

func read(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}

	var messages []Message
	err = json.Unmarshal(data, &messages)
	if err != nil {
		return nil
	}
	return messages
}

func secure(r *http.Request) bool {
	cfg := ctxkeys.Config(r.Context())
	return cfg != nil && cfg.CookieSecure
}
