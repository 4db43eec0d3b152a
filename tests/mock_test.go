package tests_test

import (
	"encoding/json"
	"net/http"
	"sync"
)

type EmailSend struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// EmailCapture stands in for the hosted email API and records every send.
type EmailCapture struct {
	lock  sync.Mutex
	sends []EmailSend
}

func (c *EmailCapture) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var send EmailSend
		if err := json.NewDecoder(r.Body).Decode(&send); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		c.lock.Lock()
		c.sends = append(c.sends, send)
		c.lock.Unlock()

		w.WriteHeader(http.StatusOK)
	}
}

func (c *EmailCapture) Sends() []EmailSend {
	c.lock.Lock()
	defer c.lock.Unlock()

	out := make([]EmailSend, len(c.sends))
	copy(out, c.sends)
	return out
}
