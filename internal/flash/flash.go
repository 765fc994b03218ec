// Package flash stores one-shot user feedback messages in the session.
// A message added during one request is rendered on the next page the
// client loads and then discarded.
package flash

import (
	"encoding/json"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/akrotov/task-manager/internal/constants"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Message is a single pending flash message.
type Message struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
}

// Add queues a message for the next rendered page.
func Add(c *gin.Context, kind Kind, text string) {
	session := sessions.Default(c)

	pending := decode(session.Get(constants.SessionKeyFlashes))
	pending = append(pending, Message{Kind: kind, Text: text})

	raw, err := json.Marshal(pending)
	if err != nil {
		log.WithError(err).Error("failed to encode flash messages")
		return
	}

	session.Set(constants.SessionKeyFlashes, string(raw))
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to save flash messages")
	}
}

// Success queues a success message.
func Success(c *gin.Context, text string) { Add(c, KindSuccess, text) }

// Error queues an error message.
func Error(c *gin.Context, text string) { Add(c, KindError, text) }

// Warning queues a warning message.
func Warning(c *gin.Context, text string) { Add(c, KindWarning, text) }

// Info queues an info message.
func Info(c *gin.Context, text string) { Add(c, KindInfo, text) }

// Take returns all pending messages and clears them from the session.
func Take(c *gin.Context) []Message {
	session := sessions.Default(c)

	pending := decode(session.Get(constants.SessionKeyFlashes))
	if len(pending) == 0 {
		return nil
	}

	session.Delete(constants.SessionKeyFlashes)
	if err := session.Save(); err != nil {
		log.WithError(err).Error("failed to clear flash messages")
	}

	return pending
}

func decode(raw any) []Message {
	encoded, ok := raw.(string)
	if !ok || encoded == "" {
		return nil
	}

	var pending []Message
	if err := json.Unmarshal([]byte(encoded), &pending); err != nil {
		return nil
	}
	return pending
}
