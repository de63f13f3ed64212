package controller

import (
	"encoding/json"
	"net/http"

	"github.com/jbeshir/badge-desk/internal/command"
	"github.com/jbeshir/badge-desk/internal/domain"
)

const maxChatMessageBytes = 16 * 1024

type IntentObserver interface {
	ObserveChatIntent(intent string)
}

type Chat struct {
	Responder command.Command[command.RespondToMessageRequest, command.RespondToMessageResponse]
	Observer  IntentObserver
}

type chatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply  string         `json:"reply"`
	Intent command.Intent `json:"intent"`
}

func (c Chat) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatMessageBytes)).Decode(&req); err != nil {
		logger.ErrorContext(ctx, "unable to decode chat request", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	res, err := c.Responder.Execute(ctx, command.RespondToMessageRequest{Message: req.Message})
	if err != nil {
		logger.ErrorContext(ctx, "unable to respond to message", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if c.Observer != nil {
		c.Observer.ObserveChatIntent(string(res.Intent))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(ChatResponse{Reply: res.Reply, Intent: res.Intent}); err != nil {
		logger.ErrorContext(ctx, "unable to write chat reply to response", "error", err)
	}
}

// ChatSuggestions lists example questions the assistant understands.
type ChatSuggestions struct{}

func (c ChatSuggestions) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(struct {
		Data []string `json:"data"`
	}{Data: command.SuggestedQuestions}); err != nil {
		ctx := r.Context()
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write suggestions to response", "error", err)
	}
}
