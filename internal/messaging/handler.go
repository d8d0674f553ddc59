package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/nutricoach/server/internal/telemetry/metrics"
	"github.com/nutricoach/server/internal/telemetry/tracing"
	"github.com/nutricoach/server/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=messaging_test

type messagesRepo interface {
	Add(ctx context.Context, message Message) (*Message, error)
	List(ctx context.Context, params ListParams) (_ []Message, total int, err error)
	UnreadCount(ctx context.Context, clientID int, author Author) (int, error)
	MarkRead(ctx context.Context, clientID int, author Author) error
}

type ListResponse struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type Handler struct {
	repo    messagesRepo
	metrics *metrics.Manager
}

func NewHandler(repo messagesRepo, metrics *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		metrics: metrics,
	}
}

func (handler *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messaging.send")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	var message Message
	if err := json.NewDecoder(r.Body).Decode(&message); err != nil {
		log.Errorf("new message, unmarshal json params: %s", err)
		http.Error(w, "send message failed", http.StatusBadRequest)
		return
	}
	message.ClientID = clientID

	if !message.Author.IsValid() {
		http.Error(w, "error, invalid author", http.StatusBadRequest)
		return
	}
	if message.Body == "" {
		http.Error(w, "error, message body empty", http.StatusBadRequest)
		return
	}
	message.Read = false

	addedMessage, err := handler.repo.Add(ctx, message)
	if err != nil {
		log.Errorf("failed to send message for client %d: %s", clientID, err)
		http.Error(w, "error, failed to send message", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterMessages.Inc()

	messageJson, err := json.Marshal(addedMessage)
	if err != nil {
		log.Errorf("failed to marshal message: %s", err)
		http.Error(w, "error, failed to send message", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, messageJson, http.StatusCreated)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messaging.list")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	page, size := 1, 20
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p < 1 {
			http.Error(w, "error, invalid page", http.StatusBadRequest)
			return
		}
		page = p
	}
	if sizeStr := r.URL.Query().Get("size"); sizeStr != "" {
		s, err := strconv.Atoi(sizeStr)
		if err != nil || s < 1 {
			http.Error(w, "error, invalid size", http.StatusBadRequest)
			return
		}
		size = s
	}

	messages, total, err := handler.repo.List(ctx, ListParams{
		ClientID: clientID,
		Page:     page,
		Size:     size,
	})
	if err != nil {
		log.Errorf("failed to list messages for client %d: %s", clientID, err)
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ListResponse{Messages: messages, Total: total})
	if err != nil {
		log.Errorf("failed to marshal messages: %s", err)
		http.Error(w, "failed to list messages", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleUnreadCount returns how many messages from the given author
// are still unread by the other side.
func (handler *Handler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messaging.unreadCount")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	author := Author(mux.Vars(r)["author"])
	if !author.IsValid() {
		http.Error(w, "error, invalid author", http.StatusBadRequest)
		return
	}

	count, err := handler.repo.UnreadCount(ctx, clientID, author)
	if err != nil {
		log.Errorf("failed to count unread messages for client %d: %s", clientID, err)
		http.Error(w, "failed to count unread messages", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(UnreadCountResponse{Count: count})
	if err != nil {
		log.Errorf("failed to marshal unread count: %s", err)
		http.Error(w, "failed to count unread messages", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

// HandleMarkRead marks all messages from the given author as read.
func (handler *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.messaging.markRead")
	defer span.End()

	clientID, ok := clientIDFromRequest(w, r)
	if !ok {
		return
	}

	author := Author(mux.Vars(r)["author"])
	if !author.IsValid() {
		http.Error(w, "error, invalid author", http.StatusBadRequest)
		return
	}

	if err := handler.repo.MarkRead(ctx, clientID, author); err != nil {
		log.Errorf("failed to mark messages read for client %d: %s", clientID, err)
		http.Error(w, "error, failed to mark messages read", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "marked read")
}

func clientIDFromRequest(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := mux.Vars(r)["id"]
	if idStr == "" {
		http.Error(w, "error, client id empty", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "error, client id NaN", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
