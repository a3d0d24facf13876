package http

import (
	"net/http"
	"time"

	"agroshare-backend/internal/logger"
	"agroshare-backend/internal/realtime"
	"agroshare-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

type ChatHandler struct {
	chat     service.ChatService
	upgrader websocket.Upgrader
}

func NewChatHandler(chat service.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	var req sendMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	msg, err := h.chat.Send(r.Context(), userID, requestID, req.Message)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	messages, err := h.chat.History(r.Context(), userID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	if err := h.chat.MarkRead(r.Context(), requestID, userID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChatHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	count, err := h.chat.UnreadCount(r.Context(), requestID, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unread_count": count})
}

// Stream upgrades to a websocket and pushes new messages for the
// request's conversation as they arrive.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	requestID := mux.Vars(r)["id"]

	sub, err := h.chat.Subscribe(r.Context(), userID, requestID)
	if err != nil {
		writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		sub.Close()
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	go h.pump(conn, sub)
}

// pump forwards hub messages to the socket until either side goes away.
func (h *ChatHandler) pump(conn *websocket.Conn, sub *realtime.Subscription) {
	defer sub.Close()
	defer conn.Close()

	// Drain reads so close frames from the client are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
