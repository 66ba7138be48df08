package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"learnpath-service/internal/app"
	"learnpath-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler drives one quiz attempt per WebSocket connection. The connection
// read loop is what serializes state-machine transitions for an attempt.
type WSHandler struct {
	service  *app.CourseService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.CourseService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type finishedPayload struct {
	domain.AttemptSnapshot
	Recorded bool `json:"recorded"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the quiz
// attempt use cases. A connection owns exactly one attempt; closing the
// connection abandons it.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	courseID := r.URL.Query().Get("courseId")
	activityID := r.URL.Query().Get("activityId")
	userID := r.URL.Query().Get("userId") // empty means anonymous: attempt runs, nothing is recorded
	if courseID == "" || activityID == "" {
		http.Error(w, "missing courseId or activityId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	snapshot, err := h.service.StartQuiz(r.Context(), courseID, activityID, userID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	send <- outboundMessage[any]{Type: "state", Payload: snapshot}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "response":
			var response domain.Response
			if err := json.Unmarshal(inbound.Payload, &response); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid response payload"}}
				continue
			}
			snapshot, err := h.service.Respond(r.Context(), userID, activityID, response)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "state", Payload: snapshot}

		case "check":
			snapshot, err := h.service.Check(r.Context(), userID, activityID)
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "state", Payload: snapshot}

		case "advance":
			h.move(r, send, userID, activityID, h.service.Advance)

		case "skip":
			h.move(r, send, userID, activityID, h.service.Skip)

		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) move(r *http.Request, send chan outboundMessage[any], userID, activityID string, transition func(ctx context.Context, userID, activityID string) (domain.AttemptSnapshot, bool, error)) {
	snapshot, recorded, err := transition(r.Context(), userID, activityID)
	if err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
		return
	}
	if snapshot.Finished {
		send <- outboundMessage[any]{Type: "finished", Payload: finishedPayload{AttemptSnapshot: snapshot, Recorded: recorded}}
		return
	}
	send <- outboundMessage[any]{Type: "state", Payload: snapshot}
}
