package handlers

import (
	"CasaFacil/ai"
	"CasaFacil/models"
	"CasaFacil/store"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AssistantController drives the chat panel kept in the caller's session
// store.
type AssistantController struct {
	gateway  ai.Gateway
	sessions SessionStores
}

func NewAssistantController(gateway ai.Gateway, sessions SessionStores) *AssistantController {
	return &AssistantController{gateway: gateway, sessions: sessions}
}

func (ac *AssistantController) session(c echo.Context) (*store.Store, error) {
	s, err := sessionStore(c, ac.sessions)
	if err != nil {
		logFailure(c, "load session", err)
		return nil, fail(c, http.StatusInternalServerError, "Failed to load session")
	}
	if s == nil {
		return nil, fail(c, http.StatusUnauthorized, "Session not found")
	}
	return s, nil
}

type assistantState struct {
	Messages  []models.ChatMessage `json:"messages"`
	IsOpen    bool                 `json:"isOpen"`
	IsLoading bool                 `json:"isLoading"`
}

func stateOf(snap store.Snapshot) assistantState {
	return assistantState{
		Messages:  snap.ChatMessages,
		IsOpen:    snap.IsChatOpen,
		IsLoading: snap.IsLoading,
	}
}

func (ac *AssistantController) Get(c echo.Context) error {
	s, resp := ac.session(c)
	if s == nil {
		return resp
	}
	return ok(c, http.StatusOK, "assistant", stateOf(s.Snapshot()))
}

// Send forwards the message with the session transcript as history. Both
// turns are recorded only once the gateway has answered.
func (ac *AssistantController) Send(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return fail(c, http.StatusBadRequest, "Message is required")
	}

	s, resp := ac.session(c)
	if s == nil {
		return resp
	}
	if s.Snapshot().IsLoading {
		return fail(c, http.StatusConflict, "A message is already being processed")
	}

	history := ai.FormatHistory(s.Snapshot().ChatMessages)
	userMsg := models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.ChatRoleUser,
		Content:   message,
		Timestamp: time.Now().UTC(),
	}

	s.SetIsLoading(true)
	reply, err := ac.gateway.Chat(c.Request().Context(), message, history)
	s.SetIsLoading(false)
	if err != nil {
		logFailure(c, "assistant chat", err)
		return fail(c, http.StatusInternalServerError, "Failed to process the request")
	}

	s.AddChatMessage(userMsg)
	s.AddChatMessage(models.ChatMessage{
		ID:        uuid.NewString(),
		Role:      models.ChatRoleAssistant,
		Content:   reply,
		Timestamp: time.Now().UTC(),
	})
	return ok(c, http.StatusOK, "assistant", stateOf(s.Snapshot()))
}

func (ac *AssistantController) Clear(c echo.Context) error {
	s, resp := ac.session(c)
	if s == nil {
		return resp
	}
	s.ClearChat()
	return ok(c, http.StatusOK, "assistant", stateOf(s.Snapshot()))
}

func (ac *AssistantController) Toggle(c echo.Context) error {
	s, resp := ac.session(c)
	if s == nil {
		return resp
	}
	s.ToggleChat()
	return ok(c, http.StatusOK, "assistant", stateOf(s.Snapshot()))
}
