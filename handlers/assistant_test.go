package handlers

import (
	"CasaFacil/ai"
	"CasaFacil/models"
	"CasaFacil/store"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantFixture(gw *fakeGateway) (*AssistantController, *store.Store, *caller) {
	s := store.New()
	s.SetUser(&models.User{ID: "tenant-1", Role: models.RoleTenant})
	ac := NewAssistantController(gw, fakeSessions{"s1": s})
	return ac, s, &caller{userID: "tenant-1", role: models.RoleTenant, sessionID: "s1"}
}

func TestAssistantSendRecordsBothTurns(t *testing.T) {
	gw := &fakeGateway{reply: "Hay dos casas en Lorica."}
	ac, s, who := newAssistantFixture(gw)

	var loading []bool
	s.Subscribe(func(snap store.Snapshot) { loading = append(loading, snap.IsLoading) })

	code, body := call(t, ac.Send, newRequest(http.MethodPost, "/api/assistant/messages", map[string]any{"message": "¿Qué hay en Lorica?"}), who)

	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["success"])
	msgs := s.Snapshot().ChatMessages
	require.Len(t, msgs, 2)
	assert.Equal(t, models.ChatRoleUser, msgs[0].Role)
	assert.Equal(t, "¿Qué hay en Lorica?", msgs[0].Content)
	assert.Equal(t, models.ChatRoleAssistant, msgs[1].Role)
	assert.Equal(t, "Hay dos casas en Lorica.", msgs[1].Content)
	assert.NotEqual(t, msgs[0].ID, msgs[1].ID)
	assert.Equal(t, []string{""}, gw.history)
	assert.Equal(t, []bool{true, false, false, false}, loading)
	assert.False(t, s.Snapshot().IsLoading)
}

func TestAssistantSendUsesTranscriptAsHistory(t *testing.T) {
	gw := &fakeGateway{reply: "Sí."}
	ac, s, who := newAssistantFixture(gw)
	s.AddChatMessage(models.ChatMessage{ID: "1", Role: models.ChatRoleUser, Content: "Hola"})
	s.AddChatMessage(models.ChatMessage{ID: "2", Role: models.ChatRoleAssistant, Content: "¡Hola!"})

	call(t, ac.Send, newRequest(http.MethodPost, "/api/assistant/messages", map[string]any{"message": "¿Tienen parqueadero?"}), who)

	require.Len(t, gw.history, 1)
	assert.Equal(t, ai.FormatHistory([]models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "Hola"},
		{Role: models.ChatRoleAssistant, Content: "¡Hola!"},
	}), gw.history[0])
	assert.Len(t, s.Snapshot().ChatMessages, 4)
}

func TestAssistantSendFailureLeavesTranscriptUntouched(t *testing.T) {
	gw := &fakeGateway{err: ai.ErrCommunication}
	ac, s, who := newAssistantFixture(gw)

	code, body := call(t, ac.Send, newRequest(http.MethodPost, "/api/assistant/messages", map[string]any{"message": "hola"}), who)

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["success"])
	assert.Empty(t, s.Snapshot().ChatMessages)
	assert.False(t, s.Snapshot().IsLoading)
}

func TestAssistantSendRequiresSessionAndMessage(t *testing.T) {
	gw := &fakeGateway{reply: "x"}
	ac, _, who := newAssistantFixture(gw)

	code, _ := call(t, ac.Send, newRequest(http.MethodPost, "/api/assistant/messages", map[string]any{"message": ""}), who)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = call(t, ac.Send, newRequest(http.MethodPost, "/api/assistant/messages", map[string]any{"message": "hola"}), nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Empty(t, gw.messages)
}

func TestAssistantToggleAndClear(t *testing.T) {
	ac, s, who := newAssistantFixture(&fakeGateway{})
	s.AddChatMessage(models.ChatMessage{ID: "1", Role: models.ChatRoleUser, Content: "Hola"})

	code, body := call(t, ac.Toggle, newRequest(http.MethodPost, "/api/assistant/toggle", nil), who)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["assistant"].(map[string]any)["isOpen"])

	code, body = call(t, ac.Clear, newRequest(http.MethodDelete, "/api/assistant/messages", nil), who)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["assistant"].(map[string]any)["messages"])
	assert.True(t, s.Snapshot().IsChatOpen)

	code, body = call(t, ac.Get, newRequest(http.MethodGet, "/api/assistant", nil), who)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["assistant"].(map[string]any)["isOpen"])
}
