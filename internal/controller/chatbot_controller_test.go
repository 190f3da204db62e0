package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"product-chatbot-be/internal/constant"
	"product-chatbot-be/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatbot struct {
	questions []string
	reply     dto.ChatReply
}

func (s *stubChatbot) Ask(_ context.Context, q string) (string, error) {
	s.questions = append(s.questions, q)
	return s.reply.Response, nil
}

func (s *stubChatbot) Answer(_ context.Context, q string) dto.ChatReply {
	s.questions = append(s.questions, q)
	return s.reply
}

func newApp(t *testing.T, svc *stubChatbot) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>chat</html>"), 0o644))

	app := fiber.New()
	NewChatbotController(svc, dir).RegisterRoutes(app)
	return app
}

func postForm(t *testing.T, app *fiber.App, form url.Values) (int, string, dto.ChatResponse) {
	t.Helper()
	req := httptest.NewRequest("POST", "/get", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req)
	require.NoError(t, err)

	var body dto.ChatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, resp.Header.Get(constant.ChatOutcomeHeader), body
}

func TestWelcome(t *testing.T) {
	resp, err := newApp(t, &stubChatbot{}).Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"message":"Welcome to the Product Information Bot API. Use the /get endpoint to chat with the bot."}`, string(raw))
}

func TestChat(t *testing.T) {
	svc := &stubChatbot{reply: dto.ChatReply{Response: "Try the Budget Laptop.", Outcome: constant.OutcomeAnswered}}
	app := newApp(t, svc)

	status, outcome, body := postForm(t, app, url.Values{"msg": {"budget laptops?"}})

	assert.Equal(t, 200, status)
	assert.Equal(t, "answered", outcome)
	assert.Equal(t, "Try the Budget Laptop.", body.Response)
	assert.Equal(t, []string{"budget laptops?"}, svc.questions)
}

func TestChat_EmptyMessageAccepted(t *testing.T) {
	svc := &stubChatbot{reply: dto.ChatReply{Response: constant.NoResultsMessage, Outcome: constant.OutcomeNoResults}}
	app := newApp(t, svc)

	status, outcome, body := postForm(t, app, url.Values{"msg": {""}})
	assert.Equal(t, 200, status)
	assert.Equal(t, "no_results", outcome)
	assert.Equal(t, constant.NoResultsMessage, body.Response)

	status, _, _ = postForm(t, app, url.Values{})
	assert.Equal(t, 200, status)
	assert.Equal(t, []string{"", ""}, svc.questions)
}

func TestChat_JSONBody(t *testing.T) {
	svc := &stubChatbot{reply: dto.ChatReply{Response: "Yes.", Outcome: constant.OutcomeAnswered}}

	req := httptest.NewRequest("POST", "/get", strings.NewReader(`{"msg":"gaming laptops?"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := newApp(t, svc).Test(req)
	require.NoError(t, err)

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, []string{"gaming laptops?"}, svc.questions)
}

func TestChat_UnreadableBodyTreatedAsEmpty(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"no content type", "", "msg=hi"},
		{"malformed json", "application/json", `{"msg":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubChatbot{reply: dto.ChatReply{Response: constant.NoResultsMessage, Outcome: constant.OutcomeNoResults}}

			req := httptest.NewRequest("POST", "/get", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			resp, err := newApp(t, svc).Test(req)
			require.NoError(t, err)

			assert.Equal(t, 200, resp.StatusCode)
			assert.Equal(t, []string{""}, svc.questions)
		})
	}
}

func TestChat_ProviderErrorStillOK(t *testing.T) {
	svc := &stubChatbot{reply: dto.ChatReply{
		Response: constant.TechnicalDifficultiesPrefix + "quota exceeded",
		Outcome:  constant.OutcomeProviderError,
	}}

	status, outcome, body := postForm(t, newApp(t, svc), url.Values{"msg": {"hi"}})
	assert.Equal(t, 200, status)
	assert.Equal(t, "provider_error", outcome)
	assert.Contains(t, body.Response, "technical difficulties")
}

func TestChatPage(t *testing.T) {
	resp, err := newApp(t, &stubChatbot{}).Test(httptest.NewRequest("GET", "/chat", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "<html>chat</html>", string(raw))
}
