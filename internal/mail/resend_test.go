package mail

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/resend/resend-go/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResendSender(t *testing.T, handler http.HandlerFunc) *ResendSender {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := resend.NewCustomClient(srv.Client(), "re_test")
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return &ResendSender{client: client}
}

func TestResendSenderSend(t *testing.T) {
	t.Parallel()

	var seen resend.SendEmailRequest
	s := newTestResendSender(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))

		_ = json.NewDecoder(r.Body).Decode(&seen)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"49a3999c-0ce1-4ea6-ab68-afcd6dc2e794"}`))
	})

	require.NoError(t, s.Send(context.Background(), testMessage()))

	assert.Equal(t, "me@example.com", seen.From)
	assert.Equal(t, []string{"me@example.com"}, seen.To)
	assert.Equal(t, `"Ada" <ada@example.com>`, seen.ReplyTo)
	assert.Equal(t, "Portfolio Contact: Message from Ada", seen.Subject)
	assert.Equal(t, "<p>Hello</p>", seen.Html)
	assert.Contains(t, seen.Text, "Hello")
}

func TestResendSenderError(t *testing.T) {
	t.Parallel()

	s := newTestResendSender(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"statusCode":422,"name":"validation_error","message":"Invalid from field"}`))
	})

	err := s.Send(context.Background(), testMessage())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid from field")
}
