package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

func TestWhatsAppSendText(t *testing.T) {
	var got whatsAppMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1029384756/messages", r.URL.Path)
		assert.Equal(t, "Bearer wa-token", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	wa := NewWhatsAppAdapter(WhatsAppConfig{APIURL: srv.URL, PhoneNumberID: "1029384756", AccessToken: "wa-token"}, httpclient.NewClientWith(srv.Client()))
	require.NoError(t, wa.SendText(context.Background(), "677 12 34 56", "Paiement reçu"))

	assert.Equal(t, "whatsapp", got.MessagingProduct)
	assert.Equal(t, "text", got.Type)
	assert.Equal(t, "237677123456", got.To)
	assert.Equal(t, "Paiement reçu", got.Text.Body)
}

func TestWhatsAppSendTextErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"expired token"}}`))
	}))
	defer srv.Close()

	wa := NewWhatsAppAdapter(WhatsAppConfig{APIURL: srv.URL, PhoneNumberID: "1", AccessToken: "t"}, httpclient.NewClientWith(srv.Client()))
	err := wa.SendText(context.Background(), "677123456", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired token")

	unconfigured := NewWhatsAppAdapter(WhatsAppConfig{}, nil)
	assert.ErrorIs(t, unconfigured.SendText(context.Background(), "677123456", "hi"), ErrNotConfigured)
}
