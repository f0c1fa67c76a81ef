package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/pkg/httpclient"
)

func newTestS3P(t *testing.T, handler http.HandlerFunc) *S3PAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter := NewS3PAdapter(S3PConfig{
		BaseURL:         srv.URL,
		APIKey:          "key-123",
		APISecret:       "secret-xyz",
		MTNPayItemID:    "S-112-951-CMMTNMOMO-20052-200040001-1",
		OrangePayItemID: "S-112-951-CMORANGEOM-30052-2006125105-1",
	}, httpclient.NewClientWith(srv.Client()))
	adapter.now = func() time.Time { return time.UnixMilli(1714550400000) }
	return adapter
}

func TestS3PSignsRequests(t *testing.T) {
	var adapter *S3PAdapter
	adapter = newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "key-123", r.Header.Get(s3pHeaderKey))
		assert.Equal(t, "1714550400000", r.Header.Get(s3pHeaderNonce))
		assert.Equal(t, adapter.sign(r.Method, r.URL.Path, "1714550400000", body), r.Header.Get(s3pHeaderSignature))
		_, _ = w.Write([]byte(`{"quoteId":"q-1","payItemId":"p"}`))
	})

	quote, err := adapter.Quote(context.Background(), "p", 15000)
	require.NoError(t, err)
	assert.Equal(t, "q-1", quote.QuoteID)
}

func TestS3PSignatureDependsOnAllParts(t *testing.T) {
	a := &S3PAdapter{cfg: S3PConfig{APISecret: "secret"}}
	base := a.sign("POST", "/quotestd", "1", []byte(`{}`))

	assert.NotEqual(t, base, a.sign("GET", "/quotestd", "1", []byte(`{}`)))
	assert.NotEqual(t, base, a.sign("POST", "/collectstd", "1", []byte(`{}`)))
	assert.NotEqual(t, base, a.sign("POST", "/quotestd", "2", []byte(`{}`)))
	assert.NotEqual(t, base, a.sign("POST", "/quotestd", "1", []byte(`{"a":1}`)))
	assert.Equal(t, base, a.sign("POST", "/quotestd", "1", []byte(`{}`)))
}

func TestS3PQuoteWithoutID(t *testing.T) {
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"payItemId":"p"}`))
	})

	_, err := adapter.Quote(context.Background(), "p", 100)
	var perr *model.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Contains(t, perr.Body, "missing quoteId")
}

func TestS3PInitiateMTN(t *testing.T) {
	var collected S3PCollectRequest
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case s3pQuoteEndpoint:
			var q s3pQuoteRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&q))
			assert.Equal(t, "S-112-951-CMMTNMOMO-20052-200040001-1", q.PayItemID)
			assert.Equal(t, int64(27000), q.Amount)
			_, _ = w.Write([]byte(`{"quoteId":"q-77"}`))
		case s3pCollectEndpoint:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&collected))
			_, _ = w.Write([]byte(`{"ptn":"99999171455040000000001","trid":"LTC-8F2A1C3D","status":"PENDING"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	res, err := adapter.Initiate(context.Background(), model.PaymentRequest{
		Method:   model.MethodMobileMoney,
		Amount:   27000,
		OrderRef: "LTC-8F2A1C3D",
		Phone:    "+237 677 12 34 56",
		Email:    "awa@example.cm",
		Name:     "Awa",
	})
	require.NoError(t, err)

	assert.Equal(t, "q-77", collected.QuoteID)
	assert.Equal(t, "677123456", collected.CustomerPhone)
	assert.Equal(t, "677123456", collected.ServiceNumber)
	assert.Equal(t, "LTC-8F2A1C3D", collected.TRID)

	assert.Equal(t, model.OperatorMTN, res.Operator)
	assert.Equal(t, "99999171455040000000001", res.PTN)
	assert.Equal(t, "PENDING", res.Status)
	assert.Contains(t, res.Message, "MTN")
}

func TestS3PInitiateOrangeUsesOrangePayItem(t *testing.T) {
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == s3pQuoteEndpoint {
			var q s3pQuoteRequest
			_ = json.NewDecoder(r.Body).Decode(&q)
			assert.Equal(t, "S-112-951-CMORANGEOM-30052-2006125105-1", q.PayItemID)
			_, _ = w.Write([]byte(`{"quoteId":"q-1"}`))
			return
		}
		_, _ = w.Write([]byte(`{"ptn":"PTN-O"}`))
	})

	res, err := adapter.Initiate(context.Background(), model.PaymentRequest{Amount: 100, OrderRef: "LTC-1", Phone: "699123456"})
	require.NoError(t, err)
	assert.Equal(t, model.OperatorOrange, res.Operator)
	assert.Equal(t, "PENDING", res.Status)
	assert.Equal(t, "LTC-1", res.TRID)
}

func TestS3PInitiateRejectsBadPhone(t *testing.T) {
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := adapter.Initiate(context.Background(), model.PaymentRequest{Amount: 100, OrderRef: "LTC-1", Phone: "12"})
	assert.ErrorIs(t, err, model.ErrInvalidPhone)
}

func TestS3PProviderErrorKeepsBody(t *testing.T) {
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"respCode":4000,"errorCode":40602,"message":"Insufficient balance"}`))
	})

	_, err := adapter.Initiate(context.Background(), model.PaymentRequest{Amount: 100, OrderRef: "LTC-1", Phone: "677123456"})
	var perr *model.ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.Contains(t, perr.Body, "Insufficient balance")
}

func TestS3PVerifyTransaction(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"array", `[{"ptn":"PTN-1","trid":"LTC-1","status":"success","priceLocalCur":15000}]`},
		{"object", `{"ptn":"PTN-1","trid":"LTC-1","status":"SUCCESS","priceLocalCur":15000}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, s3pVerifyEndpoint, r.URL.Path)
				assert.Equal(t, "PTN-1", r.URL.Query().Get("ptn"))
				assert.Empty(t, r.URL.Query().Get("trid"))
				_, _ = w.Write([]byte(tt.body))
			})

			st, err := adapter.VerifyTransaction(context.Background(), "PTN-1", "LTC-1")
			require.NoError(t, err)
			assert.Equal(t, "SUCCESS", st.Status)
			assert.Equal(t, "LTC-1", st.TRID)
			assert.Equal(t, int64(15000), st.Amount)
		})
	}
}

func TestS3PVerifyByTRID(t *testing.T) {
	adapter := newTestS3P(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "LTC-1", r.URL.Query().Get("trid"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := adapter.VerifyTransaction(context.Background(), "", "LTC-1")
	var perr *model.ProviderError
	require.True(t, errors.As(err, &perr))

	_, err = adapter.VerifyTransaction(context.Background(), "", "")
	assert.ErrorIs(t, err, model.ErrValidation)
}
