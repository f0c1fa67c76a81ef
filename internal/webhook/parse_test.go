package webhook

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

const enkapCompleted = `{
  "order_id": "ord_123",
  "order_transaction_id": "otx_456",
  "merchant_reference": "LTC-8F2A1C3D",
  "status": "COMPLETED",
  "amount": 27000,
  "currency": "XAF",
  "payment_method": "VISA",
  "customer": {"name": "Awa Ndiaye", "email": "awa@example.cm", "phone": "677123456"},
  "completed_at": "2026-10-01T10:00:00Z"
}`

const s3pSuccess = `{
  "ptn": "99999166542651400095315364801168",
  "trid": "LTC-8F2A1C3D",
  "status": "SUCCESS",
  "amount": "27000.00",
  "serviceNumber": "677123456"
}`

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Kind
	}{
		{"enkap shape", enkapCompleted, KindEnkap},
		{"s3p shape", s3pSuccess, KindS3P},
		{"only order_id", `{"order_id":"x"}`, KindUnknown},
		{"null merchant_reference", `{"order_id":"x","merchant_reference":null}`, KindUnknown},
		{"only ptn", `{"ptn":"x","status":"SUCCESS"}`, KindUnknown},
		{"empty object", `{}`, KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectNonObjectIsUnknown(t *testing.T) {
	for _, body := range []string{`[1,2,3]`, `[]`, `""`, `42`, ``, `   `} {
		kind, err := Detect([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, KindUnknown, kind, body)

		evt, err := Parse([]byte(body))
		require.NoError(t, err, body)
		assert.Equal(t, KindUnknown, evt.Kind, body)
	}
}

func TestDetectRejectsMalformedJSON(t *testing.T) {
	_, err := Detect([]byte(`{"order_id":`))
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = Parse([]byte(`not json`))
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestParseNormalizesStatusCase(t *testing.T) {
	evt, err := Parse([]byte(`{"order_id":"o1","merchant_reference":"LTC-1","status":"completed","amount":15000}`))
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", evt.Enkap.Status)
	assert.Equal(t, model.StatusSuccess, MapEnkapStatus(evt.Enkap.Status))

	evt, err = Parse([]byte(`{"ptn":"PTN-1","trid":"LTC-1","status":" Errored "}`))
	require.NoError(t, err)
	assert.Equal(t, "ERRORED", evt.S3P.Status)
	assert.Equal(t, model.StatusFailed, MapS3PStatus(evt.S3P.Status))

	_, err = Parse([]byte(`{"ptn":"PTN-1","trid":"LTC-1","status":"refunded"}`))
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestParseEnkap(t *testing.T) {
	evt, err := Parse([]byte(enkapCompleted))
	require.NoError(t, err)
	require.Equal(t, KindEnkap, evt.Kind)
	require.NotNil(t, evt.Enkap)
	assert.Nil(t, evt.S3P)

	assert.Equal(t, "LTC-8F2A1C3D", evt.Enkap.MerchantReference)
	assert.Equal(t, "otx_456", evt.Enkap.OrderTransactionID)
	assert.Equal(t, int64(27000), AmountInt64(evt.Enkap.Amount))
	require.NotNil(t, evt.Enkap.Customer)
	assert.Equal(t, "677123456", evt.Enkap.Customer.Phone)
}

func TestParseS3P(t *testing.T) {
	evt, err := Parse([]byte(s3pSuccess))
	require.NoError(t, err)
	require.Equal(t, KindS3P, evt.Kind)
	require.NotNil(t, evt.S3P)

	assert.Equal(t, "LTC-8F2A1C3D", evt.S3P.TRID)
	assert.Equal(t, int64(27000), AmountInt64(evt.S3P.Amount))
}

func TestParseRejectsUnknownStatus(t *testing.T) {
	_, err := Parse([]byte(`{"order_id":"o","merchant_reference":"r","status":"DONE"}`))
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = Parse([]byte(`{"ptn":"p","trid":"t","status":"OK"}`))
	assert.True(t, errors.Is(err, model.ErrValidation))
}

func TestParseUnknownShape(t *testing.T) {
	evt, err := Parse([]byte(`{"event":"ping"}`))
	require.NoError(t, err)
	assert.Equal(t, KindUnknown, evt.Kind)
	assert.Nil(t, evt.Enkap)
	assert.Nil(t, evt.S3P)
}

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, model.StatusSuccess, MapEnkapStatus("COMPLETED"))
	assert.Equal(t, model.StatusFailed, MapEnkapStatus("FAILED"))
	assert.Equal(t, model.StatusFailed, MapEnkapStatus("CANCELLED"))
	assert.Equal(t, model.StatusPending, MapEnkapStatus("PENDING"))

	assert.Equal(t, model.StatusSuccess, MapS3PStatus("SUCCESS"))
	assert.Equal(t, model.StatusFailed, MapS3PStatus("FAILED"))
	assert.Equal(t, model.StatusFailed, MapS3PStatus("ERRORED"))
	assert.Equal(t, model.StatusPending, MapS3PStatus("PENDING"))
}

func TestAmountInt64(t *testing.T) {
	assert.Equal(t, int64(0), AmountInt64(""))
	assert.Equal(t, int64(1500), AmountInt64(json.Number("1500")))
	assert.Equal(t, int64(1500), AmountInt64(json.Number("1500.75")))
	assert.Equal(t, int64(0), AmountInt64(json.Number("abc")))
}
