package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		card, delivery string
		niu            bool
		want           Quote
	}{
		{"standard", "pickup", false, Quote{CardPrice: 15000, Total: 15000}},
		{"Premium", "standard", false, Quote{CardPrice: 25000, DeliveryFee: 2000, Total: 27000}},
		{"business", "express", true, Quote{CardPrice: 35000, DeliveryFee: 5000, NIUFee: 5000, Total: 45000}},
	}
	for _, tt := range tests {
		got, err := Price(tt.card, tt.delivery, tt.niu)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPriceRejectsUnknownOptions(t *testing.T) {
	_, err := Price("gold", "pickup", false)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = Price("standard", "drone", false)
	assert.True(t, errors.Is(err, model.ErrValidation))
}
