// Package pricing computes the price components of a card order in XAF.
package pricing

import (
	"strings"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
)

// NIUFee is charged when LTC obtains the taxpayer number for the customer.
const NIUFee int64 = 5000

var cardPrices = map[string]int64{
	"standard": 15000,
	"premium":  25000,
	"business": 35000,
}

var deliveryFees = map[string]int64{
	"pickup":   0,
	"standard": 2000,
	"express":  5000,
}

type Quote struct {
	CardPrice   int64
	DeliveryFee int64
	NIUFee      int64
	Total       int64
}

func Price(cardType, deliveryOption string, requestNIU bool) (Quote, error) {
	card, ok := cardPrices[strings.ToLower(cardType)]
	if !ok {
		return Quote{}, model.NewValidationError("unknown card type %q", cardType)
	}
	delivery, ok := deliveryFees[strings.ToLower(deliveryOption)]
	if !ok {
		return Quote{}, model.NewValidationError("unknown delivery option %q", deliveryOption)
	}

	q := Quote{CardPrice: card, DeliveryFee: delivery}
	if requestNIU {
		q.NIUFee = NIUFee
	}
	q.Total = q.CardPrice + q.DeliveryFee + q.NIUFee
	return q, nil
}
