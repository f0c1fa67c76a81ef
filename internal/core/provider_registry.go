package core

import (
	"fmt"

	"github.com/HackingCorp/ltcgroup-sub001/internal/model"
	"github.com/HackingCorp/ltcgroup-sub001/internal/ports"
)

// ProviderRegistry maps the client-facing payment method onto the adapter
// that serves it.
type ProviderRegistry struct {
	processors map[model.PaymentMethod]ports.IPaymentProcessor
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		processors: make(map[model.PaymentMethod]ports.IPaymentProcessor),
	}
}

func (r *ProviderRegistry) Register(method model.PaymentMethod, processor ports.IPaymentProcessor) {
	r.processors[method] = processor
}

func (r *ProviderRegistry) Get(method model.PaymentMethod) (ports.IPaymentProcessor, error) {
	if p, exists := r.processors[method]; exists {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnsupportedMethod, method)
}

// Verifier returns the processor registered for method when it supports
// status polling.
func (r *ProviderRegistry) Verifier(method model.PaymentMethod) (ports.ITransactionVerifier, error) {
	p, err := r.Get(method)
	if err != nil {
		return nil, err
	}
	v, ok := p.(ports.ITransactionVerifier)
	if !ok {
		return nil, fmt.Errorf("provider %s does not support status checks", p.Name())
	}
	return v, nil
}
