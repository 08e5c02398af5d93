package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCartLine_LineTotal(t *testing.T) {
	line := CartLine{Price: 48.0, Quantity: 3}
	assert.Equal(t, 144.0, line.LineTotal())
}

func TestProduct_OnSale(t *testing.T) {
	higher := 60.0
	equal := 48.0

	tests := []struct {
		name    string
		product Product
		want    bool
	}{
		{"no compare-at", Product{Price: 48.0}, false},
		{"compare-at above price", Product{Price: 48.0, CompareAtPrice: &higher}, true},
		{"compare-at equal to price", Product{Price: 48.0, CompareAtPrice: &equal}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.OnSale())
		})
	}
}

func TestCustomer_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		want     string
	}{
		{"full name", Customer{Email: "a@b.com", FirstName: strPtr("Ada"), LastName: strPtr("Lovelace")}, "Ada Lovelace"},
		{"first only", Customer{Email: "a@b.com", FirstName: strPtr("Ada")}, "Ada"},
		{"last only", Customer{Email: "a@b.com", LastName: strPtr("Lovelace")}, "Lovelace"},
		{"no name falls back to email", Customer{Email: "a@b.com"}, "a@b.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.customer.DisplayName())
		})
	}
}

func TestSession_Valid(t *testing.T) {
	now := time.Now()

	assert.True(t, (&Session{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)}).Valid(now))
	assert.False(t, (&Session{AccessToken: "tok", ExpiresAt: now.Add(-time.Hour)}).Valid(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Hour)}).Valid(now))
}
