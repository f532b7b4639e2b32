package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sesma-ti/glpi-dashboard-backend/internal/core/domain"
)

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		name string
		code int
		want string
	}{
		{"new", 1, "Novo"},
		{"assigned", 2, "Em Andamento (Atribuído)"},
		{"pending", 3, "Pendente"},
		{"planned", 4, "Em Andamento (Planejado)"},
		{"solved", 5, "Solucionado"},
		{"closed", 6, "Fechado"},
		{"zero is unknown", 0, "Desconhecido"},
		{"out of range is unknown", 9, "Desconhecido"},
		{"negative is unknown", -1, "Desconhecido"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusLabel(tt.code))
		})
	}
}

func TestStatusBucketFor(t *testing.T) {
	tests := []struct {
		name string
		code int
		want domain.StatusBucket
	}{
		{"1 is new", 1, domain.BucketNew},
		{"2 is in progress", 2, domain.BucketInProgress},
		{"3 is pending", 3, domain.BucketPending},
		{"4 is in progress", 4, domain.BucketInProgress},
		{"5 is resolved", 5, domain.BucketResolved},
		{"6 is resolved", 6, domain.BucketResolved},
		{"unknown code has no bucket", 9, domain.BucketNone},
		{"zero has no bucket", 0, domain.BucketNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.StatusBucketFor(tt.code))
		})
	}
}

func TestStatusCodeForLabel(t *testing.T) {
	code, ok := domain.StatusCodeForLabel("Novo")
	assert.True(t, ok)
	assert.Equal(t, 1, code)

	code, ok = domain.StatusCodeForLabel("Fechado")
	assert.True(t, ok)
	assert.Equal(t, 6, code)

	_, ok = domain.StatusCodeForLabel("Inexistente")
	assert.False(t, ok)

	_, ok = domain.StatusCodeForLabel("")
	assert.False(t, ok)
}

func TestTicketKind_IsValid(t *testing.T) {
	assert.True(t, domain.KindIncident.IsValid())
	assert.True(t, domain.KindRequest.IsValid())
	assert.False(t, domain.TicketKind(0).IsValid())
	assert.False(t, domain.TicketKind(3).IsValid())
}
