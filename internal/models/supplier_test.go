package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupplierMerge(t *testing.T) {
	tests := []struct {
		name     string
		first    *Supplier
		second   *Supplier
		expected *Supplier
	}{
		{
			name:     "populated field survives, gap is filled",
			first:    &Supplier{Name: "Acme"},
			second:   &Supplier{Name: "Acme Corp", Country: "CN"},
			expected: &Supplier{Name: "Acme", Country: "CN"},
		},
		{
			name:     "tri-state flips unknown to true",
			first:    &Supplier{Verified: Unknown},
			second:   &Supplier{Verified: True, TradeAssurance: True},
			expected: &Supplier{Verified: True, TradeAssurance: True},
		},
		{
			name:     "tri-state never flips back",
			first:    &Supplier{Verified: True},
			second:   &Supplier{Verified: Unknown},
			expected: &Supplier{Verified: True},
		},
		{
			name:     "services copied only when empty",
			first:    &Supplier{Services: []string{"OEM"}},
			second:   &Supplier{Services: []string{"ODM", "buyer label"}},
			expected: &Supplier{Services: []string{"OEM"}},
		},
		{
			name:     "merge with nil is a no-op",
			first:    &Supplier{Name: "Acme"},
			second:   nil,
			expected: &Supplier{Name: "Acme"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.first.Merge(tt.second)
			assert.Equal(t, tt.expected, tt.first)
		})
	}
}

func TestTriStateJSON(t *testing.T) {
	s := &Supplier{Name: "Acme", Verified: True}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"verified":true`)
	assert.Contains(t, string(data), `"trade_assurance":null`)

	var back Supplier
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, True, back.Verified)
	assert.Equal(t, Unknown, back.TradeAssurance)
}
