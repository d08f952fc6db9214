// internal/domain/identifiers_test.go
package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedIdentifiers(t *testing.T) {
	pid, err := NewProductID("prod-123")
	require.NoError(t, err)
	assert.Equal(t, "prod-123", pid.Value())

	vid, err := NewVariantID("  var-456  ")
	require.NoError(t, err)
	assert.Equal(t, "var-456", vid.Value(), "identifiers are trimmed")

	sid, err := NewStyleID("dd1391-100")
	require.NoError(t, err)
	assert.Equal(t, "DD1391-100", sid.Value(), "style IDs are upper-cased")

	for _, empty := range []string{"", "   "} {
		_, err := NewProductID(empty)
		assert.Error(t, err)
		_, err = NewVariantID(empty)
		assert.Error(t, err)
		_, err = NewStyleID(empty)
		assert.Error(t, err)
	}

	assert.True(t, pid.Equals(ProductID{value: "prod-123"}))
	assert.False(t, pid.Equals(ProductID{value: "prod-999"}))
}

func TestNewUPC(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid 12 digit UPC-A", "036000291452", false},
		{"valid 13 digit EAN", "4006381333931", false},
		{"bad check digit", "036000291453", true},
		{"too short", "03600029145", true},
		{"too long", "036000291452999", true},
		{"non-numeric", "03600029145X", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upc, err := NewUPC(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				assert.ErrorAs(t, err, &ve)
				assert.Equal(t, KindInvalidUPC, ve.Kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.value, upc.Value())
		})
	}
}
