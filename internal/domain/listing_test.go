// internal/domain/listing_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestListing(t *testing.T, id string, variantID string, status ListingStatus, price string) *Listing {
	t.Helper()
	vid, err := NewVariantID(variantID)
	require.NoError(t, err)
	listing, err := NewListing(id, vid, nil, mustMoney(t, price, "USD"),
		status, InventoryTypeStandard, 1, "", nil, time.Time{}, time.Time{})
	require.NoError(t, err)
	return listing
}

func TestNewListingValidation(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)
	price := mustMoney(t, "100.00", "USD")

	_, err = NewListing("", vid, nil, price, ListingStatusActive, InventoryTypeStandard, 1, "", nil, time.Time{}, time.Time{})
	assert.Error(t, err, "empty listing ID rejected")

	_, err = NewListing("l1", vid, nil, price, "SHIPPED", InventoryTypeStandard, 1, "", nil, time.Time{}, time.Time{})
	assert.Error(t, err, "open-ended status rejected")

	_, err = NewListing("l1", vid, nil, price, ListingStatusActive, InventoryTypeStandard, -1, "", nil, time.Time{}, time.Time{})
	assert.Error(t, err, "negative quantity rejected")

	_, err = NewListing("l1", vid, nil, price, ListingStatusActive, InventoryTypeStandard, 101, "", nil, time.Time{}, time.Time{})
	assert.Error(t, err, "quantity above marketplace cap rejected")
}

// Every legal transition must succeed from its listed source state and fail,
// with state unchanged, from every other state.
func TestListingStateMachine(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []ListingStatus{ListingStatusPending, ListingStatusActive,
		ListingStatusSold, ListingStatusCancelled, ListingStatusExpired}

	transitions := []struct {
		name  string
		apply func(*Listing) error
		from  map[ListingStatus]bool
		to    ListingStatus
	}{
		{
			name:  "activate",
			apply: func(l *Listing) error { return l.Activate() },
			from:  map[ListingStatus]bool{ListingStatusPending: true},
			to:    ListingStatusActive,
		},
		{
			name:  "mark as sold",
			apply: func(l *Listing) error { return l.MarkAsSold() },
			from:  map[ListingStatus]bool{ListingStatusActive: true},
			to:    ListingStatusSold,
		},
		{
			name:  "cancel",
			apply: func(l *Listing) error { return l.Cancel() },
			from:  map[ListingStatus]bool{ListingStatusPending: true, ListingStatusActive: true},
			to:    ListingStatusCancelled,
		},
		{
			name:  "expire",
			apply: func(l *Listing) error { return l.Expire(now) },
			from:  map[ListingStatus]bool{ListingStatusPending: true, ListingStatusActive: true},
			to:    ListingStatusExpired,
		},
	}

	for _, tr := range transitions {
		for _, from := range all {
			l := newTestListing(t, "l1", "var-1", from, "100.00")
			err := tr.apply(l)
			if tr.from[from] {
				require.NoError(t, err, "%s from %s", tr.name, from)
				assert.Equal(t, tr.to, l.Status())
			} else {
				require.Error(t, err, "%s from %s", tr.name, from)
				assert.Equal(t, from, l.Status(), "state must be unchanged after a rejected %s", tr.name)
				var de *DomainError
				assert.ErrorAs(t, err, &de)
				assert.Equal(t, KindInvalidStateTransition, de.Kind)
			}
		}
	}
}

func TestListingExpirePrecondition(t *testing.T) {
	vid, err := NewVariantID("var-1")
	require.NoError(t, err)
	expires := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	listing, err := NewListing("l1", vid, nil, mustMoney(t, "100.00", "USD"),
		ListingStatusActive, InventoryTypeStandard, 1, "", &expires, time.Time{}, time.Time{})
	require.NoError(t, err)

	err = listing.Expire(expires.Add(-time.Hour))
	require.Error(t, err, "cannot expire before the expiration time")
	assert.Equal(t, ListingStatusActive, listing.Status())

	require.NoError(t, listing.Expire(expires.Add(time.Hour)))
	assert.Equal(t, ListingStatusExpired, listing.Status())
}

func TestSoldListingIsFrozen(t *testing.T) {
	l := newTestListing(t, "l1", "var-1", ListingStatusActive, "150.00")
	require.NoError(t, l.MarkAsSold())

	original := l.Price()

	err := l.UpdatePrice(mustMoney(t, "99.00", "USD"))
	require.Error(t, err)
	var de *DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindListingNotModifiable, de.Kind)
	assert.True(t, original.Equals(l.Price()), "sold listing price must never change")

	assert.Error(t, l.UpdateQuantity(5))
	assert.Error(t, l.Activate())
	assert.Error(t, l.Cancel())
	assert.Error(t, l.Expire(time.Now()))
	assert.Equal(t, ListingStatusSold, l.Status(), "nothing transitions out of SOLD")
}

func TestListingIsModifiable(t *testing.T) {
	modifiable := map[ListingStatus]bool{
		ListingStatusPending: true,
		ListingStatusActive:  true,
	}
	for _, status := range []ListingStatus{ListingStatusPending, ListingStatusActive,
		ListingStatusSold, ListingStatusCancelled, ListingStatusExpired} {
		l := newTestListing(t, "l1", "var-1", status, "100.00")
		assert.Equal(t, modifiable[status], l.IsModifiable(), "status %s", status)
	}
}

func TestListingUpdatePrice(t *testing.T) {
	l := newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00")

	require.NoError(t, l.UpdatePrice(mustMoney(t, "120.00", "USD")))
	assert.Equal(t, "120", l.Price().Amount().String())

	err := l.UpdatePrice(mustMoney(t, "120.00", "EUR"))
	require.Error(t, err, "currency mismatch rejected")
	var de *DomainError
	assert.ErrorAs(t, err, &de)
	assert.Equal(t, KindCurrencyMismatch, de.Kind)
}

func TestListingQuantity(t *testing.T) {
	l := newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00")

	require.NoError(t, l.UpdateQuantity(3))
	assert.Equal(t, 3, l.Quantity())

	require.NoError(t, l.DecrementQuantity(3))
	assert.Equal(t, 0, l.Quantity(), "decrement to exactly zero is allowed")

	err := l.DecrementQuantity(1)
	require.Error(t, err, "decrement below zero fails rather than clamping")
	assert.Equal(t, 0, l.Quantity())
}

func TestListingIdentityEquality(t *testing.T) {
	a := newTestListing(t, "l1", "var-1", ListingStatusActive, "100.00")
	b := newTestListing(t, "l1", "var-1", ListingStatusPending, "999.00")
	c := newTestListing(t, "l2", "var-1", ListingStatusActive, "100.00")

	assert.True(t, a.Equals(b), "entities compare by identity, not field values")
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestNewListingID(t *testing.T) {
	assert.NotEmpty(t, NewListingID())
	assert.NotEqual(t, NewListingID(), NewListingID())
}
