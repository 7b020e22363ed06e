package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/srgjo27/gercamp/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Limit(t *testing.T) {
	assert.Equal(t, 20, domain.PageRequest{}.Limit(20, 100))
	assert.Equal(t, 5, domain.PageRequest{First: 5}.Limit(20, 100))
	assert.Equal(t, 100, domain.PageRequest{First: 500}.Limit(20, 100))
	assert.Equal(t, 20, domain.PageRequest{First: -3}.Limit(20, 100))
}

func TestCursor_RoundTrip(t *testing.T) {
	id := uuid.New()
	got, err := domain.DecodeCursor(domain.EncodeCursor(id))
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = domain.DecodeCursor("not a cursor!")
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	after, err := domain.PageRequest{}.AfterID()
	assert.NoError(t, err)
	assert.Nil(t, after)
}

func TestNewPage_LookaheadDecidesHasNextPage(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	idOf := func(id uuid.UUID) uuid.UUID { return id }

	// Exactly pageSize rows left: no next page, even though the page is full.
	exact := domain.NewPage(ids[:2], 2, 2, idOf)
	assert.False(t, exact.PageInfo.HasNextPage)
	assert.Len(t, exact.Items, 2)
	assert.Equal(t, domain.EncodeCursor(ids[1]), exact.PageInfo.EndCursor)

	more := domain.NewPage(ids, 2, 3, idOf)
	assert.True(t, more.PageInfo.HasNextPage)
	assert.Len(t, more.Items, 2)
	assert.Equal(t, domain.EncodeCursor(ids[1]), more.PageInfo.EndCursor)

	empty := domain.NewPage[uuid.UUID](nil, 2, 0, idOf)
	assert.NotNil(t, empty.Items)
	assert.Empty(t, empty.PageInfo.EndCursor)
}

func TestPrincipal_ScopeUser(t *testing.T) {
	self := uuid.New()
	other := uuid.New()

	customer := domain.Principal{AccountID: self, Role: domain.RoleCustomer}
	assert.Equal(t, self, customer.ScopeUser(other))
	assert.Equal(t, self, customer.ScopeUser(uuid.Nil))

	admin := domain.Principal{AccountID: self, Role: domain.RoleAdmin}
	assert.Equal(t, other, admin.ScopeUser(other))
	assert.Equal(t, uuid.Nil, admin.ScopeUser(uuid.Nil))
}
