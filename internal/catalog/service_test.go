package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ridloal/lux-storefront/internal/product/service/mocks"
	"github.com/stretchr/testify/assert"
)

func TestCatalogService_Browse(t *testing.T) {
	ctx := context.TODO()

	t.Run("Groups then filters", func(t *testing.T) {
		ps := new(mocks.MockProductService)
		ps.On("ListProducts", ctx).Return(sampleProducts(), nil).Once()

		page := NewCatalogService(ps).Browse(ctx, Query{Search: "linen", Color: "White"})
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, 7, page.Products[0].Quantity)
		assert.Equal(t, []string{"Shirts", "Jackets"}, page.Options.Categories, "options come from the unfiltered catalog")
		ps.AssertExpectations(t)
	})

	t.Run("Store failure degrades to empty page", func(t *testing.T) {
		ps := new(mocks.MockProductService)
		ps.On("ListProducts", ctx).Return(nil, errors.New("connection refused")).Once()

		page := NewCatalogService(ps).Browse(ctx, Query{})
		assert.Empty(t, page.Products)
		assert.NotNil(t, page.Products)
		assert.Zero(t, page.Total)
		assert.Empty(t, page.Options.Sizes)
	})
}
