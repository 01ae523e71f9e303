package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/shopify"
)

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestReconcileVariants(t *testing.T) {
	optionIDs := map[string]string{
		"Color": "gid://shopify/ProductOption/1",
		"Size":  "gid://shopify/ProductOption/2",
	}

	t.Run("empty existing set puts every variant in create list", func(t *testing.T) {
		variants := []domain.VariantSpec{
			{Options: map[string]string{"Color": "Red"}, Price: price(10)},
			{Options: map[string]string{"Color": "Blue"}, Price: price(12)},
			{Options: map[string]string{"Color": "Green"}, Price: price(14)},
		}

		toCreate, toUpdate := reconcileVariants(variants, map[string]existingVariant{}, optionIDs)

		assert.Len(t, toCreate, 3)
		assert.Empty(t, toUpdate)
	})

	t.Run("matching key goes to update list with remote id", func(t *testing.T) {
		variants := []domain.VariantSpec{
			{Options: map[string]string{"Color": "Red"}, Price: price(10)},
			{Options: map[string]string{"Color": "Blue"}, Price: price(12)},
		}
		existing := map[string]existingVariant{
			domain.OptionKey(map[string]string{"Color": "Red"}): {
				ID:      "gid://shopify/ProductVariant/42",
				Options: map[string]string{"Color": "Red"},
				Price:   "0.00",
			},
		}

		toCreate, toUpdate := reconcileVariants(variants, existing, optionIDs)

		require.Len(t, toUpdate, 1)
		assert.Equal(t, "gid://shopify/ProductVariant/42", toUpdate[0].ID)
		assert.Equal(t, "10", toUpdate[0].Price)

		require.Len(t, toCreate, 1)
		assert.Equal(t, "12", toCreate[0].Price)
	})

	t.Run("create entries resolve option value references by option id", func(t *testing.T) {
		variants := []domain.VariantSpec{
			{Options: map[string]string{"Size": "M", "Color": "Red"}, Price: price(10)},
		}

		toCreate, _ := reconcileVariants(variants, map[string]existingVariant{}, optionIDs)

		require.Len(t, toCreate, 1)
		// sorted by option name: Color before Size
		assert.Equal(t, []shopify.VariantOptionValueInput{
			{OptionID: "gid://shopify/ProductOption/1", Name: "Red"},
			{OptionID: "gid://shopify/ProductOption/2", Name: "M"},
		}, toCreate[0].OptionValues)
	})

	t.Run("match is insensitive to option map population order", func(t *testing.T) {
		remoteOpts := map[string]string{}
		remoteOpts["Size"] = "M"
		remoteOpts["Color"] = "Red"

		desiredOpts := map[string]string{}
		desiredOpts["Color"] = "Red"
		desiredOpts["Size"] = "M"

		existing := map[string]existingVariant{
			domain.OptionKey(remoteOpts): {ID: "gid://shopify/ProductVariant/7", Options: remoteOpts},
		}
		variants := []domain.VariantSpec{
			{Options: desiredOpts, Price: price(10)},
		}

		toCreate, toUpdate := reconcileVariants(variants, existing, optionIDs)

		assert.Empty(t, toCreate)
		require.Len(t, toUpdate, 1)
		assert.Equal(t, "gid://shopify/ProductVariant/7", toUpdate[0].ID)
	})
}
