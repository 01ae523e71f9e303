package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

func TestOptionKey(t *testing.T) {
	t.Run("canonical regardless of construction order", func(t *testing.T) {
		a := map[string]string{}
		a["Color"] = "Red"
		a["Size"] = "M"

		b := map[string]string{}
		b["Size"] = "M"
		b["Color"] = "Red"

		assert.Equal(t, OptionKey(a), OptionKey(b))
		assert.Equal(t, "Color:Red|Size:M", OptionKey(a))
	})

	t.Run("different values produce different keys", func(t *testing.T) {
		red := OptionKey(map[string]string{"Color": "Red"})
		blue := OptionKey(map[string]string{"Color": "Blue"})
		assert.NotEqual(t, red, blue)
	})

	t.Run("empty mapping", func(t *testing.T) {
		assert.Equal(t, "", OptionKey(nil))
	})
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func validSpec() *ProductSpec {
	sku := "SKU-RED"
	return &ProductSpec{
		Title:       "Shirt",
		Description: "A shirt",
		Vendor:      "Jafar",
		ProductType: "Apparel",
		Options: []OptionSpec{
			{Name: "Color", Values: []string{"Red", "Blue"}},
		},
		Variants: []VariantSpec{
			{Options: map[string]string{"Color": "Red"}, Price: price(10), SKU: &sku},
			{Options: map[string]string{"Color": "Blue"}, Price: price(12)},
		},
	}
}

func TestProductSpecValidate(t *testing.T) {
	t.Run("valid spec passes", func(t *testing.T) {
		require.NoError(t, validSpec().Validate())
	})

	t.Run("negative price rejected", func(t *testing.T) {
		spec := validSpec()
		spec.Variants[0].Price = price(-1)

		err := spec.Validate()
		var vErr *apperrors.ErrValidation
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "variants.0.price")
	})

	t.Run("missing price rejected", func(t *testing.T) {
		spec := validSpec()
		spec.Variants[0].Price = nil

		err := spec.Validate()
		var vErr *apperrors.ErrValidation
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "price is required", vErr.Fields["variants.0.price"])
	})

	t.Run("explicit zero price allowed", func(t *testing.T) {
		spec := validSpec()
		spec.Variants[0].Price = price(0)

		require.NoError(t, spec.Validate())
	})

	t.Run("undeclared option rejected", func(t *testing.T) {
		spec := validSpec()
		spec.Variants[0].Options["Material"] = "Cotton"

		err := spec.Validate()
		var vErr *apperrors.ErrValidation
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "variants.0.options.Material")
	})

	t.Run("missing option coverage rejected", func(t *testing.T) {
		spec := validSpec()
		spec.Options = append(spec.Options, OptionSpec{Name: "Size", Values: []string{"M"}})

		err := spec.Validate()
		var vErr *apperrors.ErrValidation
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "variants.0.options")
	})

	t.Run("duplicate option combination rejected", func(t *testing.T) {
		spec := validSpec()
		spec.Variants[1].Options = map[string]string{"Color": "Red"}

		err := spec.Validate()
		var vErr *apperrors.ErrValidation
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "variants.1.options")
	})
}

func TestVariantSpecQuantity(t *testing.T) {
	v := VariantSpec{}
	assert.Equal(t, 0, v.Quantity())

	qty := 7
	v.InventoryQuantity = &qty
	assert.Equal(t, 7, v.Quantity())
}

func TestProductStatus(t *testing.T) {
	assert.True(t, ProductStatus("").IsValid())
	assert.True(t, StatusDraft.IsValid())
	assert.False(t, ProductStatus("published").IsValid())
	assert.Equal(t, StatusActive, ProductStatus("").OrDefault())
	assert.Equal(t, StatusArchived, StatusArchived.OrDefault())
}
