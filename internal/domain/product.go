package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

// ProductSpec is the caller-supplied desired state of the product to create.
// It is read-only input: the pipeline never mutates it.
type ProductSpec struct {
	Title       string        `json:"title" binding:"required,max=255"`
	Description string        `json:"description" binding:"required"`
	Vendor      string        `json:"vendor" binding:"required,max=255"`
	ProductType string        `json:"product_type" binding:"required,max=255"`
	Status      ProductStatus `json:"status" binding:"omitempty,oneof=active draft archived"`
	Options     []OptionSpec  `json:"options" binding:"required,min=1,dive"`
	Variants    []VariantSpec `json:"variants" binding:"required,min=1,dive"`
	Images      []ImageSpec   `json:"images" binding:"omitempty,dive"`
}

// OptionSpec declares one product option. Its position is its index in the
// options sequence.
type OptionSpec struct {
	Name   string   `json:"name" binding:"required,max=50"`
	Values []string `json:"values" binding:"required,min=1,dive,required,max=50"`
}

// VariantSpec maps option names to option values and carries the variant's
// price, optional SKU and optional inventory quantity (default 0). Price is a
// pointer so an omitted price is distinguishable from an explicit zero and
// can be rejected instead of silently becoming "0".
type VariantSpec struct {
	Options           map[string]string `json:"options" binding:"required"`
	Price             *decimal.Decimal  `json:"price" binding:"required"`
	SKU               *string           `json:"sku"`
	InventoryQuantity *int              `json:"inventory_quantity" binding:"omitempty,min=0"`
}

// Quantity returns the desired inventory quantity, defaulting to 0
func (v *VariantSpec) Quantity() int {
	if v.InventoryQuantity == nil {
		return 0
	}
	return *v.InventoryQuantity
}

// ImageSpec describes one product image. Alt text, when present, is used as a
// correlation key in the response of this request only.
type ImageSpec struct {
	Src string  `json:"src" binding:"required,url"`
	Alt *string `json:"alt" binding:"omitempty,max=255"`
}

// OptionKey derives the canonical correlation key for a variant's option
// mapping: name:value pairs sorted by option name and joined by "|". Sorting
// guarantees that two mappings with the same pairs produce the same key no
// matter how they were populated.
func OptionKey(options map[string]string) string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + ":" + options[name]
	}
	return strings.Join(pairs, "|")
}

// Validate checks the cross-field rules gin's binding tags cannot express:
// present non-negative prices, every variant covering exactly the declared options,
// and OptionKey uniqueness across the variant set. Duplicate keys would
// silently race for the same remote variant during reconciliation, so they
// are rejected up front.
func (p *ProductSpec) Validate() error {
	fields := map[string]string{}

	declared := make(map[string]bool, len(p.Options))
	for _, opt := range p.Options {
		declared[opt.Name] = true
	}

	seenKeys := make(map[string]int, len(p.Variants))
	for i, v := range p.Variants {
		if v.Price == nil {
			fields[fmt.Sprintf("variants.%d.price", i)] = "price is required"
		} else if v.Price.IsNegative() {
			fields[fmt.Sprintf("variants.%d.price", i)] = "price must not be negative"
		}
		for name := range v.Options {
			if !declared[name] {
				fields[fmt.Sprintf("variants.%d.options.%s", i, name)] = "option is not declared on the product"
			}
		}
		for _, opt := range p.Options {
			if _, ok := v.Options[opt.Name]; !ok {
				fields[fmt.Sprintf("variants.%d.options", i)] = fmt.Sprintf("missing value for option %q", opt.Name)
			}
		}

		key := OptionKey(v.Options)
		if first, dup := seenKeys[key]; dup {
			fields[fmt.Sprintf("variants.%d.options", i)] = fmt.Sprintf("duplicate option combination, same as variants.%d", first)
		} else {
			seenKeys[key] = i
		}
	}

	if len(fields) > 0 {
		return &apperrors.ErrValidation{Message: "invalid product spec", Fields: fields}
	}
	return nil
}
