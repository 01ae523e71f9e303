package service

import (
	"sort"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/shopify"
)

// existingVariant is a remote variant as seen by the reconciler, keyed by its
// canonical OptionKey.
type existingVariant struct {
	ID              string
	Options         map[string]string
	Price           string
	InventoryItemID string
}

// variantCreate is a desired variant with no remote counterpart
type variantCreate struct {
	Price        string
	SKU          *string
	Options      map[string]string
	OptionValues []shopify.VariantOptionValueInput
}

// variantUpdate is a desired variant matched to an existing remote variant.
// Only the SKU is applied for these; the price stays as created.
type variantUpdate struct {
	ID      string
	Price   string
	SKU     *string
	Options map[string]string
}

// reconcileVariants partitions the desired variants into create and update
// sets by matching their canonical OptionKey against the existing remote
// variants. Option-value references for creates are resolved through the
// option name to option id mapping; unknown option names were already
// rejected at validation time.
func reconcileVariants(variants []domain.VariantSpec, existing map[string]existingVariant, optionIDs map[string]string) ([]variantCreate, []variantUpdate) {
	var toCreate []variantCreate
	var toUpdate []variantUpdate

	for _, variant := range variants {
		key := domain.OptionKey(variant.Options)

		if remote, ok := existing[key]; ok {
			toUpdate = append(toUpdate, variantUpdate{
				ID:      remote.ID,
				Price:   variant.Price.String(),
				SKU:     variant.SKU,
				Options: variant.Options,
			})
			continue
		}

		toCreate = append(toCreate, variantCreate{
			Price:        variant.Price.String(),
			SKU:          variant.SKU,
			Options:      variant.Options,
			OptionValues: optionValueRefs(variant.Options, optionIDs),
		})
	}

	return toCreate, toUpdate
}

// optionValueRefs builds the optionId/name references for a bulk-create
// entry, in sorted option-name order so payloads are deterministic.
func optionValueRefs(options map[string]string, optionIDs map[string]string) []shopify.VariantOptionValueInput {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	refs := make([]shopify.VariantOptionValueInput, len(names))
	for i, name := range names {
		refs[i] = shopify.VariantOptionValueInput{
			OptionID: optionIDs[name],
			Name:     options[name],
		}
	}
	return refs
}
