package service

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/internal/shopify"
	apperrors "github.com/jafarshop/catalogapi/pkg/errors"
)

// ProductService orchestrates the creation of a full product (options,
// variants, images, inventory) from a single ProductSpec. The pipeline is
// strictly sequential: each stage either produces input for the next stage or
// aborts the whole run. Nothing is rolled back on failure; created resource
// ids are recorded for later cleanup instead.
type ProductService struct {
	client *shopify.Client
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewProductService creates a new product orchestration service
func NewProductService(client *shopify.Client, repos *repository.Repositories, logger *zap.Logger) *ProductService {
	if repos == nil {
		repos = repository.NewNopRepositories()
	}
	return &ProductService{
		client: client,
		repos:  repos,
		logger: logger,
	}
}

// CreateProduct runs the end-to-end pipeline against the given shop and
// returns the final product snapshot (the GraphQL data object) on success.
// Submitting the same spec twice creates two distinct products: there is no
// lookup-before-create, by design.
func (s *ProductService) CreateProduct(ctx context.Context, shop, token string, spec *domain.ProductSpec) (json.RawMessage, error) {
	runID := uuid.New()
	logger := s.logger.With(zap.String("run_id", runID.String()), zap.String("shop", shop))

	// 1. Resolve the fulfillment location before creating anything; inventory
	// cannot be set without it.
	locationID, err := s.client.FirstLocationID(ctx, shop, token)
	if err != nil {
		return nil, err
	}
	logger.Info("Resolved fulfillment location", zap.Int64("location_id", locationID))

	// 2. Create the product shell
	productGID, defaultVariantGID, err := s.createProduct(ctx, shop, token, spec)
	if err != nil {
		return nil, err
	}
	s.record(ctx, runID, shop, domain.ResourceProduct, productGID)
	logger.Info("Created product", zap.String("product_id", productGID))

	// 3. Shopify auto-creates one default variant; align it with the first
	// desired variant so it does not linger with placeholder values.
	if defaultVariantGID != "" && len(spec.Variants) > 0 {
		if err := s.seedDefaultVariant(ctx, shop, token, defaultVariantGID, &spec.Variants[0]); err != nil {
			return nil, err
		}
	}

	// 4. Declare the options
	optionIDs, err := s.createOptions(ctx, shop, token, productGID, spec.Options)
	if err != nil {
		return nil, err
	}

	// 5. Snapshot the variants that exist after product + option creation
	existing, err := s.fetchExistingVariants(ctx, shop, token, productGID)
	if err != nil {
		return nil, err
	}

	// 6. Partition desired variants into create and update sets
	toCreate, toUpdate := reconcileVariants(spec.Variants, existing, optionIDs)
	logger.Info("Reconciled variants",
		zap.Int("existing", len(existing)),
		zap.Int("to_create", len(toCreate)),
		zap.Int("to_update", len(toUpdate)),
	)

	// 7. Bulk-create the missing variants and backfill their SKUs
	if len(toCreate) > 0 {
		if err := s.applyVariantCreates(ctx, runID, shop, token, productGID, toCreate); err != nil {
			return nil, err
		}
	}

	// 8. Patch SKUs on pre-existing variants. Prices of pre-existing variants
	// are left untouched in this flow.
	if err := s.applyVariantUpdates(ctx, shop, token, toUpdate); err != nil {
		return nil, err
	}

	// 9. Set inventory levels for every variant at the resolved location
	if err := s.syncInventory(ctx, shop, token, productGID, spec.Variants, locationID); err != nil {
		return nil, err
	}

	// 10. Upload images in declared order
	altMap, err := s.uploadImages(ctx, runID, shop, token, productGID, spec.Images)
	if err != nil {
		return nil, err
	}
	if len(altMap) > 0 {
		logger.Info("Uploaded images with alt correlation", zap.Int("count", len(altMap)))
	}

	// 11. Read back the fully materialized product
	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductSnapshotQuery, map[string]interface{}{
		"id": productGID,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Product creation pipeline completed", zap.String("product_id", productGID))
	return resp.Data, nil
}

// createProduct issues the productCreate mutation and returns the product GID
// and the GID of the auto-created default variant (empty when none came back).
func (s *ProductService) createProduct(ctx context.Context, shop, token string, spec *domain.ProductSpec) (string, string, error) {
	input := shopify.ProductCreateInput{
		Title:           spec.Title,
		DescriptionHtml: spec.Description,
		Vendor:          spec.Vendor,
		ProductType:     spec.ProductType,
		Status:          strings.ToUpper(string(spec.Status.OrDefault())),
	}

	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return "", "", err
	}

	var result struct {
		ProductCreate struct {
			Product struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Variants struct {
					Nodes []struct {
						ID string `json:"id"`
					} `json:"nodes"`
				} `json:"variants"`
			} `json:"product"`
			UserErrors []apperrors.UserError `json:"userErrors"`
		} `json:"productCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return "", "", fmt.Errorf("failed to parse productCreate response: %w", err)
	}

	if len(result.ProductCreate.UserErrors) > 0 {
		return "", "", &apperrors.UserErrors{Operation: "productCreate", Errors: result.ProductCreate.UserErrors}
	}

	defaultVariantGID := ""
	if nodes := result.ProductCreate.Product.Variants.Nodes; len(nodes) > 0 {
		defaultVariantGID = nodes[0].ID
	}

	return result.ProductCreate.Product.ID, defaultVariantGID, nil
}

// seedDefaultVariant patches the auto-created variant so it matches the first
// desired variant's price and SKU, and enables tracked inventory.
func (s *ProductService) seedDefaultVariant(ctx context.Context, shop, token, variantGID string, first *domain.VariantSpec) error {
	management := "SHOPIFY"
	update := shopify.VariantUpdate{InventoryManagement: &management}

	if first.Price != nil && !first.Price.IsZero() {
		price := first.Price.String()
		update.Price = &price
	}
	if first.SKU != nil && *first.SKU != "" {
		update.SKU = first.SKU
	}

	return s.client.UpdateVariant(ctx, shop, token, variantGID, update)
}

// createOptions declares all options in one mutation and returns the mapping
// from option name to platform option id. A spec without options yields an
// empty mapping and no remote call.
func (s *ProductService) createOptions(ctx context.Context, shop, token, productGID string, options []domain.OptionSpec) (map[string]string, error) {
	optionIDs := map[string]string{}
	if len(options) == 0 {
		return optionIDs, nil
	}

	inputs := make([]shopify.OptionCreateInput, len(options))
	for i, opt := range options {
		values := make([]shopify.OptionValueInput, len(opt.Values))
		for j, v := range opt.Values {
			values[j] = shopify.OptionValueInput{Name: v}
		}
		inputs[i] = shopify.OptionCreateInput{
			Name:     opt.Name,
			Position: i + 1,
			Values:   values,
		}
	}

	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductOptionsCreateMutation, map[string]interface{}{
		"productId": productGID,
		"options":   inputs,
	})
	if err != nil {
		return nil, err
	}

	var result struct {
		ProductOptionsCreate struct {
			Product struct {
				Options []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"options"`
			} `json:"product"`
			UserErrors []apperrors.UserError `json:"userErrors"`
		} `json:"productOptionsCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse productOptionsCreate response: %w", err)
	}

	if len(result.ProductOptionsCreate.UserErrors) > 0 {
		return nil, &apperrors.UserErrors{Operation: "productOptionsCreate", Errors: result.ProductOptionsCreate.UserErrors}
	}

	for _, opt := range result.ProductOptionsCreate.Product.Options {
		optionIDs[opt.Name] = opt.ID
	}

	return optionIDs, nil
}

// fetchExistingVariants queries the product's current variants and indexes
// them by canonical OptionKey.
func (s *ProductService) fetchExistingVariants(ctx context.Context, shop, token, productGID string) (map[string]existingVariant, error) {
	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductVariantsQuery, map[string]interface{}{
		"id": productGID,
	})
	if err != nil {
		return nil, err
	}

	nodes, err := parseVariantNodes(resp.Data)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]existingVariant, len(nodes))
	for _, node := range nodes {
		opts := selectedOptionsMap(node.SelectedOptions)
		existing[domain.OptionKey(opts)] = existingVariant{
			ID:              node.ID,
			Options:         opts,
			Price:           node.Price,
			InventoryItemID: node.InventoryItem.ID,
		}
	}

	return existing, nil
}

// applyVariantCreates issues one bulk-create mutation for all missing
// variants, then backfills each created variant's SKU. A created variant is
// correlated back to its input by full option-value map equality; when
// nothing matches, the SKU backfill is skipped silently.
func (s *ProductService) applyVariantCreates(ctx context.Context, runID uuid.UUID, shop, token, productGID string, toCreate []variantCreate) error {
	inputs := make([]shopify.ProductVariantsBulkInput, len(toCreate))
	for i, v := range toCreate {
		inputs[i] = shopify.ProductVariantsBulkInput{
			Price:        v.Price,
			OptionValues: v.OptionValues,
		}
	}

	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductVariantsBulkCreateMutation, map[string]interface{}{
		"productId": productGID,
		"variants":  inputs,
	})
	if err != nil {
		return err
	}

	var result struct {
		ProductVariantsBulkCreate struct {
			ProductVariants []struct {
				ID              string           `json:"id"`
				Price           string           `json:"price"`
				SelectedOptions []selectedOption `json:"selectedOptions"`
			} `json:"productVariants"`
			UserErrors []apperrors.UserError `json:"userErrors"`
		} `json:"productVariantsBulkCreate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse productVariantsBulkCreate response: %w", err)
	}

	if len(result.ProductVariantsBulkCreate.UserErrors) > 0 {
		return &apperrors.UserErrors{Operation: "productVariantsBulkCreate", Errors: result.ProductVariantsBulkCreate.UserErrors}
	}

	for _, created := range result.ProductVariantsBulkCreate.ProductVariants {
		s.record(ctx, runID, shop, domain.ResourceVariant, created.ID)

		createdOpts := selectedOptionsMap(created.SelectedOptions)
		for _, input := range toCreate {
			if !maps.Equal(createdOpts, input.Options) {
				continue
			}
			if input.SKU != nil && *input.SKU != "" {
				if err := s.client.UpdateVariant(ctx, shop, token, created.ID, shopify.VariantUpdate{SKU: input.SKU}); err != nil {
					return err
				}
			}
			break
		}
	}

	return nil
}

// applyVariantUpdates patches the SKU of each matched pre-existing variant
func (s *ProductService) applyVariantUpdates(ctx context.Context, shop, token string, toUpdate []variantUpdate) error {
	for _, v := range toUpdate {
		if v.SKU == nil || *v.SKU == "" {
			continue
		}
		if err := s.client.UpdateVariant(ctx, shop, token, v.ID, shopify.VariantUpdate{SKU: v.SKU}); err != nil {
			return err
		}
	}
	return nil
}

// syncInventory re-queries the product's variants and sets the inventory
// level of each one whose resolved option mapping equals a desired variant's
// mapping. Quantities default to 0 when the request left them out.
func (s *ProductService) syncInventory(ctx context.Context, shop, token, productGID string, variants []domain.VariantSpec, locationID int64) error {
	resp, err := s.client.Execute(ctx, shop, token, shopify.ProductVariantsQuery, map[string]interface{}{
		"id": productGID,
	})
	if err != nil {
		return err
	}

	nodes, err := parseVariantNodes(resp.Data)
	if err != nil {
		return err
	}

	for _, node := range nodes {
		remoteOpts := selectedOptionsMap(node.SelectedOptions)
		for i := range variants {
			if !maps.Equal(remoteOpts, variants[i].Options) {
				continue
			}
			if err := s.client.SetInventoryLevel(ctx, shop, token, node.InventoryItem.ID, locationID, variants[i].Quantity()); err != nil {
				return err
			}
		}
	}

	return nil
}

// uploadImages creates the declared images one at a time, in order, aborting
// the run on the first failure. The returned map correlates alt text to the
// platform image id for images that declared alt text.
func (s *ProductService) uploadImages(ctx context.Context, runID uuid.UUID, shop, token, productGID string, images []domain.ImageSpec) (map[string]int64, error) {
	altMap := map[string]int64{}

	for _, img := range images {
		imageID, err := s.client.CreateProductImage(ctx, shop, token, productGID, img.Src, img.Alt)
		if err != nil {
			return nil, err
		}
		s.record(ctx, runID, shop, domain.ResourceImage, fmt.Sprintf("%d", imageID))
		if img.Alt != nil && *img.Alt != "" {
			altMap[*img.Alt] = imageID
		}
	}

	return altMap, nil
}

// record persists one created-resource audit row. Recording is best-effort:
// a failed write is logged and never fails the pipeline.
func (s *ProductService) record(ctx context.Context, runID uuid.UUID, shop, resourceType, remoteID string) {
	rec := &domain.ResourceRecord{
		RunID:        runID,
		ShopDomain:   shop,
		ResourceType: resourceType,
		RemoteID:     remoteID,
	}
	if err := s.repos.ResourceRecord.Create(ctx, rec); err != nil {
		s.logger.Warn("Failed to record created resource",
			zap.String("resource_type", resourceType),
			zap.String("remote_id", remoteID),
			zap.Error(err),
		)
	}
}

type selectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type variantNode struct {
	ID              string           `json:"id"`
	SelectedOptions []selectedOption `json:"selectedOptions"`
	Price           string           `json:"price"`
	InventoryItem   struct {
		ID      string `json:"id"`
		Tracked bool   `json:"tracked"`
	} `json:"inventoryItem"`
}

func parseVariantNodes(data json.RawMessage) ([]variantNode, error) {
	var result struct {
		Product struct {
			Variants struct {
				Nodes []variantNode `json:"nodes"`
			} `json:"variants"`
		} `json:"product"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse variants response: %w", err)
	}
	return result.Product.Variants.Nodes, nil
}

func selectedOptionsMap(options []selectedOption) map[string]string {
	opts := make(map[string]string, len(options))
	for _, so := range options {
		opts[so.Name] = so.Value
	}
	return opts
}
