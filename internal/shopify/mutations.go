package shopify

// ProductCreateMutation creates the bare product. Shopify auto-creates one
// default variant; its id is captured here so the pipeline can patch it.
const ProductCreateMutation = `
mutation createProduct($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id
      title
      variants(first: 1) {
        nodes { id }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductOptionsCreateMutation creates all declared options in one call
const ProductOptionsCreateMutation = `
mutation createOptions($productId: ID!, $options: [OptionCreateInput!]!) {
  productOptionsCreate(productId: $productId, options: $options) {
    product {
      id
      options {
        id
        name
        optionValues { id name }
      }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductVariantsBulkCreateMutation creates all missing variants in one call
const ProductVariantsBulkCreateMutation = `
mutation productVariantsBulkCreate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkCreate(productId: $productId, variants: $variants) {
    productVariants {
      id
      price
      selectedOptions { name value }
    }
    userErrors {
      field
      message
    }
  }
}
`

// ProductCreateInput is the productCreate input object
type ProductCreateInput struct {
	Title           string `json:"title"`
	DescriptionHtml string `json:"descriptionHtml"`
	Vendor          string `json:"vendor"`
	ProductType     string `json:"productType"`
	Status          string `json:"status"`
}

// OptionCreateInput declares one option for productOptionsCreate
type OptionCreateInput struct {
	Name     string             `json:"name"`
	Position int                `json:"position"`
	Values   []OptionValueInput `json:"values"`
}

// OptionValueInput is one option value by name
type OptionValueInput struct {
	Name string `json:"name"`
}

// ProductVariantsBulkInput is one variant for productVariantsBulkCreate
type ProductVariantsBulkInput struct {
	Price        string                    `json:"price"`
	OptionValues []VariantOptionValueInput `json:"optionValues"`
}

// VariantOptionValueInput resolves a variant's option value by option id
type VariantOptionValueInput struct {
	OptionID string `json:"optionId"`
	Name     string `json:"name"`
}
