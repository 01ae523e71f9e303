package shopify

// ProductVariantsQuery fetches the product's current variants with their
// resolved option values and inventory item ids.
const ProductVariantsQuery = `
query getProductVariants($id: ID!) {
  product(id: $id) {
    variants(first: 100) {
      nodes {
        id
        selectedOptions { name value }
        price
        inventoryItem { id tracked }
      }
    }
  }
}
`

// ProductSnapshotQuery fetches the fully materialized product: options,
// variants and images. Its data object is the overall success result.
const ProductSnapshotQuery = `
query getProduct($id: ID!) {
  product(id: $id) {
    id
    title
    options {
      id
      name
      optionValues { id name }
    }
    variants(first: 100) {
      nodes {
        id
        sku
        price
        selectedOptions { name value }
        inventoryQuantity
        inventoryItem { id }
      }
    }
    images(first: 100) {
      edges {
        node {
          id
          url
          altText
        }
      }
    }
  }
}
`
