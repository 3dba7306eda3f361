package shopify

// GraphQL documents sent to the Storefront API. The cart fragment is shared
// by every cart operation so all responses hydrate the same Cart shape.

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount {
      amount
      currencyCode
    }
  }
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        attributes {
          key
          value
        }
        merchandise {
          ... on ProductVariant {
            id
            title
            price {
              amount
              currencyCode
            }
            weight
            weightUnit
            image {
              url
              altText
            }
            product {
              title
              handle
              featuredImage {
                url
                altText
              }
            }
          }
        }
      }
    }
  }
}`

const queryCart = `
query GetCart($cartId: ID!) {
  cart(id: $cartId) {
    ...CartFields
  }
}` + cartFragment

const mutationCartCreate = `
mutation CartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      code
      message
    }
  }
}` + cartFragment

const mutationCartLinesAdd = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      code
      message
    }
  }
}` + cartFragment

const mutationCartLinesUpdate = `
mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      code
      message
    }
  }
}` + cartFragment

const mutationCartLinesRemove = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {
      ...CartFields
    }
    userErrors {
      field
      code
      message
    }
  }
}` + cartFragment

const productFragment = `
fragment ProductFields on Product {
  id
  handle
  title
  description
  featuredImage {
    url
    altText
  }
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  variants(first: 50) {
    edges {
      node {
        id
        title
        price {
          amount
          currencyCode
        }
        availableForSale
        image {
          url
          altText
        }
      }
    }
  }
}`

const queryProducts = `
query GetProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        ...ProductFields
      }
    }
  }
}` + productFragment

const queryProductByHandle = `
query GetProductByHandle($handle: String!) {
  product(handle: $handle) {
    ...ProductFields
  }
}` + productFragment

const queryCollectionByHandle = `
query GetCollectionByHandle($handle: String!, $first: Int!) {
  collection(handle: $handle) {
    id
    handle
    title
    products(first: $first) {
      edges {
        node {
          ...ProductFields
        }
      }
    }
  }
}` + productFragment

const queryShop = `
query GetShop {
  shop {
    name
  }
}`

const mutationCustomerCreate = `
mutation NewsletterSignup($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    customer {
      id
    }
    customerUserErrors {
      field
      code
      message
    }
  }
}`
