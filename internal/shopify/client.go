// Package shopify is a thin Admin GraphQL API client for the queries and
// mutations this app consumes.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aubri61/inventoria-ai/internal/core/errx"
	logx "github.com/aubri61/inventoria-ai/pkg/logger"
)

// DefaultAPIVersion is the Admin API version queries are pinned to.
const DefaultAPIVersion = "2025-01"

// Client executes Admin GraphQL calls against a per-store endpoint.
type Client struct {
	apiVersion string
	httpClient *http.Client
	endpoint   string // overrides the per-shop URL, for tests
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithEndpoint routes every call to a fixed URL instead of the shop domain.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// NewClient creates an Admin API client. An empty apiVersion falls back to
// DefaultAPIVersion.
func NewClient(apiVersion string, opts ...Option) *Client {
	c := &Client{
		apiVersion: apiVersion,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	if c.apiVersion == "" {
		c.apiVersion = DefaultAPIVersion
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (c *Client) url(shop string) string {
	if c.endpoint != "" {
		return c.endpoint
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, c.apiVersion)
}

// exec posts one GraphQL document and decodes the data payload into out.
func (c *Client) exec(ctx context.Context, creds Credentials, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return errx.WrapAdminAPI(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(creds.Shop), bytes.NewReader(body))
	if err != nil {
		return errx.WrapAdminAPI(err)
	}
	req.Header.Set("X-Shopify-Access-Token", creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errx.WrapAdminAPI(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logx.Warn().
			Str("shop", creds.Shop).
			Int("status", resp.StatusCode).
			Msg("Admin GraphQL returned non-2xx")
		return errx.WrapAdminAPI(fmt.Errorf("admin graphql %d: %s", resp.StatusCode, strings.TrimSpace(string(text))))
	}

	var env gqlEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errx.WrapAdminAPI(err)
	}
	if len(env.Errors) > 0 {
		return errx.WrapAdminAPI(fmt.Errorf("admin graphql: %s", env.Errors[0].Message))
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errx.WrapAdminAPI(err)
		}
	}
	return nil
}

// ---- wire shapes ----

type wireImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type wireVariant struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	SKU               *string  `json:"sku"`
	InventoryQuantity *int     `json:"inventoryQuantity"`
	Price             *string  `json:"price"`
	CompareAtPrice    *string  `json:"compareAtPrice"`
	Product           *struct {
		ID            string     `json:"id"`
		Title         string     `json:"title"`
		Handle        string     `json:"handle"`
		FeaturedImage *wireImage `json:"featuredImage"`
	} `json:"product"`
}

func (v wireVariant) record() VariantRecord {
	rec := VariantRecord{
		ID:    v.ID,
		Title: v.Title,
	}
	if v.SKU != nil {
		rec.SKU = *v.SKU
	}
	if v.InventoryQuantity != nil {
		rec.InventoryQuantity = *v.InventoryQuantity
	}
	if v.Price != nil {
		rec.Price = *v.Price
	}
	if v.CompareAtPrice != nil {
		rec.CompareAtPrice = *v.CompareAtPrice
	}
	if v.Product != nil {
		rec.ProductTitle = v.Product.Title
		rec.ProductHandle = v.Product.Handle
	}
	return rec
}

const lowStockQuery = `
{
  productVariants(first: 50, query: "inventory_quantity:<10 AND status:ACTIVE") {
    nodes {
      id
      title
      sku
      inventoryQuantity
      product { id title handle featuredImage { url } }
      price
      compareAtPrice
    }
  }
}`

// LowStockVariants returns active variants with inventory below ten. The
// threshold lives in the query so no local re-filtering happens.
func (c *Client) LowStockVariants(ctx context.Context, creds Credentials) ([]VariantRecord, error) {
	var data struct {
		ProductVariants struct {
			Nodes []wireVariant `json:"nodes"`
		} `json:"productVariants"`
	}
	if err := c.exec(ctx, creds, lowStockQuery, nil, &data); err != nil {
		return nil, err
	}
	records := make([]VariantRecord, 0, len(data.ProductVariants.Nodes))
	for _, n := range data.ProductVariants.Nodes {
		records = append(records, n.record())
	}
	return records, nil
}

const onSaleQuery = `
{
  products(first: 50, query: "status:ACTIVE") {
    nodes {
      id title handle featuredImage { url }
      variants(first: 50) {
        nodes {
          id title sku price compareAtPrice
        }
      }
    }
  }
}`

// OnSaleCandidates flattens up to 50 active products x 50 variants into
// variant records. Discount derivation is left to the summarizer.
func (c *Client) OnSaleCandidates(ctx context.Context, creds Credentials) ([]VariantRecord, error) {
	var data struct {
		Products struct {
			Nodes []struct {
				ID       string `json:"id"`
				Title    string `json:"title"`
				Handle   string `json:"handle"`
				Variants struct {
					Nodes []wireVariant `json:"nodes"`
				} `json:"variants"`
			} `json:"nodes"`
		} `json:"products"`
	}
	if err := c.exec(ctx, creds, onSaleQuery, nil, &data); err != nil {
		return nil, err
	}
	var records []VariantRecord
	for _, p := range data.Products.Nodes {
		for _, v := range p.Variants.Nodes {
			rec := v.record()
			rec.ProductTitle = p.Title
			rec.ProductHandle = p.Handle
			records = append(records, rec)
		}
	}
	return records, nil
}

const listProductsQuery = `
query Products($first: Int!) {
  products(first: $first, sortKey: TITLE) {
    nodes {
      id
      title
      tags
      featuredImage { url altText }
      variants(first: 1) { nodes { id price } }
    }
  }
}`

// ListProducts returns the first products sorted by title for the admin UI.
func (c *Client) ListProducts(ctx context.Context, creds Credentials, first int) ([]Product, error) {
	var data struct {
		Products struct {
			Nodes []struct {
				ID            string     `json:"id"`
				Title         string     `json:"title"`
				Tags          []string   `json:"tags"`
				FeaturedImage *wireImage `json:"featuredImage"`
				Variants      struct {
					Nodes []struct {
						ID    string `json:"id"`
						Price string `json:"price"`
					} `json:"nodes"`
				} `json:"variants"`
			} `json:"nodes"`
		} `json:"products"`
	}
	vars := map[string]any{"first": first}
	if err := c.exec(ctx, creds, listProductsQuery, vars, &data); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(data.Products.Nodes))
	for _, n := range data.Products.Nodes {
		p := Product{ID: n.ID, Title: n.Title, Tags: n.Tags}
		if n.FeaturedImage != nil {
			p.ImageURL = n.FeaturedImage.URL
			p.ImageAlt = n.FeaturedImage.AltText
		}
		if len(n.Variants.Nodes) > 0 {
			p.FirstVariantID = n.Variants.Nodes[0].ID
			p.Price = n.Variants.Nodes[0].Price
		}
		products = append(products, p)
	}
	return products, nil
}

const variantPricesQuery = `
query GetVariants($id: ID!) {
  product(id: $id) { variants(first: 100) { nodes { id price } } }
}`

// ProductVariantPrices reads the current price of every variant of a product.
func (c *Client) ProductVariantPrices(ctx context.Context, creds Credentials, productID string) ([]VariantPrice, error) {
	var data struct {
		Product *struct {
			Variants struct {
				Nodes []struct {
					ID    string `json:"id"`
					Price string `json:"price"`
				} `json:"nodes"`
			} `json:"variants"`
		} `json:"product"`
	}
	vars := map[string]any{"id": productID}
	if err := c.exec(ctx, creds, variantPricesQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, errx.WrapAdminAPI(fmt.Errorf("product not found: %s", productID))
	}
	prices := make([]VariantPrice, 0, len(data.Product.Variants.Nodes))
	for _, n := range data.Product.Variants.Nodes {
		prices = append(prices, VariantPrice{ID: n.ID, Price: n.Price})
	}
	return prices, nil
}

type wireUserErrors struct {
	UserErrors []struct {
		Message string `json:"message"`
	} `json:"userErrors"`
}

func (u wireUserErrors) err() error {
	if len(u.UserErrors) == 0 {
		return nil
	}
	return errx.WrapAdminAPI(fmt.Errorf("admin mutation: %s", u.UserErrors[0].Message))
}

const bulkUpdatePricesMutation = `
mutation UpdatePrices($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    userErrors { message }
  }
}`

// UpdateVariantPrices bulk-updates variant prices on one product.
func (c *Client) UpdateVariantPrices(ctx context.Context, creds Credentials, productID string, prices []VariantPrice) error {
	variants := make([]map[string]any, 0, len(prices))
	for _, p := range prices {
		variants = append(variants, map[string]any{"id": p.ID, "price": p.Price})
	}
	var data struct {
		ProductVariantsBulkUpdate wireUserErrors `json:"productVariantsBulkUpdate"`
	}
	vars := map[string]any{"productId": productID, "variants": variants}
	if err := c.exec(ctx, creds, bulkUpdatePricesMutation, vars, &data); err != nil {
		return err
	}
	return data.ProductVariantsBulkUpdate.err()
}

const addTagsMutation = `
mutation AddTag($id: ID!, $tags: [String!]!) {
  tagsAdd(id: $id, tags: $tags) { userErrors { message } }
}`

// AddTags adds tags to a product.
func (c *Client) AddTags(ctx context.Context, creds Credentials, productID string, tags []string) error {
	var data struct {
		TagsAdd wireUserErrors `json:"tagsAdd"`
	}
	vars := map[string]any{"id": productID, "tags": tags}
	if err := c.exec(ctx, creds, addTagsMutation, vars, &data); err != nil {
		return err
	}
	return data.TagsAdd.err()
}

const removeTagsMutation = `
mutation RemoveTag($id: ID!, $tags: [String!]!) {
  tagsRemove(id: $id, tags: $tags) { userErrors { message } }
}`

// RemoveTags removes tags from a product.
func (c *Client) RemoveTags(ctx context.Context, creds Credentials, productID string, tags []string) error {
	var data struct {
		TagsRemove wireUserErrors `json:"tagsRemove"`
	}
	vars := map[string]any{"id": productID, "tags": tags}
	if err := c.exec(ctx, creds, removeTagsMutation, vars, &data); err != nil {
		return err
	}
	return data.TagsRemove.err()
}

const createProductMutation = `
mutation CreateProduct($input: ProductInput!) {
  productCreate(input: $input) {
    product { id }
    userErrors { message }
  }
}`

// CreateProduct creates a product and returns its id.
func (c *Client) CreateProduct(ctx context.Context, creds Credentials, in NewProduct) (string, error) {
	var data struct {
		ProductCreate struct {
			Product *struct {
				ID string `json:"id"`
			} `json:"product"`
			wireUserErrors
		} `json:"productCreate"`
	}
	input := map[string]any{
		"title":    in.Title,
		"tags":     in.Tags,
		"variants": []map[string]any{{"price": in.Price}},
	}
	vars := map[string]any{"input": input}
	if err := c.exec(ctx, creds, createProductMutation, vars, &data); err != nil {
		return "", err
	}
	if err := data.ProductCreate.err(); err != nil {
		return "", err
	}
	if data.ProductCreate.Product == nil {
		return "", errx.WrapAdminAPI(fmt.Errorf("productCreate returned no product"))
	}
	return data.ProductCreate.Product.ID, nil
}

const ordersQuery = `
query Orders($query: String!, $first: Int!) {
  orders(first: $first, query: $query, sortKey: CREATED_AT, reverse: true) {
    nodes {
      id
      createdAt
      currentTotalPriceSet { shopMoney { amount currencyCode } }
    }
  }
}`

// OrdersSince returns orders created on or after the given day.
func (c *Client) OrdersSince(ctx context.Context, creds Credentials, since time.Time, first int) ([]Order, error) {
	var data struct {
		Orders struct {
			Nodes []struct {
				ID                   string `json:"id"`
				CreatedAt            string `json:"createdAt"`
				CurrentTotalPriceSet struct {
					ShopMoney struct {
						Amount       string `json:"amount"`
						CurrencyCode string `json:"currencyCode"`
					} `json:"shopMoney"`
				} `json:"currentTotalPriceSet"`
			} `json:"nodes"`
		} `json:"orders"`
	}
	vars := map[string]any{
		"query": fmt.Sprintf("created_at:>=%s", since.Format("2006-01-02")),
		"first": first,
	}
	if err := c.exec(ctx, creds, ordersQuery, vars, &data); err != nil {
		return nil, err
	}
	orders := make([]Order, 0, len(data.Orders.Nodes))
	for _, n := range data.Orders.Nodes {
		orders = append(orders, Order{
			ID:        n.ID,
			CreatedAt: n.CreatedAt,
			Amount:    n.CurrentTotalPriceSet.ShopMoney.Amount,
			Currency:  n.CurrentTotalPriceSet.ShopMoney.CurrencyCode,
		})
	}
	return orders, nil
}
