package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testCreds = Credentials{Shop: "demo.myshopify.com", AccessToken: "shpat_test"}

// gqlServer answers every GraphQL POST with the given body after asserting
// the auth header.
func gqlServer(t *testing.T, status int, body string) (*httptest.Server, *Client, *string) {
	t.Helper()
	var lastQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Access-Token"); got != testCreds.AccessToken {
			t.Errorf("access token header = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type = %q", got)
		}
		var req struct {
			Query string `json:"query"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		lastQuery = req.Query
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	client := NewClient("", WithEndpoint(srv.URL), WithHTTPClient(srv.Client()))
	return srv, client, &lastQuery
}

func TestLowStockVariantsDecoding(t *testing.T) {
	body := `{"data":{"productVariants":{"nodes":[
		{"id":"gid://shopify/ProductVariant/1","title":"152cm","sku":"SNOW-152",
		 "inventoryQuantity":3,"price":"100.00","compareAtPrice":"150.00",
		 "product":{"id":"gid://shopify/Product/1","title":"Green Snowboard","handle":"green-snowboard"}},
		{"id":"gid://shopify/ProductVariant/2","title":"Default","sku":null,
		 "inventoryQuantity":null,"price":null,"compareAtPrice":null,
		 "product":{"id":"gid://shopify/Product/2","title":"Red Snowboard","handle":"red-snowboard"}}
	]}}}`
	_, client, lastQuery := gqlServer(t, http.StatusOK, body)

	records, err := client.LowStockVariants(context.Background(), testCreds)
	if err != nil {
		t.Fatalf("LowStockVariants: %v", err)
	}
	if !strings.Contains(*lastQuery, "inventory_quantity:<10 AND status:ACTIVE") {
		t.Fatalf("filter missing from query: %s", *lastQuery)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d", len(records))
	}
	first := records[0]
	if first.ProductTitle != "Green Snowboard" || first.SKU != "SNOW-152" || first.InventoryQuantity != 3 {
		t.Fatalf("first record: %+v", first)
	}
	// nulls collapse to zero values
	second := records[1]
	if second.SKU != "" || second.InventoryQuantity != 0 || second.Price != "" {
		t.Fatalf("null handling: %+v", second)
	}
}

func TestOnSaleCandidatesFlattening(t *testing.T) {
	body := `{"data":{"products":{"nodes":[
		{"id":"gid://shopify/Product/1","title":"Green Snowboard","handle":"green-snowboard",
		 "variants":{"nodes":[
			{"id":"v1","title":"152cm","sku":"S1","price":"100.00","compareAtPrice":"150.00"},
			{"id":"v2","title":"158cm","sku":"S2","price":"110.00","compareAtPrice":null}
		 ]}}
	]}}}`
	_, client, _ := gqlServer(t, http.StatusOK, body)

	records, err := client.OnSaleCandidates(context.Background(), testCreds)
	if err != nil {
		t.Fatalf("OnSaleCandidates: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d", len(records))
	}
	for _, r := range records {
		if r.ProductTitle != "Green Snowboard" || r.ProductHandle != "green-snowboard" {
			t.Fatalf("product fields not propagated: %+v", r)
		}
	}
}

func TestExecNon2xxIsError(t *testing.T) {
	_, client, _ := gqlServer(t, http.StatusForbidden, `{"errors":"unauthorized"}`)

	if _, err := client.LowStockVariants(context.Background(), testCreds); err == nil {
		t.Fatalf("expected error on 403")
	}
}

func TestExecGraphQLErrorsSurface(t *testing.T) {
	_, client, _ := gqlServer(t, http.StatusOK, `{"data":null,"errors":[{"message":"access denied"}]}`)

	_, err := client.OnSaleCandidates(context.Background(), testCreds)
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Fatalf("expected graphql error, got %v", err)
	}
}

func TestUpdateVariantPricesUserErrors(t *testing.T) {
	body := `{"data":{"productVariantsBulkUpdate":{"userErrors":[{"message":"price invalid"}]}}}`
	_, client, _ := gqlServer(t, http.StatusOK, body)

	err := client.UpdateVariantPrices(context.Background(), testCreds, "p1", []VariantPrice{{ID: "v1", Price: "11.00"}})
	if err == nil || !strings.Contains(err.Error(), "price invalid") {
		t.Fatalf("expected user error, got %v", err)
	}
}

func TestCreateProductReturnsID(t *testing.T) {
	body := `{"data":{"productCreate":{"product":{"id":"gid://shopify/Product/9"},"userErrors":[]}}}`
	_, client, _ := gqlServer(t, http.StatusOK, body)

	id, err := client.CreateProduct(context.Background(), testCreds, NewProduct{Title: "Sample", Tags: []string{"SAMPLE"}, Price: "9.99"})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if id != "gid://shopify/Product/9" {
		t.Fatalf("id = %q", id)
	}
}

func TestOrdersSinceDecoding(t *testing.T) {
	body := `{"data":{"orders":{"nodes":[
		{"id":"o1","createdAt":"2026-08-27T10:00:00Z",
		 "currentTotalPriceSet":{"shopMoney":{"amount":"10000","currencyCode":"KRW"}}}
	]}}}`
	_, client, _ := gqlServer(t, http.StatusOK, body)

	since := time.Date(2026, 8, 22, 0, 0, 0, 0, time.UTC)
	orders, err := client.OrdersSince(context.Background(), testCreds, since, 100)
	if err != nil {
		t.Fatalf("OrdersSince: %v", err)
	}
	if len(orders) != 1 || orders[0].Amount != "10000" || orders[0].Currency != "KRW" {
		t.Fatalf("orders: %+v", orders)
	}
}

func TestURLDefaultsToShopDomain(t *testing.T) {
	client := NewClient("")
	want := "https://demo.myshopify.com/admin/api/" + DefaultAPIVersion + "/graphql.json"
	if got := client.url("demo.myshopify.com"); got != want {
		t.Fatalf("url = %q, want %q", got, want)
	}
}
