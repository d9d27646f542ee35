package shopify

// Credentials identify one store's Admin API access.
type Credentials struct {
	Shop        string
	AccessToken string
}

// VariantRecord is a single sellable variant as read from the Admin API.
// Records are built per request and never persisted.
type VariantRecord struct {
	ID                string
	Title             string
	SKU               string // empty when the variant carries no SKU
	InventoryQuantity int
	Price             string // decimal string, e.g. "100.00"
	CompareAtPrice    string // decimal string, empty when not on sale
	ProductTitle      string
	ProductHandle     string
}

// Product is a product row for the admin listing.
type Product struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Tags           []string `json:"tags"`
	ImageURL       string   `json:"imageUrl,omitempty"`
	ImageAlt       string   `json:"imageAlt,omitempty"`
	FirstVariantID string   `json:"firstVariantId,omitempty"`
	Price          string   `json:"price,omitempty"`
}

// VariantPrice pairs a variant id with its price, used for bulk price updates.
type VariantPrice struct {
	ID    string
	Price string
}

// NewProduct describes a product to create.
type NewProduct struct {
	Title string
	Tags  []string
	Price string
}

// Order is a single order row used by the sales dashboard.
type Order struct {
	ID        string
	CreatedAt string // RFC 3339
	Amount    string // decimal string
	Currency  string
}
