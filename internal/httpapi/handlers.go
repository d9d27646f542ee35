// Package httpapi exposes the assistant, product admin and dashboard
// endpoints over HTTP.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aubri61/inventoria-ai/internal/dashboard"
	"github.com/aubri61/inventoria-ai/internal/products"
	"github.com/aubri61/inventoria-ai/internal/shopify"
	"github.com/aubri61/inventoria-ai/internal/shopify/proxy"
	"github.com/aubri61/inventoria-ai/internal/shopify/session"
)

// Assistant answers questions for both surfaces. Satisfied by
// *assistant.Service.
type Assistant interface {
	ConsumerAnswer(ctx context.Context, creds shopify.Credentials, question string) string
	AdminAnswer(ctx context.Context, creds shopify.Credentials, question, inventorySummary string) string
}

// ProductAdmin lists products and runs product commands. Satisfied by
// *products.Service.
type ProductAdmin interface {
	List(ctx context.Context, creds shopify.Credentials, first int) ([]shopify.Product, error)
	Dispatch(ctx context.Context, creds shopify.Credentials, cmd products.Command) error
}

// SalesDashboard builds the trailing-week sales report. Satisfied by
// *dashboard.Service.
type SalesDashboard interface {
	LastSevenDays(ctx context.Context, creds shopify.Credentials, now time.Time) (dashboard.Report, error)
}

// Server holds the handler dependencies.
type Server struct {
	sessions  session.Store
	assistant Assistant
	products  ProductAdmin
	dashboard SalesDashboard
	secret    string // app proxy signing secret
	now       func() time.Time
}

// NewServer wires the HTTP layer.
func NewServer(sessions session.Store, as Assistant, pr ProductAdmin, db SalesDashboard, proxySecret string) *Server {
	return &Server{
		sessions:  sessions,
		assistant: as,
		products:  pr,
		dashboard: db,
		secret:    proxySecret,
		now:       time.Now,
	}
}

type chatRequest struct {
	Question         string `json:"question"`
	InventorySummary string `json:"inventorySummary,omitempty"`
}

type chatResponse struct {
	OK      bool   `json:"ok"`
	Shop    string `json:"shop,omitempty"`
	Answer  string `json:"answer,omitempty"`
	Message string `json:"message,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// resolveProxyCreds authenticates an App Proxy request: signature, shop
// parameter, offline session. On failure it has already written the response
// and returns false.
func (s *Server) resolveProxyCreds(c *gin.Context) (shopify.Credentials, bool) {
	if !proxy.VerifySignature(c.Request.URL.Query(), s.secret) {
		c.JSON(http.StatusUnauthorized, chatResponse{OK: false, Message: "Invalid signature"})
		return shopify.Credentials{}, false
	}
	return s.resolveShopCreds(c)
}

// resolveShopCreds loads the offline session for the shop query parameter.
func (s *Server) resolveShopCreds(c *gin.Context) (shopify.Credentials, bool) {
	shop := session.SanitizeShop(c.Query("shop"))
	if shop == "" {
		c.JSON(http.StatusUnauthorized, chatResponse{OK: false, Message: "No offline token"})
		return shopify.Credentials{}, false
	}
	sess, err := s.sessions.Load(c.Request.Context(), shop)
	if err != nil || sess == nil || sess.AccessToken == "" {
		c.JSON(http.StatusUnauthorized, chatResponse{OK: false, Message: "No offline token"})
		return shopify.Credentials{}, false
	}
	return shopify.Credentials{Shop: shop, AccessToken: sess.AccessToken}, true
}

// proxyEndpoint wraps a POST handler with the App Proxy method contract:
// OPTIONS answers the preflight, any other non-POST method gets a JSON 405,
// and every response carries the permissive CORS headers.
func proxyEndpoint(post gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxyCORS(c)
		switch c.Request.Method {
		case http.MethodOptions:
			c.JSON(http.StatusOK, gin.H{"ok": true})
		case http.MethodPost:
			post(c)
		default:
			c.JSON(http.StatusMethodNotAllowed, chatResponse{OK: false, Message: "Use POST"})
		}
	}
}

// consumerChat answers a storefront shopper question.
func (s *Server) consumerChat(c *gin.Context) {
	creds, ok := s.resolveProxyCreds(c)
	if !ok {
		return
	}
	var req chatRequest
	_ = c.ShouldBindJSON(&req) // a malformed body reads as an empty question
	answer := s.assistant.ConsumerAnswer(c.Request.Context(), creds, req.Question)
	c.JSON(http.StatusOK, chatResponse{OK: true, Answer: answer})
}

// proxyAdminChat answers a merchant question arriving through the App Proxy.
func (s *Server) proxyAdminChat(c *gin.Context) {
	creds, ok := s.resolveProxyCreds(c)
	if !ok {
		return
	}
	var req chatRequest
	_ = c.ShouldBindJSON(&req)
	answer := s.assistant.AdminAnswer(c.Request.Context(), creds, req.Question, "")
	c.JSON(http.StatusOK, chatResponse{OK: true, Shop: creds.Shop, Answer: answer})
}

// apiChat answers a merchant question from the embedded admin. The caller may
// supply its own inventory summary as context.
func (s *Server) apiChat(c *gin.Context) {
	creds, ok := s.resolveShopCreds(c)
	if !ok {
		return
	}
	var req chatRequest
	_ = c.ShouldBindJSON(&req)
	answer := s.assistant.AdminAnswer(c.Request.Context(), creds, req.Question, req.InventorySummary)
	c.JSON(http.StatusOK, chatResponse{OK: true, Answer: answer})
}

func (s *Server) listProducts(c *gin.Context) {
	creds, ok := s.resolveShopCreds(c)
	if !ok {
		return
	}
	list, err := s.products.List(c.Request.Context(), creds, 10)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": "product lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "products": list})
}

type commandRequest struct {
	Intent    string `json:"intent"`
	ProductID string `json:"productId,omitempty"`
}

func (s *Server) productCommand(c *gin.Context) {
	creds, ok := s.resolveShopCreds(c)
	if !ok {
		return
	}
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid request body"})
		return
	}
	cmd, err := products.ParseCommand(req.Intent, req.ProductID, s.now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	}
	if err := s.products.Dispatch(c.Request.Context(), creds, cmd); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": "command failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) salesDashboard(c *gin.Context) {
	creds, ok := s.resolveShopCreds(c)
	if !ok {
		return
	}
	report, err := s.dashboard.LastSevenDays(c.Request.Context(), creds, s.now())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": "order lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"rows":       report.Rows,
		"totalCount": report.TotalOrders,
		"totalSum":   report.TotalRevenue,
	})
}
