package httpapi

import "github.com/gin-gonic/gin"

// NewRouter registers all routes and middleware.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), AccessLog())

	r.GET("/healthz", s.health)

	// Storefront-facing App Proxy endpoints. Shopify forwards POST and the
	// widget preflights with OPTIONS, everything else is a JSON 405.
	r.Any("/proxy/consumer-chat", proxyEndpoint(s.consumerChat))
	r.Any("/proxy/ai-chat", proxyEndpoint(s.proxyAdminChat))

	api := r.Group("/api")
	{
		api.POST("/ai-chat", s.apiChat)
		api.GET("/products", s.listProducts)
		api.POST("/products/commands", s.productCommand)
		api.GET("/dashboard/sales", s.salesDashboard)
	}

	return r
}
