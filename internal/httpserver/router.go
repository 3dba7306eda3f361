package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	cartsvc "hk-storefront/internal/cart"
	"hk-storefront/internal/domain"
	"hk-storefront/internal/mailer"
	"hk-storefront/internal/shopify"
)

type cartService interface {
	GetOrCreate(ctx context.Context, identity *domain.CartIdentity) (domain.CartSummary, domain.CartIdentity, error)
	Bootstrap(ctx context.Context, cartID string) (*shopify.Cart, domain.CartIdentity, error)
	AddLines(ctx context.Context, identity *domain.CartIdentity, lines []cartsvc.LineRequest) (domain.CartSummary, domain.CartIdentity, error)
	Update(ctx context.Context, cartID string, updates []cartsvc.LineUpdateRequest, removeLineIDs []string) (domain.CartSummary, domain.CartIdentity, error)
	Clear(ctx context.Context, cartID string) (domain.CartSummary, domain.CartIdentity, error)
}

type catalog interface {
	Products(ctx context.Context, first int) ([]shopify.Product, error)
	ProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
	ProductsByHandles(ctx context.Context, handles []string) ([]shopify.Product, error)
	CollectionByHandle(ctx context.Context, handle string, first int) (*shopify.Collection, error)
}

type newsletterService interface {
	Subscribe(ctx context.Context, email string) error
}

type mailSender interface {
	Configured() bool
	Send(msg mailer.Message) error
}

type readinessProbe interface {
	ShopName(ctx context.Context) (string, error)
}

// Deps carries everything the routes need.
type Deps struct {
	CartSvc        cartService
	Catalog        catalog
	Newsletter     newsletterService
	Mailer         mailSender
	Readiness      readinessProbe
	AllowedOrigins []string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = deps.AllowedOrigins
		corsCfg.AllowCredentials = true
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Readiness))

	api := router.Group("/api")

	sf := api.Group("/shopify")
	cartGroup := sf.Group("/cart")
	cartGroup.POST("/create", createCartHandler(deps.CartSvc))
	cartGroup.GET("/get", getCartHandler(deps.CartSvc))
	cartGroup.POST("/get", getCartHandler(deps.CartSvc))
	cartGroup.POST("/add", addToCartHandler(deps.CartSvc))
	cartGroup.POST("/update", updateCartHandler(deps.CartSvc))
	cartGroup.POST("/clear", clearCartHandler(deps.CartSvc))

	sf.GET("/products", listProductsHandler(deps.Catalog))
	sf.GET("/products/:handle", productHandler(deps.Catalog))
	sf.POST("/products/by-handles", productsByHandlesHandler(deps.Catalog))
	sf.GET("/collections/:handle", collectionHandler(deps.Catalog))

	api.POST("/newsletter", newsletterHandler(deps.Newsletter))
	api.POST("/payfast/notify", payfastNotifyHandler(logger))
	api.POST("/mail", mailHandler(deps.Mailer))

	return router
}
