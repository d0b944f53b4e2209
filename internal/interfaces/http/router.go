package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puntoventa/pos-api/internal/application/analytics"
	"github.com/puntoventa/pos-api/internal/application/auth"
	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/application/catalog"
	"github.com/puntoventa/pos-api/internal/application/shop"
	"github.com/puntoventa/pos-api/internal/domain/entity"
	"github.com/puntoventa/pos-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC   *catalog.UseCase
	Sessions    *cart.Sessions
	SettleUC    *billing.SettleUseCase
	HistoryUC   *billing.HistoryUseCase
	DashboardUC *analytics.DashboardUseCase
	SettingsUC  *shop.UseCase
	AuthUC      *auth.UseCase
	UserRepo    repository.UserRepository
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Catálogo
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Post("/:id/stock", adminOnly, productHandler.AdjustStock)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Unidades
	unitHandler := NewUnitHandler()
	protected.Get("/units", unitHandler.List)

	// Carritos y liquidación
	carts := protected.Group("/carts")
	cartHandler := NewCartHandler(deps.Sessions, deps.CatalogUC, deps.SettleUC, deps.UserRepo)
	carts.Post("/", cartHandler.Open)
	carts.Get("/:id", cartHandler.Get)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Put("/:id/items/:index", cartHandler.AdjustItem)
	carts.Delete("/:id/items/:index", cartHandler.RemoveItem)
	carts.Post("/:id/checkout", cartHandler.Checkout)
	carts.Post("/:id/reopen", cartHandler.Reopen)
	carts.Post("/:id/settle", cartHandler.Settle)
	carts.Delete("/:id", cartHandler.Abort)

	// Facturas (inmutables: solo lecturas)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.HistoryUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.ReceiptPDF)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)

	// Configuración de la tienda
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", adminOnly, settingsHandler.Update)

	// Operadores (solo admin)
	users := protected.Group("/users", adminOnly)
	users.Post("/", authHandler.CreateUser)
	users.Get("/", authHandler.ListUsers)
	users.Delete("/:id", authHandler.DeactivateUser)
}
