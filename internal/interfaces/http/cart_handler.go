package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puntoventa/pos-api/internal/application/billing"
	"github.com/puntoventa/pos-api/internal/application/cart"
	"github.com/puntoventa/pos-api/internal/application/catalog"
	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain/repository"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// CartHandler maneja el ciclo de vida del carrito y la liquidación.
type CartHandler struct {
	sessions  *cart.Sessions
	catalogUC *catalog.UseCase
	settleUC  *billing.SettleUseCase
	userRepo  repository.UserRepository
}

// NewCartHandler construye el handler.
func NewCartHandler(sessions *cart.Sessions, catalogUC *catalog.UseCase, settleUC *billing.SettleUseCase, userRepo repository.UserRepository) *CartHandler {
	return &CartHandler{sessions: sessions, catalogUC: catalogUC, settleUC: settleUC, userRepo: userRepo}
}

// Open godoc
// @Summary      Abrir un carrito nuevo
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CartResponse
// @Router       /api/carts [post]
func (h *CartHandler) Open(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(toCartResponse(h.sessions.Open()))
}

// Get godoc
// @Summary      Consultar un carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// AddItem godoc
// @Summary      Agregar una línea al carrito
// @Description  Quantity y Unit son lo digitado por el cajero; la conversión a
// @Description  unidades base del producto ocurre aquí. Si el producto ya está
// @Description  en el carrito la cantidad se suma a la línea existente.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del carrito"
// @Param        body  body  dto.AddItemRequest  true  "Línea a agregar"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	var in dto.AddItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	u, err := unit.Parse(in.Unit)
	if err != nil {
		return domainError(c, err)
	}
	product, err := h.catalogUC.GetProduct(in.ProductID)
	if err != nil {
		return domainError(c, err)
	}
	if err := ct.AddItem(*product, in.Quantity, u); err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// AdjustItem godoc
// @Summary      Ajustar la cantidad de una línea (delta en unidades base)
// @Description  Un delta que deja la cantidad en cero o menos elimina la línea.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id     path  string  true  "ID del carrito"
// @Param        index  path  int     true  "Índice de la línea"
// @Param        body   body  dto.AdjustItemRequest  true  "Delta"
// @Success      200    {object}  dto.CartResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{index} [put]
func (h *CartHandler) AdjustItem(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	var in dto.AdjustItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := ct.AdjustQuantity(index, in.Delta); err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// RemoveItem godoc
// @Summary      Eliminar una línea del carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id     path  string  true  "ID del carrito"
// @Param        index  path  int     true  "Índice de la línea"
// @Success      200    {object}  dto.CartResponse
// @Failure      409    {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items/{index} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "índice inválido"})
	}
	if err := ct.RemoveItem(index); err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// Checkout godoc
// @Summary      Congelar el carrito para capturar el pago
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if err := ct.Checkout(); err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// Reopen godoc
// @Summary      Reabrir un carrito congelado (pago cancelado)
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/reopen [post]
func (h *CartHandler) Reopen(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	if err := ct.Reopen(); err != nil {
		return domainError(c, err)
	}
	return c.JSON(toCartResponse(ct))
}

// Abort godoc
// @Summary      Descartar la venta
// @Tags         carts
// @Security     Bearer
// @Param        id   path  string  true  "ID del carrito"
// @Success      204
// @Router       /api/carts/{id} [delete]
func (h *CartHandler) Abort(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	ct.Abort()
	h.sessions.Close(ct.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

// Settle godoc
// @Summary      Liquidar el carrito (todo-o-nada)
// @Description  Descuenta stock, asigna el consecutivo y persiste la factura en
// @Description  una sola transacción. Si falla, nada cambia y el carrito vuelve
// @Description  a Open.
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del carrito"
// @Param        body  body  dto.SettleRequest  true  "Pago y descuento"
// @Success      201   {object}  dto.InvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/settle [post]
func (h *CartHandler) Settle(c *fiber.Ctx) error {
	ct, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	var in dto.SettleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	cashierID := GetUserID(c)
	cashierName := ""
	if u, err := h.userRepo.GetByID(cashierID); err == nil && u != nil {
		cashierName = u.Name
	}

	inv, err := h.settleUC.Settle(c.Context(), ct, billing.SettleInput{
		Discount:      in.Discount,
		DiscountType:  in.DiscountType,
		PaymentMode:   in.PaymentMode,
		CashierID:     cashierID,
		CashierName:   cashierName,
		CustomerName:  in.CustomerName,
		CustomerPhone: in.CustomerPhone,
		Notes:         in.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}
	h.sessions.Close(ct.ID)
	return c.Status(fiber.StatusCreated).JSON(inv)
}

func toCartResponse(ct *cart.Cart) *dto.CartResponse {
	resp := &dto.CartResponse{
		ID:       ct.ID,
		Status:   string(ct.Status),
		Items:    make([]dto.CartItemResponse, 0, len(ct.Items)),
		Subtotal: ct.Subtotal(),
	}
	for _, it := range ct.Items {
		resp.Items = append(resp.Items, dto.CartItemResponse{
			ProductID:       it.Product.ID,
			ProductName:     it.Product.Name,
			BaseUnit:        it.Product.BaseUnit.String(),
			UnitPrice:       it.Product.Price,
			Quantity:        it.Quantity,
			DisplayUnit:     it.DisplayUnit.String(),
			DisplayQuantity: it.DisplayQuantity,
			Subtotal:        it.Subtotal(),
		})
	}
	return resp
}
