package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/puntoventa/pos-api/internal/application/dto"
	"github.com/puntoventa/pos-api/internal/domain/unit"
)

// UnitHandler expone la enumeración de unidades.
type UnitHandler struct{}

// NewUnitHandler construye el handler.
func NewUnitHandler() *UnitHandler { return &UnitHandler{} }

// List godoc
// @Summary      Listar unidades de medida
// @Description  Sin parámetros devuelve la enumeración completa; con ?base=Kg
// @Description  devuelve solo las unidades convertibles a esa base (para el
// @Description  selector de presentación de un producto).
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        base  query  string  false  "Unidad base del producto"
// @Success      200   {array}  dto.UnitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/units [get]
func (h *UnitHandler) List(c *fiber.Ctx) error {
	var list []unit.Unit
	if base := c.Query("base"); base != "" {
		u, err := unit.Parse(base)
		if err != nil {
			return domainError(c, err)
		}
		list = unit.Available(u)
	} else {
		list = unit.All()
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.UnitResponse{
			Name:   u.String(),
			Family: string(u.Family()),
			Factor: u.Factor().String(),
		})
	}
	return c.JSON(out)
}
