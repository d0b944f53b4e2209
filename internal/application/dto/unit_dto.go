package dto

// UnitResponse describe una unidad de medida soportada.
type UnitResponse struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Factor string `json:"factor"` // factor exacto hacia la base de su familia
}
