package dto

// SettingsResponse configuración de la tienda. El contador se expone de
// solo lectura; únicamente la liquidación lo avanza.
type SettingsResponse struct {
	ShopName       string `json:"shop_name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email,omitempty"`
	GSTNumber      string `json:"gst_number,omitempty"`
	UPIID          string `json:"upi_id,omitempty"`
	InvoicePrefix  string `json:"invoice_prefix"`
	InvoiceCounter int64  `json:"invoice_counter"`
	PaperSize      string `json:"paper_size"`
	Currency       string `json:"currency"`
}

// UpdateSettingsRequest actualización parcial de la configuración.
// No incluye InvoiceCounter: el consecutivo no es editable vía API.
type UpdateSettingsRequest struct {
	ShopName      *string `json:"shop_name"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	GSTNumber     *string `json:"gst_number"`
	UPIID         *string `json:"upi_id"`
	InvoicePrefix *string `json:"invoice_prefix"`
	PaperSize     *string `json:"paper_size"`
	Currency      *string `json:"currency"`
}
