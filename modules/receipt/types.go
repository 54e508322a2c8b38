package receipt

// SendReceiptRequest asks for the receipt of one sale.
type SendReceiptRequest struct {
	SaleID string `json:"sale_id"`
}

// SendReceiptResponse describes the delivered receipt.
type SendReceiptResponse struct {
	SaleID  string `json:"sale_id"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}
