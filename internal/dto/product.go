package dto

// ProductResponse represents a product as exposed via transport layers.
// Description serializes as null when the stored value is absent.
type ProductResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   *string `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int64   `json:"stock_quantity"`
}
