package dto

import "time"

// CustomerAccountResponse represents a customer account as exposed via
// transport layers. The password field is included verbatim to match the
// historical API contract; see DESIGN.md for the security note.
type CustomerAccountResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	CreatedAt  time.Time `json:"created_at"`
	IsActive   bool      `json:"is_active"`
	CustomerID int64     `json:"customer_id"`
}
