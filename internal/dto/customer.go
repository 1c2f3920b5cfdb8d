package dto

// CustomerResponse represents a customer as exposed via transport layers.
// Phone serializes as null when the stored value is absent.
type CustomerResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone"`
}
