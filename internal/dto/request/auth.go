package request

type RegisterRequest struct {
	FirstName string  `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string  `json:"last_name" validate:"required,min=2,max=50"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=6"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role      string  `json:"role" validate:"required,oneof=client vendor"`

	// Vendor profile fields, required when role is vendor.
	BusinessName  string `json:"business_name,omitempty" validate:"omitempty,min=2,max=100"`
	AccountNumber string `json:"account_number,omitempty" validate:"omitempty,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
