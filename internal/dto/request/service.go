package request

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	Category    string  `json:"category" validate:"required,min=2,max=50"`
	BasePrice   float64 `json:"base_price" validate:"required,gt=0"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}
