package response

import (
	"time"

	"wedding-marketplace/internal/data/entity"
)

type VendorResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"user_id"`
	BusinessName  string              `json:"business_name"`
	AccountNumber string              `json:"account_number"`
	Status        entity.VendorStatus `json:"status"`
	Provisioned   bool                `json:"provisioned"`
	CreatedAt     time.Time           `json:"created_at"`
}

type ServiceResponse struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendor_id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	BasePrice   float64   `json:"base_price"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func VendorToResponse(vendor *entity.Vendor) VendorResponse {
	return VendorResponse{
		ID:            vendor.ID.String(),
		UserID:        vendor.UserID.String(),
		BusinessName:  vendor.BusinessName,
		AccountNumber: maskAccountNumber(vendor.AccountNumber),
		Status:        vendor.Status,
		Provisioned:   vendor.Provisioned(),
		CreatedAt:     vendor.CreatedAt,
	}
}

func ServiceToResponse(service *entity.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID.String(),
		VendorID:    service.VendorID.String(),
		Name:        service.Name,
		Category:    service.Category,
		BasePrice:   service.BasePrice,
		Description: service.Description,
		IsActive:    service.IsActive,
		CreatedAt:   service.CreatedAt,
	}
}

// maskAccountNumber keeps only the last four digits visible.
func maskAccountNumber(account string) string {
	if len(account) <= 4 {
		return account
	}
	masked := make([]byte, len(account))
	for i := range masked {
		if i < len(account)-4 {
			masked[i] = '*'
		} else {
			masked[i] = account[i]
		}
	}
	return string(masked)
}
