package channel

import (
	"time"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateBranchChannelRequest activates a sales channel at a branch
type CreateBranchChannelRequest struct {
	BranchID       uuid.UUID  `json:"branch_id" binding:"required"`
	SalesChannelID uuid.UUID  `json:"sales_channel_id" binding:"required"`
	Name           string     `json:"name" binding:"required,min=1,max=100"`
	CreatedBy      *uuid.UUID `json:"-"`
}

// SetBranchChannelActiveRequest flips the branch-level kill switch
type SetBranchChannelActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// BranchChannelResponse represents a branch sales channel in API responses
type BranchChannelResponse struct {
	ID             uuid.UUID `json:"id"`
	BranchID       uuid.UUID `json:"branch_id"`
	SalesChannelID uuid.UUID `json:"sales_channel_id"`
	Name           string    `json:"name"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// ToBranchChannelResponse converts a domain BranchSalesChannel
func ToBranchChannelResponse(bc *channel.BranchSalesChannel) BranchChannelResponse {
	return BranchChannelResponse{
		ID:             bc.ID,
		BranchID:       bc.BranchID,
		SalesChannelID: bc.SalesChannelID,
		Name:           bc.Name,
		IsActive:       bc.IsActive,
		CreatedAt:      bc.CreatedAt,
		UpdatedAt:      bc.UpdatedAt,
		Version:        bc.Version,
	}
}

// ToBranchChannelResponses converts a slice of branch sales channels
func ToBranchChannelResponses(channels []channel.BranchSalesChannel) []BranchChannelResponse {
	responses := make([]BranchChannelResponse, len(channels))
	for i := range channels {
		responses[i] = ToBranchChannelResponse(&channels[i])
	}
	return responses
}

// Price write modes
const (
	PriceWriteModeSet    = "set"
	PriceWriteModeRemove = "remove"
)

// PriceWriteRequest is one entry of a bulk price write
type PriceWriteRequest struct {
	BranchSalesChannelID uuid.UUID        `json:"branch_sales_channel_id" binding:"required"`
	Mode                 string           `json:"mode" binding:"required,oneof=set remove"`
	IsEnabled            bool             `json:"is_enabled"`
	Price                *decimal.Decimal `json:"price"`
}

// SetChannelPricesRequest is a bulk price write for one tier. The whole
// batch is validated first and applied in one transaction.
type SetChannelPricesRequest struct {
	Items []PriceWriteRequest `json:"items" binding:"required,min=1,dive"`
}

// SetChannelPricesResponse reports the outcome of a bulk write
type SetChannelPricesResponse struct {
	Applied int `json:"applied"`
	Removed int `json:"removed"`
}

// ResolvedPriceResponse is the resolution outcome for one branch sales
// channel
type ResolvedPriceResponse struct {
	BranchSalesChannelID uuid.UUID        `json:"branch_sales_channel_id"`
	ChannelName          string           `json:"channel_name"`
	ChannelActive        bool             `json:"channel_active"`
	Visible              bool             `json:"visible"`
	Price                *decimal.Decimal `json:"price"`
	Origin               string           `json:"origin"`
}

// ResolvedPricesResponse is one resolved row per branch sales channel
// of the requested branch
type ResolvedPricesResponse struct {
	ProductID uuid.UUID               `json:"product_id"`
	VariantID *uuid.UUID              `json:"variant_id,omitempty"`
	BranchID  uuid.UUID               `json:"branch_id"`
	Prices    []ResolvedPriceResponse `json:"prices"`
}
