package dto

import (
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContactMetaRequest carries optional contact details of a ledger.
type ContactMetaRequest struct {
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	GSTIN   string `json:"gstin" binding:"omitempty,len=15,alphanum"`
}

// CreateLedgerRequest defines the data needed to create a ledger directly.
type CreateLedgerRequest struct {
	Name           string              `json:"name" binding:"required"`
	Code           string              `json:"code"` // Generated from the name when empty
	Group          domain.LedgerGroup  `json:"group" binding:"required"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	BalanceType    domain.BalanceType  `json:"balanceType" binding:"omitempty,oneof=Dr Cr"`
	GSTApplicable  bool                `json:"gstApplicable"`
	Contact        *ContactMetaRequest `json:"contact"`
}

// LedgerResponse defines the data returned for a ledger.
type LedgerResponse struct {
	LedgerID       string              `json:"ledgerID"`
	Name           string              `json:"name"`
	Code           string              `json:"code"`
	Group          domain.LedgerGroup  `json:"group"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	BalanceType    domain.BalanceType  `json:"balanceType"`
	GSTApplicable  bool                `json:"gstApplicable"`
	Contact        *domain.ContactMeta `json:"contact,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	CreatedBy      string              `json:"createdBy"`
	LastUpdatedAt  time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy  string              `json:"lastUpdatedBy"`
}

// ListLedgersParams defines query parameters for listing ledgers.
type ListLedgersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListLedgersResponse wraps the list of ledgers.
type ListLedgersResponse struct {
	Ledgers []LedgerResponse `json:"ledgers"`
}

// ToLedgerResponse converts a domain.Ledger to LedgerResponse DTO
func ToLedgerResponse(l *domain.Ledger) LedgerResponse {
	return LedgerResponse{
		LedgerID:       l.LedgerID,
		Name:           l.Name,
		Code:           l.Code,
		Group:          l.Group,
		OpeningBalance: l.OpeningBalance,
		BalanceType:    l.BalanceType,
		GSTApplicable:  l.GSTApplicable,
		Contact:        l.ContactMeta,
		CreatedAt:      l.CreatedAt,
		CreatedBy:      l.CreatedBy,
		LastUpdatedAt:  l.LastUpdatedAt,
		LastUpdatedBy:  l.LastUpdatedBy,
	}
}

// ToListLedgerResponse converts a slice of domain.Ledger to a slice of LedgerResponse DTOs
func ToListLedgerResponse(ledgers []domain.Ledger) []LedgerResponse {
	res := make([]LedgerResponse, len(ledgers))
	for i := range ledgers {
		res[i] = ToLedgerResponse(&ledgers[i])
	}
	return res
}
