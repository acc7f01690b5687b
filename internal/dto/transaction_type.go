package dto

import "github.com/fincore/bookkeeper_svc/internal/core/domain"

// CreateTransactionTypeRequest defines the payload for registering a transaction type.
type CreateTransactionTypeRequest struct {
	Code        string `json:"code" binding:"required,max=32,identifier"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ModifyTransactionTypeRequest defines the mutable registry fields.
type ModifyTransactionTypeRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// TransactionTypeResponse defines the data returned for a transaction type.
type TransactionTypeResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListTransactionTypesResponse is a paged registry listing.
type ListTransactionTypesResponse struct {
	TransactionTypes []TransactionTypeResponse `json:"transactionTypes"`
	TotalCount       int64                     `json:"totalCount"`
	PageIndex        int                       `json:"pageIndex"`
	Size             int                       `json:"size"`
}

// ToTransactionTypeResponse converts a domain.TransactionType to its response DTO.
func ToTransactionTypeResponse(t *domain.TransactionType) TransactionTypeResponse {
	return TransactionTypeResponse{
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
	}
}
