package ledger

import "time"

type entryRequest struct {
	AccountID string  `json:"accountId" validate:"required"`
	Debit     float64 `json:"debit" validate:"gte=0"`
	Credit    float64 `json:"credit" validate:"gte=0"`
}

type postTransactionRequest struct {
	Description   string         `json:"description" validate:"required"`
	Entries       []entryRequest `json:"entries" validate:"required,min=1,dive"`
	ReferenceID   string         `json:"referenceId"`
	ReferenceType string         `json:"referenceType" validate:"omitempty,oneof=Donation Expense Payroll Transfer Adjustment"`
	Date          *time.Time     `json:"date"`
	CreatedBy     string         `json:"createdBy"`
}

func (r postTransactionRequest) toInput() PostingInput {
	input := PostingInput{
		Description:   r.Description,
		ReferenceID:   r.ReferenceID,
		ReferenceType: ReferenceType(r.ReferenceType),
		CreatedBy:     r.CreatedBy,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	for _, e := range r.Entries {
		input.Entries = append(input.Entries, EntryInput{AccountID: e.AccountID, Debit: e.Debit, Credit: e.Credit})
	}
	return input
}

type addAccountRequest struct {
	Code            string `json:"code" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Type            string `json:"type" validate:"required,oneof=Asset Liability Equity Income Expense"`
	ParentAccountID string `json:"parentAccountId"`
	Description     string `json:"description"`
}

func (r addAccountRequest) toInput() AddAccountInput {
	return AddAccountInput{
		Code:            r.Code,
		Name:            r.Name,
		Type:            AccountType(r.Type),
		ParentAccountID: r.ParentAccountID,
		Description:     r.Description,
	}
}
