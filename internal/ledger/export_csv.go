package ledger

import (
	"encoding/csv"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a balance with grouping separators and two decimal
// places for export.
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%v", number.Decimal(v, number.Scale(2)))
}

// trialBalanceCSV streams the trial balance as CSV. Debit-normal balances
// (Asset/Expense) land in the debit column, the rest in credit.
func (h *Handler) trialBalanceCSV(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.TrialBalance(r.Context())
	if err != nil {
		h.respondError(w, "trial balance csv", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trial-balance.csv"`)

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Account ID", "Code", "Name", "Type", "Debit", "Credit"}); err != nil {
		h.logger.Error("write csv header", slog.Any("error", err))
		return
	}
	for _, acc := range accounts {
		debit, credit := "", ""
		switch acc.Type {
		case AccountTypeAsset, AccountTypeExpense:
			debit = formatAmount(acc.Balance)
		default:
			credit = formatAmount(acc.Balance)
		}
		if err := writer.Write([]string{acc.ID, acc.Code, acc.Name, string(acc.Type), debit, credit}); err != nil {
			h.logger.Error("write csv row", slog.Any("error", err))
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Error("flush csv", slog.Any("error", err))
	}
}
