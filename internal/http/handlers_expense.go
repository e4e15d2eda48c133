package http

import (
	"errors"
	"log/slog"
	"net/http"

	"expensed/internal/core"
	"expensed/internal/services"
)

// expenseResponse is the wire shape of a single expense.
type expenseResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.Units(),
		Category:    e.Category,
		Date:        e.Date.String(),
		Time:        e.TimeOfDay,
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), accountIDFrom(r.Context()))
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}

	out := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseResponse(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	req, err := decodeExpenseRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := core.ParseDecimalToCents(req.Amount.String())
	if err != nil {
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	var date core.Date
	if req.Date != "" {
		date, err = core.ParseDate(req.Date)
		if err != nil {
			writeJSONError(w, http.StatusUnprocessableEntity, "invalid date, expected YYYY-MM-DD")
			return
		}
	}

	if !core.ValidTimeOfDay(req.Time) {
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid time, expected HH:MM")
		return
	}

	expense, err := s.expenses.Create(r.Context(), services.CreateExpenseInput{
		OwnerID:     accountIDFrom(r.Context()),
		Description: req.Description,
		Amount:      core.Money{Cents: amount},
		Category:    req.Category,
		Date:        date,
		TimeOfDay:   req.Time,
	})
	if err != nil {
		if errors.Is(err, core.ErrEmptyDescription) || errors.Is(err, core.ErrEmptyCategory) || errors.Is(err, core.ErrInvalidAmount) {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Create expense failed", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Deleting an unknown or foreign expense still reports success;
	// only the owner's own records can actually be removed.
	if err := s.expenses.Delete(r.Context(), id, accountIDFrom(r.Context())); err != nil {
		slog.ErrorContext(r.Context(), "Delete expense failed", "error", err, "id", id)
		writeJSONError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
