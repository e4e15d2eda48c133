package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

// flexString accepts both JSON strings and JSON numbers, keeping the
// original textual form so decimal parsing stays exact.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	s := string(data)
	if strings.HasPrefix(s, `"`) {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		*f = flexString(unquoted)
		return nil
	}
	*f = flexString(s)
	return nil
}

func (f flexString) String() string {
	return string(f)
}

// expenseRequest is the wire shape of an expense creation request.
// Amount may arrive as a number or a string.
type expenseRequest struct {
	Description string     `json:"description"`
	Amount      flexString `json:"amount"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	Time        string     `json:"time"`
}

func decodeExpenseRequest(r *http.Request) (expenseRequest, error) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return expenseRequest{}, err
	}
	req.Description = sanitizeInput(req.Description)
	req.Category = sanitizeInput(req.Category)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	return req, nil
}
