package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Account role constants
const (
	RoleAdmin     = "admin"
	RoleAnnotator = "annotator"
)

// Account status constants
const (
	AccountActive  = "active"
	AccountWarning = "warning"
	AccountBanned  = "banned"
)

// Task lifecycle constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Task review status constants
const (
	ReviewNone     = "none"
	ReviewDisputed = "disputed"
	ReviewResolved = "resolved"
)

// Verdict is the tri-state correctness of a submission. A nullable
// boolean would conflate "not judged yet" with "wrong", so the three
// states are explicit values.
type Verdict string

const (
	VerdictUnknown   Verdict = "unknown"
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
)

// Cents is a monetary amount in integer cents. All arithmetic on money
// happens in cents; dollars exist only at the JSON boundary.
type Cents int64

// Dollars converts to the dollar amount used in API responses.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// MarshalJSON renders the amount as dollars with two decimal places,
// so clients see 2.00 rather than 200.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Dollars(), 'f', 2, 64)), nil
}

// UnmarshalJSON reads a dollar amount, rounding to the nearest cent.
func (c *Cents) UnmarshalJSON(data []byte) error {
	dollars, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	cents, ok := ToCents(dollars)
	if !ok {
		return fmt.Errorf("invalid amount %q", data)
	}
	*c = cents
	return nil
}

// ToCents converts a dollar amount from a request into cents, rounding
// to the nearest cent. Returns false for NaN or infinite input.
func ToCents(dollars float64) (Cents, bool) {
	if math.IsNaN(dollars) || math.IsInf(dollars, 0) {
		return 0, false
	}
	return Cents(math.Round(dollars * 100)), true
}

// Amount is an optional dollar amount in a request body. A malformed
// value is recorded instead of failing the whole decode, so the API
// can report it as an invalid amount rather than a generic JSON error.
type Amount struct {
	Dollars *float64
	Invalid bool
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		a.Invalid = true
		return nil
	}
	a.Dollars = &f
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Dollars == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*a.Dollars)
}

// SplitOptions parses a stored "Cat,Dog,Bird" option list into trimmed
// labels, dropping empty entries.
func SplitOptions(options string) []string {
	parts := strings.Split(options, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateTaskRequest struct {
	ContentRef string `json:"content_ref"`
	Options    string `json:"options"` // comma separated, e.g. "Cat,Dog"
	Bounty     Amount `json:"bounty"`
}

type SubmitAnnotationRequest struct {
	TaskID string `json:"task_id"`
	Label  string `json:"label"`
}

type ResolveRequest struct {
	TaskID    string `json:"task_id"`
	TrueLabel string `json:"true_label"`
}

// Response types

type SessionResponse struct {
	SessionToken string  `json:"session_token"`
	Account      Account `json:"account"`
}

type CreateTaskResponse struct {
	TaskID string `json:"task_id"`
}

type SubmitAnnotationResponse struct {
	SubmissionID string `json:"submission_id"`
	Message      string `json:"message"`
}

type StatsResponse struct {
	PendingBalance Cents   `json:"pending_balance"`
	Accuracy       float64 `json:"accuracy"`
	TotalSubmitted int     `json:"total_submitted"`
	CorrectCount   int     `json:"correct_count"`
}

type HistoryEntry struct {
	SubmissionID string    `json:"submission_id"`
	TaskID       string    `json:"task_id"`
	ContentRef   string    `json:"content_ref"`
	Label        string    `json:"label"`
	Verdict      Verdict   `json:"verdict"`
	Paid         bool      `json:"paid"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Age          string    `json:"age"` // humanized, e.g. "2 days ago"
}

type UnpaidEntry struct {
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	Amount    Cents  `json:"amount"`
}

type PayrollResponse struct {
	Total   Cents         `json:"total"`
	Payouts []UnpaidEntry `json:"payouts"`
}

// Domain types

type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Wallet    Cents     `json:"wallet"`
	CreatedAt time.Time `json:"created_at"`
}

type Task struct {
	ID              string    `json:"id"`
	ContentRef      string    `json:"content_ref"`
	Options         string    `json:"-"` // stored comma-separated form
	OptionsList     []string  `json:"options"`
	Bounty          Cents     `json:"bounty"`
	SubmissionCount int       `json:"submission_count"`
	Status          string    `json:"status"`
	ReviewStatus    string    `json:"review_status"`
	ResolvedLabel   *string   `json:"resolved_label,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type Submission struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	TaskID      string    `json:"task_id"`
	Label       string    `json:"label"`
	Verdict     Verdict   `json:"verdict"`
	PaymentID   *string   `json:"payment_id,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Payment struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Amount    Cents     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
