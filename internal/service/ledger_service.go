package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mnakagawa/kakei/internal/ledger"
	"github.com/mnakagawa/kakei/internal/models"
	"github.com/mnakagawa/kakei/internal/storage"
)

// LedgerService handles the expense ledger and settlements for the two
// configured participants.
type LedgerService struct {
	expenses     *ledger.Repository
	history      *ledger.HistoryRepository
	participantA string
	participantB string
	now          func() time.Time
}

// NewLedgerService creates a LedgerService over the given store.
func NewLedgerService(store storage.RowStore, participantA, participantB string) *LedgerService {
	return &LedgerService{
		expenses:     ledger.NewRepository(store),
		history:      ledger.NewHistoryRepository(store),
		participantA: participantA,
		participantB: participantB,
		now:          time.Now,
	}
}

type expenseJSON struct {
	Person  string `json:"person"`
	Date    string `json:"date"`
	Amount  int64  `json:"amount"`
	Content string `json:"content,omitempty"`
	Place   string `json:"place,omitempty"`
}

type listExpensesResponse struct {
	Expenses []expenseJSON    `json:"expenses"`
	Totals   map[string]int64 `json:"totals"`
}

// ListExpenses returns the current ledger and the per-participant totals.
func (s *LedgerService) ListExpenses(w http.ResponseWriter, r *http.Request) {
	l := s.expenses.Load(r.Context())

	expenses := make([]expenseJSON, 0, l.Len())
	for _, e := range l.All() {
		expenses = append(expenses, expenseToJSON(e))
	}
	writeJSON(w, http.StatusOK, listExpensesResponse{
		Expenses: expenses,
		Totals: map[string]int64{
			s.participantA: l.TotalFor(s.participantA),
			s.participantB: l.TotalFor(s.participantB),
		},
	})
}

// AddExpense appends one expense to the ledger.
func (s *LedgerService) AddExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Person != s.participantA && req.Person != s.participantB {
		writeError(w, http.StatusBadRequest, "person must be one of the two participants")
		return
	}
	if req.Amount < 0 {
		writeError(w, http.StatusBadRequest, "amount must not be negative")
		return
	}
	if req.Content != "" && req.Content != models.CategoryFood && req.Content != models.CategoryOther {
		writeError(w, http.StatusBadRequest, "content must be 食費 or その他")
		return
	}

	date := s.now()
	if req.Date != "" {
		parsed, err := time.Parse(models.DateFormat, req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	e := models.Expense{
		Person:  req.Person,
		Date:    date,
		Amount:  req.Amount,
		Content: req.Content,
		Place:   req.Place,
	}
	if err := s.expenses.Add(r.Context(), e); err != nil {
		slog.Error("AddExpense failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save expense")
		return
	}
	writeJSON(w, http.StatusCreated, expenseToJSON(e))
}

type settlementJSON struct {
	SettledAt     string  `json:"settled_at"`
	Payer         string  `json:"payer,omitempty"`
	Payee         string  `json:"payee,omitempty"`
	Amount        float64 `json:"amount"`
	DisplayAmount string  `json:"display_amount"`
	TotalSpent    int64   `json:"total_spent"`
	NeedsPayment  bool    `json:"needs_payment"`
}

// Settle computes the settlement over the current ledger, archives it to
// the history and clears the ledger. The history append and the clear are
// one logical step: if the append fails the ledger is left untouched, so
// no settled period can go unrecorded.
func (s *LedgerService) Settle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := s.expenses.Load(ctx)

	result := ledger.Settle(l, s.participantA, s.participantB, s.now())

	if err := s.history.Append(ctx, result); err != nil {
		slog.Error("Settlement history append failed, ledger left uncleared", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to record settlement")
		return
	}
	if err := s.expenses.Clear(ctx); err != nil {
		// The settlement is recorded but the expenses are still there; the
		// next reload shows the mismatch rather than hiding it.
		slog.Error("Ledger clear failed after settlement", "error", err)
		writeError(w, http.StatusInternalServerError, "settlement recorded but ledger not cleared, reload and clear again")
		return
	}
	l.Clear()

	slog.Info("Settlement executed",
		"payer", result.Payer,
		"amount", result.Amount,
		"total_spent", result.TotalSpent,
	)
	writeJSON(w, http.StatusOK, settlementToJSON(result))
}

type listSettlementsResponse struct {
	Settlements []settlementJSON `json:"settlements"`
}

// ListSettlements returns the settlement history in insertion order.
func (s *LedgerService) ListSettlements(w http.ResponseWriter, r *http.Request) {
	history := s.history.List(r.Context())
	out := make([]settlementJSON, 0, len(history))
	for _, st := range history {
		out = append(out, settlementToJSON(st))
	}
	writeJSON(w, http.StatusOK, listSettlementsResponse{Settlements: out})
}

func expenseToJSON(e models.Expense) expenseJSON {
	return expenseJSON{
		Person:  e.Person,
		Date:    e.Date.Format(models.DateFormat),
		Amount:  e.Amount,
		Content: e.Content,
		Place:   e.Place,
	}
}

func settlementToJSON(s models.Settlement) settlementJSON {
	return settlementJSON{
		SettledAt:     s.SettledAt.Format(models.SettledAtFormat),
		Payer:         s.Payer,
		Payee:         s.Payee,
		Amount:        s.Amount,
		DisplayAmount: s.DisplayAmount(),
		TotalSpent:    s.TotalSpent,
		NeedsPayment:  s.NeedsPayment(),
	}
}
