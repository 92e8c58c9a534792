package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/mnakagawa/kakei/internal/models"
	"github.com/mnakagawa/kakei/internal/storage"
)

// Repository persists the ledger through a storage.RowStore.
//
// Adding an expense uses AppendRows rather than rewriting the whole table;
// on the SQLite and Postgres backends that makes concurrent adds safe,
// which the original whole-table-rewrite design was not. Clearing still
// replaces the table, as that is the operation's meaning.
type Repository struct {
	store storage.RowStore
}

// NewRepository creates a Repository over the given store.
func NewRepository(store storage.RowStore) *Repository {
	return &Repository{store: store}
}

// Load reads the full ledger. Any read or parse failure degrades to an
// empty ledger with a warning; reads never surface hard errors.
func (r *Repository) Load(ctx context.Context) *Ledger {
	rows, err := r.store.ReadAll(ctx, storage.LedgerTable())
	if err != nil {
		slog.Warn("Ledger read failed, starting from an empty table", "error", err)
		return New()
	}

	l := New()
	for _, row := range rows {
		e, err := expenseFromRow(row)
		if err != nil {
			slog.Warn("Ledger table malformed, starting from an empty table", "error", err)
			return New()
		}
		l.records = append(l.records, e)
	}
	return l
}

// Add appends one expense row to the backing table.
func (r *Repository) Add(ctx context.Context, e models.Expense) error {
	if e.Amount < 0 {
		return ErrNegativeAmount
	}
	return r.store.AppendRows(ctx, storage.LedgerTable(), []storage.Row{expenseToRow(e)})
}

// Clear replaces the backing table with an empty one (header only).
func (r *Repository) Clear(ctx context.Context) error {
	return r.store.ReplaceAll(ctx, storage.LedgerTable(), nil)
}

func expenseToRow(e models.Expense) storage.Row {
	return storage.Row{
		models.ColPerson:  e.Person,
		models.ColDate:    e.Date.Format(models.DateFormat),
		models.ColAmount:  strconv.FormatInt(e.Amount, 10),
		models.ColContent: e.Content,
		models.ColPlace:   e.Place,
	}
}

func expenseFromRow(row storage.Row) (models.Expense, error) {
	date, err := time.Parse(models.DateFormat, row[models.ColDate])
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad %s value %q: %w", models.ColDate, row[models.ColDate], err)
	}
	amount, err := strconv.ParseInt(row[models.ColAmount], 10, 64)
	if err != nil {
		return models.Expense{}, fmt.Errorf("bad %s value %q: %w", models.ColAmount, row[models.ColAmount], err)
	}
	if amount < 0 {
		return models.Expense{}, fmt.Errorf("bad %s value %q: %w", models.ColAmount, row[models.ColAmount], ErrNegativeAmount)
	}
	return models.Expense{
		Person:  row[models.ColPerson],
		Date:    date,
		Amount:  amount,
		Content: row[models.ColContent],
		Place:   row[models.ColPlace],
	}, nil
}
