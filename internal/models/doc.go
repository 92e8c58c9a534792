// Package models defines the core domain records for kakei.
//
// Three record kinds exist:
//   - Expense: one not-yet-settled spending entry attributed to one of the
//     two configured participants.
//   - Settlement: the archived outcome of closing out a period of expenses.
//   - Snapshot: one dated, multi-category asset total.
//
// The column name constants in this package are the headers of the
// spreadsheet tables the original data lives in. Stored data predates this
// service, so the names (including the Japanese ones) must stay bit-exact.
package models
