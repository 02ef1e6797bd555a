// Package finance provides the types and operations of a personal finance
// ledger. It is local-first: the whole ledger is a single State, saved as one
// json blob through a Store after every change.
//
// The core functionalities include:
//   - Balances: a Cash and a Bank balance, never negative, always rounded to
//     two decimals.
//   - Records: incomes, expenses, money lent and money borrowed, each moving
//     one of the balances when added and reversing that move when deleted.
//   - Debt lifecycle: lent and borrowed debts are outstanding until repaid;
//     repaying a borrowed debt also records a "Debt Repayment" expense.
//   - Views: a Summary of totals and spending per category, and date sorted
//     lists of the records.
//   - Data Persistence: encoding and decoding of the State, compatible with
//     the files of the first releases.
//
// This package serves as the foundational logic for the `fin` command-line
// tool and its http server, ensuring that all operations are consistent and
// based on a single source of truth.
package finance
