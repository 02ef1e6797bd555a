package finance

import "fmt"

// DebtRepaymentCategory is the category of the expense recorded when a borrowed debt is repaid.
const DebtRepaymentCategory = "Debt Repayment"

// outstandingDebt returns the index of the outstanding debt id in collection c of s.
func outstandingDebt(s *State, c Collection, id string) (int, error) {
	debts := *s.debts(c)
	i := indexByID(debts, id, debtID)
	if i < 0 {
		return -1, &NotFoundError{Collection: c, ID: id, Reason: "missing"}
	}
	if debts[i].Status == Repaid {
		return -1, &NotFoundError{Collection: c, ID: id, Reason: "already repaid"}
	}
	return i, nil
}

// RepayLent marks the lent debt id as repaid and credits the repaid amount to via.
func (l *Ledger) RepayLent(id string, via Account) (Result, error) {
	if err := validAccount(via); err != nil {
		return Result{}, err
	}
	next := l.state.Clone()
	i, err := outstandingDebt(&next, Lent, id)
	if err != nil {
		return Result{}, err
	}
	d := next.Lent[i]
	next.credit(via, d.Amount)
	next.Lent[i].Status = Repaid

	return l.commit(next, Result{
		ID:      id,
		Summary: fmt.Sprintf("Repayment of %s from %s added to %s balance!", l.fmt.Format(d.Amount), d.Name, via.Label()),
	})
}

// RepayBorrowed pays back the borrowed debt id from via.
//
// The payment is recorded as an expense in the DebtRepaymentCategory, so that
// it shows in the spending breakdown. Marking the debt, debiting via and
// recording the expense happen together or not at all.
func (l *Ledger) RepayBorrowed(id string, via Account) (Result, error) {
	if err := validAccount(via); err != nil {
		return Result{}, err
	}
	next := l.state.Clone()
	i, err := outstandingDebt(&next, Borrowed, id)
	if err != nil {
		return Result{}, err
	}
	d := next.Borrowed[i]
	if err := next.canDebit(via, d.Amount); err != nil {
		return Result{}, err
	}

	ex := Expense{
		ID:       l.newID(),
		Amount:   d.Amount,
		Date:     l.today(),
		Category: DebtRepaymentCategory,
		Location: d.Name,
		Remark:   "Debt Repayment to " + d.Name,
		Account:  via,
	}
	next.Expenses = append(next.Expenses, ex)
	next.debit(via, d.Amount)
	next.Borrowed[i].Status = Repaid

	return l.commit(next, Result{
		ID:      id,
		Summary: fmt.Sprintf("Debt to %s repaid and %s deducted from %s.", d.Name, l.fmt.Format(d.Amount), via.Label()),
	})
}
