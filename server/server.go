// Package server exposes a finance.Ledger over http.
//
// Every command answers its Result, or an error object:
//
//	GET    /health
//	GET    /state                 the whole ledger, in its stored layout
//	GET    /summary               the dashboard, or markdown with ?format=markdown
//	GET    /{collection}          records, filtered by ?period=&date=&all=true
//	PUT    /balances              {"cash": 100, "bank": 20}
//	POST   /incomes               {"amount": 500, "date": "2025-07-01", "source": "Salary", "account": "bank"}
//	POST   /expenses              {"amount": 30, "category": "Grocery", "account": "cash"}
//	POST   /debts/{kind}          {"amount": 100, "name": "Alice"}, kind is lent or borrowed
//	DELETE /{collection}/{id}
//	POST   /{lent|borrowed}/{id}/repay   {"via": "bank"}
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/etnz/finance"
	"github.com/etnz/finance/config"
	"github.com/etnz/finance/date"
	"github.com/etnz/finance/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves a single Ledger. The Ledger is not safe for concurrent use,
// so requests are serialized.
type Server struct {
	mu         sync.Mutex
	ledger     *finance.Ledger
	categories config.Categories
}

// New returns the http handler serving l. categories colours the summary.
func New(l *finance.Ledger, categories config.Categories) http.Handler {
	s := &Server{ledger: l, categories: categories}
	return s.routes()
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/state", s.getState)
	r.Get("/summary", s.getSummary)
	r.Put("/balances", s.putBalances)
	r.Post("/incomes", s.postIncome)
	r.Post("/expenses", s.postExpense)
	r.Post("/debts/{kind}", s.postDebt)
	r.Get("/{collection}", s.getList)
	r.Delete("/{collection}/{id}", s.deleteRecord)
	r.Post("/{collection}/{id}/repay", s.repay)
	return r
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// ResultResponse is the body of every successful command.
type ResultResponse struct {
	ID      string `json:"id,omitempty"`
	Summary string `json:"summary"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: cannot write response: %v", err)
	}
}

// writeError maps err to its http status.
func writeError(w http.ResponseWriter, err error) {
	status, kind := http.StatusInternalServerError, "persistence"
	switch {
	case errors.Is(err, finance.ErrValidation):
		status, kind = http.StatusBadRequest, "validation"
	case errors.Is(err, finance.ErrInsufficientFunds):
		status, kind = http.StatusConflict, "insufficient_funds"
	case errors.Is(err, finance.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind})
}

// decode reads a json request body into v. A malformed body is a validation error.
func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &finance.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// answer writes the outcome of a ledger command.
func answer(w http.ResponseWriter, res finance.Result, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResultResponse{ID: res.ID, Summary: res.Summary})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	blob, err := finance.EncodeState(s.ledger.State())
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(blob)
}

func (s *Server) getSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d := renderer.NewDashboard(finance.NewSummary(s.ledger.State()), s.ledger.Formatter(), s.categories.Color)
	s.mu.Unlock()

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		fmt.Fprint(w, renderer.RenderSummary(d, renderer.SummaryRenderOptions{}))
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// filter reads the ?period=, ?date= and ?all= list parameters.
//
// The caller holds s.mu.
func (s *Server) filter(r *http.Request) (finance.Filter, error) {
	q := r.URL.Query()
	var f finance.Filter
	if all := q.Get("all"); all != "" {
		v, err := strconv.ParseBool(all)
		if err != nil {
			return f, &finance.ValidationError{Field: "all", Reason: err.Error()}
		}
		f.All = v
	}
	if p := q.Get("period"); p != "" {
		period, err := date.ParsePeriod(p)
		if err != nil {
			return f, &finance.ValidationError{Field: "period", Reason: err.Error()}
		}
		on := s.ledger.Today()
		if d := q.Get("date"); d != "" {
			if on, err = date.Parse(d); err != nil {
				return f, &finance.ValidationError{Field: "date", Reason: err.Error()}
			}
		}
		f.Range = period.Range(on)
	}
	return f, nil
}

func (s *Server) getList(w http.ResponseWriter, r *http.Request) {
	c, err := finance.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: "not_found"})
		return
	}
	s.mu.Lock()
	f, err := s.filter(r)
	st := s.ledger.State()
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	var list any
	switch c {
	case finance.Incomes:
		list = nonNil(st.IncomeList(f))
	case finance.Expenses:
		list = nonNil(st.ExpenseList(f))
	default:
		list = nonNil(st.DebtList(c, f))
	}
	writeJSON(w, http.StatusOK, list)
}

func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}

type balancesRequest struct {
	Cash *finance.Money `json:"cash"`
	Bank *finance.Money `json:"bank"`
}

func (s *Server) putBalances(w http.ResponseWriter, r *http.Request) {
	var req balancesRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.ledger.State()
	cash, bank := st.Cash, st.Bank
	if req.Cash != nil {
		cash = *req.Cash
	}
	if req.Bank != nil {
		bank = *req.Bank
	}
	res, err := s.ledger.SetBalances(cash, bank)
	answer(w, res, err)
}

type incomeRequest struct {
	Amount  finance.Money `json:"amount"`
	Date    date.Date     `json:"date"`
	Source  string        `json:"source"`
	Remark  string        `json:"remark"`
	Account string        `json:"account"`
}

func (s *Server) postIncome(w http.ResponseWriter, r *http.Request) {
	req := incomeRequest{Account: string(finance.Bank)}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	account, err := finance.ParseAccount(req.Account)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.ledger.AddIncome(finance.Income{
		Amount:  req.Amount,
		Date:    req.Date,
		Source:  req.Source,
		Remark:  req.Remark,
		Account: account,
	})
	answer(w, res, err)
}

type expenseRequest struct {
	Amount   finance.Money `json:"amount"`
	Date     date.Date     `json:"date"`
	Category string        `json:"category"`
	Location string        `json:"location"`
	Remark   string        `json:"remark"`
	Account  string        `json:"account"`
}

func (s *Server) postExpense(w http.ResponseWriter, r *http.Request) {
	req := expenseRequest{Account: string(finance.Cash)}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	account, err := finance.ParseAccount(req.Account)
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.ledger.AddExpense(finance.Expense{
		Amount:   req.Amount,
		Date:     req.Date,
		Category: req.Category,
		Location: req.Location,
		Remark:   req.Remark,
		Account:  account,
	})
	answer(w, res, err)
}

type debtRequest struct {
	Amount finance.Money `json:"amount"`
	Date   date.Date     `json:"date"`
	Name   string        `json:"name"`
	Remark string        `json:"remark"`
}

func (s *Server) postDebt(w http.ResponseWriter, r *http.Request) {
	kind, err := finance.ParseCollection(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req debtRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.ledger.AddDebt(kind, finance.Debt{
		Amount: req.Amount,
		Date:   req.Date,
		Name:   req.Name,
		Remark: req.Remark,
	})
	answer(w, res, err)
}

func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	c, err := finance.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		writeError(w, err)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.ledger.Delete(c, chi.URLParam(r, "id"))
	answer(w, res, err)
}

type repayRequest struct {
	Via string `json:"via"`
}

func (s *Server) repay(w http.ResponseWriter, r *http.Request) {
	c, err := finance.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		writeError(w, err)
		return
	}
	req := repayRequest{Via: string(finance.Cash)}
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}
	via, err := finance.ParseAccount(req.Via)
	if err != nil {
		writeError(w, err)
		return
	}
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()
	switch c {
	case finance.Lent:
		res, err := s.ledger.RepayLent(id, via)
		answer(w, res, err)
	case finance.Borrowed:
		res, err := s.ledger.RepayBorrowed(id, via)
		answer(w, res, err)
	default:
		writeError(w, &finance.ValidationError{Field: "collection", Reason: fmt.Sprintf("%s records cannot be repaid", c)})
	}
}

// ListenAndServe serves h on addr until ctx is done, then shuts down gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving ledger on http://%s", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Println("server stopped")
	return nil
}
