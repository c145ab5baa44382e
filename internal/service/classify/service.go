// Package classify orchestrates imports, reclassification actions and
// report building over a transaction store. Every mutating call pushes a
// full pre-mutation snapshot so undo is a plain pop-and-replace.
package classify

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	"github.com/tallyfold/mis/internal/errs"
	"github.com/tallyfold/mis/internal/mis"
	"github.com/tallyfold/mis/internal/report"
	"github.com/tallyfold/mis/internal/rules"
	"github.com/tallyfold/mis/internal/sales"
	"github.com/tallyfold/mis/internal/taxonomy"
	"github.com/tallyfold/mis/internal/voucher"
)

// Repo defines read operations needed by the service.
type Repo interface {
	Transactions(ctx context.Context) ([]mis.Transaction, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (mis.Transaction, error)
	UserRules(ctx context.Context) ([]rules.Rule, error)
	SalesRegisters(ctx context.Context) ([]sales.ClassifiedRegister, error)
}

// Writer defines write operations needed by the service. The transaction
// collection is always replaced whole, never edited in place.
type Writer interface {
	ReplaceTransactions(ctx context.Context, txs []mis.Transaction) error
	AppendUserRule(ctx context.Context, r rules.Rule) error
	SaveSalesRegister(ctx context.Context, reg sales.ClassifiedRegister) error
	PushSnapshot(ctx context.Context, txs []mis.Transaction) error
	PopSnapshot(ctx context.Context) ([]mis.Transaction, bool, error)
}

// Service exposes the classification engine's operations.
type Service interface {
	ImportJournal(ctx context.Context, rows []mis.LedgerRow) (mis.ImportSummary, error)
	ImportSales(ctx context.Context, reg sales.Register) (sales.ClassifiedRegister, error)

	Transactions(ctx context.Context, status mis.Status) ([]mis.Transaction, error)
	Transaction(ctx context.Context, id uuid.UUID) (mis.Transaction, error)

	Classify(ctx context.Context, id uuid.UUID, head taxonomy.HeadID, subhead string) (mis.Transaction, error)
	ClassifyMultiple(ctx context.Context, ids []uuid.UUID, head taxonomy.HeadID, subhead string) (int, error)
	ApplySuggestion(ctx context.Context, id uuid.UUID) (mis.Transaction, error)
	ApplyToSimilar(ctx context.Context, pattern string, head taxonomy.HeadID, subhead string) (int, error)
	Ignore(ctx context.Context, id uuid.UUID, reason string) (mis.Transaction, error)
	ClearClassification(ctx context.Context, id uuid.UUID) (mis.Transaction, error)
	Undo(ctx context.Context) (int, error)

	Report(ctx context.Context) (report.Report, error)
	StateRollup(ctx context.Context) (report.StateRollup, error)
	Stats(ctx context.Context) (mis.Stats, error)
	RuleSet(ctx context.Context) (*rules.Set, error)
	AppendRule(ctx context.Context, pattern string, head taxonomy.HeadID, subhead string) error
}

// Options carry the configurable heuristics.
type Options struct {
	Currency     string
	SkipReceipts bool
	Sales        sales.Config
	// FileRules/FileIgnores come from the optional rules file and sit
	// between store-persisted user rules and the built-in defaults.
	FileRules   []rules.Rule
	FileIgnores []rules.IgnoreRule
}

type service struct {
	repo   Repo
	writer Writer
	opts   Options
	sales  *sales.Classifier
}

// New constructs the service.
func New(repo Repo, writer Writer, opts Options) Service {
	if opts.Currency == "" {
		opts.Currency = "INR"
	}
	return &service{
		repo:   repo,
		writer: writer,
		opts:   opts,
		sales:  sales.NewClassifier(opts.Sales),
	}
}

// RuleSet compiles the active ordered rule list: persisted user rules,
// then file rules, then built-in defaults.
func (s *service) RuleSet(ctx context.Context) (*rules.Set, error) {
	user, err := s.repo.UserRules(ctx)
	if err != nil {
		return nil, err
	}
	all := make([]rules.Rule, 0, len(user)+len(s.opts.FileRules))
	all = append(all, user...)
	all = append(all, s.opts.FileRules...)
	return rules.NewSet(all, s.opts.FileIgnores), nil
}

func (s *service) ImportJournal(ctx context.Context, rows []mis.LedgerRow) (mis.ImportSummary, error) {
	set, err := s.RuleSet(ctx)
	if err != nil {
		return mis.ImportSummary{}, err
	}
	vouchers, gstats := voucher.Group(rows)
	res := voucher.NewClassifier(set, s.opts.SkipReceipts, s.opts.Currency).ClassifyAll(vouchers)
	res.Summary.RowsSeen = gstats.RowsSeen
	res.Summary.RowsDropped = gstats.RowsDropped
	res.Summary.UndatedVouchers = gstats.Undated

	if err := s.append(ctx, res.Transactions); err != nil {
		return mis.ImportSummary{}, err
	}
	return res.Summary, nil
}

func (s *service) ImportSales(ctx context.Context, reg sales.Register) (sales.ClassifiedRegister, error) {
	cr := s.sales.ClassifyRegister(reg)
	txs := sales.Transactions(reg, cr, s.opts.Currency)
	if err := s.append(ctx, txs); err != nil {
		return sales.ClassifiedRegister{}, err
	}
	if err := s.writer.SaveSalesRegister(ctx, cr); err != nil {
		return sales.ClassifiedRegister{}, err
	}
	return cr, nil
}

func (s *service) Transactions(ctx context.Context, status mis.Status) ([]mis.Transaction, error) {
	txs, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return txs, nil
	}
	out := make([]mis.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (s *service) Transaction(ctx context.Context, id uuid.UUID) (mis.Transaction, error) {
	return s.repo.TransactionByID(ctx, id)
}

func (s *service) Classify(ctx context.Context, id uuid.UUID, head taxonomy.HeadID, subhead string) (mis.Transaction, error) {
	if err := validateTarget(head, subhead); err != nil {
		return mis.Transaction{}, err
	}
	return s.mutateOne(ctx, id, func(tx *mis.Transaction) {
		setClassification(tx, head, subhead)
	})
}

func (s *service) ClassifyMultiple(ctx context.Context, ids []uuid.UUID, head taxonomy.HeadID, subhead string) (int, error) {
	if err := validateTarget(head, subhead); err != nil {
		return 0, err
	}
	wanted := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	return s.mutate(ctx, func(txs []mis.Transaction) int {
		n := 0
		for i := range txs {
			if _, ok := wanted[txs[i].ID]; ok {
				setClassification(&txs[i], head, subhead)
				n++
			}
		}
		return n
	})
}

func (s *service) ApplySuggestion(ctx context.Context, id uuid.UUID) (mis.Transaction, error) {
	tx, err := s.repo.TransactionByID(ctx, id)
	if err != nil {
		return mis.Transaction{}, err
	}
	if tx.Status != mis.StatusSuggested || tx.SuggestedHead == "" || tx.SuggestedSubhead == "" {
		return mis.Transaction{}, errs.ErrUnprocessable
	}
	return s.mutateOne(ctx, id, func(tx *mis.Transaction) {
		setClassification(tx, tx.SuggestedHead, tx.SuggestedSubhead)
	})
}

// ApplyToSimilar appends a user rule and classifies every unresolved
// transaction whose account or party matches the pattern. Transactions
// the operator already classified are left alone.
func (s *service) ApplyToSimilar(ctx context.Context, pattern string, head taxonomy.HeadID, subhead string) (int, error) {
	if err := validateTarget(head, subhead); err != nil {
		return 0, err
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return 0, errs.ErrBadPattern
	}
	if err := s.writer.AppendUserRule(ctx, rules.Rule{
		Pattern: pattern, Head: head, Subhead: subhead, Source: rules.SourceUser,
	}); err != nil {
		return 0, err
	}
	return s.mutate(ctx, func(txs []mis.Transaction) int {
		n := 0
		for i := range txs {
			tx := &txs[i]
			if tx.Status != mis.StatusUnclassified && tx.Status != mis.StatusSuggested {
				continue
			}
			if re.MatchString(tx.Account) || (tx.Party != "" && re.MatchString(tx.Party)) {
				setClassification(tx, head, subhead)
				n++
			}
		}
		return n
	})
}

// AppendRule persists a user rule without touching existing
// transactions. It takes effect on the next import or ApplyToSimilar.
func (s *service) AppendRule(ctx context.Context, pattern string, head taxonomy.HeadID, subhead string) error {
	if err := validateTarget(head, subhead); err != nil {
		return err
	}
	if err := rules.CompilePattern(pattern); err != nil {
		return errs.ErrBadPattern
	}
	return s.writer.AppendUserRule(ctx, rules.Rule{
		Pattern: pattern, Head: head, Subhead: subhead, Source: rules.SourceUser,
	})
}

func (s *service) Ignore(ctx context.Context, id uuid.UUID, reason string) (mis.Transaction, error) {
	if reason == "" {
		reason = "Manually ignored"
	}
	return s.mutateOne(ctx, id, func(tx *mis.Transaction) {
		tx.Status = mis.StatusIgnored
		tx.Head = taxonomy.HeadIgnore
		tx.Subhead = reason
		tx.SuggestedHead = ""
		tx.SuggestedSubhead = ""
		tx.AutoIgnored = false
	})
}

func (s *service) ClearClassification(ctx context.Context, id uuid.UUID) (mis.Transaction, error) {
	return s.mutateOne(ctx, id, func(tx *mis.Transaction) {
		tx.Status = mis.StatusUnclassified
		tx.Head = ""
		tx.Subhead = ""
		tx.SuggestedHead = ""
		tx.SuggestedSubhead = ""
		tx.AutoIgnored = false
	})
}

func (s *service) Undo(ctx context.Context) (int, error) {
	snap, ok, err := s.writer.PopSnapshot(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errs.ErrNoHistory
	}
	if err := s.writer.ReplaceTransactions(ctx, snap); err != nil {
		return 0, err
	}
	return len(snap), nil
}

func (s *service) Report(ctx context.Context) (report.Report, error) {
	txs, err := s.repo.Transactions(ctx)
	if err != nil {
		return report.Report{}, err
	}
	return report.Build(txs), nil
}

func (s *service) StateRollup(ctx context.Context) (report.StateRollup, error) {
	regs, err := s.repo.SalesRegisters(ctx)
	if err != nil {
		return report.StateRollup{}, err
	}
	return report.BuildStateRollup(s.opts.Sales.TransferOriginState, regs), nil
}

func (s *service) Stats(ctx context.Context) (mis.Stats, error) {
	txs, err := s.repo.Transactions(ctx)
	if err != nil {
		return mis.Stats{}, err
	}
	st := mis.Stats{
		Total:    len(txs),
		ByStatus: make(map[mis.Status]int),
		ByHead:   make(map[taxonomy.HeadID]int),
	}
	for _, tx := range txs {
		st.ByStatus[tx.Status]++
		if tx.Head != "" {
			st.ByHead[tx.Head]++
		}
	}
	return st, nil
}

// append snapshots the current collection and appends new transactions.
func (s *service) append(ctx context.Context, txs []mis.Transaction) error {
	if len(txs) == 0 {
		return nil
	}
	cur, err := s.repo.Transactions(ctx)
	if err != nil {
		return err
	}
	if err := s.writer.PushSnapshot(ctx, cur); err != nil {
		return err
	}
	next := make([]mis.Transaction, 0, len(cur)+len(txs))
	next = append(next, cur...)
	next = append(next, txs...)
	return s.writer.ReplaceTransactions(ctx, next)
}

// mutate applies fn to a copy of the collection and, when fn touched
// anything, snapshots the prior collection and replaces it whole. A
// no-op mutation leaves the undo stack alone.
func (s *service) mutate(ctx context.Context, fn func([]mis.Transaction) int) (int, error) {
	cur, err := s.repo.Transactions(ctx)
	if err != nil {
		return 0, err
	}
	next := make([]mis.Transaction, len(cur))
	copy(next, cur)
	n := fn(next)
	if n == 0 {
		return 0, nil
	}
	if err := s.writer.PushSnapshot(ctx, cur); err != nil {
		return 0, err
	}
	if err := s.writer.ReplaceTransactions(ctx, next); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *service) mutateOne(ctx context.Context, id uuid.UUID, apply func(*mis.Transaction)) (mis.Transaction, error) {
	var out mis.Transaction
	found := false
	_, err := s.mutate(ctx, func(txs []mis.Transaction) int {
		for i := range txs {
			if txs[i].ID == id {
				apply(&txs[i])
				out = txs[i]
				found = true
				return 1
			}
		}
		return 0
	})
	if err != nil {
		return mis.Transaction{}, err
	}
	if !found {
		return mis.Transaction{}, errs.ErrNotFound
	}
	return out, nil
}

func setClassification(tx *mis.Transaction, head taxonomy.HeadID, subhead string) {
	tx.Status = mis.StatusClassified
	tx.Head = head
	tx.Subhead = subhead
	tx.SuggestedHead = ""
	tx.SuggestedSubhead = ""
	tx.AutoIgnored = false
}

func validateTarget(head taxonomy.HeadID, subhead string) error {
	if !taxonomy.Valid(head) {
		return errs.ErrUnknownHead
	}
	if !taxonomy.HasSubhead(head, subhead) {
		return errs.ErrUnknownSubhead
	}
	return nil
}
