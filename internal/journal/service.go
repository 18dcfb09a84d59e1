// Package journal implements the application controller: the single owner
// of journal state. The core packages (ledger, metrics, query, review) are
// pure; this service threads state through them, persists every change
// best-effort, and feeds the review monitor after each mutation.
package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"crypto-journal/internal/audit"
	"crypto-journal/internal/backup"
	"crypto-journal/internal/errors"
	"crypto-journal/internal/ledger"
	"crypto-journal/internal/logging"
	"crypto-journal/internal/metrics"
	"crypto-journal/internal/models"
	"crypto-journal/internal/query"
	"crypto-journal/internal/review"
	"crypto-journal/internal/store"
)

// View is one rendered page of the trade list.
type View struct {
	Trades        []models.Trade // the page slice, sorted
	Page          int
	TotalPages    int
	TotalCount    int
	FilteredCount int
	FilterActive  bool
	Metrics       metrics.Metrics // metrics over the filtered set, capital ignored
}

// Service owns all journal state for a session.
type Service struct {
	log      zerolog.Logger
	repo     *store.Repository
	provider audit.Provider
	monitor  *review.Monitor

	trades           []models.Trade
	audits           []models.Audit
	strategies       []models.Strategy
	activeStrategyID string
	initialCapital   float64
	settings         models.Settings

	filter query.Filter
	sort   query.Sort
	page   int

	// Filtered/sorted results are memoized per (mutation, filter, sort).
	version  uint64
	cache    []models.Trade
	cacheKey cacheKey
}

type cacheKey struct {
	version uint64
	filter  query.Filter
	sort    query.Sort
	valid   bool
}

// NewService loads persisted state and builds the controller. Trades are
// re-sorted and renumbered on load so a stale or hand-edited store can
// never violate the id invariant.
func NewService(repo *store.Repository, provider audit.Provider, log zerolog.Logger) *Service {
	state := repo.LoadState()
	return &Service{
		log:              log,
		repo:             repo,
		provider:         provider,
		monitor:          review.NewMonitor(state.DismissedUntil),
		trades:           ledger.Renumber(state.Trades),
		audits:           state.Audits,
		strategies:       state.Strategies,
		activeStrategyID: state.ActiveStrategyID,
		initialCapital:   state.InitialCapital,
		settings:         state.Settings,
		sort:             query.DefaultSort(),
		page:             1,
	}
}

// Trades returns a copy of the full trade collection.
func (s *Service) Trades() []models.Trade {
	out := make([]models.Trade, len(s.trades))
	copy(out, s.trades)
	return out
}

// InitialCapital returns the configured starting capital.
func (s *Service) InitialCapital() float64 { return s.initialCapital }

// Settings returns the current journal settings.
func (s *Service) Settings() models.Settings { return s.settings }

// OpenTrade records a new open position and returns any review prompt the
// addition triggered.
func (s *Service) OpenTrade(draft models.Trade) *review.Prompt {
	s.setTrades(ledger.Open(s.trades, draft))
	logging.LogTrade(s.log, "open", draft.Asset, len(s.trades))
	return s.observe()
}

// CompleteTrade records a finished position with derived pnl.
func (s *Service) CompleteTrade(draft models.Trade) *review.Prompt {
	s.setTrades(ledger.Complete(s.trades, draft))
	logging.LogTrade(s.log, "add", draft.Asset, len(s.trades))
	return s.observe()
}

// CloseTrade completes an existing open position at the given exit price.
func (s *Service) CloseTrade(id int, exitPrice float64) (models.Trade, error) {
	trade, err := ledger.Find(s.trades, id)
	if err != nil {
		return models.Trade{}, err
	}
	trade.ExitPrice = &exitPrice
	trade.Status = models.StatusClosed
	pnl := ledger.DerivePnL(trade.Direction, trade.EntryPrice, exitPrice, trade.Size)
	trade.PnL = &pnl
	if err := s.UpdateTrade(trade); err != nil {
		return models.Trade{}, err
	}
	return trade, nil
}

// UpdateTrade replaces the trade matching the given id.
func (s *Service) UpdateTrade(updated models.Trade) error {
	trades, err := ledger.Update(s.trades, updated)
	if err != nil {
		return err
	}
	s.setTrades(trades)
	logging.LogTrade(s.log, "update", updated.Asset, len(s.trades))
	s.observe()
	return nil
}

// DeleteTrade removes a trade by id. Deletions never prompt.
func (s *Service) DeleteTrade(id int) error {
	deleted, err := ledger.Find(s.trades, id)
	if err != nil {
		return err
	}
	trades, err := ledger.Delete(s.trades, id)
	if err != nil {
		return err
	}
	s.setTrades(trades)
	logging.LogTrade(s.log, "delete", deleted.Asset, len(s.trades))
	s.observe()
	return nil
}

// FindTrade returns the trade with the given id.
func (s *Service) FindTrade(id int) (models.Trade, error) {
	return ledger.Find(s.trades, id)
}

// ImportTrades merges externally sourced closed trades into the ledger.
func (s *Service) ImportTrades(incoming []models.Trade) (int, *review.Prompt) {
	if len(incoming) == 0 {
		return 0, nil
	}
	s.setTrades(ledger.Import(s.trades, incoming))
	return len(incoming), s.observe()
}

// DismissPrompt records a dismiss-with-memory response.
func (s *Service) DismissPrompt(p *review.Prompt) {
	s.monitor.Dismiss(p)
	s.repo.SaveDismissedUntil(s.monitor.DismissedUntil())
}

// SetInitialCapital stores a new starting capital.
func (s *Service) SetInitialCapital(capital float64) {
	s.initialCapital = capital
	s.repo.SaveInitialCapital(capital)
}

// UpdateSettings replaces the journal settings.
func (s *Service) UpdateSettings(settings models.Settings) {
	s.settings = settings
	s.repo.SaveSettings(settings)
}

// Dashboard computes metrics over the whole collection.
func (s *Service) Dashboard() metrics.Metrics {
	return metrics.Compute(s.trades, s.initialCapital)
}

// SetFilter replaces the view filter. Any change resets the page to 1.
func (s *Service) SetFilter(f query.Filter) {
	if f != s.filter {
		s.page = 1
	}
	s.filter = f
}

// ResetFilter clears the view filter and resets the page.
func (s *Service) ResetFilter() {
	s.SetFilter(query.Filter{})
}

// SetSort replaces the sort spec. Any change resets the page to 1.
func (s *Service) SetSort(sort query.Sort) {
	if sort != s.sort {
		s.page = 1
	}
	s.sort = sort
}

// SetPage selects the 1-indexed page for the next view.
func (s *Service) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	s.page = page
}

// TradeView renders the current page of the trade list: filter, sort,
// paginate, plus metrics over the filtered subset.
func (s *Service) TradeView() View {
	filtered := s.filteredSorted()

	totalPages := query.TotalPages(len(filtered), query.PageSize)
	page := s.page
	// A mutation can shrink the collection under a stored page number;
	// clamp instead of showing an empty out-of-range slice.
	if totalPages > 0 && page > totalPages {
		page = totalPages
		s.page = page
	}

	return View{
		Trades:        query.Paginate(filtered, page, query.PageSize),
		Page:          page,
		TotalPages:    totalPages,
		TotalCount:    len(s.trades),
		FilteredCount: len(filtered),
		FilterActive:  s.filter.IsActive(),
		Metrics:       metrics.Compute(filtered, 0),
	}
}

// Filter returns the active filter spec.
func (s *Service) Filter() query.Filter { return s.filter }

// Sort returns the active sort spec.
func (s *Service) Sort() query.Sort { return s.sort }

// RunAudit calls the external audit provider over the full trade history
// and appends the assessment to the audit log. A provider failure is
// returned as-is and records nothing.
func (s *Service) RunAudit(ctx context.Context) (models.Audit, error) {
	if s.provider == nil {
		return models.Audit{}, errors.ErrNoAuditProvider
	}
	if len(s.trades) == 0 {
		return models.Audit{}, errors.ErrNoTrades
	}

	strategy := s.ActiveStrategy()
	result, err := s.provider.RunAudit(ctx, s.Trades(), strategy)
	if err != nil {
		return models.Audit{}, err
	}

	strategyName := "Default"
	if strategy != nil {
		strategyName = strategy.Name
	}
	entry := models.Audit{
		ID:   uuid.NewString(),
		Date: time.Now().UTC().Format(time.RFC3339),
		Parameters: models.AuditParameters{
			TradeCount:   len(s.trades),
			DateRange:    s.dateRange(),
			StrategyName: strategyName,
		},
		Result: result,
	}

	s.audits = append([]models.Audit{entry}, s.audits...)
	s.repo.SaveAudits(s.audits)
	return entry, nil
}

// Audits returns the audit history, newest first.
func (s *Service) Audits() []models.Audit {
	out := make([]models.Audit, len(s.audits))
	copy(out, s.audits)
	return out
}

// Strategies returns the saved strategies.
func (s *Service) Strategies() []models.Strategy {
	out := make([]models.Strategy, len(s.strategies))
	copy(out, s.strategies)
	return out
}

// ActiveStrategy returns the active strategy, or nil when none is set.
func (s *Service) ActiveStrategy() *models.Strategy {
	for i := range s.strategies {
		if s.strategies[i].ID == s.activeStrategyID {
			st := s.strategies[i]
			return &st
		}
	}
	return nil
}

// SaveStrategy inserts or replaces a strategy and makes it active.
func (s *Service) SaveStrategy(strategy models.Strategy) models.Strategy {
	if strategy.ID == "" {
		strategy.ID = uuid.NewString()
	}
	replaced := false
	for i := range s.strategies {
		if s.strategies[i].ID == strategy.ID {
			s.strategies[i] = strategy
			replaced = true
			break
		}
	}
	if !replaced {
		s.strategies = append(s.strategies, strategy)
	}
	s.activeStrategyID = strategy.ID
	s.repo.SaveStrategies(s.strategies)
	s.repo.SaveActiveStrategy(s.activeStrategyID)
	return strategy
}

// DeleteStrategy removes a strategy; deleting the active one clears the
// active id.
func (s *Service) DeleteStrategy(id string) error {
	kept := s.strategies[:0]
	found := false
	for _, st := range s.strategies {
		if st.ID == id {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return errors.Wrapf(errors.ErrStrategyNotFound, "strategy %s", id)
	}
	s.strategies = kept
	if s.activeStrategyID == id {
		s.activeStrategyID = ""
	}
	s.repo.SaveStrategies(s.strategies)
	s.repo.SaveActiveStrategy(s.activeStrategyID)
	return nil
}

// SetActiveStrategy selects the strategy used as audit context; an empty
// id clears the selection.
func (s *Service) SetActiveStrategy(id string) error {
	if id != "" {
		found := false
		for _, st := range s.strategies {
			if st.ID == id {
				found = true
				break
			}
		}
		if !found {
			return errors.Wrapf(errors.ErrStrategyNotFound, "strategy %s", id)
		}
	}
	s.activeStrategyID = id
	s.repo.SaveActiveStrategy(id)
	return nil
}

// ExportBackup renders the current state as a backup bundle.
func (s *Service) ExportBackup() ([]byte, error) {
	return backup.Export(s.Trades(), s.initialCapital, s.Strategies(), s.activeStrategyID)
}

// RestoreBackup validates a bundle and replaces all journal state with it.
// Current state is untouched when validation fails.
func (s *Service) RestoreBackup(data []byte) (*review.Prompt, error) {
	bundle, err := backup.Parse(data)
	if err != nil {
		return nil, err
	}

	s.setTrades(ledger.Renumber(bundle.Trades))
	s.initialCapital = bundle.InitialCapital
	s.strategies = bundle.Strategies
	s.activeStrategyID = bundle.ActiveStrategyID

	s.repo.SaveInitialCapital(s.initialCapital)
	s.repo.SaveStrategies(s.strategies)
	s.repo.SaveActiveStrategy(s.activeStrategyID)

	return s.observe(), nil
}

// WipeAll deletes every trade, audit, strategy and persisted key.
func (s *Service) WipeAll() {
	s.trades = nil
	s.audits = nil
	s.strategies = nil
	s.activeStrategyID = ""
	s.initialCapital = 0
	s.settings = models.DefaultSettings()
	s.monitor = review.NewMonitor(nil)
	s.version++
	s.cacheKey.valid = false
	s.repo.Wipe()
	s.log.Info().Msg("All journal records deleted")
}

func (s *Service) setTrades(trades []models.Trade) {
	s.trades = trades
	s.version++
	s.cacheKey.valid = false
	s.repo.SaveTrades(s.trades)
}

// observe feeds the monitor after a mutation and persists its watermark,
// which may clear as a side effect of passing it.
func (s *Service) observe() *review.Prompt {
	before := s.monitor.DismissedUntil()
	prompt := s.monitor.Observe(s.trades, s.settings)
	after := s.monitor.DismissedUntil()
	if before != after {
		s.repo.SaveDismissedUntil(after)
	}
	if prompt != nil {
		logging.LogPrompt(s.log, string(prompt.Kind), prompt.TradeCount)
	}
	return prompt
}

func (s *Service) filteredSorted() []models.Trade {
	key := cacheKey{version: s.version, filter: s.filter, sort: s.sort, valid: true}
	if s.cacheKey == key {
		return s.cache
	}
	s.cache = query.ApplySort(query.ApplyFilters(s.trades, s.filter), s.sort)
	s.cacheKey = key
	return s.cache
}

func (s *Service) dateRange() string {
	if len(s.trades) == 0 {
		return ""
	}
	first := s.trades[0].Date
	last := s.trades[len(s.trades)-1].Date
	return fmt.Sprintf("%s - %s", first.Format("2006-01-02"), last.Format("2006-01-02"))
}
