package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/analytics"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/auth"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/cache"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/domain"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/importer"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/repository"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/scenario"
	"github.com/andresuchdata/supplychain-whatif/backend-go/internal/telemetry"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrDuplicateNode   = errors.New("node id already exists")
	ErrInvalidNode     = errors.New("node payload does not match its kind")
	ErrNotLoaded       = errors.New("company list not loaded yet")
)

// flushTimeout bounds the final write when persistence shuts down
const flushTimeout = 10 * time.Second

// Options carries the optional collaborators of NetworkService. Nil fields
// fall back to no-op or default implementations.
type Options struct {
	Cache      cache.ForecastCache
	Summarizer Summarizer
	Importer   *importer.Importer
	Metrics    *telemetry.Registry
	Admin      auth.Admin
}

// NetworkService owns the company list. Every mutation goes through Dispatch,
// one at a time; persistence runs asynchronously behind it.
type NetworkService struct {
	mu        sync.Mutex
	companies []domain.Company
	loaded    bool

	// revision counts applied actions; revisions holds the value at which
	// each company last changed
	revision  uint64
	revisions map[string]uint64

	repo       repository.CompanyRepository
	reducer    *scenario.Reducer
	recalc     scenario.Recalculator
	cache      cache.ForecastCache
	summarizer Summarizer
	importer   *importer.Importer
	metrics    *telemetry.Registry
	admin      auth.Admin

	// pending holds at most one snapshot; a newer one replaces it
	pending chan []domain.Company
}

func NewNetworkService(repo repository.CompanyRepository, opts Options) *NetworkService {
	if opts.Cache == nil {
		opts.Cache = cache.NewNoopForecastCache()
	}
	if opts.Summarizer == nil {
		opts.Summarizer = RuleSummarizer{}
	}
	if opts.Importer == nil {
		opts.Importer = importer.New()
	}
	if opts.Metrics == nil {
		opts.Metrics = telemetry.NewRegistry()
	}

	recalc := scenario.Recalculator(telemetry.TimeRecalculate(opts.Metrics, analytics.RecalculateAllMetrics))

	return &NetworkService{
		companies:  []domain.Company{},
		revisions:  map[string]uint64{},
		repo:       repo,
		reducer:    scenario.NewReducer(recalc),
		recalc:     recalc,
		cache:      opts.Cache,
		summarizer: opts.Summarizer,
		importer:   opts.Importer,
		metrics:    opts.Metrics,
		admin:      opts.Admin,
		pending:    make(chan []domain.Company, 1),
	}
}

// Recalculate exposes the instrumented derivation function
func (s *NetworkService) Recalculate(data domain.ScenarioData) domain.ScenarioData {
	return s.recalc(data)
}

// Load reads the stored list and installs it with SET_COMPANIES. Writes are
// suppressed until this completes so an empty state never overwrites the store.
func (s *NetworkService) Load(ctx context.Context) error {
	companies, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("error loading companies: %w", err)
	}

	s.mu.Lock()
	load := scenario.SetCompanies{Companies: companies}
	next, _ := s.reducer.Reduce(s.companies, load)
	s.companies = next
	s.bumpLocked(load)
	s.loaded = true
	s.metrics.Companies.Set(float64(len(next)))
	s.mu.Unlock()

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("network service: cache invalidate failed")
	}
	log.Info().Int("count", len(companies)).Msg("company list loaded")
	return nil
}

// Ready reports ErrNotLoaded until Load has completed
func (s *NetworkService) Ready() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

// Dispatch applies one action and reports whether state changed
func (s *NetworkService) Dispatch(ctx context.Context, action scenario.Action) bool {
	s.mu.Lock()
	applied := s.dispatchLocked(action)
	s.mu.Unlock()

	if applied {
		s.invalidate(ctx, action)
	}
	return applied
}

// dispatchLocked must be called with s.mu held
func (s *NetworkService) dispatchLocked(action scenario.Action) bool {
	next, applied := s.reducer.Reduce(s.companies, action)
	s.metrics.RecordAction(string(action.Type()), applied)
	if !applied {
		return false
	}

	s.companies = next
	s.bumpLocked(action)
	s.metrics.Companies.Set(float64(len(next)))
	if s.loaded {
		s.enqueue(domain.CloneCompanies(next))
	}
	return true
}

// bumpLocked advances the revision of every company the action touched
func (s *NetworkService) bumpLocked(action scenario.Action) {
	s.revision++
	switch a := action.(type) {
	case scenario.CompanyAction:
		s.revisions[a.TargetCompany()] = s.revision
	case scenario.AddCompany:
		s.revisions[a.Company.ID] = s.revision
	case scenario.DeleteCompany:
		delete(s.revisions, a.CompanyID)
	default:
		s.revisions = make(map[string]uint64, len(s.companies))
		for _, c := range s.companies {
			s.revisions[c.ID] = s.revision
		}
	}
}

// enqueue replaces any snapshot still waiting to be written
func (s *NetworkService) enqueue(snapshot []domain.Company) {
	select {
	case s.pending <- snapshot:
		return
	default:
	}
	select {
	case <-s.pending:
	default:
	}
	s.pending <- snapshot
}

func (s *NetworkService) invalidate(ctx context.Context, action scenario.Action) {
	var err error
	switch a := action.(type) {
	case scenario.CompanyAction:
		err = s.cache.Invalidate(ctx, a.TargetCompany())
	case scenario.AddCompany:
		err = s.cache.Invalidate(ctx, a.Company.ID)
	case scenario.DeleteCompany:
		err = s.cache.Invalidate(ctx, a.CompanyID)
	default:
		err = s.cache.InvalidateAll(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Str("action", string(action.Type())).Msg("network service: cache invalidate failed")
	}
}

// RunPersistence writes queued snapshots until ctx is done, then flushes the
// last one. Failures are logged and counted; there is no retry.
func (s *NetworkService) RunPersistence(ctx context.Context) {
	for {
		select {
		case snapshot := <-s.pending:
			s.write(ctx, snapshot)
		case <-ctx.Done():
			select {
			case snapshot := <-s.pending:
				flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
				s.write(flushCtx, snapshot)
				cancel()
			default:
			}
			return
		}
	}
}

func (s *NetworkService) write(ctx context.Context, snapshot []domain.Company) {
	err := s.repo.ReplaceAll(ctx, snapshot)
	s.metrics.RecordPersist(err)
	if err != nil {
		log.Error().Err(err).Int("count", len(snapshot)).Msg("network service: persist companies failed")
		return
	}
	log.Debug().Int("count", len(snapshot)).Msg("companies persisted")
}

// Companies returns a deep copy of the current list
func (s *NetworkService) Companies() []domain.Company {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneCompanies(s.companies)
}

// Company returns a deep copy of one company
func (s *NetworkService) Company(id string) (domain.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.findLocked(id)
	if !ok {
		return domain.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return c.Clone(), nil
}

// snapshot returns a deep copy of one company with its current revision
func (s *NetworkService) snapshot(id string) (domain.Company, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.findLocked(id)
	if !ok {
		return domain.Company{}, 0, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return c.Clone(), s.revisions[id], nil
}

func (s *NetworkService) findLocked(id string) (domain.Company, bool) {
	for _, c := range s.companies {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Company{}, false
}

// Apply dispatches a company action and returns the company afterwards. A
// no-op action on an existing company is not an error.
func (s *NetworkService) Apply(ctx context.Context, action scenario.CompanyAction) (domain.Company, error) {
	s.mu.Lock()
	if _, ok := s.findLocked(action.TargetCompany()); !ok {
		s.mu.Unlock()
		return domain.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, action.TargetCompany())
	}
	applied := s.dispatchLocked(action)
	updated, _ := s.findLocked(action.TargetCompany())
	updated = updated.Clone()
	s.mu.Unlock()

	if applied {
		s.invalidate(ctx, action)
	}
	return updated, nil
}

// AddNode rejects ids already used by any node of the company
func (s *NetworkService) AddNode(ctx context.Context, companyID string, node domain.Node) (domain.Company, error) {
	if !node.Valid() {
		return domain.Company{}, ErrInvalidNode
	}

	s.mu.Lock()
	c, ok := s.findLocked(companyID)
	if !ok {
		s.mu.Unlock()
		return domain.Company{}, fmt.Errorf("%w: %s", ErrCompanyNotFound, companyID)
	}
	if _, exists := c.Data.FindNode(node.ID()); exists {
		s.mu.Unlock()
		return domain.Company{}, fmt.Errorf("%w: %s", ErrDuplicateNode, node.ID())
	}
	action := scenario.AddNode{CompanyID: companyID, Node: node}
	s.dispatchLocked(action)
	updated, _ := s.findLocked(companyID)
	updated = updated.Clone()
	s.mu.Unlock()

	s.invalidate(ctx, action)
	return updated, nil
}

// DeleteCompany removes a company, reporting ErrCompanyNotFound when absent
func (s *NetworkService) DeleteCompany(ctx context.Context, id string) error {
	if !s.Dispatch(ctx, scenario.DeleteCompany{CompanyID: id}) {
		return fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return nil
}

// ReplaceCompanies swaps the whole list, as a snapshot restore does
func (s *NetworkService) ReplaceCompanies(ctx context.Context, companies []domain.Company) {
	s.Dispatch(ctx, scenario.SetCompanies{Companies: companies})
}

// NewCompany is the input for CreateCompany
type NewCompany struct {
	Name        string
	Description string
	Scenario    domain.Scenario
	Data        domain.ScenarioData
}

// CreateCompany derives metrics for raw network data and adds the company
func (s *NetworkService) CreateCompany(ctx context.Context, in NewCompany) (domain.Company, error) {
	if in.Scenario == "" {
		in.Scenario = domain.ScenarioNormal
	}
	if in.Data.NetworkName == "" {
		in.Data.NetworkName = in.Name + " Network"
	}
	c := domain.Company{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Scenario:    in.Scenario,
		Data:        in.Data.Clone(),
	}
	return s.addPrepared(ctx, c), nil
}

// ImportWorkbook parses a spreadsheet into a company and adds it
func (s *NetworkService) ImportWorkbook(ctx context.Context, r io.Reader) (domain.Company, error) {
	c, err := s.importer.Parse(r)
	if err != nil {
		return domain.Company{}, fmt.Errorf("error importing workbook: %w", err)
	}
	return s.addPrepared(ctx, c), nil
}

// addPrepared runs the derivation once, lets the summarizer rewrite the
// description and dispatches ADD_COMPANY
func (s *NetworkService) addPrepared(ctx context.Context, c domain.Company) domain.Company {
	c.Data = s.recalc(c.Data)
	c.BaseData = c.Data.Clone()

	if summary, err := s.summarizer.Summarize(ctx, c); err != nil {
		log.Warn().Err(err).Str("company_id", c.ID).Msg("network service: summarizer failed, keeping description")
	} else if summary != "" {
		c.Description = summary
	}

	s.Dispatch(ctx, scenario.AddCompany{Company: c})
	return c.Clone()
}

// Login authenticates against the administrator pair and node credentials
func (s *NetworkService) Login(username, password string) (auth.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return auth.Authenticate(s.admin, s.companies, username, password)
}
