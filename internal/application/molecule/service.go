// Package molecule provides the application-level service for fragment
// enumeration. It sits between the HTTP and CLI front ends and the domain
// logic, validating input and turning domain results into wire types.
package molecule

import (
	"context"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	domainMol "github.com/turtacn/FragSAR/internal/domain/molecule"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// Service defines the interface for enumeration operations.
type Service interface {
	Enumerate(ctx context.Context, input *EnumerateInput) (*EnumerateResult, error)
	Describe(ctx context.Context, smiles string) (*moltypes.DescriptorRow, error)
	ListGroups(ctx context.Context) []moltypes.Group
}

// EnumerateInput contains input for an enumeration.
type EnumerateInput struct {
	SMILES string
	// Groups selects fragment tags. nil means every tag; an empty slice
	// means none.
	Groups []string
	// Limit caps the number of products. nil selects the configured default.
	Limit *int
}

// EnumerateResult is the outcome of a successful enumeration.
type EnumerateResult struct {
	Rows  []moltypes.DescriptorRow
	Stats domainMol.Stats
}

// Config tunes the service.
type Config struct {
	DefaultLimit    int
	MaxLimit        int
	DescribeWorkers int
}

func (c Config) withDefaults() Config {
	if c.DefaultLimit <= 0 {
		c.DefaultLimit = moltypes.DefaultLimit
	}
	if c.MaxLimit <= 0 {
		c.MaxLimit = 10000
	}
	if c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = c.MaxLimit
	}
	if c.DescribeWorkers <= 0 {
		c.DescribeWorkers = runtime.GOMAXPROCS(0)
	}
	return c
}

// serviceImpl implements the Service interface.
type serviceImpl struct {
	cfg        Config
	toolkit    domainMol.Toolkit
	table      *domainMol.FragmentTable
	enumerator *domainMol.Enumerator
	describer  *domainMol.Describer
	metrics    *prometheus.AppMetrics
	logger     logging.Logger
}

// NewService creates a new enumeration service. metrics may be nil.
func NewService(cfg Config, tk domainMol.Toolkit, table *domainMol.FragmentTable, metrics *prometheus.AppMetrics, logger logging.Logger) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if metrics != nil {
		metrics.FragmentTableSize.WithLabelValues().Set(float64(table.Len()))
	}
	return &serviceImpl{
		cfg:        cfg.withDefaults(),
		toolkit:    tk,
		table:      table,
		enumerator: domainMol.NewEnumerator(tk, logger.Named("enumerator")),
		describer:  domainMol.NewDescriber(tk),
		metrics:    metrics,
		logger:     logger,
	}
}

func (s *serviceImpl) Enumerate(ctx context.Context, input *EnumerateInput) (*EnumerateResult, error) {
	start := time.Now()
	res, sample, err := s.enumerate(ctx, input)
	if err != nil {
		code := errors.GetCode(err)
		if code == errors.CodeUnknown {
			err = errors.Wrap(err, errors.ErrCodeEnumerationFailed, "enumeration failed")
			code = errors.ErrCodeEnumerationFailed
		}
		sample.Outcome = outcomeFor(err)
		s.metrics.RecordEnumeration(sample)
		s.metrics.RecordError(strings.ToLower(errors.ModuleForCode(code)), string(code))
		log := s.logger.WithContext(ctx)
		switch {
		case errors.IsCode(err, errors.ErrCodeTimeout):
			log.Warn("enumeration timed out", logging.Err(err))
		case errors.IsServerError(code):
			log.WithError(err).Error("enumeration failed")
		default:
			log.Debug("enumeration rejected", logging.Err(err))
		}
		return nil, err
	}

	sample.Outcome = prometheus.OutcomeOK
	s.metrics.RecordEnumeration(sample)
	logging.LogOperationDuration(s.logger.WithContext(ctx), "enumerate", start,
		logging.String(logging.FieldSMILES, input.SMILES),
		logging.Int("products", len(res.Rows)),
		logging.Int("sites", res.Stats.Sites),
		logging.Int("rejected", res.Stats.Rejected),
		logging.Bool("limit_reached", res.Stats.LimitReached))
	return res, nil
}

func (s *serviceImpl) enumerate(ctx context.Context, input *EnumerateInput) (*EnumerateResult, prometheus.EnumerationSample, error) {
	var sample prometheus.EnumerationSample
	if input == nil {
		return nil, sample, errors.Validation("request body is required")
	}
	if strings.TrimSpace(input.SMILES) == "" {
		return nil, sample, errors.Validation("field required: smiles")
	}

	limit := s.cfg.DefaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if limit < 1 || limit > s.cfg.MaxLimit {
		return nil, sample, errors.Newf(errors.ErrCodeEnumerationLimitInvalid,
			"limit must be between 1 and %d", s.cfg.MaxLimit)
	}

	fragments, err := s.table.Resolve(input.Groups)
	if err != nil {
		return nil, sample, err
	}

	parent, err := s.parse(input.SMILES)
	if err != nil {
		return nil, sample, err
	}

	t0 := time.Now()
	set, st, err := s.enumerator.Enumerate(ctx, parent, fragments, limit)
	sample.Enumerate = time.Since(t0)
	if err != nil {
		return nil, sample, err
	}
	sample.Products = set.Len()
	sample.Accepted = st.Candidates - st.Rejected
	sample.Rejected = st.Rejected
	sample.Duplicates = st.Duplicates

	t1 := time.Now()
	rows, err := s.describeAll(ctx, set.Values())
	sample.Describe = time.Since(t1)
	if err != nil {
		return nil, sample, err
	}
	return &EnumerateResult{Rows: rows, Stats: st}, sample, nil
}

// describeAll computes the rows of products on a bounded worker pool. Row i
// always belongs to products[i].
func (s *serviceImpl) describeAll(ctx context.Context, products []*chem.Molecule) ([]moltypes.DescriptorRow, error) {
	rows := make([]moltypes.DescriptorRow, len(products))
	if len(products) == 0 {
		return rows, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.DescribeWorkers)
	for i, m := range products {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := s.describer.Describe(m)
			if err != nil {
				return err
			}
			rows[i] = toRow(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, errors.ErrCodeCanceled, "descriptor calculation canceled")
		}
		return nil, err
	}
	return rows, nil
}

func (s *serviceImpl) Describe(ctx context.Context, smiles string) (*moltypes.DescriptorRow, error) {
	if strings.TrimSpace(smiles) == "" {
		return nil, errors.Validation("field required: smiles")
	}
	m, err := s.parse(smiles)
	if err != nil {
		return nil, err
	}
	rec, err := s.describer.Describe(m)
	if err != nil {
		s.logger.WithContext(ctx).WithError(err).Error("describe failed")
		return nil, err
	}
	row := toRow(rec)
	return &row, nil
}

func (s *serviceImpl) ListGroups(ctx context.Context) []moltypes.Group {
	entries := s.table.Entries()
	out := make([]moltypes.Group, len(entries))
	for i, e := range entries {
		out[i] = moltypes.Group{Tag: e.Tag, SMILES: e.SMILES}
	}
	return out
}

func (s *serviceImpl) parse(smiles string) (*chem.Molecule, error) {
	m, err := s.toolkit.ParseSMILES(smiles)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeInvalidSMILES, "Bad SMILES")
	}
	return m, nil
}

func toRow(r domainMol.DescriptorRecord) moltypes.DescriptorRow {
	return moltypes.DescriptorRow{
		SMILES: r.SMILES,
		MW:     r.MolWt,
		CLogP:  r.CLogP,
		HBD:    r.HBD,
		HBA:    r.HBA,
		QED:    r.QED,
		RO5:    r.RO5,
	}
}

func outcomeFor(err error) string {
	switch errors.GetCode(err) {
	case errors.ErrCodeMoleculeInvalidSMILES:
		return prometheus.OutcomeBadSMILES
	case errors.ErrCodeFragmentNotFound:
		return prometheus.OutcomeUnknownGroup
	case errors.ErrCodeValidation, errors.ErrCodeBadRequest, errors.ErrCodeEnumerationLimitInvalid:
		return prometheus.OutcomeInvalidInput
	case errors.ErrCodeCanceled, errors.ErrCodeTimeout:
		return prometheus.OutcomeCanceled
	default:
		return prometheus.OutcomeError
	}
}

//Personal.AI order the ending
