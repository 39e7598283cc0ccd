package molecule

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// Stats summarises one enumeration run.
type Stats struct {
	// Sites is the number of hydrogen-bearing atoms visited.
	Sites int
	// Attempts counts ReplaceHydrogen calls.
	Attempts int
	// Candidates counts structures returned by ReplaceHydrogen.
	Candidates int
	// Rejected counts candidates dropped because they failed sanitization.
	Rejected int
	// Duplicates counts candidates whose canonical SMILES was already held.
	Duplicates int
	// LimitReached is set when the run stopped early at the limit.
	LimitReached bool
}

// Enumerator generates single-point substitution products.
type Enumerator struct {
	tk     Toolkit
	logger logging.Logger
}

// NewEnumerator returns an Enumerator backed by tk.
func NewEnumerator(tk Toolkit, logger logging.Logger) *Enumerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Enumerator{tk: tk, logger: logger}
}

// Enumerate replaces one hydrogen of parent with each fragment in turn, for
// every hydrogen-bearing atom in atom order, and collects the unique
// products.
//
// Sites are visited in atom index order and fragments in the order given, so
// the first limit unique products in that order are the ones kept. The tag
// loop of a site stops as soon as the set holds limit products, and no
// further site is visited after that. Candidates that fail sanitization are
// skipped. A failing ReplaceHydrogen aborts the run. The context is checked
// before each site.
func (e *Enumerator) Enumerate(ctx context.Context, parent *chem.Molecule, fragments []*FragmentDefinition, limit int) (*ProductSet, Stats, error) {
	var st Stats
	if parent == nil {
		return nil, st, errors.InvalidParam("parent structure is required")
	}
	if limit < 1 {
		return nil, st, errors.Newf(errors.ErrCodeEnumerationLimitInvalid, "limit must be >= 1, got %d", limit)
	}

	set := NewProductSet()
	if len(fragments) == 0 {
		return set, st, nil
	}

	for site := 0; site < parent.NumAtoms(); site++ {
		if err := ctx.Err(); err != nil {
			return nil, st, contextError(err)
		}
		if parent.TotalHs(site) == 0 {
			continue
		}
		st.Sites++

	tags:
		for _, f := range fragments {
			st.Attempts++
			candidates, err := e.tk.ReplaceHydrogen(parent, site, f.Fragment)
			if err != nil {
				return nil, st, errors.Wrap(err, errors.ErrCodeSubstitutionFailed, "substitution failed").
					WithDetail(fmt.Sprintf("site=%d group=%s: %v", site, f.Tag, err))
			}
			for _, c := range candidates {
				st.Candidates++
				if err := e.tk.Sanitize(c); err != nil {
					st.Rejected++
					e.logger.Debug("candidate rejected",
						logging.Int("site", site),
						logging.String("group", f.Tag),
						logging.Err(errors.Wrap(err, errors.ErrCodeMoleculeSanitizeFailed, "molecule failed sanitization")))
					continue
				}
				key, err := e.tk.CanonicalSMILES(c)
				if err != nil {
					st.Rejected++
					e.logger.Debug("candidate has no canonical form",
						logging.Int("site", site),
						logging.String("group", f.Tag),
						logging.Err(errors.Wrap(err, errors.ErrCodeMoleculeConversionFailed, "canonical SMILES failed")))
					continue
				}
				if !set.Put(key, c) {
					st.Duplicates++
				}
				if set.Len() >= limit {
					st.LimitReached = true
					break tags
				}
			}
		}

		if set.Len() >= limit {
			break
		}
	}

	e.logger.Debug("enumeration finished",
		logging.Int("sites", st.Sites),
		logging.Int("attempts", st.Attempts),
		logging.Int("products", set.Len()),
		logging.Int("rejected", st.Rejected),
		logging.Int("duplicates", st.Duplicates),
		logging.Bool("limit_reached", st.LimitReached))
	return set, st, nil
}

func contextError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(err, errors.ErrCodeTimeout, "enumeration timed out")
	}
	return errors.Wrap(err, errors.ErrCodeCanceled, "enumeration canceled")
}

//Personal.AI order the ending
