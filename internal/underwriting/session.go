package underwriting

import (
	"errors"
	"fmt"

	"github.com/iwvelando/loan-underwriter/pkg/constants"
	"go.uber.org/zap"
)

// State identifies where a negotiation session is in its lifecycle.
type State int

const (
	// StateEvaluating is the re-entrant negotiation state; each round
	// returns here until a terminal call is made.
	StateEvaluating State = iota
	// StateApproved is terminal; the session produced an approved outcome.
	StateApproved
	// StateCancelled is terminal; all negotiated state is discarded.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateEvaluating:
		return "evaluating"
	case StateApproved:
		return "approved"
	case StateCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrSessionClosed is returned when an operation is attempted after the
// session reached a terminal state.
var ErrSessionClosed = errors.New("underwriting session already closed")

// ErrNotEvaluated is returned when a decision or adjustment is attempted
// before any evaluation round ran.
var ErrNotEvaluated = errors.New("no evaluation round has run")

// ErrNotAffordable is returned when approval is attempted for a
// configuration whose last round exceeded the payment ceiling.
var ErrNotAffordable = errors.New("monthly payment exceeds the allowed ceiling")

// ErrTermAtMaximum is returned when a term adjustment is attempted while
// the term already sits at the category maximum.
var ErrTermAtMaximum = errors.New("term is already at the category maximum")

// Input carries the validated values a front end collected for one
// underwriting session.
type Input struct {
	Principal     float64
	MonthlyIncome float64
	TermYears     int
}

// Round is the result of one evaluation: the quote, the policy ceiling,
// the affordability verdict, and which adjustments remain open to the
// caller when the verdict is negative.
type Round struct {
	Principal         float64
	TermYears         int
	Quote             PaymentQuote
	MaxAllowedPayment float64
	Affordable        bool
	CanExtendTerm     bool
}

// Outcome is the terminal result of a session. Approved outcomes carry the
// final negotiated configuration and its quote; cancelled outcomes carry
// nothing.
type Outcome struct {
	Approved  bool
	Category  Category
	Principal float64
	TermYears int
	Quote     PaymentQuote
}

// Session is the negotiation state machine. It exclusively owns the
// in-progress (principal, term) pair; callers observe rounds and steer via
// the adjustment and terminal methods. One Evaluate call is one round;
// iteration and any round cap belong to the hosting front end.
type Session struct {
	logger        *zap.Logger
	category      Category
	policy        Policy
	principal     float64
	termYears     int
	monthlyIncome float64
	state         State
	lastRound     *Round
}

// NewSession validates the collected input against the category bounds and
// opens a session in the evaluating state.
func NewSession(logger *zap.Logger, category Category, policy Policy, input Input) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if input.Principal <= 0 {
		return nil, fmt.Errorf("principal must be positive, got %.2f", input.Principal)
	}
	if input.MonthlyIncome <= 0 {
		return nil, fmt.Errorf("monthly income must be positive, got %.2f", input.MonthlyIncome)
	}
	if input.TermYears < constants.MinTermYears || input.TermYears > category.MaxTermYears {
		return nil, fmt.Errorf("term must be between %d and %d years for %s, got %d",
			constants.MinTermYears, category.MaxTermYears, category.Name, input.TermYears)
	}

	return &Session{
		logger:        logger,
		category:      category,
		policy:        policy,
		principal:     input.Principal,
		termYears:     input.TermYears,
		monthlyIncome: input.MonthlyIncome,
		state:         StateEvaluating,
	}, nil
}

// Evaluate runs one negotiation round against the current configuration.
func (s *Session) Evaluate() (Round, error) {
	if s.state != StateEvaluating {
		return Round{}, fmt.Errorf("%w: %s", ErrSessionClosed, s.state)
	}

	quote := Quote(s.principal, s.category.AnnualRate, s.termYears)
	round := Round{
		Principal:         s.principal,
		TermYears:         s.termYears,
		Quote:             quote,
		MaxAllowedPayment: s.policy.MaxAllowedPayment(s.monthlyIncome),
		Affordable:        s.policy.IsAffordable(quote, s.monthlyIncome),
		CanExtendTerm:     s.termYears < s.category.MaxTermYears,
	}
	s.lastRound = &round

	s.logger.Debug("evaluated negotiation round",
		zap.String("op", "underwriting.Evaluate"),
		zap.String("category", s.category.Name),
		zap.Float64("principal", s.principal),
		zap.Int("termYears", s.termYears),
		zap.Float64("monthlyPayment", quote.MonthlyPayment),
		zap.Float64("maxAllowedPayment", round.MaxAllowedPayment),
		zap.Bool("affordable", round.Affordable),
	)

	return round, nil
}

// AdjustTerm replaces the term for the next round. It is only offered
// while the term has room below the category maximum and the new value is
// expected to have been validated by the front end; both are re-checked.
func (s *Session) AdjustTerm(termYears int) error {
	if s.state != StateEvaluating {
		return fmt.Errorf("%w: %s", ErrSessionClosed, s.state)
	}
	if s.lastRound == nil {
		return ErrNotEvaluated
	}
	if !s.lastRound.CanExtendTerm {
		return fmt.Errorf("%w (%d years)", ErrTermAtMaximum, s.category.MaxTermYears)
	}
	if termYears < constants.MinTermYears || termYears > s.category.MaxTermYears {
		return fmt.Errorf("term must be between %d and %d years for %s, got %d",
			constants.MinTermYears, s.category.MaxTermYears, s.category.Name, termYears)
	}
	s.termYears = termYears
	s.lastRound = nil
	return nil
}

// AdjustPrincipal replaces the principal for the next round.
func (s *Session) AdjustPrincipal(principal float64) error {
	if s.state != StateEvaluating {
		return fmt.Errorf("%w: %s", ErrSessionClosed, s.state)
	}
	if s.lastRound == nil {
		return ErrNotEvaluated
	}
	if principal <= 0 {
		return fmt.Errorf("principal must be positive, got %.2f", principal)
	}
	s.principal = principal
	s.lastRound = nil
	return nil
}

// Approve closes the session with the configuration of the last round. The
// round must exist and must have been affordable.
func (s *Session) Approve() (Outcome, error) {
	if s.state != StateEvaluating {
		return Outcome{}, fmt.Errorf("%w: %s", ErrSessionClosed, s.state)
	}
	if s.lastRound == nil {
		return Outcome{}, ErrNotEvaluated
	}
	if !s.lastRound.Affordable {
		return Outcome{}, ErrNotAffordable
	}

	s.state = StateApproved
	outcome := Outcome{
		Approved:  true,
		Category:  s.category,
		Principal: s.lastRound.Principal,
		TermYears: s.lastRound.TermYears,
		Quote:     s.lastRound.Quote,
	}

	s.logger.Debug("session approved",
		zap.String("op", "underwriting.Approve"),
		zap.String("category", s.category.Name),
		zap.Float64("principal", outcome.Principal),
		zap.Int("termYears", outcome.TermYears),
	)

	return outcome, nil
}

// Cancel closes the session and discards all negotiated state.
func (s *Session) Cancel() Outcome {
	if s.state == StateEvaluating {
		s.state = StateCancelled
		s.lastRound = nil
		s.logger.Debug("session cancelled",
			zap.String("op", "underwriting.Cancel"),
			zap.String("category", s.category.Name),
		)
	}
	return Outcome{Approved: false}
}

// State reports the current session state.
func (s *Session) State() State {
	return s.state
}

// Category returns the immutable category the session was opened for.
func (s *Session) Category() Category {
	return s.category
}
