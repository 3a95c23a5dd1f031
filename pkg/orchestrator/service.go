package orchestrator

import (
	"time"

	"github.com/rtgspay/settlement-engine/pkg/logger"
	"github.com/rtgspay/settlement-engine/pkg/notify"
	"github.com/rtgspay/settlement-engine/pkg/rtgs"
	"github.com/rtgspay/settlement-engine/pkg/settlement"
	"github.com/rtgspay/settlement-engine/pkg/storage"
	"github.com/rtgspay/settlement-engine/pkg/validation"
)

// Service coordinates the transaction and batch lifecycles: validation,
// enrollment, submission to the settlement gateway, reconciliation and audit.
// All state transitions go through the conditional writes exposed by the
// stores, so concurrent calls against the same entity are safe.
type Service struct {
	transactions storage.TransactionStore
	batches      storage.BatchStore
	audit        storage.AuditStore
	gateway      rtgs.SettlementInterface
	notifier     notify.Notifier
	validator    *validation.Validator
	window       *settlement.Calculator
	logger       *logger.Logger

	// now is swapped out in tests.
	now func() time.Time
}

// Params collects the dependencies of a Service.
type Params struct {
	Transactions storage.TransactionStore
	Batches      storage.BatchStore
	Audit        storage.AuditStore
	Gateway      rtgs.SettlementInterface
	Notifier     notify.Notifier
	Validator    *validation.Validator
	Window       *settlement.Calculator
	Logger       *logger.Logger
}

// New constructs a Service. Validator, Window and Logger fall back to defaults
// when nil so tests only have to supply the collaborators they assert on.
func New(p Params) *Service {
	if p.Validator == nil {
		p.Validator = validation.New(validation.DefaultConfig())
	}
	if p.Window == nil {
		p.Window = settlement.NewCalculator(settlement.DefaultConfig())
	}
	if p.Logger == nil {
		p.Logger = logger.NewNop()
	}
	return &Service{
		transactions: p.Transactions,
		batches:      p.Batches,
		audit:        p.Audit,
		gateway:      p.Gateway,
		notifier:     p.Notifier,
		validator:    p.Validator,
		window:       p.Window,
		logger:       p.Logger,
		now:          time.Now,
	}
}
