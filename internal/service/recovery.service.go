package service

import (
	"context"
	"fmt"
	"time"

	"github.com/duccv/whereisit/internal/constant"
	"github.com/duccv/whereisit/internal/model"
	"github.com/duccv/whereisit/internal/repository"
	"github.com/duccv/whereisit/pkg/logger"
	"github.com/duccv/whereisit/pkg/metrics"
	"go.uber.org/zap"
)

const RecoveryCompletedMessage = "Recovery operation completed successfully"

// Consistency selects how the two writes of a recovery relate.
type Consistency string

const (
	// BestEffort issues two independent writes. A failed status update leaves the
	// recovery record in place.
	BestEffort Consistency = "best_effort"
	// Transactional commits both writes or neither.
	Transactional Consistency = "transaction"
)

type RecoveryOutcome struct {
	Message        string              `json:"message"`
	RecoveryResult *model.InsertResult `json:"recoveryResult"`
	UpdateResult   *model.UpdateResult `json:"updateResult"`
}

type RecoveryService struct {
	items       repository.ItemRepository
	recoveries  repository.RecoveryRepository
	tx          repository.Transactor
	consistency Consistency
	now         func() time.Time
}

type Option func(*RecoveryService)

// WithClock overrides the clock that stamps recoveredAt.
func WithClock(now func() time.Time) Option {
	return func(s *RecoveryService) { s.now = now }
}

func NewRecoveryService(
	items repository.ItemRepository,
	recoveries repository.RecoveryRepository,
	tx repository.Transactor,
	consistency Consistency,
	opts ...Option,
) *RecoveryService {
	if consistency == "" {
		consistency = BestEffort
	}
	s := &RecoveryService{
		items:       items,
		recoveries:  recoveries,
		tx:          tx,
		consistency: consistency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores a recovery record for req and marks the referenced item recovered.
func (s *RecoveryService) Create(ctx context.Context, req model.RecoveryRequest) (*RecoveryOutcome, error) {
	log := logger.WithComponent(logger.FromContext(ctx), "recovery").With(zap.String("item_id", req.ItemID))
	record := model.NewRecovery(req, s.now())

	if s.consistency == Transactional && s.tx != nil {
		var out *RecoveryOutcome
		err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			var err error
			out, err = s.write(ctx, record)
			return err
		})
		if err != nil {
			metrics.RecoveryRecorded("rolled_back")
			log.Error("Recovery transaction failed", zap.Error(err))
			return nil, err
		}
		metrics.RecoveryRecorded("completed")
		return out, nil
	}

	out, err := s.write(ctx, record)
	if err != nil {
		if out != nil && out.RecoveryResult != nil {
			metrics.RecoveryRecorded("partial")
			log.Error("Item status update failed after recovery was stored",
				zap.String("orphaned_recovery_id", record.ID.Hex()),
				zap.Error(err))
		} else {
			metrics.RecoveryRecorded("failed")
		}
		return nil, err
	}
	metrics.RecoveryRecorded("completed")
	return out, nil
}

// write returns the partial outcome alongside the error when only the first write
// succeeded.
func (s *RecoveryService) write(ctx context.Context, record *model.Recovery) (*RecoveryOutcome, error) {
	inserted, err := s.recoveries.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("insert recovery: %w", err)
	}
	out := &RecoveryOutcome{Message: RecoveryCompletedMessage, RecoveryResult: inserted}

	updated, err := s.items.Update(ctx, record.ItemID, model.Item{model.ItemStatusField: constant.StatusRecovered})
	if err != nil {
		return out, fmt.Errorf("mark item recovered: %w", err)
	}
	out.UpdateResult = updated
	return out, nil
}
