package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 500
	logViewTimeout       = 3 * time.Second
)

// ViewInput identifies a property detail view. The visitor fields are all
// optional.
type ViewInput struct {
	PropertyID    string
	PropertyTitle string
	UserID        string
	UserEmail     string
	UserName      string
}

// ActivityUsecase keeps the property view log.
type ActivityUsecase struct {
	repo         domain.ViewRepository
	metrics      *metrics.Manager
	logger       *logger.Logger
	defaultLimit int64
	now          func() time.Time
}

func NewActivityUsecase(repo domain.ViewRepository, m *metrics.Manager, defaultLimit int64, log *logger.Logger) *ActivityUsecase {
	if defaultLimit <= 0 || defaultLimit > maxActivityLimit {
		defaultLimit = defaultActivityLimit
	}
	return &ActivityUsecase{
		repo:         repo,
		metrics:      m,
		logger:       log.Named("ActivityUsecase"),
		defaultLimit: defaultLimit,
		now:          time.Now,
	}
}

// LogView records a view. It never fails: the log is a side channel and a
// lost entry must not break the page that triggered it.
func (uc *ActivityUsecase) LogView(ctx context.Context, in ViewInput) {
	if strings.TrimSpace(in.PropertyID) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logViewTimeout)
	defer cancel()

	name := strings.TrimSpace(in.UserName)
	if name == "" {
		name = domain.AnonymousVisitor
	}
	view := &domain.PropertyView{
		UserID:        strings.TrimSpace(in.UserID),
		UserEmail:     strings.TrimSpace(in.UserEmail),
		UserName:      name,
		PropertyID:    in.PropertyID,
		PropertyTitle: in.PropertyTitle,
		ViewedAt:      uc.now().UTC(),
	}
	if _, err := uc.repo.Create(ctx, view); err != nil {
		uc.logger.Warn("Failed to log property view", zap.String("property_id", in.PropertyID), zap.Error(err))
		return
	}
	uc.metrics.PropertyViewed()
}

// Recent returns the latest views, newest first. A non-positive limit means
// the configured default; limits are capped.
func (uc *ActivityUsecase) Recent(ctx context.Context, limit int64) ([]*domain.PropertyView, error) {
	ctx, span := tracer.Start(ctx, "ActivityUsecase.Recent")
	defer span.End()

	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	return uc.repo.Recent(ctx, limit)
}
