package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/platform/metrics"
	"github.com/Rushibhatt10/HBEstate/internal/platform/phone"
	"github.com/Rushibhatt10/HBEstate/internal/platform/sanitize"
	"github.com/Rushibhatt10/HBEstate/internal/platform/validator"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

const notifyTimeout = 30 * time.Second

// QueryInput is a contact form submission.
type QueryInput struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Phone   string `json:"phone" validate:"required,max=32"`
	Message string `json:"message" validate:"required,max=5000"`
}

// QueryUsecase handles contact queries.
type QueryUsecase struct {
	repo        domain.QueryRepository
	photos      *PhotoUsecase
	notifier    domain.QueryNotifier
	publisher   domain.EventPublisher
	validate    *validator.Validator
	metrics     *metrics.Manager
	logger      *logger.Logger
	phoneRegion string
	now         func() time.Time

	notifications sync.WaitGroup
}

// NewQueryUsecase creates a QueryUsecase. notifier may be nil when operator
// mail is not configured.
func NewQueryUsecase(
	repo domain.QueryRepository,
	photos *PhotoUsecase,
	notifier domain.QueryNotifier,
	publisher domain.EventPublisher,
	v *validator.Validator,
	m *metrics.Manager,
	phoneRegion string,
	log *logger.Logger,
) *QueryUsecase {
	return &QueryUsecase{
		repo:        repo,
		photos:      photos,
		notifier:    notifier,
		publisher:   publisher,
		validate:    v,
		metrics:     m,
		logger:      log.Named("QueryUsecase"),
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

// Submit validates and stores a contact query with an optional image. The
// operator is mailed in the background.
func (uc *QueryUsecase) Submit(ctx context.Context, in QueryInput, image *ImageFile) (*domain.Query, error) {
	ctx, span := tracer.Start(ctx, "QueryUsecase.Submit")
	defer span.End()

	in.Name = sanitize.PlainText(in.Name)
	in.Message = sanitize.PlainText(in.Message)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	if err := uc.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	normalized, err := phone.NormalizeE164(in.Phone, uc.phoneRegion)
	if err != nil {
		return nil, fmt.Errorf("%w: phone must be a valid phone number", domain.ErrInvalidInput)
	}

	q := &domain.Query{
		Name:      in.Name,
		Email:     in.Email,
		Phone:     normalized,
		Message:   in.Message,
		CreatedAt: uc.now().UTC(),
	}

	if image != nil {
		urls, err := uc.photos.Upload(ctx, []ImageFile{*image})
		if err != nil {
			return nil, err
		}
		q.Image = urls[0]
	}

	id, err := uc.repo.Create(ctx, q)
	if err != nil {
		uc.logger.Error("Failed to save contact query", zap.Error(err))
		span.RecordError(err)
		if q.Image != "" {
			uc.photos.DeleteAll(ctx, []string{q.Image})
		}
		return nil, fmt.Errorf("failed to save query: %w", err)
	}
	q.ID = id
	span.SetAttributes(attribute.String("query.id", id))

	event := domain.QueryEvent{QueryID: id, Name: q.Name, Email: q.Email, Timestamp: q.CreatedAt}
	if err := uc.publisher.Publish(ctx, domain.SubjectQuerySubmitted, event); err != nil {
		uc.logger.Warn("Failed to publish event", zap.String("subject", domain.SubjectQuerySubmitted), zap.Error(err))
	}
	uc.notify(ctx, q)
	uc.metrics.QuerySubmitted()

	uc.logger.Info("Contact query submitted", zap.String("query_id", id))
	return q, nil
}

// List returns all queries, newest first.
func (uc *QueryUsecase) List(ctx context.Context) ([]*domain.Query, error) {
	ctx, span := tracer.Start(ctx, "QueryUsecase.List")
	defer span.End()
	return uc.repo.List(ctx)
}

// Delete removes one query.
func (uc *QueryUsecase) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "QueryUsecase.Delete")
	defer span.End()

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("Contact query deleted", zap.String("query_id", id))
	return nil
}

// Wait blocks until pending operator notifications are done.
func (uc *QueryUsecase) Wait() {
	uc.notifications.Wait()
}

func (uc *QueryUsecase) notify(ctx context.Context, q *domain.Query) {
	if uc.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	uc.notifications.Add(1)
	go func() {
		defer uc.notifications.Done()
		defer cancel()
		if err := uc.notifier.NotifyNewQuery(ctx, q); err != nil {
			uc.logger.Warn("Failed to notify operator about query", zap.String("query_id", q.ID), zap.Error(err))
		}
	}()
}
