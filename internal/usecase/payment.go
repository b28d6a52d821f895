package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/shared/payment"
)

// PaymentUsecase defines the payment verification handshake: authenticate
// the provider's callback, audit it, then grant course access.
type PaymentUsecase interface {
	VerifyPayment(ctx context.Context, user *model.User, courseID string, params VerifyPaymentParams) error
}

// VerifyPaymentParams carries the provider callback fields.
type VerifyPaymentParams struct {
	OrderID   string
	PaymentID string
	Signature string
}

var ErrPaymentInvalid = errors.New("payment signature verification failed")

type paymentUsecase struct {
	userRepo     repository.UserRepository
	courseRepo   repository.CourseRepository
	paymentRepo  repository.PaymentRepository
	progressRepo repository.ProgressRepository
	cfg          *config.Config
	logger       *zerolog.Logger
}

// NewPaymentUsecase creates a new instance of PaymentUsecase.
func NewPaymentUsecase(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	paymentRepo repository.PaymentRepository,
	progressRepo repository.ProgressRepository,
	cfg *config.Config,
	logger *zerolog.Logger,
) PaymentUsecase {
	return &paymentUsecase{
		userRepo:     userRepo,
		courseRepo:   courseRepo,
		paymentRepo:  paymentRepo,
		progressRepo: progressRepo,
		cfg:          cfg,
		logger:       logger,
	}
}

func (u *paymentUsecase) VerifyPayment(ctx context.Context, user *model.User, courseID string, params VerifyPaymentParams) error {
	// Nothing is written before the signature checks out.
	if !payment.VerifySignature(params.OrderID, params.PaymentID, params.Signature, u.cfg.RazorpaySecret) {
		return ErrPaymentInvalid
	}

	course, err := u.courseRepo.GetCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCourseNotFound
		}

		return err
	}

	_, err = u.paymentRepo.CreatePayment(ctx, &model.Payment{
		OrderID:   params.OrderID,
		PaymentID: params.PaymentID,
		Signature: params.Signature,
	})
	if err != nil {
		// A replayed callback is already audited; the grant below is
		// idempotent, so the request still succeeds.
		if !mongo.IsDuplicateKeyError(err) {
			return err
		}

		u.logger.Debug().
			Str("order_id", params.OrderID).
			Str("payment_id", params.PaymentID).
			Msg("duplicate payment callback")
	}

	if user.Subscribed(course.ID) {
		return nil
	}

	if err := u.userRepo.AddSubscription(ctx, user.ID.Hex(), course.ID); err != nil {
		return err
	}

	return u.progressRepo.EnsureProgress(ctx, user.ID.Hex(), courseID)
}
