package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
	"github.com/vasapolrittideah/elearning-api/shared/security"
)

// AuthUsecase defines the business logic for registration, the OTP
// activation handshake, login, and profile lookup.
type AuthUsecase interface {
	// Register starts the two-step sign-up. It returns a signed activation
	// token carrying the pending user and a one-time code; no user record
	// is persisted until the code is confirmed.
	Register(ctx context.Context, params RegisterParams) (string, error)

	// VerifyRegistration completes the sign-up by checking the submitted
	// code against the one embedded in the activation token.
	VerifyRegistration(ctx context.Context, otp, activationToken string) error

	Login(ctx context.Context, params LoginParams) (string, *model.User, error)
	Profile(ctx context.Context, userID string) (*model.User, error)
}

// RegisterParams defines the parameters for starting a registration.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("no user with this email")
	ErrWrongPassword     = errors.New("wrong password")
	ErrActivationExpired = errors.New("activation token is invalid or expired")
	ErrWrongOTP          = errors.New("wrong otp")
)

// MailSender delivers a single HTML email. Satisfied by *mailer.Mailer.
type MailSender interface {
	SendHTML(to []string, subject, htmlBody string) error
}

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mail     MailSender
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mail MailSender,
	cfg *config.Config,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (string, error) {
	// Reject duplicates before computing anything; no side effects on failure.
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return "", ErrUserAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return "", err
	}

	otp, err := generateOTP()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := auth.ActivationClaims{
		User: auth.PendingUser{
			Name:         params.Name,
			Email:        params.Email,
			PasswordHash: passwordHash,
		},
		OTP: otp,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
			Subject:   params.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.ActivationTokenExpiresIn)),
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, u.cfg.ActivationSecret)
	if err != nil {
		return "", err
	}

	u.sendAsync(params.Email, "E-Learning OTP Verification", otpMailBody(params.Name, otp))

	return token, nil
}

func (u *authUsecase) VerifyRegistration(ctx context.Context, otp, activationToken string) error {
	claims := &auth.ActivationClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(activationToken, u.cfg.ActivationSecret, claims); err != nil {
		// Tampered and expired tokens are indistinguishable to the caller.
		return ErrActivationExpired
	}

	if claims.OTP != otp {
		return ErrWrongOTP
	}

	_, err := u.userRepo.CreateUser(ctx, &model.User{
		Name:         claims.User.Name,
		Email:        claims.User.Email,
		PasswordHash: claims.User.PasswordHash,
	})
	if err != nil {
		// A replay within the token's TTL lands here: the unique email
		// index rejects the second create.
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}

		return err
	}

	return nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, *model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrUserNotFound
		}

		return "", nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", nil, err
	} else if !ok {
		return "", nil, ErrWrongPassword
	}

	now := time.Now()
	claims := auth.SessionClaims{
		UserID: user.ID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.SessionTokenExpiresIn)),
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, u.cfg.SessionSecret)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

func (u *authUsecase) Profile(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

// sendAsync delivers mail without blocking or failing the request. Delivery
// failures are logged only.
func (u *authUsecase) sendAsync(to, subject, htmlBody string) {
	go func() {
		if err := u.mail.SendHTML([]string{to}, subject, htmlBody); err != nil {
			u.logger.Error().Err(err).Str("to", to).Msg("failed to send email")
		}
	}()
}

// generateOTP returns a uniformly random 6-digit code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

func otpMailBody(name, otp string) string {
	return fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your one-time code for E-Learning account verification is:</p>

		<h2>%s</h2>

		<p>The code expires in 5 minutes. If you did not request it, you can
		safely ignore this email.</p>

		<p>Thank you,</p>
		<p>E-Learning Team</p>
	`, name, otp)
}
