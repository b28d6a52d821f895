package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
	"github.com/vasapolrittideah/elearning-api/shared/security"
)

// PasswordResetUsecase defines the business logic for the forgot/reset flow.
type PasswordResetUsecase interface {
	// RequestPasswordReset emails a reset link and opens a server-side
	// reset window on the user record.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword sets a new password if the token verifies and the
	// user's reset window is still open.
	ResetPassword(ctx context.Context, token, newPassword string) error
}

var ErrResetTokenExpired = errors.New("password reset token is invalid or expired")

type passwordResetUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mail     MailSender
	cfg      *config.Config
	logger   *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mail MailSender,
	cfg *config.Config,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mail:     mail,
		cfg:      cfg,
		logger:   logger,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	now := time.Now()
	claims := auth.ResetClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    u.cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{u.cfg.TokenIssuer},
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.cfg.ResetTokenExpiresIn)),
		},
	}

	token, err := u.jwtAuth.GenerateToken(claims, u.cfg.ResetSecret)
	if err != nil {
		return err
	}

	// The window on the user record lets the server invalidate a reset
	// independently of the token's own expiry.
	if err := u.userRepo.SetResetPasswordExpire(ctx, user.ID.Hex(), now.Add(u.cfg.ResetTokenExpiresIn)); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s?token=%s", u.cfg.AppResetURL, token)
	go func() {
		if err := u.mail.SendHTML([]string{user.Email}, "E-Learning Password Reset", resetMailBody(resetLink)); err != nil {
			u.logger.Error().Err(err).Str("to", user.Email).Msg("failed to send email")
		}
	}()

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := &auth.ResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(token, u.cfg.ResetSecret, claims); err != nil {
		return ErrResetTokenExpired
	}

	user, err := u.userRepo.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}

		return err
	}

	if user.ResetPasswordExpire == nil || user.ResetPasswordExpire.Before(time.Now()) {
		return ErrResetTokenExpired
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	// Also clears reset_password_expire, so the token cannot be reused.
	return u.userRepo.UpdatePassword(ctx, user.ID.Hex(), passwordHash)
}

func resetMailBody(resetLink string) string {
	return fmt.Sprintf(`
		<p>Hi,</p>
		<p>We received a request to reset the password for your account.</p>
		<p>If you made this request, please click the link below to create a new password:</p>

		<p><a href="%s">%s</a></p>

		<p>The link expires in 5 minutes. If you did not request a password
		reset, you can safely ignore this email.</p>

		<p>Thank you,</p>
		<p>E-Learning Team</p>
	`, resetLink, resetLink)
}
