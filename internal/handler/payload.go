package handler

import (
	"github.com/vasapolrittideah/elearning-api/internal/model"
	"github.com/vasapolrittideah/elearning-api/shared/payment"
)

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterResponse struct {
	Message         string `json:"message"`
	ActivationToken string `json:"activationToken"`
}

type VerifyRequest struct {
	OTP             string `json:"otp"             validate:"required,len=6,numeric"`
	ActivationToken string `json:"activationToken" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type PaymentVerificationRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id"   validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature"  validate:"required"`
}

type CheckoutResponse struct {
	Order  *payment.Order `json:"order"`
	Course *model.Course  `json:"course"`
}
