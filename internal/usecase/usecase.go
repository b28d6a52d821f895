// Package usecase contains the application's business logic, layered between
// the HTTP handlers and the MongoDB repositories.
package usecase

// Usecases aggregates every usecase the HTTP layer depends on.
type Usecases struct {
	Auth          AuthUsecase
	PasswordReset PasswordResetUsecase
	Course        CourseUsecase
	Admin         AdminUsecase
	Payment       PaymentUsecase
	Progress      ProgressUsecase
}
