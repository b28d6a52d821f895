package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/elearning-api/internal/config"
	"github.com/vasapolrittideah/elearning-api/internal/handler"
	"github.com/vasapolrittideah/elearning-api/internal/repository"
	"github.com/vasapolrittideah/elearning-api/internal/usecase"
	"github.com/vasapolrittideah/elearning-api/shared/auth"
	"github.com/vasapolrittideah/elearning-api/shared/mailer"
	"github.com/vasapolrittideah/elearning-api/shared/payment"
	"github.com/vasapolrittideah/elearning-api/shared/validator"
)

func main() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "elearning-api").
		Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	validate, err := validator.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(startupCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(startupCtx, &logger, db)
	courseRepo := repository.NewCourseMongoRepository(db)
	lectureRepo := repository.NewLectureMongoRepository(db)
	paymentRepo := repository.NewPaymentMongoRepository(startupCtx, &logger, db)
	progressRepo := repository.NewProgressMongoRepository(startupCtx, &logger, db)

	jwtAuth := auth.NewJWTAuthenticator(cfg.TokenIssuer, cfg.TokenIssuer)
	mail := mailer.NewMailer(&logger)
	orders := payment.NewRazorpayProvider(cfg.RazorpayKey, cfg.RazorpaySecret)

	usecases := &usecase.Usecases{
		Auth:          usecase.NewAuthUsecase(userRepo, jwtAuth, mail, cfg, &logger),
		PasswordReset: usecase.NewPasswordResetUsecase(userRepo, jwtAuth, mail, cfg, &logger),
		Course:        usecase.NewCourseUsecase(courseRepo, lectureRepo, orders),
		Admin:         usecase.NewAdminUsecase(userRepo, courseRepo, lectureRepo, progressRepo, &logger),
		Payment:       usecase.NewPaymentUsecase(userRepo, courseRepo, paymentRepo, progressRepo, cfg, &logger),
		Progress:      usecase.NewProgressUsecase(progressRepo, lectureRepo),
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create upload directory")
	}

	h := handler.NewHandler(usecases, jwtAuth, userRepo, validate, cfg, &logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h.Init(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server is running")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down server")
	}
}
