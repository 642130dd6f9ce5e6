package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/lestrrat-go/httprc/v3"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/urfave/cli/v2"

	httpadp "sba-portal/internal/adapter/http"
	"sba-portal/internal/adapter/identity"
	"sba-portal/internal/adapter/middleware"
	notifyadp "sba-portal/internal/adapter/notify"
	"sba-portal/internal/adapter/repository/gormstore"
	"sba-portal/internal/adapter/storage"
	"sba-portal/internal/domain/notify"
	"sba-portal/internal/infrastructure/cache"
	ucApp "sba-portal/internal/usecase/application"
	ucAuth "sba-portal/internal/usecase/auth"
	ucDoc "sba-portal/internal/usecase/document"
	ucMeeting "sba-portal/internal/usecase/meeting"
	ucProfile "sba-portal/internal/usecase/profile"
	ucReferral "sba-portal/internal/usecase/referral"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Run the portal HTTP API",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := loadConfig(true)
	if err != nil {
		return err
	}
	checklist, err := cfg.Checklist()
	if err != nil {
		return err
	}
	hashKey, blockKey, err := cfg.CookieKeys()
	if err != nil {
		return err
	}

	gdb, err := openDB(cfg, logger)
	if err != nil {
		return err
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	awsCfg, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}
	blobs := storage.NewS3FromConfig(awsCfg, cfg.S3Bucket, cfg.S3Endpoint)
	provider := identity.NewCognito(cognitoidentityprovider.NewFromConfig(awsCfg), cfg.CognitoClientID)

	jwkCache, err := jwk.NewCache(ctx, httprc.NewClient())
	if err != nil {
		return fmt.Errorf("failed to initialize jwk cache: %w", err)
	}
	if err := jwkCache.Register(ctx, identity.JWKSURL(cfg.CognitoIssuerURL)); err != nil {
		return fmt.Errorf("failed to register cognito jwks: %w", err)
	}
	verifier := identity.NewJWTVerifier(jwkCache, cfg.CognitoIssuerURL, cfg.CognitoClientID)

	var events notify.Publisher = notify.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := notifyadp.NewKafkaPublisher(notifyadp.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic), 5*time.Second)
		defer func() {
			if err := kp.Close(); err != nil {
				logger.WithError(err).Warn("kafka writer close failed")
			}
		}()
		events = kp
		logger.WithField("topic", cfg.KafkaTopic).Info("publishing portal events to kafka")
	}

	sessions := middleware.NewSessions(hashKey, blockKey, cfg.CookieName,
		time.Duration(cfg.SessionMaxAgeSec)*time.Second, !cfg.IsDevelopment())

	apps := gormstore.NewApplicationRepository(gdb)
	history := gormstore.NewHistoryRepository(gdb)
	docs := gormstore.NewDocumentRepository(gdb)
	meetings := gormstore.NewMeetingRepository(gdb)
	leads := gormstore.NewReferralRepository(gdb)
	profiles := gormstore.NewProfileRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	authUC := ucAuth.NewUsecase(provider, verifier, logger)
	appUC := ucApp.NewUsecase(apps, history, docs, tx, checklist, events, logger)
	docUC := ucDoc.NewUsecase(docs, blobs, checklist, ucDoc.Config{
		MaxUploadBytes:   cfg.MaxUploadBytes,
		AllowedMIMETypes: cfg.AllowedMIMETypes,
		SignedURLTTL:     cfg.SignedURLTTL,
	}, logger)
	meetingUC := ucMeeting.NewUsecase(meetings, events, logger)
	referralUC := ucReferral.NewUsecase(leads, logger)
	profileUC := ucProfile.NewUsecase(profiles, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger(logger))
	// multipart overhead on top of the largest accepted file
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadBytes/1024+512)))

	httpadp.Register(e, httpadp.Handlers{
		Health:       httpadp.NewHandler(),
		Auth:         httpadp.NewAuthHandler(authUC, sessions, logger),
		Applications: httpadp.NewApplicationHandler(appUC, logger),
		Documents:    httpadp.NewDocumentHandler(docUC, logger),
		Meetings:     httpadp.NewMeetingHandler(meetingUC, logger),
		Referrals:    httpadp.NewReferralHandler(referralUC, logger),
		Profiles:     httpadp.NewProfileHandler(profileUC, logger),
	}, httpadp.Guards{
		Authenticate: middleware.Authenticate(verifier, sessions, logger),
		Idempotency:  middleware.Idempotency(rdb, cfg.IdempotencyTTL(), logger),
		RateLimit:    middleware.RateLimit(rdb, cfg.AuthRateLimit, cfg.AuthRateWindow, logger),
	})

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + cfg.AppPort
		logger.WithField("addr", addr).Info("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
