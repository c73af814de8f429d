package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/config"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/repositories"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/routes"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/services"
	"github.com/DeepVaishnav17/WarrantyTrackerApp/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := utils.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger error: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("fatal", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *zap.Logger) error {
	db, err := config.InitDB(cfg, log)
	if err != nil {
		return err
	}

	var awsCfg aws.Config
	if cfg.ReceiptStorage == "s3" || cfg.SESEmail != "" || cfg.SNSFCMArn != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			return err
		}
	}

	var receipts services.ReceiptStore
	uploadDir := ""
	if cfg.ReceiptStorage == "s3" {
		region := cfg.S3RegionOrDefault()
		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) { o.Region = region })
		receipts = utils.NewS3ReceiptStore(client, cfg.S3Bucket, region, cfg.CloudFrontURL)
	} else {
		uploadDir = cfg.UploadDir
		receipts = utils.NewDiskReceiptStore(uploadDir, "/uploads")
	}

	var mailer services.Mailer = utils.NewLogMailer(log)
	if cfg.SESEmail != "" {
		mailer = utils.NewSESMailer(ses.NewFromConfig(awsCfg), cfg.SESEmail)
	}

	users := repositories.NewUserRepository(db)
	appliances := repositories.NewApplianceRepository(db)
	records := repositories.NewServiceRecordRepository(db)
	alerts := repositories.NewAlertRepository(db)
	devices := repositories.NewDeviceRepository(db)

	push := services.NewPushService(devices, nil, "", log)
	if cfg.SNSFCMArn != "" {
		push = services.NewPushService(devices, awssns.NewFromConfig(awsCfg), cfg.SNSFCMArn, log)
	}

	jm := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	hub := services.NewRealtimeHub(log)
	dispatcher := services.NewAlertDispatcher(alerts, hub, push, log)
	warranty := services.NewWarrantyService(appliances, dispatcher, log)
	applianceSvc := services.NewApplianceService(appliances, receipts, warranty, log)
	auth := services.NewAuthService(users, jm, mailer, cfg.PublicBaseURL, log)

	if err := auth.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := routes.SetupRouter(routes.Deps{
		Log:           log,
		JWT:           jm,
		Users:         users,
		Auth:          auth,
		Profile:       services.NewUserService(users),
		Appliances:    applianceSvc,
		Records:       services.NewServiceRecordService(records, appliances),
		Notifications: services.NewNotificationService(warranty, alerts, push),
		Push:          push,
		Admin:         services.NewAdminService(users, applianceSvc, appliances, records, receipts, log),
		Hub:           hub,
		UploadDir:     uploadDir,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	scheduler := services.NewWarrantyScheduler(appliances, warranty, log, cfg.WarrantySweepInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Run(gctx)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received")
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	err = g.Wait()
	if sqlDB, dbErr := db.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	return err
}
