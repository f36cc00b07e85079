package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ramabhadrarao/face-recognition/internal/capture"
	"github.com/ramabhadrarao/face-recognition/internal/capture/source"
	"github.com/ramabhadrarao/face-recognition/internal/config"
	"github.com/ramabhadrarao/face-recognition/internal/controller"
	"github.com/ramabhadrarao/face-recognition/internal/handler"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/logger"
	"github.com/ramabhadrarao/face-recognition/internal/pkg/mailer"
	"github.com/ramabhadrarao/face-recognition/internal/repository/unitofwork"
	"github.com/ramabhadrarao/face-recognition/internal/service"
	"github.com/ramabhadrarao/face-recognition/internal/websocket"
	pktNats "github.com/ramabhadrarao/face-recognition/pkg/nats"
	"github.com/ramabhadrarao/face-recognition/pkg/recognition"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	EmployeeController   controller.IEmployeeController
	AttendanceController controller.IAttendanceController
	ReportController     controller.IReportController
	CaptureController    controller.ICaptureController

	// Background services (exposed for main.go to run)
	StreamService service.IStreamService

	// WebSockets
	StreamHandler *handler.StreamHandler
	WebSocketHub  *websocket.Hub

	// CaptureCore is exposed so main can release the camera on shutdown.
	CaptureCore *capture.Controller
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
	)

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Printf("[WARN] Unknown timezone %q, falling back to UTC", cfg.App.Timezone)
		location = time.UTC
	}

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/stream.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Capture core
	captureLogger := logger.NewIsolatedLogger("logs/capture.log")
	publisherService := service.NewPublisherService(pubSub, captureLogger)

	var acquirer capture.Acquirer
	if cfg.Capture.Source == "mjpeg" {
		acquirer = source.NewMJPEGAcquirer(cfg.Capture.MJPEGStreamURL, nil)
		log.Printf("[INFO] Using camera source: MJPEG (%s)", cfg.Capture.MJPEGStreamURL)
	} else {
		acquirer = source.NewSyntheticAcquirer(source.SyntheticOptions{FacePresent: true})
		log.Printf("[INFO] Using camera source: SYNTHETIC")
	}

	captureCore := capture.NewController(acquirer, publisherService, captureLogger, capture.Options{
		IdealWidth:     cfg.Capture.IdealWidth,
		IdealHeight:    cfg.Capture.IdealHeight,
		PresencePeriod: cfg.Capture.PresencePeriod,
		FallbackCapability: capture.ZoomCapability{
			Min:  cfg.Capture.ZoomFallbackMin,
			Max:  cfg.Capture.ZoomFallbackMax,
			Step: cfg.Capture.ZoomStep,
		},
	})

	// 4. Recognition client
	recognizer := recognition.NewClient(
		cfg.Recognition.BaseURL,
		cfg.Recognition.APIKey,
		cfg.Recognition.DetProbThreshold,
		cfg.Recognition.Timeout,
	)

	// 5. Services
	authService := service.NewAuthService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory)
	captureService := service.NewCaptureService(captureCore)
	employeeService := service.NewEmployeeService(uowFactory, recognizer, captureCore, emailService, natsPub, sysLogger)
	attendanceService := service.NewAttendanceService(
		uowFactory,
		recognizer,
		captureCore,
		cfg.Recognition.SimilarityThreshold,
		cfg.Attendance.MinimumInterval,
		location,
		natsPub,
		sysLogger,
	)
	reportService := service.NewReportService(
		uowFactory,
		location,
		cfg.Attendance.WorkingHoursPerDay,
		cfg.Attendance.WorkingDaysPerMonth,
	)
	streamService := service.NewStreamService(pubSub, wsHub, wsLogger)

	// Durable relay of domain events (enrollment, clock in/out) to
	// connected dashboards.
	notificationService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notificationService.Start()
	}

	// 6. Handlers and controllers
	streamHandler := handler.NewStreamHandler(wsHub, wsLogger)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		EmployeeController:   controller.NewEmployeeController(employeeService),
		AttendanceController: controller.NewAttendanceController(attendanceService),
		ReportController:     controller.NewReportController(reportService),
		CaptureController:    controller.NewCaptureController(captureService),

		StreamService: streamService,
		StreamHandler: streamHandler,
		WebSocketHub:  wsHub,
		CaptureCore:   captureCore,
	}
}
