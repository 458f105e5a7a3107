package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/clovermist/folio/internal/authservice"
	"github.com/clovermist/folio/internal/blogservice"
	"github.com/clovermist/folio/internal/common"
	"github.com/clovermist/folio/internal/mailservice"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	authService *authservice.AuthService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	producer    common.MessageProducer
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.MongoURI, cfg.MongoDB, 10*time.Second)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupContactExchange(broker)
	if err != nil {
		logger.Error("failed to setup the contact exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	blogService, err := blogservice.NewBlogService(db, cache)
	if err != nil {
		logger.Error("failed to initialize the blog service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	admin := authservice.Admin{
		ID:           cfg.AdminID,
		Username:     cfg.AdminUsername,
		Name:         cfg.AdminName,
		PasswordHash: []byte(cfg.AdminPasswordHash),
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		authService: authservice.NewAuthService(cfg.JWTSecret, admin),
		blogService: blogService,
		mailService: mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.OwnerEmail, cfg.MailPort, logger),
		producer:    broker,
	}

	go app.mailService.SendContactNotification()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
