package bootstrap

import (
	"fmt"

	"studynotes-be/internal/config"
	"studynotes-be/internal/controller"
	"studynotes-be/internal/pkg/logger"
	"studynotes-be/internal/pkg/mailer"
	"studynotes-be/internal/pkg/serverutils"
	"studynotes-be/internal/repository/contract"
	"studynotes-be/internal/repository/memory"
	redisrepo "studynotes-be/internal/repository/redis"
	"studynotes-be/internal/repository/unitofwork"
	"studynotes-be/internal/service"
	"studynotes-be/pkg/password"
	"studynotes-be/pkg/token"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const EventTopic = "studynotes.domain-events"

// Dependencies are the infrastructure handles built by main. Only UowFactory
// and Logger are required.
type Dependencies struct {
	UowFactory  unitofwork.RepositoryFactory
	Logger      logger.ILogger
	AuditLogger logger.ILogger
	Redis       *redis.Client
	Exporter    service.EventExporter
	Mailer      mailer.IEmailService
}

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	UserController   controller.IUserController
	NoteController   controller.INoteController
	RatingController controller.IRatingController

	// Middleware
	AuthMiddleware fiber.Handler
	RequestLogger  fiber.Handler
	ErrorHandler   fiber.ErrorHandler

	// Background services (run by main)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
	pubSub *gochannel.GoChannel
}

func NewContainer(cfg *config.Config, deps Dependencies) (*Container, error) {
	log := deps.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	auditLog := deps.AuditLogger
	if auditLog == nil {
		auditLog = log
	}

	// 1. Auth primitives
	tokens, err := token.NewService(token.Config{
		Secret:   []byte(cfg.Auth.JWTSecret),
		Issuer:   cfg.Auth.JWTIssuer,
		Audience: cfg.Auth.JWTAudience,
		Lifetime: cfg.Auth.TokenLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}
	hasher := password.NewHasher(cfg.Auth.BcryptCost)

	var denylist contract.TokenDenylist
	if cfg.Auth.RevocationEnabled {
		if deps.Redis != nil {
			denylist = redisrepo.NewTokenDenylist(deps.Redis)
		} else {
			denylist = memory.NewTokenDenylist()
		}
	}

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	publisherService := service.NewPublisherService(EventTopic, pubSub, log)
	consumerService := service.NewConsumerService(pubSub, EventTopic, deps.Exporter, deps.Mailer, auditLog, log)

	// 3. Services
	authService := service.NewAuthService(deps.UowFactory, hasher, tokens, denylist, publisherService, log)
	userService := service.NewUserService(deps.UowFactory)
	noteService := service.NewNoteService(deps.UowFactory, publisherService)
	ratingService := service.NewRatingService(deps.UowFactory, publisherService)

	// 4. Controllers
	rateLimiter := serverutils.NewRateLimiter(cfg.RateLimit, deps.Redis, log)

	return &Container{
		AuthController:   controller.NewAuthController(authService, rateLimiter),
		UserController:   controller.NewUserController(userService, noteService),
		NoteController:   controller.NewNoteController(noteService),
		RatingController: controller.NewRatingController(ratingService),

		AuthMiddleware: serverutils.NewJwtMiddleware(tokens, denylist),
		RequestLogger:  serverutils.RequestLogger(log),
		ErrorHandler:   serverutils.NewErrorHandler(log),

		ConsumerService: consumerService,

		Logger: log,
		pubSub: pubSub,
	}, nil
}

// Close stops the event bus; pending consumers drain and exit.
func (c *Container) Close() error {
	return c.pubSub.Close()
}
