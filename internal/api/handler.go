package api

import (
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/fitledger/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type HandlerOptions struct {
	SecretKey           string
	Location            *time.Location
	CookieSecure        bool
	RateLimitFailClosed bool
	LoginRatePerMinute  int
	TokenTTL            time.Duration
	Logger              logrus.FieldLogger
	Clock               services.Clock
}

type Handler struct {
	secretKey    []byte
	cookieSecure bool
	tokenTTL     time.Duration
	clock        services.Clock
	logger       logrus.FieldLogger

	loginLimiter   *attemptLimiter
	requestLimiter *ipRateLimiter

	database        *gorm.DB
	authService     *services.AuthService
	goalService     *services.GoalService
	ledgerService   *services.LedgerService
	catalogService  *services.FoodCatalogService
	streakService   *services.StreakService
	progressService *services.ProgressService
	strengthService *services.StrengthService
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if options.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Clock == nil {
		options.Clock = services.SystemClock{}
	}
	if options.TokenTTL <= 0 {
		options.TokenTTL = defaultAuthTokenTTL
	}
	if options.Logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		options.Logger = silent
	}

	handler := &Handler{
		database:       database,
		secretKey:      []byte(options.SecretKey),
		cookieSecure:   options.CookieSecure,
		tokenTTL:       options.TokenTTL,
		clock:          options.Clock,
		logger:         options.Logger,
		loginLimiter:   newAttemptLimiter(),
		requestLimiter: newIPRateLimiter(options.LoginRatePerMinute),
	}
	return handler.withDependencies(database, options), nil
}
