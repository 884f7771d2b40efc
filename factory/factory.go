package factory

import (
	"github.com/asbbic/membership/internal/config"
	"github.com/asbbic/membership/internal/metrics"
	"github.com/asbbic/membership/internal/middleware"
	"github.com/asbbic/membership/internal/repository"
	"github.com/asbbic/membership/internal/services/members"
	"github.com/asbbic/membership/internal/services/users"

	"github.com/asbbic/membership/pkg/cache"
	"github.com/asbbic/membership/pkg/database"
	emailpkg "github.com/asbbic/membership/pkg/email"
	"github.com/asbbic/membership/pkg/logger"
	"github.com/asbbic/membership/pkg/media"
	"github.com/asbbic/membership/pkg/qrcode"
	"github.com/asbbic/membership/pkg/token"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

type Repositories struct {
	Member *repository.MemberRepository
	User   *repository.UserRepository
}

type Services struct {
	Member *members.Member
	User   *users.User
}

type Factory struct {
	DB           *database.PostgresDB
	Cache        *cache.Redis
	JWTToken     *token.Jwt
	Email        *emailpkg.Email
	Media        *media.Store
	QRCode       *qrcode.Generator
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
	Router       *chi.Mux
	Services     *Services
	Repositories *Repositories
	Middleware   *middleware.Middleware
}

func New(cfg *config.Config) (*Factory, func(), error) {
	log := logger.New(cfg)

	db, dbCleanup, err := database.New(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}

	redis, redisCleanup := cache.New(cfg, log)

	mediaStore, err := media.New(cfg.Media.Dir)
	if err != nil {
		dbCleanup()
		redisCleanup()
		return nil, nil, err
	}

	codes := qrcode.New(cfg.Server.BaseURL, mediaStore)
	jwtToken := token.NewJwt(cfg.Auth.JWTSecret)

	email, err := emailpkg.New(cfg)
	if err != nil {
		dbCleanup()
		redisCleanup()
		return nil, nil, err
	}

	serviceMetrics := metrics.New(prometheus.DefaultRegisterer)

	memberRepo := repository.NewMemberRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	membersService := members.New(
		cfg,
		log,
		serviceMetrics,
		memberRepo,
		mediaStore,
		codes,
		email,
		redis,
	)

	usersService := users.New(cfg, jwtToken, userRepo)

	mw := middleware.New(jwtToken, log)

	return &Factory{
			DB:       db,
			Cache:    redis,
			JWTToken: jwtToken,
			Email:    email,
			Media:    mediaStore,
			QRCode:   codes,
			Metrics:  serviceMetrics,
			Logger:   log,
			Router:   chi.NewRouter(),
			Services: &Services{
				Member: membersService,
				User:   usersService,
			},
			Repositories: &Repositories{
				Member: memberRepo,
				User:   userRepo,
			},
			Middleware: mw,
		}, func() {
			dbCleanup()
			redisCleanup()
		}, nil
}
