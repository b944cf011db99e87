package service

import (
	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/crypto"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/store"
	"github.com/MKhiriev/book-collections/internal/validators"
)

type Services struct {
	AuthService    AuthService
	BookService    BookService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(
		storages.UserRepository,
		crypto.NewPasswordHasher(cfg.App.PasswordHashCost),
		NewTokenService(cfg.App),
		storages.TokenDenylist,
		validators.NewPayloadValidator(),
		logger,
	)

	return &Services{
		AuthService:    authService,
		BookService:    NewBookService(storages.BookRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
