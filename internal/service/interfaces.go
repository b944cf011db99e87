//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/book-collections/models"
)

// TokenService issues and verifies signed session tokens. It is a pure
// function of the token, the clock and the signing secret.
type TokenService interface {
	Issue(subjectID, subjectIdentity string) (models.Token, error)
	Verify(token string) (models.Claims, error)
}

type AuthService interface {
	RegisterUser(ctx context.Context, credentials models.Credentials) (models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Claims, error)
	RevokeToken(ctx context.Context, claims models.Claims) error
}

type BookService interface {
	List(ctx context.Context, params url.Values) ([]models.Book, error)
	Create(ctx context.Context, payload models.BookPayload) (models.Book, error)
	Update(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error)
	Remove(ctx context.Context, id string) (models.DeleteResult, error)
	Ping(ctx context.Context) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
