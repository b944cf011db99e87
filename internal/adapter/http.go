package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
	"github.com/MKhiriev/book-collections/internal/utils"
	"github.com/MKhiriev/book-collections/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP implementation of [ServerAdapter].
// The base URL is taken from cfg.ServerAddress; a missing scheme defaults to
// http. cfg.Token, when set, is used for authenticated requests.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(cfg *config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	adapter := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	adapter.SetToken(cfg.Token)

	return adapter, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	return h.token
}

// Register POSTs credentials to /user.
func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.RegisterResponse, error) {
	var registered models.RegisterResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&registered).
		Post("/user")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return registered, nil
}

// Login POSTs credentials to /login. The token is read from the
// Authorization response header, falling back to the accessToken body field.
func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (string, error) {
	var body models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(credentials).
		SetResult(&body).
		Post("/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		if body.AccessToken == "" {
			return "", fmt.Errorf("login parse bearer token: %w", err)
		}
		token = body.AccessToken
	}

	h.SetToken(token)
	h.logger.Debug().Msg("session token stored")
	return token, nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.Claims, error) {
	var body models.ProfileResponse

	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.Claims{}, err
	}

	resp, err := req.SetResult(&body).Get("/profile")
	if err != nil {
		return models.Claims{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Claims{}, err
	}

	return body.Claims, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := req.Post("/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetToken("")
	h.logger.Debug().Msg("session token cleared")
	return nil
}

func (h *httpServerAdapter) ListBooks(ctx context.Context, filters url.Values) ([]models.Book, error) {
	var body models.ListBooksResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParamsFromValues(filters).
		SetResult(&body).
		Get("/book-collections")
	if err != nil {
		return nil, fmt.Errorf("list books request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return body.Collections, nil
}

func (h *httpServerAdapter) CreateBook(ctx context.Context, payload models.BookPayload) (models.Book, error) {
	var body models.BookResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&body).
		Post("/book-collections")
	if err != nil {
		return models.Book{}, fmt.Errorf("create book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Book{}, err
	}

	return body.Collection, nil
}

func (h *httpServerAdapter) UpdateBook(ctx context.Context, id string, payload models.BookPayload) (models.UpdateResult, error) {
	var result models.UpdateResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", id).
		SetBody(payload).
		SetResult(&result).
		Put("/book-collections/{id}")
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UpdateResult{}, err
	}

	return result, nil
}

func (h *httpServerAdapter) DeleteBook(ctx context.Context, id string) (models.DeleteResult, error) {
	var result models.DeleteResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetPathParam("id", id).
		SetResult(&result).
		Delete("/book-collections/{id}")
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete book request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DeleteResult{}, err
	}

	return result, nil
}

// Version returns the plain-text body of GET /version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get("/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// authedRequest returns a request carrying the stored bearer token.
func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	if h.token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().
		SetContext(ctx).
		SetHeader("Authorization", utils.BearerHeader(h.token)), nil
}
