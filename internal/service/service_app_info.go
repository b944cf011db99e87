package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/book-collections/internal/config"
	"github.com/MKhiriev/book-collections/internal/logger"
)

// appInfoService reports static facts about the running build.
type appInfoService struct {
	version string

	logger *logger.Logger
}

// NewAppInfoService returns ErrVersionIsNotSpecified when cfg.Version is
// blank.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("app info service configured")
	return &appInfoService{version: version, logger: logger}, nil
}

// GetAppVersion returns the text served by GET /version.
func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
