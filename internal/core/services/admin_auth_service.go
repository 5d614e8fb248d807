package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/investment_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/investment_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/investment_ledger_app/internal/platform/config"
	"github.com/SscSPs/investment_ledger_app/internal/utils"
)

// adminAuthService checks the single operator credential and issues access tokens.
type adminAuthService struct {
	BaseService
	cfg *config.Config
}

// NewAdminAuthService creates the operator login service.
func NewAdminAuthService(cfg *config.Config) portssvc.AdminAuthSvc {
	return &adminAuthService{BaseService: newBaseService(), cfg: cfg}
}

var _ portssvc.AdminAuthSvc = (*adminAuthService)(nil)

func (s *adminAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.cfg.AdminPasswordHash == "" {
		s.LogWarn(ctx, "Admin login attempted while no password hash is configured")
		return "", time.Time{}, fmt.Errorf("%w: admin login is disabled", apperrors.ErrAuthentication)
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.AdminUsername)) == 1
	passOK := utils.CheckPasswordHash(password, s.cfg.AdminPasswordHash)
	if !userOK || !passOK {
		s.LogWarn(ctx, "Admin login failed", slog.String("username", username))
		return "", time.Time{}, fmt.Errorf("%w: invalid credentials", apperrors.ErrAuthentication)
	}

	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(s.cfg.AdminUsername, s.cfg.JWTSecret, issuedAt, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign admin token")
		return "", time.Time{}, err
	}
	s.LogInfo(ctx, "Admin logged in", slog.String("username", username))
	return token, expiresAt, nil
}
