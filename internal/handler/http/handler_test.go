package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/mock"
	"github.com/MKhiriev/pass-guard/internal/service"
	"github.com/MKhiriev/pass-guard/models"
	"go.uber.org/mock/gomock"
)

const (
	validToken = "valid-token"
	ownerID    = int64(7)
	itemID     = "0190d9a4-6c2e-7f3a-9b1d-2e4f6a8c0b1d"
)

type handlerFixture struct {
	auth   *mock.MockAuthService
	vault  *mock.MockVaultService
	info   *mock.MockAppInfoService
	router http.Handler
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newHandlerFixture(t *testing.T, health HealthChecker) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &handlerFixture{
		auth:  mock.NewMockAuthService(ctrl),
		vault: mock.NewMockVaultService(ctrl),
		info:  mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:    f.auth,
		VaultService:   f.vault,
		AppInfoService: f.info,
	}, health, logger.Nop())
	f.router = h.Init()

	return f
}

// do sends a request through the full router. A non-empty token is sent as
// a bearer header.
func (f *handlerFixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *handlerFixture) expectValidToken() {
	f.auth.EXPECT().ParseToken(gomock.Any(), validToken).Return(models.Token{UserID: ownerID}, nil)
}

func bodyMessage(rec *httptest.ResponseRecorder) string {
	return strings.TrimSpace(rec.Body.String())
}
