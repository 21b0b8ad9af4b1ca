package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/pass-guard/internal/logger"
	"github.com/MKhiriev/pass-guard/internal/utils"
	"github.com/MKhiriev/pass-guard/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. address may omit the scheme, in which case http is
// assumed.
//
// Returns an error if address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(address string, timeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
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

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register implements [ServerAdapter] via POST /api/user/register.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		Post("/api/user/register")
	if err != nil {
		return "", fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return h.storeToken(resp)
}

// Params implements [ServerAdapter] via POST /api/user/params.
func (h *httpServerAdapter) Params(ctx context.Context, login string) (models.User, error) {
	var params models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: login}).
		SetResult(&params).
		Post("/api/user/params")
	if err != nil {
		return models.User{}, fmt.Errorf("params request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return params.KeyParams(), nil
}

// Login implements [ServerAdapter] via POST /api/user/login.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, AuthHash: user.AuthHash}).
		Post("/api/user/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return h.storeToken(resp)
}

// Rekey implements [ServerAdapter] via POST /api/user/rekey.
func (h *httpServerAdapter) Rekey(ctx context.Context, req models.RekeyRequest) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/user/rekey")
	if err != nil {
		return fmt.Errorf("rekey request: %w", err)
	}

	return mapHTTPError(resp)
}

// CreateItem implements [ServerAdapter] via POST /api/vault/.
func (h *httpServerAdapter) CreateItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	var created models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(record).
		SetResult(&created).
		Post("/api/vault/")
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("create item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return created, nil
}

// GetItem implements [ServerAdapter] via GET /api/vault/{itemID}.
func (h *httpServerAdapter) GetItem(ctx context.Context, itemID string) (models.VaultRecord, error) {
	var record models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetPathParam("itemID", itemID).
		SetResult(&record).
		Get("/api/vault/{itemID}")
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("get item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return record, nil
}

// ListItems implements [ServerAdapter] via GET /api/vault/?search=.
func (h *httpServerAdapter) ListItems(ctx context.Context, search string) ([]models.VaultRecord, error) {
	var records []models.VaultRecord

	req := h.authedRequest(ctx).SetResult(&records)
	if search != "" {
		req.SetQueryParam("search", search)
	}

	resp, err := req.Get("/api/vault/")
	if err != nil {
		return nil, fmt.Errorf("list items request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.VaultRecord{}
	}
	return records, nil
}

// UpdateItem implements [ServerAdapter] via PUT /api/vault/{itemID}.
func (h *httpServerAdapter) UpdateItem(ctx context.Context, record models.VaultRecord) (models.VaultRecord, error) {
	var updated models.VaultRecord

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("itemID", record.ItemID).
		SetBody(record).
		SetResult(&updated).
		Put("/api/vault/{itemID}")
	if err != nil {
		return models.VaultRecord{}, fmt.Errorf("update item request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VaultRecord{}, err
	}

	return updated, nil
}

// DeleteItem implements [ServerAdapter] via DELETE /api/vault/{itemID}.
func (h *httpServerAdapter) DeleteItem(ctx context.Context, itemID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("itemID", itemID).
		Delete("/api/vault/{itemID}")
	if err != nil {
		return fmt.Errorf("delete item request: %w", err)
	}

	return mapHTTPError(resp)
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var body struct {
		Version string `json:"version"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return body.Version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func (h *httpServerAdapter) storeToken(resp *resty.Response) (string, error) {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoToken, err)
	}

	h.SetToken(token)
	return token, nil
}
