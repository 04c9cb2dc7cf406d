// Package authsvc implementa el colaborador externo de autorización de
// salidas: verifica la credencial del portador contra el servicio de
// identidad y decide la capacidad de retiro por rol y afiliación de almacén.
package authsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/movement"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

var _ movement.IssueAuthorizer = (*Client)(nil)

// verifyResponse es el cuerpo que devuelve GET {base}/verify/ con 200.
type verifyResponse struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	WarehouseID string `json:"warehouse_id"`
}

type cacheEntry struct {
	subject   verifyResponse
	expiresAt time.Time
}

// Client consulta el servicio de identidad. Las verificaciones exitosas se
// cachean por credencial durante un TTL corto para no golpear al servicio en
// cada movimiento; las negaciones y los fallos de transporte no se cachean.
type Client struct {
	baseURL string
	http    *http.Client
	ttl     time.Duration
	log     *logger.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// Options parámetros del cliente; Timeout y TTL tienen defaults razonables.
type Options struct {
	BaseURL string
	Timeout time.Duration
	TTL     time.Duration
	Logger  *logger.Logger
}

// New construye el cliente de autorización.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 3 * time.Second
	}
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    &http.Client{Timeout: opts.Timeout},
		ttl:     opts.TTL,
		log:     opts.Logger,
		cache:   make(map[string]cacheEntry),
	}
}

// AuthorizeIssue verifica la credencial y decide si el sujeto puede retirar
// stock del almacén indicado. Devuelve domain.ErrUnauthorized si el servicio
// niega la credencial o el rol no alcanza, y domain.ErrServiceUnavailable si
// el servicio no responde dentro del timeout.
func (c *Client) AuthorizeIssue(ctx context.Context, credential, warehouseID string) (*movement.IssueAuthorization, error) {
	subject, err := c.verify(ctx, credential)
	if err != nil {
		return nil, err
	}
	if !domain.CanIssueFrom(subject.Role, subject.WarehouseID, warehouseID) {
		return nil, domain.ErrUnauthorized
	}
	return &movement.IssueAuthorization{
		SubjectID:   subject.UserID,
		Role:        subject.Role,
		WarehouseID: subject.WarehouseID,
	}, nil
}

func (c *Client) verify(ctx context.Context, credential string) (*verifyResponse, error) {
	if credential == "" {
		return nil, domain.ErrUnauthorized
	}

	c.mu.Lock()
	if entry, ok := c.cache[credential]; ok && time.Now().Before(entry.expiresAt) {
		subject := entry.subject
		c.mu.Unlock()
		return &subject, nil
	}
	c.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/verify/", nil)
	if err != nil {
		return nil, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := c.http.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.Warn().Err(err).Msg("servicio de autorización inalcanzable")
		}
		return nil, domain.ErrServiceUnavailable
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		var subject verifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&subject); err != nil {
			return nil, fmt.Errorf("decode verify response: %w", err)
		}
		c.mu.Lock()
		c.cache[credential] = cacheEntry{subject: subject, expiresAt: time.Now().Add(c.ttl)}
		c.mu.Unlock()
		return &subject, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, domain.ErrUnauthorized
	default:
		if c.log != nil {
			c.log.Warn().Int("status", resp.StatusCode).Msg("respuesta inesperada del servicio de autorización")
		}
		return nil, domain.ErrServiceUnavailable
	}
}
