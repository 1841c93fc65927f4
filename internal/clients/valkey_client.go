package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
)

var (
	valkeyInstance *ValkeyClient
	valkeyOnce     sync.Once
)

const (
	VALKEY_RENDERED_PREFIX = "sentiview:rendered:"
	renderedTTLSeconds     = 86400
	valkeyRetries          = 3
)

type ValkeyConfig struct {
	Address  string
	Password string
	UseTLS   bool
}

type ValkeyClient struct {
	Client valkey.Client
	cfg    ValkeyConfig
	mu     sync.Mutex
}

func newValkey(cfg ValkeyConfig) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress:      []string{cfg.Address},
		Password:         cfg.Password,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}
	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey", slog.String("address", cfg.Address))
	return client, nil
}

// InitValkey connects the shared client once. Later calls return the same
// instance and ignore cfg.
func InitValkey(cfg ValkeyConfig) (*ValkeyClient, error) {
	var initErr error
	valkeyOnce.Do(func() {
		client, err := newValkey(cfg)
		if err != nil {
			initErr = err
			return
		}
		valkeyInstance = &ValkeyClient{Client: client, cfg: cfg}
	})
	if initErr != nil {
		return nil, initErr
	}
	if valkeyInstance == nil {
		return nil, fmt.Errorf("[ValkeyClient] earlier initialization failed")
	}
	return valkeyInstance, nil
}

func (vc *ValkeyClient) recreateClient() {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	slog.Warn("[ValkeyClient] Attempting to recreate Valkey client...")
	client, err := newValkey(vc.cfg)
	if err != nil {
		slog.Error("[ValkeyClient] Recreate failed", slog.String("error", err.Error()))
		return
	}
	vc.Client.Close()
	vc.Client = client
}

func (vc *ValkeyClient) client() valkey.Client {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.Client
}

func CloseValkey() {
	if valkeyInstance != nil {
		valkeyInstance.client().Close()
	}
}

func (vc *ValkeyClient) Ping(ctx context.Context) error {
	c := vc.client()
	return c.Do(ctx, c.B().Ping().Build()).Error()
}

// renderedKey is the per-message marker key. Each marker carries its own TTL.
func renderedKey(messageID string) string {
	return VALKEY_RENDERED_PREFIX + messageID
}

// markError folds the nil reply of SET NX, which means the marker already
// exists, into success.
func markError(err error) error {
	if err == nil || valkey.IsValkeyNil(err) {
		return nil
	}
	return fmt.Errorf("[ValkeyClient] failed to mark rendered: %w", err)
}

// MarkRendered records messageID so a redelivery within 24 hours is skipped.
// An existing marker keeps its original expiry.
func (vc *ValkeyClient) MarkRendered(ctx context.Context, messageID string) error {
	c := vc.client()
	cmd := c.B().Set().Key(renderedKey(messageID)).Value("1").Nx().ExSeconds(renderedTTLSeconds).Build().Pin()

	if err := markError(vc.DoWithRetry(ctx, cmd, valkeyRetries).Error()); err != nil {
		return err
	}

	slog.Debug("[ValkeyClient] Marked message as rendered", slog.String("message_id", messageID))
	return nil
}

func (vc *ValkeyClient) IsRendered(ctx context.Context, messageID string) bool {
	c := vc.client()
	res := vc.DoWithRetry(ctx, c.B().Exists().Key(renderedKey(messageID)).Build().Pin(), valkeyRetries)

	n, err := res.AsInt64()
	if err != nil {
		return false
	}
	return n > 0
}

// DoWithRetry resends the same command, so callers must build it with Pin.
// A nil reply is a result, not a failure.
func (vc *ValkeyClient) DoWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = vc.client().Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[ValkeyClient] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		if isConnectionError(err) {
			vc.recreateClient()
		}

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
