package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sngm3741/ugym-konect/api/internal/public/domain"
)

// FailureRecorder は送信に失敗した通知を再送用に保存する。
type FailureRecorder interface {
	Record(ctx context.Context, target string, payload map[string]any, cause error, attempts int) error
}

// Config は messenger-gateway への接続設定。
type Config struct {
	Endpoint           string
	Destination        string
	DiscordDestination string
	SlackDestination   string
	AdminBaseURL       string
	HTTPClient         *http.Client
	Failures           FailureRecorder
	Logger             *log.Logger
	RetryDelay         time.Duration
}

// Notifier は問い合わせを事業者 (LINE) と運営チャンネル (Discord → Slack) へ転送する。
type Notifier struct {
	endpoint           string
	destination        string
	discordDestination string
	slackDestination   string
	adminBaseURL       string
	httpClient         *http.Client
	failures           FailureRecorder
	logger             *log.Logger
	retryDelay         time.Duration
}

const (
	discordAttempts     = 3
	defaultTimeout      = 5 * time.Second
	adminFailureTarget  = "admin_notification"
	businessFailureTarg = "business_notification"
)

func NewNotifier(cfg Config) *Notifier {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	delay := cfg.RetryDelay
	if delay < 0 {
		delay = 0
	}
	return &Notifier{
		endpoint:           strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
		destination:        strings.TrimSpace(cfg.Destination),
		discordDestination: strings.TrimSpace(cfg.DiscordDestination),
		slackDestination:   strings.TrimSpace(cfg.SlackDestination),
		adminBaseURL:       strings.TrimRight(strings.TrimSpace(cfg.AdminBaseURL), "/"),
		httpClient:         client,
		failures:           cfg.Failures,
		logger:             cfg.Logger,
		retryDelay:         delay,
	}
}

// NotifyInquiry は事業者への通知が失敗した場合のみエラーを返す。
// 運営チャンネルへの失敗は failed_notifications に記録して握りつぶす。
func (n *Notifier) NotifyInquiry(ctx context.Context, inquiry domain.Inquiry, provider domain.Provider) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var businessErr error
	if businessID := strings.TrimSpace(provider.BusinessID); businessID != "" {
		businessErr = n.send(ctx, n.destination, businessID, buildBusinessMessage(inquiry, provider))
		if businessErr != nil {
			n.logf("事業者への通知に失敗: %v", businessErr)
			n.recordFailure(ctx, businessFailureTarg, inquiry, provider, businessErr, 1)
		}
	}

	n.notifyAdminChannels(ctx, inquiry, provider)
	return businessErr
}

func (n *Notifier) notifyAdminChannels(ctx context.Context, inquiry domain.Inquiry, provider domain.Provider) {
	if n.discordDestination == "" && n.slackDestination == "" {
		return
	}

	identifier := inquiry.Reference
	if identifier == "" {
		identifier = inquiry.ID
	}
	if identifier == "" {
		identifier = "admin"
	}

	var discordErr, slackErr error
	attempts := 0

	if n.discordDestination != "" {
		discordErr = n.sendWithRetry(ctx, n.discordDestination, identifier, buildDiscordMessage(n.adminBaseURL, inquiry, provider), discordAttempts, n.retryDelay)
		attempts += discordAttempts
		if discordErr == nil {
			return
		}
		n.logf("Discord通知の送信に失敗: %v", discordErr)
	}

	if n.slackDestination != "" {
		slackErr = n.sendWithRetry(ctx, n.slackDestination, identifier, buildSlackMessage(n.adminBaseURL, inquiry, provider), 1, 0)
		attempts++
		if slackErr == nil {
			return
		}
		n.logf("Slack通知の送信に失敗: %v", slackErr)
	}

	n.recordFailure(ctx, adminFailureTarget, inquiry, provider, errors.Join(discordErr, slackErr), attempts)
}

func (n *Notifier) recordFailure(ctx context.Context, target string, inquiry domain.Inquiry, provider domain.Provider, cause error, attempts int) {
	if n.failures == nil || cause == nil {
		return
	}
	payload := map[string]any{
		"inquiryId":  inquiry.ID,
		"reference":  inquiry.Reference,
		"type":       string(inquiry.Type),
		"listingId":  inquiry.ListingID,
		"businessId": provider.BusinessID,
		"provider":   provider.Name,
		"from":       inquiry.From.Name,
		"email":      inquiry.From.Email,
		"message":    inquiry.Message,
	}
	if err := n.failures.Record(ctx, target, payload, cause, attempts); err != nil {
		n.logf("failed_notifications への保存に失敗: %v", err)
	}
}

func (n *Notifier) sendWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	if strings.TrimSpace(destination) == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		err := n.send(ctx, destination, userID, text)
		if err == nil {
			return nil
		}
		lastErr = err
		if delay > 0 && i < attempts-1 {
			select {
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			case <-time.After(delay):
			}
		}
	}
	return lastErr
}

func (n *Notifier) send(ctx context.Context, destination, userID, text string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": userID,
		"text":   text,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := n.httpClient.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint+"/messages", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}
	return nil
}

func (n *Notifier) logf(format string, args ...any) {
	if n.logger != nil {
		n.logger.Printf(format, args...)
	}
}
