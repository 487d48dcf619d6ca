package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelfmark/internal/config"
)

const userAgent = "Shelfmark/0.1"

// Service defines the notification surface exposed to scan and rename code.
type Service interface {
	NotifyScanCompleted(ctx context.Context, dir string, total, resolved int) error
	NotifyBatchApplied(ctx context.Context, dir string, renamed, failed int) error
	NotifyBatchReverted(ctx context.Context, dir string, restored int) error
	NotifyQuotaExhausted(ctx context.Context, source string) error
	NotifyError(ctx context.Context, err error, context string) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyScanCompleted(ctx context.Context, dir string, total, resolved int) error {
	data := payload{
		title:   "Shelfmark - Scan Complete",
		message: fmt.Sprintf("Scanned %d archives in %s: %d ready to rename", total, dir, resolved),
		tags:    []string{"shelfmark", "scan", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBatchApplied(ctx context.Context, dir string, renamed, failed int) error {
	var title, message string
	if failed == 0 {
		title = "Shelfmark - Renames Applied"
		message = fmt.Sprintf("Renamed %d archives in %s", renamed, dir)
	} else {
		title = "Shelfmark - Renames Applied (with errors)"
		message = fmt.Sprintf("Renamed %d archives in %s, %d failed", renamed, dir, failed)
	}
	data := payload{
		title:   title,
		message: message,
		tags:    []string{"shelfmark", "apply", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyBatchReverted(ctx context.Context, dir string, restored int) error {
	data := payload{
		title:   "Shelfmark - Batch Undone",
		message: fmt.Sprintf("Restored %d original names in %s", restored, dir),
		tags:    []string{"shelfmark", "undo", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyQuotaExhausted(ctx context.Context, source string) error {
	source = strings.TrimSpace(source)
	data := payload{
		title:    "Shelfmark - Quota Exhausted",
		message:  fmt.Sprintf("%s daily quota exhausted, online lookups suspended", source),
		tags:     []string{"shelfmark", "quota", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyError(ctx context.Context, err error, contextLabel string) error {
	var builder strings.Builder
	builder.WriteString("Error")
	if contextLabel = strings.TrimSpace(contextLabel); contextLabel != "" {
		builder.WriteString(" with ")
		builder.WriteString(contextLabel)
	}
	builder.WriteString(": ")
	if err != nil {
		builder.WriteString(strings.TrimSpace(err.Error()))
	} else {
		builder.WriteString("unknown")
	}

	data := payload{
		title:    "Shelfmark - Error",
		message:  builder.String(),
		tags:     []string{"shelfmark", "error", "alert"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Shelfmark - Test",
		message:  "Notification system test",
		tags:     []string{"shelfmark", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) NotifyScanCompleted(context.Context, string, int, int) error { return nil }
func (noopService) NotifyBatchApplied(context.Context, string, int, int) error  { return nil }
func (noopService) NotifyBatchReverted(context.Context, string, int) error      { return nil }
func (noopService) NotifyQuotaExhausted(context.Context, string) error          { return nil }
func (noopService) NotifyError(context.Context, error, string) error            { return nil }
func (noopService) TestNotification(context.Context) error                      { return nil }
