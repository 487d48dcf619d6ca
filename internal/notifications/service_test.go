package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelfmark/internal/config"
	"shelfmark/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.NotifyScanCompleted(context.Background(), "/library", 10, 3); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		publish        func(context.Context, notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "scan completed",
			publish: func(ctx context.Context, svc notifications.Service) error {
				return svc.NotifyScanCompleted(ctx, "/library", 12, 9)
			},
			expectTitle:   "Shelfmark - Scan Complete",
			expectMessage: "Scanned 12 archives in /library: 9 ready to rename",
			expectTags:    "shelfmark,scan,completed",
		},
		{
			name: "batch applied cleanly",
			publish: func(ctx context.Context, svc notifications.Service) error {
				return svc.NotifyBatchApplied(ctx, "/library", 9, 0)
			},
			expectTitle:   "Shelfmark - Renames Applied",
			expectMessage: "Renamed 9 archives in /library",
			expectTags:    "shelfmark,apply,completed",
		},
		{
			name: "batch applied with failures",
			publish: func(ctx context.Context, svc notifications.Service) error {
				return svc.NotifyBatchApplied(ctx, "/library", 7, 2)
			},
			expectTitle:   "Shelfmark - Renames Applied (with errors)",
			expectMessage: "Renamed 7 archives in /library, 2 failed",
			expectTags:    "shelfmark,apply,completed",
		},
		{
			name: "quota exhausted",
			publish: func(ctx context.Context, svc notifications.Service) error {
				return svc.NotifyQuotaExhausted(ctx, "Google Books")
			},
			expectTitle:    "Shelfmark - Quota Exhausted",
			expectMessage:  "Google Books daily quota exhausted, online lookups suspended",
			expectTags:     "shelfmark,quota,alert",
			expectPriority: "high",
		},
		{
			name: "error with context",
			publish: func(ctx context.Context, svc notifications.Service) error {
				return svc.NotifyError(ctx, errors.New("boom"), "scan")
			},
			expectTitle:    "Shelfmark - Error",
			expectMessage:  "Error with scan: boom",
			expectTags:     "shelfmark,error,alert",
			expectPriority: "high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotTitle, gotMessage, gotTags, gotPriority string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				gotMessage = string(body)
				gotTitle = r.Header.Get("Title")
				gotTags = r.Header.Get("Tags")
				gotPriority = r.Header.Get("Priority")
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			svc := notifications.NewService(&cfg)

			if err := tt.publish(context.Background(), svc); err != nil {
				t.Fatalf("publish: %v", err)
			}
			if gotTitle != tt.expectTitle {
				t.Errorf("title = %q, want %q", gotTitle, tt.expectTitle)
			}
			if gotMessage != tt.expectMessage {
				t.Errorf("message = %q, want %q", gotMessage, tt.expectMessage)
			}
			if gotTags != tt.expectTags {
				t.Errorf("tags = %q, want %q", gotTags, tt.expectTags)
			}
			if gotPriority != tt.expectPriority {
				t.Errorf("priority = %q, want %q", gotPriority, tt.expectPriority)
			}
		})
	}
}

func TestNtfyServiceReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL
	svc := notifications.NewService(&cfg)

	if err := svc.TestNotification(context.Background()); err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
}
