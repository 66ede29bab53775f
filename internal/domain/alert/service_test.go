package alert_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/policynav/policynav/internal/domain/alert"
)

func TestService_SlackAlertPostsBlocks(t *testing.T) {
	var received map[string]any
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer webhook.Close()

	svc := alert.NewService(webhook.URL, "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{
		Title:  "Executive Order 14067",
		Status: "active",
	})

	require.True(t, result.Slack)
	require.Equal(t, "Policy Update Alert", received["text"])
	blocks, ok := received["blocks"].([]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)
}

func TestService_SlackUnconfiguredIsNoop(t *testing.T) {
	svc := alert.NewService("", "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{Title: "X"})
	require.False(t, result.Slack)
}

func TestService_SlackNon200ReportsFalse(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer webhook.Close()

	svc := alert.NewService(webhook.URL, "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{Title: "X"})
	require.False(t, result.Slack)
}

func TestService_NotionSimulatedWithoutToken(t *testing.T) {
	svc := alert.NewService("", "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{Title: "GDPR"})

	require.True(t, result.Notion.Success)
	require.Contains(t, result.Notion.Message, "GDPR")
	require.NotEmpty(t, result.Notion.PageID)
}

func TestService_DeadlineSchedulesReminder(t *testing.T) {
	svc := alert.NewService("", "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{
		Title:    "SOX",
		Deadline: "2026-12-31",
	})

	require.NotNil(t, result.Calendar)
	require.True(t, result.Calendar.Success)
	require.NotEmpty(t, result.Calendar.ReminderID)

	reminders := svc.UpcomingReminders()
	require.Len(t, reminders, 1)
	require.Equal(t, "SOX", reminders[0].Policy)
	require.Equal(t, "2026-12-31", reminders[0].Deadline)
}

func TestService_NoDeadlineNoReminder(t *testing.T) {
	svc := alert.NewService("", "", nil)
	result := svc.HandlePolicyUpdate(context.Background(), alert.PolicyInfo{Title: "ADA"})

	require.Nil(t, result.Calendar)
	require.Empty(t, svc.UpcomingReminders())
}
