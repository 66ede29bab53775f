// Package alert pushes policy updates to external collaboration tools:
// a Slack webhook, Notion page creation, and an in-process reminder list
// for compliance deadlines.
package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const reminderTypeDeadline = "compliance_deadline"

// Service fans policy updates out to the configured integrations.
// Unconfigured integrations degrade to a no-op result rather than erroring.
type Service struct {
	slackWebhookURL string
	notionToken     string
	http            *http.Client
	logger          *slog.Logger

	mu        sync.Mutex
	reminders []Reminder
}

// NewService creates an alert service. Either integration setting may be
// empty.
func NewService(slackWebhookURL, notionToken string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		slackWebhookURL: slackWebhookURL,
		notionToken:     notionToken,
		http:            &http.Client{Timeout: 10 * time.Second},
		logger:          logger,
	}
}

// HandlePolicyUpdate dispatches a policy update to every integration and
// schedules a reminder when the update carries a deadline.
func (s *Service) HandlePolicyUpdate(ctx context.Context, info PolicyInfo) DispatchResult {
	result := DispatchResult{
		Slack:  s.sendSlackAlert(ctx, info),
		Notion: s.createNotionPage(info),
	}

	if info.Deadline != "" {
		title := info.Title
		if title == "" {
			title = "Policy"
		}
		reminder := s.ScheduleReminder(title, info.Deadline)
		result.Calendar = &reminder
	}

	return result
}

// sendSlackAlert posts a block-formatted update to the configured webhook.
func (s *Service) sendSlackAlert(ctx context.Context, info PolicyInfo) bool {
	if s.slackWebhookURL == "" {
		s.logger.Debug("slack webhook not configured, skipping alert")
		return false
	}

	title := orUnknown(info.Title)
	status := orUnknown(info.Status)
	source := info.Source
	if source == "" {
		source = "Federal Register"
	}

	message := map[string]any{
		"text": "Policy Update Alert",
		"blocks": []map[string]any{
			{
				"type": "section",
				"text": map[string]any{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Policy:* %s\n*Status:* %s\n*Source:* %s", title, status, source),
				},
			},
		},
	}

	body, err := json.Marshal(message)
	if err != nil {
		s.logger.Warn("slack payload encoding failed", "error", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.slackWebhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Warn("slack notification failed", "error", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		s.logger.Warn("slack notification failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// createNotionPage records a policy tracking page. Without a token the
// creation is simulated so the rest of the dispatch still reports a
// coherent shape.
func (s *Service) createNotionPage(info PolicyInfo) NotionResult {
	title := info.Title
	if title == "" {
		title = "Unknown Policy"
	}

	if s.notionToken == "" {
		return NotionResult{
			Success: true,
			Message: fmt.Sprintf("Policy page created for %s", title),
			PageID:  "notion_page_" + uuid.NewString(),
		}
	}

	// TODO: call the Notion pages API once a workspace database ID is part
	// of the configuration.
	return NotionResult{Success: false, Message: "Notion integration not fully configured"}
}

// ScheduleReminder records a compliance deadline reminder.
func (s *Service) ScheduleReminder(policyName, deadline string) ReminderResult {
	reminder := Reminder{
		ID:       uuid.NewString(),
		Policy:   policyName,
		Deadline: deadline,
		Created:  time.Now(),
		Type:     reminderTypeDeadline,
	}

	s.mu.Lock()
	s.reminders = append(s.reminders, reminder)
	s.mu.Unlock()

	return ReminderResult{
		Success:    true,
		Message:    fmt.Sprintf("Reminder scheduled for %s deadline: %s", policyName, deadline),
		ReminderID: reminder.ID,
	}
}

// UpcomingReminders lists scheduled compliance deadline reminders.
func (s *Service) UpcomingReminders() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Reminder, 0, len(s.reminders))
	for _, r := range s.reminders {
		if r.Type == reminderTypeDeadline {
			out = append(out, r)
		}
	}
	return out
}

func orUnknown(v string) string {
	if v == "" {
		return "Unknown"
	}
	return v
}
