package alert

import "time"

// PolicyInfo describes a policy update being broadcast.
type PolicyInfo struct {
	Title    string `json:"title"`
	Status   string `json:"status"`
	Source   string `json:"source"`
	Deadline string `json:"deadline,omitempty"`
}

// Reminder is a scheduled compliance deadline reminder.
type Reminder struct {
	ID       string    `json:"id"`
	Policy   string    `json:"policy"`
	Deadline string    `json:"deadline"`
	Created  time.Time `json:"created"`
	Type     string    `json:"type"`
}

// DispatchResult reports delivery per integration.
type DispatchResult struct {
	Slack    bool            `json:"slack"`
	Notion   NotionResult    `json:"notion"`
	Calendar *ReminderResult `json:"calendar,omitempty"`
}

// NotionResult reports the outcome of a Notion page creation.
type NotionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	PageID  string `json:"page_id,omitempty"`
}

// ReminderResult reports a scheduled reminder.
type ReminderResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	ReminderID string `json:"reminder_id"`
}
