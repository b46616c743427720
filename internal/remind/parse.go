package remind

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aide/internal/llm"
)

// parsed is the JSON shape the model returns for schedule extraction.
type parsed struct {
	Text string `json:"text"`
	Date string `json:"date"` // YYYY-MM-DD or empty
	Time string `json:"time"` // HH:MM or empty
}

const parseSystem = `You extract reminder schedules from free text.
Reply with exactly one JSON object:
{"text": "<the reminder without the schedule words>", "date": "YYYY-MM-DD", "time": "HH:MM"}
Resolve relative dates ("tomorrow", "friday") against the reference date given.
Use an empty string for date or time when the text names none.`

// ParseSchedule asks the model to split free text into reminder text and an
// optional due time. When no schedule is found, or the model's answer is
// unusable, the original text is kept and due is nil.
func ParseSchedule(ctx context.Context, model llm.Client, text string, now time.Time) (string, *time.Time) {
	prompt := fmt.Sprintf("Reference date: %s (%s)\nReminder: %s",
		now.Format("2006-01-02 15:04"), now.Weekday(), text)

	raw, err := model.Generate(ctx, parseSystem, prompt)
	if err != nil {
		return text, nil
	}

	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start < 0 || end <= start {
		return text, nil
	}

	var p parsed
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return text, nil
	}

	kept := strings.TrimSpace(p.Text)
	if kept == "" {
		kept = text
	}

	due := resolve(p.Date, p.Time, now)
	return kept, due
}

// resolve turns the extracted date/time strings into a concrete due time.
// A time without a date means today (or tomorrow if already past).
func resolve(date, clock string, now time.Time) *time.Time {
	if date == "" && clock == "" {
		return nil
	}

	day := now
	if date != "" {
		d, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return nil
		}
		day = d
	}

	hour, minute := 9, 0 // default morning slot for date-only reminders
	if clock != "" {
		t, err := time.Parse("15:04", clock)
		if err != nil {
			return nil
		}
		hour, minute = t.Hour(), t.Minute()
	}

	due := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
	if date == "" && due.Before(now) {
		due = due.Add(24 * time.Hour)
	}
	return &due
}
