package tool

import (
	"context"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"taskchat/internal/application/port/output"
	"taskchat/internal/domain/entity"
)

var _ output.ToolPort = (*ClockTool)(nil)

const (
	defaultTimezone = "UTC"
	clockLayout     = "2006-01-02 15:04:05"
)

type ClockTool struct {
	clock  output.Clock
	logger output.LoggerPort
}

func NewClockTool(clock output.Clock, logger output.LoggerPort) *ClockTool {
	return &ClockTool{clock: clock, logger: logger}
}

func (t *ClockTool) Name() entity.ToolName { return entity.ToolGetTime }
func (t *ClockTool) Description() string {
	return "Get the current date and time in a specific timezone, including the day of the week."
}
func (t *ClockTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"timezone": map[string]interface{}{
				"type":        "string",
				"default":     defaultTimezone,
				"description": "IANA timezone (e.g., 'America/New_York', 'Europe/Paris', 'Asia/Tokyo')",
			},
		},
	}
}

func (t *ClockTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Timezone string `json:"timezone"`
	}
	if err := decodeArgs(args, &input); err != nil {
		return fmt.Sprintf("Error getting time for timezone: %s. Please check the timezone name.", args), nil
	}

	tz := strings.TrimSpace(input.Timezone)
	if tz == "" {
		tz = defaultTimezone
	}

	// LoadLocation accepts "Local", which would leak the server's zone.
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "Local" {
		t.logger.Warn("Unknown timezone", "timezone", tz, "error", err)
		return fmt.Sprintf("Error getting time for timezone: %s. Please check the timezone name.", tz), nil
	}

	now := t.clock.Now().In(loc)
	return fmt.Sprintf("Current time in %s: %s (%s)", tz, now.Format(clockLayout), now.Weekday()), nil
}
