package logstore

import (
	"fmt"
	"strings"
)

const (
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiBlue   = "\033[34m"
	ansiCyan   = "\033[36m"
	ansiReset  = "\033[0m"
)

var levelColors = map[string]string{
	"DEBUG": ansiBlue,
	"INFO":  ansiGreen,
	"WARN":  ansiYellow,
	"ERROR": ansiRed,
}

// Format renders an entry for human display: millisecond timestamp, fixed
// width level and component columns, message, then whitelisted extras.
// Lines that never parsed come back verbatim.
func Format(e Entry, color bool) string {
	if e.Record == nil {
		return strings.TrimSpace(e.Raw)
	}
	r := e.Record

	ts := r.Timestamp
	if len(ts) > 23 {
		ts = ts[:23] // truncate sub-millisecond digits
	}

	level := r.Level
	if level == "" {
		level = "INFO"
	}
	levelStr := fmt.Sprintf("[%-5s]", level)
	if color {
		if c, ok := levelColors[level]; ok {
			levelStr = c + levelStr + ansiReset
		}
	}

	component := r.Component
	if component == "" {
		component = "-"
	}
	componentStr := fmt.Sprintf("[%-8s]", component)
	if color {
		componentStr = ansiCyan + componentStr + ansiReset
	}

	var extras []string
	if r.Region != "" {
		extras = append(extras, "region="+r.Region)
	}
	if r.InstanceType != "" {
		extras = append(extras, "instance="+r.InstanceType)
	}
	if r.DurationMs != 0 {
		extras = append(extras, fmt.Sprintf("duration=%.1fms", r.DurationMs))
	}
	if r.Count != 0 {
		extras = append(extras, fmt.Sprintf("count=%d", r.Count))
	}
	if r.Error != "" {
		errStr := "error=" + r.Error
		if color {
			errStr = ansiRed + errStr + ansiReset
		}
		extras = append(extras, errStr)
	}
	extraStr := ""
	if len(extras) > 0 {
		extraStr = " " + strings.Join(extras, " ")
	}

	return fmt.Sprintf("%s %s %s %s%s", ts, levelStr, componentStr, r.Message, extraStr)
}
