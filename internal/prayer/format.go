package prayer

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Status line modes accepted by FormatOutput. Any other string containing
// "{{" is run as a text/template over StatusFields.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// StatusFields describes an upcoming prayer for status line templates.
type StatusFields struct {
	Name      string
	ShortName string
	Time      string // in the configured TimeFormat
	Remaining string // as FormatRemaining renders it
	Hours     int
	Minutes   int
}

func newStatusFields(p Prayer, now time.Time, tf TimeFormat) StatusFields {
	d := TimeRemaining(p, now)
	short, ok := ShortNames[p.Name]
	if !ok {
		short = p.Name
	}
	return StatusFields{
		Name:      p.Name,
		ShortName: short,
		Time:      FormatClock(p.Time, tf),
		Remaining: FormatRemaining(d),
		Hours:     int(d.Hours()),
		Minutes:   int(d.Minutes()) % 60,
	}
}

var statusLayouts = map[string]func(StatusFields) string{
	FormatTimeRemaining:      func(f StatusFields) string { return f.Remaining },
	FormatNextPrayerTime:     func(f StatusFields) string { return f.Time },
	FormatNameAndTime:        func(f StatusFields) string { return f.Name + " " + f.Time },
	FormatNameAndRemaining:   func(f StatusFields) string { return f.Name + " " + f.Remaining },
	FormatShortNameAndTime:   func(f StatusFields) string { return f.ShortName + " " + f.Time },
	FormatShortNameAndRemain: func(f StatusFields) string { return f.ShortName + " " + f.Remaining },
	FormatFull:               func(f StatusFields) string { return fmt.Sprintf("%s %s (%s)", f.Name, f.Time, f.Remaining) },
}

// FormatOutput renders p as a one-line status, e.g. "Asr 15:02 (2h 15m)".
// Unknown modes fall back to name-and-time. Template errors are returned
// in the output as "template-err: ..." so a status bar shows them.
func FormatOutput(p Prayer, now time.Time, mode string, tf TimeFormat) string {
	fields := newStatusFields(p, now, tf)
	if strings.Contains(mode, "{{") {
		return executeStatus(mode, fields)
	}
	layout, ok := statusLayouts[mode]
	if !ok {
		layout = statusLayouts[FormatNameAndTime]
	}
	return layout(fields)
}

func executeStatus(text string, fields StatusFields) string {
	tmpl, err := template.New("status").Parse(text)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, fields); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return sb.String()
}
