package realtime

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/theoremus-urban-solutions/smart-schedule/gtfsrt"
	"github.com/theoremus-urban-solutions/smart-schedule/schedule"
)

// Severity buckets alert effects for presentation.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// AlertView is a presentation-ready service alert with cleaned text.
type AlertView struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Message  string   `json:"message,omitempty"`
	Severity Severity `json:"severity"`
	StartsAt string   `json:"startsAt,omitempty"`
	EndsAt   string   `json:"endsAt,omitempty"`
	URL      string   `json:"url,omitempty"`
}

// AlertFilter decides which feed alerts apply to a rider's station pair.
type AlertFilter struct {
	stopToStation map[string]schedule.Station
}

// NewAlertFilter builds a filter over the GTFS stop id to station mapping.
func NewAlertFilter(stopToStation map[string]schedule.Station) *AlertFilter {
	return &AlertFilter{stopToStation: stopToStation}
}

// RelevantAlerts returns presentation-ready views of the alerts that are
// active at now and relevant to the (from, to) pair. Empty from and to means
// no station selection, which keeps every active alert.
func (f *AlertFilter) RelevantAlerts(feed *gtfsrt.AlertsFeed, from, to schedule.Station, now time.Time) []AlertView {
	out := []AlertView{}
	if feed == nil {
		return out
	}
	nowSec := now.Unix()
	for _, a := range feed.Alerts {
		if !alertActive(a, nowSec) {
			continue
		}
		if !f.IsRelevant(a, from, to) {
			continue
		}
		out = append(out, buildAlertView(a, nowSec))
	}
	return out
}

// IsRelevant ORs relevance across the alert's informed entities. Only stop
// ids can narrow an alert to a station pair; entities naming a route, agency
// or trip alone always match, as does an alert with no entities at all.
// Unmapped stop ids match too: showing an alert about an unknown stop beats
// hiding one about a known stop under a new id.
func (f *AlertFilter) IsRelevant(a gtfsrt.Alert, from, to schedule.Station) bool {
	if len(a.InformedEntities) == 0 {
		return true
	}
	for _, e := range a.InformedEntities {
		if e.StopID == "" {
			return true
		}
		if from == "" && to == "" {
			return true
		}
		st, ok := f.stopToStation[e.StopID]
		if !ok || st == from || st == to {
			return true
		}
	}
	return false
}

// alertActive reports whether the alert is in one of its active windows.
// No windows means always active; a zero bound means open-ended.
func alertActive(a gtfsrt.Alert, nowSec int64) bool {
	if len(a.ActivePeriods) == 0 {
		return true
	}
	for _, p := range a.ActivePeriods {
		if (p.Start == 0 || p.Start <= nowSec) && (p.End == 0 || p.End >= nowSec) {
			return true
		}
	}
	return false
}

func buildAlertView(a gtfsrt.Alert, nowSec int64) AlertView {
	title := CleanAlertText(a.HeaderText)
	if title == "" {
		title = "Service Alert"
	}
	message := CleanAlertText(a.DescriptionText)
	if message == title {
		// The agency frequently publishes the header twice.
		message = ""
	}

	v := AlertView{
		ID:       a.ID,
		Title:    title,
		Message:  message,
		Severity: severityForEffect(a.Effect),
		URL:      a.URL,
	}
	if p, ok := displayPeriod(a, nowSec); ok {
		if p.Start > 0 {
			v.StartsAt = time.Unix(p.Start, 0).UTC().Format(time.RFC3339)
		}
		if p.End > 0 {
			v.EndsAt = time.Unix(p.End, 0).UTC().Format(time.RFC3339)
		}
	}
	return v
}

// displayPeriod picks the currently matching active period, or the first one
// when none match.
func displayPeriod(a gtfsrt.Alert, nowSec int64) (gtfsrt.ActivePeriod, bool) {
	if len(a.ActivePeriods) == 0 {
		return gtfsrt.ActivePeriod{}, false
	}
	for _, p := range a.ActivePeriods {
		if (p.Start == 0 || p.Start <= nowSec) && (p.End == 0 || p.End >= nowSec) {
			return p, true
		}
	}
	return a.ActivePeriods[0], true
}

func severityForEffect(effect string) Severity {
	switch effect {
	case "NO_SERVICE", "STOP_MOVED":
		return SeverityCritical
	case "REDUCED_SERVICE", "SIGNIFICANT_DELAYS", "DETOUR":
		return SeverityWarning
	case "ADDITIONAL_SERVICE", "MODIFIED_SERVICE", "OTHER_EFFECT", "UNKNOWN_EFFECT", "ACCESSIBILITY_ISSUE", "NO_EFFECT":
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

var (
	alertJunkRe  = regexp.MustCompile(`[^\p{L}\p{N}.\s]+`)
	alertSpaceRe = regexp.MustCompile(`\s+`)
)

// CleanAlertText strips decorative characters, collapses whitespace and
// converts all-caps agency text to sentence case. Idempotent: cleaning
// already-clean text returns it unchanged.
func CleanAlertText(s string) string {
	s = alertJunkRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(alertSpaceRe.ReplaceAllString(s, " "))
	if s == "" {
		return s
	}
	if s == strings.ToUpper(s) && s != strings.ToLower(s) {
		r := []rune(strings.ToLower(s))
		r[0] = unicode.ToUpper(r[0])
		s = string(r)
	}
	return s
}
