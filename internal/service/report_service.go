package service

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/iqbalrpambudi/disc-examination/internal/dataset"
	"github.com/iqbalrpambudi/disc-examination/internal/model"
)

// Percentages holds each category's rounded share of the answers. The
// values are rounded independently, so they need not sum to exactly 100.
type Percentages struct {
	D int `json:"D"`
	I int `json:"I"`
	S int `json:"S"`
	C int `json:"C"`
}

// ReportData is the single substitution model every report rendering is
// built from. Producing text, HTML and PDF output from one struct
// guarantees the variants never disagree on the numbers.
type ReportData struct {
	DominantLetter string      `json:"dominant_letter"`
	DominantName   string      `json:"dominant_name"`
	DominantTitle  string      `json:"dominant_title"`
	Description    string      `json:"description"`
	WorkStyle      string      `json:"work_style"`
	Strengths      []string    `json:"strengths"`
	Challenges     []string    `json:"challenges"`
	Percentages    Percentages `json:"percentages"`
	Email          string      `json:"email"`
	TestDate       string      `json:"test_date"`
	CompletionTime string      `json:"completion_time"`
	Duration       string      `json:"duration"`
}

// Subject returns the results email subject line.
func (d *ReportData) Subject() string {
	return fmt.Sprintf("Your DISC Assessment Results: %s (%s)", d.DominantName, d.DominantLetter)
}

// ReportService turns a completed session into rendered reports. All
// methods are pure functions of their inputs.
type ReportService struct {
	catalog *dataset.Catalog
}

// NewReportService creates a ReportService over the profile catalog.
func NewReportService(catalog *dataset.Catalog) *ReportService {
	return &ReportService{catalog: catalog}
}

// BuildReportData computes the substitution model for a completed session.
// Preconditions: the session is completed and has a dominant category; a
// session finished without a single answer has no dominant style and
// cannot produce a report.
func (r *ReportService) BuildReportData(session *model.Session) (*ReportData, error) {
	if session.Status != model.SessionStatusCompleted {
		return nil, model.ErrNotCompleted
	}
	if session.DominantCategory == nil {
		return nil, model.ErrNotCompleted
	}

	profile := r.catalog.Profile(*session.DominantCategory)
	tally := session.Tally

	data := &ReportData{
		DominantLetter: string(profile.Category),
		DominantName:   profile.DisplayName,
		DominantTitle:  profile.Title,
		Description:    profile.Description,
		WorkStyle:      profile.WorkStyle,
		Strengths:      profile.Strengths,
		Challenges:     profile.Challenges,
		Percentages: Percentages{
			D: percentage(tally.D, tally.Total()),
			I: percentage(tally.I, tally.Total()),
			S: percentage(tally.S, tally.Total()),
			C: percentage(tally.C, tally.Total()),
		},
		Email:          session.Email,
		TestDate:       formatTimestamp(session.StartedAt),
		CompletionTime: formatTimestamp(session.CompletedAt),
		Duration:       formatDuration(session),
	}
	return data, nil
}

// RenderHTML produces the styled report markup. Deterministic: identical
// input yields byte-identical output.
func (r *ReportService) RenderHTML(data *ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportHTMLTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return buf.String(), nil
}

// RenderText produces the plain-text report from the same model.
func (r *ReportService) RenderText(data *ReportData) (string, error) {
	var buf bytes.Buffer
	if err := reportTextTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render text report: %w", err)
	}
	return buf.String(), nil
}

// percentage computes round(100*count/total). A zero total maps every
// share to 0 rather than dividing by zero.
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(count) / float64(total)))
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("Jan 2, 2006, 03:04 PM")
}

func formatDuration(session *model.Session) string {
	secs, ok := session.ElapsedSeconds(time.Now())
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%dm %ds", secs/60, secs%60)
}
