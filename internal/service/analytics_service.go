package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

// Supported report range tokens. Anything else falls back to the default.
const (
	defaultRangeDays = 7

	RangeWeek    = "7d"
	RangeMonth   = "30d"
	RangeQuarter = "90d"
)

// AnalyticsService is the read-only reporting surface. It owns date-range
// semantics and always returns a well-formed report, even for a form with
// no activity at all.
type AnalyticsService interface {
	GetFormAnalytics(ctx context.Context, userID int, formID, rangeToken string) (model.FormAnalyticsReport, error)
}

type analyticsService struct {
	forms       repository.FormRepository
	events      repository.EventRepository
	sessions    repository.SessionRepository
	submissions repository.SubmissionRepository
	now         func() time.Time
}

// NewAnalyticsService constructs an analyticsService.
func NewAnalyticsService(
	forms repository.FormRepository,
	events repository.EventRepository,
	sessions repository.SessionRepository,
	submissions repository.SubmissionRepository,
) AnalyticsService {
	return &analyticsService{
		forms:       forms,
		events:      events,
		sessions:    sessions,
		submissions: submissions,
		now:         time.Now,
	}
}

// GetFormAnalytics verifies ownership, resolves the range token and computes
// the report over the rows in range. Missing and non-owned forms are not
// distinguished.
func (s *analyticsService) GetFormAnalytics(ctx context.Context, userID int, formID, rangeToken string) (model.FormAnalyticsReport, error) {
	if _, err := s.forms.GetOwned(ctx, formID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.FormAnalyticsReport{}, &NotFoundError{Message: "form not found"}
		}
		return model.FormAnalyticsReport{}, err
	}

	to := s.now().UTC()
	from := to.AddDate(0, 0, -rangeDays(rangeToken))

	events, err := s.events.ListByFormBetween(ctx, formID, from, to)
	if err != nil {
		return model.FormAnalyticsReport{}, err
	}

	sessions, err := s.sessions.ListStartedBetween(ctx, formID, from, to)
	if err != nil {
		return model.FormAnalyticsReport{}, err
	}

	submissions, err := s.submissions.ListByFormBetween(ctx, formID, from, to)
	if err != nil {
		return model.FormAnalyticsReport{}, err
	}

	return buildReport(events, sessions, submissions), nil
}

// rangeDays maps a range token to its window length. Unrecognized tokens
// silently fall back to the default week window.
func rangeDays(token string) int {
	switch token {
	case RangeMonth:
		return 30
	case RangeQuarter:
		return 90
	default:
		return defaultRangeDays
	}
}

// buildReport computes the full report from already-fetched rows. It is a
// pure function: identical inputs produce identical output, with every
// sequence explicitly sorted.
func buildReport(events []model.InteractionEvent, sessions []model.SessionAggregate, submissions []model.Submission) model.FormAnalyticsReport {
	return model.FormAnalyticsReport{
		Overview:          buildOverview(events, sessions, submissions),
		SubmissionsByDate: buildDailySeries(events, submissions),
		FieldAnalytics:    buildFieldAnalytics(events),
		DeviceAnalytics:   buildDeviceAnalytics(sessions),
	}
}

func buildOverview(events []model.InteractionEvent, sessions []model.SessionAggregate, submissions []model.Submission) model.ReportOverview {
	totalViews := 0
	for _, ev := range events {
		if ev.EventType == model.EventView {
			totalViews++
		}
	}

	totalSubmissions := len(submissions)

	conversionRate := 0.0
	if totalViews > 0 {
		conversionRate = round1(float64(totalSubmissions) / float64(totalViews) * 100)
	}

	averageCompletionTime := 0
	if totalSubmissions > 0 {
		totalCompletion := 0
		for _, sub := range submissions {
			totalCompletion += sub.CompletionTime
		}
		averageCompletionTime = int(math.Round(float64(totalCompletion) / float64(totalSubmissions)))
	}

	bounceRate := 0.0
	if len(sessions) > 0 {
		completed := 0
		for _, sess := range sessions {
			if sess.IsCompleted {
				completed++
			}
		}
		bounceRate = round1(float64(len(sessions)-completed) / float64(len(sessions)) * 100)
	}

	return model.ReportOverview{
		TotalSubmissions:      totalSubmissions,
		TotalViews:            totalViews,
		ConversionRate:        conversionRate,
		AverageCompletionTime: averageCompletionTime,
		BounceRate:            bounceRate,
	}
}

func buildDailySeries(events []model.InteractionEvent, submissions []model.Submission) []model.DateBucket {
	buckets := map[string]*model.DateBucket{}

	bucket := func(date string) *model.DateBucket {
		if b, ok := buckets[date]; ok {
			return b
		}
		b := &model.DateBucket{Date: date}
		buckets[date] = b
		return b
	}

	for _, sub := range submissions {
		bucket(sub.CreatedAt.UTC().Format(time.DateOnly)).Submissions++
	}
	for _, ev := range events {
		if ev.EventType == model.EventView {
			bucket(ev.OccurredAt.UTC().Format(time.DateOnly)).Views++
		}
	}

	series := make([]model.DateBucket, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, *b)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

func buildFieldAnalytics(events []model.InteractionEvent) []model.FieldAnalytics {
	type fieldStats struct {
		focusCount     int
		blurCount      int
		totalFocusTime int
	}

	stats := map[string]*fieldStats{}
	for _, ev := range events {
		if ev.FieldID == "" {
			continue
		}
		switch ev.EventType {
		case model.EventFieldFocus, model.EventFieldBlur:
		default:
			continue
		}

		st, ok := stats[ev.FieldID]
		if !ok {
			st = &fieldStats{}
			stats[ev.FieldID] = st
		}
		if ev.EventType == model.EventFieldFocus {
			st.focusCount++
			st.totalFocusTime += ev.TimeSpent
		} else {
			st.blurCount++
		}
	}

	fields := make([]model.FieldAnalytics, 0, len(stats))
	for fieldID, st := range stats {
		fa := model.FieldAnalytics{
			FieldID:    fieldID,
			FieldLabel: fieldID,
			FocusCount: st.focusCount,
		}
		if st.focusCount > 0 {
			fa.CompletionRate = round1(float64(st.blurCount) / float64(st.focusCount) * 100)
			fa.DropOffRate = round1(100 - fa.CompletionRate)
			fa.AverageTime = round1(float64(st.totalFocusTime) / float64(st.focusCount))
		}
		fields = append(fields, fa)
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].FieldID < fields[j].FieldID })
	return fields
}

func buildDeviceAnalytics(sessions []model.SessionAggregate) model.DeviceAnalytics {
	if len(sessions) == 0 {
		return model.DeviceAnalytics{}
	}

	var desktop, mobile, tablet int
	for _, sess := range sessions {
		switch sess.DeviceType() {
		case "desktop":
			desktop++
		case "mobile":
			mobile++
		case "tablet":
			tablet++
		}
	}

	total := float64(len(sessions))
	return model.DeviceAnalytics{
		Desktop: round1(float64(desktop) / total * 100),
		Mobile:  round1(float64(mobile) / total * 100),
		Tablet:  round1(float64(tablet) / total * 100),
	}
}

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
