// Package stats derives read-only statistics from module records: dashboard
// counts, habit streaks, mood trends and the content pipeline. Everything
// reads through the document-view service's record delegation, so the same
// tenancy and error rules apply as for plain record listings.
package stats

import (
	"context"
	"sort"
	"time"

	"lifehub-service/internal/documentview"
	"lifehub-service/internal/model"
	"lifehub-service/internal/moduleconfig"
	"lifehub-service/internal/record"
)

const dateLayout = "2006-01-02"

// DefaultTrendWindowDays is the mood-trend window when the caller does not
// ask for one.
const DefaultTrendWindowDays = 30

// ModuleCount is one dashboard entry.
type ModuleCount struct {
	ModuleType string `json:"moduleType"`
	Count      int    `json:"count"`
}

// Dashboard summarizes the user's record counts across every module.
type Dashboard struct {
	Modules []ModuleCount `json:"modules"`
	Total   int           `json:"total"`
}

// HabitStreak is the per-habit completion summary.
type HabitStreak struct {
	RecordID      string `json:"recordId"`
	Name          string `json:"name"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	Completions   int    `json:"completions"`
	LastCompleted string `json:"lastCompleted,omitempty"`
}

// MoodPoint is one day of the mood trend.
type MoodPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// MoodTrend is the windowed mood summary.
type MoodTrend struct {
	Days       []MoodPoint `json:"days"`
	Average    float64     `json:"average"`
	Count      int         `json:"count"`
	WindowDays int         `json:"windowDays"`
}

// PipelineStage is one content status bucket.
type PipelineStage struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ContentPipeline counts content pieces per status in pipeline order.
type ContentPipeline struct {
	Stages []PipelineStage `json:"stages"`
	Total  int             `json:"total"`
}

// pipelineOrder fixes the stage ordering of the content module's status
// property.
var pipelineOrder = []string{"idea", "drafting", "editing", "published", "archived"}

// Service computes the statistics. now is a clock seam for streak tests.
type Service struct {
	registry *moduleconfig.Registry
	views    *documentview.Service
	now      func() time.Time
}

func NewService(registry *moduleconfig.Registry, views *documentview.Service) *Service {
	return &Service{registry: registry, views: views, now: time.Now}
}

func (s *Service) list(ctx context.Context, userID uint, moduleType string) ([]model.ModuleRecord, error) {
	return s.views.GetRecords(ctx, userID, moduleType, "", record.ListOptions{})
}

// Dashboard counts the user's records per registered module.
func (s *Service) Dashboard(ctx context.Context, userID uint) (*Dashboard, error) {
	dashboard := &Dashboard{Modules: []ModuleCount{}}
	for _, moduleType := range s.registry.ModuleTypes() {
		records, err := s.list(ctx, userID, moduleType)
		if err != nil {
			return nil, err
		}
		dashboard.Modules = append(dashboard.Modules, ModuleCount{ModuleType: moduleType, Count: len(records)})
		dashboard.Total += len(records)
	}
	return dashboard, nil
}

// HabitStreaks computes completion streaks for every habit from its
// completedDates field.
func (s *Service) HabitStreaks(ctx context.Context, userID uint) ([]HabitStreak, error) {
	records, err := s.list(ctx, userID, moduleconfig.ModuleHabits)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	streaks := make([]HabitStreak, 0, len(records))
	for _, rec := range records {
		name, _ := rec.Field("name").(string)
		dates := completionDates(rec.Field("completedDates"))
		current, longest := streakLengths(dates, today)

		entry := HabitStreak{
			RecordID:      rec.ID,
			Name:          name,
			CurrentStreak: current,
			LongestStreak: longest,
			Completions:   len(dates),
		}
		if len(dates) > 0 {
			entry.LastCompleted = dates[len(dates)-1].Format(dateLayout)
		}
		streaks = append(streaks, entry)
	}
	return streaks, nil
}

// completionDates parses, dedupes and sorts a completedDates field.
func completionDates(field interface{}) []time.Time {
	raw, ok := field.([]interface{})
	if !ok {
		return nil
	}
	seen := make(map[time.Time]bool, len(raw))
	dates := make([]time.Time, 0, len(raw))
	for _, item := range raw {
		str, ok := item.(string)
		if !ok {
			continue
		}
		day, err := time.Parse(dateLayout, str)
		if err != nil {
			continue
		}
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// streakLengths returns the current and longest runs of consecutive days. A
// current streak survives until the end of the day after the last
// completion: completing yesterday but not yet today keeps it alive.
func streakLengths(dates []time.Time, today time.Time) (current, longest int) {
	if len(dates) == 0 {
		return 0, 0
	}

	run := 1
	longest = 1
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := dates[len(dates)-1]
	if today.Sub(last) > 24*time.Hour {
		return 0, longest
	}
	return run, longest
}

// MoodTrend averages mood ratings per day over the window ending today.
func (s *Service) MoodTrend(ctx context.Context, userID uint, windowDays int) (*MoodTrend, error) {
	if windowDays <= 0 {
		windowDays = DefaultTrendWindowDays
	}
	records, err := s.list(ctx, userID, moduleconfig.ModuleMoods)
	if err != nil {
		return nil, err
	}

	today := s.now().UTC().Truncate(24 * time.Hour)
	cutoff := today.AddDate(0, 0, -(windowDays - 1))

	type bucket struct {
		sum   float64
		count int
	}
	byDay := map[string]*bucket{}
	trend := &MoodTrend{Days: []MoodPoint{}, WindowDays: windowDays}
	var total float64
	for _, rec := range records {
		dateStr, _ := rec.Field("date").(string)
		day, err := time.Parse(dateLayout, dateStr)
		if err != nil || day.Before(cutoff) || day.After(today) {
			continue
		}
		rating, ok := ratingOf(rec.Field("rating"))
		if !ok {
			continue
		}
		b := byDay[dateStr]
		if b == nil {
			b = &bucket{}
			byDay[dateStr] = b
		}
		b.sum += rating
		b.count++
		total += rating
		trend.Count++
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	for _, day := range days {
		b := byDay[day]
		trend.Days = append(trend.Days, MoodPoint{Date: day, Average: b.sum / float64(b.count), Count: b.count})
	}
	if trend.Count > 0 {
		trend.Average = total / float64(trend.Count)
	}
	return trend, nil
}

func ratingOf(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	}
	return 0, false
}

// ContentPipeline counts content records per status stage.
func (s *Service) ContentPipeline(ctx context.Context, userID uint) (*ContentPipeline, error) {
	records, err := s.list(ctx, userID, moduleconfig.ModuleContent)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, rec := range records {
		status, _ := rec.Field("status").(string)
		counts[status]++
	}

	pipeline := &ContentPipeline{Stages: make([]PipelineStage, 0, len(pipelineOrder)), Total: len(records)}
	for _, status := range pipelineOrder {
		pipeline.Stages = append(pipeline.Stages, PipelineStage{Status: status, Count: counts[status]})
	}
	return pipeline, nil
}
