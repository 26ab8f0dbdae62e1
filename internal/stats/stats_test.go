package stats

import (
	"context"
	"testing"
	"time"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/documentview"
	"lifehub-service/internal/model"
	"lifehub-service/internal/moduleconfig"
	"lifehub-service/internal/record"
)

var fixedToday = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newStatsService(t *testing.T) (*Service, *documentview.Service) {
	t.Helper()
	reg := moduleconfig.NewRegistry()
	moduleconfig.RegisterBuiltins(reg)

	records := record.NewResolver()
	for _, cfg := range reg.GetAll() {
		records.Register(cfg.Services.RecordService, record.NewMemoryService(cfg.ModuleType))
	}

	views := documentview.NewService(reg, documentview.NewMemoryStore(), records)
	svc := NewService(reg, views)
	svc.now = func() time.Time { return fixedToday }
	return svc, views
}

func seedRecord(t *testing.T, views *documentview.Service, moduleType string, data model.JSONMap) *model.ModuleRecord {
	t.Helper()
	rec, err := views.CreateRecord(context.Background(), 1, moduleType, "", data)
	if err != nil {
		t.Fatalf("CreateRecord(%s): %v", moduleType, err)
	}
	return rec
}

func TestDashboardCountsPerModule(t *testing.T) {
	svc, views := newStatsService(t)
	ctx := context.Background()

	seedRecord(t, views, "tasks", model.JSONMap{"title": "One"})
	seedRecord(t, views, "tasks", model.JSONMap{"title": "Two"})
	seedRecord(t, views, "notes", model.JSONMap{"title": "Note"})

	dashboard, err := svc.Dashboard(ctx, 1)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if len(dashboard.Modules) != len(moduleconfig.ModuleTypes) {
		t.Fatalf("got %d module entries, want %d", len(dashboard.Modules), len(moduleconfig.ModuleTypes))
	}
	counts := map[string]int{}
	for _, m := range dashboard.Modules {
		counts[m.ModuleType] = m.Count
	}
	if counts["tasks"] != 2 || counts["notes"] != 1 || counts["moods"] != 0 {
		t.Fatalf("counts = %v", counts)
	}
	if dashboard.Total != 3 {
		t.Fatalf("total = %d, want 3", dashboard.Total)
	}

	// Another user's dashboard stays empty.
	other, err := svc.Dashboard(ctx, 2)
	if err != nil {
		t.Fatalf("Dashboard(user 2): %v", err)
	}
	if other.Total != 0 {
		t.Fatalf("user 2 total = %d, want 0", other.Total)
	}
}

func TestHabitStreaks(t *testing.T) {
	svc, views := newStatsService(t)

	habit := func(name string, dates ...interface{}) model.JSONMap {
		return model.JSONMap{"name": name, "completedDates": dates}
	}
	seedRecord(t, views, "habits", habit("Running", "2026-03-08", "2026-03-09", "2026-03-10"))
	seedRecord(t, views, "habits", habit("Reading", "2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-08", "2026-03-09"))
	seedRecord(t, views, "habits", habit("Lapsed", "2026-03-01", "2026-03-02"))
	seedRecord(t, views, "habits", model.JSONMap{"name": "Fresh"})
	seedRecord(t, views, "habits", habit("Messy", "2026-03-10", "2026-03-10", "not a date"))

	streaks, err := svc.HabitStreaks(context.Background(), 1)
	if err != nil {
		t.Fatalf("HabitStreaks: %v", err)
	}
	byName := map[string]HabitStreak{}
	for _, s := range streaks {
		byName[s.Name] = s
	}

	tests := []struct {
		name                       string
		current, longest, complete int
		last                       string
	}{
		{"Running", 3, 3, 3, "2026-03-10"},
		// Completed yesterday, not yet today: the streak is still alive.
		{"Reading", 2, 4, 6, "2026-03-09"},
		{"Lapsed", 0, 2, 2, "2026-03-02"},
		{"Fresh", 0, 0, 0, ""},
		// Duplicate and unparseable entries are dropped.
		{"Messy", 1, 1, 1, "2026-03-10"},
	}
	for _, tc := range tests {
		got, ok := byName[tc.name]
		if !ok {
			t.Fatalf("habit %q missing from streaks", tc.name)
		}
		if got.CurrentStreak != tc.current || got.LongestStreak != tc.longest {
			t.Errorf("%s: current=%d longest=%d, want %d/%d", tc.name, got.CurrentStreak, got.LongestStreak, tc.current, tc.longest)
		}
		if got.Completions != tc.complete || got.LastCompleted != tc.last {
			t.Errorf("%s: completions=%d last=%q, want %d/%q", tc.name, got.Completions, got.LastCompleted, tc.complete, tc.last)
		}
	}
}

func TestMoodTrend(t *testing.T) {
	svc, views := newStatsService(t)

	mood := func(date string, rating float64) model.JSONMap {
		return model.JSONMap{"date": date, "rating": rating}
	}
	seedRecord(t, views, "moods", mood("2026-03-01", 2)) // outside the window
	seedRecord(t, views, "moods", mood("2026-03-04", 3))
	seedRecord(t, views, "moods", mood("2026-03-05", 4))
	seedRecord(t, views, "moods", mood("2026-03-05", 5))
	seedRecord(t, views, "moods", mood("2026-03-10", 5))
	seedRecord(t, views, "moods", model.JSONMap{"date": "garbage", "rating": 1.0})
	seedRecord(t, views, "moods", model.JSONMap{"date": "2026-03-09"}) // no rating

	trend, err := svc.MoodTrend(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("MoodTrend: %v", err)
	}

	if trend.WindowDays != 7 || trend.Count != 4 {
		t.Fatalf("window=%d count=%d, want 7/4", trend.WindowDays, trend.Count)
	}
	if trend.Average != 4.25 {
		t.Fatalf("average = %v, want 4.25", trend.Average)
	}
	if len(trend.Days) != 3 {
		t.Fatalf("got %d days, want 3: %+v", len(trend.Days), trend.Days)
	}
	if trend.Days[0].Date != "2026-03-04" || trend.Days[0].Average != 3 {
		t.Fatalf("day[0] = %+v", trend.Days[0])
	}
	if trend.Days[1].Date != "2026-03-05" || trend.Days[1].Average != 4.5 || trend.Days[1].Count != 2 {
		t.Fatalf("day[1] = %+v", trend.Days[1])
	}
	if trend.Days[2].Date != "2026-03-10" || trend.Days[2].Average != 5 {
		t.Fatalf("day[2] = %+v", trend.Days[2])
	}
}

func TestMoodTrendDefaultWindow(t *testing.T) {
	svc, _ := newStatsService(t)

	trend, err := svc.MoodTrend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("MoodTrend: %v", err)
	}
	if trend.WindowDays != DefaultTrendWindowDays {
		t.Fatalf("window = %d, want %d", trend.WindowDays, DefaultTrendWindowDays)
	}
	if trend.Count != 0 || trend.Average != 0 {
		t.Fatalf("empty trend = %+v", trend)
	}
}

func TestContentPipeline(t *testing.T) {
	svc, views := newStatsService(t)

	for _, status := range []string{"idea", "idea", "drafting", "published", "published", "published", "archived", "junk"} {
		seedRecord(t, views, "content", model.JSONMap{"title": "Piece", "status": status})
	}

	pipeline, err := svc.ContentPipeline(context.Background(), 1)
	if err != nil {
		t.Fatalf("ContentPipeline: %v", err)
	}

	want := map[string]int{"idea": 2, "drafting": 1, "editing": 0, "published": 3, "archived": 1}
	if len(pipeline.Stages) != len(pipelineOrder) {
		t.Fatalf("got %d stages, want %d", len(pipeline.Stages), len(pipelineOrder))
	}
	for i, stage := range pipeline.Stages {
		if stage.Status != pipelineOrder[i] {
			t.Fatalf("stage[%d] = %q, want pipeline order %v", i, stage.Status, pipelineOrder)
		}
		if stage.Count != want[stage.Status] {
			t.Errorf("%s = %d, want %d", stage.Status, stage.Count, want[stage.Status])
		}
	}
	if pipeline.Total != 8 {
		t.Fatalf("total = %d, want 8", pipeline.Total)
	}
}

func TestStatsPropagateMissingService(t *testing.T) {
	reg := moduleconfig.NewRegistry()
	moduleconfig.RegisterBuiltins(reg)
	views := documentview.NewService(reg, documentview.NewMemoryStore(), record.NewResolver())
	svc := NewService(reg, views)
	svc.now = func() time.Time { return fixedToday }

	if _, err := svc.HabitStreaks(context.Background(), 1); !apperror.Is(err, apperror.CodeServiceUnavailable) {
		t.Fatalf("err = %v, want service unavailable", err)
	}
}
