package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"lifehub-service/internal/apperror"
	"lifehub-service/internal/stats"
	"lifehub-service/prometheus"
)

var statsService *stats.Service

// InitStatsHandler initializes the stats handlers
func InitStatsHandler(svc *stats.Service) {
	statsService = svc
}

func GetDashboard(c echo.Context) error {
	defer prometheus.TrackStatsReport("dashboard")(time.Now())

	dashboard, err := statsService.Dashboard(c.Request().Context(), userIDFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Dashboard retrieved", dashboard)
}

func GetHabitStreaks(c echo.Context) error {
	defer prometheus.TrackStatsReport("habit_streaks")(time.Now())

	streaks, err := statsService.HabitStreaks(c.Request().Context(), userIDFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Habit streaks retrieved", streaks)
}

func GetMoodTrend(c echo.Context) error {
	defer prometheus.TrackStatsReport("mood_trend")(time.Now())

	windowDays := 0
	if raw := c.QueryParam("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return respondError(c, apperror.NewValidation("window must be a positive number of days"))
		}
		windowDays = n
	}

	trend, err := statsService.MoodTrend(c.Request().Context(), userIDFrom(c), windowDays)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Mood trend retrieved", trend)
}

func GetContentPipeline(c echo.Context) error {
	defer prometheus.TrackStatsReport("content_pipeline")(time.Now())

	pipeline, err := statsService.ContentPipeline(c.Request().Context(), userIDFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Content pipeline retrieved", pipeline)
}
