package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"farm-advisor/internal/i18n"
	"farm-advisor/internal/models"
	"go.uber.org/zap"
)

// Analyzer runs a form submission against the stress and weather backends and
// records the outcome in the visitor's session.
//
// Submissions are not tracked while in flight. Two overlapping submissions on
// one session both write their results, and whichever finishes last wins.
type Analyzer struct {
	stress   StressCalculator
	weather  WeatherFetcher
	sessions *SessionStore
	catalog  *i18n.Catalog
	logger   *zap.Logger

	mu             sync.RWMutex
	lastSubmitTime time.Time
	successCount   int
	failureCount   int
	weatherSkipped int
}

func NewAnalyzer(stress StressCalculator, weather WeatherFetcher, sessions *SessionStore, catalog *i18n.Catalog, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		stress:   stress,
		weather:  weather,
		sessions: sessions,
		catalog:  catalog,
		logger:   logger,
	}
}

// Submit analyzes form for the session and returns the resulting state. On a
// backend failure the state carries a failure notice and the error is
// returned alongside it.
func (a *Analyzer) Submit(ctx context.Context, sessionID string, form models.FarmFormData) (models.PageState, error) {
	a.mu.Lock()
	a.lastSubmitTime = time.Now()
	a.mu.Unlock()

	if _, err := a.sessions.Update(sessionID, func(p *models.PageState) { p.Loading = true }); err != nil {
		return models.PageState{}, err
	}

	startTime := time.Now()
	result, weather, err := a.analyze(ctx, form)
	if err != nil {
		a.logger.Error("Analysis failed",
			zap.String("session", sessionID),
			zap.Duration("duration", time.Since(startTime)),
			zap.Error(err))

		a.mu.Lock()
		a.failureCount++
		a.mu.Unlock()

		state, updateErr := a.sessions.Update(sessionID, func(p *models.PageState) {
			p.Loading = false
			p.Notice = a.notice(p.Lang, "analysisFail", "analysisFailDesc", models.NoticeDestructive)
		})
		if updateErr != nil {
			return models.PageState{}, updateErr
		}
		return state, fmt.Errorf("analysis failed: %w", err)
	}

	state, err := a.sessions.Update(sessionID, func(p *models.PageState) {
		p.Stress = result
		p.Weather = weather
		p.Submitted = true
		p.Loading = false
		p.Notice = a.notice(p.Lang, "analysisComplete", "analysisDesc", models.NoticeDefault)
	})
	if err != nil {
		return models.PageState{}, err
	}

	a.mu.Lock()
	a.successCount++
	if weather == nil {
		a.weatherSkipped++
	}
	a.mu.Unlock()

	a.logger.Info("Analysis completed",
		zap.String("session", sessionID),
		zap.String("crop", string(form.CropType)),
		zap.Bool("weather", weather != nil),
		zap.Duration("duration", time.Since(startTime)))

	return state, nil
}

// analyze calls the backends one after the other. Weather is skipped when the
// location is blank, but a non-blank location is passed on untrimmed.
func (a *Analyzer) analyze(ctx context.Context, form models.FarmFormData) (*models.StressResult, *models.WeatherData, error) {
	result, err := a.stress.CalculateStress(ctx, form)
	if err != nil {
		return nil, nil, fmt.Errorf("stress calculation: %w", err)
	}

	if strings.TrimSpace(form.Location) == "" {
		return result, nil, nil
	}

	weather, err := a.weather.GetWeather(ctx, form.Location)
	if err != nil {
		return nil, nil, fmt.Errorf("weather for %q: %w", form.Location, err)
	}

	return result, weather, nil
}

func (a *Analyzer) notice(lang models.Language, titleKey, descKey string, variant models.NoticeVariant) *models.Notice {
	return &models.Notice{
		Title:       a.catalog.T(lang, titleKey),
		Description: a.catalog.T(lang, descKey),
		Variant:     variant,
	}
}

func (a *Analyzer) GetLastSubmitTime() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastSubmitTime
}

func (a *Analyzer) GetStats() map[string]interface{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return map[string]interface{}{
		"last_submit_time": a.lastSubmitTime,
		"success_count":    a.successCount,
		"failure_count":    a.failureCount,
		"weather_skipped":  a.weatherSkipped,
		"session_stats":    a.sessions.GetStats(),
	}
}
