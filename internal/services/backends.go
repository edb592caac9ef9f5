package services

import (
	"context"
	"math/rand"
	"time"

	"farm-advisor/internal/models"
	"go.uber.org/zap"
)

type StressCalculator interface {
	CalculateStress(ctx context.Context, form models.FarmFormData) (*models.StressResult, error)
}

type WeatherFetcher interface {
	GetWeather(ctx context.Context, location string) (*models.WeatherData, error)
}

const (
	mockRecommendation = "Apply mild irrigation in the afternoons. Consider extra N-fertilizer."
	mockRationale      = "Based on the temperature range and dryness index, your fields may need more water."

	mockForecast = "Sunny with scattered clouds"
	mockAvgTemp  = 25
	mockRainfall = 12
)

// MockStressCalculator stands in for the stress model. It waits, then returns
// two independent uniform draws in [0,1).
type MockStressCalculator struct {
	delay  time.Duration
	random func() float64
	logger *zap.Logger
}

func NewMockStressCalculator(delay time.Duration, logger *zap.Logger) *MockStressCalculator {
	return &MockStressCalculator{
		delay:  delay,
		random: rand.Float64,
		logger: logger,
	}
}

func (m *MockStressCalculator) CalculateStress(ctx context.Context, form models.FarmFormData) (*models.StressResult, error) {
	if err := wait(ctx, m.delay); err != nil {
		return nil, err
	}

	result := &models.StressResult{
		DiurnalHeatStress: m.random(),
		NightHeatStress:   m.random(),
		Recommendation:    mockRecommendation,
		Rationale:         mockRationale,
	}

	m.logger.Debug("Stress calculated",
		zap.String("crop", string(form.CropType)),
		zap.Float64("field_size", form.FieldSize),
		zap.Float64("diurnal", result.DiurnalHeatStress),
		zap.Float64("night", result.NightHeatStress))

	return result, nil
}

type MockWeatherFetcher struct {
	delay  time.Duration
	logger *zap.Logger
}

func NewMockWeatherFetcher(delay time.Duration, logger *zap.Logger) *MockWeatherFetcher {
	return &MockWeatherFetcher{delay: delay, logger: logger}
}

func (m *MockWeatherFetcher) GetWeather(ctx context.Context, location string) (*models.WeatherData, error) {
	if err := wait(ctx, m.delay); err != nil {
		return nil, err
	}

	m.logger.Debug("Weather fetched", zap.String("location", location))

	return &models.WeatherData{
		Location: location,
		Forecast: mockForecast,
		AvgTemp:  mockAvgTemp,
		Rainfall: mockRainfall,
	}, nil
}

// wait blocks for d. It only gives up early when ctx is done, which happens on
// server shutdown.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
