package services

import (
	"context"
	"testing"
	"time"

	"farm-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMockStressCalculator_ScoresInUnitInterval(t *testing.T) {
	calc := NewMockStressCalculator(0, zap.NewNop())
	form := models.FarmFormData{Location: "Springfield", CropType: models.CropWheat, FieldSize: 5}

	for i := 0; i < 2000; i++ {
		result, err := calc.CalculateStress(context.Background(), form)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.DiurnalHeatStress, 0.0)
		assert.Less(t, result.DiurnalHeatStress, 1.0)
		assert.GreaterOrEqual(t, result.NightHeatStress, 0.0)
		assert.Less(t, result.NightHeatStress, 1.0)
		assert.Equal(t, mockRecommendation, result.Recommendation)
		assert.Equal(t, mockRationale, result.Rationale)
	}
}

func TestMockStressCalculator_IndependentDraws(t *testing.T) {
	values := []float64{0.25, 0.75}
	calc := NewMockStressCalculator(0, zap.NewNop())
	calc.random = func() float64 {
		v := values[0]
		values = values[1:]
		return v
	}

	result, err := calc.CalculateStress(context.Background(), models.FarmFormData{CropType: models.CropRice})
	require.NoError(t, err)
	assert.Equal(t, 0.25, result.DiurnalHeatStress)
	assert.Equal(t, 0.75, result.NightHeatStress)
}

func TestMockStressCalculator_Delays(t *testing.T) {
	calc := NewMockStressCalculator(30*time.Millisecond, zap.NewNop())

	start := time.Now()
	_, err := calc.CalculateStress(context.Background(), models.FarmFormData{CropType: models.CropMaize})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestMockWeatherFetcher_EchoesLocation(t *testing.T) {
	fetcher := NewMockWeatherFetcher(0, zap.NewNop())

	for _, location := range []string{"Springfield", "  Bad Tölz ", "x"} {
		weather, err := fetcher.GetWeather(context.Background(), location)
		require.NoError(t, err)
		assert.Equal(t, location, weather.Location)
		assert.Equal(t, mockForecast, weather.Forecast)
		assert.Equal(t, 25.0, weather.AvgTemp)
		assert.Equal(t, 12.0, weather.Rainfall)
	}
}

func TestWait_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wait(ctx, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
}
