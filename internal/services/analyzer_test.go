package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"farm-advisor/internal/i18n"
	"farm-advisor/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingWeather struct {
	calls    []string
	err      error
	delegate WeatherFetcher
}

func (r *recordingWeather) GetWeather(ctx context.Context, location string) (*models.WeatherData, error) {
	r.calls = append(r.calls, location)
	if r.err != nil {
		return nil, r.err
	}
	return r.delegate.GetWeather(ctx, location)
}

type failingStress struct{}

func (failingStress) CalculateStress(context.Context, models.FarmFormData) (*models.StressResult, error) {
	return nil, errors.New("model unavailable")
}

func newTestAnalyzer(t *testing.T, stress StressCalculator, weather WeatherFetcher) (*Analyzer, *SessionStore) {
	t.Helper()

	catalog, err := i18n.Load()
	require.NoError(t, err)

	store := NewSessionStore(time.Minute, 100, models.LangEN, zap.NewNop())
	return NewAnalyzer(stress, weather, store, catalog, zap.NewNop()), store
}

func TestAnalyzer_SubmitPopulatesState(t *testing.T) {
	weather := &recordingWeather{delegate: NewMockWeatherFetcher(0, zap.NewNop())}
	analyzer, store := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), weather)
	session := store.Create()

	form := models.FarmFormData{Location: "Springfield", CropType: models.CropWheat, FieldSize: 5}
	state, err := analyzer.Submit(context.Background(), session.ID, form)
	require.NoError(t, err)

	assert.True(t, state.Submitted)
	assert.False(t, state.Loading)
	require.NotNil(t, state.Stress)
	require.NotNil(t, state.Weather)
	assert.Equal(t, "Springfield", state.Weather.Location)
	require.NotNil(t, state.Notice)
	assert.Equal(t, "Analysis Complete", state.Notice.Title)
	assert.Equal(t, models.NoticeDefault, state.Notice.Variant)
	assert.Equal(t, []string{"Springfield"}, weather.calls)

	stats := analyzer.GetStats()
	assert.Equal(t, 1, stats["success_count"])
	assert.Equal(t, 0, stats["failure_count"])
	assert.False(t, analyzer.GetLastSubmitTime().IsZero())
}

func TestAnalyzer_BlankLocationSkipsWeather(t *testing.T) {
	for _, location := range []string{"", "   ", "\t"} {
		weather := &recordingWeather{delegate: NewMockWeatherFetcher(0, zap.NewNop())}
		analyzer, store := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), weather)
		session := store.Create()

		state, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{Location: location, CropType: models.CropRice})
		require.NoError(t, err)

		assert.True(t, state.Submitted)
		assert.NotNil(t, state.Stress)
		assert.Nil(t, state.Weather)
		assert.Empty(t, weather.calls)
	}
}

func TestAnalyzer_LocationPassedUntrimmed(t *testing.T) {
	weather := &recordingWeather{delegate: NewMockWeatherFetcher(0, zap.NewNop())}
	analyzer, store := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), weather)
	session := store.Create()

	state, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{Location: " Springfield ", CropType: models.CropMaize})
	require.NoError(t, err)
	assert.Equal(t, " Springfield ", state.Weather.Location)
}

func TestAnalyzer_StressFailureSetsNotice(t *testing.T) {
	weather := &recordingWeather{delegate: NewMockWeatherFetcher(0, zap.NewNop())}
	analyzer, store := newTestAnalyzer(t, failingStress{}, weather)
	session := store.Create()

	state, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{Location: "Springfield", CropType: models.CropWheat})
	require.Error(t, err)

	assert.False(t, state.Submitted)
	assert.False(t, state.Loading)
	assert.Nil(t, state.Stress)
	require.NotNil(t, state.Notice)
	assert.Equal(t, "Analysis Failed", state.Notice.Title)
	assert.Equal(t, models.NoticeDestructive, state.Notice.Variant)
	assert.Empty(t, weather.calls)
	assert.Equal(t, 1, analyzer.GetStats()["failure_count"])
}

func TestAnalyzer_WeatherFailureKeepsPreviousResults(t *testing.T) {
	weather := &recordingWeather{delegate: NewMockWeatherFetcher(0, zap.NewNop())}
	analyzer, store := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), weather)
	session := store.Create()

	first, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{Location: "Springfield", CropType: models.CropWheat})
	require.NoError(t, err)

	weather.err = errors.New("geocoding failed")
	state, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{Location: "Nowhere", CropType: models.CropWheat})
	require.Error(t, err)

	assert.True(t, state.Submitted)
	assert.Equal(t, first.Stress, state.Stress)
	assert.Equal(t, "Springfield", state.Weather.Location)
	assert.Equal(t, "Analysis Failed", state.Notice.Title)
}

func TestAnalyzer_NoticeFollowsLanguage(t *testing.T) {
	analyzer, store := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), NewMockWeatherFetcher(0, zap.NewNop()))
	session := store.Create()
	_, err := store.Update(session.ID, func(p *models.PageState) { p.ToggleLanguage() })
	require.NoError(t, err)

	state, err := analyzer.Submit(context.Background(), session.ID, models.FarmFormData{CropType: models.CropCotton})
	require.NoError(t, err)
	assert.Equal(t, "Analyse abgeschlossen", state.Notice.Title)
}

func TestAnalyzer_UnknownSession(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, NewMockStressCalculator(0, zap.NewNop()), NewMockWeatherFetcher(0, zap.NewNop()))

	_, err := analyzer.Submit(context.Background(), "missing", models.FarmFormData{CropType: models.CropWheat})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestBuildView_BeforeSubmit(t *testing.T) {
	catalog, err := i18n.Load()
	require.NoError(t, err)

	state := *models.NewPageState("s1", models.LangEN, time.Now())
	view := BuildView(state, catalog)

	assert.False(t, view.ShowResults)
	assert.Nil(t, view.Diurnal)
	assert.Empty(t, view.Boxes)
	assert.Empty(t, view.Tasks)
	assert.Equal(t, "Enter Your Farm Details", view.Text["farmDetailsTitle"])
}

func TestBuildView_AfterSubmit(t *testing.T) {
	catalog, err := i18n.Load()
	require.NoError(t, err)

	state := *models.NewPageState("s1", models.LangDE, time.Now())
	state.Submitted = true
	state.Stress = &models.StressResult{DiurnalHeatStress: 0.3, NightHeatStress: 0.71}
	state.ToggleTopic(models.TopicWater)
	state.ToggleTopic(models.TopicSoil)

	view := BuildView(state, catalog)

	assert.True(t, view.ShowResults)
	assert.Equal(t, SeverityModerate, view.Diurnal.Severity)
	assert.Equal(t, 30, view.Diurnal.Percent)
	assert.Equal(t, SeverityHigh, view.Night.Severity)
	assert.Len(t, view.Boxes, 4)
	assert.True(t, view.Boxes[0].Selected)
	assert.False(t, view.Boxes[2].Selected)
	// Selected boxes follow display order, tasks follow selection order.
	assert.Equal(t, models.TopicSoil, view.SelectedBoxes[0].Key)
	assert.Equal(t, []string{"Irrigate every 3 days", "Monitor soil moisture", "Test soil pH", "Apply compost"}, view.Tasks)
	assert.Len(t, view.Bubbles, 3)
	assert.Equal(t, "Mitbauern", view.Bubbles[0].Title)
}

func TestIsBubble(t *testing.T) {
	assert.True(t, IsBubble("experts"))
	assert.False(t, IsBubble("ideas"))
}
