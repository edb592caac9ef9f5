package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"farm-advisor/internal/models"
	"go.uber.org/zap"
)

// OpenWeatherClient reads current conditions from OpenWeatherMap, which
// accepts a place name directly.
type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
}

type openWeatherCurrentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Rain struct {
		OneHour   float64 `json:"1h"`
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
	Name string `json:"name"`
	Cod  int    `json:"cod"`
}

func NewOpenWeatherClient(apiKey, baseURL string, config ClientConfig, logger *zap.Logger) *OpenWeatherClient {
	return &OpenWeatherClient{
		BaseClient: NewBaseClient("openweather", config, logger),
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

func (c *OpenWeatherClient) GetWeather(ctx context.Context, location string) (*models.WeatherData, error) {
	query := url.Values{}
	query.Set("q", strings.TrimSpace(location))
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	var response openWeatherCurrentResponse
	err := c.Guard(func() error {
		err := c.GetJSON(ctx, c.baseURL+"/weather?"+query.Encode(), &response)
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrLocationNotFound, location)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	if response.Cod != http.StatusOK {
		return nil, fmt.Errorf("API error: %d", response.Cod)
	}

	forecast := "Unknown"
	if len(response.Weather) > 0 {
		forecast = response.Weather[0].Description
	}

	rainfall := response.Rain.OneHour
	if rainfall == 0 {
		rainfall = response.Rain.ThreeHour
	}

	c.logger.Debug("OpenWeatherMap conditions fetched",
		zap.String("location", location),
		zap.String("resolved", response.Name))

	return &models.WeatherData{
		Location: location,
		Forecast: forecast,
		AvgTemp:  response.Main.Temp,
		Rainfall: rainfall,
	}, nil
}
