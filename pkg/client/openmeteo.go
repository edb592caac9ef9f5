package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"farm-advisor/internal/models"
	"go.uber.org/zap"
)

var ErrLocationNotFound = errors.New("location not found")

const forecastDays = 3

// OpenMeteoClient resolves a free-text location with the Open-Meteo
// geocoding API and summarises the next days of its daily forecast.
type OpenMeteoClient struct {
	*BaseClient
	baseURL      string
	geocodingURL string
}

type GeoLocation struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

type openMeteoGeocodingResponse struct {
	Results []GeoLocation `json:"results"`
}

type openMeteoForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Daily     struct {
		Time             []string  `json:"time"`
		Temperature2MMax []float64 `json:"temperature_2m_max"`
		Temperature2MMin []float64 `json:"temperature_2m_min"`
		PrecipitationSum []float64 `json:"precipitation_sum"`
		WeatherCode      []int     `json:"weather_code"`
	} `json:"daily"`
}

func NewOpenMeteoClient(baseURL, geocodingURL string, config ClientConfig, logger *zap.Logger) *OpenMeteoClient {
	return &OpenMeteoClient{
		BaseClient:   NewBaseClient("openmeteo", config, logger),
		baseURL:      strings.TrimRight(baseURL, "/"),
		geocodingURL: strings.TrimRight(geocodingURL, "/"),
	}
}

func (c *OpenMeteoClient) Geocode(ctx context.Context, location string) (*GeoLocation, error) {
	query := url.Values{}
	query.Set("name", strings.TrimSpace(location))
	query.Set("count", "1")
	query.Set("format", "json")

	var response openMeteoGeocodingResponse
	if err := c.GetJSON(ctx, c.geocodingURL+"/search?"+query.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to geocode location: %w", err)
	}

	if len(response.Results) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}

	return &response.Results[0], nil
}

func (c *OpenMeteoClient) GetWeather(ctx context.Context, location string) (*models.WeatherData, error) {
	var weather *models.WeatherData
	err := c.Guard(func() error {
		var err error
		weather, err = c.fetchWeather(ctx, location)
		return err
	})
	if err != nil {
		return nil, err
	}
	return weather, nil
}

func (c *OpenMeteoClient) fetchWeather(ctx context.Context, location string) (*models.WeatherData, error) {
	geo, err := c.Geocode(ctx, location)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", geo.Latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", geo.Longitude))
	query.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_sum,weather_code")
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

	var response openMeteoForecastResponse
	if err := c.GetJSON(ctx, c.baseURL+"/forecast?"+query.Encode(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	daily := response.Daily
	days := len(daily.Time)
	for _, n := range []int{len(daily.Temperature2MMax), len(daily.Temperature2MMin), len(daily.PrecipitationSum), len(daily.WeatherCode)} {
		if n < days {
			days = n
		}
	}
	if days == 0 {
		return nil, fmt.Errorf("forecast for %s has no daily data", geo.Name)
	}

	var totalTemp, totalRain float64
	for i := 0; i < days; i++ {
		totalTemp += (daily.Temperature2MMax[i] + daily.Temperature2MMin[i]) / 2
		totalRain += daily.PrecipitationSum[i]
	}

	c.logger.Debug("Open-Meteo forecast fetched",
		zap.String("location", location),
		zap.String("resolved", geo.Name),
		zap.Int("days", days))

	return &models.WeatherData{
		Location: location,
		Forecast: weatherCodeToDescription(daily.WeatherCode[0]),
		AvgTemp:  totalTemp / float64(days),
		Rainfall: totalRain,
	}, nil
}

// WMO weather interpretation codes
var weatherCodes = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Foggy",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

func weatherCodeToDescription(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Unknown"
}
