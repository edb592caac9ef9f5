package models

import (
	"fmt"
	"math"
)

type CropType string

const (
	CropRice   CropType = "rice"
	CropCotton CropType = "cotton"
	CropMaize  CropType = "maize"
	CropWheat  CropType = "wheat"
)

var CropTypes = []CropType{CropRice, CropCotton, CropMaize, CropWheat}

func (c CropType) Valid() bool {
	for _, crop := range CropTypes {
		if c == crop {
			return true
		}
	}
	return false
}

const (
	MinFieldSize  = 0.0
	MaxFieldSize  = 10.0
	FieldSizeStep = 0.1
)

type FarmFormData struct {
	Location  string   `json:"location" form:"location"`
	CropType  CropType `json:"cropType" form:"cropType"`
	FieldSize float64  `json:"fieldSize" form:"fieldSize"`
}

// Validate applies the same constraints the form widgets enforce: a known
// crop and a field size inside the slider range on a 0.1 grid. Location may
// be empty.
func (f FarmFormData) Validate() error {
	if !f.CropType.Valid() {
		return fmt.Errorf("unknown crop type %q", f.CropType)
	}
	if math.IsNaN(f.FieldSize) || f.FieldSize < MinFieldSize || f.FieldSize > MaxFieldSize {
		return fmt.Errorf("field size must be between %.0f and %.0f", MinFieldSize, MaxFieldSize)
	}
	steps := f.FieldSize / FieldSizeStep
	if math.Abs(steps-math.Round(steps)) > 1e-6 {
		return fmt.Errorf("field size must be a multiple of %.1f", FieldSizeStep)
	}
	return nil
}

type StressResult struct {
	DiurnalHeatStress float64 `json:"diurnal_heat_stress"`
	NightHeatStress   float64 `json:"night_heat_stress"`
	Recommendation    string  `json:"recommendation"`
	Rationale         string  `json:"rationale"`
}

type WeatherData struct {
	Location string  `json:"location"`
	Forecast string  `json:"forecast"`
	AvgTemp  float64 `json:"avgTemp"`
	Rainfall float64 `json:"rainfall"`
}
