package models

// Weather is the normalized current-conditions snapshot returned by the weather provider.
type Weather struct {
	Temperature int     `json:"temperature"`
	FeelsLike   int     `json:"feels_like"`
	Description string  `json:"description"`
	IconCode    string  `json:"icon_code"`
	CityName    string  `json:"city_name"`
	CountryCode string  `json:"country_code"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Clouds      int     `json:"clouds"`
}

// WeatherQuery selects a location either by city (with optional country code) or by coordinates.
type WeatherQuery struct {
	City        string
	CountryCode string
	Lat         *float64
	Lon         *float64
}
