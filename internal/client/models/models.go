// Package models defines the API payloads the marketpulse CLI reads.
package models

// User is an account as reported by /register and /me.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Article is the subset of a NewsAPI article the CLI displays.
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
}

// SourceName falls back to "unknown" when the feed omits the source.
func (a Article) SourceName() string {
	if a.Source.Name == "" {
		return "unknown"
	}
	return a.Source.Name
}

// Weather is the subset of a WeatherAPI current-conditions answer the CLI
// displays.
type Weather struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Current struct {
		TempC     float64 `json:"temp_c"`
		FeelsLike float64 `json:"feelslike_c"`
		Humidity  int     `json:"humidity"`
		Condition struct {
			Text string `json:"text"`
		} `json:"condition"`
	} `json:"current"`
}

// Coordinates selects the weather location; a nil *Coordinates lets the
// server pick its default.
type Coordinates struct {
	Lat float64
	Lon float64
}
