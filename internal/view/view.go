// Package view defines the rendering surface the widget draws on and the
// renderer that fills it from weather payloads.
package view

// Slot names a fixed region of the widget markup. The values match the
// element ids of web/static/index.html.
type Slot string

const (
	CityInput         Slot = "cityInput"
	SearchButton      Slot = "searchBtn"
	LocationButton    Slot = "currentLocationBtn"
	RecentSearches    Slot = "recentSearches"
	ErrorDisplay      Slot = "errorDisplay"
	CurrentSection    Slot = "currentWeather"
	ForecastSection   Slot = "forecast"
	ForecastContainer Slot = "forecastContainer"
	CurrentDate       Slot = "currentDate"
	CityName          Slot = "cityName"
	WeatherIcon       Slot = "weatherIcon"
	CurrentTemp       Slot = "currentTemp"
	WeatherDesc       Slot = "weatherDesc"
	Humidity          Slot = "humidity"
	WindSpeed         Slot = "windSpeed"
	WindUnit          Slot = "windUnit"
	UnitToggleButton  Slot = "unitToggleBtn"
	OutfitText        Slot = "outfitText"
	SearchBox         Slot = "searchBox"
)

var Slots = []Slot{
	CityInput, SearchButton, LocationButton, RecentSearches, ErrorDisplay,
	CurrentSection, ForecastSection, ForecastContainer, CurrentDate, CityName,
	WeatherIcon, CurrentTemp, WeatherDesc, Humidity, WindSpeed, WindUnit,
	UnitToggleButton, OutfitText, SearchBox,
}

// InitiallyHidden lists the slots the markup starts out hiding.
var InitiallyHidden = []Slot{ErrorDisplay, CurrentSection, ForecastSection, RecentSearches}

type ForecastCard struct {
	Date    string
	IconURL string
	Min     string
	Max     string
}

// View is the set of operations the renderer and the controller need from a
// rendering target.
type View interface {
	SetText(slot Slot, text string)
	Value(slot Slot) string
	SetValue(slot Slot, value string)
	SetImage(slot Slot, src, alt string)
	SetHidden(slot Slot, hidden bool)

	Clear(slot Slot)
	AppendLabel(slot Slot, text string)
	AppendAction(slot Slot, label string, activate func())
	AppendForecastCard(slot Slot, card ForecastCard)
}
