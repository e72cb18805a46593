package view

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/0nxb/my-weather-app/internal/models"
	"github.com/0nxb/my-weather-app/internal/weatherfmt"
)

const RecentLabel = "최근 검색어"

type Renderer struct {
	view View
	now  func() time.Time
}

// NewRenderer draws on v. now supplies the header date and the time zone
// forecast days are shown in; nil means time.Now.
func NewRenderer(v View, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{view: v, now: now}
}

// ShowError displays msg and hides the data sections. An empty msg only hides
// the banner; bringing the sections back is up to the caller.
func (r *Renderer) ShowError(msg string) {
	if msg == "" {
		r.view.SetHidden(ErrorDisplay, true)
		return
	}
	r.view.SetText(ErrorDisplay, msg)
	r.view.SetHidden(ErrorDisplay, false)
	r.view.SetHidden(CurrentSection, true)
	r.view.SetHidden(ForecastSection, true)
}

// RenderCurrent fills the current-conditions panel. The heading shows
// lastCity as the user typed it, re-cased, not the name the server returned.
func (r *Renderer) RenderCurrent(cur models.Current, lastCity string, units models.Units) {
	v := r.view
	cond := cur.Condition()

	v.SetText(CurrentDate, weatherfmt.FormatToday(r.now()))
	v.SetText(CityName, DisplayCase(lastCity))
	v.SetText(CurrentTemp, weatherfmt.FormatTemp(cur.Main.Temp))

	desc := weatherfmt.TranslateDescription(cond.Description)
	v.SetImage(WeatherIcon, weatherfmt.IconURL(cond.Icon), desc)
	v.SetText(WeatherDesc, desc)

	v.SetText(Humidity, weatherfmt.FormatNumber(cur.Main.Humidity))
	v.SetText(WindSpeed, weatherfmt.FormatNumber(cur.Wind.Speed))
	v.SetText(WindUnit, units.WindSuffix())
	v.SetText(UnitToggleButton, units.TempLabel())

	v.SetText(OutfitText, weatherfmt.Outfit(cur.Main.Temp, units))

	v.SetHidden(CurrentSection, false)
	r.ShowError("")
}

func (r *Renderer) RenderForecast(fc models.Forecast) {
	loc := r.now().Location()
	r.view.Clear(ForecastContainer)
	for _, day := range weatherfmt.GroupForecast(fc.List) {
		r.view.AppendForecastCard(ForecastContainer, ForecastCard{
			Date:    weatherfmt.FormatDay(day.Dt, loc),
			IconURL: weatherfmt.IconURL(day.Icon),
			Min:     weatherfmt.FormatTemp(day.Min),
			Max:     weatherfmt.FormatTemp(day.Max),
		})
	}
	r.view.SetHidden(ForecastSection, false)
}

// RenderRecent rebuilds the recent-search dropdown. onSelect is called with
// the city of the entry the user activates.
func (r *Renderer) RenderRecent(cities []string, onSelect func(city string)) {
	r.view.Clear(RecentSearches)
	if len(cities) == 0 {
		r.view.SetHidden(RecentSearches, true)
		return
	}
	r.view.AppendLabel(RecentSearches, RecentLabel)
	for _, city := range cities {
		r.view.AppendAction(RecentSearches, city, func() { onSelect(city) })
	}
}

// DisplayCase upper-cases the first letter and lower-cases the rest.
func DisplayCase(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
