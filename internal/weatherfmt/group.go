package weatherfmt

import (
	"sort"
	"strings"

	"github.com/0nxb/my-weather-app/internal/models"
)

const ForecastDays = 5

// Records at these times describe the day better than the night-time ones.
var referenceTimes = []string{"06:00:00", "09:00:00"}

type Day struct {
	Date string
	Dt   int64
	Min  float64
	Max  float64
	Icon string
}

// GroupForecast folds 3-hour forecast entries into per-day summaries keyed by
// the date part of dt_txt, sorted ascending and truncated to ForecastDays.
func GroupForecast(list []models.ForecastEntry) []Day {
	daily := make(map[string]*Day)

	for _, item := range list {
		key, _, _ := strings.Cut(item.DtTxt, " ")
		temp := item.Main.Temp

		d, ok := daily[key]
		if !ok {
			daily[key] = &Day{Date: key, Dt: item.Dt, Min: temp, Max: temp, Icon: item.Icon()}
			continue
		}

		d.Min = min(d.Min, temp)
		d.Max = max(d.Max, temp)
		if isReferenceTime(item.DtTxt) {
			d.Icon = item.Icon()
		}
	}

	keys := make([]string, 0, len(daily))
	for k := range daily {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > ForecastDays {
		keys = keys[:ForecastDays]
	}

	days := make([]Day, 0, len(keys))
	for _, k := range keys {
		days = append(days, *daily[k])
	}
	return days
}

func isReferenceTime(dtTxt string) bool {
	for _, ref := range referenceTimes {
		if strings.Contains(dtTxt, ref) {
			return true
		}
	}
	return false
}
