package weatherfmt

import "strings"

const IconBaseURL = "https://basmilius.github.io/weather-icons/production/fill/all/"

// IconName maps an OpenWeather condition code such as "10d" to an icon asset
// name. The day variant is chosen when the code carries a "d" marker.
func IconName(code string) string {
	isDay := strings.Contains(code, "d")
	prefix := code
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	switch prefix {
	case "01":
		return pick(isDay, "clear-day", "clear-night")
	case "02":
		return pick(isDay, "partly-cloudy-day", "partly-cloudy-night")
	case "03":
		return "cloudy"
	case "04":
		return "overcast"
	case "09":
		return "rain"
	case "10":
		return pick(isDay, "partly-cloudy-day-rain", "partly-cloudy-night-rain")
	case "11":
		return "thunderstorms"
	case "13":
		return "snow"
	case "50":
		return "mist"
	default:
		return pick(isDay, "clear-day", "clear-night")
	}
}

func IconURL(code string) string {
	return IconBaseURL + IconName(code) + ".svg"
}

func pick(isDay bool, day, night string) string {
	if isDay {
		return day
	}
	return night
}
