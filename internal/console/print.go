package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/0nxb/my-weather-app/internal/view"
)

// Print writes the visible sections of v as plain text.
func Print(w io.Writer, v *view.MemoryView) error {
	var b strings.Builder

	if !v.Hidden(view.ErrorDisplay) {
		fmt.Fprintf(&b, "! %s\n", v.Text(view.ErrorDisplay))
	}

	if !v.Hidden(view.CurrentSection) {
		fmt.Fprintf(&b, "== %s  %s ==\n", v.Text(view.CityName), v.Text(view.CurrentDate))
		fmt.Fprintf(&b, "%s %s  %s\n",
			v.Text(view.CurrentTemp), v.Text(view.UnitToggleButton), v.Text(view.WeatherDesc))
		fmt.Fprintf(&b, "습도 %s%%  풍속 %s%s\n",
			v.Text(view.Humidity), v.Text(view.WindSpeed), v.Text(view.WindUnit))
		fmt.Fprintf(&b, "%s\n", v.Text(view.OutfitText))
		if img := v.Image(view.WeatherIcon); img.Src != "" {
			fmt.Fprintf(&b, "icon: %s\n", img.Src)
		}
	}

	if !v.Hidden(view.ForecastSection) {
		for _, c := range v.Children(view.ForecastContainer) {
			if c.Kind != view.CardChild {
				continue
			}
			fmt.Fprintf(&b, "  %-10s %s / %s\n", c.Card.Date, c.Card.Min, c.Card.Max)
		}
	}

	if !v.Hidden(view.RecentSearches) {
		n := 0
		for _, c := range v.Children(view.RecentSearches) {
			switch c.Kind {
			case view.LabelChild:
				fmt.Fprintf(&b, "[%s]\n", c.Text)
			case view.ActionChild:
				n++
				fmt.Fprintf(&b, "  %d. %s\n", n, c.Text)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
