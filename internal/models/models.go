package models

// Units selects the temperature and wind speed scale the backend reports in.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

func (u Units) Toggle() Units {
	if u == Imperial {
		return Metric
	}
	return Imperial
}

func (u Units) Valid() bool {
	return u == Metric || u == Imperial
}

func (u Units) TempLabel() string {
	if u == Metric {
		return "°C"
	}
	return "°F"
}

func (u Units) WindSuffix() string {
	if u == Metric {
		return " m/s"
	}
	return " mph"
}

type Condition struct {
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

type Main struct {
	Temp     float64 `json:"temp"`
	Humidity float64 `json:"humidity"`
}

type Wind struct {
	Speed float64 `json:"speed"`
}

type Current struct {
	Name    string      `json:"name"`
	Dt      int64       `json:"dt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
	Wind    Wind        `json:"wind"`
}

// Condition returns the first reported condition, or the zero value when the
// backend sent none.
func (c Current) Condition() Condition {
	if len(c.Weather) == 0 {
		return Condition{}
	}
	return c.Weather[0]
}

type ForecastEntry struct {
	Dt      int64       `json:"dt"`
	DtTxt   string      `json:"dt_txt"`
	Main    Main        `json:"main"`
	Weather []Condition `json:"weather"`
}

func (e ForecastEntry) Icon() string {
	if len(e.Weather) == 0 {
		return ""
	}
	return e.Weather[0].Icon
}

type Forecast struct {
	List []ForecastEntry `json:"list"`
}

type WeatherResponse struct {
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
