package weatherfmt

// The backend reports Korean descriptions that read awkwardly in the widget.
var descriptions = map[string]string{
	"실 비": "이슬비",
	"튼구름": "구름 조금",
	"온흐림": "흐림",
	"박무":  "옅은 안개",
}

func TranslateDescription(text string) string {
	if t, ok := descriptions[text]; ok {
		return t
	}
	return text
}
