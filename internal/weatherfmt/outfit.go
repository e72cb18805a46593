package weatherfmt

import "github.com/0nxb/my-weather-app/internal/models"

type outfitBand struct {
	min    float64
	advice string
}

// Ordered by descending lower bound; the first band whose bound is reached wins.
var outfitBands = []outfitBand{
	{28, "🥵 찜통더위! 민소매, 반바지, 린넨 소재가 살길."},
	{23, "☀️ 반팔, 얇은 셔츠, 반바지나 면바지가 딱 좋아요."},
	{20, "👚 얇은 가디건이나 긴팔티, 청바지 추천!"},
	{17, "🧥 얇은 니트, 맨투맨, 후드티에 겉옷을 챙기세요."},
	{12, "🌬️ 자켓, 야상, 간절기 코트! 스타킹도 신을 때예요."},
	{9, "🧣 꽤 쌀쌀해요. 트렌치코트나 도톰한 점퍼가 필요해요."},
	{5, "🥶 코트, 가죽자켓, 히트텍! 따뜻하게 입고 나가세요."},
}

const coldestOutfit = "☃️ 이불 속으로..."

// Outfit suggests clothing for temp, which is expressed in units.
func Outfit(temp float64, units models.Units) string {
	t := temp
	if units == models.Imperial {
		t = FahrenheitToCelsius(temp)
	}
	for _, b := range outfitBands {
		if t >= b.min {
			return b.advice
		}
	}
	return coldestOutfit
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}
