package domain

// ZodiacSigns lists the twelve tropical zodiac signs in wheel order,
// starting from Aries.
var ZodiacSigns = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignElements maps each sign to its classical element.
var SignElements = map[string]string{
	"Aries": "fire", "Leo": "fire", "Sagittarius": "fire",
	"Taurus": "earth", "Virgo": "earth", "Capricorn": "earth",
	"Gemini": "air", "Libra": "air", "Aquarius": "air",
	"Cancer": "water", "Scorpio": "water", "Pisces": "water",
}

// SignModalities maps each sign to its modality.
var SignModalities = map[string]string{
	"Aries": "cardinal", "Cancer": "cardinal", "Libra": "cardinal", "Capricorn": "cardinal",
	"Taurus": "fixed", "Leo": "fixed", "Scorpio": "fixed", "Aquarius": "fixed",
	"Gemini": "mutable", "Virgo": "mutable", "Sagittarius": "mutable", "Pisces": "mutable",
}

// SunSignThemes maps each sun sign to its core life themes.
var SunSignThemes = map[string][]string{
	"Aries":       {"Leadership", "Initiative", "Independence"},
	"Taurus":      {"Stability", "Sensuality", "Persistence"},
	"Gemini":      {"Communication", "Adaptability", "Learning"},
	"Cancer":      {"Nurturing", "Emotional depth", "Protection"},
	"Leo":         {"Creativity", "Self-expression", "Recognition"},
	"Virgo":       {"Service", "Perfectionism", "Analysis"},
	"Libra":       {"Balance", "Relationships", "Harmony"},
	"Scorpio":     {"Transformation", "Intensity", "Depth"},
	"Sagittarius": {"Philosophy", "Adventure", "Growth"},
	"Capricorn":   {"Achievement", "Structure", "Authority"},
	"Aquarius":    {"Innovation", "Humanitarianism", "Independence"},
	"Pisces":      {"Spirituality", "Compassion", "Intuition"},
}

// BirthData is the raw user-supplied birth information. It is input only
// and never mutated.
type BirthData struct {
	BirthDate     string `json:"birthDate"`     // YYYY-MM-DD
	BirthTime     string `json:"birthTime"`     // HH:MM, optional AM/PM suffix
	BirthLocation string `json:"birthLocation"` // free text
}

// BigThree holds the three core zodiac placements. Empty strings mean the
// corresponding input was missing or malformed; callers treat that as a
// soft failure.
type BigThree struct {
	SunSign    string `json:"sunSign"`
	MoonSign   string `json:"moonSign"`
	RisingSign string `json:"risingSign"`
}

// BirthChart is the persisted chart derived from a user's birth data.
type BirthChart struct {
	UserID          string         `json:"userId"`
	SunSign         string         `json:"sunSign"`
	MoonSign        string         `json:"moonSign"`
	RisingSign      string         `json:"risingSign"`
	ElementBalance  map[string]int `json:"elementBalance"`
	ModalityBalance map[string]int `json:"modalityBalance"`
	LifeThemes      []string       `json:"lifeThemes"`
	DominantPlanet  string         `json:"dominantPlanet"`
}

const maxLifeThemes = 8

// NewBirthChart derives the persisted chart view from computed placements.
// Balances are counted over the three placements; life themes come from the
// sun sign and are capped.
func NewBirthChart(userID string, three BigThree) BirthChart {
	chart := BirthChart{
		UserID:          userID,
		SunSign:         three.SunSign,
		MoonSign:        three.MoonSign,
		RisingSign:      three.RisingSign,
		ElementBalance:  map[string]int{"fire": 0, "earth": 0, "air": 0, "water": 0},
		ModalityBalance: map[string]int{"cardinal": 0, "fixed": 0, "mutable": 0},
		DominantPlanet:  "Sun",
	}

	for _, sign := range []string{three.SunSign, three.MoonSign, three.RisingSign} {
		if el, ok := SignElements[sign]; ok {
			chart.ElementBalance[el]++
		}
		if mo, ok := SignModalities[sign]; ok {
			chart.ModalityBalance[mo]++
		}
	}

	themes := append([]string{}, SunSignThemes[three.SunSign]...)
	if len(themes) > maxLifeThemes {
		themes = themes[:maxLifeThemes]
	}
	chart.LifeThemes = themes

	return chart
}
