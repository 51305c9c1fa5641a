package domain

// Glyph codes for the Astronomicon font used by the web client.
var glyphs = map[string]string{
	"Sun":     "Q",
	"Moon":    "R",
	"Mercury": "S",
	"Venus":   "T",
	"Mars":    "U",
	"Jupiter": "V",
	"Saturn":  "W",
	"Uranus":  "X",
	"Neptune": "Y",
	"Pluto":   "Z",
	"Chiron":  "q",

	"North Node": "g",
	"South Node": "i",
	"Lilith":     "z",
	"Ascendant":  "c",
	"Descendant": "f",
	"Midheaven":  "d",
	"IC":         "e",

	string(Aries):       "A",
	string(Taurus):      "B",
	string(Gemini):      "C",
	string(Cancer):      "D",
	string(Leo):         "E",
	string(Virgo):       "F",
	string(Libra):       "G",
	string(Scorpio):     "H",
	string(Sagittarius): "I",
	string(Capricorn):   "\\",
	string(Aquarius):    "K",
	string(Pisces):      "L",

	string(Conjunction): "!",
	string(Opposition):  "\"",
	string(Trine):       "$",
	string(Square):      "#",
	string(Sextile):     "%",
	string(Quincunx):    "&",
}

// Glyph returns the font code for a label, sign or aspect type name.
// Unmapped names are returned unchanged.
func Glyph(name string) string {
	if g, ok := glyphs[name]; ok {
		return g
	}
	return name
}
