package domain

import "strings"

// Option row bounds on the product form.
const (
	MaxOptions = 4
	MinOptions = 1
)

// FallbackWeight is used when every catalog weight is already taken.
const FallbackWeight = "300g"

// WeightOptions lists the sellable bag sizes in display order.
var WeightOptions = []string{"200g", "300g", "500g", "1kg"}

// ProcessTypes lists the accepted processing methods.
var ProcessTypes = []string{
	"Washed", "Natural", "Honey", "White Honey", "Yellow Honey",
	"Red Honey", "Black Honey", "Anaerobic", "Carbonic Maceration",
}

// Continent groups the producing countries a product may come from.
type Continent struct {
	Name      string
	Countries []string
}

// Continents is the origin catalog, in display order.
var Continents = []Continent{
	{Name: "Africa", Countries: []string{"Ethiopia", "Kenya", "Tanzania", "Rwanda"}},
	{Name: "Latin America", Countries: []string{
		"Brazil", "Colombia", "Guatemala", "Costa Rica", "Honduras", "Mexico",
		"El Salvador", "Panama", "Peru", "Nicaragua", "Bolivia",
	}},
	{Name: "Asia", Countries: []string{"Indonesia", "Vietnam", "India"}},
}

// CountriesOf returns the countries of a continent.
func CountriesOf(continent string) ([]string, bool) {
	for _, c := range Continents {
		if c.Name == continent {
			return c.Countries, true
		}
	}
	return nil, false
}

// CheckOrigin validates a continent/nationality pair. Both may be empty; a
// nationality needs its continent.
func CheckOrigin(continent, nationality string) error {
	if continent == "" {
		if nationality != "" {
			return ErrNationalityMismatch
		}
		return nil
	}
	countries, ok := CountriesOf(continent)
	if !ok {
		return ErrUnknownContinent
	}
	if nationality == "" {
		return nil
	}
	for _, c := range countries {
		if c == nationality {
			return nil
		}
	}
	return ErrNationalityMismatch
}

// IsNationality reports whether any continent lists the country.
func IsNationality(country string) bool {
	for _, c := range Continents {
		for _, n := range c.Countries {
			if n == country {
				return true
			}
		}
	}
	return false
}

// IsProcessType reports whether t is a known processing method.
func IsProcessType(t string) bool {
	for _, p := range ProcessTypes {
		if p == t {
			return true
		}
	}
	return false
}

// NextWeight picks the first catalog weight not yet used.
func NextWeight(used []string) string {
	taken := make(map[string]struct{}, len(used))
	for _, u := range used {
		taken[u] = struct{}{}
	}
	for _, w := range WeightOptions {
		if _, ok := taken[w]; !ok {
			return w
		}
	}
	return FallbackWeight
}

// DefaultOption is the row a new product starts with.
func DefaultOption() OptionInput {
	return OptionInput{OptionValue: WeightOptions[0]}
}

// ResolveImageURL turns a stored image path into a URL under origin.
// Absolute http(s) URLs are returned unchanged.
func ResolveImageURL(origin, p string) string {
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http") {
		return p
	}
	return strings.TrimRight(origin, "/") + "/uploads/" + strings.TrimLeft(p, "/")
}
