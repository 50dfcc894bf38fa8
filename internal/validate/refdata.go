package validate

// 封闭的参考名单：country/city 只接受这里出现的值

var knownCountries = toSet([]string{
	"Argentina", "Australia", "Austria", "Belgium", "Brazil", "Bulgaria",
	"Canada", "Chile", "China", "Colombia", "Croatia", "Czech Republic",
	"Denmark", "Egypt", "Estonia", "Finland", "France", "Germany", "Greece",
	"Hungary", "Iceland", "India", "Indonesia", "Ireland", "Israel", "Italy",
	"Japan", "Kenya", "Latvia", "Lithuania", "Luxembourg", "Malaysia",
	"Mexico", "Morocco", "Netherlands", "New Zealand", "Nigeria", "Norway",
	"Peru", "Philippines", "Poland", "Portugal", "Romania", "Serbia",
	"Singapore", "Slovakia", "Slovenia", "South Africa", "South Korea",
	"Spain", "Sweden", "Switzerland", "Thailand", "Turkey", "Ukraine",
	"United Kingdom", "United States", "Uruguay", "Vietnam",
})

var knownCities = toSet([]string{
	"Amsterdam", "Athens", "Auckland", "Bangkok", "Barcelona", "Beijing",
	"Belgrade", "Berlin", "Bogota", "Boston", "Bratislava", "Brussels",
	"Bucharest", "Budapest", "Buenos Aires", "Cairo", "Cape Town", "Chicago",
	"Copenhagen", "Dublin", "Helsinki", "Istanbul", "Jakarta", "Jerusalem",
	"Kyiv", "Lagos", "Lima", "Lisbon", "Ljubljana", "London", "Los Angeles",
	"Luxembourg", "Madrid", "Manila", "Melbourne", "Mexico City", "Milan",
	"Montreal", "Mumbai", "Munich", "Nairobi", "New York", "Oslo", "Paris",
	"Prague", "Rabat", "Reykjavik", "Riga", "Rome", "Santiago", "Sao Paulo",
	"Seoul", "Singapore", "Sofia", "Stockholm", "Sydney", "Tallinn",
	"Tel Aviv", "Tokyo", "Toronto", "Vienna", "Vilnius", "Warsaw", "Zagreb",
	"Zurich",
})

func toSet(names []string) map[string]struct{} {
	s := make(map[string]struct{}, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

func isKnownCountry(name string) bool {
	_, ok := knownCountries[name]
	return ok
}

func isKnownCity(name string) bool {
	_, ok := knownCities[name]
	return ok
}
