package devserver

// seedData maps each seeded country to its states
var seedData = []struct {
	country string
	states  []string
}{
	{"United States", []string{"Texas", "California", "New York", "Florida", "Washington", "Oregon"}},
	{"Germany", []string{"Bavaria", "Saxony", "Hesse"}},
	{"India", []string{"Kerala", "Punjab", "Gujarat", "Assam"}},
	{"Australia", []string{"Queensland", "Victoria", "Tasmania"}},
	{"Brazil", []string{"Bahia", "Parana"}},
	{"Canada", []string{"Ontario", "Quebec"}},
	{"Mexico", []string{"Jalisco", "Sonora"}},
	{"Nigeria", []string{"Lagos", "Kano"}},
	{"Austria", nil},
	{"Chile", nil},
	{"Japan", nil},
}

// Seed fills the store with sample countries and states
func Seed(s *Store) error {
	for _, entry := range seedData {
		country, err := s.CreateCountry(entry.country)
		if err != nil {
			return err
		}
		for _, name := range entry.states {
			if _, err := s.CreateState(name, country.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
