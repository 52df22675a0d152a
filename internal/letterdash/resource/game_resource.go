package resource

import (
	"github.com/enescakir/emoji"
	"github.com/letterdash-games/letterdash/internal/letterdash/words"
)

type Category struct {
	Text   string
	Status bool
}

type Letter struct {
	Text   string
	Status bool
}

var (
	Letters = []Letter{
		{Text: "A", Status: true}, {Text: "B", Status: true}, {Text: "C", Status: true},
		{Text: "D", Status: true}, {Text: "E", Status: true}, {Text: "F", Status: true},
		{Text: "G", Status: true}, {Text: "H", Status: true}, {Text: "I", Status: true},
		{Text: "J", Status: true}, {Text: "K", Status: true}, {Text: "L", Status: true},
		{Text: "M", Status: true}, {Text: "N", Status: true}, {Text: "O", Status: true},
		{Text: "P", Status: true}, {Text: "R", Status: true}, {Text: "S", Status: true},
		{Text: "T", Status: true}, {Text: "W", Status: true},
		{Text: "Q"}, {Text: "U"}, {Text: "V"}, {Text: "X"}, {Text: "Y"}, {Text: "Z"},
	}

	Categories = []Category{
		{Text: "Colors", Status: true}, {Text: "Animals", Status: true},
		{Text: "Countries", Status: true}, {Text: "Cities", Status: true},
		{Text: "Foods", Status: true}, {Text: "Sports", Status: true},
		{Text: "Names", Status: true}, {Text: "Movies"},
		{Text: "Brands"}, {Text: "Any word"},
	}

	Avatars = []string{
		emoji.Fox.String(), emoji.Owl.String(), emoji.Penguin.String(),
		emoji.Octopus.String(), emoji.Koala.String(), emoji.Lion.String(),
		emoji.Unicorn.String(), emoji.Panda.String(),
	}

	RoundsNum  = []int{1, 2, 3, 4, 5}
	RoundTimes = []int{60, 90, 120}
)

// ActiveLetters returns the letters enabled for random draw.
func ActiveLetters() []string {
	var out []string
	for _, l := range Letters {
		if l.Status {
			out = append(out, l.Text)
		}
	}
	return out
}

// ActiveCategories returns the categories enabled for random draw.
func ActiveCategories() []string {
	var out []string
	for _, c := range Categories {
		if c.Status {
			out = append(out, c.Text)
		}
	}
	return out
}

// DefaultDictionary builds the built-in category rules used when the
// word bank has no opinion.
func DefaultDictionary() words.Dictionary {
	return words.Dictionary{
		"colors": {
			Keywords: []string{
				"red", "orange", "yellow", "green", "blue", "indigo", "violet",
				"purple", "pink", "brown", "black", "white", "gray", "grey",
				"amber", "azure", "teal", "cyan", "magenta", "maroon", "navy", "olive",
				"gold", "silver", "beige", "crimson", "turquoise", "lavender",
			},
		},
		"animals": {
			Partial: true,
			Keywords: []string{
				"aardvark", "antelope", "bear", "beaver", "badger", "cat", "camel",
				"cheetah", "dog", "dolphin", "deer", "elephant", "eagle", "fox",
				"frog", "giraffe", "goat", "horse", "hamster", "iguana", "jaguar",
				"kangaroo", "koala", "lion", "lemur", "monkey", "moose", "newt",
				"otter", "owl", "penguin", "panda", "rabbit", "raccoon", "snake",
				"seal", "tiger", "turtle", "walrus", "wolf", "zebra",
			},
		},
		"countries": {
			Keywords: []string{
				"argentina", "australia", "austria", "belgium", "brazil", "canada",
				"chile", "china", "denmark", "egypt", "finland", "france",
				"germany", "greece", "hungary", "iceland", "india", "indonesia",
				"ireland", "italy", "japan", "kenya", "mexico", "morocco",
				"netherlands", "norway", "peru", "poland", "portugal", "russia",
				"spain", "sweden", "switzerland", "thailand", "turkey", "ukraine",
				"wales",
			},
		},
		"names": {
			// any single word that reads like a name
			Predicate: func(answer string) bool {
				for _, r := range answer {
					if (r < 'a' || r > 'z') && r != '-' && r != '\'' {
						return false
					}
				}
				return true
			},
		},
		"any word": {
			Predicate: func(answer string) bool { return true },
		},
	}
}

// SeedWords is the initial content of the word bank, keyed by
// normalized category name.
func SeedWords() map[string][]string {
	return map[string][]string{
		"colors": {
			"red", "orange", "yellow", "green", "blue", "purple", "pink",
			"brown", "black", "white", "gray", "amber", "azure", "teal", "cyan",
			"magenta", "maroon", "navy", "olive", "gold", "silver", "beige",
			"crimson", "turquoise", "lavender", "indigo", "violet",
		},
		"animals": {
			"bear", "cat", "camel", "cheetah", "dog", "dolphin", "elephant",
			"eagle", "fox", "frog", "giraffe", "goat", "horse", "jaguar",
			"kangaroo", "koala", "lion", "monkey", "otter", "owl", "penguin",
			"panda", "rabbit", "snake", "tiger", "turtle", "wolf", "zebra",
		},
		"countries": {
			"argentina", "australia", "belgium", "brazil", "canada", "china",
			"denmark", "egypt", "finland", "france", "germany", "greece",
			"iceland", "india", "ireland", "italy", "japan", "kenya", "mexico",
			"norway", "peru", "poland", "portugal", "spain", "sweden",
			"thailand", "turkey", "wales",
		},
		"cities": {
			"amsterdam", "athens", "berlin", "boston", "cairo", "chicago",
			"dublin", "geneva", "helsinki", "lisbon", "london", "madrid",
			"milan", "moscow", "nairobi", "oslo", "paris", "prague", "rome",
			"seattle", "tokyo", "vienna", "warsaw",
		},
		"foods": {
			"apple", "bread", "burger", "carrot", "cheese", "donut", "egg",
			"fig", "grape", "honey", "kiwi", "lemon", "mango", "noodle",
			"olive", "pasta", "pizza", "rice", "salad", "taco", "waffle",
		},
		"sports": {
			"archery", "badminton", "baseball", "basketball", "boxing",
			"cricket", "curling", "cycling", "fencing", "football", "golf",
			"hockey", "judo", "karate", "rowing", "rugby", "sailing", "soccer",
			"swimming", "tennis", "volleyball", "wrestling",
		},
	}
}
