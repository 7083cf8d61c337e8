package orchestrator

import (
	"fmt"

	"github.com/hupe1980/catalogmesh/catalog"
)

// YearRange bounds the product releases a collection run asks for.
type YearRange struct {
	Min int
	Max int
}

// Config is the per-category collection profile: which brands to cover, the
// subcategory vocabulary, the specification keys requested from the model,
// and retailers named for data validation.
type Config struct {
	Category       catalog.Category
	PriorityBrands []string
	Subcategories  []string
	SpecKeys       []string
	Retailers      []string
	Years          YearRange
}

// defaultYears is the release window collection prompts cover.
var defaultYears = YearRange{Min: 2020, Max: 2024}

// CategoryConfig returns the collection profile for a category, or an error
// for categories without one.
func CategoryConfig(category catalog.Category) (Config, error) {
	cfg, ok := categoryConfigs[category]
	if !ok {
		return Config{}, fmt.Errorf("no collection config for category %q", category)
	}
	return cfg, nil
}

// ConfiguredCategories returns the categories with a collection profile, in
// planning order.
func ConfiguredCategories() []catalog.Category {
	var out []catalog.Category
	for _, c := range catalog.Categories() {
		if _, ok := categoryConfigs[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

var categoryConfigs = map[catalog.Category]Config{
	catalog.CategoryGolf: {
		Category: catalog.CategoryGolf,
		PriorityBrands: []string{
			"TaylorMade", "Titleist", "Callaway", "Ping", "Cobra", "Cleveland",
			"Mizuno", "Srixon", "Bridgestone", "Wilson",
			"Vice Golf", "Kirkland Signature", "Bushnell", "Garmin", "Blue Tees", "Precision Pro",
			"Travis Mathew", "G/FORE", "Bad Birdie", "Peter Millar", "Greyson",
			"Vessel", "Jones Sports", "Sun Mountain", "Ogio", "Stitch Golf",
			"Orange Whip", "SuperSpeed Golf", "Arccos", "SkyTrak",
		},
		Subcategories: []string{
			"drivers", "fairways", "hybrids", "irons", "wedges", "putters",
			"bags", "balls", "rangefinders", "apparel", "accessories",
		},
		SpecKeys: []string{"clubType", "loft", "shaft", "flex", "length", "headWeight", "adjustability", "modelYear"},
		Retailers: []string{
			"Second Swing Golf", "GlobalGolf", "2nd Swing", "Golf Avenue", "Rock Bottom Golf",
			"3balls", "Callaway Pre-Owned", "TaylorMade Pre-Owned", "PGA Superstore", "Golf Galaxy",
		},
		Years: defaultYears,
	},
	catalog.CategoryTech: {
		Category: catalog.CategoryTech,
		PriorityBrands: []string{
			"Apple", "Samsung", "Sony", "Bose", "Microsoft", "Google", "Dell", "Lenovo", "JBL", "Sonos",
			"Aftershokz", "Loop Experience", "Skullcandy", "Beats", "Jabra", "Anker", "Audio-Technica",
			"LARQ", "Ember", "Oura", "Dyson", "Belkin",
			"Nest", "Ring", "Philips Hue", "ecobee", "August",
		},
		Subcategories: []string{
			"phones", "laptops", "tablets", "headphones", "earbuds", "speakers",
			"smartwatches", "smart-home", "charging", "wearables",
		},
		SpecKeys:  []string{"productType", "screenSize", "storage", "ram", "processor", "battery"},
		Retailers: []string{"Best Buy", "Amazon", "B&H Photo", "Adorama", "Apple Store", "Target"},
		Years:     defaultYears,
	},
	catalog.CategoryFashion: {
		Category: catalog.CategoryFashion,
		PriorityBrands: []string{
			"Nike", "Adidas", "Lululemon", "Under Armour", "New Balance", "ASICS", "On Running", "Hoka",
			"Patagonia", "The North Face", "Arc'teryx", "Allbirds",
			"H&M", "Zara", "Levi's", "Aritzia", "Skims", "Alo Yoga", "Vuori", "Girlfriend Collective",
			"Rhone", "Ten Thousand", "Outdoor Voices",
			"Birkenstock", "Dr. Martens", "Crocs", "Vans", "Converse",
		},
		Subcategories: []string{
			"jackets", "pants", "shirts", "dresses", "shoes", "sneakers",
			"accessories", "athletic", "loungewear",
		},
		SpecKeys:  []string{"garmentType", "material", "fit", "sizes", "gender"},
		Retailers: []string{"Nordstrom", "REI", "Dick's", "Amazon", "SSENSE", "Net-a-Porter", "Shopbop"},
		Years:     defaultYears,
	},
	catalog.CategoryMakeup: {
		Category: catalog.CategoryMakeup,
		PriorityBrands: []string{
			"Charlotte Tilbury", "MAC", "Fenty Beauty", "Rare Beauty", "NARS", "Urban Decay",
			"Too Faced", "Tarte", "Benefit", "Glossier",
			"Clinique", "ELF", "Maybelline", "Rhode", "Summer Fridays", "Drunk Elephant",
			"The Ordinary", "CeraVe",
			"Beauty of Joseon", "Medicube", "Laneige", "COSRX", "Glow Recipe", "Tatcha",
			"Merit", "Ilia", "Kosas", "Tower 28", "Saie",
		},
		Subcategories: []string{
			"lipstick", "lip-gloss", "foundation", "concealer", "eyeshadow", "mascara",
			"blush", "bronzer", "skincare", "serums", "moisturizer", "sunscreen",
		},
		SpecKeys:  []string{"productType", "shade", "finish", "coverage", "size"},
		Retailers: []string{"Sephora", "Ulta", "Nordstrom", "Amazon", "Target", "SpaceNK"},
		Years:     defaultYears,
	},
	catalog.CategoryOutdoor: {
		Category: catalog.CategoryOutdoor,
		PriorityBrands: []string{
			"REI Co-op", "The North Face", "Osprey", "MSR", "Big Agnes", "Kelty",
			"Black Diamond", "Nemo", "Sea to Summit", "Gregory",
			"Stanley", "Yeti", "Hydro Flask", "Klean Kanteen",
			"Eureka", "Klymit", "Alps Mountaineering", "Therm-a-Rest", "Lightheart Gear",
			"Hilleberg", "Zpacks", "Hyperlite Mountain Gear", "Granite Gear",
		},
		Subcategories: []string{
			"tents", "sleeping-bags", "sleeping-pads", "backpacks", "stoves",
			"water-filters", "coolers", "drinkware", "clothing", "footwear",
		},
		SpecKeys:  []string{"productType", "capacity", "weight", "dimensions", "season"},
		Retailers: []string{"REI", "Backcountry", "Moosejaw", "Amazon", "Campsaver", "Enwild"},
		Years:     defaultYears,
	},
	catalog.CategoryPhotography: {
		Category: catalog.CategoryPhotography,
		PriorityBrands: []string{
			"Canon", "Sony", "Nikon", "Fujifilm", "Panasonic", "Leica", "OM System", "Hasselblad",
			"Sigma", "Tamron", "Zeiss", "Viltrox", "Samyang",
			"DJI", "Autel", "HoverAir", "Potensic",
			"GoPro", "Insta360",
			"Peak Design", "Moment", "Smallrig",
		},
		Subcategories: []string{
			"mirrorless", "dslr", "compact", "lenses", "tripods", "gimbals",
			"lighting", "bags", "drones", "action-cameras", "360-cameras",
		},
		SpecKeys:  []string{"productType", "sensorSize", "megapixels", "mount", "focalLength"},
		Retailers: []string{"B&H Photo", "Adorama", "Amazon", "Best Buy", "KEH Camera", "MPB"},
		Years:     defaultYears,
	},
	catalog.CategoryGaming: {
		Category: catalog.CategoryGaming,
		PriorityBrands: []string{
			"Sony PlayStation", "Microsoft Xbox", "Nintendo", "Steam Deck",
			"Razer", "Logitech", "SteelSeries", "Corsair", "HyperX", "ASUS ROG", "MSI",
			"Turtle Beach", "SCUF", "Elgato", "NZXT", "Secretlab",
			"Meta", "PSVR", "Valve Index",
			"Blue Microphones", "FIFINE", "Rode",
		},
		Subcategories: []string{
			"consoles", "controllers", "headsets", "keyboards", "mice",
			"monitors", "chairs", "streaming", "vr", "handhelds",
		},
		SpecKeys:  []string{"productType", "platform", "connectivity", "features"},
		Retailers: []string{"Best Buy", "GameStop", "Amazon", "Walmart", "Micro Center", "Newegg"},
		Years:     defaultYears,
	},
	catalog.CategoryMusic: {
		Category: catalog.CategoryMusic,
		PriorityBrands: []string{
			"Fender", "Gibson", "Taylor", "Martin", "PRS", "Epiphone", "Ibanez", "Gretsch",
			"Yamaha", "Roland", "Korg", "Nord", "Moog", "Arturia",
			"Shure", "Audio-Technica", "Sennheiser", "Rode", "AKG", "Neumann",
			"Pioneer DJ", "Native Instruments", "Numark",
			"Skullcandy", "PICUN", "Beats", "Bang & Olufsen",
		},
		Subcategories: []string{
			"electric-guitars", "acoustic-guitars", "bass", "keyboards", "drums",
			"microphones", "headphones", "monitors", "dj-equipment", "recording",
		},
		SpecKeys:  []string{"instrumentType", "bodyStyle", "material", "pickups", "features"},
		Retailers: []string{"Guitar Center", "Sweetwater", "Sam Ash", "Amazon", "Reverb", "Thomann"},
		Years:     defaultYears,
	},
	catalog.CategoryFitness: {
		Category: catalog.CategoryFitness,
		PriorityBrands: []string{
			"Rogue", "REP Fitness", "Titan Fitness", "Bowflex", "TRX",
			"Peloton", "NordicTrack", "Concept2", "AssaultFitness", "Schwinn",
			"Hyperice", "Theragun", "Therabody", "Normatec", "Hypervolt",
			"Whoop", "Garmin", "Fitbit", "Apple Watch", "Oura",
			"BootySprout", "Bala", "P.volve", "Mirror", "Tonal",
			"Chirp", "RAD", "TriggerPoint", "Lacrosse Ball Plus",
		},
		Subcategories: []string{
			"strength", "cardio", "recovery", "wearables", "yoga",
			"accessories", "resistance", "weights",
		},
		SpecKeys:  []string{"equipmentType", "dimensions", "weight", "resistance", "connectivity"},
		Retailers: []string{"Rogue Fitness", "Dick's", "Amazon", "REI", "Target", "Walmart"},
		Years:     defaultYears,
	},
	catalog.CategoryTravel: {
		Category: catalog.CategoryTravel,
		PriorityBrands: []string{
			"Away", "Rimowa", "Tumi", "Samsonite", "Briggs & Riley", "Monos", "July",
			"Béis", "Calpak", "Paravel", "Roam", "Horizn Studios",
			"Peak Design", "Osprey", "Nomatic", "Tortuga", "Patagonia",
			"Coowoz", "Travelpro", "Delsey", "American Tourister",
			"Cincha", "Stasher", "Cadence", "This Is Ground",
		},
		Subcategories: []string{
			"carry-on", "checked", "backpacks", "duffels", "weekenders",
			"packing-cubes", "accessories", "tech-organizers",
		},
		SpecKeys:  []string{"luggageType", "dimensions", "capacity", "material", "wheels"},
		Retailers: []string{"Away", "Nordstrom", "REI", "Amazon", "Target", "Bloomingdales"},
		Years:     defaultYears,
	},
	catalog.CategoryEDC: {
		Category: catalog.CategoryEDC,
		PriorityBrands: []string{
			"Benchmade", "Spyderco", "Chris Reeve", "Microtech", "Zero Tolerance", "Hinderer",
			"Civivi", "CJRB", "Outdoor Edge", "QSP", "Kizer",
			"Leatherman", "Victorinox", "Gerber", "SOG",
			"Ridge", "Bellroy", "Secrid", "Ekster", "Trayvax",
			"Olight", "Fenix", "RovyVon", "Streamlight", "Surefire", "Sofirn",
			"Fisher Space Pen", "Tactile Turn", "Refyne", "BigIDesign",
		},
		Subcategories: []string{
			"folding-knives", "fixed-blades", "multitools", "wallets",
			"flashlights", "pens", "watches", "keychains",
		},
		SpecKeys:  []string{"productType", "material", "bladeLength", "weight", "lockType"},
		Retailers: []string{"BladeHQ", "Knife Center", "Amazon", "REI", "DLT Trading", "GPKnives"},
		Years:     defaultYears,
	},
}
