package generators

// Value pools for deterministic field generation. Drawing from curated
// pools with the generator's own stream keeps output reproducible, which
// a globally-seeded fake-data library cannot guarantee.

var maleFirstNames = []string{
	"James", "Michael", "Robert", "John", "David", "William", "Richard",
	"Joseph", "Thomas", "Christopher", "Charles", "Daniel", "Matthew",
	"Anthony", "Mark", "Steven", "Andrew", "Paul", "Joshua", "Kenneth",
	"Kevin", "Brian", "Timothy", "Ronald", "Jason", "George", "Edward",
	"Ryan", "Eric", "Jacob", "Nicholas", "Jonathan", "Samuel", "Adam",
}

var femaleFirstNames = []string{
	"Mary", "Patricia", "Jennifer", "Linda", "Elizabeth", "Barbara",
	"Susan", "Jessica", "Karen", "Sarah", "Lisa", "Nancy", "Sandra",
	"Ashley", "Emily", "Kimberly", "Margaret", "Donna", "Michelle",
	"Carol", "Amanda", "Melissa", "Deborah", "Stephanie", "Rebecca",
	"Laura", "Helen", "Amy", "Angela", "Anna", "Ruth", "Brenda", "Diane",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young", "Allen", "King",
	"Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores", "Green",
	"Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts", "Gomez", "Phillips", "Evans", "Turner", "Diaz",
}

// location keeps city, state and zip consistent within one record.
type location struct {
	city      string
	state     string
	zipPrefix string
}

var locations = []location{
	{"New York", "NY", "100"},
	{"Los Angeles", "CA", "900"},
	{"Chicago", "IL", "606"},
	{"Houston", "TX", "770"},
	{"Phoenix", "AZ", "850"},
	{"Philadelphia", "PA", "191"},
	{"San Antonio", "TX", "782"},
	{"San Diego", "CA", "921"},
	{"Dallas", "TX", "752"},
	{"Austin", "TX", "787"},
	{"Jacksonville", "FL", "322"},
	{"Columbus", "OH", "432"},
	{"Charlotte", "NC", "282"},
	{"San Francisco", "CA", "941"},
	{"Indianapolis", "IN", "462"},
	{"Seattle", "WA", "981"},
	{"Denver", "CO", "802"},
	{"Boston", "MA", "021"},
	{"Nashville", "TN", "372"},
	{"Detroit", "MI", "482"},
	{"Portland", "OR", "972"},
	{"Las Vegas", "NV", "891"},
	{"Atlanta", "GA", "303"},
	{"Miami", "FL", "331"},
	{"Minneapolis", "MN", "554"},
}

var streetNames = []string{
	"Main", "Oak", "Maple", "Cedar", "Pine", "Elm", "Washington",
	"Lake", "Hill", "Park", "Walnut", "Spring", "River", "Church",
	"Highland", "Sunset", "Willow", "Meadow", "Forest", "Franklin",
}

var streetSuffixes = []string{"St", "Ave", "Blvd", "Dr", "Ln", "Rd", "Ct", "Way"}

var companyNouns = []string{
	"Technologies", "Solutions", "Systems", "Group", "Industries",
	"Enterprises", "Partners", "Holdings", "Labs", "Dynamics",
	"Ventures", "Networks", "Logistics", "Works",
}

var companyAdjectives = []string{
	"Innovative", "Advanced", "Global", "Premier", "Dynamic",
	"Summit", "Pioneer", "Apex", "Horizon", "Vertex", "Atlas",
	"Cascade", "Beacon", "Keystone",
}
