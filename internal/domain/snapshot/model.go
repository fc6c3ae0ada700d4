package snapshot

// Document is the persisted dashboard file. Every field is always written;
// no omitempty anywhere so consumers never see a missing key.
type Document struct {
	Updated    string     `json:"updated"`
	Football   Football   `json:"football"`
	Basketball Basketball `json:"basketball"`
	Tennis     Individual `json:"tennis"`
	Motorsport Series     `json:"motorsport"`
}

type Football struct {
	RoundLabel       string    `json:"roundLabel"`
	Standings        Standings `json:"standings"`
	SelectedFixtures []Fixture `json:"selectedFixtures"`
}

type Standings struct {
	Leader     string   `json:"leader"`
	Contenders []string `json:"contenders"`
}

type Fixture struct {
	Home             string   `json:"home"`
	Away             string   `json:"away"`
	KickoffAt        string   `json:"kickoffAt"`
	Round            int      `json:"round"`
	DisplayTime      string   `json:"displayTime"`
	VenueLocalTime   string   `json:"venueLocalTime"`
	VenueDay         string   `json:"venueDay"`
	VenueClock       string   `json:"venueClock"`
	BroadcastChannel string   `json:"broadcastChannel"`
	MatchedTiers     []int    `json:"matchedTiers"`
	TierNames        []string `json:"tierNames"`
	Status           string   `json:"status"`
	Scoreline        string   `json:"scoreline"`
	SourceIdentifier string   `json:"sourceIdentifier"`
}

type Basketball struct {
	Team       string         `json:"team"`
	Record     string         `json:"record"`
	Rank       string         `json:"rank"`
	LastResult GameResult     `json:"lastResult"`
	Upcoming   []UpcomingGame `json:"upcoming"`
}

type GameResult struct {
	Opponent string `json:"opponent"`
	Result   string `json:"result"`
	Score    string `json:"score"`
	Date     string `json:"date"`
}

type UpcomingGame struct {
	Opponent       string `json:"opponent"`
	Location       string `json:"location"`
	DisplayTime    string `json:"displayTime"`
	VenueLocalTime string `json:"venueLocalTime"`
	Channel        string `json:"channel"`
	RawChannel     string `json:"rawChannel"`
	NationalTV     bool   `json:"nationalTv"`
}

// Individual summarises one competitor in an individual sport.
type Individual struct {
	Competitor string `json:"competitor"`
	Recent     Event  `json:"recent"`
	Next       Event  `json:"next"`
}

type Event struct {
	Status string `json:"status"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
	Result string `json:"result"`
	Date   string `json:"date"`
}

// Series summarises the next event of a motorsport championship.
type Series struct {
	Series string `json:"series"`
	Status string `json:"status"`
	Name   string `json:"name"`
	Venue  string `json:"venue"`
	Date   string `json:"date"`
}
