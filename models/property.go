package models

// RawProperty holds one listing exactly as an extractor pulled it off the
// page: every field is unparsed text and any field may be empty. Extractors
// never fail on a missing field — they leave it blank and move on.
type RawProperty struct {
	ID             string
	SourceSite     string
	Category       string
	Address        string
	HouseNumber    string
	City           string
	PostalArea     string
	Price          string
	PreviousPrices []string
	LatestOffer    string
	ValidUntil     string
	BuiltYear      string
	LivingArea     string
	LandArea       string
	Rooms          string
	Floors         string
	ImageURL       string
	Agent          string
}

// Property is the normalized, persisted catalog entry. Two entries with the
// same ID are the same physical property, across runs and across sites.
type Property struct {
	ID             string           `json:"id"`
	Agent          Agent            `json:"agent"`
	Category       PropertyCategory `json:"category"`
	Address        string           `json:"address"`
	City           string           `json:"city"`
	PostalArea     string           `json:"postalArea"`
	Price          int              `json:"price"`
	PreviousPrices []int            `json:"previousPrices"`
	LatestOffer    int              `json:"latestOffer"`
	ValidUntil     string           `json:"validUntil"`
	BuiltYear      string           `json:"builtYear"`
	LivingAreaM2   int              `json:"livingAreaM2"`
	LandAreaM2     int              `json:"landAreaM2"`
	Rooms          int              `json:"rooms"`
	Floors         int              `json:"floors"`
	ImageURL       string           `json:"imageUrl"`
}

// PropertyCategory is the closed set of property types the catalog knows.
type PropertyCategory string

const (
	Sethus          PropertyCategory = "Sethus"
	Tvihus          PropertyCategory = "Tvihus"
	Radhus          PropertyCategory = "Radhus"
	Ibud            PropertyCategory = "Ibud"
	Summarhus       PropertyCategory = "Summarhus"
	Vinnubygningur  PropertyCategory = "Vinnubygningur"
	Grundstykki     PropertyCategory = "Grundstykki"
	Jord            PropertyCategory = "Jord"
	Neyst           PropertyCategory = "Neyst"
	CategoryUnknown PropertyCategory = "Undefined"
)

// Agent is the closed set of listing sites a capture can originate from.
type Agent string

const (
	AgentBetri    Agent = "Betri"
	AgentMeklarin Agent = "Meklarin"
	AgentSkyn     Agent = "Skyn"
	AgentUnknown  Agent = "Unknown"
)

// ChangeKind labels one observed catalog mutation.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangePrice    ChangeKind = "price changed"
	ChangeCategory ChangeKind = "category changed"
	ChangeAgent    ChangeKind = "agent changed"
	ChangeImage    ChangeKind = "image changed"
)

// ChangeEvent records one reconciliation event for the operator change log.
type ChangeEvent struct {
	Kind    ChangeKind
	ID      string
	Address string
	Old     string
	New     string
}

// String renders the event as one human-readable change-log line.
func (e ChangeEvent) String() string {
	switch e.Kind {
	case ChangeAdded:
		return string(e.Kind) + ": " + e.Address + " (" + e.ID + ")"
	default:
		return string(e.Kind) + ": " + e.Address + " (" + e.ID + ") " +
			e.Old + " -> " + e.New
	}
}
