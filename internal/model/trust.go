package model

// Quadrant is a trust-matrix category
type Quadrant string

const (
	QuadrantThriving        Quadrant = "Thriving Team"
	QuadrantSolidFoundation Quadrant = "Solid Foundation"
	QuadrantTrustErosion    Quadrant = "Trust Erosion"
	QuadrantGridlock        Quadrant = "Gridlock"
)

// TeamPosition places a team on the Emotional Bank Account / Bids for Connection axes
type TeamPosition struct {
	EBAScore       float64  `json:"ebaScore"`
	BidsScore      float64  `json:"bidsScore"`
	Quadrant       Quadrant `json:"quadrant"`
	Interpretation string   `json:"interpretation"`
	NextStep       string   `json:"nextStep"`
}

// PriorityArea is one of the weakest dimensions with advice for the team's quadrant
type PriorityArea struct {
	Rank        int       `json:"rank"`
	Dimension   Dimension `json:"dimension"`
	DisplayName string    `json:"displayName"`
	Score       float64   `json:"score"`
	Issue       string    `json:"issue"`
	Action      string    `json:"action"`
}

// RecommendationBundle groups advice by time horizon
type RecommendationBundle struct {
	Immediate   []string `json:"immediate"`
	ShortTerm   []string `json:"shortTerm"`
	LongTerm    []string `json:"longTerm"`
	Maintenance []string `json:"maintenance"`
}

// Personalization is the full trust-matrix view of a set of dimension scores
type Personalization struct {
	Position        TeamPosition         `json:"position"`
	PriorityAreas   []PriorityArea       `json:"priorityAreas"`
	Recommendations RecommendationBundle `json:"recommendations"`
}
