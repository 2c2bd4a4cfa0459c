package model

// Dimension identifies one of the seven behavioral categories of the instrument
type Dimension string

const (
	DimTeamConnection     Dimension = "teamConnection"
	DimAppreciation       Dimension = "appreciation"
	DimResponsiveness     Dimension = "responsiveness"
	DimTrustPositivity    Dimension = "trustPositivity"
	DimConflictManagement Dimension = "conflictManagement"
	DimGoalSupport        Dimension = "goalSupport"
	DimWarningSigns       Dimension = "warningSigns"
)

// Dimensions lists all seven dimensions in their canonical order
var Dimensions = []Dimension{
	DimTeamConnection,
	DimAppreciation,
	DimResponsiveness,
	DimTrustPositivity,
	DimConflictManagement,
	DimGoalSupport,
	DimWarningSigns,
}

// RollupDimensions are the six dimensions averaged in organization summaries.
// Warning signs are not part of the cross-team rollup.
var RollupDimensions = []Dimension{
	DimTeamConnection,
	DimAppreciation,
	DimResponsiveness,
	DimTrustPositivity,
	DimConflictManagement,
	DimGoalSupport,
}

var dimensionNames = map[Dimension]string{
	DimTeamConnection:     "Team Connection",
	DimAppreciation:       "Appreciation",
	DimResponsiveness:     "Responsiveness",
	DimTrustPositivity:    "Trust & Positivity",
	DimConflictManagement: "Conflict Management",
	DimGoalSupport:        "Goal Support",
	DimWarningSigns:       "Warning Signs",
}

// DisplayName returns the human-readable name of the dimension
func (d Dimension) DisplayName() string {
	if name, ok := dimensionNames[d]; ok {
		return name
	}
	return string(d)
}

// Question is one Likert item of the survey instrument
type Question struct {
	ID        string    `json:"id"` // "Q1".."Q27"
	Dimension Dimension `json:"dimension"`
	Prompt    string    `json:"prompt"`
	Reverse   bool      `json:"reverse,omitempty"` // scored as 6 - value
}

// ResponseSet maps question IDs to answers on the 1-5 scale
type ResponseSet map[string]int
