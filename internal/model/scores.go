package model

// DimensionScores holds the 0-100 score of each of the seven dimensions
type DimensionScores struct {
	TeamConnection     float64 `json:"teamConnection" bson:"teamConnection"`
	Appreciation       float64 `json:"appreciation" bson:"appreciation"`
	Responsiveness     float64 `json:"responsiveness" bson:"responsiveness"`
	TrustPositivity    float64 `json:"trustPositivity" bson:"trustPositivity"`
	ConflictManagement float64 `json:"conflictManagement" bson:"conflictManagement"`
	GoalSupport        float64 `json:"goalSupport" bson:"goalSupport"`
	WarningSigns       float64 `json:"warningSigns" bson:"warningSigns"`
}

// Get returns the score of a dimension. Unknown dimensions yield 0.
func (d DimensionScores) Get(dim Dimension) float64 {
	switch dim {
	case DimTeamConnection:
		return d.TeamConnection
	case DimAppreciation:
		return d.Appreciation
	case DimResponsiveness:
		return d.Responsiveness
	case DimTrustPositivity:
		return d.TrustPositivity
	case DimConflictManagement:
		return d.ConflictManagement
	case DimGoalSupport:
		return d.GoalSupport
	case DimWarningSigns:
		return d.WarningSigns
	}
	return 0
}

// Set assigns the score of a dimension
func (d *DimensionScores) Set(dim Dimension, v float64) {
	switch dim {
	case DimTeamConnection:
		d.TeamConnection = v
	case DimAppreciation:
		d.Appreciation = v
	case DimResponsiveness:
		d.Responsiveness = v
	case DimTrustPositivity:
		d.TrustPositivity = v
	case DimConflictManagement:
		d.ConflictManagement = v
	case DimGoalSupport:
		d.GoalSupport = v
	case DimWarningSigns:
		d.WarningSigns = v
	}
}

// DimensionAverages are the cross-team averages of the six rollup dimensions
type DimensionAverages struct {
	TeamConnection     float64 `json:"teamConnection" bson:"teamConnection"`
	Appreciation       float64 `json:"appreciation" bson:"appreciation"`
	Responsiveness     float64 `json:"responsiveness" bson:"responsiveness"`
	TrustPositivity    float64 `json:"trustPositivity" bson:"trustPositivity"`
	ConflictManagement float64 `json:"conflictManagement" bson:"conflictManagement"`
	GoalSupport        float64 `json:"goalSupport" bson:"goalSupport"`
}

// Get returns the average of a rollup dimension
func (d DimensionAverages) Get(dim Dimension) float64 {
	switch dim {
	case DimTeamConnection:
		return d.TeamConnection
	case DimAppreciation:
		return d.Appreciation
	case DimResponsiveness:
		return d.Responsiveness
	case DimTrustPositivity:
		return d.TrustPositivity
	case DimConflictManagement:
		return d.ConflictManagement
	case DimGoalSupport:
		return d.GoalSupport
	}
	return 0
}

// Set assigns the average of a rollup dimension; warning signs are ignored
func (d *DimensionAverages) Set(dim Dimension, v float64) {
	switch dim {
	case DimTeamConnection:
		d.TeamConnection = v
	case DimAppreciation:
		d.Appreciation = v
	case DimResponsiveness:
		d.Responsiveness = v
	case DimTrustPositivity:
		d.TrustPositivity = v
	case DimConflictManagement:
		d.ConflictManagement = v
	case DimGoalSupport:
		d.GoalSupport = v
	}
}

// PersonalResult is one participant's scored submission
type PersonalResult struct {
	PersonalScore   float64         `json:"personalScore" bson:"personalScore"`
	Grade           string          `json:"grade" bson:"grade"`
	DimensionScores DimensionScores `json:"dimensionScores" bson:"dimensionScores"`
	Strengths       []string        `json:"strengths" bson:"strengths"`
	GrowthAreas     []string        `json:"growthAreas" bson:"growthAreas"`
	Recommendations []string        `json:"recommendations" bson:"recommendations"`
}

// TeamScore is the consistency- and risk-penalized aggregate of personal scores
type TeamScore struct {
	Score             float64 `json:"teamScore" bson:"teamScore"`
	BaseScore         float64 `json:"baseScore" bson:"baseScore"`
	ConsistencyFactor float64 `json:"consistencyFactor" bson:"consistencyFactor"` // 0-1
	PenaltyFactor     float64 `json:"penaltyFactor" bson:"penaltyFactor"`         // (0-1]
	StandardDeviation float64 `json:"standardDeviation" bson:"standardDeviation"`
	AtRiskCount       int     `json:"atRiskCount" bson:"atRiskCount"` // members with warning signs < 50
	HealthGrade       string  `json:"healthGrade" bson:"healthGrade"`
}
