package scoring

import "teamhealth/internal/model"

const (
	MinAnswer = 1
	MaxAnswer = 5

	// reverseBase turns a reverse-scored answer v into reverseBase - v
	reverseBase = 6
	// likertToPercent maps a 1-5 average onto the 0-100 scale
	likertToPercent = 20
)

// Questions is the fixed 27-item instrument in presentation order
var Questions = []model.Question{
	{ID: "Q1", Dimension: model.DimTeamConnection, Prompt: "I feel genuinely connected to the people on my team."},
	{ID: "Q2", Dimension: model.DimTeamConnection, Prompt: "Team members know about each other's work and lives beyond their tasks."},
	{ID: "Q3", Dimension: model.DimTeamConnection, Prompt: "We make time to interact informally as a team."},

	{ID: "Q4", Dimension: model.DimAppreciation, Prompt: "Team members regularly express appreciation for each other's work."},
	{ID: "Q5", Dimension: model.DimAppreciation, Prompt: "My contributions are noticed and acknowledged."},
	{ID: "Q6", Dimension: model.DimAppreciation, Prompt: "We celebrate successes together, big and small."},

	{ID: "Q7", Dimension: model.DimResponsiveness, Prompt: "When I reach out to a teammate, they respond with interest."},
	{ID: "Q8", Dimension: model.DimResponsiveness, Prompt: "Requests for help are acknowledged quickly."},
	{ID: "Q9", Dimension: model.DimResponsiveness, Prompt: "Team members turn toward each other when someone needs attention."},

	{ID: "Q10", Dimension: model.DimTrustPositivity, Prompt: "I trust my teammates to follow through on their commitments."},
	{ID: "Q11", Dimension: model.DimTrustPositivity, Prompt: "Team members assume good intentions when something goes wrong."},
	{ID: "Q12", Dimension: model.DimTrustPositivity, Prompt: "The overall mood on the team is positive."},
	{ID: "Q13", Dimension: model.DimTrustPositivity, Prompt: "I can admit a mistake on this team without fear."},

	{ID: "Q14", Dimension: model.DimConflictManagement, Prompt: "Disagreements on the team are discussed openly and calmly."},
	{ID: "Q15", Dimension: model.DimConflictManagement, Prompt: "We repair tension quickly after a conflict."},
	{ID: "Q16", Dimension: model.DimConflictManagement, Prompt: "Team members look for compromise rather than winning arguments."},

	{ID: "Q17", Dimension: model.DimGoalSupport, Prompt: "Team members support each other's professional goals."},
	{ID: "Q18", Dimension: model.DimGoalSupport, Prompt: "We share a clear understanding of what the team is trying to achieve."},
	{ID: "Q19", Dimension: model.DimGoalSupport, Prompt: "I feel my teammates want me to succeed."},
	{ID: "Q20", Dimension: model.DimGoalSupport, Prompt: "We help each other when workloads become uneven."},

	{ID: "Q21", Dimension: model.DimWarningSigns, Prompt: "Feedback on the team is delivered without attacking anyone's character."},
	{ID: "Q22", Dimension: model.DimWarningSigns, Prompt: "Team members show contempt, sarcasm or eye-rolling toward each other.", Reverse: true},
	{ID: "Q23", Dimension: model.DimWarningSigns, Prompt: "People rarely get defensive when concerns are raised."},
	{ID: "Q24", Dimension: model.DimWarningSigns, Prompt: "Team members stay engaged during difficult conversations instead of shutting down."},
	{ID: "Q25", Dimension: model.DimWarningSigns, Prompt: "Complaints are about specific behavior, not about who someone is."},
	{ID: "Q26", Dimension: model.DimWarningSigns, Prompt: "Team members listen to understand rather than to respond."},
	{ID: "Q27", Dimension: model.DimWarningSigns, Prompt: "Tense moments do not escalate into personal attacks."},
}

var (
	questionIndex        = make(map[string]model.Question, len(Questions))
	questionsByDimension = make(map[model.Dimension][]model.Question, len(model.Dimensions))
)

func init() {
	for _, q := range Questions {
		questionIndex[q.ID] = q
		questionsByDimension[q.Dimension] = append(questionsByDimension[q.Dimension], q)
	}
}

// QuestionsFor returns the items that make up a dimension
func QuestionsFor(dim model.Dimension) []model.Question {
	return questionsByDimension[dim]
}
