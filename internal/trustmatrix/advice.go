package trustmatrix

import (
	"fmt"
	"teamhealth/internal/model"
)

type quadrantText struct {
	interpretation string
	nextStep       string
}

var quadrantTexts = map[model.Quadrant]quadrantText{
	model.QuadrantThriving: {
		interpretation: "Deposits in the emotional bank account are high and bids for connection are met. The team has the goodwill and the habits to absorb setbacks.",
		nextStep:       "Protect what works: make the team's rituals explicit so they survive growth and turnover.",
	},
	model.QuadrantSolidFoundation: {
		interpretation: "Trust and appreciation are solid, but day-to-day bids for connection are often missed. Goodwill exists without enough small moments of contact.",
		nextStep:       "Increase responsiveness: agree on how quickly and how warmly the team answers each other's requests.",
	},
	model.QuadrantTrustErosion: {
		interpretation: "People still reach out and respond, but the emotional bank account is being drawn down. Interaction continues while trust quietly erodes.",
		nextStep:       "Rebuild trust: make appreciation specific and frequent, and address negativity before it becomes the norm.",
	},
	model.QuadrantGridlock: {
		interpretation: "Both trust and connection are low. Conflicts tend to repeat without resolution and team members withdraw from each other.",
		nextStep:       "Stabilize first: bring in a facilitator and agree on a small set of ground rules for how the team talks to each other.",
	},
}

type advice struct {
	issue  string
	action string
}

// priorityAdvice is keyed by dimension, then quadrant
var priorityAdvice = map[model.Dimension]map[model.Quadrant]advice{
	model.DimTeamConnection: {
		model.QuadrantThriving:        {"Connection is good but lags behind the team's other strengths", "Rotate who organizes informal team time so everyone stays involved"},
		model.QuadrantSolidFoundation: {"Members trust each other but rarely connect beyond tasks", "Add a short personal check-in to the start of weekly meetings"},
		model.QuadrantTrustErosion:    {"Contact is happening but feels transactional", "Create space for conversations that are not about deliverables"},
		model.QuadrantGridlock:        {"Team members have pulled away from each other", "Start with low-stakes shared activities before tackling hard topics"},
	},
	model.DimAppreciation: {
		model.QuadrantThriving:        {"Appreciation is present but could be more specific", "Name the concrete behavior when thanking a teammate"},
		model.QuadrantSolidFoundation: {"Appreciation is felt but seldom said out loud", "Make public recognition a standing item in team meetings"},
		model.QuadrantTrustErosion:    {"Contributions go unnoticed, draining goodwill", "Have each member acknowledge one colleague's contribution every week"},
		model.QuadrantGridlock:        {"Members feel their work is taken for granted", "Leads model appreciation daily until it becomes a team habit"},
	},
	model.DimResponsiveness: {
		model.QuadrantThriving:        {"Response times slip under pressure", "Agree on response expectations for busy periods"},
		model.QuadrantSolidFoundation: {"Requests for attention are often missed", "Set explicit norms for acknowledging messages and requests"},
		model.QuadrantTrustErosion:    {"Responses happen but without real engagement", "Practice turning toward bids: pause, look up, and respond with interest"},
		model.QuadrantGridlock:        {"Bids for connection are ignored or rejected", "Start with acknowledging every request, even when the answer is not yet"},
	},
	model.DimTrustPositivity: {
		model.QuadrantThriving:        {"Trust is high but untested in some areas", "Share more of the reasoning behind decisions to keep trust grounded"},
		model.QuadrantSolidFoundation: {"Trust is holding but positivity is fragile", "Look for good intent first when something goes wrong"},
		model.QuadrantTrustErosion:    {"Members increasingly assume bad intentions", "Address broken commitments openly and agree how to repair them"},
		model.QuadrantGridlock:        {"Negative assumptions dominate how members read each other", "Use a facilitated session to surface and reset expectations"},
	},
	model.DimConflictManagement: {
		model.QuadrantThriving:        {"Occasional conflicts take longer than needed to resolve", "Debrief resolved conflicts to capture what helped"},
		model.QuadrantSolidFoundation: {"Disagreements are avoided rather than discussed", "Schedule time to discuss open disagreements before they grow"},
		model.QuadrantTrustErosion:    {"Conflicts leave lasting tension", "Introduce a repair step after every heated discussion"},
		model.QuadrantGridlock:        {"The same conflicts repeat without resolution", "Use a mediator to work through the recurring disputes one at a time"},
	},
	model.DimGoalSupport: {
		model.QuadrantThriving:        {"Individual goals get less attention than team goals", "Review each member's development goals together once a quarter"},
		model.QuadrantSolidFoundation: {"Shared goals are clear but help is not always offered", "Make it normal to ask for and offer help during planning"},
		model.QuadrantTrustErosion:    {"Members doubt that others want them to succeed", "Pair members on goals so support becomes visible"},
		model.QuadrantGridlock:        {"The team lacks a shared sense of direction", "Re-establish a small number of goals everyone agrees on"},
	},
	model.DimWarningSigns: {
		model.QuadrantThriving:        {"Isolated moments of criticism or defensiveness appear", "Call out harsh moments gently and early"},
		model.QuadrantSolidFoundation: {"Defensiveness shows up when concerns are raised", "Frame concerns around specific behavior and invite the other view"},
		model.QuadrantTrustErosion:    {"Criticism, contempt or stonewalling are becoming common", "Agree on team norms that rule out sarcasm and personal attacks"},
		model.QuadrantGridlock:        {"Destructive communication patterns are entrenched", "Stop and reset: pause heated discussions and return to them with a facilitator"},
	},
}

// bundleFor selects the recommendation bundle of a quadrant and fills in the
// names of the weakest dimensions.
func bundleFor(q model.Quadrant, weakest []string) model.RecommendationBundle {
	first := "your weakest dimension"
	if len(weakest) > 0 {
		first = weakest[0]
	}
	focus := first
	if len(weakest) > 1 {
		focus = joinNames(weakest)
	}

	switch q {
	case model.QuadrantThriving:
		return model.RecommendationBundle{
			Immediate:   []string{"Share these results with the team and celebrate what is working"},
			ShortTerm:   []string{fmt.Sprintf("Pick one habit to strengthen %s over the next month", first)},
			LongTerm:    []string{"Document the team's collaboration rituals for new members"},
			Maintenance: []string{"Repeat the survey every six months", fmt.Sprintf("Keep an eye on %s as the team changes", focus)},
		}
	case model.QuadrantSolidFoundation:
		return model.RecommendationBundle{
			Immediate:   []string{"Agree on how quickly team members acknowledge each other's requests"},
			ShortTerm:   []string{fmt.Sprintf("Run a focused session on %s", first), "Add a short connection check-in to recurring meetings"},
			LongTerm:    []string{fmt.Sprintf("Track progress on %s in the next survey cycle", focus)},
			Maintenance: []string{"Keep appreciation and trust practices that already work"},
		}
	case model.QuadrantTrustErosion:
		return model.RecommendationBundle{
			Immediate:   []string{"Name the trust issues openly in a team meeting", fmt.Sprintf("Start with %s: agree on one concrete change this week", first)},
			ShortTerm:   []string{"Introduce weekly specific appreciation", "Follow up on broken commitments within a day"},
			LongTerm:    []string{fmt.Sprintf("Rebuild %s through consistent small deposits", focus)},
			Maintenance: []string{"Keep the responsiveness the team already has"},
		}
	default:
		return model.RecommendationBundle{
			Immediate:   []string{"Pause contentious discussions and agree on ground rules", "Consider bringing in an external facilitator"},
			ShortTerm:   []string{fmt.Sprintf("Work on %s first, one dimension at a time", focus)},
			LongTerm:    []string{"Rebuild trust and connection before taking on major changes", fmt.Sprintf("Re-survey once %s has improved", first)},
			Maintenance: []string{"Check in individually with every team member each month"},
		}
	}
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " and " + names[len(names)-1]
}
