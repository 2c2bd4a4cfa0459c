package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"teamhealth/internal/config"
	"teamhealth/internal/logging"
	"teamhealth/internal/model"
	"teamhealth/internal/repository"
	"teamhealth/internal/scoring"
	"teamhealth/internal/service"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var (
	seedTeams   int
	seedMembers int
	seedRandom  uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a demo organization with assessments and random submissions",
	Long: `Creates one organization with a number of team assessments, issues
participant codes and submits randomized answers for most of them. Team
reports are not generated; call POST /v1/assessments/{id}/report afterwards.`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedTeams, "teams", 4, "number of team assessments")
	seedCmd.Flags().IntVar(&seedMembers, "members", 6, "participant codes per team")
	seedCmd.Flags().Uint64Var(&seedRandom, "seed", uint64(time.Now().UnixNano()), "random seed")
}

var demoTeams = []string{"Platform", "Payments", "Mobile", "Data", "Support", "Design", "Growth", "Security"}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.Mongo.Database)
	repository.EnsureIndexes(ctx, db, logger)

	orgRepo := repository.NewOrganizationRepo(db)
	assessmentRepo := repository.NewAssessmentRepo(db)
	participantRepo := repository.NewParticipantRepo(db)

	orgSvc := service.NewOrganizationService(orgRepo, assessmentRepo, logger)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, participantRepo, orgRepo, logger)

	org, err := orgSvc.Create(ctx, model.CreateOrganizationRequest{Name: "Demo Org"})
	if err != nil {
		return err
	}

	rng := newRand(seedRandom)
	now := time.Now().UTC()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "organization %s (%s)\n", org.Name, org.ID)

	for i := 0; i < seedTeams; i++ {
		created, err := assessmentSvc.Create(ctx, model.CreateAssessmentRequest{
			OrganizationID:       org.ID,
			TeamName:             demoTeams[i%len(demoTeams)],
			ExpectedParticipants: seedMembers,
		})
		if err != nil {
			return err
		}

		// each team leans towards its own answer level
		level := 2 + rng.IntN(4)
		submitted := 0
		for _, p := range created.Participants {
			if rng.IntN(5) == 0 {
				continue
			}
			rs := randomResponses(rng, level)
			result, err := scoring.ScoreResponses(rs)
			if err != nil {
				return err
			}
			if err := participantRepo.SaveSubmission(ctx, p.Code, rs, result, now); err != nil {
				return err
			}
			submitted++
		}

		logger.Info("seeded assessment",
			zap.String("assessment", created.Assessment.ID),
			zap.Int("issued", len(created.Participants)),
			zap.Int("submitted", submitted))
		fmt.Fprintf(out, "  %-10s %s  %d/%d submitted\n", created.Assessment.TeamName, created.Assessment.ID, submitted, len(created.Participants))
	}
	return nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed>>1))
}

func randomResponses(rng *rand.Rand, level int) model.ResponseSet {
	rs := model.ResponseSet{}
	for _, q := range scoring.Questions {
		v := min(5, max(1, level+rng.IntN(3)-1))
		if q.Reverse {
			v = 6 - v
		}
		rs[q.ID] = v
	}
	return rs
}
