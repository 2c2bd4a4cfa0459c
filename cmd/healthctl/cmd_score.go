package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"teamhealth/internal/model"
	"teamhealth/internal/scoring"
	"teamhealth/internal/trustmatrix"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score <responses.json>",
	Short: "Score a response set locally",
	Long: `Reads a JSON object mapping question ids (Q1..Q27) to answers 1-5 and
prints the personal result together with the trust-matrix view of its
dimension scores. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

type scoreOutput struct {
	Result      *model.PersonalResult  `json:"result"`
	TrustMatrix *model.Personalization `json:"trustMatrix"`
}

func runScore(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var rs model.ResponseSet
	if err := json.NewDecoder(in).Decode(&rs); err != nil {
		return fmt.Errorf("parse responses: %w", err)
	}

	result, err := scoring.ScoreResponses(rs)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(scoreOutput{
		Result:      result,
		TrustMatrix: trustmatrix.Recommend(result.DimensionScores),
	})
}
