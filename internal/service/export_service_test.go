package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp := f.createAssessment(t, "", "Platform", 3)
	f.submit(t, resp.Participants[0].Code, 4)
	f.submit(t, resp.Participants[2].Code, 3)

	rows, err := f.exportSvc.Rows(ctx, resp.Assessment.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, resp.Participants[0].Code, rows[0].Code)
	assert.Equal(t, 60.0, rows[1].PersonalScore)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "code,submitted_at,personal_score,grade,teamConnection,appreciation,responsiveness,trustPositivity,conflictManagement,goalSupport,warningSigns", lines[0])
	assert.Equal(t, resp.Participants[0].Code+",2026-03-02T09:30:00Z,80.0,Good,80.0,80.0,80.0,80.0,80.0,80.0,80.0", lines[1])

	_, err = f.exportSvc.Rows(ctx, "missing")
	assert.ErrorIs(t, err, ErrAssessmentNotFound)
}
