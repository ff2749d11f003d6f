package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []ApplicantStatus{
	StatusPendingReview,
	StatusInterview1Passed,
	StatusInterview1Failed,
	StatusInterview2Passed,
	StatusInterview2Failed,
	StatusPendingAssignment,
	StatusAssigned,
	StatusRejected,
}

func TestNextReviewStatusTable(t *testing.T) {
	cases := []struct {
		name    string
		current ApplicantStatus
		stage   int
		pass    bool
		rounds  int
		want    ApplicantStatus
		ok      bool
	}{
		{"single round pass goes straight to assignment", StatusPendingReview, 1, true, 1, StatusPendingAssignment, true},
		{"two round pass rests at interview1_passed", StatusPendingReview, 1, true, 2, StatusInterview1Passed, true},
		{"single round fail", StatusPendingReview, 1, false, 1, StatusInterview1Failed, true},
		{"two round fail", StatusPendingReview, 1, false, 2, StatusInterview1Failed, true},
		{"stage two pass", StatusInterview1Passed, 2, true, 2, StatusPendingAssignment, true},
		{"stage two fail", StatusInterview1Passed, 2, false, 2, StatusInterview2Failed, true},

		{"stage two never applies to single round", StatusInterview1Passed, 2, true, 1, "", false},
		{"stage one cannot re-run after pass", StatusInterview1Passed, 1, true, 2, "", false},
		{"stage two needs stage one first", StatusPendingReview, 2, true, 2, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextReviewStatus(tc.current, tc.stage, tc.pass, tc.rounds)
			require.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, status := range allStatuses {
		if !status.Terminal() {
			continue
		}
		for stage := 1; stage <= 2; stage++ {
			for _, pass := range []bool{true, false} {
				for rounds := 1; rounds <= 2; rounds++ {
					_, ok := NextReviewStatus(status, stage, pass, rounds)
					assert.Falsef(t, ok, "terminal %s must not transition (stage=%d pass=%v rounds=%d)", status, stage, pass, rounds)
				}
			}
		}
	}
}

func TestSingleRoundApplicantNeverRestsAtInterview1Passed(t *testing.T) {
	for _, pass := range []bool{true, false} {
		next, ok := NextReviewStatus(StatusPendingReview, 1, pass, 1)
		require.True(t, ok)
		assert.NotEqual(t, StatusInterview1Passed, next)
	}
}

func TestReviewSourceStatus(t *testing.T) {
	src, ok := ReviewSourceStatus(1)
	require.True(t, ok)
	assert.Equal(t, StatusPendingReview, src)

	src, ok = ReviewSourceStatus(2)
	require.True(t, ok)
	assert.Equal(t, StatusInterview1Passed, src)

	_, ok = ReviewSourceStatus(3)
	assert.False(t, ok)
}

func TestRecruitmentTypeRounds(t *testing.T) {
	assert.Equal(t, 1, RecruitmentInternalElection.InterviewRounds())
	assert.Equal(t, 2, RecruitmentNewStudent.InterviewRounds())
	assert.True(t, RecruitmentNewStudent.Valid())
	assert.False(t, RecruitmentType("alumni").Valid())
}
