package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutorspace/tutorspace_bot/internal/model"
)

func tutor(username string, rating float64, count int, rate float64) *model.TutorProfile {
	t := &model.TutorProfile{Username: username, TotalRatings: count}
	if rating > 0 {
		r := model.Decimal(rating)
		t.AverageRating = &r
	}
	if rate > 0 {
		hr := model.Decimal(rate)
		t.HourlyRate = &hr
	}
	return t
}

func usernames(tutors []*model.TutorProfile) []string {
	out := make([]string, len(tutors))
	for i, t := range tutors {
		out[i] = t.Username
	}
	return out
}

func TestScoreBonusForReviewCount(t *testing.T) {
	many := tutor("many", 4.5, 12, 30)
	few := tutor("few", 4.5, 2, 20)

	// 4.5 * (1 + 10/10) = 9.0 против 4.5 * (1 + 2/10) = 5.4
	assert.InDelta(t, 9.0, Score(many), 1e-9)
	assert.InDelta(t, 5.4, Score(few), 1e-9)
}

func TestRankHigherScoreFirstDespiteRate(t *testing.T) {
	a := tutor("a", 4.5, 12, 30)
	b := tutor("b", 4.5, 2, 20)

	tutors := []*model.TutorProfile{b, a}
	Rank(tutors)

	assert.Equal(t, []string{"a", "b"}, usernames(tutors))
}

func TestRankRatedBeforeUnrated(t *testing.T) {
	tutors := []*model.TutorProfile{
		tutor("unrated", 0, 0, 10),
		tutor("low", 2.0, 1, 50),
	}
	Rank(tutors)

	assert.Equal(t, []string{"low", "unrated"}, usernames(tutors))
}

func TestRankTiesByRate(t *testing.T) {
	tutors := []*model.TutorProfile{
		tutor("expensive", 4.0, 5, 40),
		tutor("cheap", 4.0, 5, 15),
		tutor("norate", 4.0, 5, 0),
	}
	Rank(tutors)

	// При равном весе дешевле выше, без ставки - в конце группы
	assert.Equal(t, []string{"cheap", "expensive", "norate"}, usernames(tutors))
}

func TestRankStable(t *testing.T) {
	first := tutor("first", 4.0, 5, 25)
	second := tutor("second", 4.0, 5, 25)

	tutors := []*model.TutorProfile{first, second}
	Rank(tutors)

	require.Equal(t, []string{"first", "second"}, usernames(tutors))
}
