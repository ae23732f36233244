package certificate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cert(id string, date time.Time, days int64, cid string) Certificate {
	return Certificate{
		ID:         id,
		EmployeeID: "e1",
		Date:       date,
		Days:       decimal.NewFromInt(days),
		CID:        cid,
	}
}

func TestEvaluateReferral_SingleCertificateBoundary(t *testing.T) {
	ev := EvaluateReferral(cert("", day(2026, 3, 1), 16, "M54"), nil)
	assert.True(t, ev.Triggered)

	ev = EvaluateReferral(cert("", day(2026, 3, 1), 15, "M54"), nil)
	assert.False(t, ev.Triggered)
	assert.Equal(t, "15", ev.TotalAccumulated.String())
}

func TestEvaluateReferral_AccumulatesWithinWindow(t *testing.T) {
	history := []Certificate{cert("c1", day(2026, 2, 1), 10, "J11")}

	first := EvaluateReferral(history[0], nil)
	assert.False(t, first.Triggered)

	ev := EvaluateReferral(cert("", day(2026, 3, 1), 10, "M54"), history)
	assert.True(t, ev.Triggered)
	assert.Equal(t, "20", ev.TotalAccumulated.String())
	assert.Equal(t, "10", ev.SameCIDAccumulated.String())
}

func TestEvaluateReferral_Window(t *testing.T) {
	history := []Certificate{
		cert("old", day(2026, 1, 1), 10, "M54"),    // 59 days before
		cert("older", day(2025, 12, 30), 9, "M54"), // 61 days before
		cert("future", day(2026, 3, 5), 9, "M54"),
		{ID: "other", EmployeeID: "e2", Date: day(2026, 2, 20), Days: decimal.NewFromInt(30), CID: "M54"},
	}

	ev := EvaluateReferral(cert("", day(2026, 3, 1), 5, "m54"), history)
	assert.Equal(t, "15", ev.TotalAccumulated.String())
	assert.Equal(t, "15", ev.SameCIDAccumulated.String())
	assert.False(t, ev.Triggered)
}

func TestEvaluateReferral_SkipsItself(t *testing.T) {
	c := cert("c1", day(2026, 3, 1), 10, "M54")
	ev := EvaluateReferral(c, []Certificate{c})
	assert.Equal(t, "10", ev.TotalAccumulated.String())
}

func TestEvaluateReferral_SameCIDNormalized(t *testing.T) {
	history := []Certificate{cert("c1", day(2026, 2, 20), 8, "f32.1")}
	ev := EvaluateReferral(cert("", day(2026, 3, 1), 8, "F321"), history)
	assert.Equal(t, "16", ev.SameCIDAccumulated.String())
	assert.True(t, ev.Triggered)
}

func TestToDays(t *testing.T) {
	assert.Equal(t, "2", ToDays(Duration{Value: decimal.NewFromInt(16), Unit: UnitHours}).String())
	assert.Equal(t, "0.5", ToDays(Duration{Value: decimal.NewFromInt(4), Unit: UnitHours}).String())
	assert.Equal(t, "3", ToDays(Duration{Value: decimal.NewFromInt(3), Unit: UnitDays}).String())
}

func TestIsPsychosocial(t *testing.T) {
	cases := map[string]bool{
		"F32":   true,
		"Z65.0": true,
		"f41.1": true,
		"M54":   false,
		"Z60":   false,
		"":      false,
	}
	for code, want := range cases {
		assert.Equal(t, want, IsPsychosocial(code), code)
	}
}

func TestCanFollowUp(t *testing.T) {
	c := Certificate{Psychosocial: true}
	assert.NoError(t, CanFollowUp(c, StageMeetingScheduled))
	assert.ErrorIs(t, CanFollowUp(c, Stage("lunch")), ErrInvalidStage)

	c.FollowUps = append(c.FollowUps, FollowUp{Stage: StageActionPlan})
	assert.ErrorIs(t, CanFollowUp(c, StageInitialAnalysis), ErrStageBackwards)
	assert.ErrorIs(t, CanFollowUp(c, StageMeetingScheduled), ErrStageBackwards)
	assert.NoError(t, CanFollowUp(c, StageActionPlan), "notes can be added at the same stage")

	opened := Certificate{Psychosocial: true, Stage: StageMeetingScheduled}
	assert.ErrorIs(t, CanFollowUp(opened, StageInitialAnalysis), ErrStageBackwards)

	c.FollowUps = append(c.FollowUps, FollowUp{Stage: StageCaseClosed})
	assert.ErrorIs(t, CanFollowUp(c, StageActionPlan), ErrCaseClosed)

	assert.ErrorIs(t, CanFollowUp(Certificate{}, StageInitialAnalysis), ErrNotPsychosocial)
}

func TestEndDate(t *testing.T) {
	c := Certificate{Date: day(2026, 3, 1), Days: decimal.RequireFromString("2.5")}
	assert.Equal(t, day(2026, 3, 3), c.EndDate())

	c.Days = decimal.Zero
	assert.Equal(t, day(2026, 3, 1), c.EndDate())
}
