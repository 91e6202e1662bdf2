package bids

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/enums"
)

var now = time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

func at(month time.Month, dayOfMonth, hour int) *time.Time {
	ts := time.Date(2026, month, dayOfMonth, hour, 0, 0, 0, time.UTC)
	return &ts
}

func TestSourceCandidates(t *testing.T) {
	assert.Equal(t, []string{"CACI"}, sourceCandidates("caci"))
	assert.Equal(t, []string{"HigherGov HUBZone"}, sourceCandidates("highergov-hubzone"))
	assert.Equal(t, []string{"HigherGov HUBZone"}, sourceCandidates("HigherGov HUBZone"))
	assert.Equal(t, []string{"SAM.gov"}, sourceCandidates("SAM.GOV"))
	assert.Equal(t, []string{"Gsa", "GSA"}, sourceCandidates("gsa"))
	assert.Equal(t, []string{"MBTA"}, sourceCandidates("MBTA"))
	assert.Nil(t, sourceCandidates("  "))
}

func TestDaysLeftRoundsUp(t *testing.T) {
	assert.Nil(t, DaysLeft(nil, now))
	require.NotNil(t, DaysLeft(at(2, 12, 12), now))
	assert.Equal(t, 2, *DaysLeft(at(2, 12, 12), now))
	assert.Equal(t, 1, *DaysLeft(at(2, 10, 13), now))
	assert.Equal(t, 0, *DaysLeft(at(2, 10, 11), now))
	assert.Equal(t, -2, *DaysLeft(at(2, 8, 0), now))
}

func TestUIStatus(t *testing.T) {
	days := func(v int) *int { return &v }
	assert.Equal(t, enums.BidUIStatusClosed, UIStatus("Closed", days(10), 3))
	assert.Equal(t, enums.BidUIStatusClosed, UIStatus("Open", days(0), 3))
	assert.Equal(t, enums.BidUIStatusClosingSoon, UIStatus("Open", days(3), 3))
	assert.Equal(t, enums.BidUIStatusClosingSoon, UIStatus("Open", days(1), 3))
	assert.Equal(t, enums.BidUIStatusActive, UIStatus("Open", days(4), 3))
	assert.Equal(t, enums.BidUIStatusActive, UIStatus("Open", nil, 3))
}

func TestStagePrecedence(t *testing.T) {
	received := rfqs.BidSummary{Sent: 2, Received: 1}
	sent := rfqs.BidSummary{Sent: 1}

	assert.Equal(t, enums.WorkflowStageAwarded, Stage("Won", received))
	assert.Equal(t, enums.WorkflowStageAwarded, Stage("awarded", rfqs.BidSummary{}))
	assert.Equal(t, enums.WorkflowStageQuotesReceived, Stage("Interested", received))
	assert.Equal(t, enums.WorkflowStageRFQSent, Stage("Open", sent))
	assert.Equal(t, enums.WorkflowStageInterested, Stage("Bidding", rfqs.BidSummary{}))
	assert.Equal(t, enums.WorkflowStageInterested, Stage("interested", rfqs.BidSummary{Total: 1}))
	assert.Equal(t, enums.WorkflowStageNew, Stage("", rfqs.BidSummary{}))
	assert.Equal(t, enums.WorkflowStageNew, Stage("Lost", rfqs.BidSummary{}))
}

func TestClosedCutoffIsMidnight(t *testing.T) {
	assert.Equal(t, time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC), closedCutoff(now, 2))
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), closedCutoff(time.Date(2026, 2, 2, 23, 0, 0, 0, time.UTC), 2))
}
