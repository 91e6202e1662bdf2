package rfqs

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/dbtest"
	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
)

type fixture struct {
	db      *gorm.DB
	bid     models.Bid
	other   models.Bid
	vendor  models.Company
	vendor2 models.Company
}

func seed(t *testing.T) fixture {
	t.Helper()
	db := dbtest.Open(t)

	agency := "MBTA"
	closes := time.Date(2026, 2, 20, 17, 0, 0, 0, time.UTC)
	f := fixture{
		db:      db,
		bid:     models.Bid{ExternalID: "MBTA-2024-001", Title: "Vehicle Lifts", Agency: &agency, CloseDate: &closes},
		other:   models.Bid{ExternalID: "MBTA-2024-002", Title: "Laptops"},
		vendor:  models.Company{Name: "Rotary Lift"},
		vendor2: models.Company{Name: "Stertil-Koni USA"},
	}
	require.NoError(t, db.Create(&f.bid).Error)
	require.NoError(t, db.Create(&f.other).Error)
	require.NoError(t, db.Create(&f.vendor).Error)
	require.NoError(t, db.Create(&f.vendor2).Error)

	rows := []models.RFQ{
		{BidID: f.bid.ID, CompanyID: &f.vendor.ID, Status: enums.RFQStatusSent, SentDate: daysAgo(5)},
		{BidID: f.bid.ID, CompanyID: &f.vendor2.ID, Status: enums.RFQStatusReceived, SentDate: daysAgo(5), ReceivedDate: daysAgo(4),
			QuoteAmount: decimal.NewNullDecimal(decimal.RequireFromString("142500"))},
		{BidID: f.other.ID, CompanyID: &f.vendor.ID, Status: enums.RFQStatusSent, SentDate: daysAgo(1)},
		{BidID: f.other.ID, Status: enums.RFQStatusDraft},
	}
	for i := range rows {
		rows[i].CreatedAt = now.Add(-time.Duration(10-i) * time.Hour)
		require.NoError(t, db.Create(&rows[i]).Error)
	}
	return f
}

func newTestService(t *testing.T, db *gorm.DB) *service {
	t.Helper()
	svc, err := NewService(NewRepository(db), 2)
	require.NoError(t, err)
	impl := svc.(*service)
	impl.now = func() time.Time { return now }
	return impl
}

func TestNewServiceValidatesDeps(t *testing.T) {
	_, err := NewService(nil, 2)
	assert.Error(t, err)
	_, err = NewService(NewRepository(dbtest.Open(t)), -1)
	assert.Error(t, err)
}

func TestListDerivesStatusAndJoins(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)

	result, err := svc.List(context.Background(), ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 4)
	assert.Empty(t, result.Cursor)

	newest := result.Items[0]
	assert.Equal(t, enums.RFQStatusDraft, newest.Status)
	assert.Equal(t, "MBTA-2024-002", newest.BidID)

	oldest := result.Items[3]
	assert.Equal(t, "Rotary Lift", oldest.Vendor)
	assert.Equal(t, "Vehicle Lifts", oldest.BidTitle)
	assert.Equal(t, enums.RFQStatusOverdue, oldest.Status)
	assert.Equal(t, enums.RFQStatusSent, oldest.StoredStatus)
	assert.Equal(t, "2026-02-05", oldest.SentDate)
}

func TestListPagesWithCursor(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)

	first, err := svc.List(context.Background(), ListParams{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Items, 3)
	require.NotEmpty(t, first.Cursor)

	second, err := svc.List(context.Background(), ListParams{Limit: 3, Cursor: first.Cursor})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Empty(t, second.Cursor)
	assert.Equal(t, "Rotary Lift", second.Items[0].Vendor)

	_, err = svc.List(context.Background(), ListParams{Cursor: "%%%"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListFiltersByBid(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)

	result, err := svc.List(context.Background(), ListParams{BidID: "MBTA-2024-001"})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	for _, item := range result.Items {
		assert.Equal(t, "MBTA-2024-001", item.BidID)
	}
	assert.True(t, result.Items[0].QuoteAmount.Decimal.Equal(decimal.RequireFromString("142500")))
}

func TestSummaryAndOverdue(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, BidSummary{Total: 2, Sent: 2, Received: 1, Overdue: 1}, summary["MBTA-2024-001"])
	assert.Equal(t, BidSummary{Total: 2, Sent: 1}, summary["MBTA-2024-002"])

	counts, err := svc.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[enums.RFQStatus]int{
		enums.RFQStatusOverdue:  1,
		enums.RFQStatusReceived: 1,
		enums.RFQStatusSent:     1,
		enums.RFQStatusDraft:    1,
	}, counts)

	overdue, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "Rotary Lift", overdue[0].Vendor)
	assert.Equal(t, enums.RFQStatusOverdue, overdue[0].Status)
}

func TestDraftBuildsAlignedBody(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)

	due := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	draft, err := svc.Draft(context.Background(), DraftInput{
		BidID:       "MBTA-2024-001",
		VendorName:  "Rotary Lift",
		VendorEmail: " sales@rotary.example ",
		DueDate:     &due,
		Notes:       "Delivery to Everett garage",
		Items: []DraftItem{
			{PartNumber: "SPOA10", Description: "Two post lift, 10k lb", Qty: decimal.NewFromInt(2), UOM: "EA"},
			{Description: strings.Repeat("x", 50), Qty: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "sales@rotary.example", draft.To)
	assert.Equal(t, "Request for Quote - Vehicle Lifts (MBTA-2024-001)", draft.Subject)
	assert.Contains(t, draft.Body, "Dear Rotary Lift team,")
	assert.Contains(t, draft.Body, "issued by MBTA")
	assert.Contains(t, draft.Body, "Please respond by: 2026-02-14")
	assert.Contains(t, draft.Body, "Additional notes: Delivery to Everett garage")

	lines := strings.Split(draft.Body, "\n")
	var table []string
	for _, line := range lines {
		if strings.HasPrefix(line, "SPOA10") || strings.HasPrefix(line, "Part Number") {
			table = append(table, line)
		}
	}
	require.Len(t, table, 2)
	assert.Equal(t, len(table[0]), len(table[1]))
	assert.Contains(t, draft.Body, strings.Repeat("x", descWidth-1)+"~")
}

func TestDraftValidation(t *testing.T) {
	f := seed(t)
	svc := newTestService(t, f.db)
	ctx := context.Background()
	item := DraftItem{PartNumber: "P1", Qty: decimal.NewFromInt(1)}

	_, err := svc.Draft(ctx, DraftInput{VendorName: "V", Items: []DraftItem{item}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Draft(ctx, DraftInput{BidID: "MBTA-2024-001", VendorName: "V"})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Draft(ctx, DraftInput{BidID: "MBTA-2024-001", VendorName: "V", Items: []DraftItem{{Qty: decimal.NewFromInt(1)}}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.Draft(ctx, DraftInput{BidID: "NOPE", VendorName: "V", Items: []DraftItem{item}})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}
