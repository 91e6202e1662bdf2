package dashboard

import (
	"context"
	"fmt"

	"github.com/baxterbids/bidboard/internal/bids"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// Stats are the headline counters on the dashboard.
type Stats struct {
	TotalBids   int `json:"totalBids"`
	ClosingSoon int `json:"closingSoon"`
	RFQsSent    int `json:"rfqsSent"`
	RFQsOverdue int `json:"rfqsOverdue"`
}

// BidLister is satisfied by bids.Service.
type BidLister interface {
	List(ctx context.Context, source string) (*bids.ListResult, error)
}

// RFQCounter is satisfied by rfqs.Service.
type RFQCounter interface {
	CountByStatus(ctx context.Context) (map[enums.RFQStatus]int, error)
}

type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	bids BidLister
	rfqs RFQCounter
}

func NewService(bidLister BidLister, rfqCounter RFQCounter) (Service, error) {
	if bidLister == nil {
		return nil, fmt.Errorf("bid lister required")
	}
	if rfqCounter == nil {
		return nil, fmt.Errorf("rfq counter required")
	}
	return &service{bids: bidLister, rfqs: rfqCounter}, nil
}

// Stats counts the visible bids and RFQs by display status. RFQs counted as
// sent exclude the overdue ones.
func (s *service) Stats(ctx context.Context) (*Stats, error) {
	listed, err := s.bids.List(ctx, "")
	if err != nil {
		return nil, err
	}
	counts, err := s.rfqs.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalBids:   len(listed.Items),
		RFQsSent:    counts[enums.RFQStatusSent],
		RFQsOverdue: counts[enums.RFQStatusOverdue],
	}
	for _, bid := range listed.Items {
		if bid.Status == enums.BidUIStatusClosingSoon {
			stats.ClosingSoon++
		}
	}
	return stats, nil
}
