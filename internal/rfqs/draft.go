package rfqs

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
)

// DraftItem is one line the vendor is asked to price.
type DraftItem struct {
	PartNumber  string          `json:"part_number" validate:"max=64"`
	Description string          `json:"description" validate:"max=256"`
	Qty         decimal.Decimal `json:"qty"`
	UOM         string          `json:"uom" validate:"max=16"`
}

// DraftInput carries the request for an RFQ email draft.
type DraftInput struct {
	BidID       string      `json:"bid_id" validate:"required"`
	VendorName  string      `json:"vendor_name" validate:"required,max=200"`
	VendorEmail string      `json:"vendor_email" validate:"omitempty,email"`
	ContactName string      `json:"contact_name" validate:"max=200"`
	DueDate     *time.Time  `json:"due_date"`
	Notes       string      `json:"notes" validate:"max=2000"`
	Items       []DraftItem `json:"items" validate:"required,min=1,dive"`
}

// Draft is a plain-text email ready to paste or hand to a mail client.
type Draft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

const (
	partWidth = 18
	descWidth = 36
	qtyWidth  = 10
	uomWidth  = 6
)

func buildDraft(bid *models.Bid, input DraftInput) Draft {
	subject := fmt.Sprintf("Request for Quote - %s (%s)", bid.Title, bid.ExternalID)

	var sb strings.Builder
	greeting := strings.TrimSpace(input.ContactName)
	if greeting == "" {
		greeting = input.VendorName + " team"
	}
	sb.WriteString(fmt.Sprintf("Dear %s,\n\n", greeting))
	sb.WriteString(fmt.Sprintf("We are preparing a response to solicitation %s", bid.ExternalID))
	if bid.Agency != nil && strings.TrimSpace(*bid.Agency) != "" {
		sb.WriteString(fmt.Sprintf(" issued by %s", strings.TrimSpace(*bid.Agency)))
	}
	sb.WriteString(" and request your quote for the following items.\n\n")

	if input.DueDate != nil {
		sb.WriteString(fmt.Sprintf("Please respond by: %s\n\n", input.DueDate.Format(dateLayout)))
	} else if bid.CloseDate != nil {
		sb.WriteString(fmt.Sprintf("The solicitation closes on %s.\n\n", bid.CloseDate.Format(dateLayout)))
	}

	sb.WriteString("Items:\n")
	sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %-*s\n",
		partWidth, "Part Number", descWidth, "Description", qtyWidth, "Qty", uomWidth, "UOM"))
	sb.WriteString(strings.Repeat("-", partWidth+descWidth+qtyWidth+uomWidth+3) + "\n")
	for _, item := range input.Items {
		sb.WriteString(fmt.Sprintf("%-*s %-*s %*s %-*s\n",
			partWidth, clip(item.PartNumber, partWidth),
			descWidth, clip(item.Description, descWidth),
			qtyWidth, item.Qty.String(),
			uomWidth, clip(item.UOM, uomWidth)))
	}

	sb.WriteString("\nPlease include:\n")
	sb.WriteString("- Unit and extended price per line\n- Shipping cost\n- Lead time\n- Payment terms and quote validity\n\n")

	if notes := strings.TrimSpace(input.Notes); notes != "" {
		sb.WriteString(fmt.Sprintf("Additional notes: %s\n\n", notes))
	}
	sb.WriteString("Thank you for your prompt response.\n")

	return Draft{
		To:      strings.TrimSpace(input.VendorEmail),
		Subject: subject,
		Body:    sb.String(),
	}
}

// clip shortens s to width runes so the item table stays aligned.
func clip(s string, width int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "~"
}
