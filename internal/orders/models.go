package orders

import "strings"

// ValidStatusCode is the only status-code token eligible for scanning.
// It is a packed multi-flag string; each letter/digit pair encodes one
// pipeline-stage boolean.
const ValidStatusCode = "C1F1R1P1E1V0"

// InventoryStatusCode marks a line as added to inventory.
const InventoryStatusCode = "C1F1R1P1E1V1I0"

// OrderLine is the backend-agnostic record for one production line-item.
// Both backend dialects normalize into this shape; the ledger persists it
// verbatim.
type OrderLine struct {
	ID       int64 `json:"id"`
	OrderID  int64 `json:"order_id"`
	OriginID int64 `json:"origin_id"`

	TaskCode      string `json:"task_code"`
	TaskCodeFront string `json:"task_code_front"`
	TaskCodeBack  string `json:"task_code_back"`

	ProductName      string `json:"product_name"`
	CustomerName     string `json:"customer_name"`
	Description      string `json:"description"`
	DescriptionFront string `json:"description_front"`
	DescriptionBack  string `json:"description_back"`
	Personalization  string `json:"personalization"`
	Condition        string `json:"condition"`
	SizeStyle        string `json:"size_style"`
	Pack             string `json:"pack"`
	Color            string `json:"color"`
	Material         string `json:"material"`
	LayoutStyle      string `json:"layout_style"`
	Link             string `json:"link"`

	Quantity             int64 `json:"quantity"`
	TotalQuantityInOrder int64 `json:"total_quantity_in_order"`
	LineInOrder          int64 `json:"line_in_order"`
	LineInQuantity       int64 `json:"line_in_quantity"`

	Status     string `json:"status"`
	StatusCode string `json:"status_code"`

	Price      float64 `json:"price"`
	Score      float64 `json:"score"`
	ScoreFront float64 `json:"score_front"`
	ScoreBack  float64 `json:"score_back"`

	ShippingAddress string `json:"shipping_address"`
	ShippingCity    string `json:"shipping_city"`
	ShippingState   string `json:"shipping_state"`
	ShippingZip     string `json:"shipping_zip"`
	Platform        string `json:"platform"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Eligible reports whether the line carries the one accepted status token.
func (l OrderLine) Eligible() bool {
	return l.StatusCode == ValidStatusCode
}

// DisplayOrderNumber returns the human-facing order number, falling back to
// the internal order id when no origin id was supplied upstream.
func (l OrderLine) DisplayOrderNumber() int64 {
	if l.OriginID != 0 {
		return l.OriginID
	}
	return l.OrderID
}

// MatchesCode reports whether the scanned input matches the line's primary
// task code, ignoring case and surrounding whitespace.
func (l OrderLine) MatchesCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return strings.EqualFold(l.TaskCodeFront, code) ||
		strings.HasPrefix(strings.ToUpper(l.TaskCodeFront), strings.ToUpper(code))
}

// GroupByOrder partitions lines by parent order id, preserving the input
// ordering within each group. Every line lands in exactly one group.
func GroupByOrder(lines []OrderLine) map[int64][]OrderLine {
	grouped := make(map[int64][]OrderLine)
	for _, line := range lines {
		grouped[line.OrderID] = append(grouped[line.OrderID], line)
	}
	return grouped
}
