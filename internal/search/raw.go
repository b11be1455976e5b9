package search

// rawOrder is the parent-order object embedded in hits of both dialects.
type rawOrder struct {
	ID              flexInt     `json:"id"`
	OriginID        flexInt     `json:"origin_id"`
	CustomerName    string      `json:"customer_name"`
	Status          string      `json:"status"`
	TotalQuantity   flexInt     `json:"total_quantity"`
	TotalItem       flexInt     `json:"total_item"`
	Total           flexFloat   `json:"total"`
	ShippingAddress string      `json:"shipping_address"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingState   string      `json:"shipping_state"`
	ShippingZip     string      `json:"shipping_zip"`
	Platform        string      `json:"platform"`
	CreatedAt       string      `json:"created_at"`
	UpdatedAt       string      `json:"updated_at"`
	OrderDetails    []rawDetail `json:"order_details"`
}

// rawDetail is one line-item row as the backend stores it.
type rawDetail struct {
	ID                   flexInt   `json:"id"`
	TaskCode             string    `json:"task_code"`
	TaskCodeFront        string    `json:"task_code_front"`
	TaskCodeBack         string    `json:"task_code_back"`
	ProductName          string    `json:"product_name_new"`
	DescriptionTask      string    `json:"description_task"`
	DescriptionTaskFront string    `json:"description_task_front"`
	DescriptionTaskBack  string    `json:"description_task_back"`
	Personalization      string    `json:"personalization"`
	Condition            string    `json:"condition"`
	SizeStyle            string    `json:"size_style"`
	Pack                 string    `json:"pack"`
	Color                string    `json:"color"`
	Material             string    `json:"material"`
	LayoutStyle          string    `json:"layout_style"`
	Link                 string    `json:"link"`
	Quantity             flexInt   `json:"quantity"`
	Status               string    `json:"status"`
	StatusCodeString     string    `json:"status_code_string"`
	Price                flexFloat `json:"price"`
	ScoreTask            flexFloat `json:"score_task"`
	ScoreTaskFront       flexFloat `json:"score_task_front"`
	ScoreTaskBack        flexFloat `json:"score_task_back"`
	CreatedAt            string    `json:"created_at"`
	UpdatedAt            string    `json:"updated_at"`
}

// firstDetail returns the leading line-item row, or a zero row when the
// backend omitted the nested details entirely.
func (o rawOrder) firstDetail() rawDetail {
	if len(o.OrderDetails) > 0 {
		return o.OrderDetails[0]
	}
	return rawDetail{}
}

// Coalescing mirrors the backend's loose column population: the first
// populated candidate wins, zero values fall through.

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstInt(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstFloat(values ...float64) float64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

// Hoisted index columns coalesce on presence instead: the indexer copies
// real zeros up to the document, and those must not fall through to the
// embedded order's values.

func pickInt(hoisted *flexInt, fallbacks ...int64) int64 {
	if hoisted != nil {
		return int64(*hoisted)
	}
	return firstInt(fallbacks...)
}

func pickFloat(hoisted *flexFloat, fallbacks ...float64) float64 {
	if hoisted != nil {
		return float64(*hoisted)
	}
	return firstFloat(fallbacks...)
}
