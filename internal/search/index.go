package search

import "tagsight/internal/orders"

// indexSearchRequest is the Meilisearch search body. The scan query goes
// through the filter expression rather than full-text q, so the prefix
// match stays exact.
type indexSearchRequest struct {
	Query                string   `json:"q"`
	Filter               string   `json:"filter,omitempty"`
	Sort                 []string `json:"sort,omitempty"`
	AttributesToRetrieve []string `json:"attributesToRetrieve,omitempty"`
	HitsPerPage          int      `json:"hitsPerPage"`
	Page                 int      `json:"page"`
}

// indexSearchResponse is the Meilisearch search envelope.
type indexSearchResponse struct {
	Hits      []indexHit `json:"hits"`
	TotalHits flexInt    `json:"totalHits"`
}

// indexHit is one Meilisearch document: a denormalized line-item with the
// detail columns hoisted to the top level and the parent order embedded
// for the fields the indexer did not copy up.
type indexHit struct {
	ID                *flexInt   `json:"id"`
	OrderID           *flexInt   `json:"order_id"`
	OriginID          *flexInt   `json:"origin_id"`
	TaskCode          string     `json:"task_code"`
	TaskCodeFront     string     `json:"task_code_front"`
	TaskCodeBack      string     `json:"task_code_back"`
	ProductName       string     `json:"product_name_new"`
	DescriptionTask   string     `json:"description_task"`
	DescriptionFront  string     `json:"description_task_front"`
	DescriptionBack   string     `json:"description_task_back"`
	Personalization   string     `json:"personalization"`
	Condition         string     `json:"condition"`
	SizeStyle         string     `json:"size_style"`
	Pack              string     `json:"pack"`
	Color             string     `json:"color"`
	Material          string     `json:"material"`
	LayoutStyle       string     `json:"layout_style"`
	Link              string     `json:"link"`
	Quantity          *flexInt   `json:"quantity"`
	TotalItemsInOrder *flexInt   `json:"total_items_in_order"`
	LineInOrder       *flexInt   `json:"line_in_order"`
	LineInQuantity    *flexInt   `json:"line_in_quantity"`
	Status            string     `json:"status"`
	StatusCodeString  string     `json:"status_code_string"`
	Price             *flexFloat `json:"price"`
	ScoreTask         *flexFloat `json:"score_task"`
	ScoreTaskFront    *flexFloat `json:"score_task_front"`
	ScoreTaskBack     *flexFloat `json:"score_task_back"`
	CreatedAt         string     `json:"created_at"`
	UpdatedAt         string     `json:"updated_at"`
	Order             *rawOrder  `json:"order"`
}

// normalize flattens an index document into the canonical line record.
// The hoisted columns win; the embedded order and its first detail row
// backfill whatever the indexer left blank.
func (h indexHit) normalize() orders.OrderLine {
	var order rawOrder
	if h.Order != nil {
		order = *h.Order
	}
	detail := order.firstDetail()

	return orders.OrderLine{
		ID:       pickInt(h.ID, pickInt(h.OrderID)),
		OrderID:  pickInt(h.OrderID, int64(order.ID)),
		OriginID: firstInt(int64(order.OriginID), pickInt(h.OriginID)),

		TaskCode:      firstString(h.TaskCode, h.TaskCodeFront),
		TaskCodeFront: firstString(h.TaskCodeFront, detail.TaskCodeFront),
		TaskCodeBack:  firstString(h.TaskCodeBack, detail.TaskCodeBack),

		ProductName:      firstString(h.ProductName, detail.ProductName),
		CustomerName:     order.CustomerName,
		Description:      firstString(h.DescriptionTask, detail.DescriptionTask),
		DescriptionFront: firstString(h.DescriptionFront, detail.DescriptionTaskFront),
		DescriptionBack:  firstString(h.DescriptionBack, detail.DescriptionTaskBack),
		Personalization:  firstString(h.Personalization, detail.Personalization),
		Condition:        firstString(h.Condition, detail.Condition),
		SizeStyle:        firstString(h.SizeStyle, detail.SizeStyle),
		Pack:             firstString(h.Pack, detail.Pack),
		Color:            firstString(h.Color, detail.Color),
		Material:         firstString(h.Material, detail.Material),
		LayoutStyle:      firstString(h.LayoutStyle, detail.LayoutStyle),
		Link:             firstString(h.Link, detail.Link),

		Quantity:             pickInt(h.Quantity, int64(detail.Quantity), 1),
		TotalQuantityInOrder: pickInt(h.TotalItemsInOrder, int64(order.TotalItem), int64(order.TotalQuantity), 1),
		LineInOrder:          pickInt(h.LineInOrder, 1),
		LineInQuantity:       pickInt(h.LineInQuantity, 1),

		Status:     firstString(h.Status, order.Status),
		StatusCode: firstString(h.StatusCodeString, detail.StatusCodeString),

		Price:      pickFloat(h.Price, float64(detail.Price), float64(order.Total)),
		Score:      pickFloat(h.ScoreTask, float64(detail.ScoreTask)),
		ScoreFront: pickFloat(h.ScoreTaskFront, float64(detail.ScoreTaskFront)),
		ScoreBack:  pickFloat(h.ScoreTaskBack, float64(detail.ScoreTaskBack)),

		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
		ShippingZip:     order.ShippingZip,
		Platform:        order.Platform,

		CreatedAt: firstString(h.CreatedAt, order.CreatedAt),
		UpdatedAt: firstString(h.UpdatedAt, order.UpdatedAt),
	}
}
