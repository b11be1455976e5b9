package search

import "tagsight/internal/orders"

// restSearchRequest is the POST body for the REST order-details search.
type restSearchRequest struct {
	TaskCode string `json:"task_code"`
	Limit    int    `json:"limit"`
}

// restSearchResponse is the REST search envelope.
type restSearchResponse struct {
	Success bool      `json:"success"`
	Data    []restHit `json:"data"`
	Total   flexInt   `json:"total"`
}

// restHit is one REST search match: a thin pointer row whose substance
// lives in the embedded parent order and its first order-detail.
type restHit struct {
	OrderID        flexInt   `json:"order_id"`
	TaskCodeFront  string    `json:"task_code_front"`
	TaskCodeBack   string    `json:"task_code_back"`
	LineInOrder    flexInt   `json:"line_in_order"`
	LineInQuantity flexInt   `json:"line_in_quantity"`
	Order          *rawOrder `json:"order"`
}

// normalize flattens a REST hit into the canonical line record. The REST
// dialect keys everything off the embedded order: identifying fields fall
// back from the first detail row to the hit, descriptive fields come from
// the detail, totals and shipping from the parent order.
func (h restHit) normalize() orders.OrderLine {
	var order rawOrder
	if h.Order != nil {
		order = *h.Order
	}
	detail := order.firstDetail()

	return orders.OrderLine{
		ID:       firstInt(int64(detail.ID), int64(h.OrderID)),
		OrderID:  firstInt(int64(h.OrderID), int64(order.ID)),
		OriginID: int64(order.OriginID),

		TaskCode:      firstString(detail.TaskCode, h.TaskCodeFront),
		TaskCodeFront: firstString(detail.TaskCodeFront, h.TaskCodeFront),
		TaskCodeBack:  firstString(detail.TaskCodeBack, h.TaskCodeBack),

		ProductName:      detail.ProductName,
		CustomerName:     order.CustomerName,
		Description:      firstString(detail.DescriptionTask, detail.DescriptionTaskFront),
		DescriptionFront: detail.DescriptionTaskFront,
		DescriptionBack:  detail.DescriptionTaskBack,
		Personalization:  detail.Personalization,
		Condition:        detail.Condition,
		SizeStyle:        detail.SizeStyle,
		Pack:             detail.Pack,
		Color:            detail.Color,
		Material:         detail.Material,
		LayoutStyle:      detail.LayoutStyle,
		Link:             detail.Link,

		Quantity:             firstInt(int64(detail.Quantity), 1),
		TotalQuantityInOrder: firstInt(int64(order.TotalQuantity), int64(order.TotalItem), 1),
		LineInOrder:          firstInt(int64(h.LineInOrder), 1),
		LineInQuantity:       firstInt(int64(h.LineInQuantity), 1),

		Status:     firstString(detail.Status, order.Status),
		StatusCode: detail.StatusCodeString,

		Price:      firstFloat(float64(detail.Price), float64(order.Total)),
		Score:      firstFloat(float64(detail.ScoreTask), float64(detail.ScoreTaskFront)),
		ScoreFront: float64(detail.ScoreTaskFront),
		ScoreBack:  float64(detail.ScoreTaskBack),

		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingState:   order.ShippingState,
		ShippingZip:     order.ShippingZip,
		Platform:        order.Platform,

		CreatedAt: firstString(detail.CreatedAt, order.CreatedAt),
		UpdatedAt: firstString(detail.UpdatedAt, order.UpdatedAt),
	}
}
