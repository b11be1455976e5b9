package search

import (
	"context"
	"fmt"
	"net/http"

	"tagsight/internal/logging"
	"tagsight/internal/orders"
)

// searchLimit caps how many hits a single scan retrieves.
const searchLimit = 10

const (
	restSearchPath  = "/order-details/search"
	indexSearchPath = "/indexes/order_details/search"
)

// Result is the outcome of one task-code lookup. Lines holds only the
// scan-eligible matches; TotalFound counts everything the backend matched
// and ValidCount how many of those carried the accepted status token.
type Result struct {
	Lines      []orders.OrderLine
	TotalFound int
	ValidCount int
}

// Search looks up a scanned task code against the backend. Lookups are
// best-effort: transport failures, auth rejections, and unrecognized
// response shapes all log a warning and return an empty Result so a bad
// scan never takes the terminal down.
func (c *Client) Search(ctx context.Context, taskCode string) Result {
	if taskCode == "" {
		return Result{}
	}
	var (
		lines []orders.OrderLine
		total int
		err   error
	)
	switch c.dialect {
	case DialectIndex:
		lines, total, err = c.searchIndex(ctx, taskCode)
	default:
		lines, total, err = c.searchREST(ctx, taskCode)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "order search failed",
			logging.String(logging.FieldTaskCode, taskCode),
			logging.String(logging.FieldDialect, string(c.dialect)),
			logging.Error(err))
		return Result{}
	}

	result := Result{TotalFound: total}
	for _, line := range lines {
		if line.Eligible() {
			result.Lines = append(result.Lines, line)
			result.ValidCount++
		}
	}
	if result.TotalFound == 0 {
		result.TotalFound = len(lines)
	}
	c.logger.InfoContext(ctx, "order search completed",
		logging.String(logging.FieldTaskCode, taskCode),
		logging.String(logging.FieldDialect, string(c.dialect)),
		logging.Int("total_found", result.TotalFound),
		logging.Int("valid", result.ValidCount))
	return result
}

func (c *Client) searchREST(ctx context.Context, taskCode string) ([]orders.OrderLine, int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, restSearchPath, restSearchRequest{
		TaskCode: taskCode,
		Limit:    searchLimit,
	})
	if err != nil {
		return nil, 0, err
	}
	var payload restSearchResponse
	status, err := c.do(req, &payload)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, fmt.Errorf("search returned %d", status)
	}
	if !payload.Success {
		return nil, 0, nil
	}
	lines := make([]orders.OrderLine, 0, len(payload.Data))
	for _, hit := range payload.Data {
		lines = append(lines, hit.normalize())
	}
	return lines, int(payload.Total), nil
}

func (c *Client) searchIndex(ctx context.Context, taskCode string) ([]orders.OrderLine, int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, indexSearchPath, indexSearchRequest{
		Query:  "",
		Filter: fmt.Sprintf("task_code_front_prefix = %q", taskCode),
		Sort:   []string{"created_at:desc"},
		AttributesToRetrieve: []string{
			"id", "order_id", "quantity", "order", "origin_id",
			"task_code_front_prefix", "total_items_in_order",
			"task_code_front", "task_code_back", "created_at",
		},
		HitsPerPage: searchLimit,
		Page:        1,
	})
	if err != nil {
		return nil, 0, err
	}
	var payload indexSearchResponse
	status, err := c.do(req, &payload)
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, fmt.Errorf("index search returned %d", status)
	}
	lines := make([]orders.OrderLine, 0, len(payload.Hits))
	for _, hit := range payload.Hits {
		lines = append(lines, hit.normalize())
	}
	return lines, int(payload.TotalHits), nil
}
