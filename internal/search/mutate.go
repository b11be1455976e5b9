package search

import (
	"context"
	"fmt"
	"net/http"

	"tagsight/internal/logging"
	"tagsight/internal/services"
)

// statusResponse is the envelope REST mutation endpoints answer with. The
// status flag, when present, overrides the HTTP status code.
type statusResponse struct {
	Status  *bool  `json:"status"`
	Message string `json:"message"`
}

// UpdateStatus sets the workflow status on an order. Only the REST dialect
// exposes mutations; the index is a read-only projection.
func (c *Client) UpdateStatus(ctx context.Context, orderID int64, status, notes string) (bool, error) {
	body := struct {
		Status string `json:"status"`
		Notes  string `json:"notes,omitempty"`
	}{Status: status, Notes: notes}
	return c.putStatus(ctx, fmt.Sprintf("/orders/%d/status", orderID), body)
}

// UpdateStatusCode sets the packed status-code token on an order.
func (c *Client) UpdateStatusCode(ctx context.Context, orderID int64, statusCode string) (bool, error) {
	body := struct {
		StatusCodeString string `json:"status_code_string"`
	}{StatusCodeString: statusCode}
	return c.putStatus(ctx, fmt.Sprintf("/orders/%d/status-code", orderID), body)
}

func (c *Client) putStatus(ctx context.Context, path string, body any) (bool, error) {
	if c.dialect == DialectIndex {
		return false, services.Wrap(services.ErrValidation, "search", "update status",
			"status updates require the REST backend", nil)
	}
	req, err := c.newRequest(ctx, http.MethodPut, path, body)
	if err != nil {
		return false, services.Wrap(services.ErrTransport, "search", "update status", "build request failed", err)
	}
	var payload statusResponse
	httpStatus, err := c.do(req, &payload)
	if err != nil {
		return false, services.Wrap(services.ErrTransport, "search", "update status", "request failed", err)
	}
	ok := httpStatus == http.StatusOK
	if payload.Status != nil {
		ok = *payload.Status
	}
	c.logger.InfoContext(ctx, "order status update",
		logging.String("path", path),
		logging.Int("http_status", httpStatus),
		logging.Bool("accepted", ok))
	return ok, nil
}
