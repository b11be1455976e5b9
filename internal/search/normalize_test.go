package search

import (
	"encoding/json"
	"testing"
)

func TestRESTHitNormalizeCoalescing(t *testing.T) {
	raw := `{
		"order_id": 42,
		"task_code_front": "AB123",
		"task_code_back": "AB123B",
		"line_in_order": 2,
		"line_in_quantity": 3,
		"order": {
			"id": 42,
			"origin_id": 900142,
			"customer_name": "Pat Doe",
			"status": "processing",
			"total_quantity": 5,
			"total": "19.99",
			"shipping_city": "Austin",
			"platform": "etsy",
			"created_at": "2026-08-01T10:00:00Z",
			"order_details": [{
				"id": 7,
				"task_code": "AB123-1",
				"task_code_front": "AB123",
				"product_name_new": "Pet Tag",
				"description_task_front": "front art",
				"quantity": 2,
				"status_code_string": "C1F1R1P1E1V0",
				"price": "4.50",
				"score_task_front": "0.91",
				"created_at": "2026-08-02T08:00:00Z"
			}]
		}
	}`
	var hit restHit
	if err := json.Unmarshal([]byte(raw), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()

	if line.ID != 7 {
		t.Errorf("ID = %d, want 7 (detail id wins)", line.ID)
	}
	if line.OrderID != 42 || line.OriginID != 900142 {
		t.Errorf("order ids = (%d, %d), want (42, 900142)", line.OrderID, line.OriginID)
	}
	if line.TaskCode != "AB123-1" {
		t.Errorf("TaskCode = %q, want detail task_code", line.TaskCode)
	}
	if line.Description != "front art" {
		t.Errorf("Description = %q, want fallback to front description", line.Description)
	}
	if line.Quantity != 2 || line.TotalQuantityInOrder != 5 {
		t.Errorf("quantities = (%d, %d), want (2, 5)", line.Quantity, line.TotalQuantityInOrder)
	}
	if line.LineInOrder != 2 || line.LineInQuantity != 3 {
		t.Errorf("line positions = (%d, %d), want (2, 3)", line.LineInOrder, line.LineInQuantity)
	}
	if line.Price != 4.50 {
		t.Errorf("Price = %v, want string-typed detail price parsed", line.Price)
	}
	if line.Score != 0.91 {
		t.Errorf("Score = %v, want fallback to front score", line.Score)
	}
	if !line.Eligible() {
		t.Error("line with valid status token should be eligible")
	}
	if line.CreatedAt != "2026-08-02T08:00:00Z" {
		t.Errorf("CreatedAt = %q, want detail timestamp", line.CreatedAt)
	}
	if line.ShippingCity != "Austin" || line.Platform != "etsy" {
		t.Errorf("shipping = (%q, %q), want order values", line.ShippingCity, line.Platform)
	}
}

func TestRESTHitNormalizeDefaults(t *testing.T) {
	var hit restHit
	if err := json.Unmarshal([]byte(`{"order_id": 8, "task_code_front": "XY1"}`), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()

	if line.ID != 8 {
		t.Errorf("ID = %d, want order_id fallback", line.ID)
	}
	if line.OrderID != 8 {
		t.Errorf("OrderID = %d, want 8", line.OrderID)
	}
	if line.TaskCode != "XY1" || line.TaskCodeFront != "XY1" {
		t.Errorf("task codes = (%q, %q), want hit fallback", line.TaskCode, line.TaskCodeFront)
	}
	if line.Quantity != 1 || line.TotalQuantityInOrder != 1 {
		t.Errorf("quantities = (%d, %d), want defaults of 1", line.Quantity, line.TotalQuantityInOrder)
	}
	if line.LineInOrder != 1 || line.LineInQuantity != 1 {
		t.Errorf("line positions = (%d, %d), want defaults of 1", line.LineInOrder, line.LineInQuantity)
	}
	if line.Price != 0 || line.Score != 0 {
		t.Errorf("numerics = (%v, %v), want zero", line.Price, line.Score)
	}
	if line.Eligible() {
		t.Error("line without status token must not be eligible")
	}
}

func TestIndexHitNormalizeCoalescing(t *testing.T) {
	raw := `{
		"id": 301,
		"order_id": 77,
		"task_code_front": "ZZ900",
		"quantity": "3",
		"total_items_in_order": 4,
		"status_code_string": "C1F1R1P1E1V0",
		"price": 12.5,
		"created_at": "2026-08-10T12:00:00Z",
		"order": {
			"id": 77,
			"origin_id": 555001,
			"customer_name": "Sam Lee",
			"status": "new",
			"shipping_state": "TX",
			"order_details": [{
				"task_code_back": "ZZ900B",
				"material": "aluminum",
				"score_task_back": 0.4
			}]
		}
	}`
	var hit indexHit
	if err := json.Unmarshal([]byte(raw), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()

	if line.ID != 301 || line.OrderID != 77 || line.OriginID != 555001 {
		t.Errorf("ids = (%d, %d, %d), want (301, 77, 555001)", line.ID, line.OrderID, line.OriginID)
	}
	if line.TaskCode != "ZZ900" {
		t.Errorf("TaskCode = %q, want front-code fallback", line.TaskCode)
	}
	if line.TaskCodeBack != "ZZ900B" {
		t.Errorf("TaskCodeBack = %q, want detail backfill", line.TaskCodeBack)
	}
	if line.Quantity != 3 {
		t.Errorf("Quantity = %d, want string-typed 3", line.Quantity)
	}
	if line.TotalQuantityInOrder != 4 {
		t.Errorf("TotalQuantityInOrder = %d, want 4", line.TotalQuantityInOrder)
	}
	if line.Status != "new" {
		t.Errorf("Status = %q, want order fallback", line.Status)
	}
	if line.Material != "aluminum" {
		t.Errorf("Material = %q, want detail backfill", line.Material)
	}
	if line.ScoreBack != 0.4 {
		t.Errorf("ScoreBack = %v, want detail backfill", line.ScoreBack)
	}
	if line.Price != 12.5 {
		t.Errorf("Price = %v, want hoisted value", line.Price)
	}
	if line.CustomerName != "Sam Lee" || line.ShippingState != "TX" {
		t.Errorf("order fields = (%q, %q)", line.CustomerName, line.ShippingState)
	}
}

func TestIndexHitNormalizeExplicitZeros(t *testing.T) {
	raw := `{
		"id": 301,
		"order_id": 77,
		"price": 0,
		"score_task": 0,
		"line_in_order": 0,
		"quantity": 0,
		"order": {
			"id": 77,
			"total": "19.99",
			"order_details": [{"price": "4.50", "score_task": "0.8", "quantity": 2}]
		}
	}`
	var hit indexHit
	if err := json.Unmarshal([]byte(raw), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()

	if line.Price != 0 {
		t.Errorf("Price = %v, want explicit zero kept over detail and order total", line.Price)
	}
	if line.Score != 0 {
		t.Errorf("Score = %v, want explicit zero kept over detail score", line.Score)
	}
	if line.LineInOrder != 0 {
		t.Errorf("LineInOrder = %d, want explicit zero kept over default", line.LineInOrder)
	}
	if line.Quantity != 0 {
		t.Errorf("Quantity = %d, want explicit zero kept over detail quantity", line.Quantity)
	}
}

func TestIndexHitNormalizeNullFallsThrough(t *testing.T) {
	raw := `{
		"order_id": 77,
		"price": null,
		"quantity": null,
		"order": {"id": 77, "total": "19.99"}
	}`
	var hit indexHit
	if err := json.Unmarshal([]byte(raw), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()

	if line.Price != 19.99 {
		t.Errorf("Price = %v, want fallback to order total", line.Price)
	}
	if line.Quantity != 1 {
		t.Errorf("Quantity = %d, want default of 1", line.Quantity)
	}
	if line.LineInOrder != 1 || line.LineInQuantity != 1 {
		t.Errorf("line positions = (%d, %d), want defaults of 1", line.LineInOrder, line.LineInQuantity)
	}
}

func TestIndexHitNormalizeEmpty(t *testing.T) {
	var hit indexHit
	if err := json.Unmarshal([]byte(`{}`), &hit); err != nil {
		t.Fatalf("unmarshal hit: %v", err)
	}
	line := hit.normalize()
	if line.ID != 0 || line.OrderID != 0 {
		t.Errorf("ids = (%d, %d), want zero", line.ID, line.OrderID)
	}
	if line.Quantity != 1 || line.TotalQuantityInOrder != 1 {
		t.Errorf("quantities = (%d, %d), want defaults of 1", line.Quantity, line.TotalQuantityInOrder)
	}
	if line.TaskCode != "" || line.CustomerName != "" {
		t.Errorf("strings = (%q, %q), want empty", line.TaskCode, line.CustomerName)
	}
}

func TestFlexDecoding(t *testing.T) {
	var payload struct {
		F flexFloat `json:"f"`
		I flexInt   `json:"i"`
	}
	cases := []struct {
		name  string
		raw   string
		wantF float64
		wantI int64
	}{
		{"numbers", `{"f": 1.5, "i": 3}`, 1.5, 3},
		{"strings", `{"f": "2.25", "i": "4"}`, 2.25, 4},
		{"nulls", `{"f": null, "i": null}`, 0, 0},
		{"garbage", `{"f": "n/a", "i": "many"}`, 0, 0},
		{"float into int", `{"f": 0, "i": 5.0}`, 0, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			payload.F, payload.I = 0, 0
			if err := json.Unmarshal([]byte(tc.raw), &payload); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if float64(payload.F) != tc.wantF || int64(payload.I) != tc.wantI {
				t.Fatalf("decoded (%v, %v), want (%v, %v)", payload.F, payload.I, tc.wantF, tc.wantI)
			}
		})
	}
}
