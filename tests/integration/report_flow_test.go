package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestReportFlow_CategoryBreakdown(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	app.request("POST", "/api/v1/expenses", `{"date":"2025-03-10","category":"Food","amount":10}`, token)
	app.request("POST", "/api/v1/expenses", `{"date":"2025-03-11","category":"Food","amount":15}`, token)
	app.request("POST", "/api/v1/expenses", `{"date":"2025-03-12","category":"Transport","amount":40}`, token)

	rec := app.request("GET", "/api/v1/reports/categories", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	categories := result["categories"].([]interface{})
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}

	// Highest total first
	first := categories[0].(map[string]interface{})
	if first["category"] != "Transport" || first["total"].(float64) != 40 {
		t.Errorf("expected Transport with 40 first, got %v", first)
	}
	second := categories[1].(map[string]interface{})
	if second["category"] != "Food" || second["total"].(float64) != 25 {
		t.Errorf("expected Food with 25 second, got %v", second)
	}
}

func TestReportFlow_MonthlySpendingIncludesEmptyMonths(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	now := time.Now().UTC()
	thisMonth := now.Format("2006-01")
	app.request("POST", "/api/v1/expenses",
		fmt.Sprintf(`{"date":%q,"category":"Food","amount":20}`, now.Format("2006-01-02")), token)

	rec := app.request("GET", "/api/v1/reports/monthly?months=3", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	months := result["months"].([]interface{})
	if len(months) != 3 {
		t.Fatalf("expected 3 months, got %d", len(months))
	}

	// Oldest first, zero totals present for empty months
	oldest := months[0].(map[string]interface{})
	if oldest["total"].(float64) != 0 {
		t.Errorf("expected oldest month total 0, got %v", oldest["total"])
	}
	latest := months[2].(map[string]interface{})
	if latest["month"] != thisMonth {
		t.Errorf("expected latest month %s, got %v", thisMonth, latest["month"])
	}
	if latest["total"].(float64) != 20 {
		t.Errorf("expected latest month total 20, got %v", latest["total"])
	}
}

func TestReportFlow_MonthlySpendingBounds(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	for _, q := range []string{"months=0", "months=61", "months=abc"} {
		rec := app.request("GET", "/api/v1/reports/monthly?"+q, "", token)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %s: expected 400, got %d: %s", q, rec.Code, rec.Body.String())
		}
	}

	// Defaults to six months
	rec := app.request("GET", "/api/v1/reports/monthly", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	months := result["months"].([]interface{})
	if len(months) != 6 {
		t.Fatalf("expected 6 months by default, got %d", len(months))
	}
}

func TestReportFlow_ExpenseSummary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	now := time.Now().UTC()
	app.request("POST", "/api/v1/expenses",
		fmt.Sprintf(`{"date":%q,"category":"Food","amount":12}`, now.Format("2006-01-02")), token)
	app.request("POST", "/api/v1/expenses", `{"date":"2019-06-15","category":"Travel","amount":100}`, token)

	rec := app.request("GET", "/api/v1/reports/summary", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	if summary["total"].(float64) != 112 {
		t.Errorf("expected total 112, got %v", summary["total"])
	}
	if summary["today"].(float64) != 12 {
		t.Errorf("expected today 12, got %v", summary["today"])
	}
	if summary["current_month"].(float64) != 12 {
		t.Errorf("expected current month 12, got %v", summary["current_month"])
	}
}

func TestReportFlow_InventoryReport(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	app.createProduct(t, token, "Widget", "Hardware", 10.0, 4)
	app.createProduct(t, token, "Gadget", "Hardware", 2.5, 8)

	rec := app.request("GET", "/api/v1/reports/inventory", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	report := result["inventory"].(map[string]interface{})
	products := report["products"].([]interface{})
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}

	// Lowest stock first with a per-product value
	first := products[0].(map[string]interface{})
	if first["name"] != "Widget" {
		t.Errorf("expected Widget first, got %v", first["name"])
	}
	if first["value"].(float64) != 40.0 {
		t.Errorf("expected Widget value 40, got %v", first["value"])
	}
	if report["total_value"].(float64) != 60.0 {
		t.Errorf("expected total value 60, got %v", report["total_value"])
	}
}

func TestReportFlow_EmptyState(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "alice", "password123")

	rec := app.request("GET", "/api/v1/reports/summary", "", token)
	result := parseJSON(t, rec)
	summary := result["summary"].(map[string]interface{})
	for _, key := range []string{"total", "today", "current_month"} {
		if summary[key].(float64) != 0 {
			t.Errorf("expected %s to be 0, got %v", key, summary[key])
		}
	}

	rec = app.request("GET", "/api/v1/reports/inventory", "", token)
	result = parseJSON(t, rec)
	report := result["inventory"].(map[string]interface{})
	if report["total_value"].(float64) != 0 {
		t.Errorf("expected total value 0, got %v", report["total_value"])
	}
}
