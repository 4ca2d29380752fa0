package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const summaryFixture = `{
  "quoteSummary": {
    "result": [{
      "price": {"currency": "USD", "longName": "Apple Inc."},
      "assetProfile": {"sector": "Information Technology", "industry": "Consumer Electronics"},
      "summaryDetail": {
        "previousClose": {"raw": 228.5},
        "trailingPE": {"raw": 34.2},
        "marketCap": {"raw": 3400000000000},
        "dividendYield": {"raw": 0.0042}
      },
      "financialData": {
        "profitMargins": {"raw": 0.25},
        "targetMeanPrice": {"raw": 250.0},
        "recommendationMean": {"raw": 1.8},
        "freeCashflow": {"raw": 100000000000}
      },
      "defaultKeyStatistics": {
        "priceToBook": {"raw": 48.1}
      }
    }],
    "error": null
  }
}`

func TestYahooFetchMapsColumns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v10/finance/quoteSummary/AAPL" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(summaryFixture))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL)
	fields, err := y.Fetch(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := map[string]string{
		"Währung":                 "USD",
		"Security":                "Apple Inc.",
		"Sektor":                  "Information Technology",
		"Vortagesschlusskurs":     "228.5",
		"KGV":                     "34.2",
		"Marktkapitalisierung":    "3400000000000",
		"Dividendenrendite":       "0.0042",
		"Nettomarge":              "0.25",
		"Analysten_Kursziel":      "250",
		"Empfehlungsdurchschnitt": "1.8",
		"KBV":                     "48.1",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %q = %q, want %q", k, fields[k], v)
		}
	}

	// Derived from free cashflow over market cap.
	if _, ok := fields["Free Cashflow Yield"]; !ok {
		t.Error("Free Cashflow Yield not derived")
	}
	if _, ok := fields["Beta"]; ok {
		t.Error("absent field Beta must not be mapped")
	}
}

func TestYahooFetchCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Write([]byte(summaryFixture))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL)
	for i := 0; i < 3; i++ {
		if _, err := y.Fetch(context.Background(), "AAPL"); err != nil {
			t.Fatalf("Fetch: %v", err)
		}
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1 (cached)", hits)
	}
}

func TestYahooFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`))
	}))
	defer srv.Close()

	y := NewYahoo(srv.URL)
	if _, err := y.Fetch(context.Background(), "NOPE"); err == nil {
		t.Fatal("expected error for unknown ticker")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("k", "v")

	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("Get = %v, %v", v, ok)
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expired entry still served")
	}
}

func TestRateLimiterAllowsBurst(t *testing.T) {
	rl := NewRateLimiter(3, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for i := 0; i < 3; i++ {
		if err := rl.Wait(ctx); err != nil {
			t.Fatalf("burst request %d blocked: %v", i, err)
		}
	}
}

func TestRateLimiterCancelledContext(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour) // 1 token, very slow refill.

	if err := rl.Wait(context.Background()); err != nil {
		t.Fatalf("first token: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); err == nil {
		t.Error("Wait returned without token and live context")
	}
}
