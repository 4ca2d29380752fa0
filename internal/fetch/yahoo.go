package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"
)

// Yahoo fetches company fundamentals from the Yahoo Finance
// quoteSummary API and maps them onto the table's column names.
type Yahoo struct {
	baseURL string
	cache   *Cache
	limiter *RateLimiter
}

// NewYahoo creates a Yahoo Finance source. baseURL is overridable for
// tests; empty selects the production endpoint.
func NewYahoo(baseURL string) *Yahoo {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Yahoo{
		baseURL: baseURL,
		cache:   NewCache(5 * time.Minute),
		limiter: NewRateLimiter(5, time.Second), // 5 req/s
	}
}

// Name returns the data source name.
func (y *Yahoo) Name() string { return "Yahoo Finance" }

// --- Yahoo Finance quoteSummary types ---

type ySummaryResponse struct {
	QuoteSummary struct {
		Result []ySummaryResult `json:"result"`
		Error  *yError          `json:"error"`
	} `json:"quoteSummary"`
}

type ySummaryResult struct {
	Price                *yPrice        `json:"price"`
	AssetProfile         *yAssetProfile `json:"assetProfile"`
	SummaryDetail        *ySummary      `json:"summaryDetail"`
	FinancialData        *yFinancial    `json:"financialData"`
	DefaultKeyStatistics *yKeyStats     `json:"defaultKeyStatistics"`
}

type yPrice struct {
	Currency  string `json:"currency"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

type yAssetProfile struct {
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
	Country  string `json:"country"`
}

type ySummary struct {
	PreviousClose    yVal `json:"previousClose"`
	DividendYield    yVal `json:"dividendYield"`
	PayoutRatio      yVal `json:"payoutRatio"`
	TrailingPE       yVal `json:"trailingPE"`
	ForwardPE        yVal `json:"forwardPE"`
	PriceToSales     yVal `json:"priceToSalesTrailing12Months"`
	MarketCap        yVal `json:"marketCap"`
	Beta             yVal `json:"beta"`
	FiftyTwoWeekHigh yVal `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  yVal `json:"fiftyTwoWeekLow"`
}

type yFinancial struct {
	GrossMargins       yVal `json:"grossMargins"`
	OperatingMargins   yVal `json:"operatingMargins"`
	ProfitMargins      yVal `json:"profitMargins"`
	ReturnOnEquity     yVal `json:"returnOnEquity"`
	ReturnOnAssets     yVal `json:"returnOnAssets"`
	FreeCashflow       yVal `json:"freeCashflow"`
	OperatingCashflow  yVal `json:"operatingCashflow"`
	RevenueGrowth      yVal `json:"revenueGrowth"`
	EarningsGrowth     yVal `json:"earningsGrowth"`
	DebtToEquity       yVal `json:"debtToEquity"`
	CurrentRatio       yVal `json:"currentRatio"`
	QuickRatio         yVal `json:"quickRatio"`
	TargetMeanPrice    yVal `json:"targetMeanPrice"`
	RecommendationMean yVal `json:"recommendationMean"`
	TotalRevenue       yVal `json:"totalRevenue"`
}

type yKeyStats struct {
	PriceToBook             yVal `json:"priceToBook"`
	PegRatio                yVal `json:"pegRatio"`
	EnterpriseToEbitda      yVal `json:"enterpriseToEbitda"`
	ForwardEps              yVal `json:"forwardEps"`
	FiftyTwoWeekChange      yVal `json:"52WeekChange"`
	ShortPercentOfFloat     yVal `json:"shortPercentOfFloat"`
	HeldPercentInsiders     yVal `json:"heldPercentInsiders"`
	HeldPercentInstitutions yVal `json:"heldPercentInstitutions"`
}

// yVal is Yahoo's {"raw": x, "fmt": "..."} number wrapper. Raw stays a
// pointer so absent fields are distinguishable from zero.
type yVal struct {
	Raw *float64 `json:"raw"`
}

type yError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// --- Public methods ---

// Fetch returns the fundamentals of one ticker as a column→value map
// in the table's column vocabulary. Absent fields are simply missing
// from the map.
func (y *Yahoo) Fetch(ctx context.Context, ticker string) (map[string]string, error) {
	cacheKey := "summary:" + ticker
	if cached, ok := y.cache.Get(cacheKey); ok {
		return cached.(map[string]string), nil
	}

	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	modules := "price,assetProfile,summaryDetail,financialData,defaultKeyStatistics"
	reqURL := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s",
		y.baseURL, url.PathEscape(ticker), modules)

	body, _, err := doGet(ctx, reqURL, map[string]string{
		"Accept": "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("yahoo summary %s: %w", ticker, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var resp ySummaryResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parse yahoo summary: %w", err)
	}

	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}

	fields := mapSummary(resp.QuoteSummary.Result[0])
	y.cache.Set(cacheKey, fields)
	return fields, nil
}

// --- Helpers ---

// mapSummary flattens the quoteSummary modules into table columns.
func mapSummary(r ySummaryResult) map[string]string {
	out := make(map[string]string, 40)

	if p := r.Price; p != nil {
		putStr(out, "Währung", p.Currency)
		putStr(out, "Security", coalesce(p.LongName, p.ShortName))
	}
	if a := r.AssetProfile; a != nil {
		putStr(out, "Sektor", a.Sector)
		putStr(out, "Branche", a.Industry)
		putStr(out, "Region", a.Country)
	}
	if s := r.SummaryDetail; s != nil {
		putNum(out, "Vortagesschlusskurs", s.PreviousClose)
		putNum(out, "Dividendenrendite", s.DividendYield)
		putNum(out, "Ausschüttungsquote", s.PayoutRatio)
		putNum(out, "KGV", s.TrailingPE)
		putNum(out, "Forward PE", s.ForwardPE)
		putNum(out, "KUV", s.PriceToSales)
		putNum(out, "Marktkapitalisierung", s.MarketCap)
		putNum(out, "Beta", s.Beta)
		putNum(out, "52Wochen Hoch", s.FiftyTwoWeekHigh)
		putNum(out, "52Wochen Tief", s.FiftyTwoWeekLow)
	}
	if f := r.FinancialData; f != nil {
		putNum(out, "Bruttomarge", f.GrossMargins)
		putNum(out, "Operative Marge", f.OperatingMargins)
		putNum(out, "Nettomarge", f.ProfitMargins)
		putNum(out, "Eigenkapitalrendite", f.ReturnOnEquity)
		putNum(out, "Return on Assets", f.ReturnOnAssets)
		putNum(out, "Free Cashflow", f.FreeCashflow)
		putNum(out, "Operativer Cashflow", f.OperatingCashflow)
		putNum(out, "Umsatzwachstum 3J (erwartet)", f.RevenueGrowth)
		putNum(out, "Gewinnwachstum 5J", f.EarningsGrowth)
		putNum(out, "Verschuldungsgrad", f.DebtToEquity)
		putNum(out, "Current Ratio", f.CurrentRatio)
		putNum(out, "Quick Ratio", f.QuickRatio)
		putNum(out, "Analysten_Kursziel", f.TargetMeanPrice)
		putNum(out, "Empfehlungsdurchschnitt", f.RecommendationMean)
		putNum(out, "Umsatz", f.TotalRevenue)
	}
	if k := r.DefaultKeyStatistics; k != nil {
		putNum(out, "KBV", k.PriceToBook)
		putNum(out, "PEG-Ratio", k.PegRatio)
		putNum(out, "EV/EBITDA", k.EnterpriseToEbitda)
		putNum(out, "Gewinn je Aktie", k.ForwardEps)
		putNum(out, "52Wochen Change", k.FiftyTwoWeekChange)
		putNum(out, "Short Interest", k.ShortPercentOfFloat)
		putNum(out, "Insider_Anteil", k.HeldPercentInsiders)
		putNum(out, "Institutioneller_Anteil", k.HeldPercentInstitutions)
	}

	// Free Cashflow Yield is derived, never served directly by the API.
	if fcf, ok := out["Free Cashflow"]; ok {
		if mc, ok := out["Marktkapitalisierung"]; ok {
			f, err1 := strconv.ParseFloat(fcf, 64)
			m, err2 := strconv.ParseFloat(mc, 64)
			if err1 == nil && err2 == nil && m != 0 {
				out["Free Cashflow Yield"] = formatRaw(f / m)
			}
		}
	}

	return out
}

func putStr(m map[string]string, key, v string) {
	if v != "" {
		m[key] = v
	}
}

func putNum(m map[string]string, key string, v yVal) {
	if v.Raw != nil {
		m[key] = formatRaw(*v.Raw)
	}
}

func formatRaw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
