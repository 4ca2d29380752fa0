package catalog

// The descriptor table. Keys and aliases mirror the columns of the
// upstream stock table; labels are the short forms used on the rendered
// card. Directions encode which side of a comparison wins.
var descriptors = []Descriptor{
	{
		Key:         "KGV",
		Aliases:     []string{"KGV", "PE", "trailingPE"},
		Label:       "KGV",
		Kind:        Ratio,
		Direction:   Lower,
		Description: "Kurs-Gewinn-Verhältnis (Preis ÷ Gewinn je Aktie).",
	},
	{
		Key:         "Forward PE",
		Aliases:     []string{"Forward PE", "forwardPE"},
		Label:       "Forward P/E",
		ShortLabels: []string{"Fwd P/E"},
		Kind:        Ratio,
		Direction:   Lower,
		Description: "Prognostiziertes KGV für die nächsten 12 Monate.",
	},
	{
		Key:         "KBV",
		Aliases:     []string{"KBV", "Price to Book", "priceToBook"},
		Label:       "KBV",
		Kind:        Ratio,
		Direction:   Lower,
		Description: "Kurs-Buchwert-Verhältnis (Preis ÷ Buchwert je Aktie).",
	},
	{
		Key:         "KUV",
		Aliases:     []string{"KUV", "Price to Sales", "priceToSalesTrailing12Months"},
		Label:       "KUV",
		Kind:        Ratio,
		Direction:   Lower,
		Description: "Kurs-Umsatz-Verhältnis (Marktkap. ÷ Jahresumsatz).",
	},
	{
		Key:         "PEG-Ratio",
		Aliases:     []string{"PEG-Ratio", "pegRatio"},
		Label:       "PEG-Ratio",
		ShortLabels: []string{"PEG"},
		Kind:        Ratio,
		Direction:   Lower,
		Description: "KGV geteilt durch erwartetes Gewinnwachstum; <1 gilt als günstig.",
	},
	{
		Key:         "EV/EBITDA",
		Aliases:     []string{"EV/EBITDA", "enterpriseToEbitda"},
		Label:       "EV/EBITDA",
		Kind:        Ratio,
		Direction:   Lower,
		Description: "Unternehmenswert ÷ EBITDA.",
	},
	{
		Key:         "Verschuldungsgrad",
		Aliases:     []string{"Verschuldungsgrad", "Debt to Equity", "debtToEquity"},
		Label:       "Verschuldung",
		ShortLabels: []string{"Verschuldg.", "D/E"},
		Kind:        Plain,
		Direction:   Lower,
		Description: "Fremdkapital ÷ Eigenkapital, in %.",
	},
	{
		Key:         "Beta",
		Aliases:     []string{"Beta", "beta"},
		Label:       "Beta",
		Kind:        Plain,
		Direction:   Lower,
		Description: "Volatilität relativ zum Gesamtmarkt (β > 1 = schwankungsintensiver).",
	},

	{
		Key:         "Dividendenrendite",
		Aliases:     []string{"Dividendenrendite", "Dividend Yield", "dividendYield"},
		Label:       "Div.-Rendite",
		ShortLabels: []string{"Div.-Rend.", "Div."},
		Kind:        Percent,
		Direction:   Higher,
		YieldLike:   true,
		Description: "Jährliche Dividende ÷ Aktienkurs, in %.",
	},
	{
		Key:         "Ausschüttungsquote",
		Aliases:     []string{"Ausschüttungsquote", "Payout Ratio", "payoutRatio"},
		Label:       "Ausschüttg.",
		ShortLabels: []string{"Payout"},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Anteil des Gewinns, der als Dividende ausgeschüttet wird, in %.",
	},
	{
		Key:         "Free Cashflow Yield",
		Aliases:     []string{"Free Cashflow Yield", "freeCashflowYield"},
		Label:       "FCF-Rendite",
		ShortLabels: []string{"FCF-Rend.", "FCF %"},
		Kind:        Percent,
		Direction:   Higher,
		YieldLike:   true,
		Description: "FCF ÷ Marktkapitalisierung, in %.",
	},
	{
		Key:         "Bruttomarge",
		Aliases:     []string{"Bruttomarge", "Gross Margin", "grossMargins"},
		Label:       "Bruttomarge",
		ShortLabels: []string{"Brutto-M."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Bruttogewinn als % des Umsatzes.",
	},
	{
		Key:         "Operative Marge",
		Aliases:     []string{"Operative Marge", "Operating Margin", "operatingMargins"},
		Label:       "Oper. Marge",
		ShortLabels: []string{"Op. Marge"},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Operatives Ergebnis als % des Umsatzes.",
	},
	{
		Key: "Nettomarge",
		Aliases: []string{
			"Nettomarge", "Net Margin", "Net Profit Margin", "Profit Margin",
			"profitMargins", "netProfitMargin", "netMargin",
		},
		Label:       "Nettomarge",
		ShortLabels: []string{"Netto-M."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Jahresüberschuss als % des Umsatzes.",
	},
	{
		Key:         "Eigenkapitalrendite",
		Aliases:     []string{"Eigenkapitalrendite", "Return on Equity", "ROE", "returnOnEquity"},
		Label:       "EK-Rendite",
		ShortLabels: []string{"ROE"},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Gewinn ÷ Eigenkapital (ROE), in %.",
	},
	{
		Key:         "Return on Assets",
		Aliases:     []string{"Return on Assets", "ROA", "returnOnAssets"},
		Label:       "ROA",
		Kind:        Percent,
		Direction:   Higher,
		Description: "Gewinn ÷ Bilanzsumme (ROA), in %.",
	},
	{
		Key:         "ROIC",
		Aliases:     []string{"ROIC", "returnOnCapital"},
		Label:       "ROIC",
		Kind:        Percent,
		Direction:   Higher,
		Description: "Return on Invested Capital, in %.",
	},
	{
		Key:         "Umsatzwachstum",
		Aliases:     []string{"Umsatzwachstum", "Revenue Growth", "revenueGrowth"},
		Label:       "Umsatzwachstum",
		ShortLabels: []string{"Umsatzw."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Jährliche Umsatzsteigerungsrate, in %.",
	},
	{
		Key:         "Gewinnwachstum",
		Aliases:     []string{"Gewinnwachstum", "Earnings Growth", "earningsGrowth"},
		Label:       "Gewinnwachstum",
		ShortLabels: []string{"Gewinnw."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Jährliche Gewinnsteigerungsrate, in %.",
	},
	{
		Key:         "Umsatzwachstum 3J (erwartet)",
		Aliases:     []string{"Umsatzwachstum 3J (erwartet)", "revenueGrowth3Y"},
		Label:       "Umsatzw. 3J",
		ShortLabels: []string{"Umsw. 3J"},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Erwartete Ø Umsatzsteigerung der nächsten 3 Jahre.",
	},
	{
		Key:         "Gewinnwachstum 5J",
		Aliases:     []string{"Gewinnwachstum 5J", "earningsQuarterlyGrowth"},
		Label:       "Gewinnw. 5J",
		Kind:        Percent,
		Direction:   Higher,
		Description: "Ø jährliche Gewinnsteigerung der letzten 5 Jahre.",
	},
	{
		Key:         "Insider_Anteil",
		Aliases:     []string{"Insider_Anteil", "heldPercentInsiders"},
		Label:       "Insider",
		Kind:        Percent,
		Direction:   Higher,
		Description: "Anteil der Insider-Aktien, in %.",
	},
	{
		Key:         "Institutioneller_Anteil",
		Aliases:     []string{"Institutioneller_Anteil", "heldPercentInstitutions"},
		Label:       "Institutionell",
		ShortLabels: []string{"Instit."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Anteil institutioneller Investoren, in %.",
	},
	{
		Key:         "Short Interest",
		Aliases:     []string{"Short Interest", "shortPercentOfFloat"},
		Label:       "Short Interest",
		ShortLabels: []string{"Short Int."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Prozentual leerverkaufter Streubesitz.",
	},
	{
		Key:         "52Wochen Change",
		Aliases:     []string{"52Wochen Change", "52WeekChange"},
		Label:       "52W Change",
		ShortLabels: []string{"52W Chg."},
		Kind:        Percent,
		Direction:   Higher,
		Description: "Kursveränderung in den letzten 52 Wochen, in %.",
	},

	{
		Key:         "Marktkapitalisierung",
		Aliases:     []string{"Marktkapitalisierung", "Market Cap", "marketCap", "MarketCap"},
		Label:       "Marktkap.",
		ShortLabels: []string{"MK"},
		Kind:        Currency,
		Direction:   Neutral,
		Description: "Börsenwert aller ausstehenden Aktien.",
	},
	{
		Key:         "EBIT",
		Aliases:     []string{"EBIT", "ebit"},
		Label:       "EBIT",
		Kind:        Plain,
		Direction:   Higher,
		Description: "Ergebnis vor Zinsen und Steuern.",
	},
	{
		Key:         "Free Cashflow",
		Aliases:     []string{"Free Cashflow", "freeCashflow"},
		Label:       "Free Cashflow",
		ShortLabels: []string{"FCF"},
		Kind:        Plain,
		Direction:   Higher,
		Description: "Cashflow nach Investitionen (FCF).",
	},
	{
		Key:         "Operativer Cashflow",
		Aliases:     []string{"Operativer Cashflow", "operatingCashflow"},
		Label:       "Oper. CF",
		Kind:        Plain,
		Direction:   Higher,
		Description: "Cashflow aus laufender Geschäftstätigkeit.",
	},
	{
		Key:         "Gewinn je Aktie",
		Aliases:     []string{"Gewinn je Aktie", "EPS", "forwardEps"},
		Label:       "Gewinn je Aktie",
		ShortLabels: []string{"EPS"},
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Erwarteter Gewinn je Aktie (EPS) in den nächsten 12 Monaten.",
	},
	{
		Key:         "Interest Coverage",
		Aliases:     []string{"Interest Coverage", "interestCoverage"},
		Label:       "Zinsdeckung",
		ShortLabels: []string{"Zinsdeckg."},
		Kind:        Plain,
		Direction:   Higher,
		Description: "EBIT ÷ Zinsaufwand; höher ist besser.",
	},
	{
		Key:         "Current Ratio",
		Aliases:     []string{"Current Ratio", "currentRatio"},
		Label:       "Current Ratio",
		ShortLabels: []string{"Curr. Ratio"},
		Kind:        Ratio,
		Direction:   Higher,
		Description: "Umlaufvermögen ÷ kurzfristige Verbindlichkeiten.",
	},
	{
		Key:         "Quick Ratio",
		Aliases:     []string{"Quick Ratio", "quickRatio"},
		Label:       "Quick Ratio",
		Kind:        Ratio,
		Direction:   Higher,
		Description: "Liquiditätsgrad II (Cash + Forderungen) ÷ kurzfristige Verbindlichkeiten.",
	},
	{
		Key:         "Vortagesschlusskurs",
		Aliases:     []string{"Vortagesschlusskurs", "Previous Close", "previousClose"},
		Label:       "Schlusskurs",
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Letzter Schlusskurs (gestern).",
	},
	{
		Key:         "52Wochen Hoch",
		Aliases:     []string{"52Wochen Hoch", "fiftyTwoWeekHigh"},
		Label:       "52W Hoch",
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Höchster Kurs der letzten 52 Wochen.",
	},
	{
		Key:         "52Wochen Tief",
		Aliases:     []string{"52Wochen Tief", "fiftyTwoWeekLow"},
		Label:       "52W Tief",
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Tiefster Kurs der letzten 52 Wochen.",
	},
	{
		Key:         "Analysten_Kursziel",
		Aliases:     []string{"Analysten_Kursziel", "targetMeanPrice"},
		Label:       "Kursziel",
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Durchschnittliches Kursziel laut Analysten.",
	},
	{
		Key:         "Empfehlungsdurchschnitt",
		Aliases:     []string{"Empfehlungsdurchschnitt", "recommendationMean"},
		Label:       "Empfehlung",
		Kind:        Plain,
		Direction:   Neutral,
		Description: "Analysten-Rating (1 = Kaufen, 5 = Verkaufen).",
	},
}

// sectorDefaults lists the six pre-selected metrics per GICS sector.
var sectorDefaults = map[string][]string{
	"Information Technology": {
		"KGV", "Forward PE", "KUV",
		"Eigenkapitalrendite", "Free Cashflow Yield", "Umsatzwachstum 3J (erwartet)",
	},
	"Communication Services": {
		"KGV", "Forward PE", "KUV",
		"Nettomarge", "Eigenkapitalrendite", "Umsatzwachstum 3J (erwartet)",
	},
	"Consumer Staples": {
		"Dividendenrendite", "Ausschüttungsquote", "KGV",
		"Nettomarge", "Eigenkapitalrendite", "Umsatzwachstum 3J (erwartet)",
	},
	"Consumer Discretionary": {
		"KGV", "Forward PE", "KUV",
		"Operative Marge", "Eigenkapitalrendite", "Umsatzwachstum 3J (erwartet)",
	},
	"Industrials": {
		"KGV", "EV/EBITDA", "KUV",
		"Operative Marge", "Eigenkapitalrendite", "Verschuldungsgrad",
	},
	"Financials": {
		"KGV", "KBV", "Eigenkapitalrendite",
		"Nettomarge", "Dividendenrendite", "Beta",
	},
	"Health Care": {
		"KGV", "Forward PE", "KUV",
		"Bruttomarge", "Nettomarge", "Umsatzwachstum 3J (erwartet)",
	},
	"Energy": {
		"EV/EBITDA", "KGV", "Free Cashflow Yield",
		"Verschuldungsgrad", "Interest Coverage", "Dividendenrendite",
	},
	"Utilities": {
		"Dividendenrendite", "Ausschüttungsquote", "KGV",
		"Verschuldungsgrad", "Interest Coverage", "Beta",
	},
	"Materials": {
		"EV/EBITDA", "KGV", "KUV",
		"Bruttomarge", "Verschuldungsgrad", "Free Cashflow Yield",
	},
	"Real Estate": {
		"Dividendenrendite", "Ausschüttungsquote", "KGV",
		"KUV", "Verschuldungsgrad", "Beta",
	},
}
