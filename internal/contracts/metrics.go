package contracts

// Metric keys shared by catalogs, complementary builders and override rules
// ⭐ SSOT: 지표 키는 여기서만 정의
const (
	// Valuation
	KeyPE        MetricKey = "pe"
	KeyPB        MetricKey = "pb"
	KeyPS        MetricKey = "ps"
	KeyPEG       MetricKey = "peg"
	KeyEVEBITDA  MetricKey = "ev_ebitda"
	KeyDCF       MetricKey = "dcf"
	KeyMarketCap MetricKey = "market_cap"

	// Profitability
	KeyROE             MetricKey = "roe"
	KeyROIC            MetricKey = "roic"
	KeyGrossMargin     MetricKey = "gross_margin"
	KeyOperatingMargin MetricKey = "operating_margin"
	KeyNetMargin       MetricKey = "net_margin"
	KeyEBITDAMargin    MetricKey = "ebitda_margin"
	KeyEPS             MetricKey = "eps"

	// Growth
	KeyRevenueGrowth MetricKey = "revenue_growth"
	KeyEPSGrowth     MetricKey = "eps_growth"

	// Shareholder return
	KeyDividendYield MetricKey = "dividend_yield"
	KeyPayout        MetricKey = "payout"

	// Balance sheet / risk
	KeyDebtEquity       MetricKey = "debt_equity"
	KeyNetDebtEBITDA    MetricKey = "net_debt_ebitda"
	KeyCurrentRatio     MetricKey = "current_ratio"
	KeyInterestCoverage MetricKey = "interest_coverage"
	KeyBeta             MetricKey = "beta"
	KeyFCF              MetricKey = "fcf"

	// Technology / Healthcare
	KeyRuleOf40   MetricKey = "rule_of_40"
	KeyRDRatio    MetricKey = "rd_ratio"
	KeySBCRatio   MetricKey = "sbc_ratio"
	KeyCashRunway MetricKey = "cash_runway"

	// Real Estate
	KeyFFOPayout MetricKey = "ffo_payout"
	KeyPFFO      MetricKey = "p_ffo"
	KeyOccupancy MetricKey = "occupancy"
	KeyLTV       MetricKey = "ltv"
	KeyCapRate   MetricKey = "cap_rate"

	// Financial Services
	KeyBasel           MetricKey = "basel"
	KeyEfficiencyRatio MetricKey = "efficiency_ratio"
	KeyNPL             MetricKey = "npl"
	KeyNIM             MetricKey = "nim"

	// Energy / Utilities / Materials
	KeyReserveLife      MetricKey = "reserve_life"
	KeyBreakeven        MetricKey = "breakeven"
	KeyRegulatedRevenue MetricKey = "regulated_revenue"
	KeyCapexIntensity   MetricKey = "capex_intensity"

	// Industrials / Consumer / Communication
	KeyBacklogCoverage   MetricKey = "backlog_coverage"
	KeyAssetTurnover     MetricKey = "asset_turnover"
	KeyInventoryTurnover MetricKey = "inventory_turnover"
	KeySameStoreSales    MetricKey = "same_store_sales"
	KeyChurn             MetricKey = "churn"
	KeyARPUGrowth        MetricKey = "arpu_growth"

	// Complementary-only (derived or contextual, never displayed)
	KeyCurrentPrice          MetricKey = "current_price"
	KeyOperationalEfficiency MetricKey = "operational_efficiency"
	KeyFFOCoverage           MetricKey = "ffo_coverage"
	KeyAssetEfficiency       MetricKey = "asset_efficiency"
	KeyCashConversion        MetricKey = "cash_conversion"
	KeyLeverageProxy         MetricKey = "leverage_proxy"
	KeyReinvestmentRate      MetricKey = "reinvestment_rate"
	KeyGrowthQuality         MetricKey = "growth_quality"
)

var knownKeys = func() map[MetricKey]bool {
	keys := []MetricKey{
		KeyPE, KeyPB, KeyPS, KeyPEG, KeyEVEBITDA, KeyDCF, KeyMarketCap,
		KeyROE, KeyROIC, KeyGrossMargin, KeyOperatingMargin, KeyNetMargin, KeyEBITDAMargin, KeyEPS,
		KeyRevenueGrowth, KeyEPSGrowth,
		KeyDividendYield, KeyPayout,
		KeyDebtEquity, KeyNetDebtEBITDA, KeyCurrentRatio, KeyInterestCoverage, KeyBeta, KeyFCF,
		KeyRuleOf40, KeyRDRatio, KeySBCRatio, KeyCashRunway,
		KeyFFOPayout, KeyPFFO, KeyOccupancy, KeyLTV, KeyCapRate,
		KeyBasel, KeyEfficiencyRatio, KeyNPL, KeyNIM,
		KeyReserveLife, KeyBreakeven, KeyRegulatedRevenue, KeyCapexIntensity,
		KeyBacklogCoverage, KeyAssetTurnover, KeyInventoryTurnover, KeySameStoreSales, KeyChurn, KeyARPUGrowth,
		KeyCurrentPrice, KeyOperationalEfficiency, KeyFFOCoverage, KeyAssetEfficiency,
		KeyCashConversion, KeyLeverageProxy, KeyReinvestmentRate, KeyGrowthQuality,
	}
	m := make(map[MetricKey]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}()

// Known reports whether k is a metric key defined above
func (k MetricKey) Known() bool {
	return knownKeys[k]
}
