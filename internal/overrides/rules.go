package overrides

import (
	c "github.com/wonny/quickrate/internal/contracts"
)

// DefaultRules is the authoritative override table.
// Each rule's Source is listed in the Target's ComplementaryKeys.
func DefaultRules() []Rule {
	return []Rule{
		// Technology
		{Sector: c.SectorTechnology, Source: c.KeyPEG, Target: c.KeyPE, Op: Below, Limit: 1.5, Action: Relax, PositiveTarget: true,
			Reason: "PEG below 1.5 justifies a high P/L"},
		{Sector: c.SectorTechnology, Source: c.KeyRevenueGrowth, Target: c.KeyPE, Op: Below, Limit: 5, Action: Dampen,
			Reason: "cheap P/L without growth is a value trap signal"},
		{Sector: c.SectorTechnology, Source: c.KeyInterestCoverage, Target: c.KeyDebtEquity, Op: Below, Limit: 1.2, Action: Dampen,
			Reason: "low leverage is unreliable when interest is barely covered"},
		{Sector: c.SectorTechnology, Source: c.KeyInterestCoverage, Target: c.KeyCurrentRatio, Op: Below, Limit: 1.2, Action: Dampen,
			Reason: "liquidity is unreliable when interest is barely covered"},
		{Sector: c.SectorTechnology, Source: c.KeyDebtEquity, Target: c.KeyROE, Op: Above, Limit: 2, Action: Dampen,
			Reason: "ROE inflated by leverage"},
		{Sector: c.SectorTechnology, Source: c.KeyOperatingMargin, Target: c.KeyRevenueGrowth, Op: Below, Limit: 0, Action: Dampen,
			Reason: "growth bought with operating losses"},
		{Sector: c.SectorTechnology, Source: c.KeySBCRatio, Target: c.KeyOperatingMargin, Op: Above, Limit: 15, Action: Dampen,
			Reason: "margin flattered by stock-based compensation"},

		// Healthcare
		{Sector: c.SectorHealthcare, Source: c.KeyCashRunway, Target: c.KeyRevenueGrowth, Op: Below, Limit: 12, Action: Dampen,
			Reason: "growth at risk with under a year of cash"},
		{Sector: c.SectorHealthcare, Source: c.KeyRDRatio, Target: c.KeyNetMargin, Op: AtLeast, Limit: 15, Action: Relax,
			Reason: "thin margin explained by heavy R&D investment"},
		{Sector: c.SectorHealthcare, Source: c.KeyDebtEquity, Target: c.KeyROE, Op: Above, Limit: 2, Action: Dampen,
			Reason: "ROE inflated by leverage"},

		// Real Estate
		{Sector: c.SectorRealEstate, Source: c.KeyFFOPayout, Target: c.KeyDividendYield, Op: Above, Limit: 100, Action: Dampen,
			Reason: "dividend exceeds FFO and is not sustainable"},
		{Sector: c.SectorRealEstate, Source: c.KeyOccupancy, Target: c.KeyPFFO, Op: Below, Limit: 85, Action: Dampen,
			Reason: "cheap P/FFO reflects vacancy risk"},
		{Sector: c.SectorRealEstate, Source: c.KeyLTV, Target: c.KeyDividendYield, Op: Above, Limit: 60, Action: Tighten,
			Reason: "high LTV puts distributions at risk"},
		{Sector: c.SectorRealEstate, Source: c.KeyInterestCoverage, Target: c.KeyLTV, Op: Below, Limit: 1.5, Action: Dampen,
			Reason: "moderate LTV with weak coverage"},

		// Financial Services
		{Sector: c.SectorFinancialServices, Source: c.KeyBasel, Target: c.KeyROE, Op: Below, Limit: 11, Action: Dampen,
			Reason: "ROE achieved with thin regulatory capital"},
		{Sector: c.SectorFinancialServices, Source: c.KeyPayout, Target: c.KeyDividendYield, Op: Above, Limit: 90, Action: Dampen,
			Reason: "yield depends on paying out almost all earnings"},
		{Sector: c.SectorFinancialServices, Source: c.KeyROE, Target: c.KeyPB, Op: Below, Limit: 8, Action: Dampen,
			Reason: "low P/VP explained by low profitability"},
		{Sector: c.SectorFinancialServices, Source: c.KeyNPL, Target: c.KeyNIM, Op: Above, Limit: 4.5, Action: Dampen,
			Reason: "wide spread offset by rising defaults"},

		// Energy
		{Sector: c.SectorEnergy, Source: c.KeyNetDebtEBITDA, Target: c.KeyDividendYield, Op: Above, Limit: 3, Action: Dampen,
			Reason: "dividend funded under high leverage"},
		{Sector: c.SectorEnergy, Source: c.KeyBreakeven, Target: c.KeyPE, Op: Above, Limit: 60, Action: Dampen,
			Reason: "earnings depend on high commodity prices"},
		{Sector: c.SectorEnergy, Source: c.KeyInterestCoverage, Target: c.KeyNetDebtEBITDA, Op: Below, Limit: 2, Action: Tighten,
			Reason: "leverage with weak interest coverage"},

		// Utilities
		{Sector: c.SectorUtilities, Source: c.KeyPayout, Target: c.KeyDividendYield, Op: Above, Limit: 100, Action: Dampen,
			Reason: "dividend exceeds earnings"},
		{Sector: c.SectorUtilities, Source: c.KeyInterestCoverage, Target: c.KeyNetDebtEBITDA, Op: Below, Limit: 1.8, Action: Tighten,
			Reason: "leverage with weak interest coverage"},
		{Sector: c.SectorUtilities, Source: c.KeyRegulatedRevenue, Target: c.KeyDebtEquity, Op: AtLeast, Limit: 80, Action: Relax,
			Reason: "regulated revenue supports higher leverage"},

		// Basic Materials
		{Sector: c.SectorBasicMaterials, Source: c.KeyEBITDAMargin, Target: c.KeyPE, Op: Above, Limit: 40, Action: Dampen,
			Reason: "low P/L at peak-cycle margins"},
		{Sector: c.SectorBasicMaterials, Source: c.KeyNetDebtEBITDA, Target: c.KeyDividendYield, Op: Above, Limit: 2.5, Action: Dampen,
			Reason: "dividend funded under high leverage"},

		// Industrials
		{Sector: c.SectorIndustrials, Source: c.KeyBacklogCoverage, Target: c.KeyRevenueGrowth, Op: Below, Limit: 0.8, Action: Dampen,
			Reason: "growth not backed by order backlog"},
		{Sector: c.SectorIndustrials, Source: c.KeyInterestCoverage, Target: c.KeyDebtEquity, Op: Below, Limit: 2, Action: Dampen,
			Reason: "low leverage is unreliable with weak coverage"},
		{Sector: c.SectorIndustrials, Source: c.KeyAssetEfficiency, Target: c.KeyROE, Op: AtLeast, Limit: 8, Action: Relax,
			Reason: "weak ROE offset by efficient asset use"},

		// Consumer Cyclical
		{Sector: c.SectorConsumerCyclical, Source: c.KeySameStoreSales, Target: c.KeyRevenueGrowth, Op: Below, Limit: 0, Action: Dampen,
			Reason: "growth from new stores only"},
		{Sector: c.SectorConsumerCyclical, Source: c.KeyInventoryTurnover, Target: c.KeyGrossMargin, Op: Below, Limit: 3, Action: Dampen,
			Reason: "margin at risk from slow-moving inventory"},
		{Sector: c.SectorConsumerCyclical, Source: c.KeyInterestCoverage, Target: c.KeyCurrentRatio, Op: Below, Limit: 2, Action: Dampen,
			Reason: "liquidity is unreliable with weak coverage"},

		// Consumer Defensive
		{Sector: c.SectorConsumerDefensive, Source: c.KeyPayout, Target: c.KeyDividendYield, Op: Above, Limit: 95, Action: Dampen,
			Reason: "yield depends on paying out almost all earnings"},
		{Sector: c.SectorConsumerDefensive, Source: c.KeyGrossMargin, Target: c.KeyPE, Op: AtLeast, Limit: 35, Action: Relax, PositiveTarget: true,
			Reason: "pricing power justifies a premium multiple"},

		// Communication Services
		{Sector: c.SectorCommunicationServices, Source: c.KeyChurn, Target: c.KeyARPUGrowth, Op: Above, Limit: 2.5, Action: Dampen,
			Reason: "ARPU growth while losing subscribers"},
		{Sector: c.SectorCommunicationServices, Source: c.KeyCapexIntensity, Target: c.KeyDividendYield, Op: Above, Limit: 22, Action: Dampen,
			Reason: "dividend competes with heavy capex"},
		{Sector: c.SectorCommunicationServices, Source: c.KeyNetDebtEBITDA, Target: c.KeyDividendYield, Op: Above, Limit: 3.5, Action: Tighten,
			Reason: "dividend funded under high leverage"},
	}
}
