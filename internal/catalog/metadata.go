package catalog

import (
	c "github.com/wonny/quickrate/internal/contracts"
)

func keys(k ...c.MetricKey) []c.MetricKey {
	return k
}

// baseMetadata is the ordered indicator list shared by every sector.
// Labels follow the data provider's Portuguese display names.
func baseMetadata() []c.IndicatorMetadata {
	return []c.IndicatorMetadata{
		// Valuation
		{Label: "P/L", Key: c.KeyPE, Weight: 1.5,
			ComplementaryKeys: keys(c.KeyPEG, c.KeyRevenueGrowth, c.KeyBreakeven, c.KeyEBITDAMargin, c.KeyGrossMargin),
			Explanation:       explain(unitMultiple, valuationVerdicts)},
		{Label: "P/VP", Key: c.KeyPB, Weight: 1,
			ComplementaryKeys: keys(c.KeyROE),
			Explanation:       explain(unitMultiple, valuationVerdicts)},
		{Label: "P/Receita", Key: c.KeyPS, Weight: 1,
			Explanation: explain(unitMultiple, valuationVerdicts)},
		{Label: "PEG Ratio", Key: c.KeyPEG, Weight: 1,
			Explanation: explain(unitRatio, valuationVerdicts)},
		{Label: "EV/EBITDA", Key: c.KeyEVEBITDA, Weight: 1,
			Explanation: explain(unitMultiple, valuationVerdicts)},
		{Label: "Valor Intrínseco (DCF)", Key: c.KeyDCF, Weight: 1.5,
			Explanation: c.Explanation{Generate: dcfExplanation}},
		{Label: "Valor de Mercado", Key: c.KeyMarketCap, Weight: 1, InformationalOnly: true,
			Explanation: static("Market capitalization, shown for context only")},

		// Profitability
		{Label: "ROE", Key: c.KeyROE, Weight: 1.5, DeltaSensitive: true,
			ComplementaryKeys: keys(c.KeyDebtEquity, c.KeyBasel, c.KeyAssetEfficiency),
			Explanation:       explain(unitPercent, profitabilityVerdicts)},
		{Label: "ROIC", Key: c.KeyROIC, Weight: 1, DeltaSensitive: true,
			Explanation: explain(unitPercent, profitabilityVerdicts)},
		{Label: "Margem Bruta", Key: c.KeyGrossMargin, Weight: 1, DeltaSensitive: true,
			ComplementaryKeys: keys(c.KeyInventoryTurnover),
			Explanation:       explain(unitPercent, profitabilityVerdicts)},
		{Label: "Margem Operacional", Key: c.KeyOperatingMargin, Weight: 1, DeltaSensitive: true,
			ComplementaryKeys: keys(c.KeySBCRatio),
			Explanation:       explain(unitPercent, profitabilityVerdicts)},
		{Label: "Margem Líquida", Key: c.KeyNetMargin, Weight: 1, DeltaSensitive: true,
			ComplementaryKeys: keys(c.KeyRDRatio),
			Explanation:       explain(unitPercent, profitabilityVerdicts)},
		{Label: "LPA", Key: c.KeyEPS, Weight: 1,
			Explanation: static("Earnings per share must be positive")},

		// Growth
		{Label: "Crescimento da Receita", Key: c.KeyRevenueGrowth, Weight: 1,
			ComplementaryKeys: keys(c.KeyOperatingMargin, c.KeyCashRunway, c.KeyBacklogCoverage, c.KeySameStoreSales),
			Explanation:       explain(unitPercent, growthVerdicts)},
		{Label: "Crescimento do LPA", Key: c.KeyEPSGrowth, Weight: 1,
			Explanation: explain(unitPercent, growthVerdicts)},

		// Shareholder return
		{Label: "Dividend Yield", Key: c.KeyDividendYield, Weight: 1,
			ComplementaryKeys: keys(c.KeyPayout, c.KeyFFOPayout, c.KeyLTV, c.KeyNetDebtEBITDA, c.KeyCapexIntensity),
			Explanation:       explain(unitPercent, yieldVerdicts)},
		{Label: "Payout", Key: c.KeyPayout, Weight: 1,
			Explanation: explain(unitPercent, bandVerdicts)},

		// Balance sheet
		{Label: "Dívida/Patrimônio", Key: c.KeyDebtEquity, Weight: 1,
			ComplementaryKeys: keys(c.KeyInterestCoverage, c.KeyRegulatedRevenue),
			Explanation:       explain(unitRatio, leverageVerdicts)},
		{Label: "Dívida Líquida/EBITDA", Key: c.KeyNetDebtEBITDA, Weight: 1.25,
			ComplementaryKeys: keys(c.KeyInterestCoverage),
			Explanation:       explain(unitMultiple, leverageVerdicts)},
		{Label: "Liquidez Corrente", Key: c.KeyCurrentRatio, Weight: 1,
			ComplementaryKeys: keys(c.KeyInterestCoverage),
			Explanation:       explain(unitRatio, liquidityVerdicts)},
		{Label: "Cobertura de Juros", Key: c.KeyInterestCoverage, Weight: 1,
			Explanation: explain(unitMultiple, liquidityVerdicts)},
		{Label: "Beta", Key: c.KeyBeta, Weight: 1, InformationalOnly: true,
			Explanation: explain(unitRatio, bandVerdicts)},
		{Label: "Fluxo de Caixa Livre", Key: c.KeyFCF, Weight: 1,
			Explanation: static("Free cash flow should not be negative")},
	}
}

// sectorMetadata adds sector-only indicators, appended after the base list
func sectorMetadata() map[c.Sector][]c.IndicatorMetadata {
	return map[c.Sector][]c.IndicatorMetadata{
		c.SectorTechnology: {
			{Label: "Rule of 40", Key: c.KeyRuleOf40, Weight: 1.25,
				Explanation: c.Explanation{Generate: ruleOf40Explanation}},
			{Label: "P&D/Receita", Key: c.KeyRDRatio, Weight: 1,
				Explanation: explain(unitPercent, bandVerdicts)},
			{Label: "SBC/Receita", Key: c.KeySBCRatio, Weight: 1,
				Explanation: explain(unitPercent, leverageVerdicts)},
		},
		c.SectorHealthcare: {
			{Label: "P&D/Receita", Key: c.KeyRDRatio, Weight: 1,
				Explanation: explain(unitPercent, bandVerdicts)},
			{Label: "Cash Runway", Key: c.KeyCashRunway, Weight: 1.25,
				Explanation: explain(unitMonths, liquidityVerdicts)},
		},
		c.SectorRealEstate: {
			{Label: "FFO Payout Ratio", Key: c.KeyFFOPayout, Weight: 1.5,
				Explanation: c.Explanation{Generate: ffoPayoutExplanation}},
			{Label: "P/FFO", Key: c.KeyPFFO, Weight: 1.5,
				ComplementaryKeys: keys(c.KeyOccupancy),
				Explanation:       explain(unitMultiple, valuationVerdicts)},
			{Label: "Taxa de Ocupação", Key: c.KeyOccupancy, Weight: 1, DeltaSensitive: true,
				Explanation: explain(unitPercent, profitabilityVerdicts)},
			{Label: "LTV", Key: c.KeyLTV, Weight: 1,
				ComplementaryKeys: keys(c.KeyInterestCoverage),
				Explanation:       explain(unitPercent, leverageVerdicts)},
			{Label: "Cap Rate", Key: c.KeyCapRate, Weight: 1,
				Explanation: explain(unitPercent, bandVerdicts)},
		},
		c.SectorFinancialServices: {
			{Label: "Índice de Basileia", Key: c.KeyBasel, Weight: 1.5, DeltaSensitive: true,
				Explanation: explain(unitPercent, liquidityVerdicts)},
			{Label: "Índice de Eficiência", Key: c.KeyEfficiencyRatio, Weight: 1, DeltaSensitive: true,
				Explanation: explain(unitPercent, profitabilityVerdicts)},
			{Label: "Inadimplência", Key: c.KeyNPL, Weight: 1.25, DeltaSensitive: true,
				Explanation: explain(unitPercent, leverageVerdicts)},
			{Label: "Margem Financeira Líquida", Key: c.KeyNIM, Weight: 1,
				ComplementaryKeys: keys(c.KeyNPL),
				Explanation:       explain(unitPercent, profitabilityVerdicts)},
		},
		c.SectorEnergy: {
			{Label: "Vida Útil das Reservas", Key: c.KeyReserveLife, Weight: 1,
				Explanation: explain(unitYears, profitabilityVerdicts)},
			{Label: "Breakeven", Key: c.KeyBreakeven, Weight: 1,
				Explanation: explain(unitCurrency, valuationVerdicts)},
		},
		c.SectorUtilities: {
			{Label: "Receita Regulada", Key: c.KeyRegulatedRevenue, Weight: 1,
				Explanation: explain(unitPercent, profitabilityVerdicts)},
			{Label: "Capex/Receita", Key: c.KeyCapexIntensity, Weight: 1,
				Explanation: explain(unitPercent, bandVerdicts)},
		},
		c.SectorBasicMaterials: {
			{Label: "Margem EBITDA", Key: c.KeyEBITDAMargin, Weight: 1.25, DeltaSensitive: true,
				Explanation: explain(unitPercent, profitabilityVerdicts)},
		},
		c.SectorIndustrials: {
			{Label: "Backlog/Receita", Key: c.KeyBacklogCoverage, Weight: 1,
				Explanation: explain(unitMultiple, growthVerdicts)},
			{Label: "Giro do Ativo", Key: c.KeyAssetTurnover, Weight: 1,
				Explanation: explain(unitRatio, profitabilityVerdicts)},
		},
		c.SectorConsumerCyclical: {
			{Label: "Giro de Estoque", Key: c.KeyInventoryTurnover, Weight: 1,
				Explanation: explain(unitMultiple, liquidityVerdicts)},
			{Label: "Vendas Mesmas Lojas", Key: c.KeySameStoreSales, Weight: 1, DeltaSensitive: true,
				Explanation: explain(unitPercent, growthVerdicts)},
		},
		c.SectorConsumerDefensive: {
			{Label: "Giro de Estoque", Key: c.KeyInventoryTurnover, Weight: 1,
				Explanation: explain(unitMultiple, liquidityVerdicts)},
		},
		c.SectorCommunicationServices: {
			{Label: "Churn", Key: c.KeyChurn, Weight: 1.25, DeltaSensitive: true,
				Explanation: explain(unitPercent, leverageVerdicts)},
			{Label: "Crescimento do ARPU", Key: c.KeyARPUGrowth, Weight: 1,
				ComplementaryKeys: keys(c.KeyChurn),
				Explanation:       explain(unitPercent, growthVerdicts)},
			{Label: "Capex/Receita", Key: c.KeyCapexIntensity, Weight: 1,
				Explanation: explain(unitPercent, leverageVerdicts)},
		},
	}
}

// sectorWeights adjusts the base weights where a sector leans on a metric
var sectorWeights = map[c.Sector]map[c.MetricKey]float64{
	c.SectorRealEstate:            {c.KeyDividendYield: 1.5, c.KeyPE: 0.5},
	c.SectorFinancialServices:     {c.KeyPB: 1.5, c.KeyROE: 2},
	c.SectorUtilities:             {c.KeyDividendYield: 1.5, c.KeyNetDebtEBITDA: 1.5},
	c.SectorTechnology:            {c.KeyRevenueGrowth: 1.5, c.KeyDividendYield: 0.5},
	c.SectorHealthcare:            {c.KeyRevenueGrowth: 1.25},
	c.SectorEnergy:                {c.KeyNetDebtEBITDA: 1.5},
	c.SectorConsumerDefensive:     {c.KeyDividendYield: 1.25},
	c.SectorCommunicationServices: {c.KeyNetDebtEBITDA: 1.5},
}

// excludedMetrics removes base indicators that make no sense for a sector
var excludedMetrics = map[c.Sector][]c.MetricKey{
	// 은행/보험: 매출총이익률·유동비율·EV/EBITDA 의미 없음
	c.SectorFinancialServices: {c.KeyGrossMargin, c.KeyCurrentRatio, c.KeyEVEBITDA, c.KeyNetDebtEBITDA, c.KeyInterestCoverage, c.KeyPS},
	c.SectorRealEstate:        {c.KeyGrossMargin, c.KeyPEG},
}

// buildMetadata merges base, sector additions, weights and exclusions.
// A sector entry with a base key replaces that entry in place.
func buildMetadata() map[c.Sector][]c.IndicatorMetadata {
	extras := sectorMetadata()
	out := make(map[c.Sector][]c.IndicatorMetadata, len(c.AllSectors()))

	for _, sector := range c.AllSectors() {
		excluded := make(map[c.MetricKey]bool)
		for _, key := range excludedMetrics[sector] {
			excluded[key] = true
		}

		list := make([]c.IndicatorMetadata, 0, 32)
		index := make(map[c.MetricKey]int)
		for _, md := range baseMetadata() {
			if excluded[md.Key] {
				continue
			}
			index[md.Key] = len(list)
			list = append(list, md)
		}
		for _, md := range extras[sector] {
			if i, ok := index[md.Key]; ok {
				list[i] = md
				continue
			}
			index[md.Key] = len(list)
			list = append(list, md)
		}
		for key, w := range sectorWeights[sector] {
			if i, ok := index[key]; ok {
				list[i].Weight = w
			}
		}
		out[sector] = list
	}

	return out
}
