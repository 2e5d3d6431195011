package catalog

import (
	c "github.com/wonny/quickrate/internal/contracts"
)

// baseThresholds are the sector-agnostic cutoffs every sector starts from.
// Percent metrics are expressed in points (15 = 15%).
func baseThresholds() map[c.MetricKey]c.ThresholdSpec {
	return map[c.MetricKey]c.ThresholdSpec{
		// Valuation (lower is better)
		c.KeyPE:       c.ReverseCutoffs(15, 25),
		c.KeyPB:       c.ReverseCutoffs(1.5, 3),
		c.KeyPS:       c.ReverseCutoffs(2, 4),
		c.KeyPEG:      c.ReverseCutoffs(1, 2),
		c.KeyEVEBITDA: c.ReverseCutoffs(8, 12),
		c.KeyDCF:      c.Custom(c.CustomAboveCurrentPrice),

		// Profitability
		c.KeyROE:             c.Cutoffs(15, 8),
		c.KeyROIC:            c.Cutoffs(12, 7),
		c.KeyGrossMargin:     c.Cutoffs(40, 25),
		c.KeyOperatingMargin: c.Cutoffs(15, 8),
		c.KeyNetMargin:       c.Cutoffs(10, 5),
		c.KeyEPS:             c.Custom(c.CustomPositiveValue),

		// Growth
		c.KeyRevenueGrowth: c.Cutoffs(10, 3),
		c.KeyEPSGrowth:     c.Cutoffs(10, 0),

		// Shareholder return
		c.KeyDividendYield: c.Cutoffs(4, 2),
		c.KeyPayout:        c.Band(25, 75),

		// Balance sheet
		c.KeyDebtEquity:       c.ReverseCutoffs(1, 2),
		c.KeyNetDebtEBITDA:    c.ReverseCutoffs(2, 3.5),
		c.KeyCurrentRatio:     c.Cutoffs(1.5, 1),
		c.KeyInterestCoverage: c.Cutoffs(5, 2),
		c.KeyBeta:             c.Band(0.8, 1.2),
		c.KeyFCF:              c.Custom(c.CustomNonNegative),
	}
}

// sectorThresholds overrides or extends the base table per sector
func sectorThresholds() map[c.Sector]map[c.MetricKey]c.ThresholdSpec {
	return map[c.Sector]map[c.MetricKey]c.ThresholdSpec{
		c.SectorTechnology: {
			c.KeyPE:              c.ReverseCutoffs(25, 40),
			c.KeyPS:              c.ReverseCutoffs(5, 10),
			c.KeyPEG:             c.ReverseCutoffs(1.5, 2.5),
			c.KeyEVEBITDA:        c.ReverseCutoffs(15, 25),
			c.KeyROE:             c.Cutoffs(18, 10),
			c.KeyGrossMargin:     c.Cutoffs(60, 40),
			c.KeyOperatingMargin: c.Cutoffs(20, 10),
			c.KeyRevenueGrowth:   c.Cutoffs(15, 5),
			c.KeyDividendYield:   c.Cutoffs(1.5, 0.5),
			c.KeyPayout:          c.Band(0, 40),
			c.KeyDebtEquity:      c.ReverseCutoffs(0.5, 1),
			c.KeyRuleOf40:        c.Cutoffs(40, 25),
			c.KeyRDRatio:         c.Band(8, 25),
			c.KeySBCRatio:        c.ReverseCutoffs(5, 12),
		},
		c.SectorHealthcare: {
			c.KeyPE:            c.ReverseCutoffs(20, 35),
			c.KeyPS:            c.ReverseCutoffs(4, 8),
			c.KeyGrossMargin:   c.Cutoffs(55, 35),
			c.KeyRevenueGrowth: c.Cutoffs(8, 2),
			c.KeyDividendYield: c.Cutoffs(2, 1),
			c.KeyRDRatio:       c.Band(10, 30),
			c.KeyCashRunway:    c.Cutoffs(24, 12),
		},
		c.SectorRealEstate: {
			c.KeyPB:            c.ReverseCutoffs(1, 1.3),
			c.KeyDividendYield: c.Cutoffs(7, 5),
			c.KeyPayout:        c.Band(80, 100),
			c.KeyDebtEquity:    c.ReverseCutoffs(1, 1.5),
			c.KeyNetDebtEBITDA: c.ReverseCutoffs(5, 7),
			c.KeyFFOPayout:     c.ReverseCutoffs(80, 90),
			c.KeyPFFO:          c.ReverseCutoffs(15, 22),
			c.KeyOccupancy:     c.Cutoffs(93, 85),
			c.KeyLTV:           c.ReverseCutoffs(40, 60),
			c.KeyCapRate:       c.Band(5, 9),
		},
		c.SectorFinancialServices: {
			c.KeyPE:              c.ReverseCutoffs(10, 15),
			c.KeyPB:              c.ReverseCutoffs(1.2, 2),
			c.KeyDebtEquity:      c.ReverseCutoffs(8, 12),
			c.KeyDividendYield:   c.Cutoffs(6, 4),
			c.KeyPayout:          c.Band(30, 70),
			c.KeyBasel:           c.Cutoffs(14, 11),
			c.KeyEfficiencyRatio: c.ReverseCutoffs(45, 60),
			c.KeyNPL:             c.ReverseCutoffs(2.5, 4.5),
			c.KeyNIM:             c.Cutoffs(5, 3),
		},
		c.SectorEnergy: {
			c.KeyPE:            c.ReverseCutoffs(10, 16),
			c.KeyEVEBITDA:      c.ReverseCutoffs(5, 8),
			c.KeyDividendYield: c.Cutoffs(6, 3),
			c.KeyNetDebtEBITDA: c.ReverseCutoffs(1.5, 2.5),
			c.KeyReserveLife:   c.Cutoffs(12, 8),
			c.KeyBreakeven:     c.ReverseCutoffs(45, 60),
		},
		c.SectorUtilities: {
			c.KeyPE:               c.ReverseCutoffs(14, 20),
			c.KeyROE:              c.Cutoffs(12, 8),
			c.KeyRevenueGrowth:    c.Cutoffs(5, 1),
			c.KeyDividendYield:    c.Cutoffs(6, 4),
			c.KeyPayout:           c.Band(50, 90),
			c.KeyDebtEquity:       c.ReverseCutoffs(1.5, 2.5),
			c.KeyNetDebtEBITDA:    c.ReverseCutoffs(3, 4.5),
			c.KeyInterestCoverage: c.Cutoffs(3, 1.8),
			c.KeyRegulatedRevenue: c.Cutoffs(80, 60),
			c.KeyCapexIntensity:   c.Band(15, 35),
		},
		c.SectorBasicMaterials: {
			c.KeyPE:            c.ReverseCutoffs(10, 16),
			c.KeyEVEBITDA:      c.ReverseCutoffs(5, 8),
			c.KeyGrossMargin:   c.Cutoffs(30, 18),
			c.KeyDividendYield: c.Cutoffs(5, 3),
			c.KeyNetDebtEBITDA: c.ReverseCutoffs(1.5, 2.5),
			c.KeyEBITDAMargin:  c.Cutoffs(30, 18),
		},
		c.SectorIndustrials: {
			c.KeyPE:              c.ReverseCutoffs(18, 28),
			c.KeyGrossMargin:     c.Cutoffs(30, 20),
			c.KeyOperatingMargin: c.Cutoffs(12, 6),
			c.KeyBacklogCoverage: c.Cutoffs(1.2, 0.8),
			c.KeyAssetTurnover:   c.Cutoffs(0.9, 0.6),
		},
		c.SectorConsumerCyclical: {
			c.KeyPE:                c.ReverseCutoffs(18, 28),
			c.KeyGrossMargin:       c.Cutoffs(35, 22),
			c.KeyOperatingMargin:   c.Cutoffs(10, 5),
			c.KeyInventoryTurnover: c.Cutoffs(6, 4),
			c.KeySameStoreSales:    c.Cutoffs(4, 0),
		},
		c.SectorConsumerDefensive: {
			c.KeyPE:                c.ReverseCutoffs(20, 28),
			c.KeyGrossMargin:       c.Cutoffs(30, 20),
			c.KeyRevenueGrowth:     c.Cutoffs(6, 2),
			c.KeyDividendYield:     c.Cutoffs(3, 1.5),
			c.KeyPayout:            c.Band(40, 80),
			c.KeyBeta:              c.Band(0.4, 0.9),
			c.KeyInventoryTurnover: c.Cutoffs(8, 5),
		},
		c.SectorCommunicationServices: {
			c.KeyPE:             c.ReverseCutoffs(18, 30),
			c.KeyEVEBITDA:       c.ReverseCutoffs(7, 11),
			c.KeyDividendYield:  c.Cutoffs(5, 2.5),
			c.KeyNetDebtEBITDA:  c.ReverseCutoffs(2.5, 3.5),
			c.KeyChurn:          c.ReverseCutoffs(1.5, 2.5),
			c.KeyARPUGrowth:     c.Cutoffs(5, 0),
			c.KeyCapexIntensity: c.ReverseCutoffs(15, 22),
		},
	}
}

// buildThresholds merges base, sector overrides and exclusions
func buildThresholds() map[c.Sector]map[c.MetricKey]c.ThresholdSpec {
	overrides := sectorThresholds()
	out := make(map[c.Sector]map[c.MetricKey]c.ThresholdSpec, len(c.AllSectors()))

	for _, sector := range c.AllSectors() {
		table := baseThresholds()
		for key, spec := range overrides[sector] {
			table[key] = spec
		}
		for _, key := range excludedMetrics[sector] {
			delete(table, key)
		}
		out[sector] = table
	}

	return out
}
