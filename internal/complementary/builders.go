package complementary

import (
	"github.com/wonny/quickrate/internal/contracts"
)

// Build runs the sector builder for p and returns a bag tagged with its sector.
// Inputs that are blank or unparsable never appear in the bag, and neither do
// metrics derived from them.
func Build(p Props) *Bag {
	if p == nil {
		return nil
	}
	bb := &builder{values: make(map[contracts.MetricKey]float64)}
	p.build(bb)
	return &Bag{sector: p.Sector(), values: bb.values}
}

// BuildRaw decodes a raw provider object for sector and builds its bag
func BuildRaw(sector contracts.Sector, raw []byte) (*Bag, error) {
	props, err := DecodeProps(sector, raw)
	if err != nil {
		return nil, err
	}
	return Build(props), nil
}

func ratio(scale float64) func(v []float64) (float64, bool) {
	return func(v []float64) (float64, bool) {
		if v[1] == 0 {
			return 0, false
		}
		return v[0] / v[1] * scale, true
	}
}

func sum(v []float64) (float64, bool) {
	total := 0.0
	for _, x := range v {
		total += x
	}
	return total, true
}

func product(v []float64) (float64, bool) {
	return v[0] * v[1], true
}

func (p TechnologyProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyRDRatio, p.RDRatio)
	bb.put(contracts.KeySBCRatio, p.SBCRatio)

	bb.derive(contracts.KeyRuleOf40, sum, contracts.KeyRevenueGrowth, contracts.KeyOperatingMargin)
	bb.derive(contracts.KeyOperationalEfficiency, ratio(100), contracts.KeyOperatingMargin, contracts.KeyGrossMargin)
}

func (p HealthcareProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyRDRatio, p.RDRatio)

	// runway in months: cash over quarterly burn, three months per quarter
	cash, okCash := ParseNumber(p.CashBalance)
	burn, okBurn := ParseNumber(p.QuarterlyCashBurn)
	if okCash && okBurn && burn > 0 {
		if months := cash / burn * 3; isFinite(months) {
			bb.values[contracts.KeyCashRunway] = months
		}
	}
}

func (p RealEstateProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyFFOPayout, p.FFOPayout)
	bb.put(contracts.KeyOccupancy, p.Occupancy)
	bb.put(contracts.KeyLTV, p.LTV)

	if payout, ok := bb.get(contracts.KeyFFOPayout); ok && payout > 0 {
		bb.values[contracts.KeyFFOCoverage] = 100 / payout * 100
	}
	if ffo, ok := ParseNumber(p.FFOPerShare); ok && ffo > 0 {
		bb.derive(contracts.KeyPFFO, func(v []float64) (float64, bool) {
			return v[0] / ffo, true
		}, contracts.KeyCurrentPrice)
	}
}

func (p FinancialServicesProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyBasel, p.Basel)
	bb.put(contracts.KeyNPL, p.NPL)

	assets, okA := ParseNumber(p.TotalAssets)
	equity, okE := ParseNumber(p.Equity)
	if okA && okE && equity > 0 {
		bb.values[contracts.KeyLeverageProxy] = assets / equity
	}
}

func (p EnergyProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyReserveLife, p.ReserveLife)
	bb.put(contracts.KeyBreakeven, p.Breakeven)
	reinvestment(bb, p.Capex, p.OperatingCashFlow)
}

func (p UtilitiesProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyRegulatedRevenue, p.RegulatedRevenue)
	bb.put(contracts.KeyCapexIntensity, p.CapexIntensity)
	reinvestment(bb, p.Capex, p.OperatingCashFlow)
}

func (p BasicMaterialsProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyEBITDAMargin, p.EBITDAMargin)
	cashConversion(bb, p.OperatingCashFlow, p.NetIncome)
}

func (p IndustrialsProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyBacklogCoverage, p.BacklogCoverage)
	bb.put(contracts.KeyAssetTurnover, p.AssetTurnover)

	bb.derive(contracts.KeyAssetEfficiency, product, contracts.KeyNetMargin, contracts.KeyAssetTurnover)
}

func (p ConsumerCyclicalProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyInventoryTurnover, p.InventoryTurnover)
	bb.put(contracts.KeySameStoreSales, p.SameStoreSales)

	// only meaningful while the top line is growing
	if g, ok := bb.get(contracts.KeyRevenueGrowth); ok && g > 0 {
		bb.derive(contracts.KeyGrowthQuality, ratio(100), contracts.KeySameStoreSales, contracts.KeyRevenueGrowth)
	}
}

func (p ConsumerDefensiveProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyInventoryTurnover, p.InventoryTurnover)
	cashConversion(bb, p.OperatingCashFlow, p.NetIncome)
}

func (p CommunicationServicesProps) build(bb *builder) {
	p.CommonProps.build(bb)
	bb.put(contracts.KeyChurn, p.Churn)
	bb.put(contracts.KeyARPUGrowth, p.ARPUGrowth)
	bb.put(contracts.KeyCapexIntensity, p.CapexIntensity)
}

func reinvestment(bb *builder, rawCapex, rawOCF string) {
	capex, ok1 := ParseNumber(rawCapex)
	ocf, ok2 := ParseNumber(rawOCF)
	if ok1 && ok2 && ocf > 0 {
		bb.values[contracts.KeyReinvestmentRate] = capex / ocf * 100
	}
}

func cashConversion(bb *builder, rawOCF, rawNetIncome string) {
	ocf, ok1 := ParseNumber(rawOCF)
	ni, ok2 := ParseNumber(rawNetIncome)
	if ok1 && ok2 && ni > 0 {
		bb.values[contracts.KeyCashConversion] = ocf / ni * 100
	}
}
