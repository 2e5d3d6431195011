package complementary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/wonny/quickrate/internal/contracts"
)

// Props is the raw per-sector input of a builder. The interface is sealed:
// only the sector props types below implement it.
type Props interface {
	Sector() contracts.Sector
	build(bb *builder)
}

// CommonProps are raw provider fields every sector carries
type CommonProps struct {
	CurrentPrice     string `json:"current_price"`
	PEG              string `json:"peg"`
	ROE              string `json:"roe"`
	GrossMargin      string `json:"gross_margin"`
	OperatingMargin  string `json:"operating_margin"`
	NetMargin        string `json:"net_margin"`
	RevenueGrowth    string `json:"revenue_growth"`
	Payout           string `json:"payout"`
	DebtEquity       string `json:"debt_equity"`
	NetDebtEBITDA    string `json:"net_debt_ebitda"`
	InterestCoverage string `json:"interest_coverage"`
	FCF              string `json:"fcf"`
}

func (p CommonProps) build(bb *builder) {
	bb.put(contracts.KeyCurrentPrice, p.CurrentPrice)
	bb.put(contracts.KeyPEG, p.PEG)
	bb.put(contracts.KeyROE, p.ROE)
	bb.put(contracts.KeyGrossMargin, p.GrossMargin)
	bb.put(contracts.KeyOperatingMargin, p.OperatingMargin)
	bb.put(contracts.KeyNetMargin, p.NetMargin)
	bb.put(contracts.KeyRevenueGrowth, p.RevenueGrowth)
	bb.put(contracts.KeyPayout, p.Payout)
	bb.put(contracts.KeyDebtEquity, p.DebtEquity)
	bb.put(contracts.KeyNetDebtEBITDA, p.NetDebtEBITDA)
	bb.put(contracts.KeyInterestCoverage, p.InterestCoverage)
	bb.put(contracts.KeyFCF, p.FCF)
}

// TechnologyProps feeds the Technology builder
type TechnologyProps struct {
	CommonProps
	RDRatio  string `json:"rd_ratio"`
	SBCRatio string `json:"sbc_ratio"`
}

// HealthcareProps feeds the Healthcare builder
type HealthcareProps struct {
	CommonProps
	RDRatio           string `json:"rd_ratio"`
	CashBalance       string `json:"cash_balance"`
	QuarterlyCashBurn string `json:"quarterly_cash_burn"`
}

// RealEstateProps feeds the Real Estate builder
type RealEstateProps struct {
	CommonProps
	FFOPayout   string `json:"ffo_payout"`
	FFOPerShare string `json:"ffo_per_share"`
	Occupancy   string `json:"occupancy"`
	LTV         string `json:"ltv"`
}

// FinancialServicesProps feeds the Financial Services builder
type FinancialServicesProps struct {
	CommonProps
	Basel       string `json:"basel"`
	NPL         string `json:"npl"`
	TotalAssets string `json:"total_assets"`
	Equity      string `json:"equity"`
}

// EnergyProps feeds the Energy builder
type EnergyProps struct {
	CommonProps
	ReserveLife       string `json:"reserve_life"`
	Breakeven         string `json:"breakeven"`
	Capex             string `json:"capex"`
	OperatingCashFlow string `json:"operating_cash_flow"`
}

// UtilitiesProps feeds the Utilities builder
type UtilitiesProps struct {
	CommonProps
	RegulatedRevenue  string `json:"regulated_revenue"`
	CapexIntensity    string `json:"capex_intensity"`
	Capex             string `json:"capex"`
	OperatingCashFlow string `json:"operating_cash_flow"`
}

// BasicMaterialsProps feeds the Basic Materials builder
type BasicMaterialsProps struct {
	CommonProps
	EBITDAMargin      string `json:"ebitda_margin"`
	OperatingCashFlow string `json:"operating_cash_flow"`
	NetIncome         string `json:"net_income"`
}

// IndustrialsProps feeds the Industrials builder
type IndustrialsProps struct {
	CommonProps
	BacklogCoverage string `json:"backlog_coverage"`
	AssetTurnover   string `json:"asset_turnover"`
}

// ConsumerCyclicalProps feeds the Consumer Cyclical builder
type ConsumerCyclicalProps struct {
	CommonProps
	InventoryTurnover string `json:"inventory_turnover"`
	SameStoreSales    string `json:"same_store_sales"`
}

// ConsumerDefensiveProps feeds the Consumer Defensive builder
type ConsumerDefensiveProps struct {
	CommonProps
	InventoryTurnover string `json:"inventory_turnover"`
	OperatingCashFlow string `json:"operating_cash_flow"`
	NetIncome         string `json:"net_income"`
}

// CommunicationServicesProps feeds the Communication Services builder
type CommunicationServicesProps struct {
	CommonProps
	Churn          string `json:"churn"`
	ARPUGrowth     string `json:"arpu_growth"`
	CapexIntensity string `json:"capex_intensity"`
}

func (TechnologyProps) Sector() contracts.Sector { return contracts.SectorTechnology }
func (HealthcareProps) Sector() contracts.Sector { return contracts.SectorHealthcare }
func (RealEstateProps) Sector() contracts.Sector { return contracts.SectorRealEstate }
func (FinancialServicesProps) Sector() contracts.Sector { return contracts.SectorFinancialServices }
func (EnergyProps) Sector() contracts.Sector { return contracts.SectorEnergy }
func (UtilitiesProps) Sector() contracts.Sector { return contracts.SectorUtilities }
func (BasicMaterialsProps) Sector() contracts.Sector { return contracts.SectorBasicMaterials }
func (IndustrialsProps) Sector() contracts.Sector { return contracts.SectorIndustrials }
func (ConsumerCyclicalProps) Sector() contracts.Sector { return contracts.SectorConsumerCyclical }
func (ConsumerDefensiveProps) Sector() contracts.Sector { return contracts.SectorConsumerDefensive }
func (CommunicationServicesProps) Sector() contracts.Sector { return contracts.SectorCommunicationServices }

// NewProps returns an empty props value for sector
func NewProps(sector contracts.Sector) (Props, error) {
	switch sector {
	case contracts.SectorTechnology:
		return &TechnologyProps{}, nil
	case contracts.SectorHealthcare:
		return &HealthcareProps{}, nil
	case contracts.SectorRealEstate:
		return &RealEstateProps{}, nil
	case contracts.SectorFinancialServices:
		return &FinancialServicesProps{}, nil
	case contracts.SectorEnergy:
		return &EnergyProps{}, nil
	case contracts.SectorUtilities:
		return &UtilitiesProps{}, nil
	case contracts.SectorBasicMaterials:
		return &BasicMaterialsProps{}, nil
	case contracts.SectorIndustrials:
		return &IndustrialsProps{}, nil
	case contracts.SectorConsumerCyclical:
		return &ConsumerCyclicalProps{}, nil
	case contracts.SectorConsumerDefensive:
		return &ConsumerDefensiveProps{}, nil
	case contracts.SectorCommunicationServices:
		return &CommunicationServicesProps{}, nil
	default:
		return nil, fmt.Errorf("no complementary builder for sector %q", sector)
	}
}

// DecodeProps maps a raw JSON object onto the sector's props type.
// Unknown fields are rejected so provider field drift surfaces early.
func DecodeProps(sector contracts.Sector, raw json.RawMessage) (Props, error) {
	props, err := NewProps(sector)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return props, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(props); err != nil {
		return nil, fmt.Errorf("decode %s props: %w", sector, err)
	}
	return props, nil
}
