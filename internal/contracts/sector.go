package contracts

import (
	"fmt"
	"strings"
)

// Sector identifies the market sector partition of the catalogs
// ⭐ SSOT: 섹터 목록은 여기서만 정의
type Sector string

const (
	SectorTechnology            Sector = "Technology"
	SectorHealthcare            Sector = "Healthcare"
	SectorRealEstate            Sector = "Real Estate"
	SectorFinancialServices     Sector = "Financial Services"
	SectorEnergy                Sector = "Energy"
	SectorUtilities             Sector = "Utilities"
	SectorBasicMaterials        Sector = "Basic Materials"
	SectorIndustrials           Sector = "Industrials"
	SectorConsumerCyclical      Sector = "Consumer Cyclical"
	SectorConsumerDefensive     Sector = "Consumer Defensive"
	SectorCommunicationServices Sector = "Communication Services"
)

// AllSectors returns the closed sector set in display order
func AllSectors() []Sector {
	return []Sector{
		SectorTechnology,
		SectorHealthcare,
		SectorRealEstate,
		SectorFinancialServices,
		SectorEnergy,
		SectorUtilities,
		SectorBasicMaterials,
		SectorIndustrials,
		SectorConsumerCyclical,
		SectorConsumerDefensive,
		SectorCommunicationServices,
	}
}

// Valid reports whether s belongs to the closed sector set
func (s Sector) Valid() bool {
	for _, known := range AllSectors() {
		if s == known {
			return true
		}
	}
	return false
}

func (s Sector) String() string {
	return string(s)
}

// sectorAliases maps squashed provider spellings to sectors
var sectorAliases = map[string]Sector{
	"technology":             SectorTechnology,
	"tech":                   SectorTechnology,
	"informationtechnology":  SectorTechnology,
	"tecnologia":             SectorTechnology,
	"healthcare":             SectorHealthcare,
	"health":                 SectorHealthcare,
	"saude":                  SectorHealthcare,
	"realestate":             SectorRealEstate,
	"reit":                   SectorRealEstate,
	"reits":                  SectorRealEstate,
	"fii":                    SectorRealEstate,
	"fiis":                   SectorRealEstate,
	"imobiliario":            SectorRealEstate,
	"financialservices":      SectorFinancialServices,
	"financials":             SectorFinancialServices,
	"financial":              SectorFinancialServices,
	"financeiro":             SectorFinancialServices,
	"energy":                 SectorEnergy,
	"energia":                SectorEnergy,
	"utilities":              SectorUtilities,
	"utility":                SectorUtilities,
	"basicmaterials":         SectorBasicMaterials,
	"materials":              SectorBasicMaterials,
	"materiaisbasicos":       SectorBasicMaterials,
	"industrials":            SectorIndustrials,
	"industrial":             SectorIndustrials,
	"consumercyclical":       SectorConsumerCyclical,
	"consumerdiscretionary":  SectorConsumerCyclical,
	"consumodiscricionario":  SectorConsumerCyclical,
	"consumerdefensive":      SectorConsumerDefensive,
	"consumerstaples":        SectorConsumerDefensive,
	"consumonaociclico":      SectorConsumerDefensive,
	"communicationservices":  SectorCommunicationServices,
	"communication":          SectorCommunicationServices,
	"telecom":                SectorCommunicationServices,
	"telecommunications":     SectorCommunicationServices,
	"telecomunicacoes":       SectorCommunicationServices,
}

// ParseSector normalizes a free-text sector name ("Health Care", "REIT")
// API/CLI 경계에서만 사용, 코어는 항상 정규화된 Sector를 받음
func ParseSector(raw string) (Sector, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if s, ok := sectorAliases[b.String()]; ok {
		return s, nil
	}
	return "", fmt.Errorf("unknown sector %q", raw)
}
