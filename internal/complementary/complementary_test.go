package complementary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickrate/internal/contracts"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{"12,5%", 12.5, true},
		{"1.234,56", 1234.56, true},
		{"1,234.56", 1234.56, true},
		{"R$ 30,10", 30.10, true},
		{"US$ 7.25", 7.25, true},
		{"8.3x", 8.3, true},
		{"-4,2", -4.2, true},
		{"1.234", 1234, true},
		{"250.000", 250000, true},
		{"1.234.567", 1234567, true},
		{"-1.234.567", -1234567, true},
		{"1,234,567", 1234567, true},
		{"R$ 1.500.000", 1500000, true},
		{"0.125", 0.125, true},
		{"12.34", 12.34, true},
		{"1.2.3", 0, false},
		{"1.23.456", 0, false},
		{"", 0, false},
		{"  ", 0, false},
		{"-", 0, false},
		{"N/A", 0, false},
		{"NaN", 0, false},
		{"abc", 0, false},
		{"Inf", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseNumber(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestBuild_SectorTag(t *testing.T) {
	for _, sector := range contracts.AllSectors() {
		props, err := NewProps(sector)
		require.NoError(t, err)

		bag := Build(props)
		assert.Equal(t, sector, bag.Sector())
		assert.Zero(t, bag.Len(), "empty props give an empty bag")
	}
}

func TestBuild_BlankInputsAreAbsent(t *testing.T) {
	bag := Build(TechnologyProps{
		CommonProps: CommonProps{
			RevenueGrowth:   "",
			OperatingMargin: "22",
			GrossMargin:     "n/a",
		},
	})

	_, ok := bag.Get(contracts.KeyRevenueGrowth)
	assert.False(t, ok)
	_, ok = bag.Get(contracts.KeyRuleOf40)
	assert.False(t, ok, "derived metric needs every input")
	_, ok = bag.Get(contracts.KeyOperationalEfficiency)
	assert.False(t, ok)

	v, ok := bag.Get(contracts.KeyOperatingMargin)
	require.True(t, ok)
	assert.Equal(t, 22.0, v)
}

func TestBuild_DerivedMetrics(t *testing.T) {
	tests := []struct {
		name  string
		props Props
		key   contracts.MetricKey
		want  float64
	}{
		{
			name: "rule of 40",
			props: TechnologyProps{CommonProps: CommonProps{
				RevenueGrowth: "25", OperatingMargin: "20", GrossMargin: "80",
			}},
			key:  contracts.KeyRuleOf40,
			want: 45,
		},
		{
			name: "operational efficiency",
			props: TechnologyProps{CommonProps: CommonProps{
				OperatingMargin: "20", GrossMargin: "80",
			}},
			key:  contracts.KeyOperationalEfficiency,
			want: 25,
		},
		{
			name:  "cash runway",
			props: HealthcareProps{CashBalance: "1200", QuarterlyCashBurn: "300"},
			key:   contracts.KeyCashRunway,
			want:  12,
		},
		{
			name:  "ffo coverage",
			props: RealEstateProps{FFOPayout: "80"},
			key:   contracts.KeyFFOCoverage,
			want:  125,
		},
		{
			name:  "p/ffo",
			props: RealEstateProps{CommonProps: CommonProps{CurrentPrice: "R$ 30,00"}, FFOPerShare: "2,5"},
			key:   contracts.KeyPFFO,
			want:  12,
		},
		{
			name:  "leverage proxy",
			props: FinancialServicesProps{TotalAssets: "1000", Equity: "100"},
			key:   contracts.KeyLeverageProxy,
			want:  10,
		},
		{
			name:  "reinvestment rate",
			props: EnergyProps{Capex: "40", OperatingCashFlow: "80"},
			key:   contracts.KeyReinvestmentRate,
			want:  50,
		},
		{
			name:  "cash conversion",
			props: ConsumerDefensiveProps{OperatingCashFlow: "120", NetIncome: "100"},
			key:   contracts.KeyCashConversion,
			want:  120,
		},
		{
			name:  "asset efficiency",
			props: IndustrialsProps{CommonProps: CommonProps{NetMargin: "8"}, AssetTurnover: "1.5"},
			key:   contracts.KeyAssetEfficiency,
			want:  12,
		},
		{
			name:  "growth quality",
			props: ConsumerCyclicalProps{CommonProps: CommonProps{RevenueGrowth: "10"}, SameStoreSales: "5"},
			key:   contracts.KeyGrowthQuality,
			want:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := Build(tt.props)
			got, ok := bag.Get(tt.key)
			require.True(t, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestBuild_GuardsDivision(t *testing.T) {
	bag := Build(HealthcareProps{CashBalance: "1000", QuarterlyCashBurn: "0"})
	_, ok := bag.Get(contracts.KeyCashRunway)
	assert.False(t, ok)

	bag = Build(ConsumerCyclicalProps{CommonProps: CommonProps{RevenueGrowth: "-3"}, SameStoreSales: "2"})
	_, ok = bag.Get(contracts.KeyGrowthQuality)
	assert.False(t, ok, "shrinking revenue has no growth quality")

	bag = Build(RealEstateProps{FFOPayout: "0"})
	_, ok = bag.Get(contracts.KeyFFOCoverage)
	assert.False(t, ok)
}

func TestBuildRaw(t *testing.T) {
	bag, err := BuildRaw(contracts.SectorRealEstate, []byte(`{"ffo_payout":"95","occupancy":"91,5"}`))
	require.NoError(t, err)
	assert.Equal(t, contracts.SectorRealEstate, bag.Sector())

	v, ok := bag.Get(contracts.KeyOccupancy)
	require.True(t, ok)
	assert.Equal(t, 91.5, v)

	_, err = BuildRaw(contracts.SectorRealEstate, []byte(`{"churn":"2"}`))
	assert.Error(t, err, "churn is not a real estate field")

	bag, err = BuildRaw(contracts.SectorEnergy, nil)
	require.NoError(t, err)
	assert.Zero(t, bag.Len())

	_, err = BuildRaw(contracts.Sector("Crypto"), []byte(`{}`))
	assert.Error(t, err)
}

func TestBag(t *testing.T) {
	values := map[contracts.MetricKey]float64{contracts.KeyPEG: 1.2, contracts.KeyROE: 18}
	bag := NewBag(contracts.SectorTechnology, values)
	values[contracts.KeyPEG] = 99

	v, _ := bag.Get(contracts.KeyPEG)
	assert.Equal(t, 1.2, v, "bag owns a copy")
	assert.Equal(t, []contracts.MetricKey{contracts.KeyPEG, contracts.KeyROE}, bag.Keys())

	out := bag.Values()
	out[contracts.KeyROE] = 0
	v, _ = bag.Get(contracts.KeyROE)
	assert.Equal(t, 18.0, v)

	data, err := json.Marshal(bag)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sector":"Technology","values":{"peg":1.2,"roe":18}}`, string(data))

	var nilBag *Bag
	_, ok := nilBag.Get(contracts.KeyPEG)
	assert.False(t, ok)
	assert.Zero(t, nilBag.Len())
	assert.Empty(t, nilBag.Sector())
}

func TestFromValues(t *testing.T) {
	bag, dropped := FromValues(contracts.SectorHealthcare, map[string]float64{
		"cash_runway": 6,
		"peg":         1.2,
		"zzz":         1,
		"":            2,
	})

	assert.Equal(t, contracts.SectorHealthcare, bag.Sector())
	assert.Equal(t, []string{"", "zzz"}, dropped)

	v, ok := bag.Get(contracts.KeyCashRunway)
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
	assert.Equal(t, 2, bag.Len())
}

func TestBag_With(t *testing.T) {
	base := NewBag(contracts.SectorTechnology, map[contracts.MetricKey]float64{
		contracts.KeyPEG: 1.2,
		contracts.KeyROE: 20,
	})

	merged := base.With(map[contracts.MetricKey]float64{contracts.KeyPEG: 3})

	v, _ := merged.Get(contracts.KeyPEG)
	assert.Equal(t, 3.0, v)
	v, _ = merged.Get(contracts.KeyROE)
	assert.Equal(t, 20.0, v)
	assert.Equal(t, contracts.SectorTechnology, merged.Sector())

	v, _ = base.Get(contracts.KeyPEG)
	assert.Equal(t, 1.2, v, "base bag is unchanged")
}
