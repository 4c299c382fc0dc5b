package parlay

import "github.com/xtding233/payout-engine/internal/contract"

// DataTypeInfo describes an observable and the range charts sweep it over.
type DataTypeInfo struct {
	Type  contract.DataType `json:"type"`
	Label string            `json:"label"`
	Unit  string            `json:"unit"`
	Min   float64           `json:"min"`
	Max   float64           `json:"max"`
}

var catalog = []DataTypeInfo{
	{Type: contract.Price, Label: "BTC Price", Unit: "USD", Min: 10_000, Max: 100_000},
	{Type: contract.Hashrate, Label: "Network Hashrate", Unit: "EH/s", Min: 100, Max: 500},
	{Type: contract.Difficulty, Label: "Mining Difficulty", Unit: "", Min: 2e13, Max: 6e13},
}

// DataTypes lists every known data type.
func DataTypes() []DataTypeInfo {
	return append([]DataTypeInfo(nil), catalog...)
}

func LookupDataType(t contract.DataType) (DataTypeInfo, bool) {
	for _, info := range catalog {
		if info.Type == t {
			return info, true
		}
	}
	return DataTypeInfo{}, false
}
