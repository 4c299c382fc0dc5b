package contract

// OracleInput names the oracle(s) that will attest the outcome.
type OracleInput struct {
	PublicKeys []string `json:"publicKeys" yaml:"public_keys"`
	EventID    string   `json:"eventId" yaml:"event_id"`
	Threshold  int      `json:"threshold" yaml:"threshold"`
}

// OracleNumericInfo describes how the oracle encodes an outcome:
// NbDigits digits in Base per oracle.
type OracleNumericInfo struct {
	Base     int   `json:"base" yaml:"base"`
	NbDigits []int `json:"nbDigits" yaml:"nb_digits"`
}

// DefaultOracleNumericInfo is the dashboard default: one base-2 oracle with 20 digits.
func DefaultOracleNumericInfo() OracleNumericInfo {
	return OracleNumericInfo{Base: 2, NbDigits: []int{20}}
}

// MaxOutcome returns the largest outcome every oracle can attest.
func (o OracleNumericInfo) MaxOutcome() int64 {
	if o.Base < 2 || len(o.NbDigits) == 0 {
		return 0
	}
	minDigits := o.NbDigits[0]
	for _, d := range o.NbDigits[1:] {
		if d < minDigits {
			minDigits = d
		}
	}
	v := int64(1)
	for i := 0; i < minDigits; i++ {
		if v > MaxDomain {
			break
		}
		v *= int64(o.Base)
	}
	return v - 1
}

// NumericalDescriptor is the payout part of a contract sent to a counterparty.
type NumericalDescriptor struct {
	PayoutCurve       PayoutCurve       `json:"payoutFunction"`
	RoundingIntervals RoundingIntervals `json:"roundingIntervals"`
	OracleNumericInfo OracleNumericInfo `json:"oracleNumericInfo"`
}

type ContractInfo struct {
	Oracle     OracleInput         `json:"oracleInput"`
	Descriptor NumericalDescriptor `json:"contractDescriptor"`
}

// ContractInput is the artifact produced at contract creation time.
type ContractInput struct {
	OfferCollateral  int64          `json:"offerCollateral"`
	AcceptCollateral int64          `json:"acceptCollateral"`
	FeeRate          int64          `json:"feeRate"`
	ContractInfos    []ContractInfo `json:"contractInfos"`
}

// TotalCollateral is the amount locked by both parties.
func (c ContractInput) TotalCollateral() int64 {
	return c.OfferCollateral + c.AcceptCollateral
}
