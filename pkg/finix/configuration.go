// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package finix

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration selects the financial formulas and required registration fields used
// when building payloads for a merchant.
//
// The set is closed: every variant is its own type and has to implement each formula
// below, so adding a variant does not compile until all of them are written.
type Configuration interface {
	fmt.Stringer

	// Processor is the processor a merchant under this configuration is provisioned on.
	Processor() string

	annualVolume(v volumes) float64

	// achVolumes is true when the configuration is sized by ACH rather than card volumes.
	achVolumes() bool

	// required lists the registration fields this configuration's formulas read.
	required() []requirement

	// cardPresentPricing is true when the fee profile is priced from card-present rates.
	cardPresentPricing() bool
}

const (
	processorLitle  = "LITLE_V1"
	processorVantiv = "VANTIV_V1"
)

var (
	LitleCNP    Configuration = litleCNP{}
	LitleACH    Configuration = litleACH{}
	LitleCNPACH Configuration = litleCNPACH{}
	CoreCP      Configuration = coreCP{}
	CoreCNP     Configuration = coreCNP{}
	CoreCNPCP   Configuration = coreCNPCP{}

	// Configurations lists every variant.
	Configurations = []Configuration{LitleCNP, LitleACH, LitleCNPACH, CoreCP, CoreCNP, CoreCNPCP}
)

// ErrMissingConfiguration is returned when a formula is asked for without a Configuration.
var ErrMissingConfiguration = errors.New("missing configuration")

// ParseConfiguration returns the Configuration with the given name, e.g. "Core_CP".
func ParseConfiguration(name string) (Configuration, error) {
	name = strings.TrimSpace(name)
	for i := range Configurations {
		if Configurations[i].String() == name {
			return Configurations[i], nil
		}
	}
	return nil, fmt.Errorf("unknown configuration %q", name)
}

// volumes are the sanitized inputs of the annual volume formulas.
type volumes struct {
	card           float64
	ach            float64
	cardPresent    float64 // percent
	cardNotPresent float64 // percent
}

type litleCNP struct{}

func (litleCNP) String() string    { return "Litle_CNP" }
func (litleCNP) Processor() string { return processorLitle }
func (litleCNP) annualVolume(v volumes) float64 {
	return v.card * (v.cardNotPresent / 100)
}
func (litleCNP) achVolumes() bool { return false }
func (litleCNP) required() []requirement {
	return []requirement{needAnnualVolume, needCardNotPresentPercent}
}
func (litleCNP) cardPresentPricing() bool { return false }

type litleACH struct{}

func (litleACH) String() string    { return "Litle_ACH" }
func (litleACH) Processor() string { return processorLitle }
func (litleACH) annualVolume(v volumes) float64 {
	return v.ach
}
func (litleACH) achVolumes() bool { return true }
func (litleACH) required() []requirement {
	return []requirement{needAnnualGrossACHRevenue}
}
func (litleACH) cardPresentPricing() bool { return false }

type litleCNPACH struct{}

func (litleCNPACH) String() string    { return "Litle_CNP_ACH" }
func (litleCNPACH) Processor() string { return processorLitle }
func (litleCNPACH) annualVolume(v volumes) float64 {
	return v.ach + v.card*(v.cardNotPresent/100)
}
func (litleCNPACH) achVolumes() bool { return true }
func (litleCNPACH) required() []requirement {
	return []requirement{needAnnualGrossACHRevenue, needAnnualVolume, needCardNotPresentPercent}
}
func (litleCNPACH) cardPresentPricing() bool { return false }

type coreCP struct{}

func (coreCP) String() string    { return "Core_CP" }
func (coreCP) Processor() string { return processorVantiv }
func (coreCP) annualVolume(v volumes) float64 {
	return v.card * (v.cardPresent / 100)
}
func (coreCP) achVolumes() bool { return false }
func (coreCP) required() []requirement {
	// the last two price the fee profile
	return []requirement{needAnnualVolume, needCardPresentPercent, needCardPresentTransactionRate, needCardPresentPerItemRate}
}
func (coreCP) cardPresentPricing() bool { return true }

type coreCNP struct{}

func (coreCNP) String() string    { return "Core_CNP" }
func (coreCNP) Processor() string { return processorVantiv }
func (coreCNP) annualVolume(v volumes) float64 {
	return v.card * (v.cardNotPresent / 100)
}
func (coreCNP) achVolumes() bool { return false }
func (coreCNP) required() []requirement {
	return []requirement{needAnnualVolume, needCardNotPresentPercent}
}
func (coreCNP) cardPresentPricing() bool { return false }

type coreCNPCP struct{}

func (coreCNPCP) String() string    { return "Core_CNP_CP" }
func (coreCNPCP) Processor() string { return processorVantiv }
func (coreCNPCP) annualVolume(v volumes) float64 {
	return v.card
}
func (coreCNPCP) achVolumes() bool { return false }
func (coreCNPCP) required() []requirement {
	return []requirement{needAnnualVolume}
}
func (coreCNPCP) cardPresentPricing() bool { return false }

// Channel is how a merchant's card volume was reported on the registration.
type Channel string

const (
	KeyedTransactions Channel = "keyed-transactions"
	ShoppingCart      Channel = "shopping-cart"
)

// ParseChannel reads a processing info type. Empty values mean keyed transactions.
func ParseChannel(v string) (Channel, error) {
	switch c := Channel(strings.ToLower(strings.TrimSpace(v))); c {
	case "", KeyedTransactions:
		return KeyedTransactions, nil
	case ShoppingCart:
		return ShoppingCart, nil
	default:
		return "", fmt.Errorf("unknown processing info type %q", v)
	}
}
