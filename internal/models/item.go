package models

import (
	"github.com/shopspring/decimal"
)

// Sheet column labels. A sheet must carry all of them to be read.
const (
	LabelPartNumber             = "Part Number"
	LabelManufacturerPartNumber = "Manufacturer Part Number"
	LabelDescription            = "Description"
	LabelCustomerReference      = "Customer Reference"
	LabelUnitPrice              = "Unit Price"
	LabelQuantity               = "Quantity"

	// LabelDistributorPartNumber is accepted in place of LabelPartNumber,
	// distributor order exports use it.
	LabelDistributorPartNumber = "Digi-Key Part #"
)

// Labels returns the column labels in sheet order.
func Labels() []string {
	return []string{
		LabelPartNumber,
		LabelManufacturerPartNumber,
		LabelDescription,
		LabelCustomerReference,
		LabelUnitPrice,
		LabelQuantity,
	}
}

// Item is one inventory line: a part, what it is and how many at what price.
type Item struct {
	PartNumber             string          `json:"part_number" yaml:"part_number"`
	ManufacturerPartNumber string          `json:"manufacturer_part_number" yaml:"manufacturer_part_number"`
	Description            string          `json:"description" yaml:"description"`
	CustomerReference      string          `json:"customer_reference" yaml:"customer_reference"`
	UnitPrice              decimal.Decimal `json:"unit_price" yaml:"unit_price"`
	Quantity               int             `json:"quantity" yaml:"quantity"`
}

// Total returns Quantity × UnitPrice.
func (i Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Equal compares every field, prices by value rather than representation.
func (i Item) Equal(other Item) bool {
	return i.PartNumber == other.PartNumber &&
		i.ManufacturerPartNumber == other.ManufacturerPartNumber &&
		i.Description == other.Description &&
		i.CustomerReference == other.CustomerReference &&
		i.UnitPrice.Equal(other.UnitPrice) &&
		i.Quantity == other.Quantity
}
