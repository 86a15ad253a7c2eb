package inventory

import (
	"cmp"
	"fmt"
	"strings"

	"eip/internal/models"
)

// SortField selects the column a section is sorted by.
type SortField int

const (
	SortByPartNumber SortField = iota
	SortByManufacturerPartNumber
	SortByDescription
	SortByCustomerReference
	SortByUnitPrice
	SortByQuantity
)

var sortFieldNames = map[string]SortField{
	"part_number":              SortByPartNumber,
	"part":                     SortByPartNumber,
	"manufacturer_part_number": SortByManufacturerPartNumber,
	"mpn":                      SortByManufacturerPartNumber,
	"description":              SortByDescription,
	"customer_reference":       SortByCustomerReference,
	"reference":                SortByCustomerReference,
	"unit_price":               SortByUnitPrice,
	"price":                    SortByUnitPrice,
	"quantity":                 SortByQuantity,
	"qty":                      SortByQuantity,
}

// ParseSortField accepts a column label ("Unit Price") or its snake_case
// key ("unit_price") and a few short forms, case-insensitively.
func ParseSortField(name string) (SortField, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	if f, ok := sortFieldNames[key]; ok {
		return f, nil
	}
	return SortByPartNumber, fmt.Errorf("unknown sort field %q", name)
}

func (f SortField) String() string {
	switch f {
	case SortByPartNumber:
		return models.LabelPartNumber
	case SortByManufacturerPartNumber:
		return models.LabelManufacturerPartNumber
	case SortByDescription:
		return models.LabelDescription
	case SortByCustomerReference:
		return models.LabelCustomerReference
	case SortByUnitPrice:
		return models.LabelUnitPrice
	case SortByQuantity:
		return models.LabelQuantity
	default:
		return fmt.Sprintf("SortField(%d)", int(f))
	}
}

func (f SortField) compare(a, b models.Item) int {
	switch f {
	case SortByManufacturerPartNumber:
		return strings.Compare(a.ManufacturerPartNumber, b.ManufacturerPartNumber)
	case SortByDescription:
		return strings.Compare(a.Description, b.Description)
	case SortByCustomerReference:
		return strings.Compare(a.CustomerReference, b.CustomerReference)
	case SortByUnitPrice:
		return a.UnitPrice.Cmp(b.UnitPrice)
	case SortByQuantity:
		return cmp.Compare(a.Quantity, b.Quantity)
	default:
		return strings.Compare(a.PartNumber, b.PartNumber)
	}
}
