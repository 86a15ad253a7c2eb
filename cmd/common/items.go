package common

import (
	"fmt"
	"io"

	"eip/internal/models"
	"eip/internal/validation"

	"github.com/spf13/cobra"
)

// ItemFlags holds the item fields entered on the command line.
type ItemFlags struct {
	PartNumber             string
	ManufacturerPartNumber string
	Description            string
	CustomerReference      string
	UnitPrice              string
	Quantity               string
}

// Item flag names.
const (
	FlagPartNumber             = "part-number"
	FlagManufacturerPartNumber = "mpn"
	FlagDescription            = "description"
	FlagCustomerReference      = "reference"
	FlagUnitPrice              = "price"
	FlagQuantity               = "quantity"
)

// Register adds the item flags to cmd. descriptionFlag names the flag
// holding the description, so edit can keep --description for the lookup.
func (f *ItemFlags) Register(cmd *cobra.Command, descriptionFlag string) {
	cmd.Flags().StringVarP(&f.PartNumber, FlagPartNumber, "p", "", "Distributor part number")
	cmd.Flags().StringVarP(&f.ManufacturerPartNumber, FlagManufacturerPartNumber, "m", "", "Manufacturer part number")
	cmd.Flags().StringVarP(&f.Description, descriptionFlag, "d", "", "Part description")
	cmd.Flags().StringVarP(&f.CustomerReference, FlagCustomerReference, "r", "", "Customer reference")
	cmd.Flags().StringVar(&f.UnitPrice, FlagUnitPrice, "", "Unit price")
	cmd.Flags().StringVarP(&f.Quantity, FlagQuantity, "q", "", "Quantity")
}

// Input returns the flags as validation input.
func (f *ItemFlags) Input() validation.ItemInput {
	return validation.ItemInput{
		PartNumber:             f.PartNumber,
		ManufacturerPartNumber: f.ManufacturerPartNumber,
		Description:            f.Description,
		CustomerReference:      f.CustomerReference,
		UnitPrice:              f.UnitPrice,
		Quantity:               f.Quantity,
	}
}

// Overlay returns base as validation input with every flag that was set on
// cmd replacing the matching field.
func (f *ItemFlags) Overlay(cmd *cobra.Command, base models.Item, descriptionFlag string) validation.ItemInput {
	input := validation.ItemInput{
		PartNumber:             base.PartNumber,
		ManufacturerPartNumber: base.ManufacturerPartNumber,
		Description:            base.Description,
		CustomerReference:      base.CustomerReference,
		UnitPrice:              base.UnitPrice.String(),
		Quantity:               fmt.Sprint(base.Quantity),
	}
	changed := cmd.Flags().Changed
	if changed(FlagPartNumber) {
		input.PartNumber = f.PartNumber
	}
	if changed(FlagManufacturerPartNumber) {
		input.ManufacturerPartNumber = f.ManufacturerPartNumber
	}
	if changed(descriptionFlag) {
		input.Description = f.Description
	}
	if changed(FlagCustomerReference) {
		input.CustomerReference = f.CustomerReference
	}
	if changed(FlagUnitPrice) {
		input.UnitPrice = f.UnitPrice
	}
	if changed(FlagQuantity) {
		input.Quantity = f.Quantity
	}
	return input
}

// PrintWarnings writes validation warnings, one per line.
func PrintWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
}
