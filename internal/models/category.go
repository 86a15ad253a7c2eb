// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Category identifies one of the fixed component classes an item can be
// assigned to. The zero value is Resistors; Other is the catch-all.
type Category int

const (
	Resistors Category = iota
	Capacitors
	Inductors
	Transistors
	Diodes
	Regulator
	ICs
	LogicGates
	Connectors
	Displays
	ButtonsSwitches
	LEDs
	Audio
	Potentiometer
	Modules
	Fans
	ACDCConverters
	ACTransformer
	ResonatorsCrystals
	Encoders
	Relay
	Other

	categoryCount
)

// categoryNames holds display names in display order. Workbook sheet names
// are taken from here, so they must stay valid sheet names.
var categoryNames = [categoryCount]string{
	Resistors:          "Resistors",
	Capacitors:         "Capacitors",
	Inductors:          "Inductors",
	Transistors:        "Transistors",
	Diodes:             "Diodes",
	Regulator:          "Regulator",
	ICs:                "ICs",
	LogicGates:         "Logic Gates",
	Connectors:         "Connectors",
	Displays:           "Displays",
	ButtonsSwitches:    "Buttons, Switches",
	LEDs:               "LEDs",
	Audio:              "Audio",
	Potentiometer:      "Potentiometer",
	Modules:            "Modules",
	Fans:               "Fans",
	ACDCConverters:     "ACDC Converters",
	ACTransformer:      "AC Transformer",
	ResonatorsCrystals: "Resonators, Crystals",
	Encoders:           "Encoders",
	Relay:              "Relay",
	Other:              "Other",
}

// String returns the display name of the category.
func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is one of the declared categories.
func (c Category) Valid() bool {
	return c >= 0 && c < categoryCount
}

// MarshalText implements encoding.TextMarshaler so categories serialize by name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// AllCategories returns every category in display order.
func AllCategories() []Category {
	all := make([]Category, 0, categoryCount)
	for c := Category(0); c < categoryCount; c++ {
		all = append(all, c)
	}
	return all
}

// ParseCategory resolves a display name, ignoring case and surrounding space.
func ParseCategory(name string) (Category, error) {
	want := strings.TrimSpace(name)
	for c, n := range categoryNames {
		if strings.EqualFold(n, want) {
			return Category(c), nil
		}
	}
	return Other, fmt.Errorf("unknown category %q", name)
}
