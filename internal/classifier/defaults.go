package classifier

import "eip/internal/models"

// DefaultRules returns the built-in rule list. Order is priority: Regulator
// sits above Resistors so "reg" parts never land there, Logic Gates sits
// directly above ICs so gate ICs split off, and so on. Multi-word keywords
// such as "ac transformer" can never equal a single token; they are kept so
// the list stays identical to the historical one.
func DefaultRules() []Rule {
	return []Rule{
		{Category: models.ACTransformer, Any: []string{"AC/AC", "AC Transformer", "AC Trans"}},
		{Category: models.Regulator, Any: []string{"reg", "regulator"}},
		{Category: models.Potentiometer, Any: []string{"potentiometer", "pot"}},
		{Category: models.ACDCConverters, Any: []string{"AC/DC", "AC/DC Converter", "ACDC"}},
		{Category: models.Fans, Any: []string{"fan", "fans"}},
		{
			Category: models.Audio,
			Any:      []string{"speaker", "audio", "mp3"},
			AllOf:    [][]string{{"board", "max9744"}},
		},
		{Category: models.LogicGates, Any: []string{"ics", "ic"}, Require: []string{"gate"}},
		{Category: models.ICs, Any: []string{"ics", "ic"}},
		{Category: models.Diodes, Any: []string{"diode"}},
		{Category: models.Modules, Any: []string{"modules", "module"}},
		{Category: models.Connectors, Any: []string{"conn", "term", "socket", "receptacle"}},
		{Category: models.Capacitors, Any: []string{"cap", "capacitor", "capacitors"}},
		{Category: models.Resistors, Any: []string{"res", "resistor", "resistors"}},
		{Category: models.LEDs, Any: []string{"leds", "led", "light"}},
		{
			Category:         models.Transistors,
			Any:              []string{"transistors", "transistor", "NPN", "PNP"},
			RequireSubstring: []string{"trans"},
		},
		{Category: models.Inductors, Any: []string{"inductors", "inductor", "ind"}},
		{Category: models.Displays, Any: []string{"display", "screen"}},
		{Category: models.ButtonsSwitches, Any: []string{"button", "switch", "tact"}},
		{Category: models.ResonatorsCrystals, Any: []string{"crystal", "resonator"}},
		{Category: models.Encoders, Any: []string{"encoder"}},
		{Category: models.Relay, Any: []string{"relay"}},
	}
}
