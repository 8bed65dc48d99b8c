// Package complete offers context-aware suggestions over the live
// document: device properties after an alias-dot trigger, and declared
// identifiers, keywords and built-in functions while typing.
package complete

// Unknown is the fallback device category. Its property list is the
// union offered when no category can be inferred for an alias.
const Unknown = "Unknown"

// Data holds the lookup tables backing both completion modes. It is
// loaded once at engine construction and passed in explicitly; there is
// no global table state.
type Data struct {
	// NamePatterns maps a lowercase substring of an alias name to a
	// device category ("sensor" -> "GasSensor").
	NamePatterns map[string]string
	// DeviceHashes maps a device prefab hash literal to its category.
	DeviceHashes map[int32]string
	// DeviceNames maps a quoted prefab name to its category.
	DeviceNames map[string]string
	// Properties maps a category to its logic-type property names.
	Properties map[string][]string
	Keywords   []string
	Functions  []string
}

// Default returns the built-in tables used when no external data file
// is configured or the configured one cannot be read.
func Default() *Data {
	return &Data{
		NamePatterns: map[string]string{
			"sensor":  "GasSensor",
			"light":   "Light",
			"door":    "Door",
			"pump":    "VolumePump",
			"vent":    "ActiveVent",
			"battery": "Battery",
			"solar":   "SolarPanel",
			"filter":  "Filtration",
			"heater":  "WallHeater",
			"cooler":  "WallCooler",
			"display": "Console",
		},
		DeviceHashes: map[int32]string{
			-1252983604: "GasSensor",
			-1860064656: "Light",
			337416191:   "Door",
			-321403609:  "VolumePump",
			-1129453144: "ActiveVent",
			-400115994:  "Battery",
			-2045627372: "SolarPanel",
			-348054045:  "Filtration",
			24258244:    "WallHeater",
			-739292323:  "WallCooler",
			235638270:   "Console",
		},
		DeviceNames: map[string]string{
			"StructureGasSensor":      "GasSensor",
			"StructureWallLight":      "Light",
			"StructureCompositeDoor":  "Door",
			"StructureVolumePump":     "VolumePump",
			"StructureActiveVent":     "ActiveVent",
			"StructureBatteryLarge":   "Battery",
			"StructureSolarPanel":     "SolarPanel",
			"StructureFiltration":     "Filtration",
			"StructureWallHeater":     "WallHeater",
			"StructureWallCooler":     "WallCooler",
			"StructureConsole":        "Console",
			"StructureLogicTransmitter": "Transmitter",
		},
		Properties: map[string][]string{
			"GasSensor": {
				"Activate", "Combustion", "On", "Power", "Pressure",
				"RatioCarbonDioxide", "RatioNitrogen", "RatioOxygen",
				"RatioPollutant", "RatioVolatiles", "RatioWater",
				"Temperature",
			},
			"Light":      {"Lock", "On", "Power"},
			"Door":       {"Idle", "Lock", "Mode", "On", "Open", "Power"},
			"VolumePump": {"Error", "Lock", "Maximum", "On", "Power", "Setting"},
			"ActiveVent": {"Lock", "Mode", "On", "Power", "PressureExternal", "PressureInternal"},
			"Battery":    {"Charge", "ChargeRatio", "Maximum", "On", "Power", "PowerActual", "PowerPotential"},
			"SolarPanel": {"Charge", "Horizontal", "Maximum", "On", "Power", "Ratio", "Vertical"},
			"Filtration": {"Error", "Lock", "Mode", "On", "Power", "PressureInput", "PressureOutput"},
			"WallHeater": {"Lock", "On", "Power", "Setting"},
			"WallCooler": {"Lock", "On", "Power", "Setting"},
			"Console":    {"Color", "Error", "Lock", "Mode", "On", "Power", "Setting"},
			Unknown: {
				"Activate", "Charge", "Error", "Lock", "Maximum", "Mode",
				"On", "Open", "Power", "Pressure", "Ratio", "Setting",
				"Temperature",
			},
		},
		Keywords: []string{
			"alias", "break", "const", "continue", "define", "else",
			"elseif", "end", "function", "goto", "if", "return", "sleep",
			"then", "var", "while", "yield",
		},
		Functions: []string{
			"abs", "acos", "asin", "atan", "atan2", "ceil", "cos", "exp",
			"floor", "log", "max", "min", "rand", "round", "sin", "sqrt",
			"tan", "trunc",
		},
	}
}
