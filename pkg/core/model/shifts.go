package model

// ShiftType is the closed set of per-day duty categories
type ShiftType string

const (
	ShiftDay     ShiftType = "D"
	ShiftEvening ShiftType = "E"
	ShiftNight   ShiftType = "N"
	ShiftOff     ShiftType = "OFF"
)

// WorkingShiftTypes lists the working shift types in their fixed tie-break order
var WorkingShiftTypes = []ShiftType{ShiftDay, ShiftEvening, ShiftNight}

func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftDay, ShiftEvening, ShiftNight, ShiftOff:
		return true
	}
	return false
}

// IsWorking returns true for D, E and N
func (s ShiftType) IsWorking() bool {
	return s == ShiftDay || s == ShiftEvening || s == ShiftNight
}

// ShiftDefinition is a static catalogue entry for a shift type
type ShiftDefinition struct {
	ID        string
	Type      ShiftType
	StartHour int
	Duration  int // hours
}

// EndHour returns StartHour + Duration. A Night shift ends past 24.
func (d ShiftDefinition) EndHour() int {
	return d.StartHour + d.Duration
}

// ShiftCatalogue maps shift types to their definitions
type ShiftCatalogue map[ShiftType]ShiftDefinition

// DefaultShiftCatalogue returns the standard three-shift ward catalogue
func DefaultShiftCatalogue() ShiftCatalogue {
	return ShiftCatalogue{
		ShiftDay:     {ID: "day", Type: ShiftDay, StartHour: 7, Duration: 8},
		ShiftEvening: {ID: "evening", Type: ShiftEvening, StartHour: 15, Duration: 8},
		ShiftNight:   {ID: "night", Type: ShiftNight, StartHour: 23, Duration: 8},
		ShiftOff:     {ID: "off", Type: ShiftOff, StartHour: 0, Duration: 0},
	}
}

// Lookup returns the definition for a shift type.
// Unknown or missing types resolve to a zero-duration Off definition.
func (c ShiftCatalogue) Lookup(t ShiftType) ShiftDefinition {
	if def, ok := c[t]; ok {
		return def
	}
	return ShiftDefinition{ID: "off", Type: ShiftOff}
}

// Duration returns the duration in hours of a shift type (0 for Off or unknown)
func (c ShiftCatalogue) Duration(t ShiftType) int {
	if !t.IsWorking() {
		return 0
	}
	return c.Lookup(t).Duration
}
