package domain

import "fmt"

// TransportMode is how the traveller reaches an item's place from the
// previous one. The zero value is not valid; absence is expressed with a nil
// *TransportMode on the item.
type TransportMode string

const (
	TransportWalk   TransportMode = "WALK"
	TransportBike   TransportMode = "BIKE"
	TransportCar    TransportMode = "CAR"
	TransportBus    TransportMode = "BUS"
	TransportTrain  TransportMode = "TRAIN"
	TransportFlight TransportMode = "FLIGHT"
	TransportBoat   TransportMode = "BOAT"
)

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportWalk, TransportBike, TransportCar, TransportBus,
		TransportTrain, TransportFlight, TransportBoat:
		return true
	}
	return false
}

// ParseTransportMode converts a wire string into a TransportMode.
func ParseTransportMode(s string) (TransportMode, error) {
	m := TransportMode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown transport mode %q", ErrValidation, s)
	}
	return m, nil
}
