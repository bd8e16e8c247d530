package schema

import (
	"errors"
	"fmt"
)

// StateType enumerates kinds of states. The numeric values are stored
// in the database; 7-9 are reserved.
type StateType int

const (
	KeyValuePair                   StateType = 0
	GenericExcitedState            StateType = 1
	AtomicConfiguration            StateType = 2
	AtomicTermSymbol               StateType = 3
	DiatomicMolecularConfiguration StateType = 4
	MolecularTermSymbol            StateType = 5
	VibrationalState               StateType = 6
	RotationalState                StateType = 10
	RacahSymbol                    StateType = 11
)

// ErrInvalidStateType is returned when saving a State whose type is not
// in the StateType table.
var ErrInvalidStateType = errors.New("invalid state type")

var stateTypeNames = map[StateType]string{
	KeyValuePair:                   "KeyValuePair",
	GenericExcitedState:            "GenericExcitedState",
	AtomicConfiguration:            "AtomicConfiguration",
	AtomicTermSymbol:               "AtomicTermSymbol",
	DiatomicMolecularConfiguration: "DiatomicMolecularConfiguration",
	MolecularTermSymbol:            "MolecularTermSymbol",
	VibrationalState:               "VibrationalState",
	RotationalState:                "RotationalState",
	RacahSymbol:                    "RacahSymbol",
}

var stateTypesByName = func() map[string]StateType {
	res := make(map[string]StateType, len(stateTypeNames))
	for k, v := range stateTypeNames {
		res[v] = k
	}
	return res
}()

func (t StateType) String() string {
	if name, ok := stateTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StateType(%d)", int(t))
}

// Validate returns ErrInvalidStateType for values outside the table.
func (t StateType) Validate() error {
	if _, ok := stateTypeNames[t]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidStateType, int(t))
	}
	return nil
}

// StateTypeFromName finds the StateType for the name of a parsed state
// kind, e.g. "MolecularTermSymbol".
func StateTypeFromName(name string) (StateType, error) {
	if t, ok := stateTypesByName[name]; ok {
		return t, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStateType, name)
}
