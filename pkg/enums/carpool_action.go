package enums

import "fmt"

// CarpoolAction names the mutations the authorization gate screens.
type CarpoolAction string

const (
	CarpoolActionPropose CarpoolAction = "propose"
	CarpoolActionAccept  CarpoolAction = "accept"
	CarpoolActionSign    CarpoolAction = "sign"
)

var validCarpoolActions = []CarpoolAction{
	CarpoolActionPropose,
	CarpoolActionAccept,
	CarpoolActionSign,
}

// IsValid checks whether the given action matches the canonical enum.
func (a CarpoolAction) IsValid() bool {
	for _, candidate := range validCarpoolActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseCarpoolAction converts raw strings into CarpoolAction.
func ParseCarpoolAction(value string) (CarpoolAction, error) {
	for _, candidate := range validCarpoolActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid carpool action %q", value)
}
