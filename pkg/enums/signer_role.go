package enums

import "fmt"

// SignerRole identifies which side of an accepted proposal a signature covers.
type SignerRole string

const (
	SignerRoleRequester SignerRole = "requester"
	SignerRoleDriver    SignerRole = "driver"
)

var validSignerRoles = []SignerRole{
	SignerRoleRequester,
	SignerRoleDriver,
}

// IsValid checks whether the given role matches the canonical enum.
func (r SignerRole) IsValid() bool {
	for _, candidate := range validSignerRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseSignerRole converts raw strings into SignerRole.
func ParseSignerRole(value string) (SignerRole, error) {
	for _, candidate := range validSignerRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid signer role %q", value)
}
