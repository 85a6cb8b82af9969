package enums

import "fmt"

// SignatureStatus maps to the signature_status enum in Postgres. A record is
// created when the first party signs and completes when both roles are present.
type SignatureStatus string

const (
	SignatureStatusPartiallySigned SignatureStatus = "partially_signed"
	SignatureStatusSigned          SignatureStatus = "signed"
)

var validSignatureStatuses = []SignatureStatus{
	SignatureStatusPartiallySigned,
	SignatureStatusSigned,
}

// IsValid checks whether the given status matches the canonical enum.
func (s SignatureStatus) IsValid() bool {
	for _, candidate := range validSignatureStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSignatureStatus converts raw strings into SignatureStatus.
func ParseSignatureStatus(value string) (SignatureStatus, error) {
	for _, candidate := range validSignatureStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid signature status %q", value)
}
