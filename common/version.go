package common

import (
	"fmt"
	"strconv"
)

const (
	major = 1
	minor = 0
	patch = 0

	// Versions from which an update should be performed.
	// These should be used in a group (so prevMinor can be equal to minor if there are
	// any migration routines.
	prevMajor = 0
	prevMinor = 9
	prevPatch = 0

	Version = major*1_000_000 + minor*1_000 + patch

	PrevVersion = prevMajor*1_000_000 + prevMinor*1_000 + prevPatch
)

// CheckVersion checks that previous version is more than PrevVersion to ensure migrating module data
// was done successfully.
func CheckVersion(from int) error {
	if from < PrevVersion {
		return fmt.Errorf("%w: expected >=%d, got %d", ErrVersionMismatch, PrevVersion, from)
	}
	if from == Version {
		return fmt.Errorf("%w: %d", ErrAlreadyUpdated, Version)
	}
	return nil
}

// VersionString returns semantic representation of the numeric version.
func VersionString(v int) string {
	return strconv.Itoa(v/1_000_000) + "." + strconv.Itoa(v/1_000%1_000) + "." + strconv.Itoa(v%1_000)
}
