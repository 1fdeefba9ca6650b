// Package meetingcode derives and verifies shareable join codes.
package meetingcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Prefix marks a well-formed join code
const Prefix = "VO"

var (
	// ErrInvalidFormat means the code does not have the VO-<roomID>-<checksum> shape
	ErrInvalidFormat = errors.New("invalid meeting code format")

	// ErrChecksumMismatch means the shape is right but the checksum does not
	// match the room identifier it claims to encode
	ErrChecksumMismatch = errors.New("invalid meeting code")
)

// checksum is the decimal sum of the code points of the room identifier
func checksum(roomID string) int {
	sum := 0
	for _, r := range roomID {
		sum += int(r)
	}
	return sum
}

// Generate derives the join code for a room. Deterministic, no failure mode.
func Generate(roomID string) string {
	return fmt.Sprintf("%s-%s-%d", Prefix, roomID, checksum(roomID))
}

// Verify checks a join code and returns the room identifier it encodes.
// Room identifiers contain hyphens (room-<timestamp>), so the code is split
// at the leading prefix and the last hyphen; all three segments must be
// non-empty. Returns ErrInvalidFormat on a structural failure and
// ErrChecksumMismatch when the recomputed checksum disagrees.
func Verify(code string) (string, error) {
	rest, ok := strings.CutPrefix(code, Prefix+"-")
	if !ok {
		return "", ErrInvalidFormat
	}

	sep := strings.LastIndex(rest, "-")
	if sep <= 0 || sep == len(rest)-1 {
		return "", ErrInvalidFormat
	}

	roomID := rest[:sep]
	want := rest[sep+1:]

	if strconv.Itoa(checksum(roomID)) != want {
		return "", ErrChecksumMismatch
	}
	return roomID, nil
}
