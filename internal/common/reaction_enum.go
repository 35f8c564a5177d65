package common

import (
	"fmt"
	"strings"
)

// ReactionKind is the vote a user leaves on a blog or tutorial.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// String returns the string representation
func (rk ReactionKind) String() string {
	return string(rk)
}

// IsValid checks if the reaction kind is valid
func (rk ReactionKind) IsValid() bool {
	return rk == ReactionLike || rk == ReactionDislike
}

// IsLike reports the value stored in LikeDislike.IsLike.
func (rk ReactionKind) IsLike() bool {
	return rk == ReactionLike
}

func ParseReactionKind(s string) (ReactionKind, error) {
	rk := ReactionKind(strings.ToLower(strings.TrimSpace(s)))
	if !rk.IsValid() {
		return "", fmt.Errorf("%w: reaction must be %q or %q", ErrValidation, ReactionLike, ReactionDislike)
	}
	return rk, nil
}
