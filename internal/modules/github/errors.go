package github

import (
	"errors"

	"recipebox/internal/domain"
)

var (
	ErrUserNotFound = errors.New("github user not found")
	ErrUpstream     = domain.ErrUpstream
)

// MsgUserNotFound is shown for every lookup failure.
const MsgUserNotFound = "Looks like we cant find the user"
