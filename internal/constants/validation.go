package constants

import "time"

// Token Lifetimes
//
// Session tokens are uniformly 24 hours for both login and account
// activation. Invitation tokens outlive reset tokens because invitees may
// take days to act on an email.
const (
	SessionTokenTTL    = 24 * time.Hour
	InvitationTokenTTL = 7 * 24 * time.Hour
	ResetTokenTTL      = 24 * time.Hour
)

// TempPasswordLength is the byte length of the generated temporary password
// handed to invited users.
const TempPasswordLength = 12
