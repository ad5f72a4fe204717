// Package account holds the domain records shared by the user directory,
// the card ledger, and the service layer. Storage lives behind the store
// interfaces declared in internal/account/service.
package account

// User is one record in the user directory. IDs are small integers assigned
// by the directory, unique and never reused; a record is immutable once
// created. Password is an opaque credential compared by exact equality and
// is never serialized in API responses.
type User struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"-"`
	CardNumber string `json:"card_number"`
}

// UserCandidate is the caller-supplied shape for a user about to be
// created. The directory assigns the ID.
type UserCandidate struct {
	Username   string
	Password   string
	CardNumber string
}

// CardAccount is one entry in the card ledger. Amount is never negative;
// accounts are seeded at startup and have no runtime creation path, so an
// unknown card number is a defined failure rather than an implicit insert.
type CardAccount struct {
	CardNumber string `json:"card_number"`
	Amount     int    `json:"amount"`
}

// A User references a CardAccount by CardNumber, but the directory does not
// enforce referential integrity; whichever process seeds both files owns
// that consistency.
