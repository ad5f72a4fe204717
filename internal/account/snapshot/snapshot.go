// Package snapshot owns the file interface of the user directory: seeding
// the stores at startup and persisting the record set after inserts. The
// snapshot file has exactly the same shape as the seed file, so a restart
// reloads what the last write produced.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"smartcommute/internal/account"
)

// userRecord is the on-disk shape of a directory record. It exists because
// account.User never serializes the password in API responses, while the
// snapshot must round-trip it.
type userRecord struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	CardNumber string `json:"card_number"`
}

// cardRecord is the on-disk shape of a card ledger entry.
type cardRecord struct {
	CardNumber string `json:"card_number"`
	Amount     int    `json:"amount"`
}

// LoadUsers reads a seed or snapshot file into directory records.
// Malformed input is a startup-aborting error, never an empty directory.
func LoadUsers(path string) ([]account.User, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading user seed file %s: %w", path, err)
	}
	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing user seed file %s: %w", path, err)
	}
	users := make([]account.User, 0, len(records))
	for _, r := range records {
		users = append(users, account.User{
			ID:         r.ID,
			Username:   r.Username,
			Password:   r.Password,
			CardNumber: r.CardNumber,
		})
	}
	return users, nil
}

// LoadCards reads the card ledger seed file.
func LoadCards(path string) ([]account.CardAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card seed file %s: %w", path, err)
	}
	var records []cardRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing card seed file %s: %w", path, err)
	}
	cards := make([]account.CardAccount, 0, len(records))
	for _, r := range records {
		cards = append(cards, account.CardAccount{CardNumber: r.CardNumber, Amount: r.Amount})
	}
	return cards, nil
}

// WriteUsers replaces the snapshot file with the given record set. The
// write goes to a temp file in the same directory followed by a rename, so
// readers never observe a half-written file.
func WriteUsers(path string, users []account.User) error {
	records := make([]userRecord, 0, len(users))
	for _, u := range users {
		records = append(records, userRecord{
			ID:         u.ID,
			Username:   u.Username,
			Password:   u.Password,
			CardNumber: u.CardNumber,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding user snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".users-snapshot-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp snapshot file %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp snapshot file %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot file %s: %w", path, err)
	}
	return nil
}
