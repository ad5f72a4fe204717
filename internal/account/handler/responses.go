package handler

import (
	"encoding/json"
	"net/http"

	"smartcommute/internal/account"
	dErrors "smartcommute/pkg/domain-errors"
)

type createUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	CardNumber string `json:"card_number"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type rechargeRequest struct {
	Amount int `json:"amount"`
}

// userResponse is the outbound shape of a directory record. The credential
// never leaves the service boundary.
type userResponse struct {
	ID         int    `json:"id"`
	Username   string `json:"username"`
	CardNumber string `json:"card_number"`
}

type balanceResponse struct {
	CardNumber string `json:"card_number"`
	Amount     int    `json:"amount"`
}

func toUserResponse(record *account.User) userResponse {
	return userResponse{
		ID:         record.ID,
		Username:   record.Username,
		CardNumber: record.CardNumber,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders the consistent JSON error envelope {"error": "<code>"}.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	w.WriteHeader(dErrors.ToHTTPStatus(code))
	_ = json.NewEncoder(w).Encode(map[string]string{"error": string(code)})
}
