package entity

import "encoding/json"

// ProviderUser is the identity provider's user object, passed through to
// callers without reshaping.
type ProviderUser map[string]any

// TokenPair is the provider's token payload. Unknown fields the provider may
// add are not preserved; the ones below cover its documented response.
type TokenPair struct {
	AccessToken  string          `json:"access_token"`
	TokenType    string          `json:"token_type,omitempty"`
	ExpiresIn    int64           `json:"expires_in,omitempty"`
	ExpiresAt    int64           `json:"expires_at,omitempty"`
	RefreshToken string          `json:"refresh_token"`
	User         json.RawMessage `json:"user,omitempty"`
}
