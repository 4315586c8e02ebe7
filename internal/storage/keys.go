package storage

import (
	"encoding/json"
	"fmt"

	"spendwise/internal/models"
)

const (
	// UsersKey holds the global user collection.
	UsersKey = "users"
	// CurrentUserKey holds the signed-in user, absent when signed out.
	CurrentUserKey = "currentUser"
)

// KV is the persistence provider contract. *DB implements it.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

var _ KV = (*DB)(nil)

// RecordsKey is the key of the record collection of kind owned by ownerID.
func RecordsKey(kind models.Kind, ownerID string) string {
	switch kind {
	case models.KindIncome:
		return "incomes-" + ownerID
	default:
		return "expenses-" + ownerID
	}
}

// LoadJSON decodes the value under key into v. It reports false, leaving v
// untouched, when the key is absent.
func LoadJSON(kv KV, key string, v any) (bool, error) {
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key.
func SaveJSON(kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return kv.Set(key, string(raw))
}
