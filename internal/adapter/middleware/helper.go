package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"sba-portal/pkg/id"
)

// errorBody matches the JSON error shape of the http adapter.
type errorBody struct {
	Error string `json:"error"`
}

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, userID, requestID string) string {
	return "idemp:portal:" + strings.ToLower(method) + ":" + path + ":" + userID + ":" + requestID
}

// validReqID accepts a canonical UUID or 32 lowercase hex characters.
func validReqID(reqID string) bool {
	reqID = strings.ToLower(strings.TrimSpace(reqID))
	if id.Valid(reqID) {
		return true
	}
	if len(reqID) != 36 {
		return false
	}
	u, err := uuid.Parse(reqID)
	return err == nil && u != uuid.Nil
}

func provisionalSet(ctx context.Context, rdb redis.Cmdable, key string, entry idempEntry) (bool, error) {
	payload, _ := json.Marshal(entry)
	return rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func loadEntry(ctx context.Context, rdb redis.Cmdable, key string) (idempEntry, error) {
	var e idempEntry
	v, err := rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, err
	}
	return e, nil
}

func saveFinal(ctx context.Context, rdb redis.Cmdable, key string, entry idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(entry)
	return rdb.Set(ctx, key, payload, ttl).Err()
}
