package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/wardrobe/backend/internal/domain"
)

// revisionKeyFormat stores the per-user revision that scopes cached similarity results.
// Any closet or wishlist write replaces it, so older cached results are never read again.
const revisionKeyFormat = "wardrobe:rev:%d"

type userRevisions struct {
	cache domain.CacheRepository
	ttl   time.Duration
}

// current returns the user's revision. A user who never wrote has revision "0";
// any other lookup failure is returned so callers can bypass the cache.
func (r *userRevisions) current(ctx context.Context, userID int64) (string, error) {
	value, err := r.cache.Get(ctx, fmt.Sprintf(revisionKeyFormat, userID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "0", nil
		}
		return "", err
	}
	if rev, ok := value.(string); ok {
		return rev, nil
	}
	return "0", nil
}

func (r *userRevisions) bump(ctx context.Context, userID int64) error {
	rev := strconv.FormatInt(time.Now().UnixNano(), 36)
	// Outlive every result cached under the previous revision
	return r.cache.Set(ctx, fmt.Sprintf(revisionKeyFormat, userID), rev, 2*r.ttl)
}

// decodeCached converts a cached value back into out.
// Caches round-trip values through JSON, so a hit usually holds generic maps and slices.
func decodeCached(value interface{}, out interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
