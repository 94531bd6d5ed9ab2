package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
	ProfilesListKey  = "profiles:all"
	GithubKeyPrefix  = "github:%s"
)

const (
	ProfileTTL      = 5 * time.Minute
	ProfilesListTTL = 1 * time.Minute
	GithubTTL       = 10 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func GithubKey(username string) string {
	return fmt.Sprintf(GithubKeyPrefix, username)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProfile drops the cached profile for the user and the profile
// listing, which embeds it.
func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
	Invalidate(ctx, ProfilesListKey)
}
