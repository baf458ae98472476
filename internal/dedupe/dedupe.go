package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical read requests. Using a centralized
// singleflight.Group ensures only one query runs for a given key while
// other callers wait for the result.

import "golang.org/x/sync/singleflight"

// LeaderboardGroup deduplicates leaderboard queries keyed by ordering and
// limit (e.g. "leaderboard:wins:10").
var LeaderboardGroup singleflight.Group
