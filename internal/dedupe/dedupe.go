// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical requests into one.
package dedupe

import "golang.org/x/sync/singleflight"

// BattleLoads deduplicates snapshot loads keyed by battle key, so a burst
// of reads for a cold battle hits the database once.
var BattleLoads singleflight.Group

// Leaderboard deduplicates leaderboard queries keyed by limit.
var Leaderboard singleflight.Group
