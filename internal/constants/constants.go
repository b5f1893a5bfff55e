package constants

// Centralized constants for headers, routes and log fields.
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	CacheControlHeader  = "Cache-Control"
	CacheControlNoCache = "no-cache, no-store, must-revalidate"

	// Redis key prefix for cached battle snapshots
	SnapshotKeyPrefix = "chimera:battle:"
)

// Routes used by the backend router
const (
	RouteAPIPrefix     = "/api"
	RouteBattles       = "/battles"
	RouteBattleByID    = "/battles/:battleID"
	RouteBattleStart   = "/battles/:battleID/start"
	RouteBattleBack    = "/battles/:battleID/back"
	RouteBattleTeam    = "/battles/:battleID/team"
	RouteBattleIntents = "/battles/:battleID/intents"
	RouteBattleEvents  = "/battles/:battleID/events"
	RouteLeaderboard   = "/leaderboard"
	RouteCatalog       = "/catalog"
	RouteVersion       = "/version"
	RouteHealth        = "/health"

	ParamBattleID = "battleID"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyDetails = "details"
	JSONKeyStatus  = "status"
	JSONKeyState   = "state"
	JSONKeyLog     = "log"
	JSONKeyEvents  = "events"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest          = "Invalid request"
	ErrInvalidBattleID         = "Invalid battle ID"
	ErrBattleNotFound          = "Battle not found"
	ErrPlayerNameRequired      = "playerName is required"
	ErrPlayerNameExceeds       = "playerName exceeds 32 characters"
	ErrFailedCreateBattle      = "Failed to create battle"
	ErrFailedUpdateBattle      = "Failed to update battle"
	ErrFailedFetchLeaderboard  = "Failed to fetch leaderboard"
	ErrFailedEncodeBattle      = "Failed to encode battle"
	ErrIntentRejected          = "Intent rejected"
	ErrFailedOpenEventStream   = "Failed to open event stream"
	ErrUnknownDifficultyPrefix = "Unknown difficulty: "
)

// Logging field names
const (
	LogFieldBattleID = "battle_id"
	LogFieldSide     = "side"
	LogFieldIntent   = "intent"
	LogFieldTurn     = "turn"
	LogFieldPhase    = "phase"
	LogFieldCost     = "cost"
	LogFieldPlayer   = "player"
	LogFieldSource   = "source"
	LogFieldKey      = "key"
	LogFieldAddr     = "addr"
	LogFieldCount    = "count"
	LogFieldDuration = "duration"
)
