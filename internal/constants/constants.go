package constants

// Centralized constants for env keys, routes, JSON keys and log fields.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvConfigPath    = "ARENA_CONFIG"
	EnvDBPath        = "ARENA_DB"
	EnvSMTPPassword  = "SMTP_PASSWORD"

	// JSON response keys
	JSONKeyError   = "error"
	JSONKeyMessage = "message"

	// Session cookie
	CookieSessionName = "arena_session"
)

// Routes used by the backend router
const (
	RouteAPIPrefix = "/api"

	RouteValidateDeck   = "/decks/:deckID/validate"
	RouteAIBattle       = "/battles/ai"
	RouteFriendBattle   = "/battles/challenge"
	RouteBattleByID     = "/battles/:battleID"
	RouteBattleAccept   = "/battles/:battleID/accept"
	RouteBattleDecline  = "/battles/:battleID/decline"
	RouteBattleSelect   = "/battles/:battleID/select"
	RouteBattleAttack   = "/battles/:battleID/attack"
	RouteBattleForfeit  = "/battles/:battleID/forfeit"
	RouteBattleHistory  = "/battles/:battleID/history"
	RouteBattleEvents   = "/battles/:battleID/events"
	RouteInvitations    = "/invitations"
	RouteLeaderboard    = "/leaderboard"
	RoutePlayerStats    = "/players/stats"
	RouteNotifications  = "/notifications"
	RouteNotificationRd = "/notifications/:notificationID/read"
)

// Error strings returned to API clients
const (
	ErrInvalidRequest       = "invalid request"
	ErrInternal             = "internal error"
	ErrInvalidBattleID      = "invalid battle id"
	ErrInvalidDeckID        = "invalid deck id"
	ErrAuthRequired         = "authentication required"
	ErrInvalidSession       = "invalid session"
	ErrBattleNotFound       = "battle not found"
	ErrDeckNotFound         = "deck not found"
	ErrUserNotFound         = "user not found"
	ErrPhaseConcluded       = "phase already concluded"
	ErrNotInvitationTarget  = "only the invited player may respond"
	ErrInvitationExpired    = "invitation has expired"
	ErrInvitationResponded  = "invitation was already responded to"
	ErrBattleNotInProgress  = "battle is not in progress"
	ErrCardsNotSelected     = "both players must select a card first"
	ErrCardAlreadySelected  = "card already selected for this phase"
	ErrCardNotInDeck        = "card is not part of the battle deck"
	ErrFailedCreateBattle   = "failed to create battle"
	ErrFailedUpdateBattle   = "failed to update battle"
	ErrFailedFetchBattles   = "failed to fetch battles"
	ErrFailedFetchStats     = "failed to fetch player stats"
	ErrFailedFetchBoard     = "failed to fetch leaderboard"
	ErrFailedFetchHistory   = "failed to fetch battle history"
	ErrFailedFetchInbox     = "failed to fetch notifications"
	ErrFailedMarkRead       = "failed to mark notification read"
	ErrFailedStoreSelection = "failed to store card selection"
	ErrFailedExecuteAttack  = "failed to execute attack"
	ErrFailedForfeit        = "failed to forfeit battle"
)

// Structured log field names
const (
	LogFieldAddr     = "addr"
	LogFieldBattleID = "battle_id"
	LogFieldUserID   = "user_id"
	LogFieldDeckID   = "deck_id"
	LogFieldMode     = "mode"
	LogFieldPhase    = "phase"
	LogFieldWorkerID = "worker_id"
	LogFieldCount    = "count"
)
