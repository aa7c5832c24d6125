// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Provider - these keys tune the normalizing playback state machine.
const (
	ProviderName           = "provider.name"
	ProviderQualityLabel   = "provider.quality_label"
	ProviderStallDelay     = "provider.stall_delay"
	ProviderPersistQuality = "provider.persist_quality"
)

// Platform Quirks - these keys select which native surface deviations must be compensated for.
const (
	PlatformProfile = "platform.profile"
)

// Media Player Backend - these keys configure the external mpv process acting as the media element.
const (
	PlayerBinary            = "player.binary"
	PlayerExtraArgs         = "player.extra_args"
	PlayerSocketWaitRetries = "player.socket_wait_retries"
)

// Resolver Selection - these keys govern how play targets are turned into quality levels.
const (
	ResolversDefault = "resolvers.default"
)

// Network - these keys configure manifest and resolver HTTP requests.
const (
	NetworkTimeout = "network.timeout"
)

// History Tracking - these keys configure the persistence of resume positions.
const (
	HistorySave        = "history.save"
	HistoryMinPosition = "history.min_position"
)

// Search Interaction - these keys define suggestions for previously played targets.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
