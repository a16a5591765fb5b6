package model

// IntentName identifies the handler an utterance is routed to.
type IntentName string

// Concrete skill intents. Anything other than IntentConversation is executed
// by a skill collaborator and never reaches a model tier.
const (
	IntentConversation IntentName = "conversation"

	IntentFileManager   IntentName = "file_manager"
	IntentOpenDownloads IntentName = "open_downloads"
	IntentOpenDocuments IntentName = "open_documents"
	IntentAppOpen       IntentName = "app_open"
	IntentAppClose      IntentName = "app_close"

	IntentVisionQuery IntentName = "vision_query"
	IntentWebSearch   IntentName = "web_search"
	IntentYouTube     IntentName = "youtube_search"

	IntentWeather         IntentName = "weather"
	IntentWeatherRain     IntentName = "weather_rain"
	IntentWeatherForecast IntentName = "weather_forecast"

	IntentSystemShutdown IntentName = "system_shutdown"
	IntentSystemReboot   IntentName = "system_reboot"
	IntentSystemSuspend  IntentName = "system_suspend"
	IntentSystemLock     IntentName = "system_lock"

	IntentVolumeUp       IntentName = "volume_up"
	IntentVolumeDown     IntentName = "volume_down"
	IntentMuteToggle     IntentName = "mute_toggle"
	IntentBrightnessUp   IntentName = "brightness_up"
	IntentBrightnessDown IntentName = "brightness_down"

	IntentWifiOn     IntentName = "wifi_on"
	IntentWifiOff    IntentName = "wifi_off"
	IntentWifiStatus IntentName = "wifi_status"

	IntentBluetoothOn     IntentName = "bluetooth_on"
	IntentBluetoothOff    IntentName = "bluetooth_off"
	IntentBluetoothStatus IntentName = "bluetooth_status"

	IntentSystemStatus IntentName = "system_status"
	IntentSystemStats  IntentName = "system_stats"
	IntentUptime       IntentName = "uptime"
	IntentCurrentTime  IntentName = "current_time"

	IntentArchUpdate    IntentName = "arch_update"
	IntentArchInstall   IntentName = "arch_install"
	IntentArchUninstall IntentName = "arch_uninstall"

	IntentScreenshot     IntentName = "screenshot"
	IntentScreenshotArea IntentName = "screenshot_area"
	IntentNightModeOn    IntentName = "night_mode_on"
	IntentNightModeOff   IntentName = "night_mode_off"

	IntentCleanCache    IntentName = "clean_cache"
	IntentRemoveOrphans IntentName = "remove_orphans"
	IntentClearLogs     IntentName = "clear_logs"
	IntentEmptyTrash    IntentName = "empty_trash"

	IntentDNDOn          IntentName = "dnd_on"
	IntentDNDOff         IntentName = "dnd_off"
	IntentClearClipboard IntentName = "clear_clipboard"
	IntentGetClipboard   IntentName = "get_clipboard"

	IntentKillProcess IntentName = "kill_process"
	IntentForceKill   IntentName = "force_kill"
	IntentSetTimer    IntentName = "set_timer"

	IntentMediaPlayPause IntentName = "media_play_pause"
	IntentMediaNext      IntentName = "media_next"
	IntentMediaPrevious  IntentName = "media_previous"
	IntentMediaStop      IntentName = "media_stop"

	IntentPowerProfile       IntentName = "power_profile"
	IntentPowerProfileStatus IntentName = "power_profile_status"

	IntentMorningProtocol IntentName = "morning_protocol"
	IntentFocusMode       IntentName = "focus_mode"
	IntentReadNotes       IntentName = "read_notes"
	IntentTakeNote        IntentName = "take_note"
	IntentSentryMode      IntentName = "sentry_mode"
)

// Param keys used in Intent.Params.
const (
	ParamLocation = "location"
	ParamDays     = "days"
	ParamMinutes  = "minutes"
	ParamMode     = "mode"
	ParamCommand  = "command"
)

// Intent is the routing decision for one utterance.
// Args carries the string argument; Params the structured form when one exists.
type Intent struct {
	Name   IntentName     `json:"name"`
	Args   string         `json:"args"`
	Params map[string]any `json:"params,omitempty"`
}

// Conversation builds the fallback intent that sends text to the orchestrator.
func Conversation(text string) Intent {
	return Intent{Name: IntentConversation, Args: text}
}

// IsConversation reports whether the intent must be answered by a model tier.
func (i Intent) IsConversation() bool {
	return i.Name == IntentConversation
}

// Param returns a structured parameter or nil.
func (i Intent) Param(key string) any {
	if i.Params == nil {
		return nil
	}
	return i.Params[key]
}
