package router

import (
	"regexp"
	"strconv"
	"strings"

	"voice-assistant/internal/model"
)

var (
	reAppPrefix = regexp.MustCompile(`^(?:please )?(open|close) (.+)`)
	reAppSuffix = regexp.MustCompile(`^(.+) (open|close)(?: pannu| seiyu| karo)?$`)
	reInstall   = regexp.MustCompile(`^(?:please )?install (.+)`)
	reUninstall = regexp.MustCompile(`^(?:please )?(?:uninstall|remove) (.+)`)
	reKill      = regexp.MustCompile(`^(?:please )?(force quit|force kill|kill|terminate|stop) (?:the )?(?:process |app )?(.+)`)
	reTimer     = regexp.MustCompile(`(?:set |start )?(?:a )?timer (?:for )?(\d+) ?(?:minutes?|mins?)\b`)
	reNote      = regexp.MustCompile(`\b(?:take|make|save|add) (?:a )?note:? (.+)`)
	reDays      = regexp.MustCompile(`(\d+)[- ]day`)
)

// triggers compiles a word-bounded alternation of literal phrases.
func triggers(phrases ...string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// fixed builds a rule that emits an argument-less intent.
func fixed(class precedence, name model.IntentName, phrases ...string) rule {
	re := triggers(phrases...)
	return rule{
		name:  string(name),
		class: class,
		match: func(in input) (model.Intent, bool) {
			if !re.MatchString(in.text) {
				return model.Intent{}, false
			}
			return model.Intent{Name: name}, true
		},
	}
}

// withArgs builds a rule that emits a fixed intent with a fixed argument.
func withArgs(class precedence, name model.IntentName, args string, phrases ...string) rule {
	r := fixed(class, name, phrases...)
	inner := r.match
	r.match = func(in input) (model.Intent, bool) {
		intent, ok := inner(in)
		intent.Args = args
		return intent, ok
	}
	return r
}

// buildRules declares the cascade. Declaration order only matters within a class.
func (r *HybridRouter) buildRules() []rule {
	return []rule{
		// Folder class: outranks "open X".
		fixed(classFolder, model.IntentFileManager, "open file manager", "open files", "file explorer"),
		fixed(classFolder, model.IntentOpenDownloads, "open downloads", "downloads folder"),
		fixed(classFolder, model.IntentOpenDocuments, "open documents", "documents folder"),

		// App class: anchored open/close, ahead of every other phrase.
		{
			name:  "app_prefix",
			class: classApp,
			match: r.matchAppPrefix,
		},
		{
			name:  "app_suffix",
			class: classApp,
			match: r.matchAppSuffix,
		},

		// Phrase class: specific multi-word triggers.
		fixed(classPhrase, model.IntentSentryMode, "sentry mode", "security protocol", "lock down"),
		fixed(classPhrase, model.IntentSystemLock, "lock screen", "lock computer", "lock the screen", "lock my computer"),
		{
			name:  string(model.IntentVisionQuery),
			class: classPhrase,
			match: matchVision,
		},
		{
			name:  string(model.IntentYouTube),
			class: classPhrase,
			match: matchYouTube,
		},
		{
			name:  string(model.IntentTakeNote),
			class: classPhrase,
			match: matchTakeNote,
		},
		fixed(classPhrase, model.IntentReadNotes, "read notes", "read note", "read my notes", "what are my notes"),
		fixed(classPhrase, model.IntentCleanCache, "clean cache", "clear cache", "clean package cache"),
		fixed(classPhrase, model.IntentRemoveOrphans, "remove orphan", "remove orphans", "clean orphan", "clean orphans"),
		fixed(classPhrase, model.IntentClearLogs, "clear logs", "clean logs"),
		fixed(classPhrase, model.IntentEmptyTrash, "empty trash", "clear trash", "empty the trash"),
		{
			name:  "dnd",
			class: classPhrase,
			match: matchDND,
		},
		fixed(classPhrase, model.IntentClearClipboard, "clear clipboard", "empty clipboard"),
		fixed(classPhrase, model.IntentGetClipboard, "what is in clipboard", "what is in my clipboard", "clipboard content", "read clipboard"),
		fixed(classPhrase, model.IntentMediaPlayPause, "pause music", "pause media", "play music", "resume music"),
		fixed(classPhrase, model.IntentMediaNext, "next track", "next song", "skip song"),
		fixed(classPhrase, model.IntentMediaPrevious, "previous track", "previous song", "go back"),
		fixed(classPhrase, model.IntentMediaStop, "stop music", "stop media"),
		fixed(classPhrase, model.IntentWifiOn, "wifi on", "enable wifi", "turn on wifi", "connect wifi"),
		fixed(classPhrase, model.IntentWifiOff, "wifi off", "disable wifi", "turn off wifi", "disconnect wifi"),
		fixed(classPhrase, model.IntentWifiStatus, "wifi status", "wifi connection", "connected to wifi"),
		fixed(classPhrase, model.IntentBluetoothOn, "bluetooth on", "enable bluetooth", "turn on bluetooth"),
		fixed(classPhrase, model.IntentBluetoothOff, "bluetooth off", "disable bluetooth", "turn off bluetooth"),
		fixed(classPhrase, model.IntentBluetoothStatus, "bluetooth status", "bluetooth connected"),
		fixed(classPhrase, model.IntentVolumeUp, "volume up", "increase volume", "turn up the volume"),
		fixed(classPhrase, model.IntentVolumeDown, "volume down", "decrease volume", "turn down the volume"),
		fixed(classPhrase, model.IntentBrightnessUp, "brightness up", "increase brightness"),
		fixed(classPhrase, model.IntentBrightnessDown, "brightness down", "decrease brightness"),
		{
			name:  string(model.IntentScreenshot),
			class: classPhrase,
			match: matchScreenshot,
		},
		fixed(classPhrase, model.IntentNightModeOn, "night mode on", "enable night mode", "warm screen", "blue light"),
		fixed(classPhrase, model.IntentNightModeOff, "night mode off", "disable night mode", "normal screen"),
		fixed(classPhrase, model.IntentSystemStatus, "system status", "how is my system"),
		fixed(classPhrase, model.IntentSystemStats, "system stats", "check ram", "cpu usage", "memory usage"),
		fixed(classPhrase, model.IntentUptime, "uptime", "how long has"),
		fixed(classPhrase, model.IntentCurrentTime, "what time", "current time"),
		fixed(classPhrase, model.IntentArchUpdate, "update system", "system update"),
		{
			name:  string(model.IntentSetTimer),
			class: classPhrase,
			match: matchTimer,
		},
		withArgs(classPhrase, model.IntentPowerProfile, "performance", "performance mode", "high performance"),
		withArgs(classPhrase, model.IntentPowerProfile, "power-saver", "power saver", "battery saver", "save battery"),
		withArgs(classPhrase, model.IntentPowerProfile, "balanced", "balanced mode"),
		fixed(classPhrase, model.IntentPowerProfileStatus, "power profile"),
		fixed(classPhrase, model.IntentMorningProtocol, "good morning", "morning report", "morning protocol", "status report"),
		fixed(classPhrase, model.IntentFocusMode, "focus mode", "concentration mode"),

		// Command class: generic verb patterns.
		{
			name:  string(model.IntentArchInstall),
			class: classCommand,
			match: capture(reInstall, model.IntentArchInstall),
		},
		{
			name:  string(model.IntentArchUninstall),
			class: classCommand,
			match: capture(reUninstall, model.IntentArchUninstall),
		},
		{
			name:  "process",
			class: classCommand,
			match: matchKill,
		},

		// Keyword class: single-word catch-alls.
		{
			name:  "weather",
			class: classKeyword,
			match: matchWeather,
		},
		{
			name:  string(model.IntentWebSearch),
			class: classKeyword,
			match: matchSearch,
		},
		fixed(classKeyword, model.IntentSystemShutdown, "shutdown", "shut down", "power off", "turn off computer", "switch off"),
		fixed(classKeyword, model.IntentSystemReboot, "reboot", "restart"),
		fixed(classKeyword, model.IntentSystemSuspend, "suspend", "sleep", "hibernate"),
		fixed(classKeyword, model.IntentSystemLock, "lock"),
		fixed(classKeyword, model.IntentVolumeUp, "louder"),
		fixed(classKeyword, model.IntentVolumeDown, "quieter", "softer"),
		fixed(classKeyword, model.IntentMuteToggle, "mute", "unmute"),
		fixed(classKeyword, model.IntentBrightnessUp, "brighter"),
		fixed(classKeyword, model.IntentBrightnessDown, "dimmer", "dim"),
		{
			name:  string(model.IntentMediaPlayPause),
			class: classKeyword,
			match: matchPlayPause,
		},
	}
}

// capture emits name with the trimmed first capture group as Args.
func capture(re *regexp.Regexp, name model.IntentName) func(in input) (model.Intent, bool) {
	return func(in input) (model.Intent, bool) {
		m := re.FindStringSubmatch(in.text)
		if m == nil {
			return model.Intent{}, false
		}
		arg := strings.TrimSpace(m[1])
		if arg == "" {
			return model.Intent{}, false
		}
		return model.Intent{Name: name, Args: arg}, true
	}
}

var reVision = triggers("look at", "what is on screen", "what is on my screen", "what's on my screen", "analyze", "see my screen")

func matchVision(in input) (model.Intent, bool) {
	if !reVision.MatchString(in.text) {
		return model.Intent{}, false
	}
	return model.Intent{Name: model.IntentVisionQuery, Args: in.original}, true
}

var (
	reYouTube     = triggers("youtube")
	reYouTubeVerb = triggers("search", "play", "find")
)

func matchYouTube(in input) (model.Intent, bool) {
	if !reYouTube.MatchString(in.text) || !reYouTubeVerb.MatchString(in.text) {
		return model.Intent{}, false
	}
	text := strings.ReplaceAll(in.text, "on youtube", " ")
	var kept []string
	for _, tok := range strings.Fields(text) {
		if !youtubeFiller[tok] {
			kept = append(kept, tok)
		}
	}
	return model.Intent{Name: model.IntentYouTube, Args: strings.Join(kept, " ")}, true
}

func matchTakeNote(in input) (model.Intent, bool) {
	m := reNote.FindStringSubmatch(in.text)
	if m == nil {
		return model.Intent{}, false
	}
	content := strings.TrimSpace(strings.TrimPrefix(m[1], ":"))
	if content == "" {
		return model.Intent{}, false
	}
	return model.Intent{Name: model.IntentTakeNote, Args: content}, true
}

var (
	reDND    = triggers("do not disturb", "dnd on", "dnd off", "dnd", "silence notifications")
	reDNDOff = triggers("off", "disable", "turn off", "stop")
)

func matchDND(in input) (model.Intent, bool) {
	if !reDND.MatchString(in.text) {
		return model.Intent{}, false
	}
	if reDNDOff.MatchString(in.text) {
		return model.Intent{Name: model.IntentDNDOff}, true
	}
	return model.Intent{Name: model.IntentDNDOn}, true
}

var (
	reScreenshot     = triggers("screenshot", "take a picture", "capture screen", "screen capture")
	reScreenshotArea = triggers("area", "select", "region")
)

func matchScreenshot(in input) (model.Intent, bool) {
	if !reScreenshot.MatchString(in.text) {
		return model.Intent{}, false
	}
	if reScreenshotArea.MatchString(in.text) {
		return model.Intent{Name: model.IntentScreenshotArea}, true
	}
	return model.Intent{Name: model.IntentScreenshot}, true
}

func matchTimer(in input) (model.Intent, bool) {
	m := reTimer.FindStringSubmatch(in.text)
	if m == nil {
		return model.Intent{}, false
	}
	minutes, err := strconv.Atoi(m[1])
	if err != nil || minutes <= 0 {
		return model.Intent{}, false
	}
	return model.Intent{
		Name:   model.IntentSetTimer,
		Args:   m[1],
		Params: map[string]any{model.ParamMinutes: minutes},
	}, true
}

func matchKill(in input) (model.Intent, bool) {
	m := reKill.FindStringSubmatch(in.text)
	if m == nil {
		return model.Intent{}, false
	}
	process := strings.TrimSpace(m[2])
	if process == "" {
		return model.Intent{}, false
	}
	if strings.HasPrefix(m[1], "force") {
		return model.Intent{Name: model.IntentForceKill, Args: process}, true
	}
	return model.Intent{Name: model.IntentKillProcess, Args: process}, true
}

var (
	rePlay  = triggers("play")
	rePause = triggers("pause")
)

func matchPlayPause(in input) (model.Intent, bool) {
	if rePlay.MatchString(in.text) && rePause.MatchString(in.text) {
		return model.Intent{Name: model.IntentMediaPlayPause}, true
	}
	return model.Intent{}, false
}

var (
	reSearch      = triggers("search", "google", "news", "price", "stock", "when is", "who is", "what is the date")
	reSearchVerbs = regexp.MustCompile(`\bsearch(?: for)?\b`)
)

func matchSearch(in input) (model.Intent, bool) {
	if !reSearch.MatchString(in.text) {
		return model.Intent{}, false
	}
	query := strings.Join(strings.Fields(reSearchVerbs.ReplaceAllString(in.text, " ")), " ")
	if query == "" {
		query = in.original
	}
	return model.Intent{Name: model.IntentWebSearch, Args: query}, true
}

func (r *HybridRouter) matchAppPrefix(in input) (model.Intent, bool) {
	m := reAppPrefix.FindStringSubmatch(in.text)
	if m == nil {
		return model.Intent{}, false
	}
	return r.appIntent(m[1], m[2])
}

func (r *HybridRouter) matchAppSuffix(in input) (model.Intent, bool) {
	m := reAppSuffix.FindStringSubmatch(in.text)
	if m == nil {
		return model.Intent{}, false
	}
	return r.appIntent(m[2], m[1])
}

// appIntent cleans the spoken app name and resolves its launch command.
func (r *HybridRouter) appIntent(action, raw string) (model.Intent, bool) {
	var kept []string
	for i, tok := range strings.Fields(strings.ReplaceAll(raw, ".", "")) {
		if tok == action || tok == "please" {
			continue
		}
		if i == 0 && (tok == "the" || tok == "my") {
			continue
		}
		kept = append(kept, tok)
	}
	app := strings.Join(kept, " ")
	if app == "" {
		return model.Intent{}, false
	}

	name := model.IntentAppOpen
	if action == "close" {
		name = model.IntentAppClose
	}
	intent := model.Intent{Name: name, Args: app}
	if cmd, ok := r.apps.Resolve(app); ok {
		intent.Params = map[string]any{model.ParamCommand: cmd}
	}
	return intent, true
}
