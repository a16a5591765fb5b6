package localtools

// Server identity
const (
	ServerID      = "local"
	ServerName    = "A1 Local Tools"
	ServerVersion = "1.0.0"
)

// Tool names
const (
	ToolCurrentTime     = "get_current_time"
	ToolUptime          = "get_uptime"
	ToolSystemStatus    = "get_system_status"
	ToolWeather         = "get_weather"
	ToolWeatherForecast = "get_weather_forecast"
	ToolIsItRaining     = "is_it_raining"
	ToolTakeNote        = "take_note"
	ToolReadNotes       = "read_notes"
	ToolCalendarEvents  = "list_calendar_events"
	ToolMorningProtocol = "morning_protocol"
)

// Argument names
const (
	ArgLocation = "location"
	ArgDays     = "days"
	ArgDay      = "day"
	ArgContent  = "content"
	ArgLimit    = "limit"
)

// Defaults
const (
	DefaultLocation     = "Chennai"
	DefaultForecastDays = 3
	DefaultNotesLimit   = 3
	DefaultCalendarDays = 1
	MaxCalendarEvents   = 10
)

// Log prefixes
const (
	LogPrefixWeather  = "internal.localtools.weather"
	LogPrefixNotes    = "internal.localtools.notes"
	LogPrefixStatus   = "internal.localtools.status"
	LogPrefixCalendar = "internal.localtools.calendar"
)

// Spoken responses
const (
	MsgLocationNotFound  = "I couldn't find a location called %s. Could you be more specific?"
	MsgPlaceNotFound     = "I couldn't find %s."
	MsgWeatherDown       = "I couldn't get the weather for %s. The weather service might be unavailable."
	MsgForecastDown      = "I couldn't get the forecast for %s."
	MsgRainDown          = "I couldn't check the weather right now."
	MsgWeatherMissing    = "Weather service is not configured."
	MsgNoteSaved         = "Note saved: '%s'"
	MsgNotesHeader       = "Here are your latest entries:"
	MsgNotesEmpty        = "Your notebook is currently empty."
	MsgNotesMissing      = "The notebook is not available."
	MsgCalendarMissing   = "Google Calendar is not connected."
	MsgCalendarEmpty     = "You have nothing on your calendar."
	MsgCalendarDown      = "I couldn't read your calendar right now."
	MsgCalendarBadDay    = "I don't know which day %s is."
	MsgStatusUnavailable = "Could not get system stats."
	MsgStandingBy        = "I am standing by."
)
