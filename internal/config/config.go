package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName        = "Birthday Countdown"
	AppID          = "com.github.tartampluch.go-birthday-countdown"
	AppCommand     = "birthday-countdown"
	LogFileName    = "app.log"
	ConfigFileName = ".birthday-countdown"
	ConfigFileType = "yaml"
	EnvPrefix      = "BIRTHDAY_COUNTDOWN"
	EnvConfigPath  = "BIRTHDAY_COUNTDOWN_CONFIG_PATH"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported calendars.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the buffer size for loop event channels.
	ChannelBufferSize = 4
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion  = "version"
	FlagDebug    = "debug"
	FlagConfig   = "config"
	FlagMonth    = "month"
	FlagDay      = "day"
	FlagName     = "name"
	FlagVCard    = "vcard"
	FlagContact  = "contact"
	FlagLanguage = "lang"
	FlagMute     = "mute"
	FlagOutput   = "output"
	FlagReminder = "reminder"

	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescConfig   = "Path to a YAML configuration file"
	FlagDescMonth    = "Target month (1-12)"
	FlagDescDay      = "Target day of month"
	FlagDescName     = "Name shown next to the countdown"
	FlagDescVCard    = "Read the target date from the BDAY of a vCard file"
	FlagDescContact  = "Contact name to pick inside the vCard file (first with a BDAY otherwise)"
	FlagDescLanguage = "UI language (en, fr)"
	FlagDescMute     = "Disable the celebration sound"
	FlagDescOutput   = "Destination .ics file"
	FlagDescReminder = "ISO8601 alarm trigger added to the exported event (e.g. -P1D)"

	CmdShortRoot    = "Count down to a yearly date and celebrate when it arrives."
	CmdShortTUI     = "Run the countdown in the terminal."
	CmdShortStatus  = "Print the current countdown once and exit."
	CmdShortExport  = "Export the target date as a yearly iCalendar event."
	CmdShortVersion = "Print version information."

	CmdUseTUI     = "tui"
	CmdUseStatus  = "status"
	CmdUseExport  = "export"
	CmdUseVersion = "version"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
	MsgExported      = "Calendar written to %s\n"
	DefaultExport    = "birthday.ics"
)

// -----------------------------------------------------------------------------
// Configuration Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyTargetMonth      = "target.month"
	KeyTargetDay        = "target.day"
	KeyTargetName       = "target.name"
	KeyTargetVCard      = "target.vcard"
	KeyTargetContact    = "target.contact"
	KeyTimingTick       = "timing.tick"
	KeyTimingAnimation  = "timing.animation"
	KeyTimingRamp       = "timing.ramp"
	KeyTimingDelay      = "timing.celebration_delay"
	KeyAnimSmoothing    = "animation.smoothing"
	KeyAnimSnap         = "animation.snap_threshold"
	KeyAnimRampStep     = "animation.ramp_step"
	KeySoundEnabled     = "sound.enabled"
	KeySoundVolume      = "sound.volume"
	KeySoundFile        = "sound.file"
	KeyConfettiCount    = "confetti.particles"
	KeyConfettiRecycle  = "confetti.recycle"
	KeyUILanguage       = "ui.language"
	KeyUIDark           = "ui.dark"
	KeyFooterAuthor     = "footer.author"
	KeyFooterPurpose    = "footer.purpose"
	EnvKeySeparatorFrom = "."
	EnvKeySeparatorTo   = "_"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultMonth    = time.May
	DefaultDay      = 11
	DefaultName     = "Dianarra Celestine"
	DefaultLanguage = "en"
	DefaultAuthor   = "Darwin James Espiritu"
	DefaultPurpose  = "A simple countdown timer to track Dianarra Celestine's next birthday, made with LOVE."

	DefaultTickInterval      = 1 * time.Second
	DefaultAnimationInterval = 50 * time.Millisecond
	DefaultRampInterval      = 30 * time.Millisecond
	DefaultCelebrationDelay  = 2 * time.Second

	DefaultSmoothing     = 0.1
	DefaultSnapThreshold = 0.5
	DefaultRampStep      = 2.0

	DefaultSoundEnabled = true
	DefaultVolume       = 0.7

	DefaultConfettiParticles = 400
	DefaultConfettiRecycle   = false

	// DefaultLeapYear is used to hold dates parsed without a year (--MM-DD).
	DefaultLeapYear = 2000

	PercentMin = 0.0
	PercentMax = 100.0

	HoursPerDay      = 24
	MinutesPerHour   = 60
	SecondsPerMinute = 60
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Birthday Countdown//Engine//EN"
	ICalCalName   = "Birthday Countdown"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "birthday-countdown"
	ICalYearly    = "FREQ=YEARLY"

	// Day 60 is Feb 29 in leap years and March 1st otherwise.
	ICalYearlyLeapDay = "FREQ=YEARLY;BYYEARDAY=60"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRRule       = "RRULE"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	// FormatUIDName feeds the name-based UUID of exported events.
	FormatUIDName = "%s|%02d-%02d|%s"
	FormatUID     = "%s@%s"
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	FormatTwoDigits = "%02d"
	FormatPercent   = "%d%%"
	FormatMonthDay  = "%02d-%02d"
	FormatUnit      = "%02d %s"
)

// -----------------------------------------------------------------------------
// Audio
// -----------------------------------------------------------------------------

const (
	AudioSampleRate   = 44100
	AudioBufferWindow = 100 * time.Millisecond
	AudioNoteGap      = 40 * time.Millisecond
	AudioVolumeBase   = 2
	ExtMP3            = ".mp3"
	ExtWAV            = ".wav"
)

// -----------------------------------------------------------------------------
// Confetti
// -----------------------------------------------------------------------------

const (
	ConfettiMinSpeed    = 60.0  // units per second
	ConfettiMaxSpeed    = 180.0 // units per second
	ConfettiMaxDrift    = 40.0
	ConfettiGravity     = 30.0
	ConfettiMinSize     = 4.0
	ConfettiMaxSize     = 10.0
	ConfettiMaxSpin     = 6.0
	ConfettiSaturation  = 0.75
	ConfettiBrightness  = 0.95
	ConfettiPaletteSize = 12
	ConfettiSpawnHeight = 0.6 // fraction of field height spawned above the top edge
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrMonthRange     = "configuration error: target month must be between 1 and 12"
	ErrDayRange       = "configuration error: target day is not valid for the target month"
	ErrIntervalRange  = "configuration error: timing intervals must be positive"
	ErrVolumeRange    = "configuration error: sound volume must be between 0 and 1"
	ErrSmoothingRange = "configuration error: animation smoothing must be in (0, 1]"
	ErrSnapRange      = "configuration error: animation snap threshold must be positive"
	ErrRampRange      = "configuration error: animation ramp step must be positive"
	ErrParticleRange  = "configuration error: confetti particle count cannot be negative"
	ErrConfigRead     = "failed to read configuration file"
	ErrHomeDir        = "failed to expand home directory"
	ErrVCardOpen      = "failed to open vCard file"
	ErrVCardNoBDAY    = "no contact with a usable birthday found"
	ErrDateParse      = "unable to parse date"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrExportWrite    = "failed to write calendar file"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrNotTerminal    = "the terminal interface requires an interactive terminal"
	ErrAudioInit      = "audio output unavailable"
	ErrAudioDecode    = "failed to decode sound file"
	ErrAudioOpen      = "failed to open sound file"
	ErrAudioFormat    = "unsupported sound file format"
	ErrTUIFailed      = "terminal interface failed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgConfigLoaded    = "Configuration loaded"
	MsgConfigMissing   = "No configuration file found, using defaults"
	MsgLoopStart       = "Countdown loop started"
	MsgLoopStop        = "Countdown loop stopping due to context cancellation"
	MsgPhaseChange     = "Celebration phase changed"
	MsgCelebrate       = "Target date reached, celebration armed"
	MsgActivate        = "Celebration activated"
	MsgStaleActivation = "Ignoring stale celebration timer"
	MsgAnimStart       = "Progress animation started"
	MsgAnimDone        = "Progress animation settled"
	MsgTargetChanged   = "Target changed"
	MsgAudioSkipped    = "Celebration sound skipped"
	MsgAudioPlayed     = "Celebration sound started"
	MsgConfettiDone    = "Confetti finished"
	MsgModalDismissed  = "Celebration modal dismissed"
	MsgVCardSkipped    = "Skipping malformed vCard"
	MsgVCardDate       = "Skipping invalid date format"
	MsgVCardTarget     = "Target loaded from vCard"
	MsgExportDone      = "Calendar exported"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgSettingsSaved   = "Session settings applied"
	MsgTUIStart        = "Starting terminal interface"
	MsgTUIKey          = "Terminal key pressed"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyValue     = "value"
	LogKeyName      = "name"
	LogKeyMonth     = "month"
	LogKeyDay       = "day"
	LogKeyPhase     = "phase"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyPercent   = "percent"
	LogKeyNext      = "next"
	LogKeyInterval  = "interval"
	LogKeyDelay     = "delay"
	LogKeyPath      = "path"
	LogKeyVolume    = "volume"
	LogKeyCount     = "count"
	LogKeySteps     = "steps"
	LogKeyWidth     = "width"
	LogKeyHeight    = "height"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain     = "main"
	CompConfig   = "config"
	CompEngine   = "engine"
	CompLoop     = "loop"
	CompCalendar = "calendar"
	CompVCard    = "vcard"
	CompAudio    = "audio"
	CompConfetti = "confetti"
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompTUI      = "tui"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Constants
// -----------------------------------------------------------------------------

const (
	WindowWidth         = 420
	WindowHeight        = 640
	SettingsWindowWidth = 420
	RingSize            = 160
	RingSegments        = 120
	RingStrokeWidth     = 6
	ConfettiFrameRate   = 16 * time.Millisecond
	LayoutColumnsUnits  = 4
	TerminalFallbackCol = 60
	TerminalConfettiRow = 6
	TerminalCellSize    = 16.0 // confetti field units per terminal cell
	TerminalBarWidth    = 40
	TerminalMinWidth    = 24
	TerminalBarFull     = "█"
	TerminalBarEmpty    = "░"
	TerminalConfettiCh  = "*"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyWinSettings      = "win_settings_title"
	TKeyCountdownHeader  = "countdown_header" // Requires Name
	TKeyRevisit          = "revisit_message"  // Requires Month, Day
	TKeyProgressHeader   = "progress_header"
	TKeyCelebrateHeader  = "celebrate_header"
	TKeyCelebrateToday   = "celebrate_today"
	TKeyCelebrateMessage = "celebrate_message" // Requires Name
	TKeyModalTitle       = "modal_title"       // Requires Name
	TKeyModalMessage     = "modal_message"
	TKeyBtnClose         = "btn_close"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyBtnSettings      = "btn_settings"
	TKeyBtnExport        = "btn_export"
	TKeyBtnTheme         = "btn_theme"
	TKeyUnitDays         = "unit_days"
	TKeyUnitHours        = "unit_hours"
	TKeyUnitMinutes      = "unit_minutes"
	TKeyUnitSeconds      = "unit_seconds"
	TKeyFooterCopyright  = "footer_copyright" // Requires Year, Author
	TKeyLblLanguage      = "lbl_language"
	TKeyLblName          = "lbl_name"
	TKeyLblMonth         = "lbl_month"
	TKeyLblDay           = "lbl_day"
	TKeyLblVolume        = "lbl_volume"
	TKeyErrMonth         = "err_month_range"
	TKeyErrDay           = "err_day_range"
	TKeyErrNumber        = "err_number"
	TKeyEvtSummary       = "event_summary" // Requires Name
	TKeyTUIHelp          = "tui_help"
	TKeyStatusNext       = "status_next"
	TKeyStatusDate       = "status_date"
	TKeyStatusRemaining  = "status_remaining"
	TKeyStatusProgress   = "status_progress"
	TKeyMonthPrefix      = "month_" // month_1 .. month_12
)
