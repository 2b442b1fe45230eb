package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings is the resolved runtime configuration.
// It is read once at startup; nothing in it is ever written back.
type Settings struct {
	Month   time.Month
	Day     int
	Name    string
	VCard   string // Optional .vcf file providing Month, Day and Name
	Contact string // Optional contact name inside VCard

	TickInterval      time.Duration
	AnimationInterval time.Duration
	RampInterval      time.Duration
	CelebrationDelay  time.Duration

	Smoothing     float64
	SnapThreshold float64
	RampStep      float64

	SoundEnabled bool
	Volume       float64
	SoundFile    string

	ConfettiParticles int
	ConfettiRecycle   bool

	Language string
	Dark     bool

	FooterAuthor  string
	FooterPurpose string
}

// flagBindings maps CLI flag names onto configuration keys.
var flagBindings = map[string]string{
	FlagMonth:    KeyTargetMonth,
	FlagDay:      KeyTargetDay,
	FlagName:     KeyTargetName,
	FlagVCard:    KeyTargetVCard,
	FlagContact:  KeyTargetContact,
	FlagLanguage: KeyUILanguage,
}

// NewViper builds a viper instance holding every default.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyTargetMonth, int(DefaultMonth))
	v.SetDefault(KeyTargetDay, DefaultDay)
	v.SetDefault(KeyTargetName, DefaultName)
	v.SetDefault(KeyTargetVCard, "")
	v.SetDefault(KeyTargetContact, "")
	v.SetDefault(KeyTimingTick, DefaultTickInterval)
	v.SetDefault(KeyTimingAnimation, DefaultAnimationInterval)
	v.SetDefault(KeyTimingRamp, DefaultRampInterval)
	v.SetDefault(KeyTimingDelay, DefaultCelebrationDelay)
	v.SetDefault(KeyAnimSmoothing, DefaultSmoothing)
	v.SetDefault(KeyAnimSnap, DefaultSnapThreshold)
	v.SetDefault(KeyAnimRampStep, DefaultRampStep)
	v.SetDefault(KeySoundEnabled, DefaultSoundEnabled)
	v.SetDefault(KeySoundVolume, DefaultVolume)
	v.SetDefault(KeySoundFile, "")
	v.SetDefault(KeyConfettiCount, DefaultConfettiParticles)
	v.SetDefault(KeyConfettiRecycle, DefaultConfettiRecycle)
	v.SetDefault(KeyUILanguage, DefaultLanguage)
	v.SetDefault(KeyUIDark, false)
	v.SetDefault(KeyFooterAuthor, DefaultAuthor)
	v.SetDefault(KeyFooterPurpose, DefaultPurpose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(EnvKeySeparatorFrom, EnvKeySeparatorTo))
	v.AutomaticEnv()

	return v
}

// BindFlags attaches the known command-line flags to v.
// Flags absent from the set are ignored so each command can expose a subset.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for flag, key := range flagBindings {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the optional configuration file into v and resolves Settings.
// An explicit path must exist; the default search path may be empty.
func Load(v *viper.Viper, path string) (Settings, error) {
	log := slog.With(LogKeyComponent, CompConfig)

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrHomeDir, err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		if override := os.Getenv(EnvConfigPath); override != "" {
			v.AddConfigPath(override)
		}
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		log.Debug(MsgConfigMissing)
	} else {
		log.Info(MsgConfigLoaded, LogKeyFile, v.ConfigFileUsed())
	}

	s := Settings{
		Month:   time.Month(v.GetInt(KeyTargetMonth)),
		Day:     v.GetInt(KeyTargetDay),
		Name:    v.GetString(KeyTargetName),
		Contact: v.GetString(KeyTargetContact),

		TickInterval:      v.GetDuration(KeyTimingTick),
		AnimationInterval: v.GetDuration(KeyTimingAnimation),
		RampInterval:      v.GetDuration(KeyTimingRamp),
		CelebrationDelay:  v.GetDuration(KeyTimingDelay),

		Smoothing:     v.GetFloat64(KeyAnimSmoothing),
		SnapThreshold: v.GetFloat64(KeyAnimSnap),
		RampStep:      v.GetFloat64(KeyAnimRampStep),

		SoundEnabled: v.GetBool(KeySoundEnabled),
		Volume:       v.GetFloat64(KeySoundVolume),

		ConfettiParticles: v.GetInt(KeyConfettiCount),
		ConfettiRecycle:   v.GetBool(KeyConfettiRecycle),

		Language: v.GetString(KeyUILanguage),
		Dark:     v.GetBool(KeyUIDark),

		FooterAuthor:  v.GetString(KeyFooterAuthor),
		FooterPurpose: v.GetString(KeyFooterPurpose),
	}

	var err error
	if s.VCard, err = expandPath(v.GetString(KeyTargetVCard)); err != nil {
		return Settings{}, err
	}
	if s.SoundFile, err = expandPath(v.GetString(KeySoundFile)); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func expandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrHomeDir, err)
	}
	return expanded, nil
}

// Validate reports the first static configuration error.
// The target date is only checked when it does not come from a vCard.
func (s Settings) Validate() error {
	if s.VCard == "" {
		if err := ValidateDate(s.Month, s.Day); err != nil {
			return err
		}
	}
	if s.TickInterval <= 0 || s.AnimationInterval <= 0 || s.RampInterval <= 0 || s.CelebrationDelay < 0 {
		return errors.New(ErrIntervalRange)
	}
	if s.Smoothing <= 0 || s.Smoothing > 1 {
		return errors.New(ErrSmoothingRange)
	}
	if s.SnapThreshold <= 0 {
		return errors.New(ErrSnapRange)
	}
	if s.RampStep <= 0 {
		return errors.New(ErrRampRange)
	}
	if s.Volume < 0 || s.Volume > 1 {
		return errors.New(ErrVolumeRange)
	}
	if s.ConfettiParticles < 0 {
		return errors.New(ErrParticleRange)
	}
	return nil
}

// ValidateDate checks that day exists in month for at least one year.
// February 29 is accepted.
func ValidateDate(month time.Month, day int) error {
	if month < time.January || month > time.December {
		return errors.New(ErrMonthRange)
	}
	if day < 1 || day > DaysIn(month) {
		return errors.New(ErrDayRange)
	}
	return nil
}

// DaysIn returns the maximum day number of month, using a leap year.
func DaysIn(month time.Month) int {
	// Day 0 of the following month is the last day of month.
	return time.Date(DefaultLeapYear, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
