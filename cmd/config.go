package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"compaug.dev/pkg/compaug/internal/adapter"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "compaug"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	inputFlagName            = "input"
	outputFlagName           = "output"
	ignoreFlagName           = "ignore"
	backgroundsFlagName      = "backgrounds"
	runParallelFlagName      = "parallel"
	seedFlagName             = "seed"
	geometricFlagName        = "geometric"
	annotationFormatFlagName = "annotation-format"
	labelFlagName            = "label"
	logFileFlagName          = "log-file"
	verboseFlagName          = "verbose"

	inputConfigKey            = "input"
	outputConfigKey           = "output"
	backgroundsConfigKey      = "backgrounds"
	ignoreConfigKey           = "paths.ignore"
	runParallelConfigKey      = "run.parallel"
	runSeedConfigKey          = "run.seed"
	geometricConfigKey        = "augment.geometric"
	annotationFormatConfigKey = "annotation.format"
	annotationLabelConfigKey  = "annotation.label"

	defaultInput            = "."
	defaultOutput           = "output"
	defaultBackgrounds      = "assets/background"
	defaultSeed             = 0
	defaultGeometric        = false
	defaultAnnotationFormat = string(adapter.AnnotationXML)
	defaultAnnotationLabel  = "demo"

	envPrefix = "COMPAUG"

	// Environment variables understood by earlier releases of the generator.
	legacyInputEnv  = "IMAGES_DIR"
	legacyOutputEnv = "OUTPUT_DIR"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".compaug.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var defaultRunParallel = runtime.NumCPU()

var globalLogger *slog.Logger

func init() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	_ = viper.BindEnv(inputConfigKey, envPrefix+"_INPUT", legacyInputEnv)
	_ = viper.BindEnv(outputConfigKey, envPrefix+"_OUTPUT", legacyOutputEnv)

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(inputConfigKey, defaultInput)
	viper.SetDefault(outputConfigKey, defaultOutput)
	viper.SetDefault(backgroundsConfigKey, defaultBackgrounds)
	viper.SetDefault(ignoreConfigKey, []string{})
	viper.SetDefault(runParallelConfigKey, defaultRunParallel)
	viper.SetDefault(runSeedConfigKey, defaultSeed)
	viper.SetDefault(geometricConfigKey, defaultGeometric)
	viper.SetDefault(annotationFormatConfigKey, defaultAnnotationFormat)
	viper.SetDefault(annotationLabelConfigKey, defaultAnnotationLabel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// ignoreEntries returns the configured exclusions. Values coming from a
// single env var or config string are split on commas.
func ignoreEntries() []string {
	var entries []string

	for _, value := range viper.GetStringSlice(ignoreConfigKey) {
		for _, entry := range strings.Split(value, ",") {
			if entry = strings.TrimSpace(entry); entry != "" {
				entries = append(entries, entry)
			}
		}
	}

	return entries
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
