package logging

// Значения Config.Format.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Значения Config.Level, от подробного к краткому.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Значения Config.Output.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

const (
	DefaultLevel      = LevelWarn
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "logs/profillog.log"
	DefaultMaxSize    = 50
	DefaultMaxBackups = 3
	DefaultMaxAge     = 14
	DefaultCompress   = true
)

// Config настраивает диагностический логгер библиотеки.
// Поля ротации используются только при Output == OutputFile.
type Config struct {
	Format string
	Level  string
	Output string

	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // дни
	Compress   bool
}

// DefaultConfig: уровень warn, текст в stderr.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}
