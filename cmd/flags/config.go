package flags

var (
	ConfigFile string
	Debug      bool
	Dev        bool
	LogStd     bool
)
