package cli

const (
	FlagHome        = "home"
	FlagFormat      = "format"
	FlagVersion     = "serialization-version"
	FlagCompression = "compression"
	FlagWorkers     = "workers"
	FlagNoCache     = "no-cache"
	FlagSample      = "sample"
	FlagJSON        = "json"
	FlagForce       = "force"
)
