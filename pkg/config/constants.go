package config

import "time"

// Version is the current version of framestrip
const Version = "v1.0.0"

// Author is the author of the tool
const Author = "@lcalzada-xor"

// Default Values
const (
	DefaultConcurrency = 8
	DefaultTimeout     = 10 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/80.0.3987.100 Safari/537.36"
	DefaultListen      = "127.0.0.1:8088"
	DefaultHTMLMode    = "scripts"
	DefaultFormat      = "human"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FRAMESTRIP"
