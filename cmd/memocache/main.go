// Command memocache is a demo embedding of the cache: a read-through cache in
// front of a memcached backing store, driven from stdin.
//
// Input lines:
//
//	key        read key through the cache
//	key=value  write value through to the store and overwrite the cache
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/skipor/memocache"
	"github.com/skipor/memocache/mcstore"
)

type InputConfig struct {
	Memcached      string `json:"memcached"`       // Backing store host:port.
	LogDestination string `json:"log-destination"` // Stdout, stderr, or filepath.
	LogLevel       string `json:"log-level"`
	// Duration values: 90s, 5m, 1h.
	Expiration  string `json:"expiration"`
	PurgePeriod string `json:"purge-period"`
}

func DefaultInputConfig() *InputConfig {
	return &InputConfig{
		Memcached:      "localhost:11211",
		LogDestination: "stderr",
		LogLevel:       "info",
		Expiration:     "30s",
		PurgePeriod:    "30s",
	}
}

const usage = `
Config values merge rules:
1) config file value overrides default
2) command line value overrides any
Options:
`

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s", usage)
		flag.PrintDefaults()
	}
}

type Config struct {
	Memcached      string
	LogDestination io.Writer
	LogLevel       zapcore.Level
	Expiration     time.Duration
	PurgePeriod    time.Duration
}

func main() {
	conf := config()
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(conf.LogDestination),
		conf.LogLevel,
	)
	l := zap.New(core).Sugar()
	defer l.Sync()
	l.Debugf("Config: %#v", conf)

	store := mcstore.New(l, conf.Memcached)
	c := memocache.New(l, store.Load, memocache.Config{
		Expiration:  conf.Expiration,
		PurgePeriod: conf.PurgePeriod,
	})
	defer c.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if key, value, ok := strings.Cut(line, "="); ok {
			if err := store.Put(key, []byte(value)); err != nil {
				l.Errorf("Put error: %v", err)
				continue
			}
			c.Set(key, []byte(value))
			fmt.Println("OK")
			continue
		}
		v, err := c.Get(line)
		if err != nil {
			l.Errorf("Get error: %v", err)
			continue
		}
		if v == nil {
			fmt.Println("(nil)")
			continue
		}
		fmt.Printf("%s\n", v)
	}
	if err := scanner.Err(); err != nil {
		l.Fatal("Stdin read error: ", err)
	}
}

// config parses command flags, reads config file if any, returns merged config.
// Config values merge rules:
// 1) config file value overrides default
// 2) command line value overrides any
func config() *Config {
	l := zap.NewExample().Sugar()
	flg := parseFlags()
	fileConf := DefaultInputConfig()
	if flg.ConfigPath != "" {
		data, err := os.ReadFile(flg.ConfigPath)
		if err != nil {
			l.Fatal("Config file read error: ", err)
		}
		err = json.Unmarshal(data, fileConf)
		if err != nil {
			l.Fatal("Config parse error: ", err)
		}
	}
	mergeConfigs(fileConf, &flg.InputConfig)
	return parseConfig(l, fileConf)
}

func parseConfig(l *zap.SugaredLogger, in *InputConfig) *Config {
	parsed := &Config{Memcached: in.Memcached}
	var err error
	parsed.LogDestination, err = logDestination(in.LogDestination)
	if err != nil {
		l.Fatal("Log destination open error: ", err)
	}
	parsed.LogLevel, err = zapcore.ParseLevel(in.LogLevel)
	if err != nil {
		l.Fatal("Log level parse error: ", err)
	}
	parsed.Expiration, err = time.ParseDuration(in.Expiration)
	if err != nil {
		l.Fatal("Expiration parse error: ", err)
	}
	parsed.PurgePeriod, err = time.ParseDuration(in.PurgePeriod)
	if err != nil {
		l.Fatal("Purge period parse error: ", err)
	}
	return parsed
}

type Flags struct {
	ConfigPath string
	InputConfig
}

func parseFlags() Flags {
	var f Flags
	flag.StringVar(&f.ConfigPath, "config", "", "path to json config")

	def := DefaultInputConfig()
	usage := func(usage string, defVal interface{}) string {
		if _, ok := defVal.(string); ok {
			usage += fmt.Sprintf(" (default %q)", defVal)
		} else {
			usage += fmt.Sprintf(" (default %v)", defVal)
		}
		return usage
	}
	flag.StringVar(&f.Memcached, "memcached", "", usage("backing memcached address", def.Memcached))
	flag.StringVar(&f.LogDestination, "log-destination", "", usage("log destination: stderr, stdout or file path", def.LogDestination))
	flag.StringVar(&f.LogLevel, "log-level", "", usage("log level: debug, info, warn, error, fatal", def.LogLevel))
	flag.StringVar(&f.Expiration, "expiration", "", usage("entry lifetime: 90s, 5m", def.Expiration))
	flag.StringVar(&f.PurgePeriod, "purge-period", "", usage("pause between expiry sweeps: 10s, 1m", def.PurgePeriod))
	flag.Parse()
	return f
}

func logDestination(dest string) (w io.Writer, err error) {
	switch strings.ToLower(dest) {
	case "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		w, err = os.OpenFile(dest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
	}
	return
}
