package config

import (
	"bytes"
	"fmt"
	"math"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/cozy/cozy-barcode/pkg/barcode"
	"github.com/cozy/cozy-barcode/pkg/barcode/symbology"
	"github.com/cozy/cozy-barcode/pkg/cache"
	build "github.com/cozy/cozy-barcode/pkg/config"
	"github.com/cozy/cozy-barcode/pkg/ean13"
	"github.com/cozy/cozy-barcode/pkg/logger"
	"github.com/cozy/cozy-barcode/pkg/utils"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// Filename is the default configuration filename that cozy-barcode search
// for
const Filename = "barcode"

// Paths is the list of directories used to search for a
// configuration file
var Paths = []string{
	".",
	".cozy",
	"$HOME/.cozy",
	"$HOME/.config/cozy",
	"$XDG_CONFIG_HOME/cozy",
	"/etc/cozy",
}

const (
	defaultCacheTTL    = 24 * time.Hour
	defaultRasterScale = 2
)

var (
	config *Config
)

var log = logger.WithNamespace("config")

// Config contains the configuration values of the application
type Config struct {
	Host string
	Port int

	Log    Log
	Render ean13.Params
	Raster Raster
	Cache  Cache

	Redis        redis.UniversalClient
	CacheStorage cache.Cache
	Barcodes     *barcode.Service
}

// Log contains the configuration values of the logger.
type Log struct {
	Level  string `mapstructure:"level"`
	Syslog bool   `mapstructure:"syslog"`
}

// Raster contains the configuration for the PNG exports.
type Raster struct {
	// Scale is the number of pixels for a user unit of the SVG.
	Scale float64 `mapstructure:"scale"`
}

// Cache contains the configuration of the cache of generated documents.
type Cache struct {
	TTL  time.Duration `mapstructure:"ttl"`
	Size int           `mapstructure:"size"`
}

// ServerAddr returns the address on which the server is run
func ServerAddr() string {
	return net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
}

// GetConfig returns the configured instance of Config
func GetConfig() *Config {
	return config
}

// Barcodes return the configured barcodes service.
func Barcodes() *barcode.Service {
	return config.Barcodes
}

// Setup Viper to read the environment and the optional config file
func Setup(cfgFile string) (err error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.SetEnvPrefix("barcode")
	viper.AutomaticEnv()
	applyDefaults(viper.GetViper())

	var cfgFiles []string
	if cfgFile == "" {
		cfgFiles, err = findConfigFiles(Filename)
		if err != nil {
			return err
		}
	} else {
		cfgFiles = []string{cfgFile}
	}

	if len(cfgFiles) == 0 {
		return UseViper(viper.GetViper())
	}

	log.Debugf("Using config files: %s", cfgFiles)

	for _, cfgFile = range cfgFiles {
		tmplName := filepath.Base(cfgFile)
		tmpl := template.New(tmplName)
		tmpl = tmpl.Option("missingkey=zero")
		tmpl, err = tmpl.ParseFiles(cfgFile)
		if err != nil {
			return fmt.Errorf("Unable to open and parse configuration file "+
				"template %s: %s", cfgFile, err)
		}

		dest := new(bytes.Buffer)
		ctxt := &struct {
			Env    map[string]string
			NumCPU int
		}{
			Env:    envMap(),
			NumCPU: runtime.NumCPU(),
		}
		err = tmpl.ExecuteTemplate(dest, tmplName, ctxt)
		if err != nil {
			return fmt.Errorf("Template error for config files %s: %s", cfgFile, err)
		}

		cfgFile = regexp.MustCompile(`\.local$`).ReplaceAllString(cfgFile, "")
		if ext := filepath.Ext(cfgFile); len(ext) > 0 {
			viper.SetConfigType(ext[1:])
		}
		if err := viper.MergeConfig(dest); err != nil {
			if _, isParseErr := err.(viper.ConfigParseError); isParseErr {
				log.Errorf("Failed to read cozy-barcode configurations from %s", cfgFile)
				log.Errorf("%s", dest.String())
				return err
			}
		}
	}

	return UseViper(viper.GetViper())
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.syslog", false)
	v.SetDefault("render.bar_width", ean13.DefaultBarWidth)
	v.SetDefault("render.bar_height", ean13.DefaultBarHeight)
	v.SetDefault("render.bar_color", ean13.DefaultBarColor)
	v.SetDefault("raster.scale", defaultRasterScale)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("cache.size", cache.DefaultSize)
	v.SetDefault("redis.url", "")
}

func envMap() map[string]string {
	env := make(map[string]string)
	for _, i := range os.Environ() {
		sep := strings.Index(i, "=")
		env[i[0:sep]] = i[sep+1:]
	}
	return env
}

// UseViper sets the configured instance of Config
func UseViper(v *viper.Viper) error {
	cfg := &Config{
		Host: v.GetString("host"),
		Port: v.GetInt("port"),
	}

	if err := v.UnmarshalKey("log", &cfg.Log); err != nil {
		return fmt.Errorf("config: invalid log section: %w", err)
	}
	if err := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Syslog: cfg.Log.Syslog,
	}); err != nil {
		return fmt.Errorf("config: can't initialize the logger: %w", err)
	}
	if err := v.UnmarshalKey("render", &cfg.Render); err != nil {
		return fmt.Errorf("config: invalid render section: %w", err)
	}
	if err := v.UnmarshalKey("raster", &cfg.Raster); err != nil {
		return fmt.Errorf("config: invalid raster section: %w", err)
	}
	if err := v.UnmarshalKey("cache", &cfg.Cache); err != nil {
		return fmt.Errorf("config: invalid cache section: %w", err)
	}

	cfg.Render = cfg.Render.WithDefaults()
	if err := cfg.Render.Check(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if !(cfg.Raster.Scale > 0) || math.IsInf(cfg.Raster.Scale, 0) {
		return fmt.Errorf("config: raster.scale should be positive, was %v", cfg.Raster.Scale)
	}

	redisClient, err := GetRedis(v, "redis.url")
	if err != nil {
		return err
	}
	cfg.Redis = redisClient
	cfg.CacheStorage, err = cache.Init(redisClient, cfg.Cache.Size)
	if err != nil {
		return fmt.Errorf("config: can't create the cache: %w", err)
	}

	generator := ean13.NewGenerator(symbology.NewEAN13())
	cfg.Barcodes = barcode.NewService(cfg.CacheStorage, generator, barcode.Options{
		CacheTTL:    cfg.Cache.TTL,
		RasterScale: cfg.Raster.Scale,
		Defaults:    cfg.Render,
	})

	config = cfg
	return nil
}

// GetRedis returns a [redis.UniversalClient] for the URL at the given key,
// or nil if the key is empty.
func GetRedis(v *viper.Viper, key string) (redis.UniversalClient, error) {
	u := v.GetString(key)
	if u == "" {
		return nil, nil
	}
	opt, err := redis.ParseURL(u)
	if err != nil {
		return nil, fmt.Errorf("config: can't parse redis URL(%s): %s", u, err)
	}
	return redis.NewClient(opt), nil
}

func createTestViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("barcode.test")
	v.AddConfigPath("$HOME/.cozy")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("barcode")
	v.AutomaticEnv()
	applyDefaults(v)
	return v
}

// UseTestFile can be used in a test file to inject a configuration
// from a barcode.test.* file. If it can not find this file in your
// $HOME/.cozy directory it will use the default one.
func UseTestFile(t *testing.T) {
	t.Helper()

	build.BuildMode = build.ModeProd
	v := createTestViper()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			v = createTestViper()
		} else {
			t.Fatalf("fatal error test config file: %s", err)
		}
	}

	if err := UseViper(v); err != nil {
		t.Fatalf("fatal error test config file: %s", err)
	}
}

// FindConfigFile search in the Paths directories for the file with the given
// name. It returns an error if it cannot find it or if an error occurs while
// searching.
func FindConfigFile(name string) (string, error) {
	for _, cp := range Paths {
		filename := filepath.Join(utils.AbsPath(cp), name)
		ok, err := utils.FileExists(filename)
		if err != nil {
			return "", err
		}
		if ok {
			return filename, nil
		}
	}
	return "", fmt.Errorf("Could not find config file %q", name)
}

// findConfigFiles search in the Paths directories for the first existing directory,
// then look for supported Viper file for both .ext and .ext.local version, the later
// taking precedence.
func findConfigFiles(name string) ([]string, error) {
	var configFiles []string
	configFile := ""
	for _, ext := range viper.SupportedExts {
		configFile, _ = FindConfigFile(name + "." + ext)
		if configFile != "" {
			break
		}
	}
	if configFile == "" {
		return nil, nil
	}

	configFiles = append(configFiles, configFile)

	configFile += ".local"
	ok, _ := utils.FileExists(configFile)
	if ok {
		configFiles = append(configFiles, configFile)
	}

	return configFiles, nil
}
