package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultAPIBaseURL backend de producción usado por la app de bodega.
const DefaultAPIBaseURL = "https://backendinventario-8ryx.onrender.com"

// Config agrupa la configuración del cliente y del sandbox (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Storage StorageConfig
	Export  ExportConfig
	S3      S3Config
	JWT     JWTConfig
	HTTP    HTTPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig backend REST al que habla el cliente.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig almacenamiento persistente del dispositivo (token y usuario).
type StorageConfig struct {
	Path string // archivo SQLite; vacío = solo memoria
}

// ExportConfig opciones de la exportación a PDF.
type ExportConfig struct {
	Engine            string // chromedp | maroto
	Dir               string
	ShareTarget       string // dir | s3
	BarcodeServiceURL string // servicio de imágenes de código de barras; vacío = generación local
	ChromeRemoteURL   string
	ChromeNoSandbox   bool
}

// S3Config bucket compatible con S3 donde se comparten los reportes.
type S3Config struct {
	Endpoint     string
	Region       string
	Bucket       string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
	PresignTTL   time.Duration
}

// JWTConfig configuración de JWT del sandbox.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP del sandbox.
type HTTPConfig struct {
	Host string
	Port int
	Seed int64 // semilla de datos de ejemplo; 0 = aleatoria
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, API_BASE_URL, STORAGE_PATH, S3_BUCKET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "bodega-app"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", DefaultAPIBaseURL), "/"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Storage: StorageConfig{
			Path: getString(v, "STORAGE_PATH", "bodega.db"),
		},
		Export: ExportConfig{
			Engine:            strings.ToLower(getString(v, "PDF_ENGINE", "maroto")),
			Dir:               getString(v, "EXPORT_DIR", "exports"),
			ShareTarget:       strings.ToLower(getString(v, "SHARE_TARGET", "dir")),
			BarcodeServiceURL: getString(v, "BARCODE_SERVICE_URL", ""),
			ChromeRemoteURL:   getString(v, "CHROME_REMOTE_URL", ""),
			ChromeNoSandbox:   getBool(v, "CHROME_NO_SANDBOX", false),
		},
		S3: S3Config{
			Endpoint:     getString(v, "S3_ENDPOINT", ""),
			Region:       getString(v, "S3_REGION", "us-east-1"),
			Bucket:       getString(v, "S3_BUCKET", ""),
			AccessKey:    getString(v, "S3_ACCESS_KEY", ""),
			SecretKey:    getString(v, "S3_SECRET_KEY", ""),
			UsePathStyle: getBool(v, "S3_USE_PATH_STYLE", true),
			PresignTTL:   time.Duration(getInt(v, "S3_PRESIGN_MINUTES", 60)) * time.Minute,
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", "sandbox-secret"),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60*24),
			Issuer:     getString(v, "JWT_ISSUER", "bodega-sandbox"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
			Seed: int64(getInt(v, "SANDBOX_SEED", 0)),
		},
	}

	if cfg.API.Timeout <= 0 {
		return nil, fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser mayor que cero")
	}
	switch cfg.Export.Engine {
	case "chromedp", "maroto":
	default:
		return nil, fmt.Errorf("config: PDF_ENGINE desconocido %q", cfg.Export.Engine)
	}
	switch cfg.Export.ShareTarget {
	case "dir", "s3":
	default:
		return nil, fmt.Errorf("config: SHARE_TARGET desconocido %q", cfg.Export.ShareTarget)
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
