package config

type AppConfig struct {
	APIPort string `env:"PORT" envDefault:"12222"`
	APIKey  string `env:"API_KEY,required"`
}

type DatabaseConfig struct {
	Host            string `env:"POSTGRES_HOST,required"`
	Port            string `env:"POSTGRES_PORT,required"`
	User            string `env:"POSTGRES_USER,required"`
	DBName          string `env:"POSTGRES_DB_NAME,required"`
	Password        string `env:"POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"POSTGRES_SSL_MODE" envDefault:"require"`
}

type NamecheapConfig struct {
	ApiUser    string `env:"NAMECHEAP_API_USER"`
	ApiKey     string `env:"NAMECHEAP_API_KEY"`
	Username   string `env:"NAMECHEAP_USERNAME"`
	ClientIp   string `env:"NAMECHEAP_CLIENT_IP"`
	UseSandbox bool   `env:"NAMECHEAP_USE_SANDBOX" envDefault:"true"`

	MaxPrice float64 `env:"NAMECHEAP_MAX_PRICE" envDefault:"20.0"`
	Years    int     `env:"NAMECHEAP_YEARS" envDefault:"1"`

	RegistrantFirstName   string `env:"NAMECHEAP_REGISTRANT_FIRST_NAME"`
	RegistrantLastName    string `env:"NAMECHEAP_REGISTRANT_LAST_NAME"`
	RegistrantCompanyName string `env:"NAMECHEAP_REGISTRANT_COMPANY_NAME"`
	RegistrantJobTitle    string `env:"NAMECHEAP_REGISTRANT_JOB_TITLE"`
	RegistrantAddress1    string `env:"NAMECHEAP_REGISTRANT_ADDRESS1"`
	RegistrantCity        string `env:"NAMECHEAP_REGISTRANT_CITY"`
	RegistrantState       string `env:"NAMECHEAP_REGISTRANT_STATE"`
	RegistrantZIP         string `env:"NAMECHEAP_REGISTRANT_ZIP"`
	RegistrantCountry     string `env:"NAMECHEAP_REGISTRANT_COUNTRY"`
	RegistrantPhoneNumber string `env:"NAMECHEAP_REGISTRANT_PHONE_NUMBER"`
	RegistrantEmail       string `env:"NAMECHEAP_REGISTRANT_EMAIL"`
}

type DomainConfig struct {
	SupportedTlds []string `env:"SUPPORTED_TLD" envDefault:"com"`
}
