package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	PushProviderFCM = "fcm"
	PushProviderSNS = "sns"

	IdentityProviderFirebase = "firebase"
	IdentityProviderCognito  = "cognito"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel string

	SchemaLocale string
	TopicPrefix  string // empty keeps the schema default
	ClickAction  string

	PushProvider     string
	IdentityProvider string

	FirebaseProjectID      string
	FirebaseCredentialFile string

	AWSRegion         string
	AWSEndpointURL    string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID    string
	AWSSecretKey      string
	SNSTopicARNPrefix string
	CognitoUserPoolID string

	ShutdownTimeoutSeconds int
}

// Load reads all configuration from environment variables.
// Cloud Run injects PORT, which wins over APP_PORT.
func Load() *Config {
	return &Config{
		AppPort:  getEnv("PORT", getEnv("APP_PORT", "8080")),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		SchemaLocale: getEnv("SCHEMA_LOCALE", "es"),
		TopicPrefix:  getEnv("TOPIC_PREFIX", ""),
		ClickAction:  getEnv("CLICK_ACTION", "FLUTTER_NOTIFICATION_CLICK"),

		PushProvider:     strings.ToLower(getEnv("PUSH_PROVIDER", PushProviderFCM)),
		IdentityProvider: strings.ToLower(getEnv("IDENTITY_PROVIDER", IdentityProviderFirebase)),

		FirebaseProjectID:      getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),

		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL:    getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID:    getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:      getEnv("AWS_SECRET_ACCESS_KEY", ""),
		SNSTopicARNPrefix: getEnv("SNS_TOPIC_ARN_PREFIX", ""),
		CognitoUserPoolID: getEnv("COGNITO_USER_POOL_ID", ""),

		ShutdownTimeoutSeconds: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 10),
	}
}

// Validate checks that the selected providers have what they need.
func (c *Config) Validate() error {
	var problems []string
	switch c.PushProvider {
	case PushProviderFCM:
	case PushProviderSNS:
		if c.SNSTopicARNPrefix == "" {
			problems = append(problems, "SNS_TOPIC_ARN_PREFIX is required when PUSH_PROVIDER=sns")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown PUSH_PROVIDER %q", c.PushProvider))
	}
	switch c.IdentityProvider {
	case IdentityProviderFirebase:
	case IdentityProviderCognito:
		if c.CognitoUserPoolID == "" {
			problems = append(problems, "COGNITO_USER_POOL_ID is required when IDENTITY_PROVIDER=cognito")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown IDENTITY_PROVIDER %q", c.IdentityProvider))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// UsesFirebase reports whether any collaborator runs on the Firebase Admin SDK.
func (c *Config) UsesFirebase() bool {
	return c.PushProvider == PushProviderFCM || c.IdentityProvider == IdentityProviderFirebase
}

// UsesAWS reports whether any collaborator runs on the AWS SDK.
func (c *Config) UsesAWS() bool {
	return c.PushProvider == PushProviderSNS || c.IdentityProvider == IdentityProviderCognito
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
