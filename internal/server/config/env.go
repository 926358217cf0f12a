package config

import "os"

// parseEnv overlays Config fields from environment variables. Variables that
// are unset or empty leave the current value untouched. PORT is accepted
// without a colon for parity with the platform convention.
func parseEnv(config *Config) {
	if v := os.Getenv("PORT"); v != "" {
		config.EndpointAddr = ":" + v
	}
	if v := os.Getenv("ADDRESS"); v != "" {
		config.EndpointAddr = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("TOKEN_SECRET"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("RESET_LINK_BASE_URL"); v != "" {
		config.ResetLinkBaseURL = v
	}
	if v := os.Getenv("SENDGRID_API_KEY"); v != "" {
		config.SendgridAPIKey = v
	}
	if v := os.Getenv("MAIL_FROM"); v != "" {
		config.MailFromAddr = v
	}
	if v := os.Getenv("MAIL_FROM_NAME"); v != "" {
		config.MailFromName = v
	}
	if v := os.Getenv("CAMERA_COMMAND"); v != "" {
		config.CameraCommand = v
	}
	if v := os.Getenv("IMAGE_STORAGE"); v != "" {
		config.ImageStorage = v
	}
	if v := os.Getenv("S3_ROOT_USER"); v != "" {
		config.S3RootUser = v
	}
	if v := os.Getenv("S3_ROOT_PASSWORD"); v != "" {
		config.S3RootPassword = v
	}
	if v := os.Getenv("S3_BUCKET"); v != "" {
		config.S3Bucket = v
	}
	if v := os.Getenv("S3_REGION"); v != "" {
		config.S3Region = v
	}
	if v := os.Getenv("S3_BASE_ENDPOINT"); v != "" {
		config.S3BaseEndpoint = v
	}
}
