package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/sitenexus/sitenexus/internal/flagx"
	"github.com/sitenexus/sitenexus/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "1h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr          string         `json:"endpoint_addr"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	ResetLinkBaseURL      string         `json:"reset_link_base_url"`
	SendgridAPIKey        string         `json:"sendgrid_api_key"`
	MailFromName          string         `json:"mail_from_name"`
	MailFromAddr          string         `json:"mail_from_addr"`
	CameraCommand         string         `json:"camera_command"`
	ImageStorage          string         `json:"image_storage"`
	S3RootUser            string         `json:"s3_root_user"`
	S3RootPassword        string         `json:"s3_root_password"`
	S3Bucket              string         `json:"s3_bucket"`
	S3Region              string         `json:"s3_region"`
	S3BaseEndpoint        string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags into the provided Config. If no flag is
// set, nothing is loaded. If the file cannot be read or contains invalid
// JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	config.ResetLinkBaseURL = c.ResetLinkBaseURL
	config.SendgridAPIKey = c.SendgridAPIKey
	config.MailFromName = c.MailFromName
	config.MailFromAddr = c.MailFromAddr
	config.CameraCommand = c.CameraCommand
	config.ImageStorage = c.ImageStorage
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}
