package config

import (
	"flag"
	"os"
	"time"

	"github.com/sitenexus/sitenexus/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      session/reset token validity, minutes
//	-l string   reset-link base URL
//	-k string   SendGrid API key
//	-m string   mail sender address
//	-n string   mail sender display name
//	-w string   camera-monitor command (empty disables)
//	-i string   image storage backend ("db" or "s3")
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The duration
// flag is accepted as an integer in minutes.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l", "-k", "-m", "-n", "-w", "-i", "-u", "-p", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.ResetLinkBaseURL, "l", config.ResetLinkBaseURL, "reset link base URL")
	fs.StringVar(&config.SendgridAPIKey, "k", config.SendgridAPIKey, "SendGrid API key")
	fs.StringVar(&config.MailFromAddr, "m", config.MailFromAddr, "mail sender address")
	fs.StringVar(&config.MailFromName, "n", config.MailFromName, "mail sender name")
	fs.StringVar(&config.CameraCommand, "w", config.CameraCommand, "camera monitor command")
	fs.StringVar(&config.ImageStorage, "i", config.ImageStorage, "image storage backend (db|s3)")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
