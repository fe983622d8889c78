package config

import "os"

const defaultEmailFrom = "Treatment Tracker <noreply@treatment-tracker.app>"

// EmailConfig points at the transactional email relay. Leaving the URL or
// key empty disables email delivery.
type EmailConfig struct {
	APIURL string
	APIKey string
	From   string
}

func LoadEmailConfig() *EmailConfig {
	from := os.Getenv("EMAIL_FROM")
	if from == "" {
		from = defaultEmailFrom
	}

	return &EmailConfig{
		APIURL: os.Getenv("EMAIL_API_URL"),
		APIKey: os.Getenv("EMAIL_API_KEY"),
		From:   from,
	}
}
