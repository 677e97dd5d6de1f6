package configuration

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/quasitext/redharvest/database"
	"github.com/quasitext/redharvest/redditapi"
	"github.com/quasitext/redharvest/utils"
	"github.com/spf13/viper"
)

// DefaultUserAgent identifies the crawler when REDDIT_USER_AGENT is unset.
const DefaultUserAgent = "redharvest comment scraper"

// OpenDatabase opens the configured database, creating it if necessary.
func OpenDatabase() (*database.Store, error) {
	return database.OpenStore(viper.GetString("database"))
}

func OpenExistingDatabase() (st *database.Store, err error) {
	dbPath := viper.GetString("database")

	var exists bool
	if exists, err = utils.PathExists(dbPath); err == nil {
		if exists {
			st, err = database.OpenStore(dbPath)
		} else {
			err = fmt.Errorf("Database %q does not exist", dbPath)
		}
	}
	return
}

// LoadCredentials reads the API credentials from the environment,
// loading envPath first when such a file exists.
func LoadCredentials(envPath string) (redditapi.Credentials, error) {
	var creds redditapi.Credentials

	if exists, err := utils.PathExists(envPath); err != nil {
		return creds, err
	} else if exists {
		if err := godotenv.Load(envPath); err != nil {
			return creds, fmt.Errorf("loading %q: %w", envPath, err)
		}
	}

	creds = redditapi.Credentials{
		ID:        os.Getenv("REDDIT_CLIENT_ID"),
		Secret:    os.Getenv("REDDIT_CLIENT_SECRET"),
		Username:  os.Getenv("REDDIT_USERNAME"),
		Password:  os.Getenv("REDDIT_PASSWORD"),
		UserAgent: os.Getenv("REDDIT_USER_AGENT"),
	}
	if creds.UserAgent == "" {
		creds.UserAgent = DefaultUserAgent
	}

	for name, value := range map[string]string{
		"REDDIT_CLIENT_ID":     creds.ID,
		"REDDIT_CLIENT_SECRET": creds.Secret,
		"REDDIT_USERNAME":      creds.Username,
		"REDDIT_PASSWORD":      creds.Password,
	} {
		if value == "" {
			return creds, fmt.Errorf("%s is not set", name)
		}
	}
	return creds, nil
}
