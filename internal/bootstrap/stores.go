package bootstrap

import (
	"github.com/eleven-am/voicenotes/internal/conversation"
	"github.com/eleven-am/voicenotes/internal/credential"
	"github.com/eleven-am/voicenotes/internal/sessionstore"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func ProvideConversationStore(db *gorm.DB) *conversation.Store {
	return conversation.NewStore(db)
}

func ProvideCredentialStore(db *gorm.DB, cfg *Config) *credential.Store {
	return credential.NewStore(db, cfg.RemoteAPIKey)
}

func ProvideSessionStore(redisClient *redis.Client) *sessionstore.Store {
	return sessionstore.NewStore(redisClient)
}

func RunMigrations(conversations *conversation.Store, credentials *credential.Store) error {
	if err := conversations.Migrate(); err != nil {
		return err
	}
	return credentials.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideConversationStore,
		ProvideCredentialStore,
		ProvideSessionStore,
	),
	fx.Invoke(RunMigrations),
)
