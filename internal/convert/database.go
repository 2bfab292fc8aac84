package convert

import (
	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
)

type credentialField int

const (
	fieldDatabase credentialField = iota
	fieldUser
	fieldPassword
	fieldRootPassword
)

func (f credentialField) String() string {
	switch f {
	case fieldDatabase:
		return "database"
	case fieldUser:
		return "user"
	case fieldPassword:
		return "password"
	case fieldRootPassword:
		return "rootPassword"
	}
	return "unknown"
}

// credentialSource lists the environment keys feeding one field, canonical
// key first.
type credentialSource struct {
	field credentialField
	keys  []string
}

var credentialTables = map[model.ServiceKind][]credentialSource{
	model.KindMySQL: {
		{fieldRootPassword, []string{"MYSQL_ROOT_PASSWORD", "MARIADB_ROOT_PASSWORD"}},
		{fieldPassword, []string{"MYSQL_PASSWORD", "MARIADB_PASSWORD"}},
		{fieldDatabase, []string{"MYSQL_DATABASE", "MARIADB_DATABASE"}},
		{fieldUser, []string{"MYSQL_USER", "MARIADB_USER"}},
	},
	model.KindPostgreSQL: {
		{fieldPassword, []string{"POSTGRES_PASSWORD"}},
		{fieldDatabase, []string{"POSTGRES_DB"}},
		{fieldUser, []string{"POSTGRES_USER"}},
	},
	model.KindMongoDB: {
		{fieldRootPassword, []string{"MONGO_INITDB_ROOT_PASSWORD", "MONGO_ROOT_PASSWORD"}},
		{fieldPassword, []string{"MONGO_PASSWORD"}},
		{fieldDatabase, []string{"MONGO_INITDB_DATABASE", "MONGO_DATABASE"}},
		{fieldUser, []string{"MONGO_INITDB_ROOT_USERNAME", "MONGO_USER"}},
	},
	model.KindRedis: {
		{fieldPassword, []string{"REDIS_PASSWORD"}},
	},
}

type credentials map[credentialField]string

// extractCredentials applies the kind's table to an already substituted
// environment. Keys outside the table are ignored.
func extractCredentials(kind model.ServiceKind, env map[string]string) credentials {
	out := credentials{}
	for _, src := range credentialTables[kind] {
		for _, key := range src.keys {
			if v, ok := env[key]; ok {
				out[src.field] = v
				break
			}
		}
	}
	return out
}

// hasSecret reports whether any password field was found.
func (c credentials) hasSecret() bool {
	return c[fieldPassword] != "" || c[fieldRootPassword] != ""
}

func databaseRecord(kind model.ServiceKind, base model.DatabaseBase, c credentials) model.ServiceData {
	switch kind {
	case model.KindMySQL:
		return &model.MySQLService{
			DatabaseBase: base,
			Database:     c[fieldDatabase],
			User:         c[fieldUser],
			Password:     c[fieldPassword],
			RootPassword: c[fieldRootPassword],
		}
	case model.KindPostgreSQL:
		return &model.PostgresService{
			DatabaseBase: base,
			Database:     c[fieldDatabase],
			User:         c[fieldUser],
			Password:     c[fieldPassword],
		}
	case model.KindMongoDB:
		return &model.MongoService{
			DatabaseBase: base,
			Database:     c[fieldDatabase],
			User:         c[fieldUser],
			Password:     c[fieldPassword],
			RootPassword: c[fieldRootPassword],
		}
	case model.KindRedis:
		return &model.RedisService{
			DatabaseBase: base,
			Password:     c[fieldPassword],
		}
	}
	return nil
}
