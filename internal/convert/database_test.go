package convert

import (
	"testing"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestExtractCredentials(t *testing.T) {
	tests := []struct {
		name string
		kind model.ServiceKind
		env  map[string]string
		want credentials
	}{
		{
			name: "mysql canonical",
			kind: model.KindMySQL,
			env: map[string]string{
				"MYSQL_ROOT_PASSWORD": "root",
				"MYSQL_PASSWORD":      "pw",
				"MYSQL_DATABASE":      "app",
				"MYSQL_USER":          "u",
				"TZ":                  "UTC",
			},
			want: credentials{fieldRootPassword: "root", fieldPassword: "pw", fieldDatabase: "app", fieldUser: "u"},
		},
		{
			name: "mariadb aliases",
			kind: model.KindMySQL,
			env:  map[string]string{"MARIADB_ROOT_PASSWORD": "root", "MARIADB_DATABASE": "app"},
			want: credentials{fieldRootPassword: "root", fieldDatabase: "app"},
		},
		{
			name: "canonical key wins over alias",
			kind: model.KindMySQL,
			env:  map[string]string{"MYSQL_PASSWORD": "mysql", "MARIADB_PASSWORD": "maria"},
			want: credentials{fieldPassword: "mysql"},
		},
		{
			name: "mongo",
			kind: model.KindMongoDB,
			env: map[string]string{
				"MONGO_INITDB_ROOT_USERNAME": "admin",
				"MONGO_INITDB_ROOT_PASSWORD": "secret",
				"MONGO_INITDB_DATABASE":      "app",
			},
			want: credentials{fieldUser: "admin", fieldRootPassword: "secret", fieldDatabase: "app"},
		},
		{
			name: "redis ignores other keys",
			kind: model.KindRedis,
			env:  map[string]string{"REDIS_PASSWORD": "pw", "POSTGRES_DB": "x"},
			want: credentials{fieldPassword: "pw"},
		},
		{
			name: "app has no table",
			kind: model.KindApp,
			env:  map[string]string{"MYSQL_PASSWORD": "pw"},
			want: credentials{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCredentials(tt.kind, tt.env))
		})
	}
}

func TestDatabaseRecordFieldsPerKind(t *testing.T) {
	base := model.DatabaseBase{ProjectName: "p", ServiceName: "db"}
	creds := credentials{fieldDatabase: "d", fieldUser: "u", fieldPassword: "pw", fieldRootPassword: "root"}

	pg := databaseRecord(model.KindPostgreSQL, base, creds).(*model.PostgresService)
	assert.Equal(t, &model.PostgresService{DatabaseBase: base, Database: "d", User: "u", Password: "pw"}, pg)

	redis := databaseRecord(model.KindRedis, base, creds).(*model.RedisService)
	assert.Equal(t, &model.RedisService{DatabaseBase: base, Password: "pw"}, redis)

	mysql := databaseRecord(model.KindMySQL, base, creds).(*model.MySQLService)
	assert.Equal(t, "root", mysql.RootPassword)

	assert.Nil(t, databaseRecord(model.KindApp, base, creds))
}

func TestCredentialsHasSecret(t *testing.T) {
	assert.False(t, credentials{fieldUser: "u"}.hasSecret())
	assert.True(t, credentials{fieldRootPassword: "r"}.hasSecret())
	assert.True(t, credentials{fieldPassword: "p"}.hasSecret())
}
