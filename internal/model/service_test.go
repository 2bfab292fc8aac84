package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceRecordMarshal(t *testing.T) {
	rec := ServiceRecord{
		Type: KindPostgreSQL,
		Data: &PostgresService{
			DatabaseBase: DatabaseBase{ProjectName: "demo", ServiceName: "db"},
			Database:     "myapp",
			User:         "user",
			Password:     "password",
		},
	}

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "postgresql",
		"data": {
			"projectName": "demo",
			"serviceName": "db",
			"database": "myapp",
			"user": "user",
			"password": "password"
		}
	}`, string(out))
	assert.Equal(t, "db", rec.Name())
}

func TestServiceRecordRejectsMismatchedVariant(t *testing.T) {
	rec := ServiceRecord{
		Type: KindRedis,
		Data: &MySQLService{DatabaseBase: DatabaseBase{ServiceName: "cache"}},
	}
	_, err := json.Marshal(rec)
	assert.Error(t, err)

	_, err = json.Marshal(ServiceRecord{Type: KindApp})
	assert.Error(t, err)
}

func TestServiceRecordCustomUsesAppShape(t *testing.T) {
	rec := ServiceRecord{
		Type: KindCustom,
		Data: &AppService{ProjectName: "demo", ServiceName: "worker", Command: []string{"run", "--fast"}},
	}
	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"custom","data":{"projectName":"demo","serviceName":"worker","command":["run","--fast"]}}`, string(out))
}

func TestNewSchemaDocumentEmptyCollections(t *testing.T) {
	doc := NewSchemaDocument("demo")
	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","projectName":"demo","services":[],"volumes":[],"networks":[]}`, string(out))
}
