package render

import (
	"strings"
	"testing"

	"github.com/ThomasCrouzet/compose2easypanel/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *model.SchemaDocument {
	doc := model.NewSchemaDocument("shop")
	doc.Services = append(doc.Services,
		model.ServiceRecord{
			Type: model.KindApp,
			Data: &model.AppService{
				ProjectName: "shop",
				ServiceName: "web",
				Source:      &model.Source{Type: "image", Image: "nginx:latest"},
				Ports:       []model.PortMapping{{Published: 8080, Target: 80, Protocol: "tcp"}},
				Environment: map[string]string{"Z_LAST": "1", "A_FIRST": "<b>&</b>"},
			},
		},
		model.ServiceRecord{
			Type: model.KindRedis,
			Data: &model.RedisService{
				DatabaseBase: model.DatabaseBase{ProjectName: "shop", ServiceName: "cache", Image: "redis:7"},
				Password:     "secret",
			},
		},
	)
	doc.Volumes = append(doc.Volumes, model.VolumeRecord{Name: "data", Driver: "local", DriverOpts: map[string]string{}})
	return doc
}

func TestJSONCompact(t *testing.T) {
	out, err := JSON(sampleDocument(), false)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasSuffix(s, "}\n"))
	assert.Equal(t, 1, strings.Count(s, "\n"))
	assert.Contains(t, s, `"A_FIRST":"<b>&</b>"`)
	assert.Less(t, strings.Index(s, "A_FIRST"), strings.Index(s, "Z_LAST"))
	assert.Less(t, strings.Index(s, `"web"`), strings.Index(s, `"cache"`))
}

func TestJSONPretty(t *testing.T) {
	out, err := JSON(sampleDocument(), true)
	require.NoError(t, err)

	s := string(out)
	assert.True(t, strings.HasPrefix(s, "{\n  \"version\": \"2.0\",\n  \"projectName\": \"shop\","))
	assert.Contains(t, s, `"type": "redis"`)
	assert.Contains(t, s, `"password": "secret"`)
}

func TestJSONDeterministic(t *testing.T) {
	a, err := JSON(sampleDocument(), true)
	require.NoError(t, err)
	b, err := JSON(sampleDocument(), true)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestJSONRejectsInvalidRecord(t *testing.T) {
	doc := model.NewSchemaDocument("shop")
	doc.Services = append(doc.Services, model.ServiceRecord{Type: model.KindRedis, Data: &model.AppService{}})
	_, err := JSON(doc, false)
	assert.Error(t, err)
}
