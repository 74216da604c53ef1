package vid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adenisiewicz/onapsdk-go/pkg/config"
)

func TestDeclareCategoryParameters(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		paths = append(paths, r.URL.Path)
		var body struct {
			Options []string `json:"options"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"test-name"}, body.Options)
	}))
	defer server.Close()

	client := NewClient(&config.Settings{VIDURL: server.URL})
	ctx := context.Background()

	owningEntity, err := client.CreateOwningEntity(ctx, "test-name")
	require.NoError(t, err)
	assert.Equal(t, "test-name", owningEntity.Name)

	_, err = client.CreateProject(ctx, "test-name")
	require.NoError(t, err)
	_, err = client.CreateLineOfBusiness(ctx, "test-name")
	require.NoError(t, err)
	_, err = client.CreatePlatform(ctx, "test-name")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/vid/maintenance/category_parameter/owningEntity",
		"/vid/maintenance/category_parameter/project",
		"/vid/maintenance/category_parameter/lineOfBusiness",
		"/vid/maintenance/category_parameter/platform",
	}, paths)
}
