package discovery_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RangaDM/Cloud-Native-project/internal/discovery"
)

func newFakeAgent(t *testing.T, calls *[]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, r.Method+" "+r.URL.Path)

		if strings.HasPrefix(r.URL.Path, "/v1/health/service/") {
			w.Header().Set("X-Consul-Index", "1")
			w.Header().Set("X-Consul-KnownLeader", "true")
			w.Header().Set("X-Consul-LastContact", "0")
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"Service":{"Address":"10.0.0.5","Port":8002}}]`)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
}

func TestRegisterAndDeregisterService(t *testing.T) {
	var calls []string
	agent := newFakeAgent(t, &calls)
	defer agent.Close()

	client, err := discovery.NewConsulClient(strings.TrimPrefix(agent.URL, "http://"))
	require.NoError(t, err)

	serviceID := "inventory-service-1"
	require.NoError(t, client.RegisterService(serviceID, "inventory-service", "8002"))
	require.NoError(t, client.DeregisterService(serviceID))

	assert.Contains(t, calls, "PUT /v1/agent/service/register")
	assert.Contains(t, calls, "PUT /v1/agent/service/deregister/inventory-service-1")
}

func TestServiceURL(t *testing.T) {
	var calls []string
	agent := newFakeAgent(t, &calls)
	defer agent.Close()

	client, err := discovery.NewConsulClient(strings.TrimPrefix(agent.URL, "http://"))
	require.NoError(t, err)

	url, err := client.ServiceURL("inventory-service")

	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8002", url)
}
