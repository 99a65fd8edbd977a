package consul_test

import (
	"os"
	"testing"

	"github.com/mwantia/ossfm/store"
	"github.com/mwantia/ossfm/store/consul"
	"github.com/mwantia/ossfm/store/storetest"
)

// Runs against a live agent when OSSFM_TEST_CONSUL_ADDR is set.
func TestConsulBackend_Contract(t *testing.T) {
	address := os.Getenv("OSSFM_TEST_CONSUL_ADDR")
	if address == "" {
		t.Skip("OSSFM_TEST_CONSUL_ADDR not set")
	}

	storetest.RunContract(t, map[string]storetest.Factory{
		"consul": func(t *testing.T) (store.RemoteStore, error) {
			return consul.NewConsulBackend(&consul.ConsulBackendConfig{
				Address: address,
				Token:   os.Getenv("OSSFM_TEST_CONSUL_TOKEN"),
				Prefix:  "ossfm-test",
			})
		},
	})
}
