package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"goldprice/internal/config"
	"goldprice/internal/httpx"
)

func TestNew_KnownIdentities(t *testing.T) {
	cfg := config.Default()
	hc := httpx.New(time.Second)

	for _, identity := range Identities() {
		p, err := New(identity, cfg, hc)
		require.NoError(t, err)
		require.Equal(t, identity, p.Name())
	}
}

func TestNew_UnknownIdentity(t *testing.T) {
	_, err := New("bonbast", config.Default(), httpx.New(time.Second))
	require.ErrorIs(t, err, ErrUnknownProvider)
	require.Contains(t, err.Error(), "bonbast")
	require.Contains(t, err.Error(), "tgju")
}
