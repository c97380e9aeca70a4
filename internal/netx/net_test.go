package netx

import (
	"context"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListen(t *testing.T) {
	t.Run("ephemeral port accepts connections", func(t *testing.T) {
		l, err := Listen(context.Background(), "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		accepted := make(chan struct{})
		go func() {
			c, err := l.Accept()
			if err == nil {
				_ = c.Close()
			}
			close(accepted)
		}()

		c, err := net.Dial("tcp", l.Addr().String())
		require.NoError(t, err)
		_ = c.Close()
		<-accepted
	})

	t.Run("bad port -> wrapped error", func(t *testing.T) {
		_, err := Listen(context.Background(), "127.0.0.1:99999")
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "listen 127.0.0.1:99999:"), err.Error())
	})

	t.Run("address in use", func(t *testing.T) {
		l, err := Listen(context.Background(), "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		_, err = Listen(context.Background(), l.Addr().String())
		require.Error(t, err)
	})
}
