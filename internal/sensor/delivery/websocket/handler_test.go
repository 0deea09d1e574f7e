package websocket_test

import (
	"errors"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-ordering-kiosk/internal/hub"
	sensorws "voice-ordering-kiosk/internal/sensor/delivery/websocket"
	pkgLog "voice-ordering-kiosk/pkg/log"
)

// startRelay serves /ws/sensor and returns the hub plus a dialer for it.
func startRelay(t *testing.T) (*hub.Hub, func() *gorilla.Conn) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := hub.New(hub.Config{}, pkgLog.NewNop())

	r := gin.New()
	r.GET("/ws/sensor", sensorws.New(pkgLog.NewNop(), h).ServeSensor)
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/sensor"
	return h, func() *gorilla.Conn {
		ws, _, err := gorilla.DefaultDialer.Dial(url, nil)
		require.NoError(t, err)
		t.Cleanup(func() { ws.Close() })
		return ws
	}
}

func readText(t *testing.T, ws *gorilla.Conn) string {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, got, err := ws.ReadMessage()
	require.NoError(t, err)
	return string(got)
}

func TestServeSensor_ForwardsVerbatim(t *testing.T) {
	h, dial := startRelay(t)

	producer := dial()
	listenerA := dial()
	listenerB := dial()
	require.Eventually(t, func() bool { return h.Count() == 3 }, 2*time.Second, 5*time.Millisecond)

	// Not JSON on purpose: the relay must not care.
	payloads := []string{`{"type":"sensor_reading","distance":42.5}`, "raw-bytes ok"}
	for _, p := range payloads {
		require.NoError(t, producer.WriteMessage(gorilla.TextMessage, []byte(p)))
	}

	for _, l := range []*gorilla.Conn{listenerA, listenerB} {
		for _, want := range payloads {
			assert.Equal(t, want, readText(t, l))
		}
	}
}

func TestServeSensor_SenderGetsNoEcho(t *testing.T) {
	h, dial := startRelay(t)

	sender := dial()
	display := dial()
	require.Eventually(t, func() bool { return h.Count() == 2 }, 2*time.Second, 5*time.Millisecond)

	// The sender still hears everyone else.
	require.NoError(t, display.WriteMessage(gorilla.TextMessage, []byte("hello")))
	assert.Equal(t, "hello", readText(t, sender))

	reading := `{"type":"sensor_reading","distance":12}`
	require.NoError(t, sender.WriteMessage(gorilla.TextMessage, []byte(reading)))
	assert.Equal(t, reading, readText(t, display))

	sender.SetReadDeadline(time.Now().Add(150 * time.Millisecond))
	_, got, err := sender.ReadMessage()
	require.Error(t, err, "sender received %q", got)
	var netErr net.Error
	assert.True(t, errors.As(err, &netErr) && netErr.Timeout(), "want a read timeout, got %v", err)
}
