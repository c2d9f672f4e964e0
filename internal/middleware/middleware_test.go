package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/calckit/internal/auth"
	"github.com/mmynk/calckit/internal/metrics"
)

type ping struct{}

// echoDevice returns the device ID seen by the handler.
func echoDevice(seen *string) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*seen = GetDeviceID(ctx)
		return connect.NewResponse(&ping{}), nil
	}
}

func TestRequireDevice(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate("device-42")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantID   string
	}{
		{name: "valid token", header: "Bearer " + token, wantID: "device-42"},
		{name: "missing header", header: "", wantCode: connect.CodeUnauthenticated},
		{name: "wrong scheme", header: "Basic " + token, wantCode: connect.CodeUnauthenticated},
		{name: "empty token", header: "Bearer ", wantCode: connect.CodeUnauthenticated},
		{name: "garbage token", header: "Bearer not-a-jwt", wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			handler := RequireDevice(jwtManager)(echoDevice(&seen))

			req := connect.NewRequest(&ping{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			_, err := handler(context.Background(), req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, connect.CodeOf(err))
				assert.Empty(t, seen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, seen)
		})
	}
}

func TestRequireDeviceRejectsOtherSecret(t *testing.T) {
	token, _, err := auth.NewJWTManager("other-secret", time.Hour).Generate("device-1")
	require.NoError(t, err)

	var seen string
	handler := RequireDevice(auth.NewJWTManager("test-secret", time.Hour))(echoDevice(&seen))
	req := connect.NewRequest(&ping{})
	req.Header().Set("Authorization", "Bearer "+token)

	_, err = handler(context.Background(), req)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ok := LoggingInterceptor(logger)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	})
	_, err := ok(WithDeviceID(context.Background(), "device-7"), connect.NewRequest(&ping{}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RPC ok")
	assert.Contains(t, buf.String(), "device_id=device-7")

	buf.Reset()
	failing := LoggingInterceptor(logger)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bad input"))
	})
	_, err = failing(context.Background(), connect.NewRequest(&ping{}))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "bad input")
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	ok := MetricsInterceptor(m)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return connect.NewResponse(&ping{}), nil
	})
	failing := MetricsInterceptor(m)(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
	})

	_, _ = ok(context.Background(), connect.NewRequest(&ping{}))
	_, _ = ok(context.Background(), connect.NewRequest(&ping{}))
	_, _ = failing(context.Background(), connect.NewRequest(&ping{}))

	// Requests built outside a handler have an empty procedure.
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "not_found")))
}
