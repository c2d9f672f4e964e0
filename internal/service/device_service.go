package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/calckit/internal/auth"
	"github.com/mmynk/calckit/internal/metrics"
	"github.com/mmynk/calckit/pkg/api"
)

// DeviceService implements calckit.v1.DeviceService. Devices are anonymous:
// registering just issues a fresh ID and a token for it.
type DeviceService struct {
	jwtManager *auth.JWTManager
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewDeviceService creates a new DeviceService.
func NewDeviceService(jwtManager *auth.JWTManager, m *metrics.Metrics, logger *slog.Logger) *DeviceService {
	return &DeviceService{
		jwtManager: jwtManager,
		metrics:    m,
		logger:     logger,
	}
}

// Register issues a new device ID and token.
func (s *DeviceService) Register(ctx context.Context, req *connect.Request[api.RegisterDeviceRequest]) (*connect.Response[api.RegisterDeviceResponse], error) {
	deviceID := auth.NewDeviceID()

	token, expiresAt, err := s.jwtManager.Generate(deviceID)
	if err != nil {
		s.logger.Error("Failed to generate token", "device_id", deviceID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.metrics.DevicesIssued.Inc()

	s.logger.Info("Device registered", "device_id", deviceID)
	return connect.NewResponse(&api.RegisterDeviceResponse{
		DeviceID:  deviceID,
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}), nil
}
