package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/calckit/internal/auth"
	"github.com/mmynk/calckit/internal/history"
	"github.com/mmynk/calckit/internal/metrics"
	"github.com/mmynk/calckit/internal/middleware"
	"github.com/mmynk/calckit/internal/models"
	"github.com/mmynk/calckit/pkg/api"
)

// HistoryService implements calckit.v1.HistoryService. Handlers must run
// behind middleware.RequireDevice; every call is scoped to the caller's device.
type HistoryService struct {
	repo    *history.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewHistoryService creates a new HistoryService backed by repo.
func NewHistoryService(repo *history.Repository, m *metrics.Metrics, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		repo:    repo,
		metrics: m,
		logger:  logger,
	}
}

// SaveEntry stores a calculation in the device's history.
func (s *HistoryService) SaveEntry(ctx context.Context, req *connect.Request[api.SaveEntryRequest]) (*connect.Response[api.SaveEntryResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	entry := &models.Entry{
		Kind:   models.Kind(req.Msg.Kind),
		Title:  req.Msg.Title,
		Input:  req.Msg.Input,
		Output: req.Msg.Output,
	}
	if err := s.repo.Save(ctx, deviceID, entry); err != nil {
		s.logger.Error("Failed to save entry", "device_id", deviceID, "kind", req.Msg.Kind, "error", err)
		return nil, historyError(err)
	}
	s.metrics.HistoryWrites.WithLabelValues("save_entry").Inc()

	s.logger.Info("Entry saved", "device_id", deviceID, "entry_id", entry.ID, "kind", entry.Kind)
	return connect.NewResponse(&api.SaveEntryResponse{Entry: fromEntry(entry)}), nil
}

// ListEntries returns the device's saved calculations, newest first.
func (s *HistoryService) ListEntries(ctx context.Context, req *connect.Request[api.ListEntriesRequest]) (*connect.Response[api.ListEntriesResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.List(ctx, deviceID)
	if err != nil {
		s.logger.Error("Failed to list entries", "device_id", deviceID, "error", err)
		return nil, historyError(err)
	}

	out := make([]api.Entry, len(entries))
	for i := range entries {
		out[i] = fromEntry(&entries[i])
	}
	return connect.NewResponse(&api.ListEntriesResponse{Entries: out}), nil
}

// GetEntry returns a single saved calculation.
func (s *HistoryService) GetEntry(ctx context.Context, req *connect.Request[api.GetEntryRequest]) (*connect.Response[api.GetEntryResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	entry, err := s.repo.Get(ctx, deviceID, req.Msg.ID)
	if err != nil {
		return nil, historyError(err)
	}
	return connect.NewResponse(&api.GetEntryResponse{Entry: fromEntry(entry)}), nil
}

// DeleteEntry removes a saved calculation.
func (s *HistoryService) DeleteEntry(ctx context.Context, req *connect.Request[api.DeleteEntryRequest]) (*connect.Response[api.DeleteEntryResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	if err := s.repo.Delete(ctx, deviceID, req.Msg.ID); err != nil {
		return nil, historyError(err)
	}
	s.metrics.HistoryWrites.WithLabelValues("delete_entry").Inc()

	s.logger.Info("Entry deleted", "device_id", deviceID, "entry_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteEntryResponse{}), nil
}

// SaveGroup creates or replaces a participant preset.
func (s *HistoryService) SaveGroup(ctx context.Context, req *connect.Request[api.SaveGroupRequest]) (*connect.Response[api.SaveGroupResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	preset := &models.GroupPreset{Name: req.Msg.Name, Members: req.Msg.Members}
	if err := s.repo.SaveGroup(ctx, deviceID, preset); err != nil {
		s.logger.Error("Failed to save group", "device_id", deviceID, "name", req.Msg.Name, "error", err)
		return nil, historyError(err)
	}
	s.metrics.HistoryWrites.WithLabelValues("save_group").Inc()

	s.logger.Info("Group saved", "device_id", deviceID, "name", preset.Name, "members", len(preset.Members))
	return connect.NewResponse(&api.SaveGroupResponse{Group: fromGroup(preset)}), nil
}

// ListGroups returns the device's presets.
func (s *HistoryService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.repo.ListGroups(ctx, deviceID)
	if err != nil {
		s.logger.Error("Failed to list groups", "device_id", deviceID, "error", err)
		return nil, historyError(err)
	}

	out := make([]api.Group, len(groups))
	for i := range groups {
		out[i] = fromGroup(&groups[i])
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// DeleteGroup removes a preset by name.
func (s *HistoryService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	deviceID, err := requireDevice(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteGroup(ctx, deviceID, req.Msg.Name); err != nil {
		return nil, historyError(err)
	}
	s.metrics.HistoryWrites.WithLabelValues("delete_group").Inc()

	s.logger.Info("Group deleted", "device_id", deviceID, "name", req.Msg.Name)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

func requireDevice(ctx context.Context) (string, error) {
	deviceID := middleware.GetDeviceID(ctx)
	if deviceID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return deviceID, nil
}

// historyError maps repository errors to Connect codes.
func historyError(err error) error {
	switch {
	case errors.Is(err, history.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, history.ErrInvalidEntry):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
