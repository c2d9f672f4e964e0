package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// CalculatorClient is a client for the calckit.v1.CalculatorService service.
type CalculatorClient struct {
	settle      *connect.Client[SettleRequest, SettleResponse]
	dutchPay    *connect.Client[DutchPayRequest, DutchPayResponse]
	settleGroup *connect.Client[SettleGroupRequest, SettleGroupResponse]
	interest    *connect.Client[InterestRequest, InterestResponse]
	severance   *connect.Client[SeveranceRequest, SeveranceResponse]
	ovulation   *connect.Client[OvulationRequest, OvulationResponse]
}

// NewCalculatorClient constructs a client for the calckit.v1.CalculatorService
// service. The baseURL is the server root, e.g. http://localhost:8080.
func NewCalculatorClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *CalculatorClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &CalculatorClient{
		settle:      connect.NewClient[SettleRequest, SettleResponse](httpClient, baseURL+CalculatorServiceSettleProcedure, opts...),
		dutchPay:    connect.NewClient[DutchPayRequest, DutchPayResponse](httpClient, baseURL+CalculatorServiceDutchPayProcedure, opts...),
		settleGroup: connect.NewClient[SettleGroupRequest, SettleGroupResponse](httpClient, baseURL+CalculatorServiceSettleGroupProcedure, opts...),
		interest:    connect.NewClient[InterestRequest, InterestResponse](httpClient, baseURL+CalculatorServiceInterestProcedure, opts...),
		severance:   connect.NewClient[SeveranceRequest, SeveranceResponse](httpClient, baseURL+CalculatorServiceSeveranceProcedure, opts...),
		ovulation:   connect.NewClient[OvulationRequest, OvulationResponse](httpClient, baseURL+CalculatorServiceOvulationProcedure, opts...),
	}
}

// Settle calls calckit.v1.CalculatorService.Settle.
func (c *CalculatorClient) Settle(ctx context.Context, req *connect.Request[SettleRequest]) (*connect.Response[SettleResponse], error) {
	return c.settle.CallUnary(ctx, req)
}

// DutchPay calls calckit.v1.CalculatorService.DutchPay.
func (c *CalculatorClient) DutchPay(ctx context.Context, req *connect.Request[DutchPayRequest]) (*connect.Response[DutchPayResponse], error) {
	return c.dutchPay.CallUnary(ctx, req)
}

// SettleGroup calls calckit.v1.CalculatorService.SettleGroup.
func (c *CalculatorClient) SettleGroup(ctx context.Context, req *connect.Request[SettleGroupRequest]) (*connect.Response[SettleGroupResponse], error) {
	return c.settleGroup.CallUnary(ctx, req)
}

// Interest calls calckit.v1.CalculatorService.Interest.
func (c *CalculatorClient) Interest(ctx context.Context, req *connect.Request[InterestRequest]) (*connect.Response[InterestResponse], error) {
	return c.interest.CallUnary(ctx, req)
}

// Severance calls calckit.v1.CalculatorService.Severance.
func (c *CalculatorClient) Severance(ctx context.Context, req *connect.Request[SeveranceRequest]) (*connect.Response[SeveranceResponse], error) {
	return c.severance.CallUnary(ctx, req)
}

// Ovulation calls calckit.v1.CalculatorService.Ovulation.
func (c *CalculatorClient) Ovulation(ctx context.Context, req *connect.Request[OvulationRequest]) (*connect.Response[OvulationResponse], error) {
	return c.ovulation.CallUnary(ctx, req)
}

// DeviceClient is a client for the calckit.v1.DeviceService service.
type DeviceClient struct {
	register *connect.Client[RegisterDeviceRequest, RegisterDeviceResponse]
}

func NewDeviceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DeviceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &DeviceClient{
		register: connect.NewClient[RegisterDeviceRequest, RegisterDeviceResponse](httpClient, baseURL+DeviceServiceRegisterProcedure, opts...),
	}
}

// Register calls calckit.v1.DeviceService.Register.
func (c *DeviceClient) Register(ctx context.Context, req *connect.Request[RegisterDeviceRequest]) (*connect.Response[RegisterDeviceResponse], error) {
	return c.register.CallUnary(ctx, req)
}

// HistoryClient is a client for the calckit.v1.HistoryService service.
// Every call needs an "Authorization: Bearer <token>" header.
type HistoryClient struct {
	saveEntry   *connect.Client[SaveEntryRequest, SaveEntryResponse]
	listEntries *connect.Client[ListEntriesRequest, ListEntriesResponse]
	getEntry    *connect.Client[GetEntryRequest, GetEntryResponse]
	deleteEntry *connect.Client[DeleteEntryRequest, DeleteEntryResponse]
	saveGroup   *connect.Client[SaveGroupRequest, SaveGroupResponse]
	listGroups  *connect.Client[ListGroupsRequest, ListGroupsResponse]
	deleteGroup *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
}

func NewHistoryClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *HistoryClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = withCodec(opts)
	return &HistoryClient{
		saveEntry:   connect.NewClient[SaveEntryRequest, SaveEntryResponse](httpClient, baseURL+HistoryServiceSaveEntryProcedure, opts...),
		listEntries: connect.NewClient[ListEntriesRequest, ListEntriesResponse](httpClient, baseURL+HistoryServiceListEntriesProcedure, opts...),
		getEntry:    connect.NewClient[GetEntryRequest, GetEntryResponse](httpClient, baseURL+HistoryServiceGetEntryProcedure, opts...),
		deleteEntry: connect.NewClient[DeleteEntryRequest, DeleteEntryResponse](httpClient, baseURL+HistoryServiceDeleteEntryProcedure, opts...),
		saveGroup:   connect.NewClient[SaveGroupRequest, SaveGroupResponse](httpClient, baseURL+HistoryServiceSaveGroupProcedure, opts...),
		listGroups:  connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+HistoryServiceListGroupsProcedure, opts...),
		deleteGroup: connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+HistoryServiceDeleteGroupProcedure, opts...),
	}
}

func (c *HistoryClient) SaveEntry(ctx context.Context, req *connect.Request[SaveEntryRequest]) (*connect.Response[SaveEntryResponse], error) {
	return c.saveEntry.CallUnary(ctx, req)
}

func (c *HistoryClient) ListEntries(ctx context.Context, req *connect.Request[ListEntriesRequest]) (*connect.Response[ListEntriesResponse], error) {
	return c.listEntries.CallUnary(ctx, req)
}

func (c *HistoryClient) GetEntry(ctx context.Context, req *connect.Request[GetEntryRequest]) (*connect.Response[GetEntryResponse], error) {
	return c.getEntry.CallUnary(ctx, req)
}

func (c *HistoryClient) DeleteEntry(ctx context.Context, req *connect.Request[DeleteEntryRequest]) (*connect.Response[DeleteEntryResponse], error) {
	return c.deleteEntry.CallUnary(ctx, req)
}

func (c *HistoryClient) SaveGroup(ctx context.Context, req *connect.Request[SaveGroupRequest]) (*connect.Response[SaveGroupResponse], error) {
	return c.saveGroup.CallUnary(ctx, req)
}

func (c *HistoryClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *HistoryClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// withCodec puts the JSON codec first so callers can still override
// other settings.
func withCodec(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{WithCodec()}, opts...)
}
