package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/calckit/pkg/api"
)

// NewCalculatorServiceHandler builds an HTTP handler for the calculator
// service. It returns the path to mount the handler on.
func NewCalculatorServiceHandler(svc *CalculatorService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(api.CalculatorServiceSettleProcedure, connect.NewUnaryHandler(api.CalculatorServiceSettleProcedure, svc.Settle, opts...))
	mux.Handle(api.CalculatorServiceDutchPayProcedure, connect.NewUnaryHandler(api.CalculatorServiceDutchPayProcedure, svc.DutchPay, opts...))
	mux.Handle(api.CalculatorServiceSettleGroupProcedure, connect.NewUnaryHandler(api.CalculatorServiceSettleGroupProcedure, svc.SettleGroup, opts...))
	mux.Handle(api.CalculatorServiceInterestProcedure, connect.NewUnaryHandler(api.CalculatorServiceInterestProcedure, svc.Interest, opts...))
	mux.Handle(api.CalculatorServiceSeveranceProcedure, connect.NewUnaryHandler(api.CalculatorServiceSeveranceProcedure, svc.Severance, opts...))
	mux.Handle(api.CalculatorServiceOvulationProcedure, connect.NewUnaryHandler(api.CalculatorServiceOvulationProcedure, svc.Ovulation, opts...))
	return "/" + api.CalculatorServiceName + "/", mux
}

// NewDeviceServiceHandler builds an HTTP handler for the device service.
func NewDeviceServiceHandler(svc *DeviceService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(api.DeviceServiceRegisterProcedure, connect.NewUnaryHandler(api.DeviceServiceRegisterProcedure, svc.Register, opts...))
	return "/" + api.DeviceServiceName + "/", mux
}

// NewHistoryServiceHandler builds an HTTP handler for the history service.
// Pass middleware.RequireDevice as an interceptor.
func NewHistoryServiceHandler(svc *HistoryService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	mux := http.NewServeMux()
	mux.Handle(api.HistoryServiceSaveEntryProcedure, connect.NewUnaryHandler(api.HistoryServiceSaveEntryProcedure, svc.SaveEntry, opts...))
	mux.Handle(api.HistoryServiceListEntriesProcedure, connect.NewUnaryHandler(api.HistoryServiceListEntriesProcedure, svc.ListEntries, opts...))
	mux.Handle(api.HistoryServiceGetEntryProcedure, connect.NewUnaryHandler(api.HistoryServiceGetEntryProcedure, svc.GetEntry, opts...))
	mux.Handle(api.HistoryServiceDeleteEntryProcedure, connect.NewUnaryHandler(api.HistoryServiceDeleteEntryProcedure, svc.DeleteEntry, opts...))
	mux.Handle(api.HistoryServiceSaveGroupProcedure, connect.NewUnaryHandler(api.HistoryServiceSaveGroupProcedure, svc.SaveGroup, opts...))
	mux.Handle(api.HistoryServiceListGroupsProcedure, connect.NewUnaryHandler(api.HistoryServiceListGroupsProcedure, svc.ListGroups, opts...))
	mux.Handle(api.HistoryServiceDeleteGroupProcedure, connect.NewUnaryHandler(api.HistoryServiceDeleteGroupProcedure, svc.DeleteGroup, opts...))
	return "/" + api.HistoryServiceName + "/", mux
}

func withCodec(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{api.WithCodec()}, opts...)
}
