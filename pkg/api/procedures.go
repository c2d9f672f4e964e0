// Package api defines the calckit RPC surface: procedure names, JSON
// messages and Connect clients.
//
// All money amounts are integers in the smallest currency unit. Dates are
// "YYYY-MM-DD" strings.
package api

const (
	CalculatorServiceName = "calckit.v1.CalculatorService"
	DeviceServiceName     = "calckit.v1.DeviceService"
	HistoryServiceName    = "calckit.v1.HistoryService"
)

const (
	CalculatorServiceSettleProcedure      = "/calckit.v1.CalculatorService/Settle"
	CalculatorServiceDutchPayProcedure    = "/calckit.v1.CalculatorService/DutchPay"
	CalculatorServiceSettleGroupProcedure = "/calckit.v1.CalculatorService/SettleGroup"
	CalculatorServiceInterestProcedure    = "/calckit.v1.CalculatorService/Interest"
	CalculatorServiceSeveranceProcedure   = "/calckit.v1.CalculatorService/Severance"
	CalculatorServiceOvulationProcedure   = "/calckit.v1.CalculatorService/Ovulation"

	DeviceServiceRegisterProcedure = "/calckit.v1.DeviceService/Register"

	HistoryServiceSaveEntryProcedure   = "/calckit.v1.HistoryService/SaveEntry"
	HistoryServiceListEntriesProcedure = "/calckit.v1.HistoryService/ListEntries"
	HistoryServiceGetEntryProcedure    = "/calckit.v1.HistoryService/GetEntry"
	HistoryServiceDeleteEntryProcedure = "/calckit.v1.HistoryService/DeleteEntry"
	HistoryServiceSaveGroupProcedure   = "/calckit.v1.HistoryService/SaveGroup"
	HistoryServiceListGroupsProcedure  = "/calckit.v1.HistoryService/ListGroups"
	HistoryServiceDeleteGroupProcedure = "/calckit.v1.HistoryService/DeleteGroup"
)
