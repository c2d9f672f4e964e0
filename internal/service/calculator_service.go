package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/calckit/internal/calculator"
	"github.com/mmynk/calckit/internal/cycle"
	"github.com/mmynk/calckit/internal/finance"
	"github.com/mmynk/calckit/internal/metrics"
	"github.com/mmynk/calckit/internal/settlement"
	"github.com/mmynk/calckit/pkg/api"
)

// CalculatorService implements calckit.v1.CalculatorService.
// Every method is a pure calculation; nothing is stored.
type CalculatorService struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCalculatorService creates a new CalculatorService.
func NewCalculatorService(m *metrics.Metrics, logger *slog.Logger) *CalculatorService {
	return &CalculatorService{
		metrics: m,
		logger:  logger,
	}
}

// Settle computes the transfers that clear a set of net balances.
func (s *CalculatorService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	balances := toBalances(req.Msg.Balances)
	if err := settlement.Validate(balances); err != nil {
		return nil, s.invalid("settle", err)
	}
	transfers := settlement.Settle(balances)
	drift := settlement.Net(balances)

	s.observeSettlement("settle", len(transfers), drift)
	if drift != 0 {
		s.logger.Debug("Balances do not sum to zero", "drift", drift)
	}

	return connect.NewResponse(&api.SettleResponse{
		Transfers: fromTransfers(transfers),
		Drift:     drift,
	}), nil
}

// DutchPay splits one expense and settles it.
func (s *CalculatorService) DutchPay(ctx context.Context, req *connect.Request[api.DutchPayRequest]) (*connect.Response[api.DutchPayResponse], error) {
	result, err := dutchPay(req.Msg)
	if err != nil {
		return nil, s.invalid("dutchpay", err)
	}

	s.logger.Debug("Dutch pay calculated",
		"participants", len(result.Shares),
		"total", result.Total,
		"transfers", len(result.Transfers),
		"drift", result.Drift,
	)
	s.observeSettlement("dutchpay", len(result.Transfers), result.Drift)

	return connect.NewResponse(fromDutchPay(result)), nil
}

// SettleGroup combines several bills and recorded payments into one settlement.
func (s *CalculatorService) SettleGroup(ctx context.Context, req *connect.Request[api.SettleGroupRequest]) (*connect.Response[api.SettleGroupResponse], error) {
	bills := make([]*calculator.Result, 0, len(req.Msg.Bills))
	for i := range req.Msg.Bills {
		result, err := dutchPay(&req.Msg.Bills[i])
		if err != nil {
			s.logger.Warn("Invalid bill in group", "index", i, "error", err)
			return nil, s.invalid("settle_group", err)
		}
		bills = append(bills, result)
	}

	members, transfers, err := calculator.GroupBalances(bills, toTransfers(req.Msg.Payments))
	if err != nil {
		return nil, s.invalid("settle_group", err)
	}

	var drift int64
	for _, m := range members {
		drift += m.NetBalance
	}
	s.observeSettlement("settle_group", len(transfers), drift)

	return connect.NewResponse(&api.SettleGroupResponse{
		Members:   fromMemberBalances(members),
		Transfers: fromTransfers(transfers),
	}), nil
}

// Interest computes deposit or savings interest after withholding tax.
func (s *CalculatorService) Interest(ctx context.Context, req *connect.Request[api.InterestRequest]) (*connect.Response[api.InterestResponse], error) {
	result, err := finance.Interest(toInterestInput(req.Msg))
	if err != nil {
		return nil, s.invalid("interest", err)
	}
	s.metrics.Calculations.WithLabelValues("interest").Inc()

	return connect.NewResponse(fromInterest(result)), nil
}

// Severance computes statutory severance pay and retirement income tax.
func (s *CalculatorService) Severance(ctx context.Context, req *connect.Request[api.SeveranceRequest]) (*connect.Response[api.SeveranceResponse], error) {
	in, err := toSeveranceInput(req.Msg)
	if err != nil {
		return nil, s.invalid("severance", err)
	}
	result, err := finance.Severance(in)
	if err != nil {
		return nil, s.invalid("severance", err)
	}
	s.metrics.Calculations.WithLabelValues("severance").Inc()

	return connect.NewResponse(fromSeverance(result)), nil
}

// Ovulation predicts upcoming cycles.
func (s *CalculatorService) Ovulation(ctx context.Context, req *connect.Request[api.OvulationRequest]) (*connect.Response[api.OvulationResponse], error) {
	in, err := toCycleInput(req.Msg)
	if err != nil {
		return nil, s.invalid("ovulation", err)
	}
	cycles, err := cycle.Predict(in)
	if err != nil {
		return nil, s.invalid("ovulation", err)
	}
	s.metrics.Calculations.WithLabelValues("ovulation").Inc()

	return connect.NewResponse(&api.OvulationResponse{Cycles: fromCycles(cycles)}), nil
}

// invalid counts a rejected calculation. Calculator errors are always input errors.
func (s *CalculatorService) invalid(calc string, err error) error {
	s.metrics.CalculationErrors.WithLabelValues(calc).Inc()
	return connect.NewError(connect.CodeInvalidArgument, err)
}

func (s *CalculatorService) observeSettlement(calc string, transfers int, drift int64) {
	if drift < 0 {
		drift = -drift
	}
	s.metrics.Calculations.WithLabelValues(calc).Inc()
	s.metrics.SettlementSize.Observe(float64(transfers))
	s.metrics.RoundingDrift.Observe(float64(drift))
}
