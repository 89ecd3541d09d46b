package report

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

// SalesSource supplies sales joined with product identity. The ledger service
// satisfies it and performs the admin check.
type SalesSource interface {
	ListSalesWithProduct(ctx context.Context, principal auth.Principal) ([]domain.SaleWithProduct, error)
}

type Report struct {
	Period      Period                   `json:"period"`
	From        time.Time                `json:"from"`
	To          time.Time                `json:"to"`
	GeneratedAt time.Time                `json:"generated_at"`
	Sales       []domain.SaleWithProduct `json:"sales"`
	Summary     Summary                  `json:"summary"`

	// Location is the calendar zone the period was computed in.
	Location *time.Location `json:"-"`
}

type ReportService interface {
	Analyse(ctx context.Context, principal auth.Principal, period Period) (*Report, error)
	Export(ctx context.Context, principal auth.Principal, period Period, format Format, w io.Writer) (string, error)
}

type reportServiceImpl struct {
	sales    SalesSource
	calendar Calendar
	money    Money
	now      func() time.Time
}

func NewReportService(sales SalesSource, calendar Calendar, money Money) ReportService {
	return &reportServiceImpl{sales: sales, calendar: calendar, money: money, now: time.Now}
}

// Analyse filters the sale history to the period and summarises it. Auth
// errors are returned; any other read failure yields an empty report.
func (s *reportServiceImpl) Analyse(ctx context.Context, principal auth.Principal, period Period) (*Report, error) {
	now := s.now().In(s.calendar.location())
	from, to, err := Window(period, now, s.calendar)
	if err != nil {
		return nil, err
	}

	all, err := s.sales.ListSalesWithProduct(ctx, principal)
	if err != nil {
		if errors.Is(err, auth.ErrUnauthenticated) || errors.Is(err, auth.ErrForbidden) {
			return nil, err
		}
		logger.Error("Svc.Analyse: could not load sales, reporting empty period", err, string(period))
		all = nil
	}

	filtered, err := FilterByPeriod(all, period, now, s.calendar)
	if err != nil {
		return nil, err
	}
	return &Report{
		Period:      period,
		From:        from,
		To:          to,
		GeneratedAt: now,
		Sales:       filtered,
		Summary:     Summarize(filtered),
		Location:    s.calendar.location(),
	}, nil
}

// Export writes the period report in the requested format and returns the
// file name to offer the user.
func (s *reportServiceImpl) Export(ctx context.Context, principal auth.Principal, period Period, format Format, w io.Writer) (string, error) {
	r, err := s.Analyse(ctx, principal, period)
	if err != nil {
		return "", err
	}
	switch format {
	case FormatCSV:
		err = WriteCSV(w, r, s.money)
	case FormatXLSX:
		err = WriteXLSX(w, r, s.money)
	default:
		return "", ErrUnknownFormat
	}
	if err != nil {
		logger.Error("Svc.Export: write failed", err, string(format))
		return "", err
	}
	return FileName(period, r.GeneratedAt, format), nil
}
