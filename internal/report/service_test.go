package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ridloal/lux-storefront/internal/ledger/domain"
	"github.com/ridloal/lux-storefront/internal/ledger/service/mocks"
	"github.com/ridloal/lux-storefront/internal/platform/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = auth.Principal{Email: "owner@example.com"}

func newTestService(t *testing.T, src SalesSource, now time.Time) ReportService {
	t.Helper()
	svc := NewReportService(src, utcSunday, testMoney(t))
	svc.(*reportServiceImpl).now = func() time.Time { return now }
	return svc
}

func TestReportService_Analyse(t *testing.T) {
	ctx := context.TODO()
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)

	t.Run("Filters to the period and summarises", func(t *testing.T) {
		src := new(mocks.MockLedgerService)
		inMonth := sold("Linen Shirt", "White", "M", 3, 150, 100)
		inMonth.SoldAt = now.Add(-48 * time.Hour)
		lastMonth := sold("Denim Jacket", "Blue", "L", 9, 300, 200)
		lastMonth.SoldAt = time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
		src.On("ListSalesWithProduct", ctx, admin).Return([]domain.SaleWithProduct{inMonth, lastMonth}, nil).Once()

		r, err := newTestService(t, src, now).Analyse(ctx, admin, PeriodMonth)
		require.NoError(t, err)
		assert.Len(t, r.Sales, 1)
		assert.Equal(t, 3, r.Summary.TotalItems)
		assert.Equal(t, "Linen Shirt (White, M)", r.Summary.BestSeller.Name)
		assert.True(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Equal(r.From))
		assert.Equal(t, time.UTC, r.Location)
		src.AssertExpectations(t)
	})

	t.Run("Store failure degrades to empty report", func(t *testing.T) {
		src := new(mocks.MockLedgerService)
		src.On("ListSalesWithProduct", ctx, admin).Return(nil, errors.New("timeout")).Once()

		r, err := newTestService(t, src, now).Analyse(ctx, admin, PeriodToday)
		require.NoError(t, err)
		assert.Empty(t, r.Sales)
		assert.Nil(t, r.Summary.BestSeller)
	})

	t.Run("Auth errors surface", func(t *testing.T) {
		src := new(mocks.MockLedgerService)
		guest := auth.Principal{Email: "guest@example.com"}
		src.On("ListSalesWithProduct", ctx, guest).Return(nil, auth.ErrForbidden).Once()

		_, err := newTestService(t, src, now).Analyse(ctx, guest, PeriodToday)
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("Unknown period", func(t *testing.T) {
		src := new(mocks.MockLedgerService)
		_, err := newTestService(t, src, now).Analyse(ctx, admin, Period("decade"))
		assert.ErrorIs(t, err, ErrUnknownPeriod)
		assert.Empty(t, src.Calls)
	})
}

func TestReportService_Export(t *testing.T) {
	ctx := context.TODO()
	now := time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC)
	s := sold("Linen Shirt", "White", "M", 3, 150, 100)
	s.SoldAt = now

	src := new(mocks.MockLedgerService)
	src.On("ListSalesWithProduct", ctx, admin).Return([]domain.SaleWithProduct{s}, nil).Twice()
	svc := newTestService(t, src, now)

	var csvBuf bytes.Buffer
	name, err := svc.Export(ctx, admin, PeriodToday, FormatCSV, &csvBuf)
	require.NoError(t, err)
	assert.Equal(t, "LUX-G_Sales_Report_today_2024-05-15.csv", name)
	assert.Contains(t, csvBuf.String(), "Total Sales Items,3")

	var xlsxBuf bytes.Buffer
	name, err = svc.Export(ctx, admin, PeriodToday, FormatXLSX, &xlsxBuf)
	require.NoError(t, err)
	assert.Equal(t, "LUX-G_Sales_Report_today_2024-05-15.xlsx", name)
	assert.Equal(t, []byte("PK"), xlsxBuf.Bytes()[:2])
	src.AssertExpectations(t)
}
