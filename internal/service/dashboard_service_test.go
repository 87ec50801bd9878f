package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edeon_enerji/internal/domain"
)

func seedDashboard(t *testing.T, f *fixture) (domain.Site, domain.Site) {
	t.Helper()
	ctx := context.Background()
	a := f.addSite("A")
	b := f.addSite("B")

	for i, st := range []domain.FaultStatus{domain.StatusOpen, domain.StatusResolved, domain.StatusInProgress} {
		saha := a.ID.Hex()
		if i == 2 {
			saha = b.ID.Hex()
		}
		require.NoError(t, f.faults.Insert(ctx, &domain.Fault{
			Baslik:          "f",
			Saha:            saha,
			Durum:           st,
			Oncelik:         domain.PriorityLow,
			OlusturmaTarihi: f.now.AddDate(0, 0, -i),
		}))
	}
	// outside the weekly chart
	require.NoError(t, f.faults.Insert(ctx, &domain.Fault{Saha: a.ID.Hex(), Durum: domain.StatusResolved, OlusturmaTarihi: f.now.AddDate(0, 0, -20)}))

	require.NoError(t, f.stock.Insert(ctx, &domain.StockItem{Ad: "Sigorta", Miktar: 2, KritikSeviye: 5}))
	require.NoError(t, f.stock.Insert(ctx, &domain.StockItem{Ad: "Kablo", Miktar: 50, KritikSeviye: 5}))

	require.NoError(t, f.maint.Insert(ctx, &domain.Maintenance{Tur: domain.KindMechanical, SahaID: a.ID.Hex(), Tarih: f.now}))
	require.NoError(t, f.maint.Insert(ctx, &domain.Maintenance{Tur: domain.KindElectrical, SahaID: b.ID.Hex(), Tarih: f.now}))

	for i, y := range []float64{100, 200, 300} {
		d := startOfDay(f.now, testLoc).AddDate(0, 0, -i*10)
		require.NoError(t, f.prod.Insert(ctx, &domain.Production{SantralID: "p", Tarih: d, Gun: d.Format(domain.DayLayout), GunlukUretim: y, TasarrufEdilenCO2: y / 2}))
	}
	return a, b
}

func TestDashboard_Build(t *testing.T) {
	f := newFixture(false)
	a, b := seedDashboard(t, f)

	d, err := f.svc.Dashboard.Get(context.Background(), manager)
	require.NoError(t, err)

	c := d.Istatistikler
	assert.Equal(t, 4, c.ToplamAriza)
	assert.Equal(t, 1, c.AcikAriza)
	assert.Equal(t, 1, c.DevamEdenAriza)
	assert.Equal(t, 2, c.CozulenAriza)
	assert.Equal(t, 50, c.PerformansSkoru)
	assert.Equal(t, 1, c.KritikStok)
	assert.Equal(t, 2, c.ToplamBakim)

	assert.Len(t, d.SonArizalar, 4)
	assert.True(t, d.SonArizalar[0].OlusturmaTarihi.Equal(f.now))

	require.Len(t, d.HaftalikArizalar, 7)
	assert.Equal(t, "2024-06-15", d.HaftalikArizalar[6].Date)
	assert.Equal(t, 1, d.HaftalikArizalar[6].Value)
	assert.Equal(t, 1, d.HaftalikArizalar[5].Value)

	assert.Equal(t, []SitePerformance{
		{SahaID: a.ID.Hex(), Saha: "A", ArizaSayisi: 3, Cozulen: 2, Performans: 67},
		{SahaID: b.ID.Hex(), Saha: "B", ArizaSayisi: 1, Cozulen: 0, Performans: 0},
	}, d.SahaPerformansi)

	u := d.Uretim
	assert.Equal(t, 600.0, u.ToplamUretim)
	assert.Equal(t, 300.0, u.ToplamCO2)
	assert.Equal(t, 300.0, u.BuAyUretim) // 15 and 5 June
	assert.Equal(t, 600.0, u.BuYilUretim)
	require.Len(t, u.Grafik, 3)
	assert.Equal(t, "26 May", u.Grafik[0].Label)
	assert.Equal(t, 100.0, u.Grafik[2].Uretim)
}

func TestDashboard_SiteWithoutFaults(t *testing.T) {
	got := sitePerformance([]domain.Site{{Ad: "Boş"}}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, 100, got[0].Performans)
}

func TestDashboard_DegradesPerSection(t *testing.T) {
	f := newFixture(false)
	seedDashboard(t, f)
	f.faults.err = errors.New("faults down")

	d, err := f.svc.Dashboard.Get(context.Background(), manager)
	require.NoError(t, err)
	assert.Empty(t, d.SonArizalar)
	assert.Empty(t, d.SahaPerformansi)
	assert.Zero(t, d.Istatistikler.ToplamAriza)
	assert.Equal(t, 1, d.Istatistikler.KritikStok)
	assert.Equal(t, 600.0, d.Uretim.ToplamUretim)
}

func TestDashboard_EmptyCustomer(t *testing.T) {
	f := newFixture(false)
	seedDashboard(t, f)

	d, err := f.svc.Dashboard.Get(context.Background(), customer())
	require.NoError(t, err)
	assert.Zero(t, d.Istatistikler)
	assert.NotNil(t, d.SonArizalar)
	assert.NotNil(t, d.Uretim.Grafik)
}

func TestDashboard_CacheInvalidatedByWrites(t *testing.T) {
	f := newFixture(false)
	defer f.svc.Close()
	a, _ := seedDashboard(t, f)
	f.svc.Dashboard.ttl = time.Minute
	ctx := context.Background()

	first, err := f.svc.Dashboard.Get(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, 4, first.Istatistikler.ToplamAriza)

	require.NoError(t, f.faults.Insert(ctx, &domain.Fault{Saha: a.ID.Hex(), Durum: domain.StatusOpen, OlusturmaTarihi: f.now}))
	cached, err := f.svc.Dashboard.Get(ctx, manager)
	require.NoError(t, err)
	assert.Same(t, first, cached)

	_, err = f.svc.Faults.Create(ctx, technician, FaultInput{Baslik: "yeni", Saha: a.ID.Hex(), Oncelik: domain.PriorityLow})
	require.NoError(t, err)

	fresh, err := f.svc.Dashboard.Get(ctx, manager)
	require.NoError(t, err)
	assert.Equal(t, 6, fresh.Istatistikler.ToplamAriza)
}
