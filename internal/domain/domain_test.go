package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("create plant: %w", NewValidationError("ad", "Bu alan zorunludur"))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Bu alan zorunludur", verr.First())
	assert.Contains(t, err.Error(), "ad: Bu alan zorunludur")
}

func TestValidate_PlantUsesJSONNames(t *testing.T) {
	err := Validate(&Plant{Kapasite: 0, TeknikOzellikler: TechSpecs{SistemVerimi: 120}})
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "ad")
	assert.Contains(t, verr.Fields, "kapasite")
	assert.Contains(t, verr.Fields, "sistemVerimi")

	assert.NoError(t, Validate(&Plant{Ad: "Konya GES", Kapasite: 250}))
}

func TestValidate_CustomRules(t *testing.T) {
	type monthQuery struct {
		Ay  string `json:"ay" validate:"yyyymm"`
		Rol Role   `json:"rol" validate:"role"`
	}

	assert.NoError(t, Validate(&monthQuery{Ay: "2024-03", Rol: RoleGuard}))

	err := Validate(&monthQuery{Ay: "2024-13", Rol: "admin"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Ay YYYY-AA biçiminde olmalıdır", verr.Fields["ay"])
	assert.Equal(t, "Geçersiz kullanıcı rolü", verr.Fields["rol"])
}

func TestScope(t *testing.T) {
	assert.True(t, Unrestricted.Allows("anything"))
	assert.False(t, Unrestricted.Empty())

	s := Restrict([]string{"a", "b"})
	assert.True(t, s.Allows("a"))
	assert.False(t, s.Allows("c"))
	assert.Equal(t, []string{"b"}, s.Narrow("b").SiteIDs)
	assert.True(t, s.Narrow("c").Empty())
	assert.Equal(t, s, s.Narrow(""))

	assert.True(t, Restrict(nil).Empty())
	assert.False(t, Restrict(nil).Allows("a"))
}

func TestFaultDisplayAndShortID(t *testing.T) {
	id, err := primitive.ObjectIDFromHex("65a1b2c3d4e5f60718293a4b")
	require.NoError(t, err)

	f := Fault{ID: id, Durum: StatusInProgress, Oncelik: PriorityHigh}
	assert.Equal(t, "293A4B", f.ShortID())
	assert.Equal(t, "Devam ediyor", f.Durum.Display())
	assert.Equal(t, "Yuksek", f.Oncelik.Display())
	assert.Equal(t, "Yüksek", f.Oncelik.Label())
	assert.Equal(t, 3, PriorityUrgent.Rank())
}

func TestFaultResolutionTime(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	f := Fault{
		Durum:           StatusResolved,
		OlusturmaTarihi: created,
		Cozum:           &Resolution{TamamlanmaTarihi: created.Add(3 * time.Hour)},
	}
	d, ok := f.ResolutionTime()
	require.True(t, ok)
	assert.Equal(t, 3*time.Hour, d)

	f.Durum = StatusOpen
	_, ok = f.ResolutionTime()
	assert.False(t, ok)
}

func TestMaintenanceHasIssue(t *testing.T) {
	m := Maintenance{
		Tur: KindElectrical,
		Durumlar: map[string]map[string]bool{
			"trafolar":    {"yagSeviyesi": true, "sicaklik": true},
			"invertorler": {"fan": true},
		},
	}
	assert.False(t, m.HasIssue())
	assert.Empty(t, m.Issues())
	require.NoError(t, m.CheckCategories())

	m.Durumlar["invertorler"]["ekran"] = false
	m.Aciklamalar = map[string]map[string]string{"invertorler": {"ekran": "Ekran kırık"}}
	assert.True(t, m.HasIssue())

	issues := m.Issues()
	require.Len(t, issues, 1)
	assert.Equal(t, "İnvertörler", issues[0].Label)
	assert.Equal(t, "Ekran kırık", issues[0].Note)
}

func TestMaintenanceCheckCategories(t *testing.T) {
	m := Maintenance{
		Tur:      KindMechanical,
		Durumlar: map[string]map[string]bool{"trafolar": {"x": true}},
	}
	err := m.CheckCategories()
	assert.True(t, errors.Is(err, ErrValidation))

	m.Durumlar = map[string]map[string]bool{"pvModulleri": {"x": true}}
	assert.NoError(t, m.CheckCategories())

	assert.Len(t, KindMechanical.Categories(), 6)
	assert.Len(t, KindElectrical.Categories(), 9)
	assert.Equal(t, "Kablolar", KindElectrical.CategoryLabel("kabloTasima"))
}

func TestStockCritical(t *testing.T) {
	assert.True(t, StockItem{Miktar: 5, KritikSeviye: 5}.Critical())
	assert.False(t, StockItem{Miktar: 6, KritikSeviye: 5}.Critical())
}

func TestTimeRangeContains(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	r := TimeRange{From: &from, To: &to}

	assert.True(t, r.Contains(from))
	assert.False(t, r.Contains(to))
	assert.True(t, TimeRange{}.Contains(to))
}
