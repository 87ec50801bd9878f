package access

import "edeon_enerji/internal/domain"

// MenuItem is an entry of the side navigation.
type MenuItem struct {
	Name     string     `json:"name"`
	Href     string     `json:"href,omitempty"`
	Children []MenuItem `json:"children,omitempty"`
}

// Navigation returns the menu visible to role. Guards only get the
// home page, guard duty and settings.
func Navigation(role domain.Role) []MenuItem {
	home := MenuItem{Name: "Anasayfa", Href: "/anasayfa"}
	settings := MenuItem{Name: "Ayarlar", Href: "/ayarlar"}

	if role == domain.RoleGuard {
		return []MenuItem{
			home,
			{Name: "Nöbet Kontrol", Href: "/nobet-kontrol"},
			settings,
		}
	}

	items := []MenuItem{
		home,
		{Name: "Arızalar", Href: "/arizalar"},
		{Name: "Stok Kontrol", Href: "/stok-kontrol"},
		{
			Name: "GES Yönetimi",
			Children: []MenuItem{
				{Name: "Santral Yönetimi", Href: "/ges-yonetimi"},
				{Name: "Üretim Verileri", Href: "/uretim-verileri"},
			},
		},
		{
			Name: "Bakım & Kontrol",
			Children: []MenuItem{
				{Name: "Yapılan İşler", Href: "/yapilan-isler"},
				{Name: "Mekanik Bakım", Href: "/mekanik-bakim"},
				{Name: "Elektrik Bakım", Href: "/elektrik-bakim"},
				{Name: "Bakım Raporları", Href: "/bakim-raporlari"},
			},
		},
		{Name: "Sahalar", Href: "/sahalar"},
		{Name: "İstatistikler", Href: "/istatistikler"},
	}
	if role != domain.RoleCustomer {
		items = append(items, MenuItem{Name: "Performans", Href: "/performans"})
	}
	items = append(items, MenuItem{Name: "Raporlar", Href: "/raporlar"})
	if role == domain.RoleManager {
		items = append(items,
			MenuItem{Name: "Müşteriler", Href: "/musteriler"},
			MenuItem{Name: "Ekip", Href: "/ekip"},
		)
	}
	return append(items, settings)
}
