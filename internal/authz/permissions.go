// Package authz is the authorization gate: a typed permission vocabulary,
// an immutable per-request snapshot of an actor's resolved permission set,
// and resolvers that load that snapshot from storage.
package authz

// Permission is a dot-namespaced capability code ("<entity>.<action>").
// Route guards and seeding both consume these constants, never free-form
// strings, so an unknown code is a compile error.
type Permission string

func (p Permission) String() string { return string(p) }

const (
	PermDashboardRead Permission = "dashboard.read"
	PermAuditRead     Permission = "audit.read"

	PermBrandsRead   Permission = "brands.read"
	PermBrandsCreate Permission = "brands.create"
	PermBrandsUpdate Permission = "brands.update"
	PermBrandsDelete Permission = "brands.delete"

	PermCategoriesRead   Permission = "categories.read"
	PermCategoriesCreate Permission = "categories.create"
	PermCategoriesUpdate Permission = "categories.update"
	PermCategoriesDelete Permission = "categories.delete"

	PermProductsRead   Permission = "products.read"
	PermProductsCreate Permission = "products.create"
	PermProductsUpdate Permission = "products.update"
	PermProductsDelete Permission = "products.delete"

	PermPromotionsRead   Permission = "promotions.read"
	PermPromotionsCreate Permission = "promotions.create"
	PermPromotionsUpdate Permission = "promotions.update"
	PermPromotionsDelete Permission = "promotions.delete"

	PermVillesRead   Permission = "villes.read"
	PermVillesCreate Permission = "villes.create"
	PermVillesUpdate Permission = "villes.update"
	PermVillesDelete Permission = "villes.delete"

	PermSecteursRead   Permission = "secteurs.read"
	PermSecteursCreate Permission = "secteurs.create"
	PermSecteursUpdate Permission = "secteurs.update"
	PermSecteursDelete Permission = "secteurs.delete"

	PermCommerciauxRead   Permission = "commerciaux.read"
	PermCommerciauxCreate Permission = "commerciaux.create"
	PermCommerciauxUpdate Permission = "commerciaux.update"
	PermCommerciauxDelete Permission = "commerciaux.delete"

	PermClientsRead   Permission = "clients.read"
	PermClientsCreate Permission = "clients.create"
	PermClientsUpdate Permission = "clients.update"
	PermClientsDelete Permission = "clients.delete"

	PermLivreursRead   Permission = "livreurs.read"
	PermLivreursCreate Permission = "livreurs.create"
	PermLivreursUpdate Permission = "livreurs.update"
	PermLivreursDelete Permission = "livreurs.delete"

	PermTransporteursRead   Permission = "transporteurs.read"
	PermTransporteursCreate Permission = "transporteurs.create"
	PermTransporteursUpdate Permission = "transporteurs.update"
	PermTransporteursDelete Permission = "transporteurs.delete"

	PermEntreesRead   Permission = "entrees.read"
	PermEntreesCreate Permission = "entrees.create"
	PermEntreesUpdate Permission = "entrees.update"
	PermEntreesDelete Permission = "entrees.delete"

	PermUsersRead   Permission = "users.read"
	PermUsersCreate Permission = "users.create"
	PermUsersUpdate Permission = "users.update"
	PermUsersDelete Permission = "users.delete"

	PermRolesManage Permission = "roles.manage"
)

// Definition describes one permission for seeding and for the admin UI list.
type Definition struct {
	Code  Permission
	Name  string
	Group string
}

func crud(group, label string) []Definition {
	return []Definition{
		{Code: Permission(group + ".read"), Name: "Voir " + label, Group: group},
		{Code: Permission(group + ".create"), Name: "Créer " + label, Group: group},
		{Code: Permission(group + ".update"), Name: "Modifier " + label, Group: group},
		{Code: Permission(group + ".delete"), Name: "Supprimer " + label, Group: group},
	}
}

// Definitions enumerates the full permission vocabulary.
func Definitions() []Definition {
	defs := []Definition{
		{Code: PermDashboardRead, Name: "Voir le tableau de bord", Group: "dashboard"},
		{Code: PermAuditRead, Name: "Voir l'historique", Group: "audit"},
	}
	defs = append(defs, crud("brands", "les marques")...)
	defs = append(defs, crud("categories", "les catégories")...)
	defs = append(defs, crud("products", "les produits")...)
	defs = append(defs, crud("promotions", "les promotions")...)
	defs = append(defs, crud("villes", "les villes")...)
	defs = append(defs, crud("secteurs", "les secteurs")...)
	defs = append(defs, crud("commerciaux", "les commerciaux")...)
	defs = append(defs, crud("clients", "les clients")...)
	defs = append(defs, crud("livreurs", "les livreurs")...)
	defs = append(defs, crud("transporteurs", "les transporteurs")...)
	defs = append(defs, crud("entrees", "les entrées de stock")...)
	defs = append(defs, crud("users", "les utilisateurs")...)
	defs = append(defs, Definition{Code: PermRolesManage, Name: "Gérer les rôles", Group: "roles"})
	return defs
}

// AllPermissions returns every defined permission code.
func AllPermissions() []Permission {
	defs := Definitions()
	perms := make([]Permission, 0, len(defs))
	for _, d := range defs {
		perms = append(perms, d.Code)
	}
	return perms
}
