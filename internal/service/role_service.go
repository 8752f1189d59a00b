package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"commerce/internal/apperror"
	"commerce/internal/authz"
	"commerce/internal/model"
	"commerce/internal/repository"

	"github.com/google/uuid"
)

// SnapshotInvalidator evicts cached authorization snapshots after role or
// assignment mutations. The authz.CachedResolver satisfies it.
type SnapshotInvalidator interface {
	Invalidate(userID uuid.UUID)
	InvalidateAll()
}

// noopInvalidator is used when no snapshot cache is wired (tests).
type noopInvalidator struct{}

func (noopInvalidator) Invalidate(uuid.UUID) {}
func (noopInvalidator) InvalidateAll()       {}

// --- DTOs ---

type RoleRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PermissionIDs []string `json:"permission_ids"`
}

// --- Interface ---

type RoleService interface {
	List(ctx context.Context) ([]model.Role, error)
	ListPermissions(ctx context.Context) ([]model.Permission, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Role, error)
	Create(ctx context.Context, req RoleRequest) (*model.Role, error)
	Update(ctx context.Context, id uuid.UUID, req RoleRequest) (*model.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SeedDefaults(ctx context.Context) error
}

type roleService struct {
	roleRepo repository.RoleRepository
	txMgr    repository.TransactionManager
	cache    SnapshotInvalidator
}

func NewRoleService(roleRepo repository.RoleRepository, txMgr repository.TransactionManager, cache SnapshotInvalidator) RoleService {
	if cache == nil {
		cache = noopInvalidator{}
	}
	return &roleService{roleRepo: roleRepo, txMgr: txMgr, cache: cache}
}

// --- Implementation ---

func (s *roleService) List(ctx context.Context) ([]model.Role, error) {
	roles, err := s.roleRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	return roles, nil
}

func (s *roleService) ListPermissions(ctx context.Context) ([]model.Permission, error) {
	perms, err := s.roleRepo.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch permissions: %w", err)
	}
	return perms, nil
}

func (s *roleService) Get(ctx context.Context, id uuid.UUID) (*model.Role, error) {
	role, err := s.roleRepo.FindByIDWithPermissions(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return role, nil
}

// resolvePermissions maps the requested permission ids to rows, rejecting
// ids that do not exist.
func (s *roleService) resolvePermissions(ctx context.Context, ve *apperror.ValidationError, rawIDs []string) ([]model.Permission, error) {
	ids := make([]uuid.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			ve.Add("permission_ids", "must contain valid ids")
			return nil, nil
		}
		ids = append(ids, parsed)
	}
	if len(ids) == 0 {
		return []model.Permission{}, nil
	}

	perms, err := s.roleRepo.FindPermissionsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		ve.Add("permission_ids", "must reference existing permissions")
	}
	return perms, nil
}

func (s *roleService) Create(ctx context.Context, req RoleRequest) (*model.Role, error) {
	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}
	perms, err := s.resolvePermissions(ctx, ve, req.PermissionIDs)
	if err != nil {
		return nil, err
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	role := &model.Role{
		Name:        name,
		Guard:       model.DefaultGuard,
		Description: strings.TrimSpace(req.Description),
	}
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Create(txCtx, role); err != nil {
			return err
		}
		return s.roleRepo.ReplacePermissions(txCtx, role, perms)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("name", "has already been taken")
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}
	return s.Get(ctx, role.ID)
}

func (s *roleService) Update(ctx context.Context, id uuid.UUID, req RoleRequest) (*model.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	ve := apperror.NewValidation()

	name := strings.TrimSpace(req.Name)
	if name == "" {
		ve.Add("name", "required")
	}
	if role.IsSystem && name != role.Name {
		ve.Add("name", "system role cannot be renamed")
	}
	perms, err := s.resolvePermissions(ctx, ve, req.PermissionIDs)
	if err != nil {
		return nil, err
	}
	if err := ve.ErrOrNil(); err != nil {
		return nil, err
	}

	role.Name = name
	role.Description = strings.TrimSpace(req.Description)
	err = s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.roleRepo.Save(txCtx, role); err != nil {
			return err
		}
		return s.roleRepo.ReplacePermissions(txCtx, role, perms)
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperror.Invalid("name", "has already been taken")
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	// Every holder of this role may have gained or lost permissions.
	s.cache.InvalidateAll()
	return s.Get(ctx, id)
}

func (s *roleService) Delete(ctx context.Context, id uuid.UUID) error {
	role, err := s.roleRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return apperror.ErrNotFound
		}
		return err
	}
	if role.IsSystem {
		return apperror.Invalid("role", "system role cannot be deleted")
	}

	if err := s.roleRepo.Delete(ctx, role); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}
	s.cache.InvalidateAll()
	return nil
}

// defaultRolePermissions maps the built-in roles to their permission sets.
func defaultRolePermissions() map[string][]authz.Permission {
	manager := []authz.Permission{
		authz.PermDashboardRead, authz.PermAuditRead,
		authz.PermBrandsRead, authz.PermBrandsCreate, authz.PermBrandsUpdate, authz.PermBrandsDelete,
		authz.PermCategoriesRead, authz.PermCategoriesCreate, authz.PermCategoriesUpdate, authz.PermCategoriesDelete,
		authz.PermProductsRead, authz.PermProductsCreate, authz.PermProductsUpdate, authz.PermProductsDelete,
		authz.PermPromotionsRead, authz.PermPromotionsCreate, authz.PermPromotionsUpdate, authz.PermPromotionsDelete,
		authz.PermVillesRead, authz.PermVillesCreate, authz.PermVillesUpdate, authz.PermVillesDelete,
		authz.PermSecteursRead, authz.PermSecteursCreate, authz.PermSecteursUpdate, authz.PermSecteursDelete,
		authz.PermCommerciauxRead, authz.PermCommerciauxCreate, authz.PermCommerciauxUpdate, authz.PermCommerciauxDelete,
		authz.PermClientsRead, authz.PermClientsCreate, authz.PermClientsUpdate, authz.PermClientsDelete,
		authz.PermLivreursRead, authz.PermLivreursCreate, authz.PermLivreursUpdate, authz.PermLivreursDelete,
		authz.PermTransporteursRead, authz.PermTransporteursCreate, authz.PermTransporteursUpdate, authz.PermTransporteursDelete,
		authz.PermEntreesRead, authz.PermEntreesCreate, authz.PermEntreesUpdate, authz.PermEntreesDelete,
	}
	vendeur := []authz.Permission{
		authz.PermDashboardRead,
		authz.PermBrandsRead, authz.PermCategoriesRead, authz.PermProductsRead, authz.PermPromotionsRead,
		authz.PermVillesRead, authz.PermSecteursRead, authz.PermCommerciauxRead,
		authz.PermClientsRead, authz.PermClientsCreate, authz.PermClientsUpdate,
		authz.PermLivreursRead, authz.PermTransporteursRead, authz.PermEntreesRead,
	}
	return map[string][]authz.Permission{
		"admin":   authz.AllPermissions(),
		"manager": manager,
		"vendeur": vendeur,
	}
}

var defaultRoleDescriptions = map[string]string{
	"admin":   "Accès complet",
	"manager": "Gestion du catalogue, des clients et du stock",
	"vendeur": "Consultation et gestion des clients",
}

// SeedDefaults upserts the permission vocabulary and the built-in roles.
// Safe to run on every startup; existing rows are reused and built-in role
// permission sets are re-synced to the current vocabulary.
func (s *roleService) SeedDefaults(ctx context.Context) error {
	return s.txMgr.RunInTx(ctx, func(txCtx context.Context) error {
		byCode := make(map[authz.Permission]model.Permission)
		for _, def := range authz.Definitions() {
			perm := model.Permission{
				Code:  string(def.Code),
				Guard: model.DefaultGuard,
				Name:  def.Name,
				Group: def.Group,
			}
			if err := s.roleRepo.FindOrCreatePermission(txCtx, &perm); err != nil {
				return fmt.Errorf("failed to seed permission %s: %w", def.Code, err)
			}
			byCode[def.Code] = perm
		}

		for name, permCodes := range defaultRolePermissions() {
			role, err := s.roleRepo.FindByName(txCtx, name)
			if errors.Is(err, repository.ErrRecordNotFound) {
				role = &model.Role{
					Name:        name,
					Guard:       model.DefaultGuard,
					Description: defaultRoleDescriptions[name],
					IsSystem:    true,
				}
				if err := s.roleRepo.Create(txCtx, role); err != nil {
					return fmt.Errorf("failed to seed role %s: %w", name, err)
				}
				log.Printf("Seeded role %q", name)
			} else if err != nil {
				return err
			}

			perms := make([]model.Permission, 0, len(permCodes))
			for _, code := range permCodes {
				if perm, ok := byCode[code]; ok {
					perms = append(perms, perm)
				}
			}
			if err := s.roleRepo.ReplacePermissions(txCtx, role, perms); err != nil {
				return fmt.Errorf("failed to sync permissions for role %s: %w", name, err)
			}
		}
		return nil
	})
}
