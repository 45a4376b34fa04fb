package inventory

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Registry implements the LocationRegistry interface
// Implementação do registro de OMs e localizações
type Registry struct {
	storage Storage
	logger  *zap.Logger
}

var _ LocationRegistry = (*Registry)(nil)

// NewRegistry creates a new location registry
// Cria um novo registro de localizações
func NewRegistry(storage Storage, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		storage: storage,
		logger:  logger,
	}
}

// CreateSite registers a new site
// Cadastra uma nova OM
func (r *Registry) CreateSite(ctx context.Context, site *Site) error {
	site.Name = strings.TrimSpace(site.Name)
	if site.Name == "" {
		return NewValidationError("name", "nome da OM é obrigatório", "")
	}
	if site.Type == "" {
		site.Type = SiteTypeInternal
	}
	if err := ValidateSiteType(site.Type); err != nil {
		return err
	}
	if err := r.storage.CreateSite(ctx, site); err != nil {
		return NewStorageError("create_site", "falha ao cadastrar OM", err)
	}

	r.logger.Info("OM cadastrada",
		zap.Int64("site_id", site.ID),
		zap.String("name", site.Name),
		zap.String("sub_site", site.SubSite),
	)
	return nil
}

// GetSite retrieves a site by id
// Consulta uma OM pelo id
func (r *Registry) GetSite(ctx context.Context, siteID int64) (*Site, error) {
	site, err := r.storage.GetSite(ctx, siteID)
	if err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, NewStorageError("get_site", "falha ao consultar OM", err)
	}
	return site, nil
}

// ListSites lists every registered site
// Lista todas as OMs cadastradas
func (r *Registry) ListSites(ctx context.Context) ([]Site, error) {
	sites, err := r.storage.ListSites(ctx)
	if err != nil {
		return nil, NewStorageError("list_sites", "falha ao listar OMs", err)
	}
	return sites, nil
}

// FindOrCreateSite looks a site up by name and sub-site, creating it
// when absent. Spreadsheet imports rely on this to register sites on
// first sight.
// Busca uma OM por nome e sub-site, criando quando ausente
func (r *Registry) FindOrCreateSite(ctx context.Context, name, subSite string, siteType SiteType) (*Site, error) {
	name = strings.TrimSpace(name)
	subSite = strings.TrimSpace(subSite)
	if name == "" {
		return nil, NewValidationError("name", "nome da OM é obrigatório", "")
	}

	site, err := r.storage.FindSite(ctx, name, subSite)
	if err == nil {
		return site, nil
	}
	if !errors.Is(err, ErrSiteNotFound) {
		return nil, NewStorageError("find_site", "falha ao consultar OM", err)
	}

	site = &Site{Name: name, SubSite: subSite, Type: siteType}
	if err := r.CreateSite(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// CreateLocation registers a new storage location inside a site
// Cadastra uma nova localização dentro de uma OM
func (r *Registry) CreateLocation(ctx context.Context, location *Location) error {
	if _, err := r.storage.GetSite(ctx, location.SiteID); err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			return ErrSiteNotFound
		}
		return NewStorageError("get_site", "falha ao consultar OM", err)
	}
	if err := r.storage.CreateLocation(ctx, location); err != nil {
		return NewStorageError("create_location", "falha ao cadastrar localização", err)
	}

	r.logger.Info("localização cadastrada",
		zap.Int64("location_id", location.ID),
		zap.Int64("site_id", location.SiteID),
		zap.String("section", location.Section),
	)
	return nil
}

// GetLocation retrieves a location by id
// Consulta uma localização pelo id
func (r *Registry) GetLocation(ctx context.Context, locationID int64) (*Location, error) {
	location, err := r.storage.GetLocation(ctx, locationID)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, NewStorageError("get_location", "falha ao consultar localização", err)
	}
	return location, nil
}

// ListLocations lists the locations of a site
// Lista as localizações de uma OM
func (r *Registry) ListLocations(ctx context.Context, siteID int64) ([]Location, error) {
	locations, err := r.storage.ListLocations(ctx, siteID)
	if err != nil {
		return nil, NewStorageError("list_locations", "falha ao listar localizações", err)
	}
	return locations, nil
}

// FindOrCreateLocation looks a location up by its full coordinate,
// creating it when absent
// Busca uma localização pela coordenada completa, criando quando ausente
func (r *Registry) FindOrCreateLocation(ctx context.Context, siteID int64, section string, shelf, caseNo, itemNumber *int64) (*Location, error) {
	if _, err := r.storage.GetSite(ctx, siteID); err != nil {
		if errors.Is(err, ErrSiteNotFound) {
			return nil, ErrSiteNotFound
		}
		return nil, NewStorageError("get_site", "falha ao consultar OM", err)
	}

	section = strings.TrimSpace(section)
	location, err := r.storage.FindLocation(ctx, siteID, section, shelf, caseNo, itemNumber)
	if err == nil {
		return location, nil
	}
	if !errors.Is(err, ErrLocationNotFound) {
		return nil, NewStorageError("find_location", "falha ao consultar localização", err)
	}

	location = &Location{
		SiteID:     siteID,
		Section:    section,
		Shelf:      shelf,
		Case:       caseNo,
		ItemNumber: itemNumber,
	}
	if err := r.storage.CreateLocation(ctx, location); err != nil {
		return nil, NewStorageError("create_location", "falha ao cadastrar localização", err)
	}
	return location, nil
}
