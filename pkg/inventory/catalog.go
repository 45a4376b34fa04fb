package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Catalog implements the ItemCatalog interface
// Implementação do catálogo de itens
type Catalog struct {
	storage Storage
	logger  *zap.Logger
}

var _ ItemCatalog = (*Catalog)(nil)

// NewCatalog creates a new item catalog
// Cria um novo catálogo de itens
func NewCatalog(storage Storage, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		storage: storage,
		logger:  logger,
	}
}

// CreateItem registers a new catalog item. The MPN is the natural key
// and is stored trimmed.
// Cadastra um novo item no catálogo (MPN é a chave natural)
func (c *Catalog) CreateItem(ctx context.Context, item *Item) error {
	item.MPN = strings.TrimSpace(item.MPN)
	if err := ValidateMPN(item.MPN); err != nil {
		return err
	}
	if err := ValidateActor(item.CreatedBy); err != nil {
		return err
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := c.storage.CreateItem(ctx, item); err != nil {
		if errors.Is(err, ErrDuplicateItem) {
			return ErrDuplicateItem
		}
		return NewStorageError("create_item", "falha ao cadastrar item", err)
	}

	c.logger.Info("item cadastrado",
		zap.Int64("item_id", item.ID),
		zap.String("mpn", item.MPN),
		zap.String("name", item.Name),
		zap.String("actor", item.CreatedBy),
	)
	return nil
}

// GetItem retrieves an item by id
// Consulta um item pelo id
func (c *Catalog) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	item, err := c.storage.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, NewStorageError("get_item", "falha ao consultar item", err)
	}
	return item, nil
}

// GetItemByMPN retrieves an item by its manufacturer part number
// Consulta um item pelo MPN
func (c *Catalog) GetItemByMPN(ctx context.Context, mpn string) (*Item, error) {
	item, err := c.storage.GetItemByMPN(ctx, strings.TrimSpace(mpn))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, NewStorageError("get_item_by_mpn", "falha ao consultar item", err)
	}
	return item, nil
}

// FindOrCreateItem looks an item up by MPN and creates it when absent.
// On an existing item, descriptive fields are overwritten only when the
// incoming value is non-empty and different.
// Busca um item pelo MPN, criando quando ausente; campos descritivos
// só são sobrescritos com valores não vazios e diferentes
func (c *Catalog) FindOrCreateItem(ctx context.Context, incoming *Item) (*Item, error) {
	incoming.MPN = strings.TrimSpace(incoming.MPN)
	if err := ValidateMPN(incoming.MPN); err != nil {
		return nil, err
	}

	existing, err := c.storage.GetItemByMPN(ctx, incoming.MPN)
	if err != nil {
		if !errors.Is(err, ErrItemNotFound) {
			return nil, NewStorageError("get_item_by_mpn", "falha ao consultar item", err)
		}
		if err := c.CreateItem(ctx, incoming); err != nil {
			return nil, err
		}
		return incoming, nil
	}

	changed := false
	overwrite := func(dst *string, src string) {
		if src != "" && src != *dst {
			*dst = src
			changed = true
		}
	}
	overwrite(&existing.PN, incoming.PN)
	overwrite(&existing.Name, incoming.Name)
	overwrite(&existing.Doc, incoming.Doc)
	overwrite(&existing.TecPub, incoming.TecPub)
	overwrite(&existing.AircraftDoc, incoming.AircraftDoc)

	if changed {
		existing.UpdatedAt = time.Now()
		if err := c.storage.UpdateItem(ctx, existing); err != nil {
			return nil, NewStorageError("update_item", "falha ao atualizar item", err)
		}
	}
	return existing, nil
}

// UpdateItem persists changes to an existing item
// Atualiza um item existente
func (c *Catalog) UpdateItem(ctx context.Context, item *Item) error {
	item.MPN = strings.TrimSpace(item.MPN)
	if err := ValidateMPN(item.MPN); err != nil {
		return err
	}
	item.UpdatedAt = time.Now()

	if err := c.storage.UpdateItem(ctx, item); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		if errors.Is(err, ErrDuplicateItem) {
			return ErrDuplicateItem
		}
		return NewStorageError("update_item", "falha ao atualizar item", err)
	}
	return nil
}

// DeleteItem removes an item that is no longer referenced
// Remove um item sem referências de estoque, equivalência ou pedido
func (c *Catalog) DeleteItem(ctx context.Context, itemID int64) error {
	if err := c.storage.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrItemNotFound
		}
		if errors.Is(err, ErrItemInUse) {
			return ErrItemInUse
		}
		return NewStorageError("delete_item", "falha ao remover item", err)
	}

	c.logger.Info("item removido", zap.Int64("item_id", itemID))
	return nil
}

// ListItems lists catalog items with pagination
// Lista itens do catálogo com paginação
func (c *Catalog) ListItems(ctx context.Context, offset, limit int) ([]Item, error) {
	items, err := c.storage.ListItems(ctx, offset, limit)
	if err != nil {
		return nil, NewStorageError("list_items", "falha ao listar itens", err)
	}
	return items, nil
}

// SearchItems searches items by MPN, PN or name
// Busca itens por MPN, PN ou nome
func (c *Catalog) SearchItems(ctx context.Context, query string) ([]Item, error) {
	items, err := c.storage.SearchItems(ctx, query)
	if err != nil {
		return nil, NewStorageError("search_items", "falha ao buscar itens", err)
	}
	return items, nil
}

// AddEquivalence relates two interchangeable items. The pair is stored
// with the lower id first, so the reverse pair can never coexist.
// Relaciona dois itens permutáveis; o par é canonizado com o menor id primeiro
func (c *Catalog) AddEquivalence(ctx context.Context, itemID, equivalentID int64) error {
	if itemID == equivalentID {
		return ErrSelfEquivalence
	}

	for _, id := range []int64{itemID, equivalentID} {
		if _, err := c.storage.GetItem(ctx, id); err != nil {
			if errors.Is(err, ErrItemNotFound) {
				return NewValidationError("item_id", "item não encontrado", fmt.Sprintf("%d", id))
			}
			return NewStorageError("get_item", "falha ao consultar item", err)
		}
	}

	lo, hi := itemID, equivalentID
	if lo > hi {
		lo, hi = hi, lo
	}

	eq := &Equivalence{ItemID: lo, EquivalentID: hi}
	if err := c.storage.CreateEquivalence(ctx, eq); err != nil {
		if errors.Is(err, ErrDuplicateEquivalence) {
			return ErrDuplicateEquivalence
		}
		return NewStorageError("create_equivalence", "falha ao cadastrar equivalência", err)
	}

	c.logger.Info("equivalência cadastrada",
		zap.Int64("item_id", lo),
		zap.Int64("equivalent_id", hi),
	)
	return nil
}

// RemoveEquivalence deletes the relation between two items
// Remove a equivalência entre dois itens
func (c *Catalog) RemoveEquivalence(ctx context.Context, itemID, equivalentID int64) error {
	lo, hi := itemID, equivalentID
	if lo > hi {
		lo, hi = hi, lo
	}
	if err := c.storage.DeleteEquivalence(ctx, lo, hi); err != nil {
		return NewStorageError("delete_equivalence", "falha ao remover equivalência", err)
	}
	return nil
}

// Equivalents lists every item interchangeable with the given one,
// regardless of which side of the pair it was stored on
// Lista os itens permutáveis com o informado, em qualquer direção
func (c *Catalog) Equivalents(ctx context.Context, itemID int64) ([]Item, error) {
	items, err := c.storage.GetEquivalents(ctx, itemID)
	if err != nil {
		return nil, NewStorageError("get_equivalents", "falha ao listar equivalências", err)
	}
	return items, nil
}
