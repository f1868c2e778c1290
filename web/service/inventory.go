package service

import (
	"time"

	"labstock/database"
	"labstock/database/model"
	"labstock/util/common"

	"github.com/google/uuid"
)

// InventoryService records and lists the inventory items of a laboratory's
// chemical, biological and general-supply forms.
type InventoryService struct{}

func (s *InventoryService) ListItems(laboratory string, kind string) ([]model.InventoryItem, error) {
	db := database.GetDB()

	var items []model.InventoryItem
	err := db.Model(model.InventoryItem{}).
		Where("laboratory = ? AND kind = ?", laboratory, kind).
		Order("id ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *InventoryService) GetItem(id int) (*model.InventoryItem, error) {
	db := database.GetDB()

	item := &model.InventoryItem{}
	err := db.Model(model.InventoryItem{}).
		First(item, id).
		Error
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddItem stores a new inventory entry, assigning its asset tag and creation
// time.
func (s *InventoryService) AddItem(item *model.InventoryItem) error {
	if !model.ValidLaboratory(item.Laboratory) || item.Laboratory == "" {
		return common.NewError("unknown laboratory:", item.Laboratory)
	}
	if !model.ValidKind(item.Kind) {
		return common.NewError("unknown inventory kind:", item.Kind)
	}
	item.AssetTag = uuid.NewString()
	item.CreatedAt = time.Now().UnixMilli()

	db := database.GetDB()
	return db.Create(item).Error
}

// ExpiringItems returns items whose expiry falls inside the given window from
// now. Items without an expiry are skipped.
func (s *InventoryService) ExpiringItems(within time.Duration) ([]model.InventoryItem, error) {
	db := database.GetDB()
	deadline := time.Now().Add(within).UnixMilli()

	var items []model.InventoryItem
	err := db.Model(model.InventoryItem{}).
		Where("expiry_time > 0 AND expiry_time <= ?", deadline).
		Order("expiry_time ASC").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
