package services

import (
	"errors"
	"fmt"

	"go-inventory-admin/internal/models"

	"gorm.io/gorm"
)

// StockService is the stock ledger: every quantity change goes through
// Adjust so the mutation, its movement record and the audit entry
// commit together.
type StockService struct {
	db *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// Adjust applies a quantity delta to a product. Additions raise stock by
// qty; reductions lower it clamped at zero, so asking to remove more
// than is on hand empties the product without error. The product write,
// the movement record and the activity entry are one transaction.
func (s *StockService) Adjust(productID uint, qty int, action, reason string, actor Actor) (*models.StockMovement, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if action != models.StockActionAdded && action != models.StockActionReduced {
		return nil, ErrUnknownAction
	}

	var movement models.StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := forUpdate(tx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w %d", ErrProductNotFound, productID)
			}
			return err
		}

		prev := product.Stock
		newStock := prev + qty
		if action == models.StockActionReduced {
			newStock = prev - qty
			if newStock < 0 {
				newStock = 0
			}
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("stock", newStock).Error; err != nil {
			return err
		}

		movement = models.StockMovement{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Action:        action,
			Quantity:      qty,
			PreviousStock: prev,
			NewStock:      newStock,
			Reason:        reason,
			UserID:        actor.ID,
			UserName:      actor.Name,
		}
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}

		verb := "Added"
		if action == models.StockActionReduced {
			verb = "Reduced"
		}
		details := fmt.Sprintf("%s %d units of %s", verb, qty, product.Name)
		return LogActivity(tx, actor, "Stock Adjustment", "Inventory", details)
	})
	if err != nil {
		return nil, err
	}
	return &movement, nil
}
