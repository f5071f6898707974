package cart

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chrisdamba/fooddash/internal/catalog"
	"github.com/chrisdamba/fooddash/internal/models"
	"github.com/chrisdamba/fooddash/internal/pricing"
)

// Checkout is a validated cart ready to become an order.
type Checkout struct {
	Cart          *models.Cart
	Bill          models.Bill
	PaymentMethod models.PaymentMethod
	Address       models.Address
}

type Service struct {
	store   *Store
	catalog *catalog.Catalog
	pricing models.PricingConfig
	now     func() time.Time
}

func NewService(store *Store, cat *catalog.Catalog, cfg models.PricingConfig) *Service {
	return &Service{store: store, catalog: cat, pricing: cfg, now: time.Now}
}

func (s *Service) Create() *models.Cart {
	return s.store.Create(s.now())
}

func (s *Service) Get(id string) (*models.Cart, error) {
	return s.store.Get(id)
}

// Add looks the dish up in the catalog and adds it to the cart.
func (s *Service) Add(ctx context.Context, cartID, restaurantID, itemID string, selections pricing.Selections, quantity int) (*models.Cart, error) {
	item, err := s.catalog.Item(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	return s.store.Update(cartID, func(c *models.Cart) error {
		_, err := AddItem(c, item, selections, quantity, s.pricing.StrictCustomization, s.now())
		return err
	})
}

func (s *Service) UpdateQuantity(cartID, entryID string, delta int) (*models.Cart, error) {
	return s.store.Update(cartID, func(c *models.Cart) error {
		return UpdateQuantity(c, entryID, delta, s.now())
	})
}

func (s *Service) Bill(c *models.Cart) models.Bill {
	return ComputeBill(c.Entries, s.pricing)
}

// Checkout validates a cart for ordering and removes it from the store, so a cart can
// be checked out once. The address defaults to the first saved address when addressID
// is empty. Restore puts the cart back if the order cannot be placed.
func (s *Service) Checkout(cartID, paymentID, addressID string) (*Checkout, error) {
	var (
		payment models.PaymentMethod
		address models.Address
	)
	c, err := s.store.Take(cartID, func(c *models.Cart) error {
		if len(c.Entries) == 0 {
			return ErrEmptyCart
		}
		if paymentID == "" {
			return ErrPaymentMethodRequired
		}
		var err error
		if payment, err = s.catalog.PaymentMethod(paymentID); err != nil {
			return err
		}
		address, err = s.catalog.Address(addressID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &Checkout{
		Cart:          c,
		Bill:          s.Bill(c),
		PaymentMethod: payment,
		Address:       address,
	}, nil
}

// Restore returns a checked out cart to the store.
func (s *Service) Restore(checkout *Checkout) {
	if !s.store.Put(checkout.Cart) {
		log.Printf("cart restore skipped id=%s: cart exists", checkout.Cart.ID)
	}
}

// Quote prices a customization without touching any cart.
func (s *Service) Quote(ctx context.Context, restaurantID, itemID string, selections pricing.Selections, quantity int) (*Quote, error) {
	item, err := s.catalog.Item(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	var groups []models.CustomizationGroup
	if item.Customizable {
		groups = item.CustomizationGroups
	} else {
		selections = nil
	}
	if s.pricing.StrictCustomization {
		if err := pricing.Validate(groups, selections); err != nil {
			return nil, err
		}
	}
	total, err := pricing.ComputeTotal(item.Price, groups, selections, quantity)
	if err != nil {
		return nil, fmt.Errorf("quote %s: %w", item.Name, err)
	}
	return &Quote{
		ItemID:        item.ID,
		Quantity:      quantity,
		UnitPrice:     pricing.UnitPrice(item.Price, groups, selections),
		Total:         total,
		Customization: pricing.Describe(groups, selections),
	}, nil
}
