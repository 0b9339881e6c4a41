package orders

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/slicehaus/slicehaus-backend/internal/catalog"
	"github.com/slicehaus/slicehaus-backend/internal/pricing"
	"github.com/slicehaus/slicehaus-backend/pkg/config"
	"github.com/slicehaus/slicehaus-backend/pkg/db/models"
	"github.com/slicehaus/slicehaus-backend/pkg/enums"
	pkgerrors "github.com/slicehaus/slicehaus-backend/pkg/errors"
	"github.com/slicehaus/slicehaus-backend/pkg/logger"
	"github.com/slicehaus/slicehaus-backend/pkg/observe"
	"github.com/slicehaus/slicehaus-backend/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9\s()+-]+$`)
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// Service is the checkout trust boundary: it revalidates customer info
// and reprices every submitted line from the catalog before anything is
// persisted. Client-submitted prices and totals never survive it.
type Service struct {
	repo     orderRepository
	menu     *catalog.Catalog
	engine   *pricing.Engine
	rates    pricing.Rates
	checkout config.CheckoutConfig
	monitor  *observe.Monitor
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Repo     orderRepository
	Menu     *catalog.Catalog
	Engine   *pricing.Engine
	Rates    pricing.Rates
	Checkout config.CheckoutConfig
	Monitor  *observe.Monitor
	Logger   *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("order repository is required")
	}
	if params.Menu == nil {
		return nil, fmt.Errorf("menu catalog is required")
	}
	if params.Engine == nil {
		return nil, fmt.Errorf("pricing engine is required")
	}
	return &Service{
		repo:     params.Repo,
		menu:     params.Menu,
		engine:   params.Engine,
		rates:    params.Rates,
		checkout: params.Checkout,
		monitor:  params.Monitor,
		logg:     params.Logger,
	}, nil
}

// Create validates the checkout payload, reprices it, and persists the
// order. userID may be nil for guest checkouts.
func (s *Service) Create(ctx context.Context, userID *uuid.UUID, req CreateOrderRequest) (*OrderDTO, error) {
	var info types.CustomerInfo
	err := s.monitor.Track(ctx, "orders.validate_customer", observe.ThresholdCalculation, func() error {
		var err error
		info, err = s.validateCustomerInfo(req.CustomerInfo)
		return err
	})
	if err != nil {
		return nil, err
	}

	var items []models.OrderLineItem
	err = s.monitor.Track(ctx, "orders.price_items", observe.ThresholdCalculation, func() error {
		var err error
		items, err = s.priceItems(ctx, req.Items)
		return err
	})
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice.InexactFloat64(), Quantity: item.Quantity})
	}
	totals := pricing.Aggregate(lines, s.rates)

	order := &models.Order{
		ID:           uuid.New(),
		OrderNumber:  newOrderNumber(),
		UserID:       userID,
		CustomerInfo: info,
		Subtotal:     decimal.NewFromFloat(totals.Subtotal),
		Tax:          decimal.NewFromFloat(totals.Tax),
		DeliveryFee:  decimal.NewFromFloat(totals.DeliveryFee),
		Total:        decimal.NewFromFloat(totals.Total),
		Status:       enums.OrderStatusPending,
		Items:        items,
	}

	err = s.monitor.Track(ctx, "orders.persist", observe.ThresholdQuery, func() error {
		return s.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist order")
	}

	if s.logg != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, order.ID.String()), "order created")
	}
	return FromModel(order), nil
}

// GetByID loads one order.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	return FromModel(order), nil
}

// ListByUser returns the user's order history, newest first.
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]*OrderDTO, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	out := make([]*OrderDTO, 0, len(list))
	for i := range list {
		out = append(out, FromModel(&list[i]))
	}
	return out, nil
}

func (s *Service) validateCustomerInfo(in CustomerInfoInput) (types.CustomerInfo, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.Phone)
	address := strings.TrimSpace(in.Address)
	city := strings.TrimSpace(in.City)
	zipCode := strings.TrimSpace(in.ZipCode)

	if name == "" || email == "" || phone == "" || address == "" || city == "" || zipCode == "" {
		return types.CustomerInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "all required fields must be filled")
	}

	maxLen := s.checkout.MaxStringLength
	if len(in.Name) > maxLen || len(in.Address) > maxLen {
		return types.CustomerInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "input fields are too long")
	}
	if !emailPattern.MatchString(email) {
		return types.CustomerInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid email format")
	}
	if !phonePattern.MatchString(phone) {
		return types.CustomerInfo{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid phone format")
	}

	info := types.CustomerInfo{
		Name:    sanitize(name),
		Email:   sanitize(strings.ToLower(email)),
		Phone:   sanitize(phone),
		Address: sanitize(address),
		City:    sanitize(city),
		ZipCode: sanitize(zipCode),
	}
	if instructions := sanitize(strings.TrimSpace(in.DeliveryInstructions)); instructions != "" {
		instructions = truncate(instructions, maxLen)
		info.DeliveryInstructions = &instructions
	}
	return info, nil
}

func (s *Service) priceItems(ctx context.Context, items []ItemInput) ([]models.OrderLineItem, error) {
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if len(items) > s.checkout.MaxItems {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "maximum %d items allowed per order", s.checkout.MaxItems)
	}

	out := make([]models.OrderLineItem, 0, len(items))
	for _, in := range items {
		if in.PizzaID == "" || in.Size == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid cart item data")
		}
		if in.Quantity < 1 || in.Quantity > s.checkout.MaxQuantity {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "quantity must be between 1 and %d", s.checkout.MaxQuantity)
		}

		pizza, ok := s.menu.PizzaByID(in.PizzaID)
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "pizza %s not found in menu", in.PizzaID)
		}
		option, ok := pizza.SizeOption(in.Size)
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid size %s for pizza %s", in.Size, in.PizzaID)
		}

		item := models.OrderLineItem{
			ID:        uuid.New(),
			PizzaID:   pizza.ID,
			PizzaName: pizza.Name,
			Size:      in.Size,
			BasePrice: decimal.NewFromFloat(pizza.BasePrice),
			Quantity:  in.Quantity,
		}

		var quote pricing.Quote
		if in.IsCustom {
			crustID := in.CustomCrust
			if crustID == "" {
				crustID = catalog.DefaultCrustID
			}
			quote = s.engine.CustomItemPrice(pizza.BasePrice, option.PriceMultiplier, in.CustomToppings, pizza.DefaultToppings, crustID)
			item.IsCustom = true
			item.CustomToppings = in.CustomToppings
			item.CustomCrust = &crustID
			if in.CustomSauce != "" {
				sauce := in.CustomSauce
				item.CustomSauce = &sauce
			}
		} else {
			quote = s.engine.ItemPrice(pizza.BasePrice, option.PriceMultiplier, in.SelectedToppings, pizza.DefaultToppings)
			item.SelectedToppings = in.SelectedToppings
		}
		if !quote.Clean() && s.logg != nil {
			s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
				"pizzaId":         in.PizzaID,
				"missingToppings": quote.MissingToppings,
				"missingCrust":    quote.MissingCrust,
			}), "orders.price.unresolved_refs")
		}
		item.UnitPrice = decimal.NewFromFloat(quote.UnitPrice)

		out = append(out, item)
	}
	return out, nil
}

func sanitize(value string) string {
	return strings.NewReplacer("<", "", ">", "").Replace(value)
}

// truncate caps value at max bytes without splitting a multi-byte rune.
func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut]
}

const orderNumberCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// newOrderNumber builds a human-facing identifier: a base36 timestamp
// plus four random characters.
func newOrderNumber() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		copy(buf, uuid.NewString())
	}
	for i, b := range buf {
		buf[i] = orderNumberCharset[int(b)%len(orderNumberCharset)]
	}
	return fmt.Sprintf("ORD-%s-%s", ts, buf)
}
