package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/jhoicas/Fulfillment-api/internal/domain/order"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// OrderUseCase captura manual de órdenes, consulta y máquina de estados.
// Las órdenes no descuentan stock de materiales.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	tx       TxRunner
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso. events puede ser nil (no se publica nada).
func NewOrderUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	tx TxRunner,
	events EventPublisher,
	log zerolog.Logger,
) *OrderUseCase {
	if events == nil {
		events = NoopPublisher{}
	}
	return &OrderUseCase{
		orders:   orders,
		products: products,
		tx:       tx,
		events:   events,
		log:      log.With().Str("component", "orders").Logger(),
		now:      time.Now,
	}
}

// CreateManual crea una orden PENDING con sus líneas en una sola transacción.
func (uc *OrderUseCase) CreateManual(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	customer := strings.TrimSpace(in.CustomerName)
	if customer == "" {
		return nil, domain.Validation("customer_name es requerido")
	}
	if len(in.Lines) == 0 {
		return nil, domain.Validation("la orden debe tener al menos una línea")
	}
	channel := normalizeChannel(in.Channel)
	externalID := trimmedOrNil(in.ExternalID)

	if externalID != nil {
		existing, err := uc.orders.GetByChannelAndExternalID(ctx, channel, *externalID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: orden %s/%s ya existe", domain.ErrDuplicate, channel, *externalID)
		}
	}

	now := uc.now()
	o := &entity.Order{
		ID:           uuid.New().String(),
		Channel:      channel,
		ExternalID:   externalID,
		CustomerName: &customer,
		Status:       entity.OrderStatusPending,
		CreatedAt:    now,
	}
	lines := make([]*entity.OrderLine, 0, len(in.Lines))
	for i, l := range in.Lines {
		if l.Quantity <= 0 {
			return nil, domain.Validation("línea %d: quantity debe ser mayor a 0", i+1)
		}
		p, err := uc.products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || p.Archived {
			return nil, domain.Validation("línea %d: producto %q no existe o está archivado", i+1, l.ProductID)
		}
		lines = append(lines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: p.ID,
			Quantity:  l.Quantity,
		})
	}

	if err := createOrder(ctx, uc.tx, o, lines, now); err != nil {
		return nil, err
	}
	uc.publish(ctx, event.Event{
		Type:       event.TypeOrderCreated,
		Key:        o.ID,
		OccurredAt: now,
		Payload: event.OrderCreatedPayload{
			OrderID: o.ID, Code: deref(o.Code), Channel: o.Channel, ExternalID: deref(o.ExternalID), Lines: len(lines),
		},
	})
	uc.log.Info().Str("order_id", o.ID).Str("code", deref(o.Code)).Msg("orden creada")
	return toOrderResponse(o, lines), nil
}

// GetByID obtiene una orden con sus líneas.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orders.ListLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, lines), nil
}

// GetByCode busca una orden por su código corto. Sin coincidencia devuelve domain.ErrNotFound.
func (uc *OrderUseCase) GetByCode(ctx context.Context, code string) (*dto.OrderResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !order.IsValidCode(code) {
		return nil, domain.Validation("código %q no tiene el formato YY-XXXX", code)
	}
	o, err := uc.orders.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.orders.ListLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o, lines), nil
}

// List lista órdenes filtrando opcionalmente por estado y canal.
func (uc *OrderUseCase) List(ctx context.Context, status, channel string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	filter := repository.OrderFilter{Limit: page.Limit, Offset: page.Offset}
	if status != "" {
		st, ok := order.ParseStatus(status)
		if !ok {
			return nil, domain.Validation("estado %q desconocido", status)
		}
		filter.Status = &st
	}
	if channel != "" {
		filter.Channel = normalizeChannel(channel)
	}
	list, err := uc.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus aplica una transición de estado. El cambio {status, carrier?, tracking?} se escribe en una
// sola sentencia condicionada al estado leído; si otra petición lo cambió antes, devuelve ErrInvalidTransition.
// Si la escritura falla no se aplica nada y el último estado persistido sigue vigente.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	to, ok := order.ParseStatus(in.Status)
	if !ok {
		return nil, domain.Validation("estado %q desconocido", in.Status)
	}
	current, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	if !order.CanTransition(current.Status, to) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, to)
	}

	patch := entity.StatusPatch{From: current.Status, Status: to}
	if order.CapturesShipping(to) {
		patch.Carrier = trimmedOrNil(in.Carrier)
		patch.TrackingNumber = trimmedOrNil(in.TrackingNumber)
	} else if trimmedOrNil(in.Carrier) != nil || trimmedOrNil(in.TrackingNumber) != nil {
		return nil, domain.Validation("carrier y tracking_number solo aplican al pasar a %s", entity.OrderStatusShipped)
	}

	updated, err := uc.orders.UpdateStatus(ctx, id, patch)
	if errors.Is(err, domain.ErrInvalidTransition) {
		uc.log.Warn().Str("order_id", id).Str("from", string(current.Status)).Str("to", string(to)).Msg("estado cambiado por otra petición")
		return nil, err
	}
	if err != nil {
		uc.log.Error().Err(err).Str("order_id", id).Str("to", string(to)).Msg("actualizar estado")
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.publish(ctx, event.Event{
		Type:       event.TypeOrderStatusChanged,
		Key:        id,
		OccurredAt: uc.now(),
		Payload: event.OrderStatusChangedPayload{
			OrderID:        id,
			From:           string(current.Status),
			To:             string(updated.Status),
			Carrier:        deref(updated.Carrier),
			TrackingNumber: deref(updated.TrackingNumber),
		},
	})
	lines, err := uc.orders.ListLines(ctx, id)
	if err != nil {
		// el estado ya quedó escrito; se responde sin líneas
		uc.log.Warn().Err(err).Str("order_id", id).Msg("listar líneas tras actualizar estado")
		lines = nil
	}
	return toOrderResponse(updated, lines), nil
}

// Delete elimina una orden y sus líneas (cascada).
func (uc *OrderUseCase) Delete(ctx context.Context, id string) error {
	return uc.orders.Delete(ctx, id)
}

func (uc *OrderUseCase) publish(ctx context.Context, ev event.Event) {
	if err := uc.events.Publish(ctx, ev); err != nil {
		uc.log.Warn().Err(err).Str("event", ev.Type).Str("key", ev.Key).Msg("publicar evento")
	}
}

// createOrder asigna el código corto y persiste orden + líneas en una transacción.
// Si el código colisiona con otra orden se reintenta una vez con un código sustituto.
func createOrder(ctx context.Context, tx TxRunner, o *entity.Order, lines []*entity.OrderLine, now time.Time) error {
	codes := []string{order.GenerateCode(o.ID, now), order.NewCode(now)}
	var err error
	for _, code := range codes {
		code := code
		o.Code = &code
		err = tx.Run(ctx, func(orders repository.OrderRepository) error {
			if err := orders.Create(ctx, o); err != nil {
				return err
			}
			return orders.CreateLines(ctx, lines)
		})
		if !errors.Is(err, repository.ErrCodeTaken) {
			return err
		}
	}
	return err
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderLine) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrderResponse{
		ID:             o.ID,
		Code:           o.Code,
		Channel:        o.Channel,
		ExternalID:     o.ExternalID,
		CustomerName:   o.CustomerName,
		Status:         string(o.Status),
		Carrier:        o.Carrier,
		TrackingNumber: o.TrackingNumber,
		CreatedAt:      o.CreatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{ID: l.ID, ProductID: l.ProductID, Quantity: l.Quantity})
	}
	return out
}

func normalizeChannel(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return entity.ChannelManual
	}
	return s
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
