package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Fulfillment-api/internal/application/dto"
	"github.com/jhoicas/Fulfillment-api/internal/domain"
	"github.com/jhoicas/Fulfillment-api/internal/domain/entity"
	"github.com/jhoicas/Fulfillment-api/internal/domain/event"
	"github.com/jhoicas/Fulfillment-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Columnas requeridas del archivo de importación (encabezado sin distinguir mayúsculas).
const (
	ColExternalID   = "external_id"
	ColChannel      = "channel"
	ColCustomerName = "customer_name"
	ColSKU          = "sku"
	ColQty          = "qty"
)

var requiredColumns = []string{ColExternalID, ColChannel, ColCustomerName, ColSKU, ColQty}

// ImportUseCase importa órdenes externas (una fila por línea de producto), agrupa por (channel, external_id),
// omite las órdenes que ya existen y crea las nuevas de forma atómica por orden.
// Es un importador best-effort: un error en un grupo no detiene los demás.
type ImportUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	tx       TxRunner
	guard    ImportGuard
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

// NewImportUseCase construye el caso de uso. guard y events pueden ser nil.
func NewImportUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	tx TxRunner,
	guard ImportGuard,
	events EventPublisher,
	log zerolog.Logger,
) *ImportUseCase {
	if guard == nil {
		guard = NoopGuard{}
	}
	if events == nil {
		events = NoopPublisher{}
	}
	return &ImportUseCase{
		orders:   orders,
		products: products,
		tx:       tx,
		guard:    guard,
		events:   events,
		log:      log.With().Str("component", "import").Logger(),
		now:      time.Now,
	}
}

type importLine struct {
	sku string
	qty int
}

type importGroup struct {
	channel    string
	externalID string
	customer   string
	lines      []importLine
}

func (g *importGroup) label() string {
	return g.channel + "/" + g.externalID
}

// Import procesa los registros ya leídos (records[0] es el encabezado).
// Un archivo sin las columnas requeridas falla completo antes de cualquier escritura.
func (uc *ImportUseCase) Import(ctx context.Context, records [][]string) (*dto.ImportSummary, error) {
	groups, err := groupRecords(records)
	if err != nil {
		return nil, err
	}

	summary := &dto.ImportSummary{
		NewOrders: []dto.ImportedOrderDTO{},
		Existing:  []dto.ImportedOrderDTO{},
		Errors:    []string{},
	}
	for _, g := range groups {
		uc.importGroup(ctx, g, summary)
	}
	summary.Success = len(summary.Errors) == 0

	uc.log.Info().
		Int("groups", len(groups)).
		Int("new", len(summary.NewOrders)).
		Int("existing", len(summary.Existing)).
		Int("errors", len(summary.Errors)).
		Msg("importación finalizada")
	return summary, nil
}

func (uc *ImportUseCase) importGroup(ctx context.Context, g *importGroup, summary *dto.ImportSummary) {
	fail := func(err error) {
		uc.log.Warn().Err(err).Str("group", g.label()).Msg("grupo con error")
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", g.label(), err))
	}

	release, acquired, err := uc.guard.Acquire(ctx, g.channel, g.externalID)
	if err != nil {
		fail(err)
		return
	}
	if !acquired {
		fail(errors.New("otra importación está procesando esta orden"))
		return
	}
	defer release()

	existing, err := uc.orders.GetByChannelAndExternalID(ctx, g.channel, g.externalID)
	if err != nil {
		fail(err)
		return
	}
	if existing != nil {
		summary.Existing = append(summary.Existing, importedRef(existing))
		return
	}

	skus := make([]string, 0, len(g.lines))
	for _, l := range g.lines {
		skus = append(skus, l.sku)
	}
	bySKU, err := uc.products.ListActiveBySKUs(ctx, skus)
	if err != nil {
		fail(err)
		return
	}

	now := uc.now()
	o := &entity.Order{
		ID:         uuid.New().String(),
		Channel:    g.channel,
		ExternalID: &g.externalID,
		Status:     entity.OrderStatusPending,
		CreatedAt:  now,
	}
	if g.customer != "" {
		customer := g.customer
		o.CustomerName = &customer
	}
	var lines []*entity.OrderLine
	for _, l := range g.lines {
		p, ok := bySKU[l.sku]
		if !ok {
			continue // SKU no resuelto: se descarta la línea, no la orden
		}
		lines = append(lines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   o.ID,
			ProductID: p.ID,
			Quantity:  l.qty,
		})
	}
	if len(lines) == 0 {
		fail(errors.New("no se encontraron productos"))
		return
	}

	if err := createOrder(ctx, uc.tx, o, lines, now); err != nil {
		if errors.Is(err, domain.ErrDuplicate) && !errors.Is(err, repository.ErrCodeTaken) {
			// otra sesión la creó entre la consulta y el insert
			if cur, gerr := uc.orders.GetByChannelAndExternalID(ctx, g.channel, g.externalID); gerr == nil && cur != nil {
				summary.Existing = append(summary.Existing, importedRef(cur))
				return
			}
		}
		fail(err)
		return
	}

	summary.NewOrders = append(summary.NewOrders, importedRef(o))
	if err := uc.events.Publish(ctx, event.Event{
		Type:       event.TypeOrderCreated,
		Key:        o.ID,
		OccurredAt: now,
		Payload: event.OrderCreatedPayload{
			OrderID: o.ID, Code: deref(o.Code), Channel: o.Channel, ExternalID: g.externalID, Lines: len(lines),
		},
	}); err != nil {
		uc.log.Warn().Err(err).Str("order_id", o.ID).Msg("publicar evento")
	}
}

// groupRecords valida el encabezado, descarta filas incompletas y agrupa por (channel, external_id)
// conservando el orden de aparición.
func groupRecords(records [][]string) ([]*importGroup, error) {
	if len(records) == 0 {
		return nil, domain.Validation("archivo vacío: se esperaba encabezado %s", strings.Join(requiredColumns, ", "))
	}
	idx := map[string]int{}
	for i, h := range records[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, domain.Validation("faltan columnas requeridas: %s", strings.Join(missing, ", "))
	}

	cell := func(row []string, col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var groups []*importGroup
	byKey := map[[2]string]*importGroup{}
	for _, row := range records[1:] {
		externalID := cell(row, ColExternalID)
		channel := strings.ToUpper(cell(row, ColChannel))
		sku := cell(row, ColSKU)
		if externalID == "" || channel == "" || sku == "" {
			continue
		}
		key := [2]string{channel, externalID}
		g, ok := byKey[key]
		if !ok {
			g = &importGroup{channel: channel, externalID: externalID}
			byKey[key] = g
			groups = append(groups, g)
		}
		if g.customer == "" {
			g.customer = cell(row, ColCustomerName)
		}
		g.addLine(sku, parseQty(cell(row, ColQty)))
	}
	return groups, nil
}

// addLine acumula la cantidad si el SKU ya aparece en la orden.
func (g *importGroup) addLine(sku string, qty int) {
	for i := range g.lines {
		if g.lines[i].sku == sku {
			g.lines[i].qty += qty
			return
		}
	}
	g.lines = append(g.lines, importLine{sku: sku, qty: qty})
}

// parseQty interpreta la cantidad; valores no numéricos o <= 0 se toman como 1.
func parseQty(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

func importedRef(o *entity.Order) dto.ImportedOrderDTO {
	return dto.ImportedOrderDTO{
		Code:       deref(o.Code),
		ExternalID: deref(o.ExternalID),
		Channel:    o.Channel,
	}
}
