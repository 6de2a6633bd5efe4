package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jhoicas/Impuestos-api/internal/application/dto"
	"github.com/jhoicas/Impuestos-api/internal/application/taxcalc"
	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// TaxHandler maneja el cálculo de impuestos de pedidos (protegido).
type TaxHandler struct {
	uc  *taxcalc.CalculateOrderTaxesUseCase
	log *logger.Logger
}

// NewTaxHandler construye el handler.
func NewTaxHandler(uc *taxcalc.CalculateOrderTaxesUseCase, log *logger.Logger) *TaxHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &TaxHandler{uc: uc, log: log}
}

// Calculate godoc
// @Summary      Calcular impuestos de un pedido
// @Description  Resuelve la clasificación de cada contribuyente y la versión de cada regla en la
//               coordenada (order_date, calculation_date) y devuelve los montos aplicables por ítem
//               y los totales por tipo. Sin calculation_date se usa el instante actual.
//               Si falta la clasificación de algún contribuyente, falla el pedido completo.
// @Tags         taxes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CalculateTaxesRequest  true  "Pedido con order_date (YYYY-MM-DD) e ítems"
// @Success      200   {object}  dto.OrderTaxResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/taxes/calculate [post]
func (h *TaxHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateTaxesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := toOrder(in)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	calculationDate := h.uc.Now()
	if in.CalculationDate != nil {
		calculationDate = *in.CalculationDate
	}

	result, err := h.uc.ComputeOrder(c.UserContext(), order, calculationDate)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationNotFound) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CLASSIFICATION_NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		h.log.Error().Err(err).Str("order_id", order.ID).Str("user_id", GetUserID(c)).Msg("cálculo de impuestos falló")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderTaxResponse(order, calculationDate, result))
}

func toOrder(in dto.CalculateTaxesRequest) (*entity.Order, error) {
	date, err := bitemporal.ParseDate(in.OrderDate)
	if err != nil {
		return nil, errors.New("order_date requerido con formato YYYY-MM-DD")
	}
	id := in.OrderID
	if id == "" {
		id = uuid.NewString()
	}
	items := make([]entity.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.TaxpayerID == "" || it.Category == "" {
			return nil, errors.New("cada ítem requiere category y taxpayer_id")
		}
		if it.Value.IsNegative() {
			return nil, errors.New("value no puede ser negativo")
		}
		items = append(items, entity.OrderItem{
			Category:   entity.ItemCategory(it.Category),
			Value:      it.Value,
			TaxpayerID: it.TaxpayerID,
		})
	}
	return &entity.Order{ID: id, Date: date, Items: items}, nil
}

// toOrderTaxResponse arma la respuesta con totales por tipo de impuesto en orden de declaración.
func toOrderTaxResponse(order *entity.Order, calculationDate time.Time, result *entity.OrderTaxResult) dto.OrderTaxResponse {
	totals := make(map[entity.TaxType]decimal.Decimal)
	items := make([]dto.ItemTaxResponse, 0, len(result.ItemResults))
	for _, ir := range result.ItemResults {
		taxes := make([]dto.TaxAmountResponse, 0, len(ir.Taxes))
		for _, t := range ir.Taxes {
			taxes = append(taxes, dto.TaxAmountResponse{TaxType: string(t.TaxType), Amount: t.Amount})
			totals[t.TaxType] = totals[t.TaxType].Add(t.Amount)
		}
		items = append(items, dto.ItemTaxResponse{
			Category:   string(ir.Item.Category),
			Value:      ir.Item.Value,
			TaxpayerID: ir.Item.TaxpayerID,
			Taxes:      taxes,
		})
	}
	out := dto.OrderTaxResponse{
		OrderID:         result.OrderID,
		OrderDate:       order.Date.Format(bitemporal.DateLayout),
		CalculationDate: calculationDate,
		Items:           items,
		Totals:          make([]dto.TaxAmountResponse, 0, len(totals)),
	}
	for _, t := range entity.TaxTypes() {
		if amount, ok := totals[t]; ok {
			out.Totals = append(out.Totals, dto.TaxAmountResponse{TaxType: string(t), Amount: amount})
		}
	}
	return out
}
