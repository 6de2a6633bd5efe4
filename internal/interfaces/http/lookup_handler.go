package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Impuestos-api/internal/application/dto"
	"github.com/jhoicas/Impuestos-api/internal/application/taxcalc"
	"github.com/jhoicas/Impuestos-api/internal/domain"
	"github.com/jhoicas/Impuestos-api/internal/domain/bitemporal"
	"github.com/jhoicas/Impuestos-api/internal/domain/entity"
	"github.com/jhoicas/Impuestos-api/internal/domain/tax"
)

// LookupHandler consultas de auditoría: versión vigente en una coordenada (protegido, auditor/admin).
type LookupHandler struct {
	uc *taxcalc.LookupUseCase
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *taxcalc.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// Classification godoc
// @Summary      Clasificación fiscal vigente en una coordenada
// @Description  Devuelve la versión de la clasificación del contribuyente vigente en valid_at
//               según lo conocido en known_at. Requiere rol admin o auditor.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id        path      string  true   "ID del contribuyente"
// @Param        valid_at  query     string  false  "Fecha de vigencia YYYY-MM-DD (por omisión hoy)"
// @Param        known_at  query     string  false  "Momento de conocimiento RFC3339 (por omisión ahora)"
// @Success      200       {object}  dto.ClassificationResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      401       {object}  dto.ErrorResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/taxpayers/{id}/classification [get]
func (h *LookupHandler) Classification(c *fiber.Ctx) error {
	validAt, knownAt, err := coordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	cl, err := h.uc.Classification(c.Params("id"), validAt, knownAt)
	if err != nil {
		if errors.Is(err, domain.ErrClassificationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toClassificationResponse(cl))
}

// Rule godoc
// @Summary      Versión de regla vigente en una coordenada
// @Description  Devuelve la versión de la regla del tipo de impuesto vigente en valid_at según lo
//               conocido en known_at. Las reglas compuestas incluyen sus componentes.
//               Requiere rol admin o auditor.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        taxType   path      string  true   "Tipo de impuesto"  Enums(ISS, PIS, COFINS, CSLL, PCC)
// @Param        valid_at  query     string  false  "Fecha de vigencia YYYY-MM-DD (por omisión hoy)"
// @Param        known_at  query     string  false  "Momento de conocimiento RFC3339 (por omisión ahora)"
// @Success      200       {object}  dto.RuleResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      401       {object}  dto.ErrorResponse
// @Failure      403       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/rules/{taxType} [get]
func (h *LookupHandler) Rule(c *fiber.Ctx) error {
	validAt, knownAt, err := coordinateQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	rule, err := h.uc.Rule(c.Params("taxType"), validAt, knownAt)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTaxType) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_TAX_TYPE", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin versión vigente para la coordenada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRuleResponse(rule))
}

// coordinateQuery lee valid_at y known_at; por omisión hoy y ahora.
func coordinateQuery(c *fiber.Ctx) (validAt, knownAt time.Time, err error) {
	now := time.Now().UTC()
	validAt, knownAt = bitemporal.DateOf(now), now
	if s := c.Query("valid_at"); s != "" {
		if validAt, err = bitemporal.ParseDate(s); err != nil {
			return time.Time{}, time.Time{}, errors.New("valid_at debe tener formato YYYY-MM-DD")
		}
	}
	if s := c.Query("known_at"); s != "" {
		if knownAt, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, time.Time{}, errors.New("known_at debe tener formato RFC3339")
		}
	}
	return validAt, knownAt, nil
}

func toClassificationResponse(cl *entity.TaxpayerClassification) dto.ClassificationResponse {
	return dto.ClassificationResponse{
		TaxpayerID:    cl.TaxpayerID,
		DocumentType:  string(cl.Document.Kind()),
		DocumentValue: cl.Document.Value(),
		PersonKind:    string(cl.PersonKind),
		Residency:     string(cl.Residency),
		Regime:        string(cl.Regime),
		ValidFrom:     cl.ValidFrom.Format(bitemporal.DateLayout),
		ValidUntil:    formatUntil(cl.ValidUntil),
		RecordedAt:    cl.RecordedAt.Format(time.RFC3339),
	}
}

func toRuleResponse(rule tax.Calculator) dto.RuleResponse {
	p := rule.Bitemporal()
	out := dto.RuleResponse{
		ID:         rule.ID(),
		TaxType:    string(rule.TaxType()),
		Rate:       rule.Rate(),
		Threshold:  rule.Threshold(),
		Categories: make([]string, 0),
		ValidFrom:  p.ValidFrom.Format(bitemporal.DateLayout),
		ValidUntil: formatUntil(p.ValidUntil),
		RecordedAt: p.RecordedAt.Format(time.RFC3339),
	}
	for _, cat := range rule.Categories() {
		out.Categories = append(out.Categories, string(cat))
	}
	if composite, ok := rule.(*tax.CompositeRule); ok {
		for _, t := range composite.Components() {
			out.Components = append(out.Components, string(t))
		}
	}
	return out
}

func formatUntil(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(bitemporal.DateLayout)
	return &s
}
