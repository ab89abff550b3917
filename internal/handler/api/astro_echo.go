package api

import (
	models "Jyotish/internal/domain/models"
	"Jyotish/internal/service/metrics"
	"Jyotish/internal/service/ratelimit"
	"Jyotish/internal/usecase"
	xhttp "Jyotish/pkg/http"
	xlogger "Jyotish/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AstroHandler exposes the computation engine over Echo.
type AstroHandler struct {
	logger    *xlogger.Logger
	charts    *usecase.ChartUseCase
	dashas    *usecase.DashaUseCase
	calendar  *usecase.CalendarUseCase
	timeline  *usecase.TimelineUseCase
	predict   *usecase.PredictUseCase
	specialty *usecase.SpecialtyUseCase
	rl        *ratelimit.Limiter
}

func NewAstroHandler(
	logger *xlogger.Logger,
	charts *usecase.ChartUseCase,
	dashas *usecase.DashaUseCase,
	calendar *usecase.CalendarUseCase,
	timeline *usecase.TimelineUseCase,
	predict *usecase.PredictUseCase,
	specialty *usecase.SpecialtyUseCase,
) *AstroHandler {
	metrics.Register()
	return &AstroHandler{
		logger:    logger,
		charts:    charts,
		dashas:    dashas,
		calendar:  calendar,
		timeline:  timeline,
		predict:   predict,
		specialty: specialty,
		rl:        ratelimit.New(),
	}
}

func (h *AstroHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/chart", h.Chart)
	g.GET("/dasha", h.Dasha)
	g.GET("/nakshatra-calendar", h.Calendar)
	g.GET("/shadbala", h.Shadbala)
	g.GET("/ashtakavarga", h.Ashtakavarga)
	g.GET("/yogas", h.Yogas)
	g.GET("/transits", h.Transits)
	g.GET("/predict", h.Predict)
	g.GET("/prashna", h.Prashna)
	g.GET("/sadesati", h.SadeSati)
	g.GET("/kota", h.Kota)
	g.GET("/sudarshana", h.Sudarshana)
	g.GET("/tarabala", h.TaraBala)
	g.GET("/karma", h.Karma)
	g.GET("/trading", h.Trading)
}

func (h *AstroHandler) Chart(c echo.Context) error {
	req := &models.ChartRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.charts.Payload(c.Request().Context(), req.Spec(), req.Varga)
	if err != nil {
		h.logger.Error("chart usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Dasha(c echo.Context) error {
	req := &models.DashaRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.dashas.Result(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("dasha usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Calendar(c echo.Context) error {
	req := &models.CalendarRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.calendar.Year(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("calendar usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Shadbala(c echo.Context) error {
	req := &models.BirthRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.charts.Shadbala(c.Request().Context(), req.Spec())
	if err != nil {
		h.logger.Error("shadbala usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Ashtakavarga(c echo.Context) error {
	req := &models.BirthRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.charts.Ashtakavarga(c.Request().Context(), req.Spec())
	if err != nil {
		h.logger.Error("ashtakavarga usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Yogas(c echo.Context) error {
	req := &models.YogasRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.charts.Yogas(c.Request().Context(), req.Spec(), req.Mundane)
	if err != nil {
		h.logger.Error("yogas usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Transits(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":transits", 5, 1) {
		h.logger.Warn("transits rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.TooManyRequestsResponse(c)
	}
	req := &models.TransitRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.timeline.Scan(c.Request().Context(), req.Spec(), req.From, req.To, req.Kinds)
	if err != nil {
		h.logger.Error("transit scan error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Predict(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":predict", 3, 1) {
		h.logger.Warn("predict rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.TooManyRequestsResponse(c)
	}
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.predict.Predict(c.Request().Context(), *req)
	if err != nil && len(res) == 0 {
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Prashna(c echo.Context) error {
	req := &models.PrashnaRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.Prashna(c.Request().Context(), *req)
	if err != nil {
		h.logger.Error("prashna usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) SadeSati(c echo.Context) error {
	if !h.rl.Allow(c.RealIP()+":sadesati", 5, 1) {
		return xhttp.TooManyRequestsResponse(c)
	}
	req := &models.RangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.SadeSati(c.Request().Context(), req.Spec(), req.From, req.To)
	if err != nil && len(res) == 0 {
		h.logger.Error("sadesati usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Kota(c echo.Context) error {
	req := &models.InstantRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.Kota(c.Request().Context(), req.Spec(), req.At)
	if err != nil {
		h.logger.Error("kota usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Sudarshana(c echo.Context) error {
	req := &models.RangeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.Sudarshana(c.Request().Context(), req.Spec(), req.From, req.To)
	if err != nil {
		h.logger.Error("sudarshana usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) TaraBala(c echo.Context) error {
	req := &models.InstantRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.TaraBala(c.Request().Context(), req.Spec(), req.At)
	if err != nil {
		h.logger.Error("tarabala usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Karma(c echo.Context) error {
	req := &models.BirthRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.charts.Karma(c.Request().Context(), req.Spec())
	if err != nil {
		h.logger.Error("karma usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AstroHandler) Trading(c echo.Context) error {
	req := &models.TradingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res, err := h.specialty.Trading(c.Request().Context(), req.Spec(), req.At)
	if err != nil {
		h.logger.Error("trading usecase error", xlogger.Error(err))
		return errorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
