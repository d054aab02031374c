package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/annel0/blockworld/internal/vec"
	"github.com/annel0/blockworld/internal/world"
	"github.com/annel0/blockworld/internal/world/block"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BlockView – блок в ответах API
type BlockView struct {
	Position    vec.Vec3 `json:"position"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Transparent bool     `json:"transparent"`
}

func viewOf(b world.PlacedBlock) BlockView {
	return BlockView{
		Position:    b.Pos,
		Type:        b.Type.ID,
		Name:        b.Type.Name,
		Transparent: b.Type.Transparent,
	}
}

// PlaceRequest – запрос на установку блока. Цель задаётся напрямую
// или вычисляется по попаданию луча.
type PlaceRequest struct {
	Block  string         `json:"block" binding:"required"`
	Player *vec.Vec3Float `json:"player" binding:"required"`
	Target *vec.Vec3Float `json:"target,omitempty"`
	Hit    *world.PickHit `json:"hit,omitempty"`
}

// RemoveRequest – запрос на удаление блока
type RemoveRequest struct {
	Player *vec.Vec3Float `json:"player" binding:"required"`
	Target *vec.Vec3Float `json:"target,omitempty"`
	Hit    *world.PickHit `json:"hit,omitempty"`
}

// OutcomeView – исход действия вместе со звуковым сигналом
type OutcomeView struct {
	world.Outcome
	SoundCue string `json:"soundCue"`
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, GenericResponse{Success: false, Message: msg})
}

// handleCatalog возвращает все типы блоков
func (rs *RestServer) handleCatalog(c *gin.Context) {
	var defs []*block.Definition
	rs.withEngine(func(e *world.WorldEngine) {
		defs = e.Catalog().All()
	})

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Каталог блоков",
		Data:    defs,
	})
}

// handleQueryBlock возвращает блок по координатам ?x=&y=&z=
func (rs *RestServer) handleQueryBlock(c *gin.Context) {
	pos, err := parseFloatQuery(c, "x", "y", "z")
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	var (
		placed world.PlacedBlock
		found  bool
	)
	rs.withEngine(func(e *world.WorldEngine) {
		placed, found = e.QueryBlock(pos)
	})

	if !found {
		c.JSON(http.StatusNotFound, GenericResponse{
			Success: false,
			Message: fmt.Sprintf("Блок в %s не найден", pos.Round()),
		})
		return
	}
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: "Блок найден", Data: viewOf(placed)})
}

// handleColumn возвращает столбец блоков (x, z) снизу вверх
func (rs *RestServer) handleColumn(c *gin.Context) {
	x, errX := strconv.Atoi(c.Param("x"))
	z, errZ := strconv.Atoi(c.Param("z"))
	if errX != nil || errZ != nil {
		badRequest(c, "Координаты столбца должны быть целыми")
		return
	}

	var column []world.PlacedBlock
	rs.withEngine(func(e *world.WorldEngine) {
		column = e.Store().Column(x, z)
	})

	views := make([]BlockView, 0, len(column))
	for _, b := range column {
		views = append(views, viewOf(b))
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: fmt.Sprintf("Столбец (%d,%d)", x, z),
		Data:    views,
	})
}

// handlePlace обрабатывает установку блока
func (rs *RestServer) handlePlace(c *gin.Context) {
	var req PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Неверный формат запроса")
		return
	}

	var target vec.Vec3Float
	switch {
	case req.Target != nil:
		target = *req.Target
	case req.Hit != nil:
		target = world.PlacementTarget(*req.Hit).ToFloat()
	default:
		// Луч ни во что не попал – действие игнорируется
		badRequest(c, "Нет кандидата для установки")
		return
	}

	_, span := rs.tracer.Start(c.Request.Context(), "world.place")
	defer span.End()
	span.SetAttributes(
		attribute.String("block.type", req.Block),
		attribute.String("block.target", target.String()),
	)

	var (
		outcome world.Outcome
		err     error
	)
	rs.withEngine(func(e *world.WorldEngine) {
		outcome, err = e.PlaceBlock(target, req.Block, *req.Player)
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, block.ErrUnknownBlockType) {
			badRequest(c, err.Error())
			return
		}
		c.JSON(http.StatusInternalServerError, GenericResponse{Success: false, Message: "Внутренняя ошибка сервера"})
		return
	}

	rs.respondOutcome(c, span, outcome)
}

// handleRemove обрабатывает удаление блока
func (rs *RestServer) handleRemove(c *gin.Context) {
	var req RemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Неверный формат запроса")
		return
	}

	var target vec.Vec3Float
	switch {
	case req.Target != nil:
		target = *req.Target
	case req.Hit != nil:
		target = world.RemovalTarget(*req.Hit).ToFloat()
	default:
		badRequest(c, "Нет кандидата для удаления")
		return
	}

	_, span := rs.tracer.Start(c.Request.Context(), "world.remove")
	defer span.End()
	span.SetAttributes(attribute.String("block.target", target.String()))

	var outcome world.Outcome
	rs.withEngine(func(e *world.WorldEngine) {
		outcome = e.RemoveBlock(target, *req.Player)
	})

	rs.respondOutcome(c, span, outcome)
}

// respondOutcome отвечает 200 для любого исхода: отказ – штатный результат
func (rs *RestServer) respondOutcome(c *gin.Context, span trace.Span, outcome world.Outcome) {
	span.SetAttributes(
		attribute.String("outcome", string(outcome.Outcome)),
		attribute.String("reason", string(outcome.Reason)),
	)

	msg := "Действие выполнено"
	if !outcome.Accepted() {
		msg = fmt.Sprintf("Действие отклонено: %s", outcome.Reason)
	}
	c.JSON(http.StatusOK, GenericResponse{
		Success: outcome.Accepted(),
		Message: msg,
		Data:    OutcomeView{Outcome: outcome, SoundCue: outcome.SoundCue()},
	})
}

// handleStats возвращает статистику мира и процесса
func (rs *RestServer) handleStats(c *gin.Context) {
	var blocks int
	rs.withEngine(func(e *world.WorldEngine) {
		blocks = e.BlockCount()
	})

	cpuPercent, err := rs.metrics.GetCPUUsage()
	if err != nil {
		rs.logger.Debug("CPU недоступен: %v", err)
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Статистика получена",
		Data: gin.H{
			"world": gin.H{
				"blocks": blocks,
			},
			"server": gin.H{
				"uptime":      rs.metrics.GetUptime(),
				"memory_mb":   fmt.Sprintf("%.2f", rs.metrics.GetMemoryUsage()),
				"cpu_percent": fmt.Sprintf("%.2f", cpuPercent),
				"server_time": time.Now().Unix(),
			},
			"memory_details": rs.metrics.GetDetailedMemoryStats(),
		},
	})
}

// parseFloatQuery разбирает обязательные координаты из query-параметров
func parseFloatQuery(c *gin.Context, x, y, z string) (vec.Vec3Float, error) {
	var out [3]float64
	for i, name := range []string{x, y, z} {
		raw, ok := c.GetQuery(name)
		if !ok {
			return vec.Vec3Float{}, fmt.Errorf("параметр %s обязателен", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return vec.Vec3Float{}, fmt.Errorf("параметр %s: %q не число", name, raw)
		}
		out[i] = v
	}
	return vec.Vec3Float{X: out[0], Y: out[1], Z: out[2]}, nil
}
