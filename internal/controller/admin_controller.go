package controller

import (
	"sort"

	"github.com/suklaray/hrms-sub002/internal/dto"
	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/internal/pkg/serverutils"
	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
	"github.com/suklaray/hrms-sub002/pkg/assistant/learning"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetInsights(ctx *fiber.Ctx) error
	FlushLearning(ctx *fiber.Ctx) error
	GetContexts(ctx *fiber.Ctx) error
	ClearContext(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	contexts *conversation.Store
	cache    *learning.Cache
	logger   logger.ILogger
}

func NewAdminController(contexts *conversation.Store, cache *learning.Cache, logger logger.ILogger) IAdminController {
	return &adminController{
		contexts: contexts,
		cache:    cache,
		logger:   logger,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("insights", c.GetInsights)
	h.Post("learning/flush", c.FlushLearning)
	h.Get("contexts", c.GetContexts)
	h.Post("contexts/clear", c.ClearContext)
	h.Get("logs", c.GetLogs)
}

func (c *adminController) GetInsights(ctx *fiber.Ctx) error {
	res := c.cache.GetInsights()

	return ctx.JSON(serverutils.SuccessResponse("Success get learning insights", res))
}

func (c *adminController) FlushLearning(ctx *fiber.Ctx) error {
	c.cache.Flush()

	return ctx.JSON(serverutils.SuccessResponse("Success flush learning cache", nil))
}

func (c *adminController) GetContexts(ctx *fiber.Ctx) error {
	snapshot := c.contexts.Snapshot()

	res := dto.ContextSnapshotResponse{
		TotalUsers: snapshot.TotalUsers,
		Users:      make([]dto.ContextUserResponse, 0, len(snapshot.Users)),
	}
	for userId, user := range snapshot.Users {
		res.Users = append(res.Users, dto.ContextUserResponse{
			UserId:              userId,
			LastActivity:        user.LastActivity,
			Interactions:        user.Interactions,
			PendingConfirmation: user.PendingConfirmation,
		})
	}
	sort.Slice(res.Users, func(i, j int) bool {
		return res.Users[i].UserId < res.Users[j].UserId
	})

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation contexts", res))
}

func (c *adminController) ClearContext(ctx *fiber.Ctx) error {
	var req dto.ClearContextRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	c.contexts.Clear(req.UserId)

	message := "Success clear conversation context"
	if req.UserId == "" {
		message = "Success clear all conversation contexts"
	}
	return ctx.JSON(serverutils.SuccessResponse(message, nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	logs, err := c.logger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", logs))
}
