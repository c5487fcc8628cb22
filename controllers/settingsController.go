package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"resto-pos/dtos"
	"resto-pos/services"
	"resto-pos/utils"
)

type TelegramTester interface {
	SendTest(ctx context.Context) error
}

// BotRunner is the inbound Telegram worker.
type BotRunner interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
}

type SettingsController struct {
	settings     services.SettingsService
	telegram     TelegramTester
	bot          BotRunner
	listPrinters func(ctx context.Context) ([]string, error)
}

func NewSettingsController(settings services.SettingsService, tester TelegramTester, bot BotRunner,
	listPrinters func(ctx context.Context) ([]string, error)) *SettingsController {
	return &SettingsController{settings: settings, telegram: tester, bot: bot, listPrinters: listPrinters}
}

func (s *SettingsController) GetRestaurant(c *gin.Context) {
	rs, err := s.settings.Restaurant(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (s *SettingsController) UpdateRestaurant(c *gin.Context) {
	var input dtos.RestaurantSettingsInput
	if !bindJSON(c, &input) {
		return
	}
	rs, err := s.settings.UpdateRestaurant(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rs)
}

func (s *SettingsController) GetTelegram(c *gin.Context) {
	ts, err := s.settings.Telegram(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": ts, "bot_running": s.bot.Running()})
}

func (s *SettingsController) UpdateTelegram(c *gin.Context) {
	var input dtos.TelegramSettingsInput
	if !bindJSON(c, &input) {
		return
	}
	ts, err := s.settings.UpdateTelegram(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (s *SettingsController) TestTelegram(c *gin.Context) {
	if err := s.telegram.SendTest(c.Request.Context()); err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test message sent"})
}

func (s *SettingsController) StartBot(c *gin.Context) {
	// polling outlives the request
	if err := s.bot.Start(context.WithoutCancel(c.Request.Context())); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bot_running": true})
}

func (s *SettingsController) StopBot(c *gin.Context) {
	s.bot.Stop()
	c.JSON(http.StatusOK, gin.H{"bot_running": false})
}

func (s *SettingsController) GetPrinter(c *gin.Context) {
	ps, err := s.settings.Printer(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (s *SettingsController) UpdatePrinter(c *gin.Context) {
	var input dtos.PrinterSettingsInput
	if !bindJSON(c, &input) {
		return
	}
	ps, err := s.settings.UpdatePrinter(c.Request.Context(), input, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (s *SettingsController) GetPrinters(c *gin.Context) {
	printers, err := s.listPrinters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if printers == nil {
		printers = []string{}
	}
	c.JSON(http.StatusOK, printers)
}
