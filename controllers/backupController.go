package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resto-pos/services"
	"resto-pos/utils"
)

type BackupController struct {
	backups  services.BackupService
	keepDays int
}

func NewBackupController(backups services.BackupService, keepDays int) *BackupController {
	return &BackupController{backups: backups, keepDays: keepDays}
}

func (b *BackupController) CreateBackup(c *gin.Context) {
	var input struct {
		Description string `json:"description" binding:"max=255"`
	}
	if c.Request.ContentLength > 0 && !bindJSON(c, &input) {
		return
	}
	info, err := b.backups.Create(c.Request.Context(), input.Description, utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (b *BackupController) GetBackups(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := b.backups.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := b.backups.Stats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []services.BackupInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"backups": list, "stats": stats})
}

// RestoreBackup replaces live data with the named backup after taking a safety copy.
func (b *BackupController) RestoreBackup(c *gin.Context) {
	safety, err := b.backups.Restore(c.Request.Context(), c.Param("name"), utils.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup restored", "safety_backup": safety})
}

func (b *BackupController) DeleteBackup(c *gin.Context) {
	if err := b.backups.Delete(c.Request.Context(), c.Param("name"), utils.GetUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "backup deleted"})
}

func (b *BackupController) CleanupBackups(c *gin.Context) {
	removed, err := b.backups.Cleanup(c.Request.Context(), utils.QueryInt(c, "keep_days", b.keepDays, 3650))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// Export streams a JSON export of orders, inventory, accounting or staff.
func (b *BackupController) Export(c *gin.Context) {
	r, ok := bindRange(c)
	if !ok {
		return
	}
	kind := c.Param("kind")
	data, err := b.backups.Export(c.Request.Context(), kind, r)
	if err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("%s_export_%s.json", kind, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/json", data)
}
